// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// anchorTime is the fixed instant every test chain is valid at, so tests
// never depend on the wall clock.
var anchorTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

var serialCounter atomic.Int64

// certSpec describes one synthetic certificate for chain construction.
type certSpec struct {
	subject      string
	isCA         bool
	maxPathLen   int // -1 means no pathLenConstraint
	keyUsage     x509.KeyUsage
	ekus         []x509.ExtKeyUsage
	dnsNames     []string
	emails       []string
	ips          []net.IP
	permittedDNS []string
	excludedDNS  []string
	permittedIP  []*net.IPNet
	notBefore    time.Time
	notAfter     time.Time
	extra        []pkix.Extension
}

// issued pairs a parsed certificate with its private key so it can act as
// an issuer for further certificates.
type issued struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

// issue creates and re-parses a certificate described by spec, signed by
// parent (or self-signed when parent is nil). Re-parsing matters: the
// validation engine reads raw extension bytes, which only a parsed
// certificate carries.
func issue(t *testing.T, spec certSpec, parent *issued) *issued {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err, "generating key for %q", spec.subject)
	return issueFor(t, spec, key, parent)
}

// issueFor issues a certificate for an existing key, which is how
// cross-signed copies of the same CA are built.
func issueFor(t *testing.T, spec certSpec, key *ecdsa.PrivateKey, parent *issued) *issued {
	t.Helper()

	notBefore, notAfter := spec.notBefore, spec.notAfter
	if notBefore.IsZero() {
		notBefore = anchorTime.Add(-time.Hour)
	}
	if notAfter.IsZero() {
		notAfter = anchorTime.Add(24 * time.Hour)
	}

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(serialCounter.Add(1)),
		Subject:               pkix.Name{CommonName: spec.subject},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		BasicConstraintsValid: spec.isCA,
		IsCA:                  spec.isCA,
		KeyUsage:              spec.keyUsage,
		ExtKeyUsage:           spec.ekus,
		DNSNames:              spec.dnsNames,
		EmailAddresses:        spec.emails,
		IPAddresses:           spec.ips,
		ExtraExtensions:       spec.extra,
	}
	if spec.isCA && spec.maxPathLen >= 0 {
		template.MaxPathLen = spec.maxPathLen
		template.MaxPathLenZero = spec.maxPathLen == 0
	}
	if len(spec.permittedDNS) > 0 || len(spec.excludedDNS) > 0 || len(spec.permittedIP) > 0 {
		template.PermittedDNSDomains = spec.permittedDNS
		template.ExcludedDNSDomains = spec.excludedDNS
		template.PermittedIPRanges = spec.permittedIP
		template.PermittedDNSDomainsCritical = true
	}

	signerCert, signerKey := template, key
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, signerCert, &key.PublicKey, signerKey)
	require.NoError(t, err, "issuing %q", spec.subject)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err, "reparsing %q", spec.subject)

	return &issued{cert: cert, key: key}
}

// ca is shorthand for a CA spec with keyCertSign and no pathLenConstraint.
func ca(subject string) certSpec {
	return certSpec{
		subject:    subject,
		isCA:       true,
		maxPathLen: -1,
		keyUsage:   x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}
}

// leaf is shorthand for an end-entity spec with the given DNS names.
func leaf(subject string, dnsNames ...string) certSpec {
	return certSpec{
		subject:    subject,
		maxPathLen: -1,
		keyUsage:   x509.KeyUsageDigitalSignature,
		dnsNames:   dnsNames,
	}
}
