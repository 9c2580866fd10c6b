// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkival/pathvet/src/internal/limbo"
)

// evalTime is the fixed validation instant every test vector declares.
var evalTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

var serialCounter atomic.Int64

// pkiCert is one synthetic certificate with its key and PEM encoding.
type pkiCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
	pem  string
}

// pkiSpec describes a certificate to mint for a test vector.
type pkiSpec struct {
	subject      string
	isCA         bool
	keyUsage     x509.KeyUsage
	ekus         []x509.ExtKeyUsage
	dnsNames     []string
	ips          []net.IP
	permittedDNS []string
	permittedIP  []*net.IPNet
	notAfter     time.Time
	extra        []pkix.Extension
}

// mint creates, signs, parses, and PEM-encodes one certificate. A nil
// parent self-signs.
func mint(t *testing.T, spec pkiSpec, parent *pkiCert) *pkiCert {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	notAfter := spec.notAfter
	if notAfter.IsZero() {
		notAfter = evalTime.Add(24 * time.Hour)
	}

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(serialCounter.Add(1)),
		Subject:               pkix.Name{CommonName: spec.subject},
		NotBefore:             evalTime.Add(-time.Hour),
		NotAfter:              notAfter,
		BasicConstraintsValid: spec.isCA,
		IsCA:                  spec.isCA,
		KeyUsage:              spec.keyUsage,
		ExtKeyUsage:           spec.ekus,
		DNSNames:              spec.dnsNames,
		IPAddresses:           spec.ips,
		ExtraExtensions:       spec.extra,
	}
	if len(spec.permittedDNS) > 0 || len(spec.permittedIP) > 0 {
		template.PermittedDNSDomains = spec.permittedDNS
		template.PermittedIPRanges = spec.permittedIP
		template.PermittedDNSDomainsCritical = true
	}

	signerCert, signerKey := template, key
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, signerCert, &key.PublicKey, signerKey)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	pemData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return &pkiCert{cert: cert, key: key, pem: string(pemData)}
}

// mintCA mints a self-signed or cross-signed CA with keyCertSign.
func mintCA(t *testing.T, subject string, parent *pkiCert) *pkiCert {
	return mint(t, pkiSpec{
		subject:  subject,
		isCA:     true,
		keyUsage: x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}, parent)
}

// mintLeaf mints a server-style end entity under parent.
func mintLeaf(t *testing.T, subject string, parent *pkiCert, dnsNames ...string) *pkiCert {
	return mint(t, pkiSpec{
		subject:  subject,
		keyUsage: x509.KeyUsageDigitalSignature,
		ekus:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		dnsNames: dnsNames,
	}, parent)
}

// vector assembles a testcase around a trust configuration.
func vector(id, expected string, anchors, intermediates []*pkiCert, target *pkiCert) limbo.Testcase {
	tc := limbo.Testcase{
		ID:              id,
		ValidationKind:  limbo.ValidationKindServer,
		ExpectedResult:  expected,
		PeerCertificate: target.pem,
		ValidationTime:  &evalTime,
	}
	for _, a := range anchors {
		tc.TrustedCerts = append(tc.TrustedCerts, a.pem)
	}
	for _, i := range intermediates {
		tc.UntrustedIntermediates = append(tc.UntrustedIntermediates, i.pem)
	}
	return tc
}
