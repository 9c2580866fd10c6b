// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
	"strings"
)

// Path is one candidate certification path: an ordered chain from the
// target certificate through zero or more intermediates to a single trust
// anchor. Intermediates are ordered leaf-ward first, so
// Intermediates[0] issued the target.
type Path struct {
	// Target is the leaf certificate being validated.
	Target *x509.Certificate
	// Intermediates are the untrusted CA certificates between target and
	// anchor, leaf-ward first.
	Intermediates []*x509.Certificate
	// Anchor is the trust anchor the path terminates at.
	Anchor *TrustAnchor
}

// Certs returns the path's certificates ordered from the trust anchor down
// to the target, which is the order the RFC 5280 algorithm processes them.
func (p *Path) Certs() []*x509.Certificate {
	certs := make([]*x509.Certificate, 0, len(p.Intermediates)+2)
	certs = append(certs, p.Anchor.Cert)
	for i := len(p.Intermediates) - 1; i >= 0; i-- {
		certs = append(certs, p.Intermediates[i])
	}
	return append(certs, p.Target)
}

// String renders the path as anchor -> ... -> target subjects, for
// diagnostics.
func (p *Path) String() string {
	var b strings.Builder
	for i, cert := range p.Certs() {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(subjectLabel(cert))
	}
	return b.String()
}

// subjectLabel returns a short human-readable label for a certificate.
func subjectLabel(cert *x509.Certificate) string {
	if cn := cert.Subject.CommonName; cn != "" {
		return cn
	}
	if name := cert.Subject.String(); name != "" {
		return name
	}
	return "(empty subject)"
}
