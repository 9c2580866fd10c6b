// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
	"encoding/asn1"
)

// Extension OIDs from RFC 5280 section 4.2.
var (
	oidKeyUsage          = asn1.ObjectIdentifier{2, 5, 29, 15}
	oidSubjectAltName    = asn1.ObjectIdentifier{2, 5, 29, 17}
	oidBasicConstraints  = asn1.ObjectIdentifier{2, 5, 29, 19}
	oidNameConstraints   = asn1.ObjectIdentifier{2, 5, 29, 30}
	oidPolicyMappings    = asn1.ObjectIdentifier{2, 5, 29, 33}
	oidPolicyConstraints = asn1.ObjectIdentifier{2, 5, 29, 36}
	oidExtendedKeyUsage  = asn1.ObjectIdentifier{2, 5, 29, 37}
	oidInhibitAnyPolicy  = asn1.ObjectIdentifier{2, 5, 29, 54}
)

// OIDAnyExtendedKeyUsage is the anyExtendedKeyUsage EKU in dotted form.
const OIDAnyExtendedKeyUsage = "2.5.29.37.0"

// Well-known extended key usage OIDs in dotted form, as requested by test
// vectors and asserted by leaf certificates.
const (
	OIDServerAuth      = "1.3.6.1.5.5.7.3.1"
	OIDClientAuth      = "1.3.6.1.5.5.7.3.2"
	OIDCodeSigning     = "1.3.6.1.5.5.7.3.3"
	OIDEmailProtection = "1.3.6.1.5.5.7.3.4"
	OIDTimeStamping    = "1.3.6.1.5.5.7.3.8"
	OIDOCSPSigning     = "1.3.6.1.5.5.7.3.9"
)

// extensionValue returns the raw DER value of the extension with the given
// OID, or nil if the certificate does not carry it.
func extensionValue(cert *x509.Certificate, oid asn1.ObjectIdentifier) []byte {
	for _, ext := range cert.Extensions {
		if ext.Id.Equal(oid) {
			return ext.Value
		}
	}
	return nil
}

// hasExtension reports whether cert carries the extension with the given OID.
func hasExtension(cert *x509.Certificate, oid asn1.ObjectIdentifier) bool {
	return extensionValue(cert, oid) != nil
}

// ekuOIDs returns the dotted-decimal EKU OIDs cert asserts, and whether an
// ExtendedKeyUsage extension is present at all.
func ekuOIDs(cert *x509.Certificate) ([]string, bool, error) {
	der := extensionValue(cert, oidExtendedKeyUsage)
	if der == nil {
		return nil, false, nil
	}

	var oids []asn1.ObjectIdentifier
	rest, err := asn1.Unmarshal(der, &oids)
	if err != nil || len(rest) != 0 {
		return nil, true, ErrMalformedExtension("ExtendedKeyUsage")
	}

	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.String())
	}
	return out, true, nil
}

// ErrMalformedExtension wraps an extension name into a validator-level
// decode error.
func ErrMalformedExtension(name string) error {
	return &MalformedExtensionError{Name: name}
}

// MalformedExtensionError indicates an extension failed to decode during
// validation. It is a validator error, not a rejection status.
type MalformedExtensionError struct {
	// Name is the extension that failed to decode.
	Name string
}

// Error implements the error interface.
func (e *MalformedExtensionError) Error() string {
	return "pathval: malformed " + e.Name + " extension"
}

// hasPolicyMachinery reports whether cert carries policy processing
// extensions this engine does not implement, which must be surfaced as an
// unsupported feature rather than silently ignored.
func hasPolicyMachinery(cert *x509.Certificate) bool {
	return hasExtension(cert, oidPolicyConstraints) ||
		hasExtension(cert, oidPolicyMappings) ||
		hasExtension(cert, oidInhibitAnyPolicy)
}

// selfIssued reports whether cert's issuer and subject are byte-identical.
func selfIssued(cert *x509.Certificate) bool {
	return string(cert.RawIssuer) == string(cert.RawSubject)
}
