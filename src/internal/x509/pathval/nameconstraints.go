// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"reflect"
	"strings"
)

// GeneralName context tags from RFC 5280 section 4.2.1.6.
const (
	tagOtherName     = 0
	tagRFC822Name    = 1
	tagDNSName       = 2
	tagX400Address   = 3
	tagDirectoryName = 4
	tagEDIPartyName  = 5
	tagURI           = 6
	tagIPAddress     = 7
	tagRegisteredID  = 8
)

// NameKind identifies a name form handled by the constraints engine.
type NameKind int

const (
	// KindDNS is a dNSName.
	KindDNS NameKind = iota
	// KindRFC822 is an rfc822Name (email address).
	KindRFC822
	// KindURI is a uniformResourceIdentifier.
	KindURI
	// KindDirectory is a directoryName.
	KindDirectory
)

// nameConstraints mirrors the ASN.1 NameConstraints structure.
type nameConstraints struct {
	Permitted []generalSubtree `asn1:"tag:0,optional"`
	Excluded  []generalSubtree `asn1:"tag:1,optional"`
}

// generalSubtree holds a base GeneralName plus the (unused) min/max bounds.
type generalSubtree struct {
	Base    asn1.RawValue
	Minimum int `asn1:"tag:0,optional,default:0"`
	Maximum int `asn1:"tag:1,optional"`
}

// subtreeLayer holds the permitted/excluded subtrees contributed by a single
// NameConstraints extension. RFC 5280 requires every layer encountered along
// a path to hold independently, which is how intersection is realized here:
// a name is within the accumulated state only if it is within every layer.
type subtreeLayer struct {
	permittedDNS, excludedDNS     []string
	permittedEmail, excludedEmail []string
	permittedURI, excludedURI     []string
	permittedDir, excludedDir     []pkix.RDNSequence
}

// ConstraintSet is accumulated name-constraint state: one layer per
// NameConstraints extension encountered (or one synthetic layer for
// expected-peer-name checks).
type ConstraintSet struct {
	layers []*subtreeLayer
}

// NewConstraintSet returns an empty constraint set that permits everything.
func NewConstraintSet() *ConstraintSet { return &ConstraintSet{} }

// Clone returns a copy of the set sharing no mutable state with the
// original. Layers are immutable after construction, so they are shared.
func (cs *ConstraintSet) Clone() *ConstraintSet {
	return &ConstraintSet{layers: append([]*subtreeLayer(nil), cs.layers...)}
}

// Empty reports whether the set constrains anything at all.
func (cs *ConstraintSet) Empty() bool { return len(cs.layers) == 0 }

// AddPermitted adds a permitted entry of the given kind to the set's
// synthetic first layer. It is used to approximate application-level peer
// name checking from a test vector's expected names.
func (cs *ConstraintSet) AddPermitted(kind NameKind, value string) {
	if len(cs.layers) == 0 {
		cs.layers = append(cs.layers, &subtreeLayer{})
	}
	layer := cs.layers[0]
	switch kind {
	case KindDNS:
		layer.permittedDNS = append(layer.permittedDNS, value)
	case KindRFC822:
		layer.permittedEmail = append(layer.permittedEmail, value)
	case KindURI:
		layer.permittedURI = append(layer.permittedURI, value)
	}
}

// AddFromCertificate parses cert's NameConstraints extension, if any, and
// appends it as a new layer. It reports whether a layer was added. Subtree
// forms the engine cannot evaluate produce ErrUnsupportedConstraintForm; an
// undecodable extension produces ErrMalformedNameConstraints.
func (cs *ConstraintSet) AddFromCertificate(cert *x509.Certificate) (bool, error) {
	der := extensionValue(cert, oidNameConstraints)
	if der == nil {
		return false, nil
	}

	layer, err := parseConstraintLayer(der)
	if err != nil {
		return false, err
	}

	cs.layers = append(cs.layers, layer)
	return true, nil
}

// parseConstraintLayer decodes one NameConstraints extension value.
func parseConstraintLayer(der []byte) (*subtreeLayer, error) {
	var nc nameConstraints
	rest, err := asn1.Unmarshal(der, &nc)
	if err != nil || len(rest) != 0 {
		return nil, ErrMalformedNameConstraints
	}

	layer := &subtreeLayer{}
	for _, group := range []struct {
		subtrees []generalSubtree
		dns      *[]string
		email    *[]string
		uri      *[]string
		dir      *[]pkix.RDNSequence
	}{
		{nc.Permitted, &layer.permittedDNS, &layer.permittedEmail, &layer.permittedURI, &layer.permittedDir},
		{nc.Excluded, &layer.excludedDNS, &layer.excludedEmail, &layer.excludedURI, &layer.excludedDir},
	} {
		for _, st := range group.subtrees {
			switch st.Base.Tag {
			case tagDNSName:
				*group.dns = append(*group.dns, string(st.Base.Bytes))
			case tagRFC822Name:
				*group.email = append(*group.email, string(st.Base.Bytes))
			case tagURI:
				*group.uri = append(*group.uri, string(st.Base.Bytes))
			case tagDirectoryName:
				var rdns pkix.RDNSequence
				if _, err := asn1.Unmarshal(st.Base.Bytes, &rdns); err != nil {
					return nil, ErrMalformedNameConstraints
				}
				*group.dir = append(*group.dir, rdns)
			case tagOtherName, tagEDIPartyName, tagIPAddress:
				return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedConstraintForm, st.Base.Tag)
			default:
				// x400Address and registeredID subtrees have no practical
				// issuance semantics; they constrain nothing we check.
			}
		}
	}
	return layer, nil
}

// CheckCertificate tests every name asserted by leaf (subject distinguished
// name, SAN dNSNames, rfc822Names, URIs, and SAN directoryNames) against
// every accumulated layer. It returns true when all names are within the
// permitted subtrees and outside the excluded ones, otherwise false plus a
// description of the first offending name.
func (cs *ConstraintSet) CheckCertificate(leaf *x509.Certificate) (bool, string) {
	if cs.Empty() {
		return true, ""
	}

	dirNames, _ := leafDirectoryNames(leaf)
	for _, layer := range cs.layers {
		for _, name := range leaf.DNSNames {
			if !layer.permits(KindDNS, name) {
				return false, fmt.Sprintf("dNSName %q", name)
			}
		}
		for _, email := range leaf.EmailAddresses {
			if !layer.permits(KindRFC822, email) {
				return false, fmt.Sprintf("rfc822Name %q", email)
			}
		}
		for _, uri := range leaf.URIs {
			if !layer.permits(KindURI, uri.Hostname()) {
				return false, fmt.Sprintf("uniformResourceIdentifier %q", uri.String())
			}
		}
		for _, rdns := range dirNames {
			if !layer.permitsDirectory(rdns) {
				return false, fmt.Sprintf("directoryName %q", rdns.String())
			}
		}
	}
	return true, ""
}

// SANWithinPermitted reports whether every SAN entry of a constrained form
// is within the set's permitted subtrees. Excluded subtrees and name forms
// without a permitted list are ignored; this is the acceptance rule used
// for expected-peer-name approximation.
func (cs *ConstraintSet) SANWithinPermitted(leaf *x509.Certificate) bool {
	for _, layer := range cs.layers {
		if len(layer.permittedDNS) > 0 {
			for _, name := range leaf.DNSNames {
				if !withinAny(name, layer.permittedDNS, dnsNameWithin) {
					return false
				}
			}
		}
		if len(layer.permittedEmail) > 0 {
			for _, email := range leaf.EmailAddresses {
				if !withinAny(email, layer.permittedEmail, emailWithin) {
					return false
				}
			}
		}
		if len(layer.permittedURI) > 0 {
			for _, uri := range leaf.URIs {
				if !withinAny(uri.Hostname(), layer.permittedURI, dnsNameWithin) {
					return false
				}
			}
		}
	}
	return true
}

// permits tests a single string-form name against one layer.
func (l *subtreeLayer) permits(kind NameKind, name string) bool {
	var permitted, excluded []string
	var match func(name, constraint string) bool

	switch kind {
	case KindDNS:
		permitted, excluded, match = l.permittedDNS, l.excludedDNS, dnsNameWithin
	case KindRFC822:
		permitted, excluded, match = l.permittedEmail, l.excludedEmail, emailWithin
	case KindURI:
		permitted, excluded, match = l.permittedURI, l.excludedURI, dnsNameWithin
	default:
		return true
	}

	// Exclusion always wins, even over a matching permitted subtree.
	if withinAny(name, excluded, match) {
		return false
	}
	if len(permitted) > 0 && !withinAny(name, permitted, match) {
		return false
	}
	return true
}

// permitsDirectory tests a directoryName against one layer using RDN
// prefix matching.
func (l *subtreeLayer) permitsDirectory(rdns pkix.RDNSequence) bool {
	for _, excl := range l.excludedDir {
		if rdnPrefixMatch(excl, rdns) {
			return false
		}
	}
	if len(l.permittedDir) > 0 {
		for _, perm := range l.permittedDir {
			if rdnPrefixMatch(perm, rdns) {
				return true
			}
		}
		return false
	}
	return true
}

// withinAny reports whether name is within at least one constraint.
func withinAny(name string, constraints []string, match func(name, constraint string) bool) bool {
	for _, c := range constraints {
		if match(name, c) {
			return true
		}
	}
	return false
}

// dnsNameWithin implements the RFC 5280 section 4.2.1.10 dNSName subtree
// test: equality or subdomain at a label boundary. A constraint with a
// leading period matches subdomains only; an empty constraint matches any
// name.
func dnsNameWithin(name, constraint string) bool {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	constraint = strings.ToLower(strings.TrimSuffix(constraint, "."))

	if constraint == "" {
		return true
	}
	if strings.HasPrefix(constraint, ".") {
		return strings.HasSuffix(name, constraint)
	}
	return name == constraint || strings.HasSuffix(name, "."+constraint)
}

// emailWithin implements the rfc822Name subtree test: a constraint with an
// @ is a complete mailbox and must match exactly; a bare host matches the
// mailbox host; a leading period matches any mailbox in a subdomain.
func emailWithin(email, constraint string) bool {
	email = strings.ToLower(email)
	constraint = strings.ToLower(constraint)

	if strings.Contains(constraint, "@") {
		return email == constraint
	}

	host := email
	if at := strings.LastIndex(email, "@"); at >= 0 {
		host = email[at+1:]
	}
	if strings.HasPrefix(constraint, ".") {
		return strings.HasSuffix(host, constraint)
	}
	return host == constraint
}

// rdnPrefixMatch reports whether prefix is an ordered RDN prefix of name,
// which is the RFC 5280 directoryName subtree relation.
func rdnPrefixMatch(prefix, name pkix.RDNSequence) bool {
	if len(prefix) > len(name) {
		return false
	}
	for i := range prefix {
		if !rdnEqual(prefix[i], name[i]) {
			return false
		}
	}
	return true
}

// rdnEqual compares two relative distinguished names attribute by attribute.
func rdnEqual(a, b pkix.RelativeDistinguishedNameSET) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Type.Equal(b[i].Type) || !reflect.DeepEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// leafDirectoryNames collects the directoryNames a leaf asserts: its
// subject DN plus any directoryName SAN entries.
func leafDirectoryNames(leaf *x509.Certificate) ([]pkix.RDNSequence, error) {
	var out []pkix.RDNSequence

	var subject pkix.RDNSequence
	if _, err := asn1.Unmarshal(leaf.RawSubject, &subject); err != nil {
		return nil, fmt.Errorf("pathval: undecodable subject: %w", err)
	}
	if len(subject) > 0 {
		out = append(out, subject)
	}

	names, err := sanGeneralNames(leaf)
	if err != nil {
		return out, err
	}
	for _, gn := range names {
		if gn.Tag != tagDirectoryName {
			continue
		}
		var rdns pkix.RDNSequence
		if _, err := asn1.Unmarshal(gn.Bytes, &rdns); err != nil {
			return out, ErrMalformedSAN
		}
		out = append(out, rdns)
	}
	return out, nil
}

// sanGeneralNames returns the raw GeneralName entries of cert's SAN
// extension, or nil if the extension is absent.
func sanGeneralNames(cert *x509.Certificate) ([]asn1.RawValue, error) {
	der := extensionValue(cert, oidSubjectAltName)
	if der == nil {
		return nil, nil
	}

	var seq asn1.RawValue
	rest, err := asn1.Unmarshal(der, &seq)
	if err != nil || len(rest) != 0 || seq.Class != asn1.ClassUniversal || seq.Tag != asn1.TagSequence {
		return nil, ErrMalformedSAN
	}

	var names []asn1.RawValue
	data := seq.Bytes
	for len(data) > 0 {
		var gn asn1.RawValue
		data, err = asn1.Unmarshal(data, &gn)
		if err != nil {
			return nil, ErrMalformedSAN
		}
		names = append(names, gn)
	}
	return names, nil
}

// HasSAN reports whether cert carries a SubjectAltName extension.
func HasSAN(cert *x509.Certificate) bool {
	return extensionValue(cert, oidSubjectAltName) != nil
}

// HasUnsupportedSANEntry reports whether cert's SAN carries a GeneralName
// form the constraints engine cannot judge (an IP address entry).
func HasUnsupportedSANEntry(cert *x509.Certificate) bool {
	if len(cert.IPAddresses) > 0 {
		return true
	}
	names, err := sanGeneralNames(cert)
	if err != nil {
		return false
	}
	for _, gn := range names {
		if gn.Tag == tagIPAddress {
			return true
		}
	}
	return false
}

// HasUnsupportedNameConstraint reports whether cert carries a
// NameConstraints extension with a subtree form the engine cannot evaluate
// (IP address, otherName, ediPartyName). Undecodable extensions report
// false; they surface later as validator errors.
func HasUnsupportedNameConstraint(cert *x509.Certificate) bool {
	der := extensionValue(cert, oidNameConstraints)
	if der == nil {
		return false
	}

	var nc nameConstraints
	if rest, err := asn1.Unmarshal(der, &nc); err != nil || len(rest) != 0 {
		return false
	}
	for _, subtrees := range [][]generalSubtree{nc.Permitted, nc.Excluded} {
		for _, st := range subtrees {
			switch st.Base.Tag {
			case tagOtherName, tagEDIPartyName, tagIPAddress:
				return true
			}
		}
	}
	return false
}
