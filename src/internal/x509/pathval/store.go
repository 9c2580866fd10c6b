// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
)

// TrustAnchor designates a certificate as unconditionally trusted for path
// building. Constraint overrides embedded in the certificate itself are
// derived at validation time by [EnforceAnchorConstraints].
type TrustAnchor struct {
	// Cert is the anchor certificate.
	Cert *x509.Certificate
}

// Store holds the trust anchors and untrusted intermediates supplied for
// one test-vector evaluation, indexes them by subject name, and caches all
// partial issuer chains that terminate at a trust anchor.
//
// A Store is not safe for concurrent mutation; build and initialize it,
// then treat it as read-only.
type Store struct {
	anchors         []*TrustAnchor
	certs           []*x509.Certificate
	bySubject       map[string][]int
	anchorBySubject map[string][]int
	partial         [][]int
	initialized     bool
}

// NewStore creates an empty certificate store.
func NewStore() *Store {
	return &Store{
		bySubject:       make(map[string][]int),
		anchorBySubject: make(map[string][]int),
	}
}

// AddAnchor inserts a trust anchor certificate.
func (s *Store) AddAnchor(cert *x509.Certificate) error {
	if cert == nil {
		return ErrNilCertificate
	}
	s.anchors = append(s.anchors, &TrustAnchor{Cert: cert})
	return nil
}

// Add inserts an untrusted intermediate certificate. Duplicates are kept;
// the path builder's identity guard prevents them from multiplying paths.
func (s *Store) Add(cert *x509.Certificate) error {
	if cert == nil {
		return ErrNilCertificate
	}
	s.certs = append(s.certs, cert)
	return nil
}

// Anchors returns the trust anchors in insertion order.
func (s *Store) Anchors() []*TrustAnchor { return s.anchors }

// Initialize builds the subject-name indexes and computes the partial-path
// cache. It must be called once, after all certificates are added and
// before PathsForTarget.
func (s *Store) Initialize() error {
	for i, cert := range s.certs {
		subject := string(cert.RawSubject)
		s.bySubject[subject] = append(s.bySubject[subject], i)
	}
	for i, anchor := range s.anchors {
		subject := string(anchor.Cert.RawSubject)
		s.anchorBySubject[subject] = append(s.anchorBySubject[subject], i)
	}

	s.partial = s.findAllPartialPaths()
	s.initialized = true
	return nil
}

// findAllPartialPaths computes, for every stored certificate, all chains of
// issuer links that end at a certificate issued by some trust anchor. The
// exploration is bounded by the number of distinct stored certificates and
// an identity guard, so cross-signed and cyclic inputs terminate.
func (s *Store) findAllPartialPaths() [][]int {
	var out [][]int
	for i := range s.certs {
		s.extendChain([]int{i}, &out)
	}
	return out
}

// extendChain records chain if its last certificate is issued by an anchor,
// then explores every issuer of the last certificate that is not already
// represented in the chain.
func (s *Store) extendChain(chain []int, out *[][]int) {
	last := s.certs[chain[len(chain)-1]]
	issuer := string(last.RawIssuer)

	if len(s.anchorBySubject[issuer]) > 0 {
		*out = append(*out, append([]int(nil), chain...))
	}

	if len(chain) >= len(s.certs) {
		return
	}

	for _, j := range s.bySubject[issuer] {
		if s.identityInChain(chain, s.certs[j]) {
			continue
		}
		s.extendChain(append(chain, j), out)
	}
}

// identityInChain reports whether a certificate with the same subject and
// public key as candidate already appears in chain. Matching on subject
// plus key rather than raw bytes stops loops built from re-issued or
// cross-signed copies of the same CA.
func (s *Store) identityInChain(chain []int, candidate *x509.Certificate) bool {
	for _, idx := range chain {
		cert := s.certs[idx]
		if string(cert.RawSubject) == string(candidate.RawSubject) &&
			string(cert.RawSubjectPublicKeyInfo) == string(candidate.RawSubjectPublicKeyInfo) {
			return true
		}
	}
	return false
}

// PartialPaths materializes the cached partial chains, ordered leaf-ward
// certificate first. It is primarily useful for diagnostics and tests.
func (s *Store) PartialPaths() [][]*x509.Certificate {
	out := make([][]*x509.Certificate, 0, len(s.partial))
	for _, chain := range s.partial {
		certs := make([]*x509.Certificate, 0, len(chain))
		for _, idx := range chain {
			certs = append(certs, s.certs[idx])
		}
		out = append(out, certs)
	}
	return out
}

// PathsForTarget enumerates every distinct certification path from target
// to some trust anchor. Ordering is deterministic for identical input:
// directly anchored paths come first, then paths through the partial-path
// cache in discovery order. An empty result is not an error.
func (s *Store) PathsForTarget(target *x509.Certificate) ([]*Path, error) {
	if !s.initialized {
		return nil, ErrStoreNotInitialized
	}
	if target == nil {
		return nil, ErrNilCertificate
	}

	var paths []*Path
	targetIssuer := string(target.RawIssuer)

	for _, ai := range s.anchorBySubject[targetIssuer] {
		paths = append(paths, &Path{Target: target, Anchor: s.anchors[ai]})
	}

	for _, chain := range s.partial {
		first := s.certs[chain[0]]
		if string(first.RawSubject) != targetIssuer {
			continue
		}
		if s.identityInChain(chain, target) {
			continue
		}

		last := s.certs[chain[len(chain)-1]]
		for _, ai := range s.anchorBySubject[string(last.RawIssuer)] {
			inters := make([]*x509.Certificate, 0, len(chain))
			for _, idx := range chain {
				inters = append(inters, s.certs[idx])
			}
			paths = append(paths, &Path{
				Target:        target,
				Intermediates: inters,
				Anchor:        s.anchors[ai],
			})
		}
	}

	return paths, nil
}
