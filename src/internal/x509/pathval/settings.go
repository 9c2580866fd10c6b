// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
	"time"
)

// PathLengthUnlimited disables the initial path-length constraint.
const PathLengthUnlimited = -1

// Settings is the policy configuration applied to one path-validation
// attempt. It is treated as immutable input: [EnforceAnchorConstraints]
// narrows a copy, never the original.
type Settings struct {
	// TimeOfInterest is the validation time in seconds since the Unix
	// epoch. Every certificate in a path must be valid at this instant.
	TimeOfInterest int64

	// TargetKeyUsage holds key-usage bits the target certificate must
	// assert. Zero means the target key usage is not checked.
	TargetKeyUsage x509.KeyUsage

	// TargetEKUs holds dotted-decimal extended-key-usage OIDs the target
	// certificate must cover. Empty means EKU is not checked.
	TargetEKUs []string

	// InitialPathLength caps the number of intermediate CA certificates
	// in a path, or PathLengthUnlimited for no cap.
	InitialPathLength int

	// EnforceTrustAnchorConstraints enables RFC 5937 processing of
	// constraints embedded in the trust anchor certificate.
	EnforceTrustAnchorConstraints bool

	// ExtendedKeyUsagePath extends the TargetEKUs check along the chain:
	// intermediates carrying an EKU extension must also cover the target
	// EKUs (or assert anyExtendedKeyUsage).
	ExtendedKeyUsagePath bool

	// InitialConstraints seeds the accumulated name-constraint state,
	// typically from a trust anchor's own NameConstraints extension.
	InitialConstraints *ConstraintSet
}

// NewSettings returns Settings with no target checks, an unlimited path
// length, and the time of interest set to now.
func NewSettings() *Settings {
	return &Settings{
		TimeOfInterest:    time.Now().Unix(),
		InitialPathLength: PathLengthUnlimited,
	}
}

// Clone returns a deep copy of s. The copy owns its own EKU slice and
// constraint set, so narrowing it leaves s untouched.
func (s *Settings) Clone() *Settings {
	c := *s
	c.TargetEKUs = append([]string(nil), s.TargetEKUs...)
	if s.InitialConstraints != nil {
		c.InitialConstraints = s.InitialConstraints.Clone()
	}
	return &c
}
