// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import "fmt"

// Status is the outcome of validating one certification path.
//
// A Status is only meaningful when [ValidatePath] returns a nil error; a
// non-nil error means the path could not be evaluated at all, which is a
// different condition from a rejection.
type Status int

const (
	// StatusValid indicates the path satisfied every check.
	StatusValid Status = iota
	// StatusNotYetValid indicates the time of interest precedes a
	// certificate's notBefore.
	StatusNotYetValid
	// StatusExpired indicates the time of interest follows a
	// certificate's notAfter.
	StatusExpired
	// StatusSignatureMismatch indicates a certificate's signature did not
	// verify under its issuer's public key.
	StatusSignatureMismatch
	// StatusNameChainingFailure indicates a certificate's issuer name did
	// not match its issuer's subject name.
	StatusNameChainingFailure
	// StatusMissingBasicConstraints indicates an intermediate lacked the
	// BasicConstraints extension.
	StatusMissingBasicConstraints
	// StatusBasicConstraintsViolation indicates an intermediate carried
	// BasicConstraints with cA=FALSE.
	StatusBasicConstraintsViolation
	// StatusPathLengthViolation indicates a pathLenConstraint (or the
	// initial path-length setting) was exceeded.
	StatusPathLengthViolation
	// StatusKeyUsageViolation indicates a key-usage check failed: an
	// intermediate without keyCertSign, or a target missing requested bits.
	StatusKeyUsageViolation
	// StatusEKUViolation indicates an extended-key-usage check failed.
	StatusEKUViolation
	// StatusNameConstraintsViolation indicates the target's names fell
	// outside the accumulated permitted subtrees or inside an excluded one.
	StatusNameConstraintsViolation
	// StatusAnchorConstraintViolation indicates a constraint embedded in
	// the trust anchor rejected the path.
	StatusAnchorConstraintViolation
)

// String returns a short lowercase identifier for the status.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusNotYetValid:
		return "not yet valid"
	case StatusExpired:
		return "expired"
	case StatusSignatureMismatch:
		return "signature mismatch"
	case StatusNameChainingFailure:
		return "name chaining failure"
	case StatusMissingBasicConstraints:
		return "missing basic constraints"
	case StatusBasicConstraintsViolation:
		return "basic constraints violation"
	case StatusPathLengthViolation:
		return "path length violation"
	case StatusKeyUsageViolation:
		return "key usage violation"
	case StatusEKUViolation:
		return "extended key usage violation"
	case StatusNameConstraintsViolation:
		return "name constraints violation"
	case StatusAnchorConstraintViolation:
		return "trust anchor constraint violation"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// CheckEntry records the outcome of one check against one certificate in a
// path, for diagnosability.
type CheckEntry struct {
	// Subject identifies the certificate the check ran against.
	Subject string
	// Check names the check, e.g. "validity", "signature".
	Check string
	// Status is the outcome the check produced.
	Status Status
	// Detail optionally elaborates on a failure.
	Detail string
}

// Results accumulates per-certificate check outcomes during one
// [ValidatePath] run.
type Results struct {
	entries []CheckEntry
}

// NewResults returns an empty results bag.
func NewResults() *Results { return &Results{} }

// record appends one check outcome.
func (r *Results) record(subject, check string, status Status, detail string) {
	r.entries = append(r.entries, CheckEntry{Subject: subject, Check: check, Status: status, Detail: detail})
}

// Entries returns the recorded check outcomes in the order they ran.
func (r *Results) Entries() []CheckEntry { return r.entries }

// Failures returns only the entries whose status is not StatusValid.
func (r *Results) Failures() []CheckEntry {
	var out []CheckEntry
	for _, e := range r.entries {
		if e.Status != StatusValid {
			out = append(out, e)
		}
	}
	return out
}
