// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import "errors"

var (
	// ErrNilCertificate indicates a nil certificate was supplied to the store.
	ErrNilCertificate = errors.New("pathval: nil certificate")

	// ErrStoreNotInitialized indicates path enumeration was requested before
	// Store.Initialize.
	ErrStoreNotInitialized = errors.New("pathval: store not initialized")

	// ErrUnsupportedConstraintForm indicates a NameConstraints extension
	// carries a subtree form this engine does not evaluate (IP address,
	// otherName, ediPartyName).
	ErrUnsupportedConstraintForm = errors.New("pathval: unsupported name constraint form")

	// ErrUnsupportedPolicyExtension indicates a certificate carries policy
	// processing machinery (policyConstraints, policyMappings,
	// inhibitAnyPolicy) that this engine does not implement. Callers must
	// surface this as an unsupported feature rather than a rejection.
	ErrUnsupportedPolicyExtension = errors.New("pathval: certificate policy constraint processing not supported")

	// ErrMalformedNameConstraints indicates a NameConstraints extension
	// failed to decode.
	ErrMalformedNameConstraints = errors.New("pathval: malformed name constraints extension")

	// ErrMalformedSAN indicates a SubjectAltName extension failed to decode.
	ErrMalformedSAN = errors.New("pathval: malformed subject alternative name extension")

	// ErrUnhandledCriticalExtension indicates a certificate in the path
	// carries a critical extension this engine does not process.
	ErrUnhandledCriticalExtension = errors.New("pathval: unhandled critical extension")

	// ErrAnchorKeyUsage indicates a trust anchor's key-usage extension does
	// not permit certificate signing, making every path from it invalid.
	ErrAnchorKeyUsage = errors.New("pathval: trust anchor key usage does not permit certificate signing")
)
