// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"crypto/x509"
	"fmt"
)

// EnforceAnchorConstraints derives effective settings for validating paths
// that terminate at the given trust anchor, per RFC 5937: constraints
// embedded in the anchor certificate narrow the caller's settings. The
// caller's settings are never mutated.
//
// Enforcement failures are errors, not rejection statuses: a path whose
// anchor constraints cannot be derived must not be treated as validated.
// An anchor carrying an unevaluable name-constraint form yields an error
// wrapping ErrUnsupportedConstraintForm so callers can degrade to an
// unsupported-feature verdict instead of a hard failure.
func EnforceAnchorConstraints(settings *Settings, anchor *TrustAnchor) (*Settings, error) {
	eff := settings.Clone()
	if !settings.EnforceTrustAnchorConstraints {
		return eff, nil
	}

	cert := anchor.Cert

	// An anchor that may not sign certificates can anchor no path at all.
	if hasExtension(cert, oidKeyUsage) && cert.KeyUsage&x509.KeyUsageCertSign == 0 {
		return nil, ErrAnchorKeyUsage
	}

	if plen, ok := pathLenConstraint(cert); ok {
		if eff.InitialPathLength == PathLengthUnlimited || plen < eff.InitialPathLength {
			eff.InitialPathLength = plen
		}
	}

	if hasExtension(cert, oidNameConstraints) {
		if eff.InitialConstraints == nil {
			eff.InitialConstraints = NewConstraintSet()
		}
		if _, err := eff.InitialConstraints.AddFromCertificate(cert); err != nil {
			return nil, fmt.Errorf("pathval: trust anchor constraints: %w", err)
		}
	}

	return eff, nil
}

// pathLenConstraint returns cert's BasicConstraints pathLenConstraint and
// whether one is present. The stdlib encodes absence as MaxPathLen -1, or
// 0 with MaxPathLenZero unset.
func pathLenConstraint(cert *x509.Certificate) (int, bool) {
	if !cert.BasicConstraintsValid {
		return 0, false
	}
	if cert.MaxPathLen > 0 || (cert.MaxPathLen == 0 && cert.MaxPathLenZero) {
		return cert.MaxPathLen, true
	}
	return 0, false
}
