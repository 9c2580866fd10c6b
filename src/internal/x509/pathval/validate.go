// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"time"
)

// ValidatePath runs the RFC 5280 certification-path validation algorithm
// over one path under one settings object, front-to-back from the trust
// anchor toward the target.
//
// The returned Status describes acceptance or a supported rejection
// reason. A non-nil error means the path could not be evaluated at all
// (malformed or unsupported extension content, unverifiable signature
// algorithm); callers must not fold such errors into a rejection verdict.
// Diagnostic check outcomes are appended to results when it is non-nil.
func ValidatePath(settings *Settings, path *Path, results *Results) (Status, error) {
	certs := path.Certs()
	toi := time.Unix(settings.TimeOfInterest, 0)

	// Structural scan before any semantic checks: unimplemented policy
	// machinery and unhandled critical extensions make the path
	// unevaluable rather than invalid.
	for _, cert := range certs {
		if hasPolicyMachinery(cert) {
			return StatusValid, fmt.Errorf("%w (%s)", ErrUnsupportedPolicyExtension, subjectLabel(cert))
		}
		for _, oid := range cert.UnhandledCriticalExtensions {
			// NameConstraints and SubjectAltName are reprocessed from
			// their raw values here even when the stdlib parser left
			// them unhandled.
			if oid.Equal(oidNameConstraints) || oid.Equal(oidSubjectAltName) {
				continue
			}
			return StatusValid, fmt.Errorf("%w: %v (%s)", ErrUnhandledCriticalExtension, oid, subjectLabel(cert))
		}
	}

	for i, cert := range certs {
		label := subjectLabel(cert)

		if toi.Before(cert.NotBefore) {
			return fail(results, label, "validity", StatusNotYetValid,
				fmt.Sprintf("notBefore %s", cert.NotBefore.UTC().Format(time.RFC3339)))
		}
		if toi.After(cert.NotAfter) {
			return fail(results, label, "validity", StatusExpired,
				fmt.Sprintf("notAfter %s", cert.NotAfter.UTC().Format(time.RFC3339)))
		}
		if results != nil {
			results.record(label, "validity", StatusValid, "")
		}

		if i == 0 {
			continue // anchor is trusted as-is beyond its validity window
		}

		parent := certs[i-1]
		if !bytes.Equal(cert.RawIssuer, parent.RawSubject) {
			return fail(results, label, "name chaining", StatusNameChainingFailure,
				fmt.Sprintf("issuer does not match subject of %s", subjectLabel(parent)))
		}

		if err := parent.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature); err != nil {
			var insecure x509.InsecureAlgorithmError
			if errors.Is(err, x509.ErrUnsupportedAlgorithm) || errors.As(err, &insecure) {
				return StatusValid, fmt.Errorf("pathval: cannot verify signature on %s: %w", label, err)
			}
			return fail(results, label, "signature", StatusSignatureMismatch, err.Error())
		}
		if results != nil {
			results.record(label, "signature", StatusValid, "")
		}

		if i == len(certs)-1 {
			continue // remaining checks apply to CA certificates only
		}

		if !cert.BasicConstraintsValid {
			return fail(results, label, "basic constraints", StatusMissingBasicConstraints, "extension absent")
		}
		if !cert.IsCA {
			return fail(results, label, "basic constraints", StatusBasicConstraintsViolation, "cA is FALSE")
		}
		if hasExtension(cert, oidKeyUsage) && cert.KeyUsage&x509.KeyUsageCertSign == 0 {
			return fail(results, label, "key usage", StatusKeyUsageViolation, "keyCertSign not asserted")
		}
	}

	if status, detail := checkPathLength(settings, path); status != StatusValid {
		return fail(results, subjectLabel(path.Target), "path length", status, detail)
	}

	if status, err := checkTargetUsage(settings, path, results); err != nil {
		return StatusValid, err
	} else if status != StatusValid {
		return status, nil
	}

	if status, err := checkNameConstraints(settings, path, results); err != nil {
		return StatusValid, err
	} else if status != StatusValid {
		return status, nil
	}

	if results != nil {
		results.record(subjectLabel(path.Target), "path", StatusValid, "")
	}
	return StatusValid, nil
}

// fail records a failed check and returns its status.
func fail(results *Results, subject, check string, status Status, detail string) (Status, error) {
	if results != nil {
		results.record(subject, check, status, detail)
	}
	return status, nil
}

// checkPathLength enforces the initial path-length constraint and every
// pathLenConstraint asserted along the path. Self-issued intermediates do
// not count, per RFC 5280 section 6.1.4.
func checkPathLength(settings *Settings, path *Path) (Status, string) {
	counted := 0
	for _, cert := range path.Intermediates {
		if !selfIssued(cert) {
			counted++
		}
	}

	if settings.InitialPathLength != PathLengthUnlimited && counted > settings.InitialPathLength {
		return StatusPathLengthViolation,
			fmt.Sprintf("%d intermediates exceed initial constraint %d", counted, settings.InitialPathLength)
	}

	// Intermediates are ordered leaf-ward first, so the certificates below
	// index i are exactly Intermediates[:i].
	for i, cert := range path.Intermediates {
		plen, ok := pathLenConstraint(cert)
		if !ok {
			continue
		}
		below := 0
		for _, sub := range path.Intermediates[:i] {
			if !selfIssued(sub) {
				below++
			}
		}
		if below > plen {
			return StatusPathLengthViolation,
				fmt.Sprintf("%s asserts pathLenConstraint %d but issues %d intermediates", subjectLabel(cert), plen, below)
		}
	}
	return StatusValid, ""
}

// checkTargetUsage enforces the requested key-usage bits and extended key
// usages against the target, and, when ExtendedKeyUsagePath is set,
// extends the EKU requirement to every intermediate that carries an EKU
// extension.
func checkTargetUsage(settings *Settings, path *Path, results *Results) (Status, error) {
	target := path.Target
	label := subjectLabel(target)

	if settings.TargetKeyUsage != 0 && hasExtension(target, oidKeyUsage) {
		if target.KeyUsage&settings.TargetKeyUsage != settings.TargetKeyUsage {
			status, _ := fail(results, label, "target key usage", StatusKeyUsageViolation,
				fmt.Sprintf("certificate asserts %#x, requested %#x", int(target.KeyUsage), int(settings.TargetKeyUsage)))
			return status, nil
		}
	}

	if len(settings.TargetEKUs) == 0 {
		return StatusValid, nil
	}

	ok, err := ekuCovers(target, settings.TargetEKUs)
	if err != nil {
		return StatusValid, err
	}
	if !ok {
		status, _ := fail(results, label, "extended key usage", StatusEKUViolation, "")
		return status, nil
	}

	if settings.ExtendedKeyUsagePath {
		for _, cert := range path.Intermediates {
			ok, err := ekuCovers(cert, settings.TargetEKUs)
			if err != nil {
				return StatusValid, err
			}
			if !ok {
				status, _ := fail(results, subjectLabel(cert), "extended key usage", StatusEKUViolation, "")
				return status, nil
			}
		}
	}
	return StatusValid, nil
}

// ekuCovers reports whether cert's EKU extension covers every requested
// OID, or asserts anyExtendedKeyUsage. An absent extension places no
// restriction and covers everything.
func ekuCovers(cert *x509.Certificate, requested []string) (bool, error) {
	asserted, present, err := ekuOIDs(cert)
	if err != nil {
		return false, err
	}
	if !present {
		return true, nil
	}

	have := make(map[string]bool, len(asserted))
	for _, oid := range asserted {
		have[oid] = true
	}
	if have[OIDAnyExtendedKeyUsage] {
		return true, nil
	}
	for _, oid := range requested {
		if !have[oid] {
			return false, nil
		}
	}
	return true, nil
}

// checkNameConstraints accumulates the NameConstraints extensions of every
// intermediate on top of the settings' initial set, then tests the
// target's subject and subject-alternative names against the accumulated
// state.
func checkNameConstraints(settings *Settings, path *Path, results *Results) (Status, error) {
	ncs := NewConstraintSet()
	if settings.InitialConstraints != nil {
		ncs = settings.InitialConstraints.Clone()
	}

	for _, cert := range path.Intermediates {
		if _, err := ncs.AddFromCertificate(cert); err != nil {
			return StatusValid, fmt.Errorf("pathval: name constraints on %s: %w", subjectLabel(cert), err)
		}
	}

	if ncs.Empty() {
		return StatusValid, nil
	}

	ok, detail := ncs.CheckCertificate(path.Target)
	if !ok {
		status, _ := fail(results, subjectLabel(path.Target), "name constraints", StatusNameConstraintsViolation, detail)
		return status, nil
	}
	if results != nil {
		results.record(subjectLabel(path.Target), "name constraints", StatusValid, "")
	}
	return StatusValid, nil
}
