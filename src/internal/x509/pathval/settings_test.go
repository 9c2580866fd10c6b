// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkival/pathvet/src/internal/x509/pathval"
)

func TestSettingsDefaults(t *testing.T) {
	s := pathval.NewSettings()
	assert.Equal(t, pathval.PathLengthUnlimited, s.InitialPathLength)
	assert.Zero(t, s.TargetKeyUsage)
	assert.Empty(t, s.TargetEKUs)
	assert.False(t, s.EnforceTrustAnchorConstraints)
}

func TestSettingsCloneIsDeep(t *testing.T) {
	spec := ca("Constrained CA")
	spec.permittedDNS = []string{"example.com"}
	constrained := issue(t, spec, nil)

	s := pathval.NewSettings()
	s.TargetEKUs = []string{pathval.OIDServerAuth}
	s.InitialConstraints = pathval.NewConstraintSet()

	c := s.Clone()
	c.TargetEKUs[0] = pathval.OIDClientAuth
	_, err := c.InitialConstraints.AddFromCertificate(constrained.cert)
	require.NoError(t, err)

	assert.Equal(t, pathval.OIDServerAuth, s.TargetEKUs[0], "clone must own its EKU slice")
	assert.True(t, s.InitialConstraints.Empty(), "clone must own its constraint set")
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "valid", pathval.StatusValid.String())
	assert.Equal(t, "expired", pathval.StatusExpired.String())
	assert.Equal(t, "name constraints violation", pathval.StatusNameConstraintsViolation.String())
	assert.NotEmpty(t, pathval.Status(999).String())
}

func TestResultsRecordFailures(t *testing.T) {
	root := issue(t, ca("Root CA"), nil)
	expired := leaf("example.com", "example.com")
	expired.notBefore = anchorTime.Add(-48 * time.Hour)
	expired.notAfter = anchorTime.Add(-time.Hour)
	ee := issue(t, expired, root)

	results := pathval.NewResults()
	status, err := pathval.ValidatePath(newSettings(), onePath(t, ee, root), results)
	require.NoError(t, err)
	require.Equal(t, pathval.StatusExpired, status)

	failures := results.Failures()
	require.NotEmpty(t, failures)
	assert.Equal(t, pathval.StatusExpired, failures[len(failures)-1].Status)
	assert.Equal(t, "validity", failures[len(failures)-1].Check)
}
