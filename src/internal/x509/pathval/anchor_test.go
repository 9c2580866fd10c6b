// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pathval_test

import (
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkival/pathvet/src/internal/x509/pathval"
)

func TestEnforceAnchorConstraintsDisabled(t *testing.T) {
	spec := ca("Restricted Root")
	spec.keyUsage = x509.KeyUsageDigitalSignature // no certSign
	root := issue(t, spec, nil)

	settings := newSettings()
	settings.EnforceTrustAnchorConstraints = false

	eff, err := pathval.EnforceAnchorConstraints(settings, &pathval.TrustAnchor{Cert: root.cert})
	require.NoError(t, err, "disabled enforcement must ignore anchor content")
	assert.Equal(t, settings.InitialPathLength, eff.InitialPathLength)
}

func TestEnforceAnchorConstraintsKeyUsage(t *testing.T) {
	spec := ca("Restricted Root")
	spec.keyUsage = x509.KeyUsageDigitalSignature
	root := issue(t, spec, nil)

	settings := newSettings()
	settings.EnforceTrustAnchorConstraints = true

	_, err := pathval.EnforceAnchorConstraints(settings, &pathval.TrustAnchor{Cert: root.cert})
	assert.ErrorIs(t, err, pathval.ErrAnchorKeyUsage)
}

func TestEnforceAnchorConstraintsPathLength(t *testing.T) {
	spec := ca("Shallow Root")
	spec.maxPathLen = 0
	root := issue(t, spec, nil)

	settings := newSettings()
	settings.EnforceTrustAnchorConstraints = true

	eff, err := pathval.EnforceAnchorConstraints(settings, &pathval.TrustAnchor{Cert: root.cert})
	require.NoError(t, err)
	assert.Equal(t, 0, eff.InitialPathLength, "anchor pathLenConstraint must narrow the settings")
	assert.Equal(t, pathval.PathLengthUnlimited, settings.InitialPathLength, "caller settings must not change")
}

// A pathLenConstraint 0 in the anchor forbids any intermediate, end to end.
func TestAnchorPathLengthRejectsIntermediates(t *testing.T) {
	spec := ca("Shallow Root")
	spec.maxPathLen = 0
	root := issue(t, spec, nil)
	ica := issue(t, ca("Intermediate"), root)
	ee := issue(t, leaf("example.com", "example.com"), ica)

	settings := newSettings()
	settings.EnforceTrustAnchorConstraints = true

	path := onePath(t, ee, root, ica)
	eff, err := pathval.EnforceAnchorConstraints(settings, path.Anchor)
	require.NoError(t, err)

	status, err := pathval.ValidatePath(eff, path, nil)
	require.NoError(t, err)
	assert.Equal(t, pathval.StatusPathLengthViolation, status)
}

// Name constraints embedded in the anchor certificate seed the accumulated
// constraint state for the whole path.
func TestAnchorNameConstraintsSeedValidation(t *testing.T) {
	spec := ca("Constrained Root")
	spec.permittedDNS = []string{"example.com"}
	root := issue(t, spec, nil)

	settings := newSettings()
	settings.EnforceTrustAnchorConstraints = true

	tests := []struct {
		name    string
		dnsName string
		want    pathval.Status
	}{
		{"Leaf Within Anchor Subtree", "www.example.com", pathval.StatusValid},
		{"Leaf Outside Anchor Subtree", "www.other.org", pathval.StatusNameConstraintsViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ee := issue(t, leaf(tt.dnsName, tt.dnsName), root)
			path := onePath(t, ee, root)

			eff, err := pathval.EnforceAnchorConstraints(settings, path.Anchor)
			require.NoError(t, err)

			status, err := pathval.ValidatePath(eff, path, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}
