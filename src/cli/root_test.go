// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkival/pathvet/src/cli"
	"github.com/pkival/pathvet/src/internal/limbo"
	"github.com/pkival/pathvet/src/logger"
)

const version = "1.3.3.7-testing"

// writeSuite mints a one-vector suite (a valid self-signed chain) and
// writes it to a temp file.
func writeSuite(t *testing.T, id string) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	leafKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rootTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Suite Root"},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	rootDER, err := x509.CreateCertificate(rand.Reader, rootTemplate, rootTemplate, &key.PublicKey, key)
	require.NoError(t, err)
	rootCert, err := x509.ParseCertificate(rootDER)
	require.NoError(t, err)

	leafTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "example.com"},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(24 * time.Hour),
		DNSNames:     []string{"example.com"},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTemplate, rootCert, &leafKey.PublicKey, key)
	require.NoError(t, err)

	// Slice fields stay non-nil so they serialize as arrays, the way the
	// corpus compiler emits them.
	suite := limbo.Limbo{Version: 1, Testcases: []limbo.Testcase{{
		ID:                     id,
		ValidationKind:         limbo.ValidationKindServer,
		ExpectedResult:         limbo.ResultSuccess,
		TrustedCerts:           []string{string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: rootDER}))},
		UntrustedIntermediates: []string{},
		PeerCertificate:        string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leafDER})),
		ValidationTime:         &now,
		SignatureAlgorithms:    []string{},
		KeyUsage:               []string{},
		ExtendedKeyUsage:       []string{},
		ExpectedPeerNames:      []limbo.PeerName{},
	}}}
	data, err := json.Marshal(suite)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "suite.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestExecuteEvaluatesSuite(t *testing.T) {
	suitePath := writeSuite(t, "cli::valid-chain")
	outPath := filepath.Join(t.TempDir(), "results.json")

	os.Args = []string{"pathvet", "--limbo", suitePath, "--output", outPath}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result limbo.LimboResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 1, result.Version)
	assert.Equal(t, "pathvet", result.Harness)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "cli::valid-chain", result.Results[0].ID)
	assert.Equal(t, limbo.ActualSuccess, result.Results[0].ActualResult)
}

func TestExecuteExcludeFilterLeavesEmptySuite(t *testing.T) {
	suitePath := writeSuite(t, "cli::filtered-out")
	outPath := filepath.Join(t.TempDir(), "results.json")

	os.Args = []string{"pathvet", "--limbo", suitePath, "--output", outPath, "--exclude", "cli::*"}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	require.NoError(t, err)

	var result limbo.LimboResult
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Empty(t, result.Results)
}

func TestExecuteMissingSuite(t *testing.T) {
	os.Args = []string{"pathvet", "--limbo", filepath.Join(t.TempDir(), "absent.json")}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	assert.Error(t, err)
}

func TestExecuteBadFilterPattern(t *testing.T) {
	suitePath := writeSuite(t, "cli::bad-pattern")

	os.Args = []string{"pathvet", "--limbo", suitePath, "--include", "["}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	assert.Error(t, err)
}

func TestExecuteMissingClassificationConfig(t *testing.T) {
	suitePath := writeSuite(t, "cli::no-config")

	os.Args = []string{"pathvet", "--limbo", suitePath, "--config", filepath.Join(t.TempDir(), "absent.yaml")}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	assert.Error(t, err)
}
