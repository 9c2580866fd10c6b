// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package limbo

import "time"

// Expected results a testcase can declare.
const (
	// ResultSuccess means the testcase expects validation to succeed.
	ResultSuccess = "SUCCESS"
	// ResultFailure means the testcase expects validation to fail.
	ResultFailure = "FAILURE"
)

// Peer name kinds used by expected_peer_name entries.
const (
	// PeerKindRFC822 is an email-address peer name.
	PeerKindRFC822 = "RFC822"
	// PeerKindDNS is a DNS peer name.
	PeerKindDNS = "DNS"
	// PeerKindIP is an IP-address peer name.
	PeerKindIP = "IP"
)

// Validation kinds.
const (
	// ValidationKindClient exercises client-certificate validation.
	ValidationKindClient = "CLIENT"
	// ValidationKindServer exercises server-certificate validation.
	ValidationKindServer = "SERVER"
)

// FeatureMaxChainDepth marks a testcase whose max_chain_depth field must be
// honored as the initial path-length constraint.
const FeatureMaxChainDepth = "max-chain-depth"

// Requested key-usage values, as spelled by the corpus.
const (
	KeyUsageDigitalSignature  = "digitalSignature"
	KeyUsageContentCommitment = "contentCommitment"
	KeyUsageKeyEncipherment   = "keyEncipherment"
	KeyUsageDataEncipherment  = "dataEncipherment"
	KeyUsageKeyAgreement      = "keyAgreement"
	KeyUsageKeyCertSign       = "keyCertSign"
	KeyUsageCRLSign           = "cRLSign"
	KeyUsageEncipherOnly      = "encipherOnly"
	KeyUsageDecipherOnly      = "decipherOnly"
)

// Requested extended-key-usage values, as spelled by the corpus.
const (
	EKUAny             = "anyExtendedKeyUsage"
	EKUServerAuth      = "serverAuth"
	EKUClientAuth      = "clientAuth"
	EKUCodeSigning     = "codeSigning"
	EKUEmailProtection = "emailProtection"
	EKUTimeStamping    = "timeStamping"
	EKUOCSPSigning     = "OCSPSigning"
)

// PeerName is an expected peer identity: a kind (DNS, RFC822, IP) plus a
// value.
type PeerName struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Testcase is one test vector of the corpus: a trust configuration, a
// target certificate, policy settings, and an expected outcome.
type Testcase struct {
	ID                     string     `json:"id"`
	ConflictsWith          []string   `json:"conflicts_with"`
	Features               []string   `json:"features"`
	Importance             string     `json:"importance"`
	Description            string     `json:"description"`
	ValidationKind         string     `json:"validation_kind"`
	TrustedCerts           []string   `json:"trusted_certs"`
	UntrustedIntermediates []string   `json:"untrusted_intermediates"`
	PeerCertificate        string     `json:"peer_certificate"`
	PeerCertificateKey     *string    `json:"peer_certificate_key"`
	ValidationTime         *time.Time `json:"validation_time"`
	SignatureAlgorithms    []string   `json:"signature_algorithms"`
	KeyUsage               []string   `json:"key_usage"`
	ExtendedKeyUsage       []string   `json:"extended_key_usage"`
	ExpectedResult         string     `json:"expected_result"`
	ExpectedPeerName       *PeerName  `json:"expected_peer_name"`
	ExpectedPeerNames      []PeerName `json:"expected_peer_names"`
	MaxChainDepth          *int       `json:"max_chain_depth"`
}

// HasFeature reports whether the testcase declares the named feature.
func (tc *Testcase) HasFeature(name string) bool {
	for _, f := range tc.Features {
		if f == name {
			return true
		}
	}
	return false
}

// PeerNames returns expected_peer_name and expected_peer_names merged into
// one list, singular entry first.
func (tc *Testcase) PeerNames() []PeerName {
	var names []PeerName
	if tc.ExpectedPeerName != nil {
		names = append(names, *tc.ExpectedPeerName)
	}
	return append(names, tc.ExpectedPeerNames...)
}

// Limbo is a compiled testcase suite.
type Limbo struct {
	Version   int        `json:"version"`
	Testcases []Testcase `json:"testcases"`
}
