// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes certificates supplied by test vectors. Input
// may be PEM, raw DER, or a PKCS#7 bundle; the decoder normalizes all of
// them into [crypto/x509] certificate objects without judging their
// contents; adversarial certificates must decode whenever structurally
// possible so the validation engine, not the decoder, rejects them.
package x509certs
