// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Decoder decodes [X.509] certificates from the formats test vectors carry
// them in.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Decoder struct {
	certBlockType string
}

// New creates a new Decoder with default settings.
func New() *Decoder {
	return &Decoder{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (d *Decoder) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode decodes a single certificate from PEM, DER, or PKCS#7 data.
func (d *Decoder) Decode(data []byte) (*x509.Certificate, error) {
	if d.IsPEM(data) {
		block, err := d.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}
		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Fall back to PKCS#7 using Cloudflare's library.
	p, p7err := pkcs7.ParsePKCS7(data)
	if p7err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodeMultiple decodes one or more certificates from concatenated PEM
// blocks or raw DER.
func (d *Decoder) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if d.IsPEM(data) {
		var certs []*x509.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != d.certBlockType {
				return nil, ErrInvalidBlockType
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
			}

			certs = append(certs, cert)
			data = rest
		}

		return certs, nil
	}

	certs, err := x509.ParseCertificates(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}

	return certs, nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (d *Decoder) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != d.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// EncodePEM encodes a certificate to PEM format.
func (d *Decoder) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  d.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (d *Decoder) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }
