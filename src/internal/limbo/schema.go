// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package limbo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation indicates a suite document does not conform to the
// corpus schema.
var ErrSchemaViolation = errors.New("limbo: testcase suite does not match schema")

// suiteSchema is the structural contract a compiled suite must satisfy
// before evaluation. It intentionally validates only the fields this
// harness consumes; the upstream corpus schema is a superset.
const suiteSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "x509-limbo testcase suite",
  "type": "object",
  "required": ["version", "testcases"],
  "properties": {
    "version": {"type": "integer", "enum": [1]},
    "testcases": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "id",
          "expected_result",
          "trusted_certs",
          "untrusted_intermediates",
          "peer_certificate"
        ],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "validation_kind": {"type": "string", "enum": ["CLIENT", "SERVER"]},
          "expected_result": {"type": "string", "enum": ["SUCCESS", "FAILURE"]},
          "trusted_certs": {"type": "array", "items": {"type": "string"}},
          "untrusted_intermediates": {"type": "array", "items": {"type": "string"}},
          "peer_certificate": {"type": "string", "minLength": 1},
          "validation_time": {"type": ["string", "null"]},
          "signature_algorithms": {"type": "array"},
          "key_usage": {"type": "array", "items": {"type": "string"}},
          "extended_key_usage": {"type": "array", "items": {"type": "string"}},
          "expected_peer_name": {
            "type": ["object", "null"],
            "required": ["kind", "value"],
            "properties": {
              "kind": {"type": "string", "enum": ["RFC822", "DNS", "IP"]},
              "value": {"type": "string"}
            }
          },
          "expected_peer_names": {"type": "array"},
          "max_chain_depth": {"type": ["integer", "null"]}
        }
      }
    }
  }
}`

// ValidateSchema checks a raw suite document against the corpus schema and
// returns ErrSchemaViolation (with the offending fields listed) when it
// does not conform. Rejecting a malformed corpus up front keeps decode
// failures inside testcases meaningful.
func ValidateSchema(document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(suiteSchema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("limbo: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
}
