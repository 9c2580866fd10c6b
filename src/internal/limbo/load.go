// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package limbo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
)

var (
	// ErrEmptySuite indicates a suite document with no testcases.
	ErrEmptySuite = errors.New("limbo: suite contains no testcases")

	// ErrBadPattern indicates an include/exclude pattern that does not
	// parse as a glob.
	ErrBadPattern = errors.New("limbo: bad filter pattern")
)

// StdinPath selects standard input in place of a file path.
const StdinPath = "-"

// Load reads, schema-validates, and decodes a compiled testcase suite from
// the given path, or from stdin when the path is StdinPath.
func Load(filename string) (*Limbo, error) {
	var data []byte
	var err error

	if filename == StdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("limbo: reading suite: %w", err)
	}

	return Parse(data)
}

// Parse schema-validates and decodes a compiled testcase suite.
func Parse(data []byte) (*Limbo, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var suite Limbo
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("limbo: decoding suite: %w", err)
	}
	if len(suite.Testcases) == 0 {
		return nil, ErrEmptySuite
	}
	return &suite, nil
}

// Filter returns a copy of the suite retaining testcases whose id matches
// the include pattern (empty means all) and does not match the exclude
// pattern (empty means none). Patterns use glob syntax against the full
// testcase id.
func (l *Limbo) Filter(include, exclude string) (*Limbo, error) {
	out := &Limbo{Version: l.Version}
	for i := range l.Testcases {
		tc := l.Testcases[i]

		if include != "" {
			ok, err := path.Match(include, tc.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadPattern, include)
			}
			if !ok {
				continue
			}
		}
		if exclude != "" {
			matched, err := path.Match(exclude, tc.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadPattern, exclude)
			}
			if matched {
				continue
			}
		}
		out.Testcases = append(out.Testcases, tc)
	}
	return out, nil
}
