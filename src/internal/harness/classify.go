// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category classifies a testcase whose result is expected to deviate from
// the corpus expectation, and why. Classifications are configuration, not
// logic: evaluation never consults them, only summary scoring does.
type Category string

const (
	// CategoryLinter marks vectors that check issuance hygiene rather
	// than path validity; this harness validates such paths anyway.
	CategoryLinter Category = "linter"
	// CategoryWeakKey marks vectors requiring signature-strength or
	// weak-key screening, which is not implemented.
	CategoryWeakKey Category = "weak-key"
	// CategoryPathological marks denial-of-service style vectors that
	// need dedicated resource bounds.
	CategoryPathological Category = "pathological"
	// CategoryUnsupportedApplication marks vectors exercising
	// application-level checks beyond path validation.
	CategoryUnsupportedApplication Category = "unsupported-application"
	// CategoryBusted marks vectors believed mislabeled upstream; kept as
	// explicit configuration until the corpus authority resolves them.
	CategoryBusted Category = "busted"
	// CategoryBug marks known deviations to be fixed in this harness.
	CategoryBug Category = "bug"
)

// knownCategories guards config files against typos.
var knownCategories = map[Category]bool{
	CategoryLinter:                 true,
	CategoryWeakKey:                true,
	CategoryPathological:           true,
	CategoryUnsupportedApplication: true,
	CategoryBusted:                 true,
	CategoryBug:                    true,
}

// Classification maps testcase identifiers to deviation categories. The
// zero value classifies nothing.
type Classification struct {
	byID map[string]Category
}

// classificationFile is the on-disk layout: category name to id list.
type classificationFile struct {
	Classifications map[string][]string `json:"classifications" yaml:"classifications"`
}

// NewClassification builds a Classification from an id-to-category map.
func NewClassification(byID map[string]Category) *Classification {
	c := &Classification{byID: make(map[string]Category, len(byID))}
	for id, cat := range byID {
		c.byID[id] = cat
	}
	return c
}

// LoadClassification reads a classification config file. The format is
// detected by extension: .yaml/.yml parse as YAML, anything else as JSON.
// Unknown category names are rejected; a duplicated id is rejected to keep
// the mapping unambiguous.
func LoadClassification(configPath string) (*Classification, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("harness: reading classification config: %w", err)
	}

	var file classificationFile
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("harness: parsing classification config: %w", err)
	}

	c := &Classification{byID: make(map[string]Category)}
	for name, ids := range file.Classifications {
		cat := Category(name)
		if !knownCategories[cat] {
			return nil, fmt.Errorf("harness: unknown classification category %q", name)
		}
		for _, id := range ids {
			if prev, dup := c.byID[id]; dup {
				return nil, fmt.Errorf("harness: testcase %q classified as both %q and %q", id, prev, cat)
			}
			c.byID[id] = cat
		}
	}
	return c, nil
}

// Category returns the category for a testcase id, if classified.
func (c *Classification) Category(id string) (Category, bool) {
	if c == nil || c.byID == nil {
		return "", false
	}
	cat, ok := c.byID[id]
	return cat, ok
}

// ExpectedDeviation reports whether a result deviating from the corpus
// expectation is anticipated for this id.
func (c *Classification) ExpectedDeviation(id string) bool {
	_, ok := c.Category(id)
	return ok
}

// Len returns the number of classified testcase ids.
func (c *Classification) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
