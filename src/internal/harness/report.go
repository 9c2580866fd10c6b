// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pkival/pathvet/src/internal/helper/gc"
	"github.com/pkival/pathvet/src/internal/limbo"
)

// Summary aggregates a result document against the corpus expectations and
// the classification configuration.
type Summary struct {
	// Total is the number of evaluated testcases.
	Total int
	// Successes, Failures, Skipped count verdicts by kind.
	Successes int
	Failures  int
	Skipped   int
	// Unexpected counts testcases whose verdict contradicts the corpus
	// expectation and whose id is not classified as a known deviation.
	Unexpected int
	// UnexpectedIDs lists those testcase ids in corpus order.
	UnexpectedIDs []string
	// SkipRationales histograms skip context strings.
	SkipRationales map[string]int
	// Deviations counts classified ids per category.
	Deviations map[Category]int
}

// Summarize scores a result document. Testcases and results are matched by
// position; the driver guarantees result order equals corpus order.
func Summarize(suite *limbo.Limbo, result *limbo.LimboResult, classification *Classification) *Summary {
	s := &Summary{
		Total:          len(result.Results),
		SkipRationales: make(map[string]int),
		Deviations:     make(map[Category]int),
	}

	for i, r := range result.Results {
		tc := &suite.Testcases[i]

		if cat, ok := classification.Category(tc.ID); ok {
			s.Deviations[cat]++
		}

		switch r.ActualResult {
		case limbo.ActualSuccess:
			s.Successes++
			if tc.ExpectedResult != limbo.ResultSuccess && !classification.ExpectedDeviation(tc.ID) {
				s.Unexpected++
				s.UnexpectedIDs = append(s.UnexpectedIDs, tc.ID)
			}
		case limbo.ActualFailure:
			s.Failures++
			if tc.ExpectedResult != limbo.ResultFailure && !classification.ExpectedDeviation(tc.ID) {
				s.Unexpected++
				s.UnexpectedIDs = append(s.UnexpectedIDs, tc.ID)
			}
		case limbo.ActualSkipped:
			s.Skipped++
			if r.Context != nil {
				s.SkipRationales[*r.Context]++
			}
		}
	}
	return s
}

// RenderTable renders the summary as a markdown table followed by the
// skip-rationale histogram, sorted for deterministic output.
func (s *Summary) RenderTable() string {
	var buf strings.Builder

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Verdict", "Count"})

	rows := [][]string{
		{"succeeded", fmt.Sprintf("%d", s.Successes)},
		{"failed", fmt.Sprintf("%d", s.Failures)},
		{"skipped", fmt.Sprintf("%d", s.Skipped)},
		{"unexpected", fmt.Sprintf("%d", s.Unexpected)},
		{"total", fmt.Sprintf("%d", s.Total)},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()

	if len(s.SkipRationales) > 0 {
		buf.WriteString("\nSkip rationales:\n")
		keys := make([]string, 0, len(s.SkipRationales))
		for k := range s.SkipRationales {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, "- %s: %d\n", k, s.SkipRationales[k])
		}
	}

	if len(s.Deviations) > 0 {
		buf.WriteString("\nClassified deviations:\n")
		cats := make([]string, 0, len(s.Deviations))
		for cat := range s.Deviations {
			cats = append(cats, string(cat))
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Fprintf(&buf, "- %s: %d\n", cat, s.Deviations[Category(cat)])
		}
	}

	return buf.String()
}

// EncodeResult serializes the result document as indented JSON with a
// trailing newline, using a pooled buffer for the encode pass.
func EncodeResult(result *limbo.LimboResult) ([]byte, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("harness: encoding results: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
