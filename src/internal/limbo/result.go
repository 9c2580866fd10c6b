// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package limbo

// Verdicts a harness can report for one testcase.
const (
	// ActualSuccess means some candidate path validated and passed the
	// peer-name approximation.
	ActualSuccess = "SUCCESS"
	// ActualFailure means every candidate path was rejected, or the
	// vector could not produce a judgeable path at all.
	ActualFailure = "FAILURE"
	// ActualSkipped means the vector requires a feature the harness does
	// not implement; the context string carries the rationale.
	ActualSkipped = "SKIPPED"
)

// TestcaseResult is the verdict for a single testcase. Context is null for
// successes, and carries diagnostics for failures and the skip rationale
// for skips.
type TestcaseResult struct {
	ID           string  `json:"id"`
	ActualResult string  `json:"actual_result"`
	Context      *string `json:"context"`
}

// Success builds a success verdict for tc.
func Success(tc *Testcase) TestcaseResult {
	return TestcaseResult{ID: tc.ID, ActualResult: ActualSuccess}
}

// Fail builds a failure verdict for tc with diagnostic context.
func Fail(tc *Testcase, context string) TestcaseResult {
	return TestcaseResult{ID: tc.ID, ActualResult: ActualFailure, Context: &context}
}

// Skip builds a skipped verdict for tc with the rationale used to bucket
// aggregate statistics.
func Skip(tc *Testcase, rationale string) TestcaseResult {
	return TestcaseResult{ID: tc.ID, ActualResult: ActualSkipped, Context: &rationale}
}

// LimboResult is the versioned result document consumed by downstream
// scoring tooling. Field order mirrors the corpus contract.
type LimboResult struct {
	Version int              `json:"version"`
	Harness string           `json:"harness"`
	Results []TestcaseResult `json:"results"`
}
