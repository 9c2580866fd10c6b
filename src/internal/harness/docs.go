// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package harness orchestrates test-vector evaluation: it drives path
// enumeration and validation for every testcase in a suite, applies the
// peer-name and unsupported-feature policy, and produces the versioned
// result document plus an aggregate summary.
//
// Vectors are independent; the driver evaluates them concurrently when
// configured with more than one worker, each vector owning its store and
// settings.
package harness
