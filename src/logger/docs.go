// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the conformance harness.
//
// It defines a common [Logger] interface and two concrete implementations:
//
//   - [CLILogger]: human-readable output for command-line usage, writing to
//     stderr so the result document keeps stdout to itself.
//   - [JSONLogger]: structured single-line JSON output for runs whose
//     diagnostics feed into other tooling, safe for concurrent use.
package logger
