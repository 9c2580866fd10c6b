// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the certification path
// conformance harness. It implements a Cobra-based CLI that loads an
// x509-limbo testcase suite, filters it, evaluates every vector through the
// path discovery and validation engine, and writes the versioned results
// document to a file or stdout. The package handles context cancellation and
// integrates with the logger package so diagnostics never mix into the
// results stream.
package cli
