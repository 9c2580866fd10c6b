// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package limbo models the [x509-limbo] testcase corpus and result
// documents: the Testcase/Limbo input contract consumed from a compiled
// suite, and the TestcaseResult/LimboResult output contract consumed by
// downstream scoring tooling. Field names and presence are part of the
// wire contract and must round-trip losslessly.
//
// [x509-limbo]: https://x509-limbo.com/
package limbo
