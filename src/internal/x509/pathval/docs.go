// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pathval implements certification-path discovery and validation
// following [RFC 5280], plus trust-anchor constraint enforcement following
// [RFC 5937].
//
// The package is built around four pieces:
//
//   - [Store]: holds trust anchors and untrusted intermediates for one
//     evaluation and caches all partial issuer chains ending at an anchor.
//   - [Store.PathsForTarget]: enumerates every acyclic [Path] from a target
//     certificate to a trust anchor.
//   - [EnforceAnchorConstraints]: derives effective [Settings] for one
//     anchor by intersecting caller settings with constraints embedded in
//     the anchor certificate itself.
//   - [ValidatePath]: runs the RFC 5280 validation algorithm over one Path
//     under one Settings, producing a [Status] and a [Results] bag.
//
// Everything here is synchronous and free of shared mutable state; callers
// may evaluate independent Stores concurrently.
//
// [RFC 5280]: https://datatracker.ietf.org/doc/html/rfc5280
// [RFC 5937]: https://datatracker.ietf.org/doc/html/rfc5937
package pathval
