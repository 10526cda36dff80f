// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package seq contains helpers for concurrent processing of sequences.
//
// Each call creates a private worker group that is fully drained before
// the call returns (or, for [MapUnordered], before the returned
// sequence finishes). Callback panics are recovered and reported as
// errors.
package seq
