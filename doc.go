// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package enums provides helpers for working with enumerated types:
// closed, ordered sets of named constants.
//
// Go has no built-in enum construct, so an enumerated type is described
// by a [Type] value that lists its constants in declaration order. A
// Type is usually declared next to the constants it describes:
//
//	type Color int
//
//	const (
//	    Red Color = iota
//	    Green
//	    Blue
//	)
//
//	var Colors = enums.MustDefine("Color", Red, Green, Blue)
//
// Every function that accepts a Type validates it up front and reports
// problems as an [*ArgumentError] wrapping [ErrInvalidArgument]. Once
// construction succeeds, the remaining operations cannot fail.
//
// # Sequencing
//
// A [Sequencer] captures the constants of a Type once and hands out
// repeatable traversals without copying them again.
// [Sequencer.Seq] yields the constants in declaration order, while
// [Sequencer.ParallelSeq] returns a [Parallel] view whose constants may
// be processed by several workers at once:
//
//	s, err := enums.NewSequencer(Colors)
//	for c := range s.Seq() { /* Red, Green, Blue */ }
//	err = s.ParallelSeq().ForEach(ctx, 4, func(ctx context.Context, c Color) error {
//	    return paint(ctx, c)
//	})
//
// # Containers
//
// [Set] and [Map] are immutable containers keyed by the constants of a
// single Type. Both are backed by a bitset indexed by ordinal and
// iterate in declaration order, regardless of insertion order. They
// are produced by the mutable working containers [SetBuilder] and
// [MapBuilder], which hand their storage to the immutable result when
// built. An empty Set is always the canonical instance returned by
// [Type.EmptySet].
//
// The collect sub-package provides reusable fold strategies that build
// these containers from arbitrary sequences, sequentially or in
// parallel.
//
// # Concurrency
//
// Parallel traversals are executed by the [seq] sub-package. Each
// traversal runs in a private worker group that is drained before the
// traversal returns, and every worker is labeled with a
// [runtime/trace.Task] so that traversals are visible in Go execution
// traces. Use [seq.WithName] to label a traversal and
// [seq.WithMaxRate] to throttle it.
package enums
