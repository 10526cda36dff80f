// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package collect contains reusable strategies for folding sequences
// of enum constants into immutable containers.
//
// A [Collector] describes how to create a working container, how to add
// an element to it, how to merge two partially filled containers, and
// how to convert the result into its final, immutable form. Collectors
// hold no accumulated data, so one Collector may be used by any number
// of folds, concurrently.
//
// [ToSet] and [ToMap] return Collectors that produce [enums.Set] and
// [enums.Map] values. [Collect] runs a Collector over a sequence in the
// calling goroutine, and [CollectParallel] spreads the work across
// several workers.
package collect

import (
	"context"
	"iter"

	"vawter.tech/enums/seq"
)

// A Collector folds elements of type T into a working container of
// type A and produces a result of type R.
//
// The working container must be a reference type, since Accumulate
// mutates it in place. Combine may return either argument after
// merging the other into it.
type Collector[T, A, R any] interface {
	// Supply returns a new, empty working container.
	Supply() A
	// Accumulate adds the element to the working container.
	Accumulate(acc A, elt T)
	// Combine merges two working containers that were filled by
	// separate partial folds.
	Combine(a, b A) A
	// Finish converts the working container into the result. The
	// working container must not be used afterwards.
	Finish(acc A) R
}

// Collect folds the sequence in the calling goroutine.
func Collect[T, A, R any](items iter.Seq[T], c Collector[T, A, R]) R {
	acc := c.Supply()
	for elt := range items {
		c.Accumulate(acc, elt)
	}
	return c.Finish(acc)
}

// CollectParallel folds the sequence using at most numWorkers
// goroutines. Each worker fills its own working container, and the
// partial containers are combined in an unspecified order as the
// workers finish. See [seq.Fold].
//
// An error is returned only if the context is canceled or if the
// Collector or the sequence panics, for example when the sequence
// yields a value that is not a constant of the Collector's type.
func CollectParallel[T, A, R any](
	ctx context.Context,
	items iter.Seq[T],
	numWorkers int,
	c Collector[T, A, R],
	opts ...seq.Option,
) (R, error) {
	acc, err := seq.Fold(ctx, items, numWorkers,
		c.Supply,
		func(acc A, elt T) A {
			c.Accumulate(acc, elt)
			return acc
		},
		c.Combine,
		opts...)
	if err != nil {
		return *new(R), err
	}
	return c.Finish(acc), nil
}
