// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"context"
	"iter"
	"slices"

	"vawter.tech/enums/seq"
)

// Parallel is a view of a [Sequencer]'s constants that permits
// concurrent traversal. It is returned from [Sequencer.ParallelSeq] and
// is safe for concurrent use.
type Parallel[E comparable] struct {
	all []E // Shared with the Sequencer, never mutated.
}

// ForEach calls the function once for every constant, using at most
// numWorkers goroutines. The order of the calls is unspecified. Errors
// returned by the function do not stop the traversal; they are joined
// and returned once every worker has exited. See [seq.ForEach].
func (p *Parallel[E]) ForEach(
	ctx context.Context,
	numWorkers int,
	fn func(context.Context, E) error,
	opts ...seq.Option,
) error {
	return seq.ForEach(ctx, p.Seq(), numWorkers,
		func(ctx context.Context, _ int, e E) error {
			return fn(ctx, e)
		}, opts...)
}

// Len returns the number of constants.
func (p *Parallel[E]) Len() int {
	return len(p.all)
}

// Seq returns the constants as a sequence. It may be passed to the
// helpers in the [seq] package or to collect.CollectParallel.
func (p *Parallel[E]) Seq() iter.Seq[E] {
	return slices.Values(p.all)
}

// Split divides the constants into at most n contiguous partitions of
// near-equal size, so that callers may hand each partition to a worker
// of their own. Every constant appears in exactly one partition. At
// least one partition is always returned.
func (p *Parallel[E]) Split(n int) []iter.Seq[E] {
	n = min(max(n, 1), max(len(p.all), 1))
	ret := make([]iter.Seq[E], n)
	for i := range n {
		lo := i * len(p.all) / n
		hi := (i + 1) * len(p.all) / n
		ret[i] = slices.Values(p.all[lo:hi])
	}
	return ret
}

// MapParallel concurrently applies the function to every constant of
// the Parallel view. Results are emitted in completion order. See
// [seq.MapUnordered].
func MapParallel[E comparable, R any](
	ctx context.Context,
	p *Parallel[E],
	numWorkers int,
	fn func(context.Context, E) (R, error),
	opts ...seq.Option,
) iter.Seq2[R, error] {
	return seq.MapUnordered(ctx, p.Seq(), numWorkers,
		func(ctx context.Context, _ int, e E) (R, error) {
			return fn(ctx, e)
		}, opts...)
}
