// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"vawter.tech/enums/internal/group"
	"vawter.tech/enums/internal/safe"
)

type result[R any] struct {
	Err    error
	Result R
}

// MapUnordered returns a repeatable iterator that concurrently applies
// the given function to all elements in the input sequence.
//
// The returned sequence is not guaranteed to maintain the input order,
// but it does allow results that can be processed quickly to be emitted
// while slower results are still pending. The sequence will not end
// until all workers have exited.
//
// If the consumer stops iterating early, no further items are taken
// from the input, and the sequence does not return control to the
// consumer until every in-flight callback has finished.
//
// Any error returned by the callback will be emitted via the sequence
// without preemptively stopping. Errors that are not associated with a
// single element, such as context cancellation, are emitted as a final,
// extra, element in the sequence.
func MapUnordered[T, R any](
	ctx context.Context,
	items iter.Seq[T],
	numWorkers int,
	fn func(context.Context, int, T) (R, error),
	opts ...Option,
) iter.Seq2[R, error] {
	cfg := newConfig(opts)
	return func(yield func(R, error) bool) {
		var nextMu sync.Mutex
		idx := 0
		next, stop := iter.Pull(items)
		defer func() {
			nextMu.Lock()
			defer nextMu.Unlock()
			stop()
		}()

		g := cfg.newGroup(ctx)
		earlyBreak := make(chan struct{})
		// Also runs if the consumer breaks out of the loop or panics.
		defer func() {
			close(earlyBreak)
			g.Stop()
			_ = g.Wait()
		}()

		n := workers(numWorkers)
		results := make(chan result[R], n)
		g.Defer(func() { close(results) })

		for i := range n {
			// Report errors if the group is stopped during startup.
			g.AddError(g.Go(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
				for {
					// Just respond to hard stop.
					if err := ctx.Err(); err != nil {
						return err
					}
					// Don't take new items once the consumer is gone.
					select {
					case <-earlyBreak:
						return nil
					default:
					}
					if err := cfg.wait(ctx); err != nil {
						return err
					}

					// Collect the next value to process.
					nextMu.Lock()
					count := idx
					idx++
					item, ok := next()
					nextMu.Unlock()

					// Clean exit.
					if !ok {
						return nil
					}

					ret, err := safe.CallR(func() (R, error) {
						return fn(ctx, count, item)
					})
					select {
					case results <- result[R]{
						Err:    err,
						Result: ret,
					}:
					case <-earlyBreak:
						return nil
					case <-ctx.Done():
						// Just unblock, we'll return an error above.
					}
				}
			}))
		}
		g.StopOnIdle()

		yieldUnordered(g, results, yield)
	}
}

// yieldUnordered drains the results channel into the yield function. An
// extra value will be yielded if the group has recorded an error.
func yieldUnordered[R any](
	g *group.Group,
	results <-chan result[R],
	yield func(R, error) bool,
) {
	// This channel is guaranteed to be closed by a deferred callback.
	for result := range results {
		if !yield(result.Result, result.Err) {
			return
		}
	}

	// Wait returns immediately once deferred callbacks are finished.
	if err := g.Wait(); err != nil {
		yield(*new(R), err)
	}
}
