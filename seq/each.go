// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"vawter.tech/enums/internal/safe"
)

// ForEach concurrently executes the callback for each item in the
// sequence using at most numWorkers goroutines. Every item is passed to
// exactly one invocation of the callback, but the order of invocations
// is unspecified. The index passed to the callback is the item's
// position in the input sequence.
//
// Errors returned by the callback are collected without stopping the
// traversal and are returned once all workers have exited. If the
// context is canceled, workers stop taking new items and the context
// error is included in the result. ForEach does not return while any
// callback is still running.
func ForEach[T any](
	ctx context.Context,
	items iter.Seq[T],
	numWorkers int,
	fn func(context.Context, int, T) error,
	opts ...Option,
) error {
	cfg := newConfig(opts)

	var nextMu sync.Mutex
	idx := 0
	next, stop := iter.Pull(items)
	defer func() {
		nextMu.Lock()
		defer nextMu.Unlock()
		stop()
	}()

	g := cfg.newGroup(ctx)
	defer g.Stop()

	for i := range workers(numWorkers) {
		// Report errors if the group is stopped during startup.
		g.AddError(g.Go(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
			for {
				if err := ctx.Err(); err != nil {
					return err
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

				if !ok {
					// Clean exit.
					return nil
				}
				if err := safe.Call(func() error {
					return fn(ctx, count, item)
				}); err != nil {
					g.AddError(fmt.Errorf("index %d: %w", count, err))
				}
			}
		}))
	}
	g.StopOnIdle()
	return g.Wait()
}
