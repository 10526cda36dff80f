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

// Fold reduces the sequence using at most numWorkers goroutines.
//
// Each worker obtains its own accumulator from supply and folds the
// items it receives into it with accumulate. As workers finish, their
// partial accumulators are merged with combine. The order in which
// partials are merged is unspecified, so combine should be associative
// and the result should not depend on which worker saw which item. If
// the sequence is empty, the result is a freshly supplied accumulator.
//
// If any callback panics or the context is canceled, the zero value of
// A is returned along with the error.
func Fold[T, A any](
	ctx context.Context,
	items iter.Seq[T],
	numWorkers int,
	supply func() A,
	accumulate func(A, T) A,
	combine func(A, A) A,
	opts ...Option,
) (A, error) {
	cfg := newConfig(opts)

	var nextMu sync.Mutex
	idx := 0
	next, stop := iter.Pull(items)
	defer func() {
		nextMu.Lock()
		defer nextMu.Unlock()
		stop()
	}()

	var merged struct {
		sync.Mutex
		acc   A
		valid bool
	}

	g := cfg.newGroup(ctx)
	defer g.Stop()

	for i := range workers(numWorkers) {
		// Report errors if the group is stopped during startup.
		g.AddError(g.Go(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
			acc, err := safe.CallR(func() (A, error) { return supply(), nil })
			if err != nil {
				return err
			}
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := cfg.wait(ctx); err != nil {
					return err
				}

				nextMu.Lock()
				count := idx
				idx++
				item, ok := next()
				nextMu.Unlock()

				if !ok {
					break
				}
				acc, err = safe.CallR(func() (A, error) {
					return accumulate(acc, item), nil
				})
				if err != nil {
					return fmt.Errorf("index %d: %w", count, err)
				}
			}

			merged.Lock()
			defer merged.Unlock()
			if !merged.valid {
				merged.acc, merged.valid = acc, true
				return nil
			}
			merged.acc, err = safe.CallR(func() (A, error) {
				return combine(merged.acc, acc), nil
			})
			return err
		}))
	}
	g.StopOnIdle()

	if err := g.Wait(); err != nil {
		return *new(A), err
	}
	if !merged.valid {
		return safe.CallR(func() (A, error) { return supply(), nil })
	}
	return merged.acc, nil
}
