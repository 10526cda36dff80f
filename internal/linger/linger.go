// Copyright 2025 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package linger contains a utility for reporting on where lingering
// workers were originally started.
package linger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// This value is sensitive to the code structure.
const callersOffset = 3

// NewRecorder constructs a [Recorder] that samples the call stack at the
// requested depth. A depth of 1 will record the location of the
// traversal that started the worker.
func NewRecorder(depth int) *Recorder {
	return &Recorder{depth: depth}
}

// A Recorder is attached to a traversal as worker middleware to record
// the call stack where each worker was started. It is primarily useful
// for testing scenarios, to ensure that there are no lingering
// goroutines once a traversal has returned.
type Recorder struct {
	counter atomic.Uintptr
	data    sync.Map
	depth   int
}

// Callers returns a snapshot of the caller stacks associated with any
// workers that are currently running.
func (r *Recorder) Callers() [][]uintptr {
	var ret [][]uintptr
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.([]uintptr))
		return true
	})
	return ret
}

// Invoke is a worker middleware that samples the caller of the worker
// group's Go method.
func (r *Recorder) Invoke(fn func(context.Context) error) func(context.Context) error {
	pc := make([]uintptr, r.depth)
	pc = pc[:runtime.Callers(callersOffset, pc)]

	id := r.counter.Add(1)
	r.data.Store(id, pc)

	return func(ctx context.Context) error {
		defer r.data.Delete(id)
		return fn(ctx)
	}
}

// Len returns the number of workers that are currently running.
func (r *Recorder) Len() int {
	return len(r.Callers())
}
