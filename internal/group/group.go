// Copyright 2023 The Cockroach Authors
// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package group tracks the lifecycle of the workers that execute a
// single parallel traversal or fold.
//
// A Group moves through three phases. While running, new workers may
// be added with [Group.Go]. Once stopped, the [Group.Stopping] channel
// is closed and new workers are rejected. Once every worker has exited,
// the Group's context is canceled, deferred callbacks are executed, and
// [Group.Wait] returns.
package group

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"
	"slices"
	"sync"

	"vawter.tech/enums/internal/safe"
)

// ErrStopped is the cause of the Group's context once it has drained.
// It is also returned from [Group.Go] if the Group is already stopping.
var ErrStopped = errors.New("stopped")

// A Middleware wraps a worker before it is started. Middleware is
// invoked synchronously from [Group.Go].
type Middleware = func(func(ctx context.Context) error) func(ctx context.Context) error

// A Group counts running workers and collects their errors. All
// methods are safe for concurrent use.
type Group struct {
	ctx        context.Context
	middleware []Middleware
	name       string
	stopping   chan struct{}
	stopped    chan struct{}

	mu struct {
		sync.Mutex
		cancel     func(error) // Cleared by drainLocked.
		count      int
		deferred   []func()
		errs       []error
		stopOnIdle bool
		stopping   bool
	}
}

// New constructs a Group whose context is derived from the parent. The
// name is used to label the [trace.Task] that covers the Group's
// lifetime. Canceling the parent stops the Group. Middleware is applied
// to every worker, with the first element outermost.
func New(parent context.Context, name string, middleware ...Middleware) *Group {
	ctx, task := trace.NewTask(parent, name)
	ctx, cancel := context.WithCancelCause(ctx)

	g := &Group{
		ctx:        ctx,
		middleware: middleware,
		name:       name,
		stopping:   make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	g.mu.cancel = func(err error) {
		cancel(err)
		task.End()
	}

	// Convert parent cancellation into a Stop so that the notification
	// channels are closed. This exits once the Group drains.
	go func() {
		<-ctx.Done()
		g.Stop()
	}()
	return g
}

// AddError records any non-nil errors to be returned from [Group.Wait].
// It does not stop the Group.
func (g *Group) AddError(errs ...error) {
	if !slices.ContainsFunc(errs, func(err error) bool { return err != nil }) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, err := range errs {
		if err != nil {
			g.mu.errs = append(g.mu.errs, err)
		}
	}
}

// Context returns the context that workers should observe. It is
// canceled when the parent is canceled or when the Group has drained.
func (g *Group) Context() context.Context { return g.ctx }

// Defer registers a callback to execute once all workers have exited.
// Callbacks run in LIFO order. If the Group has already drained, the
// callback is executed immediately and false is returned.
func (g *Group) Defer(fn func()) (deferred bool) {
	g.mu.Lock()
	if g.mu.cancel != nil {
		g.mu.deferred = append(g.mu.deferred, fn)
		g.mu.Unlock()
		return true
	}
	g.mu.Unlock()

	// User code never runs under the mutex.
	g.AddError(safe.Call(func() error { fn(); return nil }))
	return false
}

// Done is closed when the Group's context is canceled.
func (g *Group) Done() <-chan struct{} { return g.ctx.Done() }

// Errors returns a copy of the errors recorded so far.
func (g *Group) Errors() []error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.mu.errs)
}

// Go starts a worker in a new goroutine. A worker that returns an error
// or panics stops the Group, and the error is made available from
// [Group.Wait]. If the Group is already stopping, [ErrStopped] is
// returned and the function is not called.
func (g *Group) Go(name string, fn func(ctx context.Context) error) error {
	if !g.apply(1) {
		return ErrStopped
	}
	for i := len(g.middleware) - 1; i >= 0; i-- {
		fn = g.middleware[i](fn)
	}
	go func() {
		defer g.apply(-1)

		ctx, task := trace.NewTask(g.ctx, name)
		defer task.End()

		if err := safe.Call(func() error { return fn(ctx) }); err != nil {
			g.AddError(fmt.Errorf("%s.%s: %w", g.name, name, err))
			g.Stop()
		}
	}()
	return nil
}

// IsStopping returns true once [Group.Stop] has been called or once an
// idle Group has been asked to [Group.StopOnIdle].
func (g *Group) IsStopping() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mu.stopping
}

// Len returns the number of running workers.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mu.count
}

// Stop moves the Group into the stopping phase. The Group drains once
// all running workers have exited.
func (g *Group) Stop() {
	var toCall []func()
	defer func() { g.callDeferred(toCall) }()

	g.mu.Lock()
	defer g.mu.Unlock()
	toCall = g.stopLocked()
}

// StopOnIdle arranges for the Group to stop as soon as no workers are
// running. It is usually called after all workers have been started.
func (g *Group) StopOnIdle() {
	var toCall []func()
	defer func() { g.callDeferred(toCall) }()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.mu.stopOnIdle = true
	if g.mu.count == 0 {
		toCall = g.stopLocked()
	}
}

// Stopping returns a channel that is closed once the Group is stopping.
func (g *Group) Stopping() <-chan struct{} { return g.stopping }

// Wait blocks until the Group has drained and all deferred callbacks
// have executed. It returns the errors recorded by the Group.
func (g *Group) Wait() error {
	<-g.stopped
	return errors.Join(g.Errors()...)
}

// apply maintains the count of running workers. It returns false if a
// positive delta was rejected because the Group is stopping.
func (g *Group) apply(delta int) bool {
	var toCall []func()
	defer func() { g.callDeferred(toCall) }()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mu.stopping && delta >= 0 {
		return false
	}
	g.mu.count += delta
	if g.mu.count < 0 {
		// Implementation error, not user problem.
		panic("over-released")
	}
	if g.mu.count == 0 && (g.mu.stopping || g.mu.stopOnIdle) {
		toCall = g.stopLocked()
	}
	return true
}

// callDeferred executes the functions in reverse order. It must not be
// called with the mutex held.
func (g *Group) callDeferred(toCall []func()) {
	for i := len(toCall) - 1; i >= 0; i-- {
		g.AddError(safe.Call(func() error { toCall[i](); return nil }))
	}
}

// drainLocked is a one-shot that returns the callbacks to execute once
// the Group has no running workers. The context is canceled after the
// user-registered callbacks and the stopped channel is closed last.
func (g *Group) drainLocked() []func() {
	cancel := g.mu.cancel
	if cancel == nil {
		return nil
	}
	g.mu.cancel = nil

	ret := make([]func(), 0, len(g.mu.deferred)+2)
	ret = append(ret,
		func() { close(g.stopped) },
		func() { cancel(ErrStopped) },
	)
	ret = append(ret, g.mu.deferred...)
	g.mu.deferred = nil
	return ret
}

// stopLocked closes the stopping channel and drains the Group if no
// workers are running.
func (g *Group) stopLocked() []func() {
	if !g.mu.stopping {
		g.mu.stopping = true
		close(g.stopping)
	}
	if g.mu.count == 0 {
		return g.drainLocked()
	}
	return nil
}
