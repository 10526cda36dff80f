// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"runtime/trace"

	"golang.org/x/time/rate"
	"vawter.tech/enums/internal/group"
)

// An Option configures a traversal.
type Option func(*config)

// A Middleware wraps each worker started by a traversal. It is invoked
// synchronously before the worker's goroutine is launched.
type Middleware = func(func(context.Context) error) func(context.Context) error

// WithMiddleware appends to the middleware applied to every worker. The
// first Middleware is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(cfg *config) {
		cfg.middleware = append(cfg.middleware, mw...)
	}
}

// WithName sets the name of the [trace.Task] that covers a traversal.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithMaxRate limits the rate at which elements are handed to workers.
// The limiter is created when the Option is constructed, so reusing an
// Option across calls shares the budget between them.
func WithMaxRate(r float64, burst int) Option {
	l := rate.NewLimiter(rate.Limit(r), burst)
	return func(cfg *config) {
		cfg.limiter = l
	}
}

type config struct {
	limiter    *rate.Limiter
	middleware []Middleware
	name       string
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Sanitize()
	return cfg
}

// Sanitize fills in defaults.
func (c *config) Sanitize() {
	if c.name == "" {
		c.name = "seq"
	}
}

// wait blocks until the limiter, if any, allows another element to be
// dispatched.
func (c *config) wait(ctx context.Context) error {
	if c.limiter == nil || c.limiter.Allow() {
		return nil
	}
	defer trace.StartRegion(ctx, "rate limit wait").End()
	return c.limiter.Wait(ctx)
}

func (c *config) newGroup(ctx context.Context) *group.Group {
	return group.New(ctx, c.name, c.middleware...)
}

func workers(n int) int {
	return max(n, 1)
}
