// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package safe guards calls into caller-provided functions, such as
// traversal callbacks and value makers.
package safe

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const captureDepth = 32

// A RecoveredError associates a recovered panic with the stack at the
// point where it was raised.
type RecoveredError struct {
	Err   error
	Stack []uintptr
}

// Error implements error.
func (e *RecoveredError) Error() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "recovered: %v\n", e.Err)
	frames := runtime.CallersFrames(e.Stack)
	for {
		frame, more := frames.Next()
		_, _ = fmt.Fprintf(&sb, "%s ( %s:%d )\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// String is for debugging use only.
func (e *RecoveredError) String() string {
	return e.Error()
}

// Unwrap returns the enclosed error.
func (e *RecoveredError) Unwrap() error { return e.Err }

// Call executes the function. If the function panics, the recovered
// value is joined with any error the function had already produced.
func Call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(err, r)
		}
	}()
	return fn()
}

// CallR is a version of [Call] for functions that produce a value.
func CallR[R any](fn func() (R, error)) (ret R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(err, r)
		}
	}()
	return fn()
}

// recovered must be called from the deferred function so that the
// captured stack begins at the panic site.
func recovered(prior error, r any) error {
	var err error
	switch t := r.(type) {
	case error:
		err = t
	default:
		err = fmt.Errorf("panic: %v", t)
	}
	stack := make([]uintptr, captureDepth)
	stack = stack[:runtime.Callers(3, stack)]
	return &RecoveredError{
		Err:   errors.Join(prior, err),
		Stack: stack,
	}
}
