// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every error returned when
// constructing a [Sequencer], a builder, or a collector.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrNil indicates that a required argument was nil.
	ErrNil = fmt.Errorf("%w: nil", ErrInvalidArgument)
	// ErrNotEnum indicates that a descriptor does not denote a closed
	// set of unique constants.
	ErrNotEnum = fmt.Errorf("%w: not an enumerated type", ErrInvalidArgument)
	// ErrUnknownConstant indicates that a value is not one of the
	// constants of the descriptor it was used with.
	ErrUnknownConstant = fmt.Errorf("%w: unknown constant", ErrInvalidArgument)
)

// An ArgumentError identifies the argument that failed validation.
type ArgumentError struct {
	Arg    string // The name of the offending argument.
	Err    error  // One of ErrNil, ErrNotEnum, or ErrUnknownConstant.
	Detail string // Optional.
}

// Error implements error.
func (e *ArgumentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Arg, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Arg, e.Err, e.Detail)
}

// Unwrap returns the enclosed error.
func (e *ArgumentError) Unwrap() error { return e.Err }
