// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"iter"
	"slices"
)

// A Sequencer provides repeatable traversals over every constant of a
// [Type]. The constants are captured once, when the Sequencer is
// constructed, and are never modified. A Sequencer is safe for
// concurrent use.
type Sequencer[E comparable] struct {
	all      []E
	parallel *Parallel[E]
	t        *Type[E]
}

// NewSequencer captures the constants of the Type in declaration order.
// It returns an [*ArgumentError] wrapping [ErrNil] if the Type is nil,
// or wrapping [ErrNotEnum] if the Type was not created by [Define].
func NewSequencer[E comparable](t *Type[E]) (*Sequencer[E], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	all := slices.Clone(t.constants)
	return &Sequencer[E]{
		all:      all,
		parallel: &Parallel[E]{all: all},
		t:        t,
	}, nil
}

// Len returns the number of constants.
func (s *Sequencer[E]) Len() int {
	return len(s.all)
}

// ParallelSeq returns a view of the constants that may be traversed by
// multiple workers. The relative order in which constants are visited
// is not guaranteed, but each constant is visited exactly once per
// traversal.
func (s *Sequencer[E]) ParallelSeq() *Parallel[E] {
	return s.parallel
}

// Seq returns the constants in declaration order. Each call to the
// returned iterator is an independent traversal.
func (s *Sequencer[E]) Seq() iter.Seq[E] {
	return s.parallel.Seq()
}

// Type returns the Type passed to [NewSequencer].
func (s *Sequencer[E]) Type() *Type[E] {
	return s.t
}
