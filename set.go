// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"encoding/json"
	"iter"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// A Set is an immutable set of constants of a single [Type]. Membership
// is stored as a bitset indexed by ordinal, and iteration always
// follows declaration order. Sets are created with a [SetBuilder] and
// are safe for concurrent use.
type Set[E comparable] struct {
	bits *bitset.BitSet // Never mutated.
	t    *Type[E]
}

// All returns the members of the set in declaration order.
func (s *Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			if !yield(s.t.constants[i]) {
				return
			}
		}
	}
}

// Contains returns true if the value is a member of the set.
func (s *Set[E]) Contains(e E) bool {
	ord, ok := s.t.ordinals[e]
	return ok && s.bits.Test(uint(ord))
}

// Equal returns true if both sets belong to the same Type and have the
// same members. A nil Set is equal to nothing.
func (s *Set[E]) Equal(o *Set[E]) bool {
	if s == nil || o == nil {
		return false
	}
	return s.t == o.t && s.bits.Equal(o.bits)
}

// IsEmpty returns true if the set has no members.
func (s *Set[E]) IsEmpty() bool {
	return s.bits.None()
}

// Len returns the number of members.
func (s *Set[E]) Len() int {
	return int(s.bits.Count())
}

// MarshalJSON encodes the set as an array of constant names, in
// declaration order.
func (s *Set[E]) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for e := range s.All() {
		names = append(names, s.t.NameOf(e))
	}
	return json.Marshal(names)
}

// Slice returns the members of the set in declaration order.
func (s *Set[E]) Slice() []E {
	return slices.AppendSeq(make([]E, 0, s.Len()), s.All())
}

// String is for debugging use only.
func (s *Set[E]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for e := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(s.t.NameOf(e))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Type returns the Type of the set's members.
func (s *Set[E]) Type() *Type[E] {
	return s.t
}

// A SetBuilder is the mutable working container used to accumulate a
// [Set]. A SetBuilder is not safe for concurrent use.
type SetBuilder[E comparable] struct {
	bits *bitset.BitSet // Lazily allocated, released by Build.
	t    *Type[E]
}

// NewSetBuilder returns an empty SetBuilder for the Type.
func NewSetBuilder[E comparable](t *Type[E]) (*SetBuilder[E], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &SetBuilder[E]{t: t}, nil
}

// Add inserts the value into the builder. Adding a value that is
// already present has no effect. Add panics with an [*ArgumentError]
// wrapping [ErrUnknownConstant] if the value is not a constant of the
// builder's Type.
func (b *SetBuilder[E]) Add(e E) {
	ord := b.t.mustOrdinal(e)
	b.storage().Set(ord)
}

// AddAll inserts every value present in the other builder. The other
// builder is not modified.
func (b *SetBuilder[E]) AddAll(o *SetBuilder[E]) {
	if o.t != b.t {
		panic(&ArgumentError{Arg: "other", Err: ErrNotEnum,
			Detail: "builders belong to different types"})
	}
	if o.bits == nil {
		return
	}
	b.storage().InPlaceUnion(o.bits)
}

// Build returns an immutable Set containing the accumulated values. If
// nothing was accumulated, the Type's canonical empty Set is returned.
// The builder's storage is handed to the Set, so the builder is left
// empty and may be reused.
func (b *SetBuilder[E]) Build() *Set[E] {
	bits := b.bits
	b.bits = nil
	if bits == nil || bits.None() {
		return b.t.empty
	}
	return &Set[E]{t: b.t, bits: bits}
}

// Len returns the number of values accumulated so far.
func (b *SetBuilder[E]) Len() int {
	if b.bits == nil {
		return 0
	}
	return int(b.bits.Count())
}

func (b *SetBuilder[E]) storage() *bitset.BitSet {
	if b.bits == nil {
		b.bits = b.t.newBits()
	}
	return b.bits
}
