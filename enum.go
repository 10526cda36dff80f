// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"fmt"
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// A Type describes an enumerated type: a closed set of unique constants
// with a fixed declaration order. A Type is immutable once created by
// [Define] and is safe for concurrent use.
type Type[E comparable] struct {
	constants []E
	empty     *Set[E]
	name      string
	ordinals  map[E]int
}

// Define constructs a Type from its constants, given in declaration
// order. The name is used in error messages and debugging output; if
// empty, the Go type name of E is used.
//
// Define returns an [*ArgumentError] wrapping [ErrNotEnum] if no
// constants are provided or if any constant is repeated.
func Define[E comparable](name string, constants ...E) (*Type[E], error) {
	if name == "" {
		name = fmt.Sprintf("%T", *new(E))
	}
	if len(constants) == 0 {
		return nil, &ArgumentError{Arg: "constants", Err: ErrNotEnum,
			Detail: fmt.Sprintf("%s has no constants", name)}
	}
	ordinals := make(map[E]int, len(constants))
	for idx, c := range constants {
		if detail := index(ordinals, c, idx); detail != "" {
			return nil, &ArgumentError{Arg: "constants", Err: ErrNotEnum,
				Detail: fmt.Sprintf("%s %s", name, detail)}
		}
	}

	t := &Type[E]{
		constants: slices.Clone(constants),
		name:      name,
		ordinals:  ordinals,
	}
	t.empty = &Set[E]{t: t, bits: t.newBits()}
	return t, nil
}

// MustDefine is a version of [Define] that panics on error. It is
// intended for package-level variables.
func MustDefine[E comparable](name string, constants ...E) *Type[E] {
	t, err := Define(name, constants...)
	if err != nil {
		panic(err)
	}
	return t
}

// All returns the constants in declaration order.
func (t *Type[E]) All() iter.Seq[E] {
	return slices.Values(t.constants)
}

// At returns the constant with the given ordinal. It panics if the
// ordinal is out of range.
func (t *Type[E]) At(ordinal int) E {
	return t.constants[ordinal]
}

// Contains returns true if the value is one of the Type's constants.
func (t *Type[E]) Contains(e E) bool {
	_, ok := t.ordinals[e]
	return ok
}

// EmptySet returns the canonical empty Set for the Type. The same
// instance is returned from every call.
func (t *Type[E]) EmptySet() *Set[E] {
	return t.empty
}

// Len returns the number of constants.
func (t *Type[E]) Len() int {
	return len(t.constants)
}

// Name returns the name passed to [Define].
func (t *Type[E]) Name() string {
	return t.name
}

// NameOf returns the display name of a constant. If E implements
// [fmt.Stringer], its String method is used.
func (t *Type[E]) NameOf(e E) string {
	if s, ok := any(e).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(e)
}

// Ordinal returns the zero-based declaration position of the value, or
// false if the value is not one of the Type's constants.
func (t *Type[E]) Ordinal(e E) (int, bool) {
	ord, ok := t.ordinals[e]
	return ord, ok
}

// String is for debugging use only.
func (t *Type[E]) String() string {
	return fmt.Sprintf("%s (%d constants)", t.name, len(t.constants))
}

// Validate returns an [*ArgumentError] if the receiver is nil or was
// not created by [Define]. It is safe to call on a nil pointer.
func (t *Type[E]) Validate() error {
	return t.validate("enumType")
}

func (t *Type[E]) validate(arg string) error {
	if t == nil {
		return &ArgumentError{Arg: arg, Err: ErrNil}
	}
	if t.ordinals == nil {
		return &ArgumentError{Arg: arg, Err: ErrNotEnum,
			Detail: fmt.Sprintf("%T was not created by Define", t)}
	}
	return nil
}

// mustOrdinal is used by the builders, where a foreign value is a
// programming error.
func (t *Type[E]) mustOrdinal(e E) uint {
	ord, ok := t.ordinals[e]
	if !ok {
		panic(&ArgumentError{Arg: "value", Err: ErrUnknownConstant,
			Detail: fmt.Sprintf("%v is not a constant of %s", e, t.name)})
	}
	return uint(ord)
}

// index records the ordinal of a constant. It returns a non-empty
// description if the constant is repeated, cannot be used as a map key,
// or is not equal to itself (e.g. NaN).
func index[E comparable](ordinals map[E]int, c E, idx int) (detail string) {
	// Interface-typed constants panic if their dynamic type is not
	// comparable.
	defer func() {
		if r := recover(); r != nil {
			detail = fmt.Sprintf("has an incomparable constant at position %d: %v", idx, r)
		}
	}()
	if prev, dup := ordinals[c]; dup {
		return fmt.Sprintf("repeats %v at positions %d and %d", c, prev, idx)
	}
	ordinals[c] = idx
	if _, ok := ordinals[c]; !ok {
		return fmt.Sprintf("has a constant at position %d that is not equal to itself: %v", idx, c)
	}
	return ""
}

func (t *Type[E]) newBits() *bitset.BitSet {
	return bitset.New(uint(len(t.constants)))
}
