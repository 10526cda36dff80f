// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package collect

import (
	"vawter.tech/enums"
)

// SetCollector accumulates constants into an immutable [enums.Set].
type SetCollector[E comparable] struct {
	t *enums.Type[E]
}

var _ Collector[int, *enums.SetBuilder[int], *enums.Set[int]] = (*SetCollector[int])(nil)

// ToSet returns a Collector that accumulates constants of the Type into
// an immutable Set. Duplicate elements collapse. An empty fold produces
// the Type's canonical empty Set.
//
// ToSet returns an [*enums.ArgumentError] if the Type is nil or was not
// created by [enums.Define].
func ToSet[E comparable](t *enums.Type[E]) (*SetCollector[E], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &SetCollector[E]{t: t}, nil
}

// Accumulate implements [Collector].
func (c *SetCollector[E]) Accumulate(acc *enums.SetBuilder[E], elt E) {
	acc.Add(elt)
}

// Combine implements [Collector] by computing the union of the two
// working sets.
func (c *SetCollector[E]) Combine(a, b *enums.SetBuilder[E]) *enums.SetBuilder[E] {
	a.AddAll(b)
	return a
}

// Finish implements [Collector].
func (c *SetCollector[E]) Finish(acc *enums.SetBuilder[E]) *enums.Set[E] {
	return acc.Build()
}

// Supply implements [Collector].
func (c *SetCollector[E]) Supply() *enums.SetBuilder[E] {
	return must(enums.NewSetBuilder(c.t))
}

// MapCollector accumulates constants as the keys of an immutable
// [enums.Map], with values computed by a caller-supplied function.
type MapCollector[E comparable, V any] struct {
	empty      *enums.Map[E, V]
	t          *enums.Type[E]
	valueMaker func(E) V
}

var _ Collector[int, *enums.MapBuilder[int, any], *enums.Map[int, any]] = (*MapCollector[int, any])(nil)

// ToMap returns a Collector that accumulates constants of the Type as
// the keys of an immutable Map. The value for each key is computed by
// valueMaker. If a key is accumulated more than once, the latest value
// replaces the earlier one, and when partial maps are combined, the
// entries of the second replace those of the first. Every empty fold
// produces the same empty Map instance.
//
// The valueMaker may be called more than once for the same key, so it
// should be a pure function of its input. Otherwise, the contents of a
// map produced by [CollectParallel] are unspecified.
//
// ToMap returns an [*enums.ArgumentError] if the Type is nil or was not
// created by [enums.Define], or if valueMaker is nil.
func ToMap[E comparable, V any](t *enums.Type[E], valueMaker func(E) V) (*MapCollector[E, V], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if valueMaker == nil {
		return nil, &enums.ArgumentError{Arg: "valueMaker", Err: enums.ErrNil}
	}
	return &MapCollector[E, V]{
		empty:      must(enums.NewMapBuilder[E, V](t)).Build(),
		t:          t,
		valueMaker: valueMaker,
	}, nil
}

// Accumulate implements [Collector].
func (c *MapCollector[E, V]) Accumulate(acc *enums.MapBuilder[E, V], elt E) {
	acc.Put(elt, c.valueMaker(elt))
}

// Combine implements [Collector]. Entries in b replace entries in a.
func (c *MapCollector[E, V]) Combine(a, b *enums.MapBuilder[E, V]) *enums.MapBuilder[E, V] {
	a.PutAll(b)
	return a
}

// Finish implements [Collector].
func (c *MapCollector[E, V]) Finish(acc *enums.MapBuilder[E, V]) *enums.Map[E, V] {
	if acc.Len() == 0 {
		return c.empty
	}
	return acc.Build()
}

// Supply implements [Collector].
func (c *MapCollector[E, V]) Supply() *enums.MapBuilder[E, V] {
	return must(enums.NewMapBuilder[E, V](c.t))
}

// must is only used with a Type that has already been validated.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
