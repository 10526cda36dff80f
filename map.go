// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// A Map is an immutable mapping from the constants of a single [Type]
// to values. Values are stored densely by ordinal, and iteration always
// follows the declaration order of the keys. Maps are created with a
// [MapBuilder] and are safe for concurrent use.
type Map[E comparable, V any] struct {
	keys   *bitset.BitSet // Never mutated.
	t      *Type[E]
	values []V // Indexed by ordinal; nil when empty.
}

// All returns the entries of the map in declaration order.
func (m *Map[E, V]) All() iter.Seq2[E, V] {
	return func(yield func(E, V) bool) {
		for i, ok := m.keys.NextSet(0); ok; i, ok = m.keys.NextSet(i + 1) {
			if !yield(m.t.constants[i], m.values[i]) {
				return
			}
		}
	}
}

// Contains returns true if the map has an entry for the key.
func (m *Map[E, V]) Contains(key E) bool {
	ord, ok := m.t.ordinals[key]
	return ok && m.keys.Test(uint(ord))
}

// Get returns the value associated with the key, or false if there is
// no entry.
func (m *Map[E, V]) Get(key E) (V, bool) {
	ord, ok := m.t.ordinals[key]
	if !ok || !m.keys.Test(uint(ord)) {
		return *new(V), false
	}
	return m.values[ord], true
}

// IsEmpty returns true if the map has no entries.
func (m *Map[E, V]) IsEmpty() bool {
	return m.keys.None()
}

// Keys returns the keys of the map in declaration order.
func (m *Map[E, V]) Keys() iter.Seq[E] {
	return func(yield func(E) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// KeySet returns the keys of the map as a [Set]. The Set shares the
// map's immutable storage.
func (m *Map[E, V]) KeySet() *Set[E] {
	if m.keys.None() {
		return m.t.empty
	}
	return &Set[E]{t: m.t, bits: m.keys}
}

// Len returns the number of entries.
func (m *Map[E, V]) Len() int {
	return int(m.keys.Count())
}

// MarshalJSON encodes the map as a JSON object whose member names are
// the constant names, in declaration order.
func (m *Map[E, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		name, err := json.Marshal(m.t.NameOf(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.t.NameOf(k), err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String is for debugging use only.
func (m *Map[E, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		_, _ = fmt.Fprintf(&sb, "%s:%v", m.t.NameOf(k), v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Type returns the Type of the map's keys.
func (m *Map[E, V]) Type() *Type[E] {
	return m.t
}

// Values returns the values of the map in the declaration order of
// their keys.
func (m *Map[E, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// A MapBuilder is the mutable working container used to accumulate a
// [Map]. A MapBuilder is not safe for concurrent use.
type MapBuilder[E comparable, V any] struct {
	keys   *bitset.BitSet // Lazily allocated, released by Build.
	t      *Type[E]
	values []V
}

// NewMapBuilder returns an empty MapBuilder for the Type.
func NewMapBuilder[E comparable, V any](t *Type[E]) (*MapBuilder[E, V], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &MapBuilder[E, V]{t: t}, nil
}

// Build returns an immutable Map containing the accumulated entries.
// The builder's storage is handed to the Map, so the builder is left
// empty and may be reused. An empty Map shares the Type's empty
// storage.
func (b *MapBuilder[E, V]) Build() *Map[E, V] {
	keys, values := b.keys, b.values
	b.keys, b.values = nil, nil
	if keys == nil || keys.None() {
		return &Map[E, V]{t: b.t, keys: b.t.empty.bits}
	}
	return &Map[E, V]{t: b.t, keys: keys, values: values}
}

// Len returns the number of entries accumulated so far.
func (b *MapBuilder[E, V]) Len() int {
	if b.keys == nil {
		return 0
	}
	return int(b.keys.Count())
}

// Put associates the value with the key, replacing any existing entry.
// Put panics with an [*ArgumentError] wrapping [ErrUnknownConstant] if
// the key is not a constant of the builder's Type.
func (b *MapBuilder[E, V]) Put(key E, value V) {
	ord := b.t.mustOrdinal(key)
	b.storage()
	b.keys.Set(ord)
	b.values[ord] = value
}

// PutAll copies every entry of the other builder into the receiver.
// Where both builders have an entry for the same key, the other
// builder's value replaces the receiver's. The other builder is not
// modified.
func (b *MapBuilder[E, V]) PutAll(o *MapBuilder[E, V]) {
	if o.t != b.t {
		panic(&ArgumentError{Arg: "other", Err: ErrNotEnum,
			Detail: "builders belong to different types"})
	}
	if o.keys == nil {
		return
	}
	b.storage()
	for i, ok := o.keys.NextSet(0); ok; i, ok = o.keys.NextSet(i + 1) {
		b.values[i] = o.values[i]
	}
	b.keys.InPlaceUnion(o.keys)
}

func (b *MapBuilder[E, V]) storage() {
	if b.keys == nil {
		b.keys = b.t.newBits()
		b.values = make([]V, b.t.Len())
	}
}
