// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapBuilder(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[color, int](colors)
	r.NoError(err)
	r.Zero(b.Len())

	b.Put(green, 5)
	b.Put(red, 3)
	b.Put(green, 50)
	r.Equal(2, b.Len())

	m := b.Build()
	r.Equal(2, m.Len())
	r.False(m.IsEmpty())
	r.True(m.Contains(red))
	r.False(m.Contains(blue))
	r.False(m.Contains(color(8)))

	v, ok := m.Get(green)
	r.True(ok)
	r.Equal(50, v)
	v, ok = m.Get(blue)
	r.False(ok)
	r.Zero(v)
	_, ok = m.Get(color(8))
	r.False(ok)

	// Declaration order, not insertion order.
	r.Equal([]color{red, green}, slices.Collect(m.Keys()))
	r.Equal([]int{3, 50}, slices.Collect(m.Values()))
	r.Equal(map[color]int{red: 3, green: 50}, maps.Collect(m.All()))
	r.Equal("{RED:3, GREEN:50}", m.String())
	r.Equal([]color{red, green}, m.KeySet().Slice())
	r.Same(colors, m.Type())
}

func TestMapBuilderEmpty(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[color, string](colors)
	r.NoError(err)
	m := b.Build()
	r.True(m.IsEmpty())
	r.Zero(m.Len())
	r.Empty(slices.Collect(m.Keys()))
	r.Same(colors.EmptySet(), m.KeySet())
	r.Equal("{}", m.String())
}

func TestMapBuilderReuse(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[color, int](colors)
	r.NoError(err)
	b.Put(red, 1)
	first := b.Build()

	r.Zero(b.Len())
	b.Put(red, 2)
	second := b.Build()

	v, _ := first.Get(red)
	r.Equal(1, v)
	v, _ = second.Get(red)
	r.Equal(2, v)
}

func TestMapBuilderPutAll(t *testing.T) {
	r := require.New(t)

	left, err := NewMapBuilder[color, string](colors)
	r.NoError(err)
	right, err := NewMapBuilder[color, string](colors)
	r.NoError(err)
	empty, err := NewMapBuilder[color, string](colors)
	r.NoError(err)

	left.Put(red, "left-red")
	left.Put(green, "left-green")
	right.Put(green, "right-green")
	right.Put(blue, "right-blue")

	// The argument's entries win on collision.
	left.PutAll(right)
	left.PutAll(empty)
	empty.PutAll(right)

	r.Equal(map[color]string{
		red:   "left-red",
		green: "right-green",
		blue:  "right-blue",
	}, maps.Collect(left.Build().All()))
	r.Equal(2, right.Len())
	r.Equal(2, empty.Len())
}

func TestMapBuilderUnknownConstant(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[color, int](colors)
	r.NoError(err)
	r.Panics(func() { b.Put(color(99), 1) })
}

func TestNewMapBuilderInvalid(t *testing.T) {
	r := require.New(t)

	_, err := NewMapBuilder[color, int](nil)
	r.ErrorIs(err, ErrNil)

	_, err = NewMapBuilder[color, int](&Type[color]{})
	r.ErrorIs(err, ErrNotEnum)
}

func TestMapMarshalJSON(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[weekday, []int](weekdays)
	r.NoError(err)
	b.Put("fri", []int{5})
	b.Put("mon", []int{1, 8})

	data, err := json.Marshal(b.Build())
	r.NoError(err)
	// Member order follows declaration order.
	r.Equal(`{"mon":[1,8],"fri":[5]}`, string(data))
}

func TestMapMarshalJSONError(t *testing.T) {
	r := require.New(t)

	b, err := NewMapBuilder[color, func()](colors)
	r.NoError(err)
	b.Put(red, func() {})

	_, err = json.Marshal(b.Build())
	r.ErrorContains(err, "RED")
}
