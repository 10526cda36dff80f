// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package collect

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"vawter.tech/enums"
	"vawter.tech/enums/internal/safe"
	"vawter.tech/enums/seq"
)

type color int

const (
	red color = iota
	green
	blue
)

func (c color) String() string {
	return [...]string{"RED", "GREEN", "BLUE"}[c]
}

var colors = enums.MustDefine("color", red, green, blue)

func nameLen(c color) int { return len(c.String()) }

func TestToSet(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	s := Collect(slices.Values([]color{blue, red, red}), c)
	r.Equal(2, s.Len())
	r.Equal([]color{red, blue}, s.Slice())
}

func TestToSetEmpty(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	s := Collect(slices.Values([]color{}), c)
	r.True(s.IsEmpty())
	r.Same(colors.EmptySet(), s)
	r.Same(s, Collect(slices.Values([]color{}), c))
}

func TestToSetReusable(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	first := Collect(slices.Values([]color{green}), c)
	second := Collect(slices.Values([]color{red, blue}), c)
	r.Equal([]color{green}, first.Slice())
	r.Equal([]color{red, blue}, second.Slice())
}

func TestToSetCombine(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	a := c.Supply()
	c.Accumulate(a, red)
	c.Accumulate(a, green)
	b := c.Supply()
	c.Accumulate(b, green)
	c.Accumulate(b, blue)

	r.Equal([]color{red, green, blue}, c.Finish(c.Combine(a, b)).Slice())
}

func TestToMap(t *testing.T) {
	r := require.New(t)

	c, err := ToMap(colors, nameLen)
	r.NoError(err)

	m := Collect(slices.Values([]color{green, red}), c)
	r.Equal(2, m.Len())
	r.Equal([]color{red, green}, slices.Collect(m.Keys()))
	r.Equal(map[color]int{red: 3, green: 5}, maps.Collect(m.All()))
	r.Equal("{RED:3, GREEN:5}", m.String())
}

func TestToMapEmpty(t *testing.T) {
	r := require.New(t)

	c, err := ToMap(colors, nameLen)
	r.NoError(err)

	m := Collect(slices.Values([]color{}), c)
	r.True(m.IsEmpty())
	r.Same(m, Collect(slices.Values([]color{}), c))
}

func TestToMapOverwrite(t *testing.T) {
	r := require.New(t)

	var calls atomic.Int32
	c, err := ToMap(colors, func(c color) int32 {
		return calls.Add(1)
	})
	r.NoError(err)

	m := Collect(slices.Values([]color{red, red}), c)
	v, ok := m.Get(red)
	r.True(ok)
	r.Equal(int32(2), v)
}

func TestToMapCombine(t *testing.T) {
	r := require.New(t)

	c, err := ToMap(colors, func(c color) string { return c.String() })
	r.NoError(err)

	a := c.Supply()
	a.Put(red, "first-red")
	a.Put(green, "first-green")
	b := c.Supply()
	b.Put(green, "second-green")

	m := c.Finish(c.Combine(a, b))
	r.Equal(map[color]string{
		red:   "first-red",
		green: "second-green",
	}, maps.Collect(m.All()))
}

func TestFactoryValidation(t *testing.T) {
	tcs := []struct {
		name string
		fn   func() error
		want error
		arg  string
	}{
		{"set nil", func() error { _, err := ToSet[color](nil); return err },
			enums.ErrNil, "enumType"},
		{"set not enum", func() error { _, err := ToSet(&enums.Type[color]{}); return err },
			enums.ErrNotEnum, "enumType"},
		{"map nil", func() error { _, err := ToMap[color](nil, nameLen); return err },
			enums.ErrNil, "enumType"},
		{"map not enum", func() error { _, err := ToMap(&enums.Type[color]{}, nameLen); return err },
			enums.ErrNotEnum, "enumType"},
		{"map nil valueMaker", func() error { _, err := ToMap[color, int](colors, nil); return err },
			enums.ErrNil, "valueMaker"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			err := tc.fn()
			r.ErrorIs(err, tc.want)
			r.ErrorIs(err, enums.ErrInvalidArgument)
			var argErr *enums.ArgumentError
			r.ErrorAs(err, &argErr)
			r.Equal(tc.arg, argErr.Arg)
		})
	}
}

func TestCollectParallelSet(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	items := slices.Values([]color{blue, red, red, blue, blue, red, red})
	for _, workers := range []int{1, 2, 3, 8} {
		s, err := CollectParallel(t.Context(), items, workers, c, seq.WithName("colors"))
		r.NoError(err)
		r.Equal([]color{red, blue}, s.Slice(), "workers=%d", workers)
	}
}

func TestCollectParallelSetEmpty(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	s, err := CollectParallel(t.Context(), slices.Values([]color{}), 4, c)
	r.NoError(err)
	r.Same(colors.EmptySet(), s)
}

func TestCollectParallelMap(t *testing.T) {
	r := require.New(t)

	c, err := ToMap(colors, nameLen)
	r.NoError(err)

	sq, err := enums.NewSequencer(colors)
	r.NoError(err)

	sequential := Collect(sq.Seq(), c)
	parallel, err := CollectParallel(t.Context(), sq.ParallelSeq().Seq(), 3, c)
	r.NoError(err)

	r.Equal(maps.Collect(sequential.All()), maps.Collect(parallel.All()))
	r.Equal([]color{red, green, blue}, slices.Collect(parallel.Keys()))
}

func TestCollectParallelMapEmpty(t *testing.T) {
	r := require.New(t)

	c, err := ToMap(colors, nameLen)
	r.NoError(err)

	m, err := CollectParallel(t.Context(), slices.Values([]color{}), 2, c)
	r.NoError(err)
	r.Same(Collect(slices.Values([]color{}), c), m)
}

func TestCollectParallelUnknownConstant(t *testing.T) {
	r := require.New(t)

	c, err := ToSet(colors)
	r.NoError(err)

	s, err := CollectParallel(t.Context(), slices.Values([]color{red, color(42)}), 2, c)
	r.Nil(s)
	r.ErrorIs(err, enums.ErrUnknownConstant)
	var rec *safe.RecoveredError
	r.ErrorAs(err, &rec)
}

func TestCollectParallelCanceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c, err := ToSet(colors)
	r.NoError(err)

	s, err := CollectParallel(ctx, slices.Values([]color{red}), 2, c)
	r.Nil(s)
	r.Error(err)
}

func TestCollectParallelPartitions(t *testing.T) {
	r := require.New(t)

	// Every partition of the sequencer folds independently, and the
	// union of the partial sets is the full set.
	sq, err := enums.NewSequencer(colors)
	r.NoError(err)
	c, err := ToSet(colors)
	r.NoError(err)

	acc := c.Supply()
	for _, part := range sq.ParallelSeq().Split(2) {
		partial := c.Supply()
		for elt := range part {
			c.Accumulate(partial, elt)
		}
		acc = c.Combine(acc, partial)
	}
	r.Equal([]color{red, green, blue}, c.Finish(acc).Slice())
}
