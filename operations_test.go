// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//********************************************************************************************

func TestMin3(t *testing.T) {
	var minTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minTests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("min3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestApplyStaggered(t *testing.T) {
	// operands over disjoint sets of variables
	b := New(0)
	b.SetUnit(1)
	left := b.CreateRoot()
	right := b.CreateRoot()
	require.NoError(t, b.SetValue(left, mustparse(t, "1X"), 2))
	require.NoError(t, b.SetValue(right, mustparse(t, "XX1"), 5))
	plus := b.NewBinaryOp(func(x, y int) int { return x + y })
	res := b.Apply(b.RootNode(left), b.RootNode(right), plus)
	require.False(t, b.Errored(), "%v", b.Error())
	r := b.CreateRootFrom(res)
	assert.Equal(t, "|0|5|0|5|2|7|2|7|", valuetable(t, b, r, 3))
}

func TestApplyOperatorsAreIndependent(t *testing.T) {
	// two operators built from the same function have separate cache entries
	b, r := standard(t)
	n := b.RootNode(r)
	max1 := b.NewBinaryOp(func(x, y int) int {
		if x > y {
			return x
		}
		return y
	})
	min1 := b.NewBinaryOp(func(x, y int) int {
		if x < y {
			return x
		}
		return y
	})
	up := b.Apply(n, b.Terminal(5), max1)
	down := b.Apply(n, b.Terminal(5), min1)
	require.False(t, b.Errored(), "%v", b.Error())
	rup := b.CreateRootFrom(up)
	rdown := b.CreateRootFrom(down)
	assert.Equal(t, "|5|5|5|5|5|5|5|5|5|9|5|5|5|5|14|15|", valuetable(t, b, rup, 4))
	assert.Equal(t, "|0|0|0|3|4|0|0|0|0|5|0|0|0|0|5|5|", valuetable(t, b, rdown, 4))
}

func TestOverwrite(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	r := b.CreateRoot()
	require.NoError(t, b.SetValue(r, mustparse(t, "XX"), 1))
	require.NoError(t, b.SetValue(r, mustparse(t, "1X"), 2))
	require.NoError(t, b.SetValue(r, mustparse(t, "11"), 3))
	assert.Equal(t, "|1|1|2|3|", valuetable(t, b, r, 2))
}

func TestTimesLeftBias(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	x := b.Terminal(6)
	y := b.Terminal(7)
	res := b.Times(x, y)
	v, ok := b.Value(res)
	require.True(t, ok)
	// neither operand is the unit or the background, the left one wins
	assert.Equal(t, 6, v)
	b.Release(x)
	b.Release(y)
	b.Release(res)
}
