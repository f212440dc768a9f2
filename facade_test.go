// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valuetable enumerates the 2^nvars full assignments of the diagram held by r
// and renders their values as a |v0|v1|...| string. Variable 0 is the most
// significant position of the enumeration.
func valuetable[V comparable](t *testing.T, b *MTBDD[V], r Root, nvars int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteByte('|')
	for k := 0; k < 1<<nvars; k++ {
		a := NewAssignment(nvars)
		for i := 0; i < nvars; i++ {
			if k&(1<<(nvars-1-i)) != 0 {
				a.Set(i, One)
			} else {
				a.Set(i, Zero)
			}
		}
		vs, err := b.GetValue(r, a)
		require.NoError(t, err)
		require.Len(t, vs, 1, "assignment %s", a)
		fmt.Fprintf(&sb, "%v|", vs[0])
	}
	return sb.String()
}

func mustparse(t *testing.T, s string) Assignment {
	t.Helper()
	a, err := AssignmentFromString(s)
	require.NoError(t, err)
	return a
}

// standard builds the diagram over four variables used by most tests below.
func standard(t *testing.T) (*MTBDD[int], Root) {
	t.Helper()
	b := New(0)
	b.SetUnit(1)
	r := b.CreateRoot()
	for _, c := range []struct {
		asgn  string
		value int
	}{
		{"0011", 3},
		{"0100", 4},
		{"1001", 9},
		{"1110", 14},
		{"1110", 14}, // setting the same path twice is idempotent
		{"1111", 15},
	} {
		require.NoError(t, b.SetValue(r, mustparse(t, c.asgn), c.value))
	}
	require.False(t, b.Errored(), "%v", b.Error())
	return b, r
}

const standardTable = "|0|0|0|3|4|0|0|0|0|9|0|0|0|0|14|15|"

func TestSetValueGetValue(t *testing.T) {
	b, r := standard(t)
	assert.Equal(t, standardTable, valuetable(t, b, r, 4))
	// paths that were never assigned read as the background
	for _, k := range []uint64{1, 2, 5, 6, 7, 8, 10, 11, 12, 13} {
		a := NewAssignment(4)
		for i := 0; i < 4; i++ {
			if k&(1<<uint(3-i)) != 0 {
				a.Set(i, One)
			} else {
				a.Set(i, Zero)
			}
		}
		v, err := b.GetValue(r, a)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, v, "assignment %s", a)
	}
	assert.Equal(t, 4, b.VarCount())
}

func TestSetValueCube(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	r := b.CreateRoot()
	// a DontCare writes both branches at once
	require.NoError(t, b.SetValue(r, mustparse(t, "1X0"), 7))
	assert.Equal(t, "|0|0|0|0|7|0|7|0|", valuetable(t, b, r, 3))
	// overwriting one corner of the cube leaves the other untouched
	require.NoError(t, b.SetValue(r, mustparse(t, "110"), 5))
	assert.Equal(t, "|0|0|0|0|7|0|5|0|", valuetable(t, b, r, 3))
}

func TestGetValuePartial(t *testing.T) {
	b, r := standard(t)
	// an all-DontCare assignment collects every leaf, each one reported once
	vs, err := b.GetValue(r, NewAssignment(4))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 3, 4, 9, 14, 15}, vs)
	// the collected set is stable while the diagram is not mutated
	again, err := b.GetValue(r, NewAssignment(4))
	require.NoError(t, err)
	assert.Equal(t, vs, again)
	vs, err = b.GetValue(r, mustparse(t, "010X"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{4, 0}, vs)
	vs, err = b.GetValue(r, mustparse(t, "X011"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{3, 0}, vs)
	// a full assignment reaches exactly one leaf
	vs, err = b.GetValue(r, mustparse(t, "1110"))
	require.NoError(t, err)
	assert.Equal(t, []int{14}, vs)
}

func TestNoVariables(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	r := b.CreateRoot()
	v, err := b.GetValue(r, NewAssignment(0))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, v)
	require.NoError(t, b.SetValue(r, NewAssignment(0), 42))
	v, err = b.GetValue(r, NewAssignment(0))
	require.NoError(t, err)
	assert.Equal(t, []int{42}, v)
	assert.Equal(t, 0, b.VarCount())
}

func TestMultipleRoots(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	r1 := b.CreateRoot()
	r2 := b.CreateRoot()
	require.NoError(t, b.SetValue(r1, mustparse(t, "01"), 3))
	require.NoError(t, b.SetValue(r2, mustparse(t, "10"), 5))
	assert.Equal(t, "|0|3|0|0|", valuetable(t, b, r1, 2))
	assert.Equal(t, "|0|0|5|0|", valuetable(t, b, r2, 2))
	b.EraseRoot(r1)
	_, err := b.GetValue(r1, mustparse(t, "01"))
	assert.Error(t, err)
	v, err := b.GetValue(r2, mustparse(t, "10"))
	require.NoError(t, err)
	assert.Equal(t, []int{5}, v)
}

func TestReindex(t *testing.T) {
	b, r := standard(t)
	res := b.Reindex(b.RootNode(r), 1, 4)
	require.False(t, b.Errored(), "%v", b.Error())
	r2 := b.CreateRootFrom(res)
	assert.Equal(t,
		"|0|4|0|0|0|0|3|0|0|4|0|0|0|0|3|0|0|0|9|0|0|14|0|15|0|0|9|0|0|14|0|15|",
		valuetable(t, b, r2, 5))
	// the original diagram is left unchanged
	assert.Equal(t, standardTable, valuetable(t, b, r, 4))
	// reindexing to the same position, or a variable that does not occur,
	// gives back the same node
	n2 := b.RootNode(r2)
	same := b.Reindex(n2, 3, 3)
	assert.Equal(t, n2, same)
	b.Release(same)
	same = b.Reindex(n2, 7, 9)
	assert.Equal(t, n2, same)
	b.Release(same)
}

func TestProject(t *testing.T) {
	b, r := standard(t)
	plus := b.NewBinaryOp(func(x, y int) int { return x + y })
	one := b.Project(b.RootNode(r), func(i int) bool { return i == 1 }, plus)
	require.False(t, b.Errored(), "%v", b.Error())
	r1 := b.CreateRootFrom(one)
	assert.Equal(t, "|4|0|0|3|4|0|0|3|0|9|14|15|0|9|14|15|", valuetable(t, b, r1, 4))
	both := b.Project(b.RootNode(r), func(i int) bool { return i%2 == 1 }, plus)
	r2 := b.CreateRootFrom(both)
	assert.Equal(t, "|4|4|3|3|4|4|3|3|9|9|29|29|9|9|29|29|", valuetable(t, b, r2, 4))
	assert.Equal(t, standardTable, valuetable(t, b, r, 4))
}

func TestMonadicApply(t *testing.T) {
	b, r := standard(t)
	square := b.NewUnaryOp(func(v int) int { return v * v })
	res := b.MonadicApply(b.RootNode(r), square)
	require.False(t, b.Errored(), "%v", b.Error())
	r2 := b.CreateRootFrom(res)
	assert.Equal(t, "|0|0|0|9|16|0|0|0|0|81|0|0|0|0|196|225|", valuetable(t, b, r2, 4))
}

func TestApply(t *testing.T) {
	b, r := standard(t)
	plus := b.NewBinaryOp(func(x, y int) int { return x + y })
	res := b.Apply(b.RootNode(r), b.RootNode(r), plus)
	require.False(t, b.Errored(), "%v", b.Error())
	r2 := b.CreateRootFrom(res)
	assert.Equal(t, "|0|0|0|6|8|0|0|0|0|18|0|0|0|0|28|30|", valuetable(t, b, r2, 4))
}

func TestTimesIndicator(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	x0 := b.IthVar(0)
	x2 := b.IthVar(2)
	a := b.Times(x0, x2)
	require.False(t, b.Errored(), "%v", b.Error())
	// an indicator diagram is a fixpoint of Times with itself
	aa := b.Times(a, a)
	assert.Equal(t, a, aa)
	// and of the monadic square, since its values are 0 and 1
	square := b.NewUnaryOp(func(v int) int { return v * v })
	sq := b.MonadicApply(a, square)
	assert.Equal(t, a, sq)
	ra := b.CreateRootFrom(a)
	assert.Equal(t, "|0|0|0|0|0|1|0|1|", valuetable(t, b, ra, 3))
	b.Release(x0)
	b.Release(x2)
	b.Release(aa)
	b.Release(sq)
}

func TestTernaryApply(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	cond := b.IthVar(0)
	rg := b.CreateRoot()
	rh := b.CreateRoot()
	require.NoError(t, b.SetValue(rg, mustparse(t, "X1"), 5))
	require.NoError(t, b.SetValue(rh, mustparse(t, "X0"), 7))
	ite := b.NewTernaryOp(func(f, g, h int) int {
		if f != 0 {
			return g
		}
		return h
	})
	res := b.TernaryApply(cond, b.RootNode(rg), b.RootNode(rh), ite)
	require.False(t, b.Errored(), "%v", b.Error())
	r := b.CreateRootFrom(res)
	assert.Equal(t, "|7|0|0|5|", valuetable(t, b, r, 2))
	b.Release(cond)
}

func TestAddComplement(t *testing.T) {
	b, r := standard(t)
	res := b.AddComplement(b.RootNode(r))
	require.False(t, b.Errored(), "%v", b.Error())
	r2 := b.CreateRootFrom(res)
	assert.Equal(t, "|1|1|1|0|0|1|1|1|1|0|1|1|1|1|0|0|", valuetable(t, b, r2, 4))
	// complementing an indicator gives the negated indicator
	x := b.IthVar(2)
	nx := b.NIthVar(2)
	cx := b.AddComplement(x)
	assert.Equal(t, nx, cx)
	// the complement is an involution on indicators
	back := b.AddComplement(cx)
	assert.Equal(t, x, back)
	b.Release(x)
	b.Release(nx)
	b.Release(cx)
	b.Release(back)
}

func TestBackgroundAndUnit(t *testing.T) {
	b := New(0)
	assert.Equal(t, 0, b.Background())
	b.SetUnit(1)
	assert.Equal(t, 1, b.Unit())
	require.NoError(t, b.SetBackground(0))
	// a value carried by a living terminal cannot become the background
	n := b.Terminal(5)
	assert.Error(t, b.SetBackground(5))
	b.Release(n)
}

func TestRetainRelease(t *testing.T) {
	b := New(0)
	n := b.Terminal(7)
	assert.Equal(t, 1, b.RefCount(n))
	assert.Equal(t, n, b.Retain(n))
	assert.Equal(t, 2, b.RefCount(n))
	b.Release(n)
	assert.Equal(t, 1, b.RefCount(n))
	// the terminal keeps its address while it stays alive
	assert.Equal(t, n, b.Terminal(7))
	b.Release(n)
	b.Release(n)
}

func TestDagSize(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	n := b.Terminal(7)
	assert.Equal(t, 1, b.DagSize(n))
	x := b.IthVar(0)
	// the indicator node plus the unit and background terminals
	assert.Equal(t, 3, b.DagSize(x))
	b.Release(n)
	b.Release(x)
}

func TestErrorSticky(t *testing.T) {
	b := New(0)
	b.SetUnit(1)
	plus := b.NewBinaryOp(func(x, y int) int { return x + y })
	res := b.Apply(-1, 0, plus)
	assert.Negative(t, res)
	assert.True(t, b.Errored())
	assert.NotEmpty(t, b.Error())
	_, err := b.GetValue(Root(999), NewAssignment(0))
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	b, _ := standard(t)
	s := b.Stats()
	assert.Contains(t, s, "Varnum:")
	assert.Contains(t, s, "Allocated:")
	assert.Contains(t, s, "Roots:")
}
