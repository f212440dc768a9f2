// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

// Cache tags of the built-in operations. User operators get their tags from
// the opid counter, which starts above these.
const (
	op_times      = 0
	op_overwrite  = 1
	op_complement = 2
)

// UnaryOp is an operation over terminal values that can be applied on every
// leaf of a diagram with MonadicApply. Operators must be created with
// NewUnaryOp so that their results can be cached safely.
type UnaryOp[V comparable] struct {
	id int
	fn func(V) V
}

// BinaryOp is an operation combining the terminal values of two diagrams. See
// Apply and Project.
type BinaryOp[V comparable] struct {
	id int
	fn func(V, V) V
}

// TernaryOp is an operation combining the terminal values of three diagrams.
// See TernaryApply.
type TernaryOp[V comparable] struct {
	id int
	fn func(V, V, V) V
}

// NewUnaryOp returns an operator computing f on every leaf. Each operator has
// its own entries in the operation caches, so the same function registered
// twice gives two independent operators.
func (b *MTBDD[V]) NewUnaryOp(f func(V) V) *UnaryOp[V] {
	return &UnaryOp[V]{id: b.newopid(), fn: f}
}

// NewBinaryOp returns an operator combining the leaves of two diagrams.
func (b *MTBDD[V]) NewBinaryOp(f func(V, V) V) *BinaryOp[V] {
	return &BinaryOp[V]{id: b.newopid(), fn: f}
}

// NewTernaryOp returns an operator combining the leaves of three diagrams.
func (b *MTBDD[V]) NewTernaryOp(f func(V, V, V) V) *TernaryOp[V] {
	return &TernaryOp[V]{id: b.newopid(), fn: f}
}

func (b *MTBDD[V]) newopid() int {
	id := b.opid
	b.opid++
	return id
}

// own takes one reference on n for the caller. Every internal operation
// returns its result through own, see the protocol described in refs.go.
func (b *MTBDD[V]) own(n int) int {
	if n >= 0 {
		b.incref(n)
	}
	return n
}

func (b *MTBDD[V]) checknode(n Node) bool {
	return n >= 0 && n < len(b.nodes) && b.nodes[n].low != -1
}

// ************************************************************

// Apply combines the diagrams left and right, computing op on the terminal
// values found at the end of each pair of matching paths. The result holds one
// reference owned by the caller, to be given back with Release.
func (b *MTBDD[V]) Apply(left, right Node, op *BinaryOp[V]) Node {
	if !b.checknode(left) {
		return b.seterror("wrong operand in call to Apply (left: %d)", left)
	}
	if !b.checknode(right) {
		return b.seterror("wrong operand in call to Apply (right: %d)", right)
	}
	res := b.applyrec(left, right, op.id, op.fn)
	b.sweep()
	if res < 0 {
		return b.seterror("apply failed")
	}
	return res
}

func (b *MTBDD[V]) applyrec(left, right int, op int, fn func(V, V) V) int {
	if left < 0 || right < 0 {
		return -1
	}
	if b.isterm(left) && b.isterm(right) {
		return b.own(b.mkterm(fn(b.nodes[left].value, b.nodes[right].value)))
	}
	if res := b.matchapply(left, right, op); res >= 0 {
		return b.own(res)
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var low, high int
	var lvl int32
	switch {
	case leftlvl == rightlvl:
		low = b.applyrec(b.low(left), b.low(right), op, fn)
		high = b.applyrec(b.high(left), b.high(right), op, fn)
		lvl = leftlvl
	case leftlvl < rightlvl:
		low = b.applyrec(b.low(left), right, op, fn)
		high = b.applyrec(b.high(left), right, op, fn)
		lvl = leftlvl
	default:
		low = b.applyrec(left, b.low(right), op, fn)
		high = b.applyrec(left, b.high(right), op, fn)
		lvl = rightlvl
	}
	res := b.own(b.makenode(lvl, low, high))
	b.drop(low)
	b.drop(high)
	return b.setapply(left, right, op, res)
}

// ************************************************************

// MonadicApply computes op on every leaf of the diagram rooted at n,
// background included. The result holds one reference owned by the caller.
func (b *MTBDD[V]) MonadicApply(n Node, op *UnaryOp[V]) Node {
	if !b.checknode(n) {
		return b.seterror("wrong operand in call to MonadicApply (%d)", n)
	}
	res := b.monorec(n, op.id, op.fn)
	b.sweep()
	if res < 0 {
		return b.seterror("monadic apply failed")
	}
	return res
}

func (b *MTBDD[V]) monorec(n int, op int, fn func(V) V) int {
	if n < 0 {
		return -1
	}
	if b.isterm(n) {
		return b.own(b.mkterm(fn(b.nodes[n].value)))
	}
	if res := b.matchmono(n, op); res >= 0 {
		return b.own(res)
	}
	low := b.monorec(b.low(n), op, fn)
	high := b.monorec(b.high(n), op, fn)
	res := b.own(b.makenode(b.level(n), low, high))
	b.drop(low)
	b.drop(high)
	return b.setmono(n, op, res)
}

// ************************************************************

// TernaryApply combines three diagrams, computing op on the terminal values
// found at the end of each triple of matching paths. The result holds one
// reference owned by the caller.
func (b *MTBDD[V]) TernaryApply(f, g, h Node, op *TernaryOp[V]) Node {
	if !b.checknode(f) {
		return b.seterror("wrong operand in call to TernaryApply (f: %d)", f)
	}
	if !b.checknode(g) {
		return b.seterror("wrong operand in call to TernaryApply (g: %d)", g)
	}
	if !b.checknode(h) {
		return b.seterror("wrong operand in call to TernaryApply (h: %d)", h)
	}
	res := b.ternrec(f, g, h, op.id, op.fn)
	b.sweep()
	if res < 0 {
		return b.seterror("ternary apply failed")
	}
	return res
}

// tern_low returns n itself when the level p of n is not minimal among p, q
// and r, so that we always descend on the smallest levels first.
func (b *MTBDD[V]) tern_low(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *MTBDD[V]) tern_high(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *MTBDD[V]) ternrec(f, g, h int, op int, fn func(V, V, V) V) int {
	if f < 0 || g < 0 || h < 0 {
		return -1
	}
	if b.isterm(f) && b.isterm(g) && b.isterm(h) {
		return b.own(b.mkterm(fn(b.nodes[f].value, b.nodes[g].value, b.nodes[h].value)))
	}
	if res := b.matchtern(f, g, h, op); res >= 0 {
		return b.own(res)
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.ternrec(b.tern_low(p, q, r, f), b.tern_low(q, p, r, g), b.tern_low(r, p, q, h), op, fn)
	high := b.ternrec(b.tern_high(p, q, r, f), b.tern_high(q, p, r, g), b.tern_high(r, p, q, h), op, fn)
	res := b.own(b.makenode(min3(p, q, r), low, high))
	b.drop(low)
	b.drop(high)
	return b.settern(f, g, h, op, res)
}

// ************************************************************

// Times multiplies two diagrams in the indicator sense. The background value
// is absorbing and the unit value (see SetUnit) is neutral, so multiplying an
// indicator diagram, like the ones built with IthVar, against a diagram of
// values keeps the values on the paths where the indicator holds and maps
// every other path to the background. When both leaves carry a value different
// from the unit and the background, the left one wins.
func (b *MTBDD[V]) Times(left, right Node) Node {
	if !b.checknode(left) {
		return b.seterror("wrong operand in call to Times (left: %d)", left)
	}
	if !b.checknode(right) {
		return b.seterror("wrong operand in call to Times (right: %d)", right)
	}
	res := b.timesrec(left, right)
	b.sweep()
	if res < 0 {
		return b.seterror("times failed")
	}
	return res
}

func (b *MTBDD[V]) timesrec(left, right int) int {
	// the background terminal is absorbing, so we can cut early
	if left == 0 || right == 0 {
		return b.own(0)
	}
	return b.applyrec(left, right, op_times, func(x, y V) V {
		if x == b.bgval || y == b.bgval {
			return b.bgval
		}
		if x == b.unitval {
			return y
		}
		if y == b.unitval {
			return x
		}
		return x
	})
}

// overwriterec merges an update diagram into an existing one. Values of the
// update win over values of the original everywhere the update is not the
// background.
func (b *MTBDD[V]) overwriterec(old, update int) int {
	if update == 0 {
		return b.own(old)
	}
	return b.applyrec(old, update, op_overwrite, func(x, y V) V {
		if y != b.bgval {
			return y
		}
		return x
	})
}

// ************************************************************

// DagSize returns the number of distinct nodes reachable from n, terminals
// included.
func (b *MTBDD[V]) DagSize(n Node) int {
	if !b.checknode(n) {
		return 0
	}
	count := b.markrec(n)
	b.unmarkall()
	return count
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the id, variable index, and ids of the else and then
// successors of each node. Terminals are reported with both successors set to
// -1. We stop the computation and return an error if f returns an error at
// some point.
func (b *MTBDD[V]) Allnodes(f func(id int, level int32, low, high int) error, n ...Node) error {
	for _, v := range n {
		if !b.checknode(v) {
			b.seterror("wrong node in call to Allnodes (%d)", v)
			return b.error
		}
	}
	if len(n) == 0 {
		for k, nd := range b.nodes {
			if nd.low == -1 {
				continue
			}
			low, high := nd.low, nd.high
			if b.isterm(k) {
				low, high = -1, -1
			}
			if err := f(k, nd.level, low, high); err != nil {
				return err
			}
		}
		return nil
	}
	return b.allnodesfrom(f, n)
}
