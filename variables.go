// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

// Variables are identified by their index, which is also their position in
// the ordering of the diagram. The engine tracks the highest index it has seen
// so far; every operation that mentions a variable grows the count as needed.

// VarCount returns the number of variables the MTBDD tracks. It is one more
// than the highest variable index mentioned so far.
func (b *MTBDD[V]) VarCount() int {
	return int(b.varnum)
}

func (b *MTBDD[V]) growvar(i int32) bool {
	if i < 0 || i >= _MAXVAR {
		b.seterror("bad variable index (%d)", i)
		return false
	}
	if i >= b.varnum {
		b.varnum = i + 1
	}
	return true
}

// IthVar returns the indicator diagram of variable i: paths where variable i
// is true lead to the unit value, every other path leads to the background.
// The result holds one reference owned by the caller.
func (b *MTBDD[V]) IthVar(i int) Node {
	if !b.growvar(int32(i)) {
		return -1
	}
	res := b.ithvar(int32(i))
	b.sweep()
	if res < 0 {
		return b.seterror("cannot allocate variable %d", i)
	}
	return res
}

// NIthVar returns the indicator diagram of the negation of variable i. See
// IthVar.
func (b *MTBDD[V]) NIthVar(i int) Node {
	if !b.growvar(int32(i)) {
		return -1
	}
	res := b.nithvar(int32(i))
	b.sweep()
	if res < 0 {
		return b.seterror("cannot allocate variable %d", i)
	}
	return res
}

func (b *MTBDD[V]) ithvar(i int32) int {
	unit := b.mkterm(b.unitval)
	if unit < 0 {
		return -1
	}
	return b.own(b.makenode(i, 0, unit))
}

func (b *MTBDD[V]) nithvar(i int32) int {
	unit := b.mkterm(b.unitval)
	if unit < 0 {
		return -1
	}
	return b.own(b.makenode(i, unit, 0))
}

// AddComplement returns the complement of an indicator diagram: leaves
// carrying the background value become the unit and every other leaf becomes
// the background. Applied to IthVar(i) it gives NIthVar(i). The result holds
// one reference owned by the caller.
func (b *MTBDD[V]) AddComplement(n Node) Node {
	if !b.checknode(n) {
		return b.seterror("wrong operand in call to AddComplement (%d)", n)
	}
	res := b.monorec(n, op_complement, func(v V) V {
		if v == b.bgval {
			return b.unitval
		}
		return b.bgval
	})
	b.sweep()
	if res < 0 {
		return b.seterror("complement failed")
	}
	return res
}

// Terminal returns the canonical terminal node for value v. The result holds
// one reference owned by the caller.
func (b *MTBDD[V]) Terminal(v V) Node {
	res := b.own(b.mkterm(v))
	if res < 0 {
		return b.seterror("cannot allocate terminal")
	}
	return res
}
