// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// Root is a handle on a diagram managed by the MTBDD. Roots are the unit of
// sharing for users that address their diagrams by name rather than by node:
// the nodes below two roots live in the same tables and are shared whenever
// they are structurally equal.
type Root int

// CreateRoot returns a fresh handle on the empty diagram, the one that maps
// every assignment to the background value.
func (b *MTBDD[V]) CreateRoot() Root {
	r := b.nextroot
	b.nextroot++
	b.roots[r] = b.Retain(0)
	return r
}

// CreateRootFrom returns a fresh handle on the diagram rooted at n. The
// caller-owned reference on n is transferred to the root, so a node obtained
// from an operation can be wrapped without further bookkeeping.
func (b *MTBDD[V]) CreateRootFrom(n Node) Root {
	if !b.checknode(n) {
		b.seterror("wrong node in call to CreateRootFrom (%d)", n)
		return 0
	}
	r := b.nextroot
	b.nextroot++
	b.roots[r] = n
	return r
}

// EraseRoot releases the diagram held by r and invalidates the handle. Nodes
// that are not shared with another living diagram are reclaimed.
func (b *MTBDD[V]) EraseRoot(r Root) {
	n, ok := b.roots[r]
	if !ok {
		return
	}
	delete(b.roots, r)
	b.Release(n)
}

// RootNode returns the node currently held by r, or a negative value if the
// handle is unknown. The node is borrowed: retain it before storing it.
func (b *MTBDD[V]) RootNode(r Root) Node {
	n, ok := b.roots[r]
	if !ok {
		return -1
	}
	return n
}

// setroot installs n, with its caller-owned reference, as the diagram of r and
// gives back the reference held on the previous diagram.
func (b *MTBDD[V]) setroot(r Root, n int) {
	old := b.roots[r]
	b.roots[r] = n
	b.drop(old)
}

// ************************************************************

// Background returns the value of paths that have not been given any other
// value.
func (b *MTBDD[V]) Background() V {
	return b.bgval
}

// SetBackground changes the background value. The change fails when the new
// value is already carried by a terminal of a living diagram, since the two
// meanings cannot be told apart afterwards.
func (b *MTBDD[V]) SetBackground(v V) error {
	if v == b.bgval {
		return nil
	}
	if _, ok := b.terms[v]; ok {
		b.seterror("background value already in use by a terminal")
		return b.error
	}
	delete(b.terms, b.bgval)
	b.bgval = v
	b.nodes[0].value = v
	b.terms[v] = 0
	// cached results of the value-dependent operations are stale
	b.cachereset()
	return nil
}

// Unit returns the value used as true by the variable indicators. See IthVar
// and Times.
func (b *MTBDD[V]) Unit() V {
	return b.unitval
}

// SetUnit changes the value used as true by the variable indicators built from
// now on.
func (b *MTBDD[V]) SetUnit(v V) {
	if v == b.unitval {
		return
	}
	b.unitval = v
	b.cachereset()
}

// ************************************************************

// SetValue assigns value v to every path of the diagram held by r that
// matches asgn. A DontCare in the assignment matches both values of the
// variable, so one call can write a whole cube. Previously assigned paths are
// overwritten. Variables mentioned by the assignment grow the variable count
// of the MTBDD.
func (b *MTBDD[V]) SetValue(r Root, asgn Assignment, v V) error {
	if _, ok := b.roots[r]; !ok {
		b.seterror("unknown root (%d) in call to SetValue", r)
		return b.error
	}
	if asgn.Length() > 0 && !b.growvar(int32(asgn.Length()-1)) {
		return b.error
	}
	cube := b.own(b.mkterm(b.unitval))
	for i := 0; i < asgn.Length(); i++ {
		var ind int
		switch asgn.Get(i) {
		case One:
			ind = b.ithvar(int32(i))
		case Zero:
			ind = b.nithvar(int32(i))
		default:
			continue
		}
		next := b.timesrec(cube, ind)
		b.drop(cube)
		b.drop(ind)
		cube = next
		if cube < 0 {
			break
		}
	}
	// the paths of the cube take v, the background included, so the merge
	// depends on v and gets a fresh cache tag
	res := b.applyrec(b.roots[r], cube, b.newopid(), func(x, c V) V {
		if c != b.bgval {
			return v
		}
		return x
	})
	b.drop(cube)
	if res < 0 {
		b.sweep()
		b.seterror("SetValue failed on root %d", r)
		return b.error
	}
	b.setroot(r, res)
	b.sweep()
	return nil
}

// GetValue collects the terminal values of the diagram held by r that are
// reachable under the assignment asgn. A DontCare in the assignment collects
// over both values of the variable, so a partial assignment can reach several
// leaves. Each value appears once, in the order paths are first explored, else
// branches before then branches; the order is stable as long as the diagram is
// not mutated. Paths that were never assigned reach the background terminal,
// which is reported like any other leaf.
func (b *MTBDD[V]) GetValue(r Root, asgn Assignment) ([]V, error) {
	n, ok := b.roots[r]
	if !ok {
		b.seterror("unknown root (%d) in call to GetValue", r)
		return nil, b.error
	}
	return b.getvalue(n, asgn), nil
}

func (b *MTBDD[V]) getvalue(n int, asgn Assignment) []V {
	var res []V
	// terminals are interned, so deduplicating on node ids deduplicates the
	// values as well
	seen := make(map[int]bool)
	var walk func(int)
	walk = func(n int) {
		if b.isterm(n) {
			if !seen[n] {
				seen[n] = true
				res = append(res, b.nodes[n].value)
			}
			return
		}
		sym := asgn.Get(int(b.level(n)))
		if sym != One {
			walk(b.low(n))
		}
		if sym != Zero {
			walk(b.high(n))
		}
	}
	walk(n)
	return res
}

// ************************************************************

// Low returns the else branch of an internal node. The node is borrowed:
// retain it before storing it.
func (b *MTBDD[V]) Low(n Node) Node {
	if !b.checknode(n) || b.isterm(n) {
		return b.seterror("wrong operand in call to Low (%d)", n)
	}
	return b.low(n)
}

// High returns the then branch of an internal node. The node is borrowed:
// retain it before storing it.
func (b *MTBDD[V]) High(n Node) Node {
	if !b.checknode(n) || b.isterm(n) {
		return b.seterror("wrong operand in call to High (%d)", n)
	}
	return b.high(n)
}

// IsTerminal reports whether n is a terminal node.
func (b *MTBDD[V]) IsTerminal(n Node) bool {
	return b.checknode(n) && b.isterm(n)
}

// Value returns the value carried by a terminal node. The second result is
// false when n is not a terminal.
func (b *MTBDD[V]) Value(n Node) (V, bool) {
	if !b.checknode(n) || !b.isterm(n) {
		return b.bgval, false
	}
	return b.nodes[n].value, true
}

// Level returns the variable index of an internal node, or -1 for terminals.
func (b *MTBDD[V]) Level(n Node) int {
	if !b.checknode(n) || b.isterm(n) {
		return -1
	}
	return int(b.level(n))
}

// ************************************************************

// Stats returns information about the node table, the unicity tables and the
// operation caches.
func (b *MTBDD[V]) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, 100.0-r)
	res += fmt.Sprintf("Size:       %s\n", humanize.IBytes(uint64(len(b.nodes))*uint64(unsafe.Sizeof(mtnode[V]{}))))
	res += fmt.Sprintf("Terminals:  %d\n", len(b.terms))
	res += fmt.Sprintf("Roots:      %d\n", len(b.roots))
	res += "==============\n"
	res += b.cacheStat.String()
	return res
}
