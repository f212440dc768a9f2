// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

// Nodes are reclaimed eagerly. The refcou field of a node counts its external
// references (calls to Retain) plus the number of parent links created by
// makenode. A node whose counter falls to zero is unlinked from the unicity
// tables, its children are released in turn, and its slot goes back to the
// free list. The operation caches are invalidated whenever a release actually
// reclaims a slot, since a recycled id would otherwise alias a stale entry.
//
// Every internal operation returns its result holding one caller-owned
// reference. Callers either keep that reference, hand it to the user, or give
// it back with drop. Dropped references are collected on a stack and released
// in one sweep when the toplevel operation finishes, so that intermediate
// results stay protected for the whole computation.

func (b *MTBDD[V]) incref(n int) {
	if b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
	}
}

// Retain increments the reference count of node n and returns n so that calls
// can be chained. Nodes returned by the operations of the MTBDD already hold
// one reference owned by the caller; Retain is only needed to share them.
func (b *MTBDD[V]) Retain(n Node) Node {
	if n >= 0 && n < len(b.nodes) && b.nodes[n].low != -1 {
		b.incref(n)
	}
	return n
}

// Release gives back one reference to node n. When the last reference to a
// node disappears, the node is reclaimed and its children are released
// recursively. Releasing a node more often than it was retained corrupts the
// table; the background terminal and other pinned nodes are unaffected.
func (b *MTBDD[V]) Release(n Node) {
	if n < 0 || n >= len(b.nodes) || b.nodes[n].low == -1 {
		return
	}
	if b.releaserec(n) {
		b.cachereset()
	}
}

// releaserec reports whether at least one slot was reclaimed.
func (b *MTBDD[V]) releaserec(n int) bool {
	if b.nodes[n].refcou >= _MAXREFCOUNT {
		return false
	}
	b.nodes[n].refcou--
	if b.nodes[n].refcou > 0 {
		return false
	}
	b.reclaim(n)
	return true
}

func (b *MTBDD[V]) reclaim(n int) {
	node := b.nodes[n]
	if b.isterm(n) {
		delete(b.terms, node.value)
	} else {
		delete(b.unique, nodeKey{node.level, node.low, node.high})
		b.releaserec(node.low)
		b.releaserec(node.high)
	}
	b.nodes[n] = mtnode[V]{level: 0, low: -1, high: b.freepos}
	b.freepos = n
	b.freenum++
}

// ************************************************************

// drop records a caller-owned reference that is no longer needed. The
// reference is actually given back at the next sweep, so the node stays alive
// until the end of the running toplevel operation.
func (b *MTBDD[V]) drop(n int) int {
	if n >= 0 {
		b.dropped = append(b.dropped, n)
	}
	return n
}

// sweep releases all dropped references. Called when a toplevel operation
// finishes, after its result has been secured with a reference.
func (b *MTBDD[V]) sweep() {
	reclaimed := false
	for _, n := range b.dropped {
		if b.nodes[n].low != -1 && b.releaserec(n) {
			reclaimed = true
		}
	}
	b.dropped = b.dropped[:0]
	if reclaimed {
		b.cachereset()
		b.log.Debug().Int("free", b.freenum).Msg("reclaimed nodes, caches invalidated")
	}
}

// RefCount returns the current reference count of node n, the sum of its
// external references and of its parent links. Pinned nodes report the
// saturated value 1023.
func (b *MTBDD[V]) RefCount(n Node) int {
	if n < 0 || n >= len(b.nodes) || b.nodes[n].low == -1 {
		return 0
	}
	return int(b.nodes[n].refcou &^ _MARKBIT)
}
