// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"math"

	"github.com/rs/zerolog"
)

// Node is a reference to an element of a MTBDD. It represents the atomic unit
// of interactions and computations within a diagram. A negative value denotes
// an error.
type Node = int

// mtnode is one slot of the node table. A slot holds either an internal node,
// a terminal, or a link in the free list. Internal nodes have level < _MAXVAR
// and low, high >= 0. Terminals have level == _MAXVAR and carry a value. Free
// slots have low == -1 and use high to chain the free list.
type mtnode[V comparable] struct {
	level  int32 // Index of the variable labelling the node
	low    int   // Reference to the else branch, -1 when the slot is free
	high   int   // Reference to the then branch, or the next free slot
	refcou int32 // External references plus links from parent nodes
	value  V     // Terminal value, meaningful only when level == _MAXVAR
}

// nodeKey identifies an internal node in the unicity table.
type nodeKey struct {
	level int32
	low   int
	high  int
}

// MTBDD is a shared, reduced and ordered multi-terminal binary decision
// diagram over terminal values of type V. All diagrams live in a single node
// table so that structurally equal diagrams are the same node. The zero value
// is not usable, call New.
//
// An MTBDD is not safe for concurrent use.
type MTBDD[V comparable] struct {
	nodes    []mtnode[V]      // List of all the nodes. The background terminal is always at index 0
	unique   map[nodeKey]int  // Unicity table for internal nodes
	terms    map[V]int        // Unicity table for terminal nodes
	freepos  int              // First free slot, 0 when the table is full
	freenum  int              // Number of free slots
	produced int              // Total number of nodes ever produced
	varnum   int32            // Number of variables seen so far
	bgval    V                // Value of the background terminal
	unitval  V                // Value used for the then branch of variable indicators
	roots    map[Root]int     // Diagrams addressable through root handles
	nextroot Root             // Next unused root handle
	dropped  []int            // References owned by the running operation, returned on sweep
	opid     int              // Source of fresh cache tags for operators and renamers
	encode   func(V) (string, error)
	decode   func(string) (V, error)
	log      zerolog.Logger
	error    error
	caches
	configs
	cacheStat
}

// New initializes a MTBDD over values of type V where background is the value
// of paths that have not been given any other value. Options are described in
// the documentation of Nodesize, Maxnodesize, Maxnodeincrease, Cachesize and
// Logger.
func New[V comparable](background V, options ...Option) *MTBDD[V] {
	config := makeconfigs()
	for _, f := range options {
		f(config)
	}
	b := &MTBDD[V]{
		unique:   make(map[nodeKey]int, config.nodesize),
		terms:    make(map[V]int),
		roots:    make(map[Root]int),
		bgval:    background,
		unitval:  background,
		encode:   nil,
		decode:   nil,
		log:      config.logger,
		configs:  *config,
		nextroot: 1,
		// tags 0, 1 and 2 are reserved for the times, overwrite and
		// complement operations
		opid: 3,
	}
	b.nodes = make([]mtnode[V], config.nodesize)
	for k := range b.nodes {
		b.nodes[k] = mtnode[V]{level: 0, low: -1, high: k + 1}
	}
	b.nodes[len(b.nodes)-1].high = 0
	// the background terminal takes slot 0 and is never reclaimed
	b.nodes[0] = mtnode[V]{level: _MAXVAR, low: 0, high: 0, refcou: _MAXREFCOUNT, value: background}
	b.terms[background] = 0
	b.freepos = 1
	b.freenum = len(b.nodes) - 1
	b.produced = 1
	b.cacheinit(config.cachesize)
	return b
}

// ************************************************************

func (b *MTBDD[V]) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARKBIT) != 0
}

func (b *MTBDD[V]) marknode(n int) {
	b.nodes[n].refcou |= _MARKBIT
}

func (b *MTBDD[V]) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARKBIT
}

func (b *MTBDD[V]) level(n int) int32 {
	return b.nodes[n].level
}

func (b *MTBDD[V]) low(n int) int {
	return b.nodes[n].low
}

func (b *MTBDD[V]) high(n int) int {
	return b.nodes[n].high
}

func (b *MTBDD[V]) isterm(n int) bool {
	return b.nodes[n].level == _MAXVAR
}

// ************************************************************

// When a slot is unused in b.nodes, we have low set to -1 and high set to the
// next free position. The value of b.freepos gives the index of the first
// slot of the free list (reclaimed slots are pushed at its front), except
// when freenum is 0, in which case it is 0.

func (b *MTBDD[V]) allocslot() int {
	if b.freepos == 0 {
		if err := b.noderesize(); err != nil {
			return -1
		}
	}
	res := b.freepos
	b.freepos = b.nodes[res].high
	b.freenum--
	b.produced++
	return res
}

// mkterm returns the canonical node for the terminal value v, creating it if
// needed. New terminals start with a zero reference count.
func (b *MTBDD[V]) mkterm(v V) int {
	b.uniqueAccess++
	if res, ok := b.terms[v]; ok {
		b.uniqueHit++
		return res
	}
	b.uniqueMiss++
	res := b.allocslot()
	if res < 0 {
		b.seterror("cannot allocate terminal; %s", errMemory)
		return -1
	}
	b.nodes[res] = mtnode[V]{level: _MAXVAR, low: 0, high: 0, value: v}
	b.terms[v] = res
	return res
}

// makenode returns the canonical node (level, low, high), creating it if
// needed. We apply the reduction rule, so the result can be low itself. When a
// node is created, the reference counts of both children are incremented to
// account for the new parent links.
func (b *MTBDD[V]) makenode(level int32, low, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	b.uniqueAccess++
	key := nodeKey{level, low, high}
	if res, ok := b.unique[key]; ok {
		b.uniqueHit++
		return res
	}
	b.uniqueMiss++
	res := b.allocslot()
	if res < 0 {
		b.seterror("cannot allocate node at level %d; %s", level, errMemory)
		return -1
	}
	b.nodes[res] = mtnode[V]{level: level, low: low, high: high}
	b.unique[key] = res
	b.incref(low)
	b.incref(high)
	return res
}

// noderesize grows the node table, respecting the maxnodesize and
// maxnodeincrease settings. The caches are resized along with the table when a
// cache ratio is set.
func (b *MTBDD[V]) noderesize() error {
	oldsize := len(b.nodes)
	if (b.maxnodesize > 0) && (oldsize >= b.maxnodesize) {
		b.seterror("cannot resize MTBDD, already at max capacity (%d nodes)", b.maxnodesize)
		return errMemory
	}
	nodesize := oldsize
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (b.maxnodesize > 0) && (nodesize > b.maxnodesize) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		b.seterror("unable to grow size of MTBDD (%d nodes)", nodesize)
		return errMemory
	}
	tmp := b.nodes
	b.nodes = make([]mtnode[V], nodesize)
	copy(b.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = mtnode[V]{level: 0, low: -1, high: n + 1}
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += nodesize - oldsize
	b.cacheresize(len(b.nodes))
	b.log.Debug().Int("from", oldsize).Int("to", nodesize).Msg("node table resized")
	return nil
}

// ************************************************************

func (b *MTBDD[V]) markrec(n int) int {
	if n < 0 || b.ismarked(n) || b.nodes[n].low == -1 {
		return 0
	}
	b.marknode(n)
	if b.isterm(n) {
		return 1
	}
	return 1 + b.markrec(b.nodes[n].low) + b.markrec(b.nodes[n].high)
}

func (b *MTBDD[V]) unmarkall() {
	for k, v := range b.nodes {
		if v.low == -1 || !b.ismarked(k) {
			continue
		}
		b.unmarknode(k)
	}
}

// allnodesfrom applies f on the nodes reachable from the nodes in list, in
// ascending id order. Terminals are reported with low and high set to -1.
func (b *MTBDD[V]) allnodesfrom(f func(id int, level int32, low, high int) error, list []int) error {
	for _, v := range list {
		b.markrec(v)
	}
	for k := range b.nodes {
		if b.ismarked(k) {
			b.unmarknode(k)
			low, high := b.nodes[k].low, b.nodes[k].high
			if b.isterm(k) {
				low, high = -1, -1
			}
			if err := f(k, b.nodes[k].level, low, high); err != nil {
				b.unmarkall()
				return err
			}
		}
	}
	return nil
}
