// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// ************************************************************
// cache is used for caching apply/project/rename results

type cache struct {
	cacheratio int // value used to resize the caches as a factor of the number of nodes
	table      []cacheData
}

// cacheData is a unit of information stored in the operation caches. The res
// field holds the result node for the operands a, b and the operation tag c.
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

// cacheData4 is the variant used for ternary operations, with one extra
// operand slot.
type cacheData4 struct {
	res int
	a   int
	b   int
	c   int
	op  int
}

// cacheStat stores status information about cache and unicity table usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node tables
	uniqueHit    int // entries actually found in the unique node tables
	uniqueMiss   int // entries not found in the unique node tables
	opHit        int // entries found in the operation caches
	opMiss       int // entries not found in the operation caches
}

// ************************************************************

// Different kind of caches used in the MTBDD

type applycache struct {
	cache // Cache for binary apply results, tagged by operator id
}

type monocache struct {
	cache // Cache for monadic apply results, tagged by operator id
}

type terncache struct {
	cacheratio int
	table      []cacheData4 // Cache for ternary apply results
}

type renamecache struct {
	cache     // Cache for rename results
	id    int // Cache tag of the running renamer
}

type projectcache struct {
	cache     // Cache for project results
	id    int // Cache tag of the running projection
}

type caches struct {
	applycache
	monocache
	terncache
	renamecache
	projectcache
}

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int) {
	size = primeGTE(size)
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

func (bc *cache) cacheresize(size int) {
	if bc.cacheratio > 0 {
		bc.cacheinit(size / bc.cacheratio)
		return
	}
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

func (bc *terncache) cacheinit(size int) {
	size = primeGTE(size)
	bc.table = make([]cacheData4, size)
	bc.cachereset()
}

func (bc *terncache) cacheresize(size int) {
	if bc.cacheratio > 0 {
		bc.cacheinit(size / bc.cacheratio)
		return
	}
	bc.cachereset()
}

func (bc *terncache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and shutdown

func (b *MTBDD[V]) cacheinit(cachesize int) {
	if cachesize <= 0 {
		cachesize = len(b.nodes)/5 + 1
	}
	cachesize = primeGTE(cachesize)
	b.applycache.cacheinit(cachesize)
	b.monocache.cacheinit(cachesize)
	b.terncache.cacheinit(cachesize)
	b.renamecache.cacheinit(cachesize)
	b.projectcache.cacheinit(cachesize)
}

func (b *MTBDD[V]) cachereset() {
	b.applycache.cachereset()
	b.monocache.cachereset()
	b.terncache.cachereset()
	b.renamecache.cachereset()
	b.projectcache.cachereset()
}

func (b *MTBDD[V]) cacheresize(nodesize int) {
	b.applycache.cacheresize(nodesize)
	b.monocache.cacheresize(nodesize)
	b.terncache.cacheresize(nodesize)
	b.renamecache.cacheresize(nodesize)
	b.projectcache.cacheresize(nodesize)
}

// *************************************************************************

// SetCacheratio sets the cache ratio for the operation caches.
//
// The ratio between the number of slots in the node table and the number of
// entries in the operation caches is called the cache ratio. So a cache ratio
// of say, four, allocates one cache entry for each four node slots. This value
// can be set to any positive value. When this is done the caches are resized
// instantly to fit the new ratio. The default is a fixed cache size determined
// at initialization time.
func (b *MTBDD[V]) SetCacheratio(r int) error {
	if r <= 0 {
		b.seterror("negative ratio (%d) in call to SetCacheratio", r)
		return b.error
	}
	b.applycache.cacheratio = r
	b.monocache.cacheratio = r
	b.terncache.cacheratio = r
	b.renamecache.cacheratio = r
	b.projectcache.cacheratio = r
	b.cacheresize(len(b.nodes))
	return nil
}

// ************************************************************

// Prints information about the cache performance. The information contains the
// number of accesses to the unique node tables, the number of times a node was
// (not) found there. Hit and miss count is also given for the operation
// caches.

func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
