// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is the Cantor pairing of (a, b), which is a bijection on pairs of
// naturals, reduced modulo len. Distinct pairs can therefore share a slot.
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for a binary apply is #(left, right, op).

func (b *MTBDD[V]) matchapply(left, right, op int) int {
	entry := b.applycache.table[_TRIPLE(left, right, op, len(b.applycache.table))]
	if entry.a == left && entry.b == right && entry.c == op {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *MTBDD[V]) setapply(left, right, op, res int) int {
	if res < 0 {
		return -1
	}
	b.applycache.table[_TRIPLE(left, right, op, len(b.applycache.table))] = cacheData{
		a:   left,
		b:   right,
		c:   op,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for a monadic apply is #(n, op).

func (b *MTBDD[V]) matchmono(n, op int) int {
	entry := b.monocache.table[int(_PAIR(n, op, len(b.monocache.table)))]
	if entry.a == n && entry.c == op {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *MTBDD[V]) setmono(n, op, res int) int {
	if res < 0 {
		return -1
	}
	b.monocache.table[int(_PAIR(n, op, len(b.monocache.table)))] = cacheData{
		a:   n,
		c:   op,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for a ternary apply is #(f, g, h) with the operator id
// checked on the side.

func (b *MTBDD[V]) matchtern(f, g, h, op int) int {
	entry := b.terncache.table[_TRIPLE(f, g, h, len(b.terncache.table))]
	if entry.a == f && entry.b == g && entry.c == h && entry.op == op {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *MTBDD[V]) settern(f, g, h, op, res int) int {
	if res < 0 {
		return -1
	}
	b.terncache.table[_TRIPLE(f, g, h, len(b.terncache.table))] = cacheData4{
		a:   f,
		b:   g,
		c:   h,
		op:  op,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for operation Rename(n) is simply n.

func (b *MTBDD[V]) matchrename(n int) int {
	entry := b.renamecache.table[n%len(b.renamecache.table)]
	if entry.a == n && entry.c == b.renamecache.id {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *MTBDD[V]) setrename(n, res int) int {
	if res < 0 {
		return -1
	}
	b.renamecache.table[n%len(b.renamecache.table)] = cacheData{
		a:   n,
		c:   b.renamecache.id,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for operation Project(n) is simply n.

func (b *MTBDD[V]) matchproject(n int) int {
	entry := b.projectcache.table[n%len(b.projectcache.table)]
	if entry.a == n && entry.c == b.projectcache.id {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *MTBDD[V]) setproject(n, res int) int {
	if res < 0 {
		return -1
	}
	b.projectcache.table[n%len(b.projectcache.table)] = cacheData{
		a:   n,
		c:   b.projectcache.id,
		res: res,
	}
	return res
}
