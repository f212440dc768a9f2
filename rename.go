// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// Renamer is an association list used to substitute variables in a diagram.
// Renamers are tied to the MTBDD that created them, since they carry a tag
// used for caching intermediate results.
type Renamer struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the index of old variables to the index of new variables
	last  int32   // last index affected by the Renamer, to speed up computations
}

func (r *Renamer) String() string {
	res := fmt.Sprintf("renamer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k != int(v) {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

func (r *Renamer) replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

// NewRenamer returns a Renamer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same
// length, if we find the same index twice in oldvars or in newvars, or if a
// variable of newvars also occurs in oldvars. Renaming to an index never seen before grows
// the variable count of the MTBDD.
func (b *MTBDD[V]) NewRenamer(oldvars []int, newvars []int) (*Renamer, error) {
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	res := &Renamer{id: b.newopid()}
	for _, v := range append(append([]int{}, oldvars...), newvars...) {
		if !b.growvar(int32(v)) {
			return nil, fmt.Errorf("invalid variable index (%d)", v)
		}
	}
	varnum := b.varnum
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
		if int32(v) > res.last {
			res.last = int32(v)
		}
	}
	target := make([]bool, varnum)
	for _, v := range newvars {
		if int(res.image[v]) != v {
			return nil, fmt.Errorf("variable in newvars (%d) also occur in oldvars", v)
		}
		if target[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in newvars", v)
		}
		target[v] = true
	}
	return res, nil
}

// ************************************************************

// Rename computes the diagram of n after replacing old variables with new
// ones, following the Renamer r. The result holds one reference owned by the
// caller.
func (b *MTBDD[V]) Rename(n Node, r *Renamer) Node {
	if !b.checknode(n) {
		return b.seterror("wrong operand in call to Rename (%d)", n)
	}
	b.renamecache.id = r.id
	res := b.renamerec(n, r)
	b.sweep()
	if res < 0 {
		return b.seterror("rename failed")
	}
	return res
}

// Reindex moves variable oldvar to index newvar in the diagram rooted at n. It
// is a no-op when the two indices are equal or when oldvar does not occur in
// n. The result holds one reference owned by the caller.
func (b *MTBDD[V]) Reindex(n Node, oldvar, newvar int) Node {
	if !b.checknode(n) {
		return b.seterror("wrong operand in call to Reindex (%d)", n)
	}
	if oldvar == newvar {
		return b.own(n)
	}
	r, err := b.NewRenamer([]int{oldvar}, []int{newvar})
	if err != nil {
		b.seterror("wrong index in call to Reindex; %s", err)
		return -1
	}
	return b.Rename(n, r)
}

func (b *MTBDD[V]) renamerec(n int, r *Renamer) int {
	if n < 0 {
		return -1
	}
	if b.isterm(n) || b.level(n) > r.last {
		return b.own(n)
	}
	if res := b.matchrename(n); res >= 0 {
		return b.own(res)
	}
	image, _ := r.replace(b.level(n))
	low := b.renamerec(b.low(n), r)
	high := b.renamerec(b.high(n), r)
	res := b.correctify(image, low, high)
	b.drop(low)
	b.drop(high)
	return b.setrename(n, res)
}

// correctify inserts a node for the renamed variable back at its proper place
// in the ordering. The invariant is that level does not occur in low or high.
func (b *MTBDD[V]) correctify(level int32, low, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	if (level < b.level(low)) && (level < b.level(high)) {
		return b.own(b.makenode(level, low, high))
	}

	if (level == b.level(low)) || (level == b.level(high)) {
		b.seterror("error in rename, level (%d) == low (%d:%d) or high (%d:%d)", level, low, b.level(low), high, b.level(high))
		return -1
	}

	if b.level(low) == b.level(high) {
		left := b.correctify(level, b.low(low), b.low(high))
		right := b.correctify(level, b.high(low), b.high(high))
		res := b.own(b.makenode(b.level(low), left, right))
		b.drop(left)
		b.drop(right)
		return res
	}

	if b.level(low) < b.level(high) {
		left := b.correctify(level, b.low(low), high)
		right := b.correctify(level, b.high(low), high)
		res := b.own(b.makenode(b.level(low), left, right))
		b.drop(left)
		b.drop(right)
		return res
	}

	left := b.correctify(level, low, b.low(high))
	right := b.correctify(level, low, b.high(high))
	res := b.own(b.makenode(b.level(high), left, right))
	b.drop(left)
	b.drop(right)
	return res
}
