// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The textual format is line oriented. A dump starts with a header and the
// background value, followed by the terminal table, the internal nodes listed
// children first, and the named roots:
//
//	mtbdd 1
//	background "0"
//	terminals 3
//	0 "0"
//	3 "15"
//	5 "9"
//	nodes 2
//	7 1 0 3
//	8 0 7 5
//	roots 1
//	"root" 8
//
// Node ids are only meaningful inside the dump. Values and root names are
// quoted so that they can carry spaces.

// SetCodec installs the encoding functions used to write and read terminal
// values in StoreToString and LoadFromString. Both directions must be set
// before using the serializer.
func (b *MTBDD[V]) SetCodec(encode func(V) (string, error), decode func(string) (V, error)) {
	b.encode = encode
	b.decode = decode
}

// StoreToString serializes the diagrams held by the named roots. Loading the
// result with LoadFromString in a MTBDD with the same background rebuilds
// diagrams with the same value table. The codec must be set, see SetCodec.
func (b *MTBDD[V]) StoreToString(roots map[string]Root) (string, error) {
	if b.encode == nil {
		return "", fmt.Errorf("no codec set, see SetCodec")
	}
	names := make([]string, 0, len(roots))
	list := make([]int, 0, len(roots))
	for name, r := range roots {
		n, ok := b.roots[r]
		if !ok {
			return "", fmt.Errorf("unknown root (%d) under name %q", r, name)
		}
		names = append(names, name)
		list = append(list, n)
	}
	sort.Strings(names)

	var terms, internals []int
	err := b.allnodesfrom(func(id int, level int32, low, high int) error {
		if low == -1 {
			terms = append(terms, id)
			return nil
		}
		internals = append(internals, id)
		return nil
	}, list)
	if err != nil {
		return "", err
	}
	// children first: deeper levels before the levels above them
	sort.Slice(internals, func(i, j int) bool {
		if b.level(internals[i]) != b.level(internals[j]) {
			return b.level(internals[i]) > b.level(internals[j])
		}
		return internals[i] < internals[j]
	})

	var sb strings.Builder
	fmt.Fprintln(&sb, "mtbdd 1")
	bg, err := b.encode(b.bgval)
	if err != nil {
		return "", fmt.Errorf("cannot encode background value: %w", err)
	}
	fmt.Fprintf(&sb, "background %s\n", strconv.Quote(bg))
	fmt.Fprintf(&sb, "terminals %d\n", len(terms))
	for _, id := range terms {
		v, err := b.encode(b.nodes[id].value)
		if err != nil {
			return "", fmt.Errorf("cannot encode terminal %d: %w", id, err)
		}
		fmt.Fprintf(&sb, "%d %s\n", id, strconv.Quote(v))
	}
	fmt.Fprintf(&sb, "nodes %d\n", len(internals))
	for _, id := range internals {
		fmt.Fprintf(&sb, "%d %d %d %d\n", id, b.level(id), b.low(id), b.high(id))
	}
	fmt.Fprintf(&sb, "roots %d\n", len(names))
	for _, name := range names {
		fmt.Fprintf(&sb, "%s %d\n", strconv.Quote(name), b.roots[roots[name]])
	}
	return sb.String(), nil
}

// LoadFromString rebuilds the diagrams of a dump produced by StoreToString
// and returns a fresh root handle for each stored name. The background of the
// dump must match the background of the MTBDD. The codec must be set, see
// SetCodec.
func (b *MTBDD[V]) LoadFromString(s string) (map[string]Root, error) {
	if b.decode == nil {
		return nil, fmt.Errorf("no codec set, see SetCodec")
	}
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := func() (string, error) {
		if !sc.Scan() {
			return "", fmt.Errorf("unexpected end of dump")
		}
		return sc.Text(), nil
	}
	header, err := line()
	if err != nil {
		return nil, err
	}
	if header != "mtbdd 1" {
		return nil, fmt.Errorf("unsupported dump header %q", header)
	}
	l, err := line()
	if err != nil {
		return nil, err
	}
	quoted, ok := strings.CutPrefix(l, "background ")
	if !ok {
		return nil, fmt.Errorf("malformed background line %q", l)
	}
	enc, err := strconv.Unquote(quoted)
	if err != nil {
		return nil, fmt.Errorf("malformed background line %q", l)
	}
	bg, err := b.decode(enc)
	if err != nil {
		return nil, fmt.Errorf("cannot decode background value: %w", err)
	}
	if bg != b.bgval {
		return nil, fmt.Errorf("background of the dump differs from the background of the MTBDD")
	}

	count := func(section string) (int, error) {
		l, err := line()
		if err != nil {
			return 0, err
		}
		var k int
		if _, err := fmt.Sscanf(l, section+" %d", &k); err != nil {
			return 0, fmt.Errorf("malformed %s line %q", section, l)
		}
		return k, nil
	}

	ids := make(map[int]int)
	fail := func(err error) (map[string]Root, error) {
		for _, n := range ids {
			b.drop(n)
		}
		b.sweep()
		return nil, err
	}

	k, err := count("terminals")
	if err != nil {
		return nil, err
	}
	for i := 0; i < k; i++ {
		l, err := line()
		if err != nil {
			return fail(err)
		}
		sep := strings.IndexByte(l, ' ')
		if sep < 0 {
			return fail(fmt.Errorf("malformed terminal line %q", l))
		}
		id, err := strconv.Atoi(l[:sep])
		if err != nil {
			return fail(fmt.Errorf("malformed terminal line %q", l))
		}
		enc, err := strconv.Unquote(l[sep+1:])
		if err != nil {
			return fail(fmt.Errorf("malformed terminal line %q", l))
		}
		v, err := b.decode(enc)
		if err != nil {
			return fail(fmt.Errorf("cannot decode terminal %d: %w", id, err))
		}
		n := b.own(b.mkterm(v))
		if n < 0 {
			return fail(fmt.Errorf("cannot allocate terminal %d; %s", id, b.Error()))
		}
		ids[id] = n
	}

	k, err = count("nodes")
	if err != nil {
		return fail(err)
	}
	for i := 0; i < k; i++ {
		l, err := line()
		if err != nil {
			return fail(err)
		}
		var id, level, low, high int
		if _, err := fmt.Sscanf(l, "%d %d %d %d", &id, &level, &low, &high); err != nil {
			return fail(fmt.Errorf("malformed node line %q", l))
		}
		nlow, oklow := ids[low]
		if !oklow && low == 0 {
			nlow, oklow = 0, true
		}
		nhigh, okhigh := ids[high]
		if !okhigh && high == 0 {
			nhigh, okhigh = 0, true
		}
		if !oklow || !okhigh {
			return fail(fmt.Errorf("node %d refers to an unknown child", id))
		}
		if !b.growvar(int32(level)) {
			return fail(b.error)
		}
		n := b.own(b.makenode(int32(level), nlow, nhigh))
		if n < 0 {
			return fail(fmt.Errorf("cannot allocate node %d; %s", id, b.Error()))
		}
		ids[id] = n
	}

	k, err = count("roots")
	if err != nil {
		return fail(err)
	}
	res := make(map[string]Root, k)
	for i := 0; i < k; i++ {
		l, err := line()
		if err != nil {
			return fail(err)
		}
		sep := strings.LastIndexByte(l, ' ')
		if sep < 0 {
			return fail(fmt.Errorf("malformed root line %q", l))
		}
		name, err := strconv.Unquote(l[:sep])
		if err != nil {
			return fail(fmt.Errorf("malformed root line %q", l))
		}
		id, err := strconv.Atoi(l[sep+1:])
		if err != nil {
			return fail(fmt.Errorf("malformed root line %q", l))
		}
		n, ok := ids[id]
		if !ok && id == 0 {
			n = 0
		} else if !ok {
			return fail(fmt.Errorf("root %q refers to an unknown node", name))
		}
		res[name] = b.CreateRootFrom(b.Retain(n))
	}
	for _, n := range ids {
		b.drop(n)
	}
	b.sweep()
	return res, nil
}
