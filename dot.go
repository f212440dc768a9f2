// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// PrintDot prints a graph-like description of the diagrams held by the named
// roots using the DOT format.
func (b *MTBDD[V]) PrintDot(roots map[string]Root) {
	b.DumpDot(os.Stdout, roots)
}

// FDumpDot writes the DOT description of the diagrams held by the named roots
// into a file, or to the standard output if filename is "-".
func (b *MTBDD[V]) FDumpDot(filename string, roots map[string]Root) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return b.DumpDot(out, roots)
}

// DumpDot writes a GraphViz DOT description of the diagrams held by the named
// roots. Terminal nodes are drawn as boxes carrying their value, internal
// nodes carry their variable index, and each root name points at its diagram.
// Else branches are dashed and then branches are filled. We do not draw arcs
// that go to the background terminal.
func (b *MTBDD[V]) DumpDot(w io.Writer, roots map[string]Root) error {
	names := make([]string, 0, len(roots))
	list := make([]int, 0, len(roots))
	for name, r := range roots {
		n, ok := b.roots[r]
		if !ok {
			b.seterror("unknown root (%d) under name %q", r, name)
			return b.error
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
		return err
	}
	sort.Ints(terms)
	sort.Ints(internals)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	for _, v := range terms {
		if v == 0 {
			continue
		}
		fmt.Fprintf(bw, "%d [shape=box, label=\"%v\", style=filled, height=0.3, width=0.3];\n", v, b.nodes[v].value)
	}
	for _, v := range internals {
		fmt.Fprintf(bw, "%d %s\n", v, dotlabel(v, b.level(v)))
		if b.low(v) != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=dashed];\n", v, b.low(v))
		}
		if b.high(v) != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v, b.high(v))
		}
	}
	for _, name := range names {
		n := b.roots[roots[name]]
		fmt.Fprintf(bw, "%q [shape=none];\n", name)
		if n != 0 {
			fmt.Fprintf(bw, "%q -> %d;\n", name, n)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, b int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
