// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"errors"
)

// _MAXVAR is the maximal number of variable indices in the MTBDD. We use only
// the first 21 bits for encoding variable indices. Terminal nodes sit at index
// _MAXVAR, above every variable. We use one of the remaining bits for marking
// during traversals. Hence we make sure to always use int32 to avoid problem
// when we change architecture.
const _MAXVAR int32 = 0x1FFFFF

// _MARKBIT is the bit used to mark nodes during a traversal. It is set on the
// refcou field, above the 10 bits used for actual reference counts.
const _MARKBIT int32 = 0x200000

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like the background terminal) in the node list. It is
// equal to 1023 (10 bits). A node whose counter reaches this value is never
// reclaimed.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("unable to free memory or resize MTBDD")
