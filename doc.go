// Copyright (c) 2025 The mtbdd authors
//
// MIT License

/*
Package mtbdd implements Multi-Terminal Binary Decision Diagrams (MTBDD), a
data structure used to efficiently represent functions from Boolean vectors of
a fixed size to an arbitrary set of values or, equivalently, sparse mappings
with a default value.

# Basics

An MTBDD carries terminal values of a comparable type V and a distinguished
background value, fixed when the diagram manager is initialized (using the
function New). Paths that have never been assigned a value read as the
background. Variables are represented by (integer) indices starting from 0,
called levels, and the variable count grows on demand when an operation
mentions a new index.

Most operations return a Node; that is the address of a "vertex" in the shared
node table that includes a variable level and the address of the low and high
branch for this node. Diagrams are reduced and shared: two structurally equal
diagrams always have the same address, so equality of functions is equality of
nodes. The address 0 is the background terminal.

# Roots and memory management

Nodes returned by operations hold one reference owned by the caller, released
with Release. Users that prefer to address whole diagrams rather than nodes
can use Root handles (see CreateRoot and SetValue), which keep their diagram
alive until EraseRoot. Nodes that are no longer referenced, directly or
through a living diagram, are reclaimed eagerly and their slots recycled.

# Operations

Values combine through user-defined operators (see NewBinaryOp and Apply)
rather than a fixed arithmetic. The library also provides structural
operations: renaming of variables (Rename, Reindex), projection that removes
variables by merging their branches (Project), and a textual serialization of
named diagrams (StoreToString, LoadFromString).
*/
package mtbdd
