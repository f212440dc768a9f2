// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import "github.com/rs/zerolog"

// configs is used to store the values of different parameters of the MTBDD
type configs struct {
	nodesize        int // initial number of slots in the node table
	cachesize       int // initial cache size
	maxnodesize     int // maximum total number of nodes (0 if no limit)
	maxnodeincrease int // maximum number of nodes that can be added to the table at each resize (0 if no limit)
	logger          zerolog.Logger
}

// Option is a configuration function that can be passed to New.
type Option func(*configs)

func makeconfigs() *configs {
	return &configs{
		nodesize:        1 << 10,
		maxnodeincrease: _DEFAULTMAXNODEINC,
		logger:          zerolog.Nop(),
	}
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the table can
// increase during computation. The default is 1024 slots.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size > 2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the table. An operation trying to
// raise the number of nodes above this limit will generate an error and return
// a negative Node. The default value (0) means that there is no limit. In
// which case allocation can panic if we exhaust all the available memory.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. Below this
// limit we typically double the size of the node list each time we need to
// resize it. The default value is about a million nodes. Set the value to zero
// to avoid imposing a limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New
// it sets the initial number of entries in the operation caches. The default
// is a fifth of the node table size. See also SetCacheratio.
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the structured logger used to trace resizes and reclamation sweeps. The
// default logger discards every event.
func Logger(l zerolog.Logger) Option {
	return func(c *configs) {
		c.logger = l
	}
}
