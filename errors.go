// Copyright (c) 2025 The mtbdd authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// Error returns the error status of the MTBDD. We return an empty string if
// there are no errors.
func (b *MTBDD[V]) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if there was an error during a computation.
func (b *MTBDD[V]) Errored() bool {
	return b.error != nil
}

func (b *MTBDD[V]) seterror(format string, a ...interface{}) Node {
	if b.error != nil {
		format = format + "; " + b.Error()
	}
	b.error = fmt.Errorf(format, a...)
	b.log.Debug().Err(b.error).Msg("operation failed")
	return -1
}
