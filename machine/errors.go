// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned by New for a key not in the catalog.
var ErrUnknownAlgorithm = errors.New("machine: unknown algorithm")

// InvariantError reports a broken internal invariant of a machine.
// It is fatal: the machine stops and keeps reporting the error.
type InvariantError struct {
	Algorithm string // catalog key of the failing machine
	Op        string // primitive or phase that detected the violation
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("machine: %s: %s: %s", e.Algorithm, e.Op, e.Detail)
}

// fail aborts the current step. Advance recovers the panic and turns it
// into the machine's terminal error.
func (c *core) fail(op, format string, args ...any) {
	panic(&InvariantError{
		Algorithm: c.info.Key,
		Op:        op,
		Detail:    fmt.Sprintf(format, args...),
	})
}
