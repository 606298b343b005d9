// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import "fmt"

// Counters is the instrumentation of a machine. Compares, Copies, Swaps and
// Inspections only change inside the data primitives, BufferSwaps only when
// the two buffers of an out-of-place algorithm exchange roles.
type Counters struct {
	Compares    int
	Copies      int
	Swaps       int
	Inspections int
	BufferSwaps int

	// Steps is the number of units of work executed by Advance.
	Steps int
}

// String returns a compact single-line summary.
func (c Counters) String() string {
	return fmt.Sprintf("compares=%d copies=%d swaps=%d inspections=%d buffer_swaps=%d steps=%d",
		c.Compares, c.Copies, c.Swaps, c.Inspections, c.BufferSwaps, c.Steps)
}
