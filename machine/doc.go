// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package machine implements sorting and rearrangement algorithms as
// frame-stepped state machines.
//
// Every algorithm is rewritten from its natural recursive or iterative form
// into an explicit state struct: a phase tag, a set of cursors and, where
// the algorithm recurses, a stack or queue of pending spans. A single call to
// Advance draws the current state onto a surface and then performs exactly
// one unit of work: one compare, copy, swap or bit inspection, or a small
// bounded burst for trivial cases. No native call stack survives between
// calls, so a driver can pull frames at its own pace.
//
// # Usage
//
//	m, err := machine.New("quick", "random", data)
//	if err != nil {
//	    return err
//	}
//	s := surface.NewImageSurface(640, 448)
//	for frame := 0; ; frame++ {
//	    more, err := m.Advance(frame, s)
//	    if err != nil || !more {
//	        break
//	    }
//	    // encode s.Image()
//	}
//
// # Instrumentation
//
// All data access goes through a small set of primitives that maintain the
// Counters. The counts are an exact audit of the work performed and the
// sequence of primitive operations is independent of how often Draw is
// called between steps.
//
// # Errors
//
// A broken internal invariant (an index out of range, a malformed span, a
// double-filled heap slot) aborts the machine with an *InvariantError. The
// machine is terminal afterwards and Advance keeps returning that error.
package machine
