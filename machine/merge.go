// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// Merge is a bottom-up merge sort between two owned buffers.
//
// For stride 1, 2, 4, ... it merges each window [left, left+2*stride) of the
// source into the destination, one compare and copy per step, then swaps
// the buffer roles. Equal keys are taken from the left run.
type Merge struct {
	core

	stride int
	left   int // window start
	mid    int // first index of the right run
	right  int // window end, exclusive

	l, r   int // read cursors
	insert int // write cursor in the destination
}

func newMerge(info Info, name string, data []byte) *Merge {
	m := &Merge{core: newCore(info, name, data)}
	m.impl = m
	m.withAux()
	m.stride = 1
	m.window(0)
	return m
}

// window positions the cursors at the window starting at left.
func (m *Merge) window(left int) {
	n := len(m.data)
	m.left = left
	m.mid = min(left+m.stride, n)
	m.right = min(left+2*m.stride, n)
	m.l, m.r, m.insert = m.left, m.mid, m.left
}

func (m *Merge) step() {
	if m.stride >= len(m.data) {
		m.finish()
		return
	}

	switch {
	case m.l < m.mid && m.r < m.right:
		if m.compare(m.r, m.l) {
			m.copyOut(m.insert, m.r)
			m.r++
		} else {
			m.copyOut(m.insert, m.l)
			m.l++
		}
	case m.l < m.mid:
		m.copyOut(m.insert, m.l)
		m.l++
	default:
		m.copyOut(m.insert, m.r)
		m.r++
	}
	m.insert++

	if m.insert < m.right {
		return
	}
	if m.right < len(m.data) {
		m.window(m.right)
		return
	}

	// stride pass complete
	m.swapBuffers()
	m.stride *= 2
	if m.stride >= len(m.data) {
		m.finish()
		return
	}
	m.window(0)
}

func (m *Merge) draw(_ int, s surface.Surface) {
	width, height := float64(s.Width()), float64(s.Height())
	half := height / 2
	p := newPlot(s, len(m.data), half, half, 255)

	// the source buffer is drawn in the top half while sorting
	srcTop, dstTop := 0.0, half
	s.Clear(sortreel.Black)
	s.FillRect(0, srcTop, width, half, sortreel.Blue)

	s.FillRect(p.x(m.l), srcTop, 2, half, sortreel.Red)
	s.FillRect(p.x(m.r), srcTop, 2, half, sortreel.Fuchsia)
	s.FillRect(p.x(m.insert), dstTop, 2, half, sortreel.DarkCyan)

	p.points(s, m.data, sortreel.White)
	below := plot{xs: p.xs, ys: p.ys, base: height}
	below.points(s, m.aux, sortreel.White)

	m.caption(s,
		m.workLine(),
		m.sprintf("%d iterations, window %d wide, %d buffer swaps.", m.counters.Steps, 2*m.stride, m.counters.BufferSwaps),
		m.costLine())
}
