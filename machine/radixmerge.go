// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// RadixMerge is an MSD radix sort that splits spans by copying between two
// owned buffers.
//
// Spans are processed breadth first from a FIFO queue, so every span of a
// bit level completes before the buffers swap and the next level starts.
// Keys with the bit clear are written forwards from the span's low end and
// keys with the bit set backwards from its high end. Every key is copied
// once per level.
type RadixMerge struct {
	core

	queue spanQueue
	span  Span
	level int // bit of the level being copied
	busy  bool

	read        int
	leftInsert  int
	rightInsert int
}

func newRadixMerge(info Info, name string, data []byte) *RadixMerge {
	m := &RadixMerge{core: newCore(info, name, data)}
	m.impl = m
	m.withAux()
	m.level = topBit
	if len(m.data) > 1 {
		m.queue.push(Span{Low: 0, High: len(m.data) - 1, Tag: topBit})
	}
	return m
}

func (m *RadixMerge) step() {
	if !m.busy {
		sp, ok := m.queue.pop()
		if !ok {
			m.finish()
			return
		}
		m.span = sp
		m.level = sp.Tag
		m.read = sp.Low
		m.leftInsert, m.rightInsert = sp.Low, sp.High
		m.busy = true
	}

	if m.inspect(m.read, m.span.Tag) {
		m.copyOut(m.rightInsert, m.read)
		m.rightInsert--
	} else {
		m.copyOut(m.leftInsert, m.read)
		m.leftInsert++
	}
	m.read++

	if m.read <= m.span.High {
		return
	}
	m.busy = false
	m.splitSpan()

	next, ok := m.queue.peek()
	if !ok || next.Tag != m.level {
		m.swapBuffers()
		if !ok {
			m.finish()
		}
	}
}

// splitSpan queues the non-empty halves of the finished span. Single keys
// are queued too: they still have to move to the other buffer at every level.
func (m *RadixMerge) splitSpan() {
	sp := m.span
	if sp.Tag == 0 {
		return
	}
	zeros := Span{Low: sp.Low, High: m.leftInsert - 1, Tag: sp.Tag - 1}
	ones := Span{Low: m.leftInsert, High: sp.High, Tag: sp.Tag - 1}
	if m.checkSpan("split", zeros, 1) {
		m.queue.push(zeros)
	}
	if m.checkSpan("split", ones, 1) {
		m.queue.push(ones)
	}
}

func (m *RadixMerge) draw(_ int, s surface.Surface) {
	width, height := float64(s.Width()), float64(s.Height())
	half := height / 2
	p := newPlot(s, len(m.data), half, half, 255)

	s.Clear(sortreel.Black)
	s.FillRect(0, 0, width, half, sortreel.Blue)

	s.FillRect(p.x(m.leftInsert), half, 2, half, sortreel.Red)
	s.FillRect(p.x(m.rightInsert), half, 2, half, sortreel.Fuchsia)
	s.FillRect(p.x(m.read), 0, 2, half, sortreel.DarkCyan)
	p.queued(s, m.queue.pending(), half-pointSize, sortreel.Orange, sortreel.Gold)

	p.points(s, m.data, sortreel.White)
	below := plot{xs: p.xs, ys: p.ys, base: height}
	below.points(s, m.aux, sortreel.White)

	m.caption(s,
		m.workLine(),
		m.sprintf("%d iterations, radix bit %d, %d spans queued.", m.counters.Steps, m.level, m.queue.len()),
		m.costLine())
}
