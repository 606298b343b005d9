// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// topBit is the most significant bit of a key.
const topBit = 7

type radixPhase uint8

const (
	radixPop radixPhase = iota
	radixScanLeft
	radixScanRight
	radixExchange
)

// Radix is an in-place MSD radix sort.
//
// Each span {low, high, bit} is partitioned by two converging cursors: the
// left one skips keys with the bit clear, the right one skips keys with the
// bit set and a stuck pair is swapped. Every key of a span is inspected at
// most once, so a full sort does at most 8n inspections.
type Radix struct {
	core

	phase radixPhase
	stack spanStack
	span  Span

	left, right int

	// onSplit observes every completed partition.
	onSplit func(low, split, high, bit int)
}

func newRadix(info Info, name string, data []byte) *Radix {
	r := &Radix{core: newCore(info, name, data)}
	r.impl = r
	if len(r.data) > 1 {
		r.stack.push(Span{Low: 0, High: len(r.data) - 1, Tag: topBit})
	}
	return r
}

func (r *Radix) step() {
	switch r.phase {
	case radixPop:
		sp, ok := r.stack.pop()
		if !ok {
			r.finish()
			return
		}
		r.span = sp
		r.left, r.right = sp.Low, sp.High
		r.scanLeft()

	case radixScanLeft:
		r.scanLeft()

	case radixScanRight:
		// the key under the left cursor is known to have the bit set
		if r.right == r.left {
			r.right--
			r.split()
			return
		}
		if r.inspect(r.right, r.span.Tag) {
			r.right--
		} else {
			r.phase = radixExchange
		}

	case radixExchange:
		r.swap(r.left, r.right)
		r.left++
		r.right--
		if r.left > r.right {
			r.split()
			return
		}
		r.phase = radixScanLeft
	}
}

func (r *Radix) scanLeft() {
	if r.left > r.right {
		r.split()
		return
	}
	if r.inspect(r.left, r.span.Tag) {
		r.phase = radixScanRight
		return
	}
	r.left++
	if r.left > r.right {
		r.split()
		return
	}
	r.phase = radixScanLeft
}

// split finishes the current span: keys in [low, left) have the bit clear
// and keys in [left, high] have it set.
func (r *Radix) split() {
	sp := r.span
	at := r.left
	if r.onSplit != nil {
		r.onSplit(sp.Low, at, sp.High, sp.Tag)
	}
	if sp.Tag > 0 {
		ones := Span{Low: at, High: sp.High, Tag: sp.Tag - 1}
		zeros := Span{Low: sp.Low, High: at - 1, Tag: sp.Tag - 1}
		if r.checkSpan("split", ones, 2) {
			r.stack.push(ones)
		}
		if r.checkSpan("split", zeros, 2) {
			r.stack.push(zeros)
		}
	}
	r.phase = radixPop
}

func (r *Radix) draw(_ int, s surface.Surface) {
	width, height := float64(s.Width()), float64(s.Height())
	mid := height * 0.75
	p := newPlot(s, len(r.data), mid, mid, 255)

	s.Clear(sortreel.Black)
	s.FillRect(0, 0, width, mid, sortreel.Blue)
	s.FillRect(p.x(r.span.Low), mid+1, float64(r.span.High-r.span.Low)*p.xs, 10, sortreel.Aqua)
	s.FillRect(p.x(r.left), mid+1, markerWidth, 10, sortreel.Fuchsia)
	s.FillRect(p.x(r.right), mid+1, markerWidth, 10, sortreel.Red)
	p.spans(s, r.stack.items, mid+15, sortreel.Orange)
	p.points(s, r.data, sortreel.LightBlue)

	r.caption(s,
		r.workLine(),
		r.sprintf("%d iterations, stack depth %d, span %d elements, bit %d.",
			r.counters.Steps, r.stack.len(), r.span.Count(), r.span.Tag),
		r.costLine())
}
