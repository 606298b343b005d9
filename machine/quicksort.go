// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

type quickPhase uint8

const (
	quickHeapify quickPhase = iota
	quickPop
	quickScanLeft
	quickScanRight
	quickExchange
)

// smallSpan is the largest span sorted by a single bubble burst.
const smallSpan = 4

// Quick is quicksort over an explicit span stack with a Hoare partition.
//
// Each popped span is either bubble sorted in one step (at most smallSpan
// keys) or gets a median-of-three pivot and is partitioned one compare or
// swap per step. The left scan stops on keys not less than the pivot and
// the right scan on keys not greater, so equal keys always stop a cursor.
type Quick struct {
	core

	prephase bool
	heapify  siftUp

	phase quickPhase
	stack spanStack
	span  Span

	left, right int
	pivotAt     int
	pivot       byte
}

func newQuick(info Info, name string, data []byte, prephase bool) *Quick {
	q := &Quick{core: newCore(info, name, data), prephase: prephase}
	q.impl = q
	q.phase = quickPop
	if len(q.data) > 1 {
		if prephase {
			q.phase = quickHeapify
			q.heapify.reset(0, len(q.data))
		}
		q.stack.push(Span{Low: 0, High: len(q.data) - 1})
	}
	return q
}

func (q *Quick) step() {
	switch q.phase {
	case quickHeapify:
		if q.heapify.step(&q.core) {
			q.phase = quickPop
		}
		q.left = q.heapify.off + q.heapify.hole
		q.right = q.heapify.off + q.heapify.head

	case quickPop:
		q.popSpan()

	case quickScanLeft:
		if q.less(q.left, q.pivot) {
			q.left++
		} else {
			q.phase = quickScanRight
		}

	case quickScanRight:
		if q.more(q.right, q.pivot) {
			q.right--
		} else {
			q.phase = quickExchange
		}

	case quickExchange:
		if q.left >= q.right {
			q.split(q.right)
			return
		}
		q.swap(q.left, q.right)
		q.left++
		q.right--
		q.phase = quickScanLeft
	}
}

// popSpan takes the next span off the stack and either finishes it with a
// bubble burst or selects its pivot.
func (q *Quick) popSpan() {
	sp, ok := q.stack.pop()
	if !ok {
		q.finish()
		return
	}
	q.span = sp
	q.left, q.right = sp.Low, sp.High

	if sp.Count() < 2 {
		return
	}
	if sp.Count() <= smallSpan {
		q.bubble(sp)
		return
	}

	// order the three samples so that the pivot is their median
	lo, hi := sp.Low, sp.High
	q.pivotAt = q.pivotIndex(sp)
	if q.compare(hi, lo) {
		q.swap(lo, hi)
	}
	if q.compare(q.pivotAt, lo) {
		q.swap(q.pivotAt, lo)
	}
	if q.compare(hi, q.pivotAt) {
		q.swap(q.pivotAt, hi)
	}
	q.pivot = q.data[q.pivotAt]
	q.phase = quickScanLeft
}

// pivotIndex returns the middle sample. The pre-phase variant samples right
// of centre, where the heapified buffer keeps its larger keys.
func (q *Quick) pivotIndex(sp Span) int {
	if q.prephase {
		return sp.High - ((sp.High-sp.Low)/2 - 1)
	}
	return sp.Low + (sp.High-sp.Low)/2
}

// bubble sorts a small span in one burst.
func (q *Quick) bubble(sp Span) {
	for top := sp.High; top > sp.Low; top-- {
		for b := sp.Low; b < top; b++ {
			if q.compare(b+1, b) {
				q.swap(b, b+1)
			}
		}
	}
}

// split pushes the two halves of the partitioned span, right half first so
// the left half is processed next.
func (q *Quick) split(at int) {
	sp := q.span
	if at < sp.Low || at >= sp.High {
		q.fail("partition", "split %d does not shrink span [%d, %d]", at, sp.Low, sp.High)
	}
	right := Span{Low: at + 1, High: sp.High}
	left := Span{Low: sp.Low, High: at}
	if q.checkSpan("partition", right, 2) {
		q.stack.push(right)
	}
	if q.checkSpan("partition", left, 2) {
		q.stack.push(left)
	}
	q.phase = quickPop
}

func (q *Quick) draw(_ int, s surface.Surface) {
	width, height := float64(s.Width()), float64(s.Height())
	mid := height * 0.75
	p := newPlot(s, len(q.data), mid, mid, 255)

	s.Clear(sortreel.Black)
	s.FillRect(0, 0, width, mid, sortreel.Blue)

	if q.phase != quickHeapify {
		pp := p.y(q.pivot)
		s.FillRect(p.x(q.span.Low), mid+1, float64(q.span.High-q.span.Low)*p.xs, 10, sortreel.Aqua)
		s.FillRect(p.x(q.pivotAt), pp, markerWidth, mid-pp, sortreel.DarkCyan)
	}
	s.FillRect(p.x(q.left), mid+1, markerWidth, 10, sortreel.Fuchsia)
	s.FillRect(p.x(q.right), mid+1, markerWidth, 10, sortreel.Red)
	p.spans(s, q.stack.items, mid+15, sortreel.Orange)
	p.points(s, q.data, sortreel.LightBlue)

	q.caption(s,
		q.workLine(),
		q.sprintf("%d iterations, stack depth %d, span %d elements.", q.counters.Steps, q.stack.len(), q.span.Count()),
		q.costLine())
}
