// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// siftUp turns the window data[off:end] into a min-heap one sift step at a
// time. The window root is off and its only child is off+1; below that the
// parent of relative index k is k>>1.
type siftUp struct {
	off, end int
	head     int // relative index being added to the heap
	hole     int // relative position of the element being sifted
	toAdd    byte
	active   bool
}

func (h *siftUp) reset(off, end int) {
	h.off, h.end = off, end
	h.head, h.hole = 1, 0
	h.active = false
}

func (h *siftUp) done() bool { return h.off+h.head >= h.end }

// step moves the pending element up one level, or drops it into place.
// It reports whether the whole window is heap ordered.
func (h *siftUp) step(c *core) bool {
	if h.done() {
		return true
	}
	if !h.active {
		h.toAdd = c.load(h.off + h.head)
		h.hole = h.head
		h.active = true
	}
	if h.hole > 0 && c.more(h.off+(h.hole>>1), h.toAdd) {
		c.copy(h.off+h.hole, h.off+(h.hole>>1))
		h.hole >>= 1
		return false
	}
	c.store(h.off+h.hole, h.toAdd)
	h.active = false
	h.head++
	return h.done()
}

type heapPhase uint8

const (
	heapBuild heapPhase = iota
	heapExtract
	heapReverse
)

// siftState tracks a bottom-up extraction between steps.
type siftState uint8

const (
	siftIdle siftState = iota
	siftDescend
	siftClimb
)

// Heap is an in-place heap sort. The heapify pass leaves the smallest key
// at index 0 and a min-heap rooted at index 1; extraction moves each
// minimum behind the shrinking heap, which leaves 1..n-1 descending, and a
// final swap pass reverses it.
type Heap struct {
	core

	phase heapPhase
	build siftUp

	end  int // last index of the extraction heap
	hole int
	min  byte
	last byte
	sift siftState

	// cursors for drawing
	back, mid, front int
}

func newHeap(info Info, name string, data []byte) *Heap {
	h := &Heap{core: newCore(info, name, data)}
	h.impl = h
	h.build.reset(0, len(h.data))
	h.end = len(h.data) - 1
	return h
}

func (h *Heap) step() {
	if len(h.data) < 2 {
		h.finish()
		return
	}

	switch h.phase {
	case heapBuild:
		done := h.build.step(&h.core)
		h.front = h.build.off + h.build.head
		h.mid = h.build.hole
		h.back = h.build.hole >> 1
		if done {
			h.phase = heapExtract
		}

	case heapExtract:
		h.extractStep()

	case heapReverse:
		if h.back >= h.front {
			h.finish()
			return
		}
		h.swap(h.back, h.front)
		h.back++
		h.front--
		if h.back >= h.front {
			h.finish()
		}
	}
}

// extractStep removes the heap root with a bottom-up sift. The root hole
// walks down the smaller-child path to a leaf one level per step, then the
// displaced last element climbs back up from that leaf.
func (h *Heap) extractStep() {
	switch h.sift {
	case siftIdle:
		if h.end <= 1 {
			h.phase = heapReverse
			h.back, h.front, h.mid = 1, len(h.data)-1, 0
			return
		}
		h.min = h.load(1)
		h.last = h.load(h.end)
		h.end--
		h.hole = 1
		h.sift = siftDescend
		fallthrough

	case siftDescend:
		child := h.hole * 2
		if child > h.end {
			h.sift = siftClimb
			return
		}
		// ties go to the right child
		if child < h.end && !h.compare(child, child+1) {
			child++
		}
		h.back, h.front, h.mid = h.end, h.hole, child
		h.copy(h.hole, child)
		h.hole = child

	case siftClimb:
		parent := h.hole >> 1
		h.back, h.front, h.mid = h.end, parent, h.hole
		if h.hole > 1 && h.more(parent, h.last) {
			h.copy(h.hole, parent)
			h.hole = parent
			return
		}
		h.store(h.hole, h.last)
		h.store(h.end+1, h.min)
		h.sift = siftIdle
	}
}

func (h *Heap) draw(_ int, s surface.Surface) {
	drawHeapView(&h.core, s, h.back, h.mid, h.front,
		h.sprintf("%d iterations, heap size %d", h.counters.Steps, h.heapSize()))
}

func (h *Heap) heapSize() int {
	if h.phase == heapBuild {
		return h.build.head
	}
	if h.phase == heapReverse {
		return 0
	}
	return h.end
}

// drawHeapView renders the full height scatter with three column markers.
func drawHeapView(c *core, s surface.Surface, back, mid, front int, detail string) {
	height := float64(s.Height())
	p := newPlot(s, len(c.data), height, height, 255)

	s.Clear(sortreel.Black)
	p.column(s, back, 0, height, sortreel.Green)
	p.column(s, mid, 0, height, sortreel.DarkCyan)
	p.column(s, front, 0, height, sortreel.Brown)
	p.points(s, c.data, sortreel.LightBlue)

	c.caption(s, c.workLine(), detail, c.costLine())
}

// RepeatHeap heapifies the windows [0, n), [2, n), [4, n) and so on. Each
// heapify leaves the two smallest keys of its window at the window front,
// so the whole buffer is sorted after n/2 rebuilds.
type RepeatHeap struct {
	core

	build siftUp
}

func newRepeatHeap(info Info, name string, data []byte) *RepeatHeap {
	h := &RepeatHeap{core: newCore(info, name, data)}
	h.impl = h
	h.build.reset(0, len(h.data))
	return h
}

func (h *RepeatHeap) step() {
	if len(h.data)-h.build.off < 2 {
		h.finish()
		return
	}
	if h.build.step(&h.core) {
		h.build.reset(h.build.off+2, len(h.data))
		if len(h.data)-h.build.off < 2 {
			h.finish()
		}
	}
}

func (h *RepeatHeap) draw(_ int, s surface.Surface) {
	b := &h.build
	drawHeapView(&h.core, s, b.off, b.off+b.hole, b.off+b.head,
		h.sprintf("%d iterations, window %d elements", h.counters.Steps, len(h.data)-b.off))
}
