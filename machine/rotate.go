// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

type rotatePhase uint8

const (
	rotateOverlap  rotatePhase = iota // double reversal, five cell moves
	rotateSingle                      // one overlap left, four cell moves
	rotateReversal                    // plain reversal, three cell moves
)

// Rotate shifts the buffer left by k places with the trinity rotation: the
// three reversals of [0, k), [k, n) and [0, n) are interleaved over four
// cursors so that overlapping reversals collapse into direct cycles.
type Rotate struct {
	core

	k     int
	phase rotatePhase
	loop  int // iterations left in the current phase

	// a and c move up, b and d move down; b and d point one past their cell
	a, b, c, d int
}

func newRotate(info Info, name string, data []byte, k int) *Rotate {
	r := &Rotate{core: newCore(info, name, data)}
	r.impl = r
	n := len(r.data)
	if n > 0 {
		r.k = ((k % n) + n) % n
	}

	left, right := r.k, n-r.k
	r.a, r.b, r.c, r.d = 0, left, left, n
	r.loop = min(left, right) / 2
	return r
}

// leftLonger reports whether the block moving right is the longer one.
func (r *Rotate) leftLonger() bool {
	return r.k > len(r.data)-r.k
}

func (r *Rotate) step() {
	if len(r.data) < 2 || r.k == 0 {
		r.finish()
		return
	}

	for r.loop == 0 {
		switch r.phase {
		case rotateOverlap:
			r.phase = rotateSingle
			if r.leftLonger() {
				r.loop = (r.b - r.a) / 2
			} else {
				r.loop = (r.d - r.c) / 2
			}
		case rotateSingle:
			r.phase = rotateReversal
			r.loop = (r.d - r.a) / 2
		case rotateReversal:
			r.finish()
			return
		}
	}
	r.loop--

	switch r.phase {
	case rotateOverlap:
		r.b--
		r.d--
		r.cycle(r.b, r.a, r.c, r.d)
		r.a++
		r.c++

	case rotateSingle:
		r.d--
		if r.leftLonger() {
			r.b--
			r.cycle(r.b, r.a, r.d)
		} else {
			r.cycle(r.c, r.d, r.a)
			r.c++
		}
		r.a++

	case rotateReversal:
		r.d--
		r.swap(r.a, r.d)
		r.a++
	}

	if r.phase == rotateReversal && r.loop == 0 {
		r.finish()
	}
}

func (r *Rotate) draw(_ int, s surface.Surface) {
	height := float64(s.Height())
	n := len(r.data)
	p := newPlot(s, n, height, height, 260)
	w := max(p.xs, 1)

	s.Clear(sortreel.Black)
	s.FillRect(p.x(r.a-1), 0, w, height, sortreel.Red)
	s.FillRect(p.x(r.b+1), 0, w, height, sortreel.Fuchsia)
	s.FillRect(p.x(r.c-1), 0, w, height, sortreel.Orange)
	s.FillRect(p.x(r.d+1), 0, w, height, sortreel.Plum)
	s.FillRect(p.x(r.k), 0, w, height, sortreel.Blue)
	s.FillRect(p.x(n-r.k), 0, w, height, sortreel.DarkCyan)

	for i, v := range r.data {
		top := p.y(v)
		s.FillRect(p.x(i), top, w, height-top, sortreel.White)
	}

	r.caption(s,
		r.sprintf("%d copies, %d swaps, %d iterations.", r.counters.Copies, r.counters.Swaps, r.counters.Steps),
		r.sprintf("rotating by %d places, %s phase.", r.k, [...]string{"overlap", "single overlap", "reversal"}[r.phase]),
		r.costLine())
}
