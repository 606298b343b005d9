// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

// Heap slots: one root, two middle and four leaf slots.
const (
	slotA0 = iota
	slotM1
	slotM2
	slotB1
	slotB2
	slotB3
	slotB4
	slotCount
)

// slot is one position of the tournament heap. A locked value arrived after
// a larger key was already emitted and has to wait for the next run.
type slot struct {
	value    byte
	occupied bool
	locked   bool
}

type tournamentPhase uint8

const (
	tourFill tournamentPhase = iota
	tourOrder
	tourPop
	tourPromote
	tourRefill
	tourSiftUp
	tourMerge
	tourCopyBack
)

var tournamentPhaseNames = [...]string{
	tourFill:     "fill",
	tourOrder:    "order",
	tourPop:      "main",
	tourPromote:  "main",
	tourRefill:   "main",
	tourSiftUp:   "main",
	tourMerge:    "merge",
	tourCopyBack: "copy back",
}

// Tournament is a replacement selection sort over a seven slot heap,
// merging each produced run into the sorted prefix.
//
// Slots are ordered by (locked, value) with empty slots last. The main
// phase pops the unlocked root to the output, promotes the better child
// into the hole level by level, refills the hole from the input and sifts
// the new key up. A run ends when the root is empty or locked; it is then
// merged with the accumulated prefix through the second buffer and the heap
// is unlocked for the next run.
type Tournament struct {
	core

	slots [slotCount]slot
	phase tournamentPhase

	read     int  // next unread input index
	write    int  // next output index, never beyond read
	runStart int  // start of the run being produced
	lastOut  byte // last key emitted in this run

	hole  int // slot cursor for promote, refill and sift
	order [3]int
	next  int // index into order

	// merge cursors
	ml, mr, target int
}

func newTournament(info Info, name string, data []byte) *Tournament {
	t := &Tournament{core: newCore(info, name, data)}
	t.impl = t
	t.withAux()
	t.order = [3]int{slotM1, slotM2, slotA0}
	return t
}

func (t *Tournament) step() {
	if len(t.data) < 2 {
		t.finish()
		return
	}

	switch t.phase {
	case tourFill:
		t.fillStep()
	case tourOrder:
		t.orderStep()
	case tourPop:
		t.popStep()
	case tourPromote:
		t.promoteStep()
	case tourRefill:
		t.refillStep()
	case tourSiftUp:
		t.siftUpStep()
	case tourMerge:
		t.mergeStep()
	case tourCopyBack:
		t.copyBack(t.target, t.target)
		t.target++
		if t.target == t.write {
			t.endMerge()
		}
	}
}

// fillStep loads one empty slot from the input.
func (t *Tournament) fillStep() {
	i := t.firstEmpty()
	if i < 0 || t.read >= len(t.data) {
		t.phase = tourOrder
		t.next = 0
		t.hole = t.order[0]
		return
	}
	t.fill(i)
}

// fill loads the next unread key into slot i.
func (t *Tournament) fill(i int) {
	if t.slots[i].occupied {
		t.fail("fill", "slot %d is already occupied", i)
	}
	v := t.load(t.read)
	t.read++
	t.slots[i] = slot{value: v, occupied: true}
}

func (t *Tournament) firstEmpty() int {
	for i := range t.slots {
		if !t.slots[i].occupied {
			return i
		}
	}
	return -1
}

// orderStep sifts the middle slots and then the root down one level.
func (t *Tournament) orderStep() {
	if c := t.bestChild(t.hole); c >= 0 && t.better(c, t.hole) {
		t.swapSlots(c, t.hole)
		t.hole = c
		return
	}
	t.next++
	if t.next < len(t.order) {
		t.hole = t.order[t.next]
		return
	}
	t.verifyHeap()
	t.phase = tourPop
}

// popStep emits the root or ends the run.
func (t *Tournament) popStep() {
	root := t.slots[slotA0]
	if !root.occupied || root.locked {
		t.endRun()
		return
	}
	if t.write >= t.read {
		t.fail("pop", "write cursor %d would overtake read cursor %d", t.write, t.read)
	}
	t.store(t.write, root.value)
	t.write++
	t.lastOut = root.value
	t.slots[slotA0] = slot{}
	t.hole = slotA0
	t.phase = tourPromote
}

// promoteStep moves the better child of the hole up one level.
func (t *Tournament) promoteStep() {
	c := t.bestChild(t.hole)
	if c < 0 {
		t.phase = tourRefill
		return
	}
	s := t.slots[c]
	t.moveKey(&t.slots[t.hole].value, s.value)
	t.slots[t.hole].occupied = true
	t.slots[t.hole].locked = s.locked
	t.slots[c] = slot{}
	t.hole = c
}

// refillStep loads the next input key into the hole. Keys smaller than the
// last output cannot join this run and are locked.
func (t *Tournament) refillStep() {
	if t.read >= len(t.data) {
		t.phase = tourPop
		return
	}
	t.fill(t.hole)
	if t.compareKeys(t.slots[t.hole].value, t.lastOut) {
		t.slots[t.hole].locked = true
	}
	t.phase = tourSiftUp
}

// siftUpStep moves the refilled key up one level.
func (t *Tournament) siftUpStep() {
	if t.hole == slotA0 {
		t.phase = tourPop
		return
	}
	parent := (t.hole - 1) / 2
	if !t.better(t.hole, parent) {
		t.phase = tourPop
		return
	}
	t.swapSlots(t.hole, parent)
	t.hole = parent
}

// endRun merges the finished run into the sorted prefix, or starts the
// next run directly when this was the first one.
func (t *Tournament) endRun() {
	if t.runStart == 0 {
		t.runStart = t.write
		t.nextRun()
		return
	}
	t.ml, t.mr, t.target = 0, t.runStart, 0
	t.phase = tourMerge
}

// mergeStep moves one key of [0, runStart) or [runStart, write) to the
// second buffer, taking the left key on ties.
func (t *Tournament) mergeStep() {
	switch {
	case t.ml < t.runStart && t.mr < t.write:
		if t.compare(t.mr, t.ml) {
			t.copyOut(t.target, t.mr)
			t.mr++
		} else {
			t.copyOut(t.target, t.ml)
			t.ml++
		}
	case t.ml < t.runStart:
		t.copyOut(t.target, t.ml)
		t.ml++
	default:
		t.copyOut(t.target, t.mr)
		t.mr++
	}
	t.target++
	if t.target == t.write {
		t.target = 0
		t.phase = tourCopyBack
	}
}

func (t *Tournament) endMerge() {
	t.runStart = t.write
	t.nextRun()
}

// nextRun unlocks the heap and starts filling, or finishes when both the
// input and the heap are exhausted.
func (t *Tournament) nextRun() {
	empty := true
	for i := range t.slots {
		t.slots[i].locked = false
		if t.slots[i].occupied {
			empty = false
		}
	}
	if empty && t.read >= len(t.data) {
		t.finish()
		return
	}
	t.phase = tourFill
}

// better reports whether slot a ranks strictly before slot b.
func (t *Tournament) better(a, b int) bool {
	sa, sb := t.slots[a], t.slots[b]
	switch {
	case !sa.occupied:
		return false
	case !sb.occupied:
		return true
	case sa.locked != sb.locked:
		return !sa.locked
	}
	return t.compareKeys(sa.value, sb.value)
}

// bestChild returns the higher ranked occupied child of slot i, or -1.
func (t *Tournament) bestChild(i int) int {
	left, right := 2*i+1, 2*i+2
	if left >= slotCount || (!t.slots[left].occupied && !t.slots[right].occupied) {
		return -1
	}
	if t.better(right, left) {
		return right
	}
	return left
}

func (t *Tournament) swapSlots(a, b int) {
	t.swapKeys(&t.slots[a].value, &t.slots[b].value)
	t.slots[a].occupied, t.slots[b].occupied = t.slots[b].occupied, t.slots[a].occupied
	t.slots[a].locked, t.slots[b].locked = t.slots[b].locked, t.slots[a].locked
}

// verifyHeap asserts heap order after the order phase.
func (t *Tournament) verifyHeap() {
	rank := func(s slot) int {
		switch {
		case !s.occupied:
			return 1 << 10
		case s.locked:
			return 1<<8 + int(s.value)
		}
		return int(s.value)
	}
	for i := 1; i < slotCount; i++ {
		p := (i - 1) / 2
		if rank(t.slots[i]) < rank(t.slots[p]) {
			t.fail("order", "slot %d ranks before its parent %d", i, p)
		}
	}
}

func (t *Tournament) draw(_ int, s surface.Surface) {
	width, height := float64(s.Width()), float64(s.Height())
	half := height / 2
	p := newPlot(s, len(t.data), half, half, 280)

	s.Clear(sortreel.Black)
	s.FillRect(0, 0, width, half, sortreel.Blue)

	s.FillRect(p.x(t.read), 0, markerWidth, half, sortreel.Cyan)
	s.FillRect(p.x(t.write), 0, markerWidth, half, sortreel.LightGreen)
	if t.runStart > 0 {
		s.FillRect(p.x(t.runStart), 0, markerWidth, half, sortreel.Red)
	}
	if t.phase == tourMerge {
		s.FillRect(p.x(t.ml), 0, markerWidth, half, sortreel.Gold)
		s.FillRect(p.x(t.mr), 0, markerWidth, half, sortreel.Gold)
		s.FillRect(p.x(t.target), half, markerWidth, half, sortreel.Red)
	}

	// heap slots as bars hanging below the data
	for i, sl := range t.slots {
		c := sortreel.Brown
		if sl.occupied {
			c = sortreel.Orange
		}
		if sl.locked {
			c = sortreel.Gainsboro
		}
		s.FillRect(10+float64(i)*12, half, 8, (float64(sl.value)+10)*p.ys*0.75, c)
	}

	p.points(s, t.data, sortreel.White)
	if t.phase == tourMerge || t.phase == tourCopyBack {
		below := plot{xs: p.xs, ys: p.ys, base: height}
		below.points(s, t.aux[:t.write], sortreel.OldLace)
	}

	t.caption(s,
		t.workLine(),
		t.sprintf("%d iterations (%s), run starts at %d.", t.counters.Steps, tournamentPhaseNames[t.phase], t.runStart),
		t.costLine())
}
