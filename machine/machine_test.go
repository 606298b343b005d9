// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/sortreel/dataset"
	"github.com/gogpu/sortreel/surface"
)

var testSizes = []int{0, 1, 2, 3, 4, 5, 127, 128, 1024}

// sortKeys returns every catalog key except the rotation.
func sortKeys() []string {
	var keys []string
	for _, k := range Keys() {
		if k != "rotate" {
			keys = append(keys, k)
		}
	}
	return keys
}

func inputs(n int) map[string][]byte {
	return map[string][]byte{
		"random":     dataset.Random(n, uint64(n)+1),
		"sorted":     dataset.Sorted(n),
		"reversed":   dataset.Reversed(n),
		"few-unique": dataset.FewUnique(n, 9),
	}
}

// drive advances m headless until it is terminal.
func drive(t *testing.T, m Machine) {
	t.Helper()
	limit := 4*m.Len()*m.Len() + 64*m.Len() + 16
	for frame := 0; ; frame++ {
		if frame > limit {
			t.Fatalf("%s did not terminate within %d steps", m.Algorithm(), limit)
		}
		more, err := m.Advance(frame, nil)
		if err != nil {
			t.Fatalf("%s: Advance(%d): %v", m.Algorithm(), frame, err)
		}
		if !more {
			return
		}
	}
}

func mustNew(t *testing.T, key string, data []byte, opts ...Option) Machine {
	t.Helper()
	m, err := New(key, "test", data, opts...)
	if err != nil {
		t.Fatalf("New(%q): %v", key, err)
	}
	return m
}

func TestSortedness(t *testing.T) {
	for _, key := range sortKeys() {
		for _, n := range testSizes {
			for name, data := range inputs(n) {
				t.Run(fmt.Sprintf("%s/%d/%s", key, n, name), func(t *testing.T) {
					m := mustNew(t, key, data)
					drive(t, m)

					want := slices.Clone(data)
					slices.Sort(want)
					if diff := cmp.Diff(want, m.Data()); diff != "" {
						t.Errorf("result is not the sorted input (-want +got):\n%s", diff)
					}
					if !m.Done() {
						t.Error("Done() = false after terminal Advance")
					}
				})
			}
		}
	}
}

func TestPullScheduleStability(t *testing.T) {
	data := dataset.ScatterReverse(200, 5)
	for _, key := range Keys() {
		t.Run(key, func(t *testing.T) {
			single := mustNew(t, key, data)
			drive(t, single)

			batched := mustNew(t, key, data)
			rec := surface.NewRecorder(640, 448)
			frame := 0
			for more := true; more; {
				// a batch of steps, then a few redraws that must not step
				for i := 0; i < 7 && more; i++ {
					var err error
					more, err = batched.Advance(frame, rec)
					if err != nil {
						t.Fatalf("Advance: %v", err)
					}
					frame++
				}
				for i := 0; i < 3; i++ {
					batched.Draw(frame, rec)
				}
				rec.Reset()
			}

			if diff := cmp.Diff(single.Data(), batched.Data()); diff != "" {
				t.Errorf("buffers differ (-single +batched):\n%s", diff)
			}
			if diff := cmp.Diff(single.Counters(), batched.Counters()); diff != "" {
				t.Errorf("counters differ (-single +batched):\n%s", diff)
			}
		})
	}
}

func TestIdempotentAfterTerminal(t *testing.T) {
	for _, key := range Keys() {
		t.Run(key, func(t *testing.T) {
			m := mustNew(t, key, dataset.Random(50, 3))
			drive(t, m)

			data := slices.Clone(m.Data())
			counters := m.Counters()
			for i := 0; i < 5; i++ {
				more, err := m.Advance(1000+i, surface.NewRecorder(10, 10))
				if more || err != nil {
					t.Fatalf("Advance after terminal = (%v, %v), want (false, nil)", more, err)
				}
			}
			if diff := cmp.Diff(data, m.Data()); diff != "" {
				t.Errorf("buffer mutated after terminal (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(counters, m.Counters()); diff != "" {
				t.Errorf("counters mutated after terminal (-before +after):\n%s", diff)
			}
		})
	}
}

func TestDegenerateInputs(t *testing.T) {
	for _, key := range Keys() {
		for _, n := range []int{0, 1} {
			m := mustNew(t, key, make([]byte, n))
			more, err := m.Advance(0, nil)
			if more || err != nil {
				t.Errorf("%s n=%d: first Advance = (%v, %v), want (false, nil)", key, n, more, err)
			}
		}
	}

	for _, k := range []int{0, 16, -16, 64} {
		m := mustNew(t, "rotate", dataset.Ramp(16), WithRotation(k))
		if more, _ := m.Advance(0, nil); more {
			t.Errorf("rotate by %d of 16 keys did not finish immediately", k)
		}
		if m.Counters().Copies != 0 {
			t.Errorf("rotate by %d copied %d keys", k, m.Counters().Copies)
		}
	}
}

func TestInputIsCopied(t *testing.T) {
	data := []byte{3, 1, 2}
	m := mustNew(t, "quick", data)
	data[0] = 99
	drive(t, m)

	if diff := cmp.Diff([]byte{1, 2, 3}, m.Data()); diff != "" {
		t.Errorf("machine observed caller mutation (-want +got):\n%s", diff)
	}
	if data[1] != 1 {
		t.Error("machine mutated the caller's slice")
	}
}

func TestHeapCompareBounds(t *testing.T) {
	for _, n := range []int{128, 1024} {
		log := math.Log2(float64(n))
		for name, data := range inputs(n) {
			m := mustNew(t, "heap", data)
			drive(t, m)

			got := m.Counters().Compares
			bound := int(2*float64(n)*log) + 2*n
			if got > bound {
				t.Errorf("heap n=%d %s: %d compares, want at most %d", n, name, got, bound)
			}
		}
	}
}

func TestRadixInspections(t *testing.T) {
	for _, n := range []int{2, 5, 128, 1024} {
		for name, data := range inputs(n) {
			m := mustNew(t, "radix", data)
			drive(t, m)
			if got := m.Counters().Inspections; got > 8*n {
				t.Errorf("radix n=%d %s: %d inspections, want at most %d", n, name, got, 8*n)
			}
			if m.Counters().Compares != 0 {
				t.Errorf("radix n=%d %s: %d compares, want none", n, name, m.Counters().Compares)
			}

			rm := mustNew(t, "radix-merge", data)
			drive(t, rm)
			c := rm.Counters()
			if c.Inspections != 8*n || c.Copies != 8*n {
				t.Errorf("radix-merge n=%d %s: %d inspections, %d copies, want %d each", n, name, c.Inspections, c.Copies, 8*n)
			}
			if c.BufferSwaps != 8 {
				t.Errorf("radix-merge n=%d %s: %d buffer swaps, want 8", n, name, c.BufferSwaps)
			}
		}
	}
}

func TestMergeBufferSwaps(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 5, 127, 128, 129, 1024} {
		m := mustNew(t, "merge", dataset.Random(n, 11))
		drive(t, m)

		want := 0
		if n > 1 {
			want = int(math.Ceil(math.Log2(float64(n))))
		}
		c := m.Counters()
		if c.BufferSwaps != want {
			t.Errorf("merge n=%d: %d buffer swaps, want %d", n, c.BufferSwaps, want)
		}
		if c.Copies != want*n {
			t.Errorf("merge n=%d: %d copies, want %d", n, c.Copies, want*n)
		}
	}
}

func TestSwapCounting(t *testing.T) {
	m := mustNew(t, "quick", []byte{2, 1})
	drive(t, m)

	c := m.Counters()
	if c.Swaps != 1 || c.Copies != 3 {
		t.Errorf("one swap counted as %d swaps and %d copies, want 1 and 3", c.Swaps, c.Copies)
	}
}

func TestRotation(t *testing.T) {
	rotateRef := func(data []byte, k int) []byte {
		n := len(data)
		out := make([]byte, n)
		for i := range out {
			out[i] = data[((i+k)%n+n)%n]
		}
		return out
	}

	tests := []struct {
		n, k int
	}{
		{1024, 256},
		{1024, 768},
		{1024, 1023},
		{1024, 1},
		{1000, 333},
		{2, 1},
		{3, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{7, 2},
		{7, 5},
		{16, -3},
		{16, 35},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,k=%d", tt.n, tt.k), func(t *testing.T) {
			data := dataset.Random(tt.n, uint64(tt.k)+7)
			m := mustNew(t, "rotate", data, WithRotation(tt.k))
			drive(t, m)

			if diff := cmp.Diff(rotateRef(data, tt.k), m.Data()); diff != "" {
				t.Errorf("rotation mismatch (-want +got):\n%s", diff)
			}
			if c := m.Counters(); c.Copies > 3*tt.n {
				t.Errorf("%d copies for %d keys, want at most %d", c.Copies, tt.n, 3*tt.n)
			}
		})
	}
}

func TestRotationDefaultAmount(t *testing.T) {
	m := mustNew(t, "rotate", dataset.Ramp(8))
	drive(t, m)
	if diff := cmp.Diff([]byte{2, 3, 4, 5, 6, 7, 0, 1}, m.Data()); diff != "" {
		t.Errorf("default rotation (-want +got):\n%s", diff)
	}
}

func TestRadixPartitionInvariant(t *testing.T) {
	data := dataset.Random(1024, 99)
	m := newRadix(mustInfo(t, "radix"), "test", data)

	splits := 0
	m.onSplit = func(low, split, high, bit int) {
		splits++
		for i := low; i <= high; i++ {
			set := (m.data[i]>>bit)&1 == 1
			if i < split && set {
				t.Fatalf("bit %d: index %d left of split %d has the bit set", bit, i, split)
			}
			if i >= split && !set {
				t.Fatalf("bit %d: index %d right of split %d has the bit clear", bit, i, split)
			}
		}
	}
	drive(t, m)

	if splits == 0 {
		t.Fatal("split hook never ran")
	}
	if !slices.IsSorted(m.Data()) {
		t.Error("radix result is not sorted")
	}
}

func mustInfo(t *testing.T, key string) Info {
	t.Helper()
	info, ok := Lookup(key)
	if !ok {
		t.Fatalf("Lookup(%q) failed", key)
	}
	return info
}

func TestQuickSpansDisjoint(t *testing.T) {
	q := newQuick(mustInfo(t, "quick"), "test", dataset.FewUnique(512, 4), false)
	for frame := 0; ; frame++ {
		more, err := q.Advance(frame, nil)
		if err != nil {
			t.Fatal(err)
		}
		owned := make([]bool, q.Len())
		for _, sp := range q.stack.items {
			for i := sp.Low; i <= sp.High; i++ {
				if owned[i] {
					t.Fatalf("frame %d: index %d owned by two pending spans", frame, i)
				}
				owned[i] = true
			}
		}
		if !more {
			break
		}
	}
}

func TestTournamentCursors(t *testing.T) {
	tm := newTournament(mustInfo(t, "tournament"), "test", dataset.Random(300, 8))
	runs := 0
	last := 0
	for frame := 0; ; frame++ {
		more, err := tm.Advance(frame, nil)
		if err != nil {
			t.Fatal(err)
		}
		if tm.write > tm.read {
			t.Fatalf("frame %d: write %d overtook read %d", frame, tm.write, tm.read)
		}
		if tm.runStart != last {
			runs++
			last = tm.runStart
		}
		if !more {
			break
		}
	}
	if runs < 2 {
		t.Errorf("random input produced %d runs, want several", runs)
	}
	if tm.write != 300 {
		t.Errorf("write cursor ended at %d, want 300", tm.write)
	}
}

func TestInvariantErrorIsFatal(t *testing.T) {
	q := newQuick(mustInfo(t, "quick"), "test", []byte{5, 4, 3, 2, 1, 0}, false)
	q.stack.push(Span{Low: 2, High: 40})

	more, err := q.Advance(0, nil)
	if more {
		t.Error("Advance reported more work after an invariant violation")
	}
	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvariantError, got %v", err)
	}
	if ie.Algorithm != "quick" {
		t.Errorf("Algorithm = %q, want quick", ie.Algorithm)
	}

	counters := q.Counters()
	more, err2 := q.Advance(1, nil)
	if more || err2 != err {
		t.Errorf("second Advance = (%v, %v), want (false, %v)", more, err2, err)
	}
	if diff := cmp.Diff(counters, q.Counters()); diff != "" {
		t.Errorf("counters changed after failure (-before +after):\n%s", diff)
	}
}

func TestTournamentDoubleFill(t *testing.T) {
	tm := newTournament(mustInfo(t, "tournament"), "test", dataset.Random(20, 1))
	tm.slots[slotB2] = slot{value: 1, occupied: true}
	tm.hole = slotB2
	tm.phase = tourRefill

	_, err := tm.Advance(0, nil)
	var ie *InvariantError
	if !errors.As(err, &ie) || ie.Op != "fill" {
		t.Fatalf("expected fill invariant error, got %v", err)
	}
}

func TestOtherPanicsPropagate(t *testing.T) {
	q := newQuick(mustInfo(t, "quick"), "test", []byte{1, 2, 3}, false)
	q.impl = panicStepper{}

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_, _ = q.Advance(0, nil)
	t.Error("Advance swallowed a foreign panic")
}

type panicStepper struct{}

func (panicStepper) step()                     { panic("boom") }
func (panicStepper) draw(int, surface.Surface) {}
