// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/dataset"
	"github.com/gogpu/sortreel/surface"
)

func TestAdvanceDraws(t *testing.T) {
	for _, info := range Catalog() {
		t.Run(info.Key, func(t *testing.T) {
			m := mustNew(t, info.Key, dataset.Random(64, 2))
			rec := surface.NewRecorder(640, 448)

			for frame := 0; frame < 25; frame++ {
				rec.Reset()
				more, err := m.Advance(frame, rec)
				if err != nil {
					t.Fatal(err)
				}

				cmds := rec.Commands()
				if len(cmds) == 0 || cmds[0].Op != surface.OpClear {
					t.Fatalf("frame %d: first command is not Clear", frame)
				}
				if !rec.HasText(info.Title) {
					t.Fatalf("frame %d: title %q not drawn; texts %q", frame, info.Title, rec.Texts())
				}
				if !rec.HasText("64 items (test)") {
					t.Errorf("frame %d: item count caption missing; texts %q", frame, rec.Texts())
				}
				if got := rec.Count(surface.OpFillRect); got < m.Len() {
					t.Errorf("frame %d: %d rectangles, want at least one per key", frame, got)
				}
				if !more {
					break
				}
			}
		})
	}
}

func TestDrawDoesNotStep(t *testing.T) {
	m := mustNew(t, "heap", dataset.Random(32, 4))
	rec := surface.NewRecorder(320, 240)

	before := m.Counters()
	for i := 0; i < 10; i++ {
		m.Draw(i, rec)
	}
	if m.Counters() != before {
		t.Errorf("Draw changed counters: %v -> %v", before, m.Counters())
	}
	m.Draw(0, nil)
}

func TestCaptionGroupsNumbers(t *testing.T) {
	m := mustNew(t, "merge", dataset.Random(2048, 1))
	rec := surface.NewRecorder(640, 448)
	m.Draw(0, rec)

	if !rec.HasText("2,048 items") {
		t.Errorf("expected grouped item count, texts %q", rec.Texts())
	}
	found := false
	for _, s := range rec.Texts() {
		if strings.Contains(s, "O(n log n) = 22,528") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected complexity estimate 22,528, texts %q", rec.Texts())
	}
}

func TestFrameLabel(t *testing.T) {
	m := mustNew(t, "quick", dataset.Random(16, 1))
	rec := surface.NewRecorder(640, 448)
	m.Draw(1234, rec)

	for _, cmd := range rec.Commands() {
		if cmd.Op == surface.OpDrawText && cmd.Text == "frame 1,234" {
			if cmd.Align != surface.AlignRight || cmd.X != 630 {
				t.Errorf("frame label at x=%v align=%v, want right aligned at 630", cmd.X, cmd.Align)
			}
			return
		}
	}
	t.Errorf("frame label missing, texts %q", rec.Texts())
}

func TestRadixCaptionCountsInspections(t *testing.T) {
	m := mustNew(t, "radix", dataset.Random(16, 1))
	rec := surface.NewRecorder(640, 448)
	m.Draw(0, rec)
	if !rec.HasText("0 inspections") {
		t.Errorf("radix caption should count inspections, texts %q", rec.Texts())
	}
}

func TestDrawOnImageSurface(t *testing.T) {
	s := surface.NewImageSurface(320, 224)
	defer s.Close()

	m := mustNew(t, "tournament", dataset.Random(40, 6))
	for frame := 0; frame < 50; frame++ {
		if _, err := m.Advance(frame, s); err != nil {
			t.Fatal(err)
		}
	}

	img := s.Image()
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 || img.Pix[i+1] > 0 || img.Pix[i+2] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("nothing was rendered")
	}
}

// filled returns the rectangles recorded in color c.
func filled(rec *surface.Recorder, c sortreel.RGBA) []surface.Command {
	want := color.NRGBAModel.Convert(c).(color.NRGBA)
	var out []surface.Command
	for _, cmd := range rec.Commands() {
		if cmd.Op == surface.OpFillRect && cmd.Color == want {
			out = append(out, cmd)
		}
	}
	return out
}

func TestMergeMarkersOnCursors(t *testing.T) {
	m := mustNew(t, "merge", dataset.Random(64, 3))
	for frame := 0; frame < 37; frame++ {
		if _, err := m.Advance(frame, nil); err != nil {
			t.Fatal(err)
		}
	}
	mm := m.(*Merge)
	rec := surface.NewRecorder(640, 448)
	m.Draw(37, rec)

	xs := 640.0 / 65
	for _, tc := range []struct {
		name   string
		c      sortreel.RGBA
		cursor int
	}{
		{"left", sortreel.Red, mm.l},
		{"right", sortreel.Fuchsia, mm.r},
	} {
		got := filled(rec, tc.c)
		if len(got) != 1 {
			t.Fatalf("%s marker: %d rectangles, want 1", tc.name, len(got))
		}
		if want := float64(tc.cursor) * xs; got[0].X != want {
			t.Errorf("%s marker at x=%v, want %v (cursor %d)", tc.name, got[0].X, want, tc.cursor)
		}
	}
}

func TestRadixMergeMarkersAndQueue(t *testing.T) {
	const n = 48
	m := mustNew(t, "radix-merge", dataset.Random(n, 8))
	rm := m.(*RadixMerge)
	frame := 0
	for ; rm.queue.len() < 2 || !rm.busy; frame++ {
		more, err := m.Advance(frame, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			t.Fatal("finished before two spans were queued")
		}
	}

	rec := surface.NewRecorder(640, 448)
	m.Draw(frame, rec)

	xs := 640.0 / (n + 1)
	if got := filled(rec, sortreel.Red); len(got) != 1 || got[0].X != float64(rm.leftInsert)*xs {
		t.Errorf("left insert marker = %+v, want one at x=%v", got, float64(rm.leftInsert)*xs)
	}
	if got := filled(rec, sortreel.Fuchsia); len(got) != 1 || got[0].X != float64(rm.rightInsert)*xs {
		t.Errorf("right insert marker = %+v, want one at x=%v", got, float64(rm.rightInsert)*xs)
	}

	bars := len(filled(rec, sortreel.Orange)) + len(filled(rec, sortreel.Gold))
	if bars != rm.queue.len() {
		t.Errorf("%d queued span bars, want %d", bars, rm.queue.len())
	}
}
