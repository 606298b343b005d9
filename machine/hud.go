// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"image/color"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/surface"
)

const (
	titleSize   = 24
	captionSize = 18
	pointSize   = 4
	markerWidth = 4
)

// plot maps buffer indices and keys onto a band of the surface.
type plot struct {
	xs   float64 // pixels per index
	ys   float64 // pixels per key unit
	base float64 // y of key zero
}

// newPlot lays n indices across the surface width. Keys 0..keyRange are
// drawn upwards from base over height pixels.
func newPlot(s surface.Surface, n int, base, height, keyRange float64) plot {
	return plot{
		xs:   float64(s.Width()) / (float64(n) + 1),
		ys:   height / keyRange,
		base: base,
	}
}

func (p plot) x(i int) float64 { return float64(i) * p.xs }

func (p plot) y(v byte) float64 { return p.base - float64(v)*p.ys }

// points draws every key of buf as a small square.
func (p plot) points(s surface.Surface, buf []byte, c color.Color) {
	for i, v := range buf {
		s.FillRect(p.x(i)-pointSize/2, p.y(v)-pointSize/2, pointSize, pointSize, c)
	}
}

// column draws a full height vertical marker at index i.
func (p plot) column(s surface.Surface, i int, top, height float64, c color.Color) {
	s.FillRect(p.x(i)-markerWidth/2, top, markerWidth, height, c)
}

// spans draws pending spans as stacked bars below y, the flame graph of the
// work still to do.
func (p plot) spans(s surface.Surface, spans []Span, y float64, c color.Color) {
	for k := len(spans) - 1; k >= 0; k-- {
		sp := spans[k]
		s.FillRect(p.x(sp.Low), y, float64(sp.High-sp.Low)*p.xs, pointSize, c)
		y += pointSize
	}
}

// queued draws disjoint spans on a single row at y, alternating between
// two colors so neighbours stay apart.
func (p plot) queued(s surface.Surface, spans []Span, y float64, even, odd color.Color) {
	for k, sp := range spans {
		c := even
		if k%2 == 1 {
			c = odd
		}
		s.FillRect(p.x(sp.Low), y, float64(sp.Count())*p.xs, pointSize, c)
	}
}

// caption draws the title line and up to three detail lines.
func (c *core) caption(s surface.Surface, lines ...string) {
	s.DrawText(c.sprintf("%s. %d items (%s)", c.info.Title, len(c.data), c.name), 10, 24,
		surface.TextStyle{Size: titleSize, Color: sortreel.WhiteSmoke})

	y := 70.0
	for _, line := range lines {
		s.DrawText(line, 10, y, surface.TextStyle{Size: captionSize, Color: sortreel.WhiteSmoke})
		y += 20
	}
}

// frameLabel draws the frame number in the top right corner.
func (c *core) frameLabel(frame int, s surface.Surface) {
	s.DrawText(c.sprintf("frame %d", frame), float64(s.Width())-10, 24,
		surface.TextStyle{Size: captionSize, Color: sortreel.DimGray, Align: surface.AlignRight})
}

// workLine is the common counter line.
func (c *core) workLine() string {
	k := c.counters
	if c.info.inspects {
		return c.sprintf("%d inspections, %d copies, %d swaps", k.Inspections, k.Copies, k.Swaps)
	}
	return c.sprintf("%d compares, %d copies, %d swaps", k.Compares, k.Copies, k.Swaps)
}

// costLine is the common complexity line.
func (c *core) costLine() string {
	n := len(c.data)
	return c.sprintf("n = %d; %s = %d, %s auxiliary space", n, c.info.Complexity, c.info.Estimate(n), c.info.Space)
}
