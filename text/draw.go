package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Anchor selects which corner of the line box a draw position names.
type Anchor uint8

const (
	// TopLeft places the left edge of the line box at x and its top at y.
	TopLeft Anchor = iota
	// TopRight places the right edge of the shaped line at x.
	TopRight
	// Baseline places the pen origin at (x, y).
	Baseline
)

// Draw renders a line of text at the baseline origin (x, y).
func Draw(dst draw.Image, s string, face *Face, x, y float64, col color.Color) {
	DrawAt(dst, s, face, x, y, col, Baseline)
}

// DrawAt renders a line of text positioned by anchor. TopRight measures
// the line with the shaper, so kerned runs end flush at x.
func DrawAt(dst draw.Image, s string, face *Face, x, y float64, col color.Color, anchor Anchor) {
	if s == "" || face == nil || face.face == nil {
		return
	}
	switch anchor {
	case TopRight:
		x -= Measure(s, face)
		y += face.metrics.Ascent
	case TopLeft:
		y += face.metrics.Ascent
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face.face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(s)
}
