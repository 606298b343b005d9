// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
)

// Surface is the rendering target abstraction used by every machine.
//
// Example usage:
//
//	s := surface.NewImageSurface(640, 448)
//	defer s.Close()
//
//	s.Clear(sortreel.Black)
//	s.FillRect(10, 10, 4, 4, sortreel.LightBlue)
//	s.DrawText("Bottom up merge", 10, 24, surface.TextStyle{Size: 24, Color: sortreel.WhiteSmoke})
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	Clear(c color.Color)

	// FillRect fills an axis-aligned rectangle. Negative sizes are
	// normalized; the rectangle is clipped to the surface.
	FillRect(x, y, w, h float64, c color.Color)

	// DrawText draws a single line of text with y at the top of the line
	// box and x at the edge selected by style.Align.
	DrawText(s string, x, y float64, style TextStyle)
}

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	// Size is the font size in pixels. Zero selects DefaultTextSize.
	Size float64

	// Color is the text color. Nil selects white.
	Color color.Color

	// Align selects which edge of the line x refers to.
	Align Align
}

// Align is the horizontal anchor of a DrawText call.
type Align uint8

const (
	// AlignLeft places the left edge of the text at x.
	AlignLeft Align = iota

	// AlignRight places the right edge of the text at x.
	AlignRight
)

// DefaultTextSize is the font size used when TextStyle.Size is zero.
const DefaultTextSize = 18

// resolve fills in the zero values of a style.
func (st TextStyle) resolve() TextStyle {
	if st.Size <= 0 {
		st.Size = DefaultTextSize
	}
	if st.Color == nil {
		st.Color = color.White
	}
	return st
}

// Options configures surface creation through the registry.
type Options struct {
	Width  int
	Height int
}
