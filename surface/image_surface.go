// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/gogpu/sortreel/text"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(640, 448)
//	defer s.Close()
//
//	s.Clear(color.Black)
//	s.FillRect(100, 100, 40, 40, color.White)
//	err := s.SavePNG("frame.png")
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// source supplies faces for DrawText; faces are cached per size
	// because creating an opentype face allocates glyph caches.
	source *text.FontSource
	faces  map[float64]*text.Face

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		source: text.DefaultSource(),
		faces:  make(map[float64]*text.Face),
	}
}

// SetFontSource replaces the font used by DrawText.
func (s *ImageSurface) SetFontSource(src *text.FontSource) {
	if src == nil {
		src = text.DefaultSource()
	}
	s.closeFaces()
	s.source = src
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills a rectangle, blending translucent colors over the frame.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	if s.closed {
		return
	}
	r := pixelRect(x, y, w, h).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawText draws a line of text using the surface font source.
func (s *ImageSurface) DrawText(str string, x, y float64, style TextStyle) {
	if s.closed || str == "" {
		return
	}
	style = style.resolve()
	face := s.face(style.Size)
	if face == nil {
		return
	}
	anchor := text.TopLeft
	if style.Align == AlignRight {
		anchor = text.TopRight
	}
	text.DrawAt(s.img, str, face, x, y, style.Color, anchor)
}

// face returns the cached face for size, creating it on first use.
func (s *ImageSurface) face(size float64) *text.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := s.source.Face(size)
	if err != nil {
		return nil
	}
	s.faces[size] = f
	return f
}

// Image returns the live backing image. The image is overwritten by
// subsequent drawing; use Snapshot to keep a frame.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	dst := image.NewRGBA(s.img.Bounds())
	copy(dst.Pix, s.img.Pix)
	return dst
}

// SavePNG writes the current frame to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close releases the cached font faces.
// After Close, drawing calls are ignored. Close is idempotent.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.closeFaces()
	return nil
}

func (s *ImageSurface) closeFaces() {
	for size, f := range s.faces {
		_ = f.Close()
		delete(s.faces, size)
	}
}

// pixelRect converts a float rectangle to whole pixels. Non-empty
// rectangles always cover at least one pixel so thin markers stay visible.
func pixelRect(x, y, w, h float64) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if w == 0 || h == 0 || math.IsNaN(x+y+w+h) || math.IsInf(x+y+w+h, 0) {
		return image.Rectangle{}
	}

	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w)), int(math.Round(y+h))
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	return image.Rect(x0, y0, x1, y1)
}
