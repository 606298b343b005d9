// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
	"strings"
)

// Op identifies a recorded drawing operation.
type Op uint8

const (
	OpClear Op = iota
	OpFillRect
	OpDrawText
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpClear:
		return "Clear"
	case OpFillRect:
		return "FillRect"
	case OpDrawText:
		return "DrawText"
	default:
		return "Unknown"
	}
}

// Command is one recorded drawing call. Fields not used by the operation
// are zero.
type Command struct {
	Op    Op
	X, Y  float64
	W, H  float64
	Text  string
	Size  float64
	Align Align
	Color color.NRGBA
}

// Recorder is a Surface that records drawing commands instead of
// rasterizing them. It is used to inspect what a machine draws.
type Recorder struct {
	width    int
	height   int
	commands []Command
}

// NewRecorder creates a recorder reporting the given dimensions.
func NewRecorder(width, height int) *Recorder {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Recorder{width: width, height: height}
}

// Width returns the reported surface width.
func (r *Recorder) Width() int { return r.width }

// Height returns the reported surface height.
func (r *Recorder) Height() int { return r.height }

// Clear records a Clear command.
func (r *Recorder) Clear(c color.Color) {
	r.commands = append(r.commands, Command{Op: OpClear, Color: nrgba(c)})
}

// FillRect records a FillRect command with the size normalized.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r.commands = append(r.commands, Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: nrgba(c)})
}

// DrawText records a DrawText command with the style resolved.
func (r *Recorder) DrawText(s string, x, y float64, style TextStyle) {
	style = style.resolve()
	r.commands = append(r.commands, Command{
		Op:    OpDrawText,
		X:     x,
		Y:     y,
		Text:  s,
		Size:  style.Size,
		Align: style.Align,
		Color: nrgba(style.Color),
	})
}

// Commands returns the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns the number of recorded commands with the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the strings of all recorded DrawText commands.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.commands {
		if c.Op == OpDrawText {
			out = append(out, c.Text)
		}
	}
	return out
}

// HasText reports whether any recorded text contains substr.
func (r *Recorder) HasText(substr string) bool {
	for _, c := range r.commands {
		if c.Op == OpDrawText && strings.Contains(c.Text, substr) {
			return true
		}
	}
	return false
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

func nrgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
