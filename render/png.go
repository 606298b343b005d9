// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequence is a Sink that writes each frame to its own numbered PNG file
// (frame_000000.png, frame_000001.png, ...) in a directory. Audio is
// dropped.
type PNGSequence struct {
	dir    string
	next   int
	enc    png.Encoder
	closed bool
}

// NewPNGSequence creates dir if needed and returns a sink writing into it.
func NewPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &PNGSequence{
		dir: dir,
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// FramePath returns the file name used for frame n.
func (p *PNGSequence) FramePath(n int) string {
	return filepath.Join(p.dir, fmt.Sprintf("frame_%06d.png", n))
}

// Frames returns the number of frames written.
func (p *PNGSequence) Frames() int { return p.next }

// WriteFrame encodes img to the next file.
func (p *PNGSequence) WriteFrame(img *image.RGBA) error {
	if p.closed {
		return ErrSinkClosed
	}
	f, err := os.Create(p.FramePath(p.next))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := p.enc.Encode(w, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	p.next++
	return nil
}

// WriteAudio drops samples.
func (p *PNGSequence) WriteAudio([]byte) error {
	if p.closed {
		return ErrSinkClosed
	}
	return nil
}

// Close marks the sequence complete.
func (p *PNGSequence) Close() error {
	p.closed = true
	return nil
}
