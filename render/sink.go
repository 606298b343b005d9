// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "image"

// Sink receives rendered frames and audio.
//
// WriteFrame must not retain img after it returns; the driver reuses the
// image for the next frame. Samples are unsigned 8-bit mono PCM.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	WriteAudio(samples []byte) error
	Close() error
}

// Discard is a Sink that drops everything and counts what it was given.
type Discard struct {
	Frames  int
	Samples int
}

// WriteFrame counts the frame.
func (d *Discard) WriteFrame(*image.RGBA) error {
	d.Frames++
	return nil
}

// WriteAudio counts the samples.
func (d *Discard) WriteAudio(samples []byte) error {
	d.Samples += len(samples)
	return nil
}

// Close does nothing.
func (d *Discard) Close() error { return nil }
