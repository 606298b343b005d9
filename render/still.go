// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/machine"
	"github.com/gogpu/sortreel/surface"
)

// Still advances m headlessly to frame (or to its terminal state, whichever
// comes first) and returns an image surface holding that frame. A negative
// frame selects the finished state. The caller must Close the surface.
func Still(ctx context.Context, m machine.Machine, frame int, opts ...Option) (*surface.ImageSurface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	s := surface.NewImageSurface(o.width, o.height)
	if err := StillOn(ctx, m, frame, s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// StillOn is Still drawing onto a caller supplied surface.
func StillOn(ctx context.Context, m machine.Machine, frame int, s surface.Surface) error {
	n := 0
	for !m.Done() && (frame < 0 || n < frame) {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
		if _, err := m.Advance(n, nil); err != nil {
			return fmt.Errorf("render: frame %d: %w", n, err)
		}
		n++
	}

	sortreel.Component("render").Debug("still frame",
		"algorithm", m.Algorithm(),
		"frame", n,
		"done", m.Done())

	m.Draw(n, s)
	return nil
}
