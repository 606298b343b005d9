// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the drawing capability the algorithm machines
// render onto.
//
// Surface is deliberately small: a machine only ever clears the frame,
// fills axis-aligned rectangles and draws single lines of text. This keeps
// the machines independent of how frames are rasterized or encoded.
//
// # Surface Types
//
//   - ImageSurface: CPU rendering into an *image.RGBA, used for video frames
//   - Recorder: captures the drawing commands, used by tests and tooling
//
// # Registry
//
// Backends are looked up by name through a registry:
//
//	s, err := surface.NewSurfaceByName("image", 640, 448)
//
// The built-in "image" and "record" backends are always registered.
//
// # Thread Safety
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine. The registry itself is safe for concurrent use.
package surface
