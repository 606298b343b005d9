// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render drives a [machine.Machine] frame by frame and hands the
// rasterized frames to a [Sink].
//
// The driver owns one [surface.ImageSurface]. For every frame it calls
// Advance on the machine, which draws the current state and then performs
// one step, and writes the resulting image to the sink. When audio is
// enabled the driver also writes one frame's worth of tone samples for the
// last key the machine touched.
//
// # Sinks
//
//   - [FFmpeg]: pipes raw rgb24 frames into an ffmpeg process (H.264)
//   - [PNGSequence]: one numbered PNG file per frame
//   - [Discard]: counts frames and drops them
//
// # Usage
//
//	m, _ := machine.New("merge", "random", dataset.Random(1024, 1))
//	sink, err := render.NewFFmpeg(ctx, "merge.mp4", render.FFmpegConfig{Width: 640, Height: 448, FPS: 60})
//	if err != nil {
//	    return err
//	}
//	stats, err := render.Run(ctx, m, sink)
//	if cerr := sink.Close(); err == nil {
//	    err = cerr
//	}
package render
