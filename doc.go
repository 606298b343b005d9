// Package sortreel renders the execution of classic sorting and
// rearrangement algorithms as video.
//
// # Overview
//
// Every algorithm lives in package machine as a resumable state machine.
// A driver calls Advance once per video frame; each call draws the
// current state onto a surface and then performs exactly one atomic
// operation (a compare, a copy, a swap or a bit inspection).
//
//	data := dataset.Random(1024, 1)
//	m, err := machine.New("quick", "random", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sink, err := render.NewFFmpeg(ctx, "quick.mp4", render.FFmpegConfig{
//	    Width:  render.DefaultWidth,
//	    Height: render.DefaultHeight,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sink.Close()
//	stats, err := render.Run(ctx, m, sink)
//
// # Architecture
//
// The module is organized into:
//   - Root: colours, palette and the shared logger
//   - surface: the drawing capability (Clear, FillRect, DrawText)
//   - text: font loading, drawing and measuring
//   - machine: the frame-stepped algorithm engine
//   - dataset: input generators
//   - render: the frame loop and video/PNG sinks
//
// # Coordinate System
//
// Surfaces use standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package sortreel

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
