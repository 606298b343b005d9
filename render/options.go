// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Default frame geometry and rates.
const (
	DefaultWidth      = 640
	DefaultHeight     = 448
	DefaultFPS        = 60
	DefaultSampleRate = 44100
)

// Option configures a Run.
//
// Example:
//
//	// Short preview at a smaller size
//	stats, err := render.Run(ctx, m, sink,
//	    render.WithSize(320, 224),
//	    render.WithMaxFrames(600))
type Option func(*options)

// options holds the configuration for a Run.
type options struct {
	width      int
	height     int
	fps        int
	maxFrames  int
	hold       int
	audio      bool
	sampleRate int
	progress   func(Stats)
	every      int
}

// defaultOptions returns the default run options.
func defaultOptions() options {
	return options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		fps:        DefaultFPS,
		hold:       -1, // one second at the frame rate
		sampleRate: DefaultSampleRate,
		every:      DefaultFPS,
	}
}

func (o *options) resolve() {
	if o.width <= 0 {
		o.width = DefaultWidth
	}
	if o.height <= 0 {
		o.height = DefaultHeight
	}
	if o.fps <= 0 {
		o.fps = DefaultFPS
	}
	if o.sampleRate <= 0 {
		o.sampleRate = DefaultSampleRate
	}
	if o.hold < 0 {
		o.hold = o.fps
	}
	if o.every <= 0 {
		o.every = o.fps
	}
}

// WithSize sets the frame size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithFPS sets the frame rate. It controls the number of audio samples per
// frame and the length of the final hold.
func WithFPS(fps int) Option {
	return func(o *options) {
		o.fps = fps
	}
}

// WithMaxFrames stops the run after n frames, including held frames.
// Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(o *options) {
		o.maxFrames = n
	}
}

// WithHold sets how many copies of the finished state are written after the
// machine terminates. The default is one second of frames.
func WithHold(frames int) Option {
	return func(o *options) {
		o.hold = frames
	}
}

// WithAudio enables the tone track.
func WithAudio(enabled bool) Option {
	return func(o *options) {
		o.audio = enabled
	}
}

// WithSampleRate sets the audio sample rate in Hz.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		o.sampleRate = rate
	}
}

// WithProgress registers a callback invoked periodically with the running
// statistics, once per second of video by default, and once at the end.
func WithProgress(fn func(Stats)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressEvery sets the progress interval in frames.
func WithProgressEvery(frames int) Option {
	return func(o *options) {
		o.every = frames
	}
}
