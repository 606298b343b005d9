// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/machine"
	"github.com/gogpu/sortreel/surface"
)

// Stats summarizes a run.
type Stats struct {
	// Frames is the number of frames written to the sink.
	Frames int

	// Held is the number of those frames showing the finished state.
	Held int

	// Samples is the number of audio samples written to the sink.
	Samples int

	// Counters is the machine's instrumentation at the end of the run.
	Counters machine.Counters

	// Done reports whether the machine reached its terminal state.
	Done bool

	// Elapsed is the wall time spent in Run.
	Elapsed time.Duration
}

// Run pulls frames from m until it terminates and writes them to sink.
//
// Run stops early when the frame limit is reached, when ctx is cancelled or
// when the machine reports an invariant error. In every case the frames
// written so far stay in the sink; Run does not close it. The returned
// error wraps ctx.Err(), the *machine.InvariantError or the sink error.
func Run(ctx context.Context, m machine.Machine, sink Sink, opts ...Option) (Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	r := &runner{
		m:     m,
		sink:  sink,
		opts:  o,
		surf:  surface.NewImageSurface(o.width, o.height),
		start: time.Now(),
	}
	defer func() { _ = r.surf.Close() }()
	if o.audio {
		r.voice = machine.NewVoice(o.sampleRate, o.fps)
	}

	log := sortreel.Component("render")
	log.Info("render started",
		"algorithm", m.Algorithm(),
		"dataset", m.Name(),
		"keys", m.Len(),
		"size", fmt.Sprintf("%dx%d", o.width, o.height),
		"fps", o.fps,
		"audio", o.audio)

	err := r.run(ctx)
	if errors.Is(err, errFrameLimit) {
		err = nil
	}
	r.stats.Counters = m.Counters()
	r.stats.Done = m.Done()
	r.stats.Elapsed = time.Since(r.start)
	if o.progress != nil {
		o.progress(r.stats)
	}

	if err != nil {
		log.Warn("render stopped",
			"algorithm", m.Algorithm(),
			"frames", r.stats.Frames,
			"err", err)
		return r.stats, err
	}
	log.Info("render finished",
		"algorithm", m.Algorithm(),
		"frames", r.stats.Frames,
		"steps", r.stats.Counters.Steps,
		"elapsed", r.stats.Elapsed)
	return r.stats, nil
}

type runner struct {
	m     machine.Machine
	sink  Sink
	opts  options
	surf  *surface.ImageSurface
	voice *machine.Voice
	stats Stats
	start time.Time
}

func (r *runner) run(ctx context.Context) error {
	frame := 0
	for !r.m.Done() {
		if err := r.admit(ctx, frame); err != nil {
			return err
		}
		_, stepErr := r.m.Advance(frame, r.surf)
		if err := r.emit(true); err != nil {
			return err
		}
		frame++
		if stepErr != nil {
			return fmt.Errorf("render: frame %d: %w", frame-1, stepErr)
		}
	}

	sortreel.Component("render").Debug("machine finished",
		"algorithm", r.m.Algorithm(),
		"frames", frame,
		"counters", r.m.Counters().String())

	for i := 0; i < r.opts.hold; i++ {
		if err := r.admit(ctx, frame); err != nil {
			return err
		}
		r.m.Draw(frame, r.surf)
		if err := r.emit(false); err != nil {
			return err
		}
		r.stats.Held++
		frame++
	}
	return nil
}

// errFrameLimit stops a run at the configured frame count. It is not
// reported to the caller.
var errFrameLimit = errors.New("render: frame limit reached")

// admit reports whether another frame may be produced.
func (r *runner) admit(ctx context.Context, frame int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if r.opts.maxFrames > 0 && frame >= r.opts.maxFrames {
		sortreel.Component("render").Debug("frame limit reached", "frames", frame)
		return errFrameLimit
	}
	return nil
}

// emit writes the surface contents to the sink. With audio enabled it also
// writes one frame of samples: the tone of the last key touched, or silence
// for held frames.
func (r *runner) emit(tone bool) error {
	if err := r.sink.WriteFrame(r.surf.Image()); err != nil {
		return fmt.Errorf("render: write frame %d: %w", r.stats.Frames, err)
	}
	r.stats.Frames++

	if r.voice != nil {
		samples := r.voice.Silence()
		if tone {
			samples = r.voice.Samples(r.m.LastKey())
		}
		if err := r.sink.WriteAudio(samples); err != nil {
			return fmt.Errorf("render: write audio: %w", err)
		}
		r.stats.Samples += len(samples)
	}

	if r.opts.progress != nil && r.stats.Frames%r.opts.every == 0 {
		r.stats.Counters = r.m.Counters()
		r.stats.Elapsed = time.Since(r.start)
		r.opts.progress(r.stats)
	}
	return nil
}
