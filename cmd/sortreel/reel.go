package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/pflag"

	"github.com/gogpu/sortreel/dataset"
	"github.com/gogpu/sortreel/machine"
	"github.com/gogpu/sortreel/render"
)

// reelFlags holds the flags shared by the commands that build a machine and
// render it.
type reelFlags struct {
	algorithm  string
	dataset    string
	keys       int
	seed       uint64
	rotation   int
	width      int
	height     int
	fps        int
	audio      bool
	sampleRate int
	maxFrames  int
	hold       int
	ffmpeg     string
	frames     bool
}

func (f *reelFlags) addMachineFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.dataset, "dataset", "d", "random", "input dataset ("+strings.Join(dataset.Names(), ", ")+")")
	fs.IntVarP(&f.keys, "keys", "n", 1024, "number of keys")
	fs.Uint64Var(&f.seed, "seed", 1, "dataset seed")
	fs.IntVar(&f.rotation, "rotation", -1, "rotation amount for rotate (default keys/4)")
	fs.IntVar(&f.width, "width", render.DefaultWidth, "frame width")
	fs.IntVar(&f.height, "height", render.DefaultHeight, "frame height")
}

func (f *reelFlags) addVideoFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.fps, "fps", render.DefaultFPS, "frames per second")
	fs.BoolVar(&f.audio, "audio", false, "add the tone track")
	fs.IntVar(&f.sampleRate, "sample-rate", render.DefaultSampleRate, "audio sample rate in Hz")
	fs.IntVar(&f.maxFrames, "max-frames", 0, "stop after this many frames (0 = no limit)")
	fs.IntVar(&f.hold, "hold", -1, "frames to hold the result (default one second)")
	fs.StringVar(&f.ffmpeg, "ffmpeg", "ffmpeg", "ffmpeg executable")
	fs.BoolVar(&f.frames, "png", false, "write a directory of PNG frames instead of a video")
}

func (f *reelFlags) newMachine(key string) (machine.Machine, error) {
	if f.keys < 0 {
		return nil, fmt.Errorf("invalid key count %d", f.keys)
	}
	data, err := dataset.Generate(f.dataset, f.keys, f.seed)
	if err != nil {
		return nil, err
	}
	var opts []machine.Option
	if f.rotation >= 0 {
		opts = append(opts, machine.WithRotation(f.rotation))
	}
	return machine.New(key, f.dataset, data, opts...)
}

func (f *reelFlags) renderOptions() []render.Option {
	return []render.Option{
		render.WithSize(f.width, f.height),
		render.WithFPS(f.fps),
		render.WithAudio(f.audio),
		render.WithSampleRate(f.sampleRate),
		render.WithMaxFrames(f.maxFrames),
		render.WithHold(f.hold),
	}
}

func (f *reelFlags) newSink(ctx context.Context, output string) (render.Sink, error) {
	if f.frames {
		return render.NewPNGSequence(output)
	}
	return render.NewFFmpeg(ctx, output, render.FFmpegConfig{
		Binary:     f.ffmpeg,
		Width:      f.width,
		Height:     f.height,
		FPS:        f.fps,
		Audio:      f.audio,
		SampleRate: f.sampleRate,
	})
}

// defaultOutput names the output after the algorithm and dataset.
func (f *reelFlags) defaultOutput(dir, key string) string {
	name := key + "-" + f.dataset
	if !f.frames {
		name += ".mp4"
	}
	return filepath.Join(dir, name)
}

// reel renders one machine to output. A progress bar is shown when bar is
// non-nil; it counts frames against the catalog estimate.
func (f *reelFlags) reel(ctx context.Context, key, output string, bar *pb.ProgressBar) (stats render.Stats, err error) {
	m, err := f.newMachine(key)
	if err != nil {
		return stats, err
	}
	sink, err := f.newSink(ctx, output)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := sink.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%s: %w", output, cerr)
		}
	}()

	opts := f.renderOptions()
	if bar != nil {
		info, _ := machine.Lookup(key)
		bar.SetTotal(int64(info.Estimate(f.keys)))
		opts = append(opts, render.WithProgress(func(s render.Stats) {
			bar.SetCurrent(int64(s.Frames))
		}))
	}
	stats, err = render.Run(ctx, m, sink, opts...)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", key, err)
	}
	return stats, nil
}

var barTemplate pb.ProgressBarTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{etime . }}`
