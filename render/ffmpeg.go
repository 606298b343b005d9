// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/sortreel"
)

// ErrNoFFmpeg is returned by NewFFmpeg when the encoder binary cannot be
// found.
var ErrNoFFmpeg = errors.New("render: ffmpeg not found")

// ErrSinkClosed is returned by writes to a closed sink.
var ErrSinkClosed = errors.New("render: sink closed")

// FFmpegConfig describes the stream handed to ffmpeg.
type FFmpegConfig struct {
	// Binary is the ffmpeg executable, looked up in PATH. Default "ffmpeg".
	Binary string

	// Width and Height are the frame size. Frames of any other size are
	// rejected.
	Width, Height int

	// FPS is the input frame rate. Default DefaultFPS.
	FPS int

	// Audio enables the u8 mono tone track.
	Audio bool

	// SampleRate is the audio rate in Hz. Default DefaultSampleRate.
	SampleRate int

	// CRF is the libx264 constant rate factor. Zero selects 18.
	CRF int
}

// FFmpeg is a Sink that encodes frames to an H.264 file.
//
// Frames are streamed to the encoder's stdin as raw rgb24. Audio samples
// are spooled to a temporary file and muxed into the output by a second
// ffmpeg pass when the sink is closed.
type FFmpeg struct {
	ctx    context.Context
	binary string
	output string
	cfg    FFmpegConfig

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	w      *bufio.Writer
	stderr bytes.Buffer
	rgb    []byte

	// video is the encoder output; a temporary file when audio is muxed.
	video string
	spool *os.File
	pcm   *bufio.Writer

	closed bool
	err    error
}

// NewFFmpeg starts an encoder writing to output.
func NewFFmpeg(ctx context.Context, output string, cfg FFmpegConfig) (*FFmpeg, error) {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("render: invalid frame size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.CRF <= 0 {
		cfg.CRF = 18
	}

	binary, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFFmpeg, err)
	}

	f := &FFmpeg{
		ctx:    ctx,
		binary: binary,
		output: output,
		cfg:    cfg,
		video:  output,
		rgb:    make([]byte, cfg.Width*cfg.Height*3),
	}

	if cfg.Audio {
		if err := f.openSpool(); err != nil {
			return nil, err
		}
	}

	args := f.encodeArgs()
	sortreel.Component("ffmpeg").Debug("starting encoder", "binary", binary, "args", strings.Join(args, " "))

	f.cmd = exec.CommandContext(ctx, binary, args...)
	f.cmd.Stderr = &f.stderr
	f.stdin, err = f.cmd.StdinPipe()
	if err != nil {
		f.removeTemps()
		return nil, fmt.Errorf("render: encoder stdin: %w", err)
	}
	if err := f.cmd.Start(); err != nil {
		f.removeTemps()
		return nil, fmt.Errorf("render: start encoder: %w", err)
	}
	f.w = bufio.NewWriterSize(f.stdin, len(f.rgb))
	return f, nil
}

// openSpool creates the temporary video and audio files used for muxing.
func (f *FFmpeg) openSpool() error {
	dir := filepath.Dir(f.output)
	video, err := os.CreateTemp(dir, ".sortreel-*"+filepath.Ext(f.output))
	if err != nil {
		return fmt.Errorf("render: video temp file: %w", err)
	}
	f.video = video.Name()
	_ = video.Close()

	spool, err := os.CreateTemp("", "sortreel-*.u8")
	if err != nil {
		f.removeTemps()
		return fmt.Errorf("render: audio spool: %w", err)
	}
	f.spool = spool
	f.pcm = bufio.NewWriter(spool)
	return nil
}

func (f *FFmpeg) encodeArgs() []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", f.cfg.Width, f.cfg.Height),
		"-r", strconv.Itoa(f.cfg.FPS),
		"-i", "-",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", "libx264",
		"-crf", strconv.Itoa(f.cfg.CRF),
		"-pix_fmt", "yuv420p",
		f.video,
	}
}

func (f *FFmpeg) muxArgs() []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", f.video,
		"-f", "u8",
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-ac", "1",
		"-i", f.spool.Name(),
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		f.output,
	}
}

// WriteFrame encodes img.
func (f *FFmpeg) WriteFrame(img *image.RGBA) error {
	if f.closed {
		return ErrSinkClosed
	}
	if f.err != nil {
		return f.err
	}
	b := img.Bounds()
	if b.Dx() != f.cfg.Width || b.Dy() != f.cfg.Height {
		return fmt.Errorf("render: frame is %dx%d, encoder expects %dx%d",
			b.Dx(), b.Dy(), f.cfg.Width, f.cfg.Height)
	}
	toRGB24(f.rgb, img)
	if _, err := f.w.Write(f.rgb); err != nil {
		f.err = f.encoderError(err)
		return f.err
	}
	return nil
}

// WriteAudio spools samples for muxing. Samples are dropped when the sink
// was created without audio.
func (f *FFmpeg) WriteAudio(samples []byte) error {
	if f.closed {
		return ErrSinkClosed
	}
	if f.pcm == nil {
		return nil
	}
	if _, err := f.pcm.Write(samples); err != nil {
		return fmt.Errorf("render: audio spool: %w", err)
	}
	return nil
}

// Close finishes the encode and, with audio, muxes the tone track into the
// output. Temporary files are removed. Close is idempotent.
func (f *FFmpeg) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	defer f.removeTemps()

	err := f.w.Flush()
	if cerr := f.stdin.Close(); err == nil {
		err = cerr
	}
	if werr := f.cmd.Wait(); werr != nil {
		return f.encoderError(werr)
	}
	if err != nil {
		return f.encoderError(err)
	}
	if f.stderr.Len() > 0 {
		sortreel.Component("ffmpeg").Warn("encoder stderr", "output", strings.TrimSpace(f.stderr.String()))
	}

	if f.spool == nil {
		return nil
	}
	if err := f.pcm.Flush(); err != nil {
		return fmt.Errorf("render: audio spool: %w", err)
	}
	if err := f.spool.Close(); err != nil {
		return fmt.Errorf("render: audio spool: %w", err)
	}

	args := f.muxArgs()
	sortreel.Component("ffmpeg").Debug("muxing audio", "args", strings.Join(args, " "))
	out, err := exec.CommandContext(f.ctx, f.binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("render: mux audio: %w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

func (f *FFmpeg) encoderError(err error) error {
	msg := strings.TrimSpace(f.stderr.String())
	if msg == "" {
		return fmt.Errorf("render: encoder: %w", err)
	}
	return fmt.Errorf("render: encoder: %w: %s", err, msg)
}

// removeTemps deletes the spool and the intermediate video, if any.
func (f *FFmpeg) removeTemps() {
	if f.spool != nil {
		_ = f.spool.Close()
		if err := os.Remove(f.spool.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			sortreel.Component("ffmpeg").Warn("removing audio spool", "err", err)
		}
	}
	if f.video != f.output {
		if err := os.Remove(f.video); err != nil && !errors.Is(err, os.ErrNotExist) {
			sortreel.Component("ffmpeg").Warn("removing intermediate video", "err", err)
		}
	}
}

// toRGB24 packs the pixels of img into dst, dropping alpha.
func toRGB24(dst []byte, img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	o := 0
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			dst[o] = row[x*4]
			dst[o+1] = row[x*4+1]
			dst[o+2] = row[x*4+2]
			o += 3
		}
	}
}
