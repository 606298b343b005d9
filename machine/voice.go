// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import "math"

const (
	voiceBase  = 220.0 // Hz for key 0
	voiceStep  = 3.0   // Hz per key unit
	voiceLevel = 100.0 // amplitude around the 128 midpoint
)

// Voice turns the last key touched by a machine into a tone. It produces
// unsigned 8-bit mono PCM, one frame's worth of samples per call. Its only
// state is the running sample position.
type Voice struct {
	rate     int
	perFrame int
	pos      int64
}

// NewVoice creates a voice for the given sample rate and video frame rate.
func NewVoice(sampleRate, fps int) *Voice {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if fps <= 0 {
		fps = 60
	}
	return &Voice{rate: sampleRate, perFrame: sampleRate / fps}
}

// SamplesPerFrame returns the number of samples produced per frame.
func (v *Voice) SamplesPerFrame() int { return v.perFrame }

// Frequency returns the tone pitch for key.
func Frequency(key byte) float64 {
	return voiceBase + float64(key)*voiceStep
}

// Samples returns the next frame of samples for the tone of key.
func (v *Voice) Samples(key byte) []byte {
	out := make([]byte, v.perFrame)
	f := Frequency(key)
	for i := range out {
		t := float64(v.pos) / float64(v.rate)
		out[i] = byte(128 + math.Round(voiceLevel*math.Sin(2*math.Pi*f*t)))
		v.pos++
	}
	return out
}

// Silence returns one frame of the PCM midpoint and advances the position.
func (v *Voice) Silence() []byte {
	out := make([]byte, v.perFrame)
	for i := range out {
		out[i] = 128
	}
	v.pos += int64(v.perFrame)
	return out
}
