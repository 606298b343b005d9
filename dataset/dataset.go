// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dataset generates the key buffers the algorithm machines sort.
//
// All generators are deterministic: the random ones take an explicit seed
// and use a PCG source, so a rendered video can be reproduced exactly.
package dataset

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// ErrUnknownDataset is returned by Generate for an unregistered name.
var ErrUnknownDataset = errors.New("dataset: unknown dataset")

// Generator fills a buffer of n keys. Deterministic generators ignore seed.
type Generator func(n int, seed uint64) []byte

var generators = map[string]Generator{
	"random":          Random,
	"scatter-reverse": ScatterReverse,
	"sorted":          func(n int, _ uint64) []byte { return Sorted(n) },
	"reversed":        func(n int, _ uint64) []byte { return Reversed(n) },
	"ramp":            func(n int, _ uint64) []byte { return Ramp(n) },
	"few-unique":      FewUnique,
}

// Names returns the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate builds the named dataset. n must not be negative.
func Generate(name string, n int, seed uint64) ([]byte, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	if n < 0 {
		return nil, fmt.Errorf("dataset: negative size %d", n)
	}
	return g(n, seed), nil
}

func newRand(seed uint64) *rand.Rand {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return rand.New(src)
}

// Random returns n uniformly distributed keys.
func Random(n int, seed uint64) []byte {
	r := newRand(seed)
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(r.Uint32())
	}
	return data
}

// ScatterReverse returns a descending ramp with one eighth random noise.
func ScatterReverse(n int, seed uint64) []byte {
	data := Random(n, seed)
	if n == 0 {
		return data
	}
	f := 256.0 / float64(n)
	for i := range data {
		rev := float64(n-i) * f
		data[i] = byte((rev*7 + float64(data[i])) / 8)
	}
	return data
}

// Sorted returns n ascending keys spread over the full key range.
func Sorted(n int) []byte {
	data := make([]byte, n)
	if n == 0 {
		return data
	}
	f := 256.0 / float64(n)
	for i := range data {
		data[i] = byte(float64(i) * f)
	}
	return data
}

// Reversed returns Sorted(n) in descending order.
func Reversed(n int) []byte {
	data := Sorted(n)
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
	return data
}

// Ramp returns the keys 0, 1, 2, ... wrapping at 256. Used by the rotation
// videos, where the shift is easy to follow on a sawtooth.
func Ramp(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

// FewUnique returns n random keys drawn from eight distinct values, which
// exercises the equal key paths of the partitioning sorts.
func FewUnique(n int, seed uint64) []byte {
	r := newRand(seed)
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(r.Intn(8) * 32)
	}
	return data
}
