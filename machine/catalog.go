// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"
	"math"
	"sort"
)

// Info describes one algorithm of the catalog.
type Info struct {
	// Key is the stable identifier used by New and the CLI.
	Key string

	// Title is the caption drawn on every frame.
	Title string

	// Complexity is the asymptotic cost label, e.g. "O(n log n)".
	Complexity string

	// Space is the auxiliary space label, e.g. "O(log n)".
	Space string

	inspects bool // counts bit inspections instead of compares
	estimate func(n int) int
	build    func(info Info, name string, data []byte, cfg config) Machine
}

// Estimate returns the complexity label evaluated for n keys.
func (i Info) Estimate(n int) int {
	if i.estimate == nil || n < 1 {
		return 0
	}
	return i.estimate(n)
}

// config holds the values set by Option.
type config struct {
	rotation    int
	hasRotation bool
}

// Option configures a machine created by New.
type Option func(*config)

// WithRotation sets the number of places the rotate machine shifts left.
// The amount is taken modulo the buffer length. Without this option the
// buffer is rotated by a quarter of its length.
func WithRotation(k int) Option {
	return func(c *config) {
		c.rotation = k
		c.hasRotation = true
	}
}

func nLogN(n int) int { return int(math.Log2(float64(n)) * float64(n)) }

var catalog = []Info{
	{
		Key:        "quick",
		Title:      "Recursive quick sort",
		Complexity: "O(n log n)",
		Space:      "O(log n)",
		estimate:   nLogN,
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newQuick(info, name, data, false)
		},
	},
	{
		Key:        "quick-heap",
		Title:      "Recursive quick sort with pre-sort",
		Complexity: "O(n log n)",
		Space:      "O(log n)",
		estimate:   nLogN,
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newQuick(info, name, data, true)
		},
	},
	{
		Key:        "merge",
		Title:      "Bottom up merge",
		Complexity: "O(n log n)",
		Space:      "n",
		estimate:   nLogN,
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newMerge(info, name, data)
		},
	},
	{
		Key:        "heap",
		Title:      "Naive iterative heap sort",
		Complexity: "O(n log n)",
		Space:      "O(1)",
		estimate:   nLogN,
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newHeap(info, name, data)
		},
	},
	{
		Key:        "heap-repeat",
		Title:      "Repeated heap sort",
		Complexity: "O(n^2)",
		Space:      "O(1)",
		estimate:   func(n int) int { return n * n },
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newRepeatHeap(info, name, data)
		},
	},
	{
		Key:        "radix",
		Title:      "In place MSD radix sort",
		Complexity: "O(kn)",
		Space:      "O(log n)",
		inspects:   true,
		estimate:   func(n int) int { return 8 * n },
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newRadix(info, name, data)
		},
	},
	{
		Key:        "radix-merge",
		Title:      "MSD radix merge",
		Complexity: "O(kn)",
		Space:      "O(2n)",
		inspects:   true,
		estimate:   func(n int) int { return 8 * n },
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newRadixMerge(info, name, data)
		},
	},
	{
		Key:        "tournament",
		Title:      "Tournament sort with merge",
		Complexity: "O(n log n)",
		Space:      "k+n",
		estimate:   nLogN,
		build: func(info Info, name string, data []byte, _ config) Machine {
			return newTournament(info, name, data)
		},
	},
	{
		Key:        "rotate",
		Title:      "Rotate array with 3 reversals",
		Complexity: "O(n)",
		Space:      "0",
		estimate:   func(n int) int { return n },
		build: func(info Info, name string, data []byte, cfg config) Machine {
			k := len(data) / 4
			if cfg.hasRotation {
				k = cfg.rotation
			}
			return newRotate(info, name, data, k)
		},
	},
}

// Catalog returns every algorithm in presentation order.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Keys returns the sorted catalog keys.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for _, info := range catalog {
		keys = append(keys, info.Key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Info, bool) {
	for _, info := range catalog {
		if info.Key == key {
			return info, true
		}
	}
	return Info{}, false
}

// New creates the machine registered under key. The data slice is copied;
// name is the dataset label shown in the caption.
func New(key, name string, data []byte, opts ...Option) (Machine, error) {
	info, ok := Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, key)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return info.build(info, name, data, cfg), nil
}
