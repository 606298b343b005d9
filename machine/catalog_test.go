// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package machine

import (
	"errors"
	"testing"
)

func TestCatalog(t *testing.T) {
	seen := map[string]bool{}
	for _, info := range Catalog() {
		if seen[info.Key] {
			t.Errorf("duplicate key %q", info.Key)
		}
		seen[info.Key] = true

		if info.Title == "" || info.Complexity == "" || info.Space == "" {
			t.Errorf("%s: incomplete entry %+v", info.Key, info)
		}

		m, err := New(info.Key, "ds", []byte{3, 1, 2})
		if err != nil {
			t.Fatalf("New(%q): %v", info.Key, err)
		}
		if m.Algorithm() != info.Key || m.Title() != info.Title || m.Name() != "ds" || m.Len() != 3 {
			t.Errorf("%s: metadata mismatch: %q %q %q %d", info.Key, m.Algorithm(), m.Title(), m.Name(), m.Len())
		}
	}

	if len(Keys()) != len(Catalog()) {
		t.Errorf("Keys() has %d entries, Catalog() %d", len(Keys()), len(Catalog()))
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("bogo", "x", nil)
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want int
	}{
		{"quick", 1024, 10240},
		{"heap-repeat", 100, 10000},
		{"radix", 100, 800},
		{"rotate", 77, 77},
		{"merge", 0, 0},
	}
	for _, tt := range tests {
		info, _ := Lookup(tt.key)
		if got := info.Estimate(tt.n); got != tt.want {
			t.Errorf("%s.Estimate(%d) = %d, want %d", tt.key, tt.n, got, tt.want)
		}
	}
}
