// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRecorder(opts Options) (Surface, error) {
	return NewRecorder(opts.Width, opts.Height), nil
}

func never() bool { return false }

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 1, newTestRecorder, nil)
	r.Register("high", 100, newTestRecorder, nil)
	r.Register("mid-b", 50, newTestRecorder, nil)
	r.Register("mid-a", 50, newTestRecorder, nil)
	r.Register("off", 200, newTestRecorder, never)

	if diff := cmp.Diff([]string{"off", "high", "mid-a", "mid-b", "low"}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"high", "mid-a", "mid-b", "low"}, r.Available()); diff != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryReplaceAndUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 1, newTestRecorder, nil)
	r.Register("b", 2, newTestRecorder, nil)
	r.Register("a", 3, newTestRecorder, nil)

	if diff := cmp.Diff([]string{"a", "b"}, r.List()); diff != "" {
		t.Errorf("List() after replace mismatch (-want +got):\n%s", diff)
	}
	b, ok := r.Lookup("a")
	if !ok || b.Priority != 3 {
		t.Errorf("Lookup(a) = %+v, %v, want priority 3", b, ok)
	}

	r.Unregister("a")
	r.Unregister("missing")
	if _, ok := r.Lookup("a"); ok {
		t.Error("backend still present after Unregister")
	}
	if diff := cmp.Diff([]string{"b"}, r.List()); diff != "" {
		t.Errorf("List() after Unregister mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryNewSurfaceByName(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, newTestRecorder, never)
	r.Register("record", 1, newTestRecorder, nil)

	tests := []struct {
		name    string
		backend string
		opts    Options
		wantIs  error
		wantErr bool
	}{
		{"ok", "record", Options{Width: 4, Height: 3}, nil, false},
		{"unknown", "missing", Options{Width: 1, Height: 1}, ErrUnknownBackend, true},
		{"unavailable", "off", Options{Width: 1, Height: 1}, ErrBackendUnavailable, true},
		{"zero size", "record", Options{}, nil, true},
		{"negative size", "record", Options{Width: 10, Height: -1}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.NewSurfaceByName(tt.backend, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSurfaceByName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if err == nil && (s.Width() != tt.opts.Width || s.Height() != tt.opts.Height) {
				t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tt.opts.Width, tt.opts.Height)
			}
		})
	}

	_, err := r.NewSurfaceByName("missing", Options{Width: 1, Height: 1})
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "missing" {
		t.Errorf("error = %v, want *BackendNotFoundError for missing", err)
	}
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()
	errBroken := errors.New("broken backend")
	r.Register("broken", 100, func(Options) (Surface, error) {
		return nil, errBroken
	}, nil)

	if _, err := r.NewSurface(Options{Width: 1, Height: 1}); !errors.Is(err, errBroken) {
		t.Errorf("NewSurface() error = %v, want %v", err, errBroken)
	}

	r.Register("record", 1, newTestRecorder, nil)
	s, err := r.NewSurface(Options{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("NewSurface() error = %v, want fallback", err)
	}
	if _, ok := s.(*Recorder); !ok {
		t.Errorf("fallback returned %T, want *Recorder", s)
	}
}

func TestRegistryEmpty(t *testing.T) {
	if _, err := NewRegistry().NewSurface(Options{Width: 1, Height: 1}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("NewSurface() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestBuiltinBackends(t *testing.T) {
	for _, name := range []string{"image", "record"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("built-in backend %q not registered", name)
		}
	}

	s, err := NewSurfaceByName("record", 64, 48)
	if err != nil {
		t.Fatalf("NewSurfaceByName(record) error = %v", err)
	}
	if _, ok := s.(*Recorder); !ok {
		t.Errorf("record backend returned %T", s)
	}

	s, err = NewSurface(64, 48)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("default backend returned %T, want *ImageSurface", s)
	}
}
