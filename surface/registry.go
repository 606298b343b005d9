// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory creates a surface of the requested size. The size has already been
// validated when a factory is called through a Registry.
type Factory func(opts Options) (Surface, error)

// Backend describes a registered surface implementation.
type Backend struct {
	// Name selects the backend, e.g. "image".
	Name string

	// Priority orders backends for NewSurface, higher first.
	// Built-ins: image 10, record 1.
	Priority int

	// New creates the surface.
	New Factory

	// Available reports whether the backend can be used on this system.
	// Nil means always.
	Available func() bool
}

func (b *Backend) usable() bool {
	return b.Available == nil || b.Available()
}

// Registry is a set of named backends kept in priority order.
// It is safe for concurrent use.
//
// Example:
//
//	func init() {
//	    surface.Register("svg", 5, newSVGSurface, nil)
//	}
//
//	s, err := surface.NewSurfaceByName("record", 640, 448)
type Registry struct {
	mu       sync.RWMutex
	backends []Backend // sorted by priority desc, then name
}

// NewRegistry returns an empty registry. Most callers use the package
// level functions, which share the default registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Register adds or replaces a backend in the default registry.
func Register(name string, priority int, f Factory, available func() bool) {
	defaultRegistry.Register(name, priority, f, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// List returns every backend name in the default registry in priority
// order.
func List() []string { return defaultRegistry.List() }

// Available returns the usable backend names in priority order.
func Available() []string { return defaultRegistry.Available() }

// Lookup returns the named backend of the default registry.
func Lookup(name string) (Backend, bool) { return defaultRegistry.Lookup(name) }

// NewSurface creates a surface with the highest priority usable backend.
func NewSurface(width, height int) (Surface, error) {
	return defaultRegistry.NewSurface(Options{Width: width, Height: height})
}

// NewSurfaceByName creates a surface with the named backend.
func NewSurfaceByName(name string, width, height int) (Surface, error) {
	return defaultRegistry.NewSurfaceByName(name, Options{Width: width, Height: height})
}

// Register adds a backend, replacing any backend with the same name.
func (r *Registry) Register(name string, priority int, f Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends = slices.DeleteFunc(r.backends, func(b Backend) bool { return b.Name == name })
	r.backends = append(r.backends, Backend{
		Name:      name,
		Priority:  priority,
		New:       f,
		Available: available,
	})
	slices.SortFunc(r.backends, func(a, b Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Unregister removes the named backend. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = slices.DeleteFunc(r.backends, func(b Backend) bool { return b.Name == name })
}

// List returns all backend names in priority order.
func (r *Registry) List() []string {
	return r.names(false)
}

// Available returns the usable backend names in priority order.
func (r *Registry) Available() []string {
	return r.names(true)
}

func (r *Registry) names(usableOnly bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for i := range r.backends {
		if usableOnly && !r.backends[i].usable() {
			continue
		}
		out = append(out, r.backends[i].Name)
	}
	return out
}

// Lookup returns a copy of the named backend.
func (r *Registry) Lookup(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.backends {
		if b.Name == name {
			return b, true
		}
	}
	return Backend{}, false
}

// NewSurface tries the usable backends in priority order and returns the
// first surface created.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface with the named backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.usable() {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, name)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("surface: %s: invalid size %dx%d", name, opts.Width, opts.Height)
	}
	return b.New(opts)
}

var (
	// ErrNoBackendAvailable is returned by NewSurface when no backend is
	// usable.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrUnknownBackend is matched by BackendNotFoundError.
	ErrUnknownBackend = errors.New("surface: unknown backend")

	// ErrBackendUnavailable is returned for a registered backend whose
	// Available func reports false.
	ErrBackendUnavailable = errors.New("surface: backend unavailable")
)

// BackendNotFoundError reports a backend name that is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return fmt.Sprintf("surface: unknown backend %q (have %v)", e.Name, List())
}

// Unwrap lets errors.Is match ErrUnknownBackend.
func (e *BackendNotFoundError) Unwrap() error {
	return ErrUnknownBackend
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
	Register("record", 1, func(opts Options) (Surface, error) {
		return NewRecorder(opts.Width, opts.Height), nil
	}, nil)
}
