// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a new Device with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Device, error)

// RegistryEntry represents a registered device backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates device instances.
	Factory Factory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered device backends.
//
// Example registration:
//
//	func init() {
//	    device.Register("mybackend", 50, myFactory, nil)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// New creates a device using the best available backend.
func New(opts Options) (Device, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a device using a specific named backend.
func NewByName(name string, opts Options) (Device, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// New creates a device using the best available backend.
func (r *Registry) New(opts Options) (Device, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	// Try each available backend in priority order
	var lastErr error
	for _, name := range available {
		d, err := r.NewByName(name, opts)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a device using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Device, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidSize
	}
	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no device backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("device: no backend available")

	// ErrInvalidSize is returned for non-positive device dimensions.
	ErrInvalidSize = errors.New("device: invalid size")

	// ErrClosed is returned when operating on a closed device.
	ErrClosed = errors.New("device: closed")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "device: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "device: backend unavailable: " + e.Name
}

// init registers the built-in backends.
func init() {
	Register("image", 10, func(opts Options) (Device, error) {
		d := NewImageDevice(opts.Width, opts.Height)
		if opts.Background != nil {
			d.Clear(d.Bounds(), opts.Background)
		}
		return d, nil
	}, nil)
	Register("recording", 0, func(opts Options) (Device, error) {
		return NewRecorder(opts.Width, opts.Height), nil
	}, nil)
}
