/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package polystore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/polystore/backend"
)

// Registry manages a collection of named Backend instances. Names are
// deployment roles ("primary", "archive", "cache"), not backend kinds: two
// stores of the same kind can be registered under different names.
type Registry interface {
	// RegisterBackend registers a backend under the given name.
	RegisterBackend(name string, b backend.Backend) error
	// GetBackend retrieves the backend registered under the given name.
	GetBackend(name string) (backend.Backend, error)
	// Backends lists the registered names in sorted order.
	Backends() []string
}

// backendRegistry is a thread-safe implementation of the Registry interface.
type backendRegistry struct {
	mu       sync.RWMutex
	backends map[string]backend.Backend
}

// NewRegistry creates and returns an empty Registry.
func NewRegistry() Registry {
	return &backendRegistry{
		backends: make(map[string]backend.Backend),
	}
}

// RegisterBackend stores the provided backend under the given name.
func (r *backendRegistry) RegisterBackend(name string, b backend.Backend) error {
	if name == "" {
		return fmt.Errorf("backend name must not be empty")
	}
	if b == nil {
		return fmt.Errorf("backend %q must not be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend with name %q already registered", name)
	}
	r.backends[name] = b
	return nil
}

// GetBackend retrieves the backend associated with the given name.
func (r *backendRegistry) GetBackend(name string) (backend.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.backends[name]
	if !exists {
		return nil, fmt.Errorf("backend with name %q not found", name)
	}
	return b, nil
}

// Backends lists the registered names in sorted order.
func (r *backendRegistry) Backends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
