// Package registry maps ID3v2 frame ids to the factories that build them.
package registry

import (
	"strings"
	"sync"
)

// Registry is a case-insensitive table keyed by 4-byte frame id.
//
// Entries are registered during package initialization (init functions)
// and only read afterwards.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register adds or replaces the entry for id.
func (r *Registry[T]) Register(id string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[strings.ToUpper(id)] = v
}

// Get returns the entry for id, ignoring case.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[strings.ToUpper(id)]
	return v, ok
}

// IDs returns the registered ids in no particular order.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}
