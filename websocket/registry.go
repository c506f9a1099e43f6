package websocket

import (
	"sort"
	"sync"

	"github.com/tradingiq/pacifica-client/types"
)

// Registry is the desired subscription state, keyed by descriptor key. It
// survives reconnects and is replayed whenever a connection opens.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]types.Descriptor
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]types.Descriptor)}
}

// Add reports whether d was newly added.
func (r *Registry) Add(d types.Descriptor) bool {
	key := d.Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return false
	}
	r.entries[key] = d
	return true
}

// Remove reports whether d was present.
func (r *Registry) Remove(d types.Descriptor) bool {
	key := d.Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; !exists {
		return false
	}
	delete(r.entries, key)
	return true
}

func (r *Registry) Contains(d types.Descriptor) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[d.Key()]
	return exists
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns the entries ordered by key.
func (r *Registry) Snapshot() []types.Descriptor {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	snapshot := make([]types.Descriptor, 0, len(keys))
	for _, key := range keys {
		snapshot = append(snapshot, r.entries[key])
	}
	r.mu.RUnlock()
	return snapshot
}
