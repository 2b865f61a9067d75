package ir

import (
	"fmt"
	"slices"
	"sync"
)

// ElementSet is a named, ordered group of element indices.
type ElementSet struct {
	Name      string `json:"name"`
	Selection []int  `json:"selection"`
	Index     int    `json:"index"`
}

// Number returns the 1-based serialization index.
func (s ElementSet) Number() int { return s.Index + 1 }

// SetRegistry is an insert-only, ordered registry of element sets.
//
// Thread-safety: all methods are safe for concurrent use. Writers are
// serialized by an internal mutex, so a lookup issued after Add returns
// always observes the new entry.
type SetRegistry struct {
	mu     sync.RWMutex
	byName map[string]int
	sets   []ElementSet
}

// NewSetRegistry creates an empty registry.
func NewSetRegistry() *SetRegistry {
	return &SetRegistry{byName: make(map[string]int)}
}

// Add registers a new set and returns it. The selection is copied.
// Adding a name that already exists is an error: entries are never replaced.
func (r *SetRegistry) Add(name string, selection []int) (ElementSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return ElementSet{}, fmt.Errorf("element set %q already registered", name)
	}
	set := ElementSet{
		Name:      name,
		Selection: slices.Clone(selection),
		Index:     len(r.sets),
	}
	r.byName[name] = set.Index
	r.sets = append(r.sets, set)
	return cloneSet(set), nil
}

// Lookup returns a copy of the named set.
func (r *SetRegistry) Lookup(name string) (ElementSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[name]
	if !ok {
		return ElementSet{}, false
	}
	return cloneSet(r.sets[idx]), true
}

// Len returns the number of registered sets.
func (r *SetRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// Sets returns copies of all sets in registration order.
func (r *SetRegistry) Sets() []ElementSet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ElementSet, len(r.sets))
	for i, s := range r.sets {
		out[i] = cloneSet(s)
	}
	return out
}

func cloneSet(s ElementSet) ElementSet {
	s.Selection = slices.Clone(s.Selection)
	return s
}
