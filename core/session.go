package core

import (
	"sync"

	"github.com/google/uuid"
)

// SessionContext carries the identity and cross-cutting state of one
// orchestration session. It is created at session start, passed by pointer to
// every hook invocation for that session and discarded at session end.
//
// Contract:
//   - ID is assigned once at session start and never changes
//   - Metadata is conventionally write-once per key (not enforced)
//   - SharedState is the only sanctioned plugin-to-plugin channel; composite
//     updates under concurrency must go through SharedState.Update
type SessionContext struct {
	// ID is the opaque, unique session identifier.
	ID string `json:"id"`

	// Pattern names the orchestration pattern driving this session
	// (e.g. "fan_out", "debate", "map_reduce").
	Pattern string `json:"pattern"`

	// Metadata holds passive, descriptive session attributes.
	Metadata *SharedState `json:"metadata"`

	// SharedState holds freely read/written cross-plugin state.
	SharedState *SharedState `json:"shared_state"`
}

// NewSessionContext creates a session context for the given pattern with a
// freshly assigned session ID.
func NewSessionContext(pattern string) *SessionContext {
	return &SessionContext{
		ID:          NewID(),
		Pattern:     pattern,
		Metadata:    NewSharedState(),
		SharedState: NewSharedState(),
	}
}

// NewID returns a new opaque unique identifier.
func NewID() string { return uuid.NewString() }

// SharedState is a mutex-backed key/value map shared across plugins and
// concurrently running agents. Individual Get/Set calls are safe; a
// read-then-write sequence composed from them is not, and must use Update
// instead. That is a caller contract, not a dispatcher concern.
type SharedState struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSharedState creates an empty shared state map.
func NewSharedState() *SharedState {
	return &SharedState{values: map[string]any{}}
}

// Get returns the value and existence flag for a key.
func (s *SharedState) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a key/value pair.
func (s *SharedState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes a key, reporting whether it existed.
func (s *SharedState) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	delete(s.values, key)
	return ok
}

// Update applies fn to the current value of key under the write lock and
// stores the result. This is the atomic read-modify-write primitive for
// concurrent writers (counters, append-to-slice, and similar composites).
// fn receives the current value and whether the key existed.
func (s *SharedState) Update(key string, fn func(old any, ok bool) any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[key]
	next := fn(old, ok)
	s.values[key] = next
	return next
}

// Keys returns all present keys in unspecified order.
func (s *SharedState) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored keys.
func (s *SharedState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns a shallow defensive copy of the map to prevent callers
// from mutating internal state.
func (s *SharedState) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
