// Package kv provides a generic thread-safe in-memory key-value store.
package kv

import "sync"

// Store is a thread-safe generic key-value store. A Store created with a
// positive limit is cleared whenever an insert would exceed it, which keeps
// memo tables of derived values bounded.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	limit int
}

// New creates an unbounded key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return NewBounded[K, V](0)
}

// NewBounded creates a store holding at most limit entries. limit <= 0 means
// unbounded.
func NewBounded[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		data:  make(map[K]V),
		limit: limit,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
}

// GetOrCompute returns the stored value for key, computing and storing it
// with fn when missing.
func (s *Store[K, V]) GetOrCompute(key K, fn func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}
	v := fn()
	s.Set(key, v)
	return v
}

func (s *Store[K, V]) set(key K, value V) {
	if _, exists := s.data[key]; !exists && s.limit > 0 && len(s.data) >= s.limit {
		s.data = make(map[K]V, s.limit)
	}
	s.data[key] = value
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
