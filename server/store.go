package server

import (
	"slices"
	"sync"
)

// Store is an in-memory table keyed by a generated int64 id. It is safe for
// concurrent use.
type Store[T any] struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[int64]T)}
}

// Create stores the value built for the next id.
func (s *Store[T]) Create(build func(id int64) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	v := build(s.seq)
	s.items[s.seq] = v
	return v
}

// Get returns the value stored under id.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	return v, ok
}

// Update applies fn to the value stored under id.
func (s *Store[T]) Update(id int64, fn func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok {
		return v, false
	}
	fn(&v)
	s.items[id] = v
	return v, true
}

// Delete removes id and reports whether it was present.
func (s *Store[T]) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// List returns the values accepted by keep, ordered by id. A nil keep
// accepts every value.
func (s *Store[T]) List(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v := s.items[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}
