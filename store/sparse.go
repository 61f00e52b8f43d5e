package store

import (
	"iter"

	"github.com/hupe1980/entigo/core"
)

// Sparse is a key-addressed Store: a map from ID to component, holding
// entries only for IDs that currently have the component. There is no
// bounds concept; any ID value is representable.
type Sparse[T any] struct {
	m map[core.EntityID]*T
}

var _ Store[int] = (*Sparse[int])(nil)

// NewSparse creates an empty Sparse store.
func NewSparse[T any]() *Sparse[T] {
	return &Sparse[T]{
		m: make(map[core.EntityID]*T),
	}
}

// Get returns a copy of the component mapped to id.
func (s *Sparse[T]) Get(id core.EntityID) (T, bool) {
	if p, ok := s.m[id]; ok {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns the component mapped to id for in-place mutation.
func (s *Sparse[T]) GetMut(id core.EntityID) (*T, bool) {
	p, ok := s.m[id]
	return p, ok
}

// Set inserts or overwrites the mapping for id.
func (s *Sparse[T]) Set(id core.EntityID, c T) {
	s.m[id] = &c
}

// Remove deletes the mapping for id, if present.
func (s *Sparse[T]) Remove(id core.EntityID) {
	delete(s.m, id)
}

// All yields every mapping in map iteration order, which is unspecified.
func (s *Sparse[T]) All() iter.Seq2[core.EntityID, T] {
	return func(yield func(core.EntityID, T) bool) {
		for id, p := range s.m {
			if !yield(id, *p) {
				return
			}
		}
	}
}

// Len returns the number of mappings.
func (s *Sparse[T]) Len() int {
	return len(s.m)
}

// Clear removes all mappings.
func (s *Sparse[T]) Clear() {
	s.m = make(map[core.EntityID]*T)
}
