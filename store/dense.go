package store

import (
	"iter"

	"github.com/hupe1980/entigo/core"
)

// initialDenseCapacity is the slot count every Dense store starts with.
const initialDenseCapacity = 100

// Dense is an index-addressed Store: components live in a slot array indexed
// directly by the numeric ID value, not compacted or remapped. Any ID at or
// beyond the current capacity is treated as absent, never as an error.
type Dense[T any] struct {
	capacity core.EntityID
	slots    []*T
	count    int
}

var _ Store[int] = (*Dense[int])(nil)

// NewDense creates an empty Dense store with the default initial capacity.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{
		capacity: initialDenseCapacity,
		slots:    make([]*T, initialDenseCapacity),
	}
}

// Get returns a copy of the component at slot id.
func (d *Dense[T]) Get(id core.EntityID) (T, bool) {
	if p, ok := d.GetMut(id); ok {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns the slot at id for in-place mutation. The pointer is
// invalidated by the next Set that triggers growth.
func (d *Dense[T]) GetMut(id core.EntityID) (*T, bool) {
	if id >= d.capacity {
		return nil, false
	}
	p := d.slots[id]
	if p == nil {
		return nil, false
	}
	return p, true
}

// Set writes the component into slot id, growing the slot array when id is
// out of range. The new capacity is id*2, relative to the incoming ID rather
// than the current capacity; growth only fires when id >= capacity, so
// capacity never shrinks.
func (d *Dense[T]) Set(id core.EntityID, c T) {
	if id >= d.capacity {
		grown := make([]*T, id*2)
		copy(grown, d.slots)
		d.slots = grown
		d.capacity = id * 2
	}
	if d.slots[id] == nil {
		d.count++
	}
	d.slots[id] = &c
}

// Remove clears slot id. Out-of-range IDs are a no-op.
func (d *Dense[T]) Remove(id core.EntityID) {
	if id >= d.capacity {
		return
	}
	if d.slots[id] != nil {
		d.count--
		d.slots[id] = nil
	}
}

// All yields every occupied slot in ascending ID order.
func (d *Dense[T]) All() iter.Seq2[core.EntityID, T] {
	return func(yield func(core.EntityID, T) bool) {
		for i, p := range d.slots {
			if p == nil {
				continue
			}
			if !yield(core.EntityID(i), *p) {
				return
			}
		}
	}
}

// Len returns the number of occupied slots.
func (d *Dense[T]) Len() int {
	return d.count
}

// Clear empties every slot and resets the store to its initial capacity.
func (d *Dense[T]) Clear() {
	d.capacity = initialDenseCapacity
	d.slots = make([]*T, initialDenseCapacity)
	d.count = 0
}

// Capacity returns the current slot count.
func (d *Dense[T]) Capacity() uint64 {
	return uint64(d.capacity)
}

// Reserve grows the slot array to exactly capacity slots if it is currently
// smaller. It exists so snapshot restore can reproduce capacity exactly;
// ordinary callers rely on Set growth instead.
func (d *Dense[T]) Reserve(capacity uint64) {
	if core.EntityID(capacity) <= d.capacity {
		return
	}
	grown := make([]*T, capacity)
	copy(grown, d.slots)
	d.slots = grown
	d.capacity = core.EntityID(capacity)
}
