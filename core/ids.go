// Package core provides the identifier types shared by all entigo packages.
package core

// EntityID is the unique handle for one logical entity.
// IDs are assigned monotonically starting at 1 and are never reused,
// even after the entity has been removed and purged.
type EntityID uint64

// NilEntityID is never issued by an Allocator. Callers may use it as a
// "no entity" sentinel.
const NilEntityID EntityID = 0

// Allocator issues strictly increasing entity identifiers.
//
// The zero value is not ready for use; construct with NewAllocator.
// Overflow at the maximum uint64 value is out of scope: the allocator
// assumes lifetime usage stays well below 2^64 identifiers.
type Allocator struct {
	next EntityID
}

// NewAllocator creates an allocator whose first issued ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the current counter value and advances it by one.
func (a *Allocator) Next() EntityID {
	id := a.next
	a.next++
	return id
}

// Peek returns the ID that the next call to Next will issue,
// without advancing the counter.
func (a *Allocator) Peek() EntityID {
	return a.next
}

// Restore resets the counter to next. It is intended for snapshot
// reconstruction only; rewinding the counter on a live allocator breaks
// the never-reuse guarantee.
func (a *Allocator) Restore(next EntityID) {
	a.next = next
}
