// Package tombstone tracks entity IDs that are marked removed but not yet
// purged from the storage backends.
//
// Membership in the set is the sole signal that ordinary lookups must treat
// an ID as absent, regardless of whether backend data for it still physically
// exists. A separate sweep (Pool.CleanupRemoved) performs the real purge.
package tombstone

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/entigo/core"
)

// Set is a compressed bitmap of soft-removed entity IDs.
// It wraps a 64-bit Roaring Bitmap.
type Set struct {
	rb *roaring64.Bitmap
}

// New creates an empty tombstone set.
func New() *Set {
	return &Set{
		rb: roaring64.NewBitmap(),
	}
}

// Add marks id as removed. Adding an already-tracked ID is a no-op.
func (s *Set) Add(id core.EntityID) {
	s.rb.Add(uint64(id))
}

// Contains reports whether id is currently marked removed.
func (s *Set) Contains(id core.EntityID) bool {
	return s.rb.Contains(uint64(id))
}

// Clear removes all tracked IDs.
func (s *Set) Clear() {
	s.rb.Clear()
}

// IsEmpty returns true if no IDs are tracked.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of tracked IDs.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Iterator yields every tracked ID in ascending order.
func (s *Set) Iterator() iter.Seq[core.EntityID] {
	return func(yield func(core.EntityID) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(core.EntityID(it.Next())) {
				return
			}
		}
	}
}

// MarshalBinary serializes the set in the portable Roaring format.
func (s *Set) MarshalBinary() ([]byte, error) {
	return s.rb.MarshalBinary()
}

// UnmarshalBinary replaces the set contents with the serialized data.
func (s *Set) UnmarshalBinary(data []byte) error {
	rb := roaring64.NewBitmap()
	if err := rb.UnmarshalBinary(data); err != nil {
		return err
	}
	s.rb = rb
	return nil
}
