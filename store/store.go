// Package store provides the per-type component storage backends.
//
// A Store owns every instance of one component type. Two interchangeable
// implementations exist behind the same contract:
//
//   - Dense: index-addressed, slot-array backed. Use when most entities are
//     expected to hold the component and lookup latency matters more than
//     memory density.
//   - Sparse: key-addressed, map backed. Use when few entities hold the
//     component, or IDs are sparse, and memory density matters more than a
//     guaranteed O(1) worst case.
//
// Stores never fail: lookups report absence with ok=false, Set always
// accommodates the ID, and Remove on an unknown ID is a no-op.
package store

import (
	"iter"

	"github.com/hupe1980/entigo/core"
)

// Store is the capability contract every backend satisfies. A Store holds
// at most one component per entity and exclusively owns the values it
// stores: Set copies the value in, and pointers returned by GetMut must not
// be retained across subsequent Set calls.
type Store[T any] interface {
	// Get returns a copy of the component for id, or ok=false if absent.
	Get(id core.EntityID) (T, bool)

	// GetMut returns a handle permitting in-place mutation of the component
	// for id, or ok=false if absent.
	GetMut(id core.EntityID) (*T, bool)

	// All yields every (id, component) pair currently stored. Dense stores
	// yield in ascending ID order; sparse stores yield in unspecified order
	// that callers must not rely on.
	All() iter.Seq2[core.EntityID, T]

	// Set inserts or overwrites the component for id. It never fails.
	Set(id core.EntityID, c T)

	// Remove physically deletes the component for id, if present.
	Remove(id core.EntityID)

	// Len returns the number of components currently stored.
	Len() int

	// Clear removes all components.
	Clear()
}
