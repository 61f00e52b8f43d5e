// Package entigo provides an embedded, in-memory typed component store for Go.
//
// Entigo associates opaque numeric entity identifiers with zero or more typed
// data records ("components"), one storage backend per component type. It is
// the storage substrate beneath a composition pattern: callers model domain
// objects as bags of typed attributes rather than as class hierarchies. There
// is deliberately no behavioral/system layer and no query language beyond
// "all entities holding component type T".
//
// # Quick Start
//
//	type Position struct{ X, Y int }
//	type Health struct{ HP int }
//
//	pool := entigo.New()
//	entigo.Register(pool, store.NewDense[Position]())
//	entigo.Register(pool, store.NewSparse[Health]())
//
//	e := pool.Spawn()
//	entigo.Set(pool, e, Position{X: 4, Y: 2})
//	entigo.Set(pool, e, Health{HP: 100})
//
//	if pos, ok := entigo.Get[Position](pool, e); ok {
//	    fmt.Println(pos.X, pos.Y)
//	}
//
// # Storage Backends
//
// Each component type is wired to exactly one backend, chosen when the pool
// is assembled:
//
//   - store.Dense: index-addressed slot array. Use when most entities hold
//     the component and lookup latency matters more than memory density.
//   - store.Sparse: map from ID to component. Use when few entities hold the
//     component, or IDs are sparse, and memory density matters more.
//
// # Removal Model
//
// Removal is soft and cleanup is batched. RemoveEntity only marks the ID in
// a tombstone set; the entity immediately disappears from Get/GetMut/Set/All
// for every component type, but its backend data stays in place until
// CleanupRemoved sweeps every backend in one pass. ForceGet bypasses the
// tombstone check and is the only way to observe data of a soft-removed,
// not-yet-purged entity (diagnostics and migration windows, not steady-state
// use).
//
//	pool.RemoveEntity(e)          // cheap: tombstone only
//	_, ok := entigo.Get[Position](pool, e)       // ok == false
//	_, ok = entigo.ForceGet[Position](pool, e)   // ok == true, data still there
//	pool.CleanupRemoved()         // physical purge across all backends
//
// IDs are issued monotonically starting at 1 and are never reused, even
// after cleanup. ID 0 is reserved as a "no entity" sentinel.
//
// # Snapshots
//
// The whole pool (allocator counter, tombstone set, every backend's
// contents) round-trips through a single snapshot for exact reconstruction:
//
//	var buf bytes.Buffer
//	err := pool.WriteSnapshot(&buf)
//
//	restored := entigo.New()
//	entigo.Register(restored, store.NewDense[Position]())
//	entigo.Register(restored, store.NewSparse[Health]())
//	err = restored.ReadSnapshot(&buf)
//
// Snapshots can be kept in any blobstore.Store (local filesystem, S3, MinIO)
// via SaveSnapshot/LoadSnapshot.
//
// # Concurrency
//
// A pool is exclusively owned by a single logical caller: operations are
// fully synchronous and the pool performs no internal locking. Concurrent
// mutation requires external synchronization.
package entigo
