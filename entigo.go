package entigo

import (
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/hupe1980/entigo/codec"
	"github.com/hupe1980/entigo/core"
	"github.com/hupe1980/entigo/snapshot"
	"github.com/hupe1980/entigo/store"
	"github.com/hupe1980/entigo/tombstone"
)

// Pool is the composition facade: it owns the identifier allocator, the
// tombstone set, and one storage backend per registered component type, and
// routes typed operations to the right backend.
//
// Dispatch is resolved per component type at registration time through a
// type-keyed registry; the generic top-level functions (Get, Set, ...) give
// static typing at the call site and recover the concrete backend with a
// checked cast.
//
// A Pool is exclusively owned by a single logical caller and performs no
// internal locking.
type Pool struct {
	alloc       *core.Allocator
	removed     *tombstone.Set
	regs        map[reflect.Type]*registration
	order       []*registration // registration order; sweep and snapshot iterate this
	codec       codec.Codec
	compression snapshot.Compression
	logger      *Logger
	metrics     MetricsCollector
}

// registration ties one component type to its backend.
type registration struct {
	typ    reflect.Type
	name   string // stable snapshot section key
	kind   string // "dense", "sparse", or "custom"
	typed  any    // store.Store[T]; recovered via checked cast
	erased erasedStore
}

// erasedStore is the type-erased view of a backend used for operations that
// span all registered types (cleanup sweep, snapshots).
type erasedStore interface {
	removeID(id core.EntityID)
	marshal(c codec.Codec) (storeSection, error)
	unmarshal(c codec.Codec, sec storeSection) error
}

// New creates an empty pool. Component types are wired to backends with
// Register before use.
func New(opts ...Option) *Pool {
	o := options{
		codec:       codec.Default,
		compression: snapshot.CompressionZstd,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}

	return &Pool{
		alloc:       core.NewAllocator(),
		removed:     tombstone.New(),
		regs:        make(map[reflect.Type]*registration),
		codec:       o.codec,
		compression: o.compression,
		logger:      o.logger,
		metrics:     o.metrics,
	}
}

// Register wires component type T to the given backend. Each type is wired
// to exactly one backend; registering the same type twice returns
// ErrAlreadyRegistered.
func Register[T any](p *Pool, s store.Store[T]) error {
	t := typeOf[T]()
	if _, exists := p.regs[t]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
	}

	reg := &registration{
		typ:    t,
		name:   t.String(),
		kind:   storeKind(s),
		typed:  s,
		erased: erased[T]{s: s},
	}
	p.regs[t] = reg
	p.order = append(p.order, reg)

	p.logger.Debug("component type registered", "type", reg.name, "store", reg.kind)
	return nil
}

// Spawn issues a new entity identifier. The entity is "born" with no
// components; attach them with Set.
func (p *Pool) Spawn() core.EntityID {
	id := p.alloc.Next()
	p.metrics.RecordSpawn()
	return id
}

// RemoveEntity marks id as removed. The entity immediately disappears from
// Get/GetMut/Set/All for every component type, but backend data stays in
// place until CleanupRemoved runs. Idempotent; touches no backend.
func (p *Pool) RemoveEntity(id core.EntityID) {
	p.removed.Add(id)
	p.metrics.RecordRemove()
}

// IsRemoved reports whether id is currently soft-removed.
func (p *Pool) IsRemoved(id core.EntityID) bool {
	return p.removed.Contains(id)
}

// Removed returns the number of soft-removed entities awaiting cleanup.
func (p *Pool) Removed() uint64 {
	return p.removed.Cardinality()
}

// CleanupRemoved purges every tracked ID from every registered backend,
// then clears the tombstone set. Cost is proportional to
// (soft-removed entities x registered types); invoke it periodically rather
// than after every removal.
func (p *Pool) CleanupRemoved() {
	start := time.Now()
	purged := int(p.removed.Cardinality())

	for id := range p.removed.Iterator() {
		for _, reg := range p.order {
			reg.erased.removeID(id)
		}
	}
	p.removed.Clear()

	p.metrics.RecordCleanup(purged, time.Since(start))
	p.logger.LogCleanup(purged, len(p.order))
}

// Get returns a copy of the component of type T attached to id. Absent if
// the type is unregistered, the component was never set, or the entity is
// soft-removed.
func Get[T any](p *Pool, id core.EntityID) (T, bool) {
	var zero T
	if p.removed.Contains(id) {
		p.metrics.RecordLookup(false)
		return zero, false
	}
	s, ok := storeFor[T](p)
	if !ok {
		p.metrics.RecordLookup(false)
		return zero, false
	}
	v, ok := s.Get(id)
	p.metrics.RecordLookup(ok)
	return v, ok
}

// GetMut returns a handle permitting in-place mutation of the component of
// type T attached to id, under the same visibility rules as Get.
func GetMut[T any](p *Pool, id core.EntityID) (*T, bool) {
	if p.removed.Contains(id) {
		p.metrics.RecordLookup(false)
		return nil, false
	}
	s, ok := storeFor[T](p)
	if !ok {
		p.metrics.RecordLookup(false)
		return nil, false
	}
	v, ok := s.GetMut(id)
	p.metrics.RecordLookup(ok)
	return v, ok
}

// ForceGet bypasses the tombstone check entirely and queries the backend
// directly. It is the only way to observe data belonging to a soft-removed
// but not-yet-purged entity. Intended for diagnostics and migration windows,
// not steady-state use.
func ForceGet[T any](p *Pool, id core.EntityID) (T, bool) {
	var zero T
	s, ok := storeFor[T](p)
	if !ok {
		p.metrics.RecordLookup(false)
		return zero, false
	}
	v, ok := s.Get(id)
	p.metrics.RecordLookup(ok)
	return v, ok
}

// Set attaches or overwrites the component of type T for id. Writes to a
// soft-removed entity are suppressed: the entity is logically dead even
// though cleanup has not run yet. No-op for unregistered types.
func Set[T any](p *Pool, id core.EntityID, c T) {
	if p.removed.Contains(id) {
		p.metrics.RecordSet(true)
		return
	}
	s, ok := storeFor[T](p)
	if !ok {
		p.metrics.RecordSet(true)
		return
	}
	s.Set(id, c)
	p.metrics.RecordSet(false)
}

// Remove physically deletes the component of type T for id. No-op when the
// entity is soft-removed (cleanup will purge it anyway) or the type is
// unregistered.
func Remove[T any](p *Pool, id core.EntityID) {
	if p.removed.Contains(id) {
		return
	}
	if s, ok := storeFor[T](p); ok {
		s.Remove(id)
	}
}

// All yields every (id, component) pair of type T, skipping soft-removed
// entities. Dense backends yield in ascending ID order; sparse backends in
// unspecified order.
func All[T any](p *Pool) iter.Seq2[core.EntityID, T] {
	return func(yield func(core.EntityID, T) bool) {
		s, ok := storeFor[T](p)
		if !ok {
			return
		}
		for id, c := range s.All() {
			if p.removed.Contains(id) {
				continue
			}
			if !yield(id, c) {
				return
			}
		}
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// storeFor recovers the typed backend for T from the registry.
func storeFor[T any](p *Pool) (store.Store[T], bool) {
	reg, ok := p.regs[typeOf[T]()]
	if !ok {
		return nil, false
	}
	s, ok := reg.typed.(store.Store[T])
	return s, ok
}

// storeKind names the backend implementation for snapshot sections.
func storeKind[T any](s store.Store[T]) string {
	switch s.(type) {
	case *store.Dense[T]:
		return "dense"
	case *store.Sparse[T]:
		return "sparse"
	default:
		return "custom"
	}
}

// erased adapts a typed backend to the type-erased view.
type erased[T any] struct {
	s store.Store[T]
}

func (e erased[T]) removeID(id core.EntityID) { e.s.Remove(id) }

func (e erased[T]) marshal(c codec.Codec) (storeSection, error) {
	var sec storeSection
	if d, ok := e.s.(interface{ Capacity() uint64 }); ok {
		sec.Capacity = d.Capacity()
	}
	for id, comp := range e.s.All() {
		data, err := c.Marshal(comp)
		if err != nil {
			return storeSection{}, fmt.Errorf("encode component %d: %w", id, err)
		}
		sec.Entries = append(sec.Entries, storeEntry{ID: uint64(id), Component: data})
	}
	return sec, nil
}

func (e erased[T]) unmarshal(c codec.Codec, sec storeSection) error {
	e.s.Clear()
	if sec.Capacity > 0 {
		if d, ok := e.s.(interface{ Reserve(capacity uint64) }); ok {
			d.Reserve(sec.Capacity)
		}
	}
	for _, ent := range sec.Entries {
		var comp T
		if err := c.Unmarshal(ent.Component, &comp); err != nil {
			return fmt.Errorf("decode component %d: %w", ent.ID, err)
		}
		e.s.Set(core.EntityID(ent.ID), comp)
	}
	return nil
}
