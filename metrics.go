package entigo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordSpawn is called after each Spawn.
	RecordSpawn()

	// RecordLookup is called after each Get/GetMut/ForceGet.
	// found is false when the result was absent.
	RecordLookup(found bool)

	// RecordSet is called after each Set. suppressed is true when the write
	// was dropped because the entity is soft-removed.
	RecordSet(suppressed bool)

	// RecordRemove is called after each RemoveEntity.
	RecordRemove()

	// RecordCleanup is called after each CleanupRemoved sweep.
	// purged is the number of tracked IDs that were swept.
	RecordCleanup(purged int, duration time.Duration)

	// RecordSnapshot is called after each snapshot write.
	// bytes is the encoded body size, err is nil if successful.
	RecordSnapshot(bytes int, duration time.Duration, err error)

	// RecordRestore is called after each snapshot restore.
	RecordRestore(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSpawn()                                  {}
func (NoopMetricsCollector) RecordLookup(bool)                             {}
func (NoopMetricsCollector) RecordSet(bool)                                {}
func (NoopMetricsCollector) RecordRemove()                                 {}
func (NoopMetricsCollector) RecordCleanup(int, time.Duration)              {}
func (NoopMetricsCollector) RecordSnapshot(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordRestore(time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SpawnCount         atomic.Int64
	LookupCount        atomic.Int64
	LookupMisses       atomic.Int64
	SetCount           atomic.Int64
	SetSuppressed      atomic.Int64
	RemoveCount        atomic.Int64
	CleanupCount       atomic.Int64
	CleanupPurged      atomic.Int64
	CleanupTotalNanos  atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotBytes      atomic.Int64
	RestoreCount       atomic.Int64
	RestoreErrors      atomic.Int64
	RestoreTotalNanos  atomic.Int64
}

// RecordSpawn implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSpawn() {
	b.SpawnCount.Add(1)
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(found bool) {
	b.LookupCount.Add(1)
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(suppressed bool) {
	b.SetCount.Add(1)
	if suppressed {
		b.SetSuppressed.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove() {
	b.RemoveCount.Add(1)
}

// RecordCleanup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCleanup(purged int, duration time.Duration) {
	b.CleanupCount.Add(1)
	b.CleanupPurged.Add(int64(purged))
	b.CleanupTotalNanos.Add(duration.Nanoseconds())
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(bytes int, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotBytes.Add(int64(bytes))
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// RecordRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestore(duration time.Duration, err error) {
	b.RestoreCount.Add(1)
	b.RestoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RestoreErrors.Add(1)
	}
}
