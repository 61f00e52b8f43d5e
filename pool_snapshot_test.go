package entigo_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/entigo"
	"github.com/hupe1980/entigo/blobstore"
	"github.com/hupe1980/entigo/codec"
	"github.com/hupe1980/entigo/core"
	"github.com/hupe1980/entigo/snapshot"
	"github.com/hupe1980/entigo/store"
)

// populate fills a pool with a mix of dense/sparse data and two
// soft-removed entities, returning the spawned ids.
func populate(t *testing.T, pool *entigo.Pool) []core.EntityID {
	t.Helper()

	var ids []core.EntityID
	for i := 0; i < 20; i++ {
		e := pool.Spawn()
		entigo.Set(pool, e, Position{X: int(e), Y: -int(e)})
		if i%3 == 0 {
			entigo.Set(pool, e, Velocity{X: int(e) * 10})
		}
		ids = append(ids, e)
	}
	pool.RemoveEntity(ids[4])
	pool.RemoveEntity(ids[7])
	return ids
}

// assertRestored checks that dst is an exact reconstruction of a pool built
// with populate.
func assertRestored(t *testing.T, dst *entigo.Pool, ids []core.EntityID) {
	t.Helper()

	// Tombstones survive, including their backend data.
	assert.Equal(t, uint64(2), dst.Removed())
	assert.True(t, dst.IsRemoved(ids[4]))
	assert.True(t, dst.IsRemoved(ids[7]))
	_, ok := entigo.Get[Position](dst, ids[4])
	assert.False(t, ok)
	pos, ok := entigo.ForceGet[Position](dst, ids[4])
	require.True(t, ok)
	assert.Equal(t, Position{X: int(ids[4]), Y: -int(ids[4])}, pos)

	// Live data is intact.
	for i, e := range ids {
		if e == ids[4] || e == ids[7] {
			continue
		}
		pos, ok := entigo.Get[Position](dst, e)
		require.True(t, ok, "position for %d", e)
		assert.Equal(t, Position{X: int(e), Y: -int(e)}, pos)

		vel, ok := entigo.Get[Velocity](dst, e)
		if i%3 == 0 {
			require.True(t, ok, "velocity for %d", e)
			assert.Equal(t, Velocity{X: int(e) * 10}, vel)
		} else {
			assert.False(t, ok, "velocity for %d", e)
		}
	}

	// The allocator continues where the source left off.
	assert.Equal(t, ids[len(ids)-1]+1, dst.Spawn())
}

func TestPool_SnapshotRoundTrip(t *testing.T) {
	compressions := []snapshot.Compression{
		snapshot.CompressionNone,
		snapshot.CompressionZstd,
		snapshot.CompressionLZ4,
	}

	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			src := entigo.New(entigo.WithCompression(comp))
			require.NoError(t, entigo.Register(src, store.NewDense[Position]()))
			require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
			ids := populate(t, src)

			var buf bytes.Buffer
			require.NoError(t, src.WriteSnapshot(&buf))

			dst := entigo.New()
			require.NoError(t, entigo.Register(dst, store.NewDense[Position]()))
			require.NoError(t, entigo.Register(dst, store.NewSparse[Velocity]()))
			require.NoError(t, dst.ReadSnapshot(bytes.NewReader(buf.Bytes())))

			assertRestored(t, dst, ids)
		})
	}
}

func TestPool_SnapshotPreservesDenseCapacity(t *testing.T) {
	src := entigo.New()
	dense := store.NewDense[Position]()
	require.NoError(t, entigo.Register(src, dense))

	// Force growth past the initial capacity.
	entigo.Set(src, 250, Position{X: 250})
	require.Equal(t, uint64(500), dense.Capacity())

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	dst := entigo.New()
	restored := store.NewDense[Position]()
	require.NoError(t, entigo.Register(dst, restored))
	require.NoError(t, dst.ReadSnapshot(bytes.NewReader(buf.Bytes())))

	assert.Equal(t, uint64(500), restored.Capacity())
	pos, ok := entigo.Get[Position](dst, 250)
	require.True(t, ok)
	assert.Equal(t, Position{X: 250}, pos)
}

func TestPool_SnapshotCrossCodec(t *testing.T) {
	// A snapshot written with the stdlib codec is readable by a pool
	// configured with the default codec: the header names the codec.
	src := entigo.New(entigo.WithCodec(codec.JSON{}))
	require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
	e := src.Spawn()
	entigo.Set(src, e, Velocity{X: 42})

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewSparse[Velocity]()))
	require.NoError(t, dst.ReadSnapshot(bytes.NewReader(buf.Bytes())))

	vel, ok := entigo.Get[Velocity](dst, e)
	require.True(t, ok)
	assert.Equal(t, Velocity{X: 42}, vel)
}

func TestPool_SnapshotReplacesState(t *testing.T) {
	src := entigo.New()
	require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
	e := src.Spawn()
	entigo.Set(src, e, Velocity{X: 1})

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	// The destination carries unrelated state that the restore must wipe.
	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewSparse[Velocity]()))
	for i := 0; i < 5; i++ {
		stale := dst.Spawn()
		entigo.Set(dst, stale, Velocity{X: 99})
	}
	dst.RemoveEntity(3)

	require.NoError(t, dst.ReadSnapshot(bytes.NewReader(buf.Bytes())))

	assert.Equal(t, uint64(0), dst.Removed())
	count := 0
	for range entigo.All[Velocity](dst) {
		count++
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, e+1, dst.Spawn())
}

func TestPool_SnapshotMissingRegistration(t *testing.T) {
	src := entigo.New()
	require.NoError(t, entigo.Register(src, store.NewDense[Position]()))
	require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
	e := src.Spawn()
	entigo.Set(src, e, Position{X: 1})
	entigo.Set(src, e, Velocity{X: 1})

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	// Velocity is not registered on the destination.
	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewDense[Position]()))

	err := dst.ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, entigo.ErrNotRegistered)
}

func TestPool_SnapshotKindMismatch(t *testing.T) {
	src := entigo.New()
	require.NoError(t, entigo.Register(src, store.NewDense[Position]()))
	e := src.Spawn()
	entigo.Set(src, e, Position{X: 1})

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	// Same type, different backend kind.
	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewSparse[Position]()))

	err := dst.ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, entigo.ErrStoreMismatch)
}

func TestPool_SnapshotCorruptedData(t *testing.T) {
	src := entigo.New()
	require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
	e := src.Spawn()
	entigo.Set(src, e, Velocity{X: 1})

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(&buf))

	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF

	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewSparse[Velocity]()))

	err := dst.ReadSnapshot(bytes.NewReader(data))
	require.ErrorIs(t, err, snapshot.ErrChecksumMismatch)
}

func TestPool_SaveLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemory()

	src := entigo.New()
	require.NoError(t, entigo.Register(src, store.NewDense[Position]()))
	require.NoError(t, entigo.Register(src, store.NewSparse[Velocity]()))
	ids := populate(t, src)

	require.NoError(t, src.SaveSnapshot(ctx, bs, "pool-001.snap"))

	names, err := bs.List(ctx, "pool-")
	require.NoError(t, err)
	require.Equal(t, []string{"pool-001.snap"}, names)

	dst := entigo.New()
	require.NoError(t, entigo.Register(dst, store.NewDense[Position]()))
	require.NoError(t, entigo.Register(dst, store.NewSparse[Velocity]()))
	require.NoError(t, dst.LoadSnapshot(ctx, bs, "pool-001.snap"))

	assertRestored(t, dst, ids)
}

func TestPool_LoadSnapshotNotFound(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemory()

	pool := entigo.New()
	require.NoError(t, entigo.Register(pool, store.NewSparse[Velocity]()))

	err := pool.LoadSnapshot(ctx, bs, "missing.snap")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
