package entigo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/entigo/blobstore"
	"github.com/hupe1980/entigo/codec"
	"github.com/hupe1980/entigo/core"
	"github.com/hupe1980/entigo/snapshot"
)

// snapshotDoc is the codec-encoded snapshot body: the full pool state.
type snapshotDoc struct {
	NextID  uint64                  `json:"next_id"`
	Removed []byte                  `json:"removed,omitempty"` // portable Roaring bytes
	Stores  map[string]storeSection `json:"stores"`
}

// storeSection is the snapshot of one registered backend.
type storeSection struct {
	Kind     string       `json:"kind"`
	Capacity uint64       `json:"capacity,omitempty"` // dense backends only
	Entries  []storeEntry `json:"entries,omitempty"`
}

// storeEntry is one (id, component) pair; the component is encoded with the
// pool's codec.
type storeEntry struct {
	ID        uint64 `json:"id"`
	Component []byte `json:"component"`
}

// WriteSnapshot writes the whole pool (allocator counter, tombstone set,
// every backend's contents) to w as one snapshot suitable for exact
// reconstruction with ReadSnapshot.
func (p *Pool) WriteSnapshot(w io.Writer) error {
	start := time.Now()
	n, err := p.writeSnapshot(w, start)
	p.logger.LogSnapshot(n, err)
	return err
}

func (p *Pool) writeSnapshot(w io.Writer, start time.Time) (int, error) {
	doc := snapshotDoc{
		NextID: uint64(p.alloc.Peek()),
		Stores: make(map[string]storeSection, len(p.order)),
	}

	if !p.removed.IsEmpty() {
		removed, err := p.removed.MarshalBinary()
		if err != nil {
			p.metrics.RecordSnapshot(0, time.Since(start), err)
			return 0, fmt.Errorf("encode tombstone set: %w", err)
		}
		doc.Removed = removed
	}

	for _, reg := range p.order {
		sec, err := reg.erased.marshal(p.codec)
		if err != nil {
			p.metrics.RecordSnapshot(0, time.Since(start), err)
			return 0, fmt.Errorf("snapshot store %s: %w", reg.name, err)
		}
		sec.Kind = reg.kind
		doc.Stores[reg.name] = sec
	}

	body, err := p.codec.Marshal(doc)
	if err != nil {
		p.metrics.RecordSnapshot(0, time.Since(start), err)
		return 0, fmt.Errorf("encode snapshot body: %w", err)
	}

	err = snapshot.Write(w, p.codec.Name(), p.compression, body)
	p.metrics.RecordSnapshot(len(body), time.Since(start), err)
	return len(body), err
}

// ReadSnapshot replaces the pool state with the snapshot read from r. The
// pool must carry the same registrations (types and backend kinds) that
// produced the snapshot. On error the pool contents are undefined; rebuild
// and retry.
func (p *Pool) ReadSnapshot(r io.Reader) error {
	start := time.Now()
	err := p.readSnapshot(r)
	p.metrics.RecordRestore(time.Since(start), err)
	p.logger.LogRestore(len(p.order), err)
	return err
}

func (p *Pool) readSnapshot(r io.Reader) error {
	codecName, body, err := snapshot.Read(r)
	if err != nil {
		return err
	}
	c, ok := codec.ByName(codecName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	var doc snapshotDoc
	if err := c.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode snapshot body: %w", err)
	}

	for name := range doc.Stores {
		if !p.isRegisteredName(name) {
			return fmt.Errorf("%w: %s", ErrNotRegistered, name)
		}
	}

	for _, reg := range p.order {
		sec, ok := doc.Stores[reg.name]
		if !ok {
			return fmt.Errorf("%w: snapshot has no section for %s", ErrStoreMismatch, reg.name)
		}
		if sec.Kind != reg.kind {
			return fmt.Errorf("%w: %s stored as %s, registered as %s",
				ErrStoreMismatch, reg.name, sec.Kind, reg.kind)
		}
		if err := reg.erased.unmarshal(c, sec); err != nil {
			return fmt.Errorf("restore store %s: %w", reg.name, err)
		}
	}

	if len(doc.Removed) > 0 {
		if err := p.removed.UnmarshalBinary(doc.Removed); err != nil {
			return fmt.Errorf("decode tombstone set: %w", err)
		}
	} else {
		p.removed.Clear()
	}

	p.alloc.Restore(core.EntityID(doc.NextID))
	return nil
}

func (p *Pool) isRegisteredName(name string) bool {
	for _, reg := range p.order {
		if reg.name == name {
			return true
		}
	}
	return false
}

// SaveSnapshot writes a snapshot and stores it as a named blob.
func (p *Pool) SaveSnapshot(ctx context.Context, bs blobstore.Store, name string) error {
	var buf bytes.Buffer
	if err := p.WriteSnapshot(&buf); err != nil {
		return err
	}
	if err := bs.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("store snapshot %s: %w", name, err)
	}
	p.logger.Info("snapshot saved", "name", name, "bytes", buf.Len())
	return nil
}

// LoadSnapshot fetches a named snapshot blob and restores the pool from it.
func (p *Pool) LoadSnapshot(ctx context.Context, bs blobstore.Store, name string) error {
	data, err := bs.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("fetch snapshot %s: %w", name, err)
	}
	return p.ReadSnapshot(bytes.NewReader(data))
}
