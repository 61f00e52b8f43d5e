// Package blobstore provides storage abstraction for entigo snapshots.
//
// Snapshots are small, immutable, written and read whole, so the interface
// is deliberately coarse: Put/Get entire blobs by name. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - Memory: in-memory map, for tests
//   - Local: local filesystem with atomic writes
//   - s3.Store: Amazon S3 (optionally with a DynamoDB-backed catalog)
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store reads and writes whole blobs by name.
type Store interface {
	// Put writes a blob atomically, overwriting any existing blob with
	// the same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the full contents of a blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix,
	// sorted lexically.
	List(ctx context.Context, prefix string) ([]string, error)
}
