// Package snapshot implements the binary envelope for pool snapshots.
//
// A snapshot file is a small self-describing header followed by a single
// body blob. The header records the codec that produced the body, the
// compression applied to it, and a CRC32 integrity checksum. The body
// itself is opaque to this package; the root entigo package encodes and
// decodes it via the configured codec.
package snapshot

import "errors"

const (
	// MagicNumber identifies entigo snapshot files (ASCII: "ENT0").
	MagicNumber = 0x454E5430
	// Version is the current envelope format version (v1.0.0).
	Version = 0x00010000

	// maxCodecNameLen bounds the codec name field in the header.
	maxCodecNameLen = 255
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported snapshot version")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrCodecNameTooLong   = errors.New("codec name too long")
)

// Compression selects how the snapshot body is compressed on disk.
type Compression uint8

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses the body with Zstandard.
	CompressionZstd
	// CompressionLZ4 compresses the body with the LZ4 frame format.
	CompressionLZ4
)

// String returns a human-readable name for the compression mode.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// header is the fixed-layout prelude of every snapshot, written
// little-endian. The codec name follows as a length-prefixed string.
type header struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Checksum    uint32 // CRC32 (IEEE) of the stored (compressed) body
	BodyLen     uint64 // stored body length in bytes
}
