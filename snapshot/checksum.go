package snapshot

import "hash/crc32"

// Snapshots carry a CRC32 (IEEE polynomial) checksum of the stored body.
// CRC32 is fast, hardware-accelerated on modern CPUs, and good at catching
// accidental storage corruption. It is not cryptographically secure and
// must not be relied on for tamper detection.

// Checksum computes the CRC32 (IEEE) checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
