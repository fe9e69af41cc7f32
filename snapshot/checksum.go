package snapshot

import "hash/crc32"

// Snapshot integrity uses CRC32 (IEEE polynomial): fast, hardware
// accelerated on modern CPUs, and good at detecting storage corruption.
// It is not cryptographically secure; do not rely on it for tamper
// detection.

var crcTable = crc32.MakeTable(crc32.IEEE)

// checksum computes the CRC32 of data.
func checksum(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}
