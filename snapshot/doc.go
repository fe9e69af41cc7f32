// Package snapshot serializes witness registries to a self-describing
// binary format so derivative availability can be cached across builds
// and shared through a blobstore.
//
// File layout:
//
//	magic (uint32) | version (uint32) | codec name (uint16 len + bytes) |
//	compression (uint8) | uncompressed length (uint64) |
//	payload length (uint64) | payload | CRC32 footer (uint32)
//
// The payload is a codec-encoded list of witness records, optionally
// compressed with zstd (default) or lz4. The CRC32 footer covers the
// header and payload; a mismatch fails the load before any decoding.
//
// Constraints round-trip through their textual form and are restored as
// ir.TextConstraint, which is sufficient for cache-identity purposes.
package snapshot
