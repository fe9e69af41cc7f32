// Package blobstore provides storage abstraction for published witness
// registry snapshots, enabling a shared derivative-witness cache across
// builds and machines.
//
// Store is the interface for reading and writing snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic writes (temp file + rename)
//   - s3.Store: Amazon S3 with managed uploads and optional upload throttling
//   - minio.Store: MinIO and other S3-compatible object storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Get(ctx, name) ([]byte, error)     // Whole-blob read
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Snapshots are small and always read whole (the format is checksummed and
// optionally compressed end to end), so the interface deliberately has no
// partial-read surface.
package blobstore
