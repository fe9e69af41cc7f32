// Package minio provides a blobstore.Store implementation for MinIO and
// other S3-compatible object storage, for publishing witness snapshots to
// self-hosted caches.
package minio
