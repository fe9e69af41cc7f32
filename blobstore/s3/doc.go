// Package s3 provides an Amazon S3 implementation of blobstore.Store for
// published witness snapshots, plus a DynamoDB-backed commit store that
// gives the "current snapshot" pointer the compare-and-swap semantics S3
// lacks, so concurrent publishers cannot clobber each other.
package s3
