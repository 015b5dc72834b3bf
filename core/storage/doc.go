// Package storage provides an abstraction layer for object storage services.
//
// It narrows the MinIO Go client to a simplified interface for the operations
// the inventory needs: storing photographic evidence for assets, publishing
// consolidated reports and verifying the bucket layout. The abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//   - RemoveObject: Deletes an evidence object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "inventory")
//	url := config.ObjectURL("evidence/42/3f2a.jpg")
package storage
