// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for photo
// payload operations. Photo rows live in the database and travel in
// snapshots; the image bytes themselves live here, keyed by content hash,
// and transfer out of band. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket lifecycle (see EnsureBucket).
//   - PutObject: uploads a payload under its hash.
//   - GetObject: retrieves a payload as a stream.
//   - StatObject: presence check without download (dedup, doctor).
//   - ListObjects: lists payloads (orphan audit).
//   - RemoveObject: deletes a payload.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket)
package storage
