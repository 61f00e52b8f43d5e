// Package s3 provides an Amazon S3 implementation of blobstore.Store,
// plus an optional DynamoDB-backed catalog for tracking the latest snapshot.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("pools/game/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = pool.SaveSnapshot(ctx, store, "snap-000001")
//
// # Features
//
//   - Multipart uploads for large snapshots via the S3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Atomic latest-snapshot commits through a DynamoDB catalog
package s3
