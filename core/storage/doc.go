// Package storage wraps the MinIO Go client for the backup mirror.
//
// The Client interface covers only what mirroring needs (bucket check, bucket creation,
// upload) so tests can substitute core/storage/mocks. Both AWS S3 and self-hosted MinIO
// endpoints work; a scheme prefix on the endpoint is stripped.
//
//	client, err := storage.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, cfg.Bucket)
package storage
