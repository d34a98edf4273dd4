// Package persistence selects the SnapshotStore driver named in configuration.
package persistence

import (
	"context"
	"fmt"

	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/badger"
	"mediavault/internal/infrastructure/persistence/file"
	"mediavault/internal/infrastructure/persistence/firestore"
	"mediavault/internal/infrastructure/persistence/gcs"
	"mediavault/internal/infrastructure/persistence/memory"
	"mediavault/internal/infrastructure/persistence/minio"
	"mediavault/internal/infrastructure/persistence/postgres"
	"mediavault/internal/infrastructure/persistence/s3"
	"mediavault/internal/infrastructure/persistence/sqlite"
	"mediavault/pkg/config"
)

// Open returns the store for cfg.Driver; an empty driver means "file".
func Open(ctx context.Context, cfg config.StorageConfig) (repository.SnapshotStore, error) {
	switch cfg.Driver {
	case "", file.Driver:
		return file.New(cfg.DataFile), nil
	case memory.Driver:
		return memory.New(), nil
	case sqlite.Driver:
		return sqlite.New(ctx, cfg.SQLitePath)
	case postgres.Driver:
		return postgres.New(ctx, cfg.PostgresDSN)
	case badger.Driver:
		return badger.New(badger.Config{Path: cfg.BadgerPath})
	case firestore.Driver:
		return firestore.New(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
	case gcs.Driver:
		return gcs.New(ctx, cfg.GCSBucket, cfg.GCSPrefix)
	case s3.Driver:
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case minio.Driver:
		return minio.New(ctx, minio.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			Region:    cfg.MinioRegion,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
