// Package minio persists the catalog as one object in a MinIO bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/codec"
)

const Driver = "minio"

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string // skips the bucket location lookup when set
}

type Store struct {
	client *minio.Client
	bucket string
}

// New connects and creates the bucket when it does not exist yet.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, codec.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get catalog object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read catalog object: %w", err)
	}
	return codec.Decode(data)
}

func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	data, err := codec.Encode(doc)
	if err != nil {
		return err
	}
	opts := minio.PutObjectOptions{ContentType: codec.ContentType}
	if _, err := s.client.PutObject(ctx, s.bucket, codec.ObjectName, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("upload catalog object: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
