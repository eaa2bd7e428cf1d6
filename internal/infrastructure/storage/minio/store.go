// Package minio stores raw lease documents in S3-compatible object storage.
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// DocumentStore reads and writes lease document bytes.
type DocumentStore struct {
	client *minio.Client
	bucket string
}

// NewDocumentStore connects to the object store and creates the configured
// bucket when it does not exist yet.
func NewDocumentStore(ctx context.Context, cfg config.MinIOConfig) (*DocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError, "minio connect")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
			fmt.Sprintf("check bucket %s", cfg.Bucket))
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
				fmt.Sprintf("create bucket %s", cfg.Bucket))
		}
	}

	return &DocumentStore{client: client, bucket: cfg.Bucket}, nil
}

// Put streams document bytes into the bucket under the given key.
func (s *DocumentStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
			fmt.Sprintf("put object %s", key))
	}
	return nil
}

// Get opens a document for reading.  The caller closes the returned reader.
func (s *DocumentStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
			fmt.Sprintf("get object %s", key))
	}
	return obj, nil
}

// Remove deletes a document from the bucket.
func (s *DocumentStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
			fmt.Sprintf("remove object %s", key))
	}
	return nil
}
