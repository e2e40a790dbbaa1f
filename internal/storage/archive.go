// Package storage archives delivered search outcomes in S3-compatible
// object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"places/internal/config"
	"places/internal/keys"
	"places/internal/models"
)

// objectStore is the part of *minio.Client the archive uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Archive writes one JSON object per outcome.
type Archive struct {
	store  objectStore
	bucket string
	log    logrus.FieldLogger
}

// NewArchive connects to the MinIO endpoint in cfg.
func NewArchive(cfg config.MinIOConfig, log logrus.FieldLogger) (*Archive, error) {
	if !cfg.Enabled() {
		return nil, errors.New("storage: MINIO_ENDPOINT is not set")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create minio client: %w", err)
	}
	log.WithField("endpoint", cfg.Endpoint).Info("connected to object storage")
	return newArchive(client, cfg.Bucket, log), nil
}

func newArchive(store objectStore, bucket string, log logrus.FieldLogger) *Archive {
	return &Archive{store: store, bucket: bucket, log: log}
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context, region string) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("storage: check bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("storage: make bucket %q: %w", a.bucket, err)
	}
	a.log.WithField("bucket", a.bucket).Info("created bucket")
	return nil
}

// Store writes o under its canonical key. An object that already exists is
// left untouched, so redelivered events do not rewrite the archive.
func (a *Archive) Store(ctx context.Context, o *models.Outcome) error {
	key := keys.Outcome(*o)

	_, err := a.store.StatObject(ctx, a.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		a.log.WithField("key", key).Debug("outcome already archived")
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("storage: stat %q: %w", key, err)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("storage: marshal outcome: %w", err)
	}

	_, err = a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}

	a.log.WithFields(logrus.Fields{"key": key, "bucket": a.bucket}).Debug("archived outcome")
	return nil
}
