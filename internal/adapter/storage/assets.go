// Package storage serves downloadable product assets from S3-compatible
// object storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heartmarshall/storefront-backend/internal/config"
	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// AssetStore issues time-limited download links for product assets.
type AssetStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	log    *slog.Logger
}

// NewAssetStore creates an AssetStore. No network call is made; the region is
// fixed in configuration so presigning works offline.
func NewAssetStore(cfg config.StorageConfig, logger *slog.Logger) (*AssetStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &AssetStore{
		client: client,
		bucket: cfg.Bucket,
		ttl:    cfg.PresignTTL,
		log:    logger.With("adapter", "storage"),
	}, nil
}

// PresignedURL returns a GET URL for the object named by ref. ref may be a
// bare object key, a key prefixed with the bucket name, or a full URL whose
// path holds the key.
func (s *AssetStore) PresignedURL(ctx context.Context, ref string) (string, error) {
	key := ObjectKey(ref, s.bucket)
	if key == "" {
		return "", domain.ErrNotFound
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, params)
	if err != nil {
		s.log.ErrorContext(ctx, "presign failed", slog.String("key", key), slog.String("error", err.Error()))
		return "", fmt.Errorf("storage: presign %s: %w", key, err)
	}
	return u.String(), nil
}

// Ping checks that the asset bucket is reachable.
func (s *AssetStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket check: %w", err)
	}
	if !ok {
		return fmt.Errorf("storage: bucket %q does not exist", s.bucket)
	}
	return nil
}

// ObjectKey extracts the object key from an asset reference.
func ObjectKey(ref, bucket string) string {
	ref = strings.TrimSpace(ref)
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		ref = u.Path
	}
	ref = strings.TrimLeft(ref, "/")
	ref = strings.TrimPrefix(ref, bucket+"/")
	return ref
}
