package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/templui/studytrail/internal/config"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader, contentType string) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// URL returns a time-limited link for downloading the file
	URL(ctx context.Context, path string) (string, error)
}

// New creates the storage selected by STORAGE_DRIVER.
func New(c *config.Config) (Storage, error) {
	switch c.StorageDriver {
	case config.StorageS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	case config.StorageDisk:
		slog.Info("initializing disk storage", "path", c.StoragePath)
		return NewDiskStorage(c.StoragePath, strings.TrimSuffix(c.AppURL, "/")+DiskURLPrefix, c.JWTSecret, c.S3PresignExpiry)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
}
