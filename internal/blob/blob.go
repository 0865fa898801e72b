// Package blob stores exported report files on the local filesystem or in
// an S3-compatible bucket.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/staydesk/backoffice-api/internal/config"
)

// Driver identifies a blob backend
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

// ErrExists is returned by Put when the key is already taken
var ErrExists = errors.New("blob already exists")

// ErrNotExist is returned when a key has no blob
var ErrNotExist = errors.New("blob does not exist")

// Info describes a stored blob
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"sizeBytes"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Store is a minimal create-only object store
type Store interface {
	// Put stores r at key and fails with ErrExists if the key is taken
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns blobs under prefix ordered by key
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Open builds the store selected by the export configuration
func Open(ctx context.Context, cfg config.ExportConfig) (Store, error) {
	switch Driver(cfg.Backend) {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Directory)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Backend)
	}
}
