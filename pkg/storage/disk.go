// Package storage stores uploaded files on a named disk.
//
// Two drivers ship with lodge:
//   - "local": a directory on the host, served by the app under /storage
//   - "s3":    any S3-compatible bucket (AWS, MinIO, Supabase Storage)
//
//	if err := storage.Connect(); err != nil { ... }
//	url, err := storage.Default().PutStream(ctx, "product-images/a.png", r, "image/png")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get for a missing path.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is a storage driver. Paths are slash-separated keys relative to the
// disk root.
type Disk interface {
	// PutStream writes r to path. contentType may be empty.
	PutStream(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get opens path for reading. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Deleting a missing path is not an error.
	Delete(ctx context.Context, path string) error

	// URL is the public address of path.
	URL(path string) string
}
