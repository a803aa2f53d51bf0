// Package storage holds uploaded image bytes in an S3-compatible object store.
// Implementations stream from the request body and never touch local disk.
package storage

import (
	"context"
	"io"
	"path"
	"time"
)

// ImagePrefix is the key prefix for uploaded images.
const ImagePrefix = "images"

// PutObjectOptions define optional parameters for uploading objects.
// Size must be the exact number of bytes, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the object store contract the image service depends on.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL that needs no credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL returns the permanent URL for key, or "" when the bucket is not publicly served.
	PublicURL(key string) string
}

// ImageKey returns the object key for a stored image file name.
func ImageKey(filename string) string {
	return path.Join(ImagePrefix, filename)
}
