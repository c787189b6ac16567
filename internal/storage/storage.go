package storage

import (
	"context"
	"io"
)

// Storage abstracts saving and deleting uploaded image files. The local
// filesystem implementation can be swapped for S3 / Cloudflare R2 later.
type Storage interface {
	// Save stores a file and returns its public URL. key is a unique path
	// within the storage (e.g. "contents/<uuid>.jpg").
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete removes the file stored under key.
	Delete(ctx context.Context, key string) error
}
