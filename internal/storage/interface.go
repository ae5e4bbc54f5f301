package storage

import (
	"context"
	"io"
)

// Backend abstracts where uploaded images land. Two implementations exist:
// local filesystem (dev) and an S3-compatible object store.
type Backend interface {
	// Save stores the object under key and returns its public URL.
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}
