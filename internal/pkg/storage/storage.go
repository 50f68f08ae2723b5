package storage

import (
	"context"
	"io"
)

// Storage is the interface for uploaded image storage backends. Intentionally
// small: store a file under a key and resolve its public URL.
type Storage interface {
	// Put stores a file under key and returns an error on failure.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}
