package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Object is a stored blob plus the metadata needed to serve it.
type Object struct {
	Reader      io.ReadCloser
	Size        int64
	ContentType string
}

// Store persists uploaded resumes outside the primary storage backend,
// which only keeps a URL reference to them.
type Store interface {
	// Put writes the blob under key and returns the key actually used.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Get opens the blob stored under key.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete removes the blob stored under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
