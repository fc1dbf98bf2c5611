// Package roomimage stores uploaded room photos. The scene engine treats a
// room image as an opaque handle; this package is where those handles
// resolve to bytes.
package roomimage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a storage key does not resolve to an image.
var ErrNotFound = errors.New("room image not found")

type Store interface {
	// Save stores an image and returns its storage key.
	Save(ctx context.Context, mimeType string, r io.Reader) (string, error)
	// Open returns the image bytes and MIME type for a storage key.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
