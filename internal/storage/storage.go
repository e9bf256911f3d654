// Package storage holds uploaded artifact blobs. Production uses a
// Supabase object bucket; the document vault only sees the ObjectStore
// interface.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
}
