package storage

import (
	"context"
	"io"
)

// FileStorage stores exported files under a base location.
type FileStorage interface {
	// Save writes the content to path and returns the location it was written to
	Save(ctx context.Context, content io.Reader, path string) (string, error)
}
