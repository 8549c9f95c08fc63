package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	ErrInvalidKey   = errors.New("invalid storage key")
	ErrNotFound     = errors.New("file not found")
)

// StorageInterface is the object store behind payment proof uploads.
// Only the local filesystem backend exists today; keys are slash separated.
type StorageInterface interface {
	// SaveFile stores at most maxBytes from reader under key and returns the bytes written.
	// A larger body fails with ErrFileTooLarge and leaves nothing behind.
	SaveFile(ctx context.Context, key string, reader io.Reader, maxBytes int64) (int64, error)

	// ReadFile opens key for reading; ErrNotFound when absent.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	DeleteFile(ctx context.Context, key string) error

	// DownloadURL is where an operator fetches the object through the API.
	DownloadURL(key string) string
}
