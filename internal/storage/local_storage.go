package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"heavyrent-backend/internal/logger"
)

// MockStorageService stores objects on the local filesystem.
// It backs the "mock" storage type used in development and single-node deployments.
type MockStorageService struct {
	baseURL string // public API URL, e.g. http://localhost:8080
	rootDir string
}

func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MockStorageService{
		baseURL: strings.TrimRight(baseURL, "/"),
		rootDir: uploadsDir,
	}, nil
}

// resolve maps a key to a path inside rootDir, refusing anything that escapes it.
func (m *MockStorageService) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean != key || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", ErrInvalidKey
	}
	return filepath.Join(m.rootDir, filepath.FromSlash(clean)), nil
}

func (m *MockStorageService) SaveFile(ctx context.Context, key string, reader io.Reader, maxBytes int64) (int64, error) {
	fullPath, err := m.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	// One extra byte tells an exact-limit body from an oversized one.
	n, err := io.Copy(tmp, io.LimitReader(reader, maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if n > maxBytes {
		return 0, ErrFileTooLarge
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return 0, fmt.Errorf("failed to store file: %w", err)
	}

	logger.DebugContext(ctx, "stored object", "key", key, "bytes", n)
	return n, nil
}

func (m *MockStorageService) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := m.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := m.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := m.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorageService) DownloadURL(key string) string {
	return m.baseURL + "/files/" + (&url.URL{Path: key}).EscapedPath()
}
