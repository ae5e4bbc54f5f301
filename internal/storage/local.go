package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores uploads on the local filesystem and serves them from
// the API server itself. Dev/demo use only.
type LocalBackend struct {
	baseURL   string // server URL, e.g. "http://localhost:8080"
	uploadDir string
}

func NewLocalBackend(baseURL, uploadDir string) (*LocalBackend, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBackend{baseURL: baseURL, uploadDir: uploadDir}, nil
}

func (b *LocalBackend) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	path := filepath.Join(b.uploadDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", key, err)
	}

	return fmt.Sprintf("%s/uploads/%s", b.baseURL, key), nil
}

func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	err := os.Remove(filepath.Join(b.uploadDir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the root upload directory, used to mount a file server.
func (b *LocalBackend) Dir() string {
	return b.uploadDir
}
