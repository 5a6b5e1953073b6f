package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalUploader writes images to disk. It backs the fallback path when the
// upstream host is unavailable.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: baseURL}
}

func (l *LocalUploader) Upload(_ context.Context, fileName string, contentType string, data []byte) (string, string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + extensionFor(fileName, contentType)
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}

	return l.baseURL + "/" + name, "", nil
}
