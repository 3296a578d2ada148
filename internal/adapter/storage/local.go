// Package storage provides blob storage for profile images.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalImageStore stores images as individual files in a single directory.
// Stored names are a random UUID plus the original file's extension, so names
// never collide regardless of wall-clock resolution or client filenames.
type LocalImageStore struct {
	dir string
	log *zap.Logger
}

// NewLocalImageStore creates a new LocalImageStore rooted at dir, creating
// the directory if it does not exist.
func NewLocalImageStore(dir string, log *zap.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir, log: log}, nil
}

// Save writes the image bytes under a UUID-based name and returns the stored
// path, relative to the process working directory.
func (s *LocalImageStore) Save(ctx context.Context, originalName string, src io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		s.log.Error("failed to create image file", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		s.log.Error("failed to write image file", zap.String("path", path), zap.Error(err))
		// Remove the partial file so a failed upload leaves nothing behind
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.log.Info("image stored", zap.String("path", path), zap.String("original_name", originalName))
	return path, nil
}

// Remove deletes a stored image. Missing files are not an error; the caller
// uses Remove for best-effort cleanup.
func (s *LocalImageStore) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Error("failed to remove image file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
