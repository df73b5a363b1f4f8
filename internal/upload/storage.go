// Package upload stores report photos on disk under generated names.
package upload

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage writes files into a directory and hands back /uploads/... references.
// The file is synced to disk before the reference is returned, so a persisted
// reference always points at a durably written file.
type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *Storage) Dir() string { return s.dir }

func (s *Storage) Save(_ context.Context, origName string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(origName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join("/uploads", name), nil
}
