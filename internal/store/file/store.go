// Package file persists the bookmark set as a JSON array on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

// Store reads and atomically rewrites one JSON file.
type Store struct {
	path string
}

// NewStore creates a store backed by path. The file is created on first Write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Name identifies the backend in logs and /infra.
func (s *Store) Name() string {
	return "file"
}

// Read returns the stored set. A missing file is an empty set.
func (s *Store) Read(ctx context.Context) ([]domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Bookmark{}, nil
		}
		return nil, fmt.Errorf("failed to open bookmarks file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var bookmarks []domain.Bookmark
	if err := json.NewDecoder(f).Decode(&bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks file: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	return bookmarks, nil
}

// Write replaces the file contents: temp file, fsync, rename, fsync dir.
func (s *Store) Write(ctx context.Context, bookmarks []domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create bookmarks dir: %w", err)
	}
	tmp := s.path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bookmarks); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace bookmarks file: %w", err)
	}

	_ = fsyncDir(filepath.Dir(s.path))
	return nil
}

// fsyncDir makes the rename durable. Unsupported platforms are ignored.
func fsyncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	df, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() {
		_ = df.Close()
	}()
	if err := df.Sync(); err != nil && !errors.Is(err, syscall.ENOTSUP) {
		return err
	}
	return nil
}
