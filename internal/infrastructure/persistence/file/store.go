// Package file keeps the catalog as one JSON document on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/codec"
)

const Driver = "file"

type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store writing to path. The parent directory is created on first save.
func New(path string) *Store {
	if path == "" {
		path = "data.json"
	}
	return &Store{path: path}
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return codec.Decode(data)
}

// Save replaces the file atomically: the document is written to a temporary
// file in the same directory and renamed over the old one.
func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	data, err := codec.Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
