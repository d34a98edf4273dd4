// Package sqlite persists the catalog in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"mediavault/internal/domain/entity"
	"mediavault/internal/infrastructure/persistence/sqlstate"
)

const Driver = "sqlite"

var dialect = sqlstate.Dialect{
	CreateTable: `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`,
	Select: `SELECT bucket, payload FROM state`,
	Upsert: `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
}

type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// New opens (or creates) the database at path. Use ":memory:" for tests.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "mediavault.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	if err := sqlstate.Ensure(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	return sqlstate.Load(ctx, s.db, dialect)
}

func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sqlstate.Save(ctx, s.db, dialect, doc)
}

func (s *Store) Close() error { return s.db.Close() }
