// Package postgres persists the catalog in a PostgreSQL state table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"mediavault/internal/domain/entity"
	"mediavault/internal/infrastructure/persistence/sqlstate"
)

const (
	Driver        = "postgres"
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/mediavault?sslmode=disable"
)

var dialect = sqlstate.Dialect{
	CreateTable: `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`,
	Select: `SELECT bucket, payload FROM state`,
	Upsert: `INSERT INTO state(bucket,payload) VALUES($1,$2::jsonb) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`,
	EncodePayload: func(b []byte) any {
		return string(b)
	},
}

var sqlOpen = sql.Open

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New connects to dsn, verifies the connection and ensures the state table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sqlOpen(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := sqlstate.Ensure(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	return sqlstate.Load(ctx, s.db, dialect)
}

func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sqlstate.Save(ctx, s.db, dialect, doc)
}

func (s *Store) Close() error { return s.db.Close() }
