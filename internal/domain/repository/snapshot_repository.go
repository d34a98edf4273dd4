package repository

import (
	"context"
	"errors"

	"mediavault/internal/domain/entity"
)

// ErrSnapshotNotFound is returned by SnapshotStore.Load when nothing was saved yet.
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// SnapshotStore loads and saves the whole catalog document.
type SnapshotStore interface {
	Load(ctx context.Context) (*entity.CatalogDocument, error)
	Save(ctx context.Context, doc *entity.CatalogDocument) error
	Driver() string
	Close() error
}
