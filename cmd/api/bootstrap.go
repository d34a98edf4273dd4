package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/seed"
	"mediavault/pkg/logger"
)

// loadCatalog reads the saved catalog. When nothing was saved yet it builds
// one from the seed file (or the embedded default) and saves it, unless
// seeding is off, in which case the catalog starts empty.
func loadCatalog(ctx context.Context, store repository.SnapshotStore, seedFile string, seedOnEmpty bool, now time.Time) (*entity.CatalogDocument, error) {
	doc, err := store.Load(ctx)
	if err == nil {
		logger.Info("Loaded catalog: %d assets, %d collections, %d tags", len(doc.Assets), len(doc.Collections), len(doc.Tags))
		return doc, nil
	}
	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, err
	}

	if !seedOnEmpty {
		logger.Info("No saved catalog; starting empty")
		return &entity.CatalogDocument{}, nil
	}

	file, err := seed.Load(seedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	doc, err = file.Build(now)
	if err != nil {
		return nil, fmt.Errorf("failed to build seed catalog: %w", err)
	}
	if err := store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save seed catalog: %w", err)
	}
	logger.Info("Seeded catalog with %d assets, %d collections, %d tags", len(doc.Assets), len(doc.Collections), len(doc.Tags))
	return doc, nil
}
