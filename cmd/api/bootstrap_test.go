package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/domain/entity"
	"mediavault/internal/infrastructure/persistence/memory"
)

var bootTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestLoadCatalogSeedsEmptyStore(t *testing.T) {
	store := memory.New()

	doc, err := loadCatalog(context.Background(), store, "", true, bootTime)
	require.NoError(t, err)
	assert.Len(t, doc.Assets, 5)
	assert.Len(t, doc.Collections, 3)
	assert.Len(t, doc.Tags, 10)
	assert.Equal(t, 1, store.Saves())
}

func TestLoadCatalogPrefersSavedDocument(t *testing.T) {
	store := memory.New()
	saved := &entity.CatalogDocument{Tags: []entity.Tag{{ID: "t1", Name: "Only"}}}
	require.NoError(t, store.Save(context.Background(), saved))

	doc, err := loadCatalog(context.Background(), store, "", true, bootTime)
	require.NoError(t, err)
	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "Only", doc.Tags[0].Name)
	assert.Empty(t, doc.Assets)
	assert.Equal(t, 1, store.Saves())
}

func TestLoadCatalogWithoutSeeding(t *testing.T) {
	store := memory.New()

	doc, err := loadCatalog(context.Background(), store, "", false, bootTime)
	require.NoError(t, err)
	assert.Empty(t, doc.Assets)
	assert.Equal(t, 0, store.Saves())
}

func TestLoadCatalogCustomSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tags: [Alpha, Beta]
collections:
  - name: Launch
assets:
  - title: Hero
    tags: [Alpha]
    collection: Launch
`), 0o644))

	doc, err := loadCatalog(context.Background(), memory.New(), path, true, bootTime)
	require.NoError(t, err)
	require.Len(t, doc.Assets, 1)
	require.NotNil(t, doc.Assets[0].CollectionID)
	assert.Equal(t, doc.Collections[0].ID, *doc.Assets[0].CollectionID)
	assert.Equal(t, bootTime, doc.Assets[0].UploadDate)
}

func TestLoadCatalogSaveFailure(t *testing.T) {
	store := memory.New()
	store.SetFailure(errors.New("disk full"))

	_, err := loadCatalog(context.Background(), store, "", true, bootTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
