package repository

import (
	"context"

	"mediavault/internal/domain/entity"
)

// AssetRepository stores assets. Implementations return copies; callers never
// share memory with the store.
type AssetRepository interface {
	ListAssets(ctx context.Context) ([]entity.Asset, error)
	GetAsset(ctx context.Context, id string) (*entity.Asset, error)
	CreateAsset(ctx context.Context, asset entity.Asset) (*entity.Asset, error)
	UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	// BulkUpdateAssets applies patch to every existing id and skips the rest.
	BulkUpdateAssets(ctx context.Context, ids []string, patch entity.AssetPatch) ([]entity.Asset, error)
	// BulkDeleteAssets removes every existing id and returns the removed ids in
	// catalog order. Unknown ids are skipped.
	BulkDeleteAssets(ctx context.Context, ids []string) ([]string, error)
}

type CollectionRepository interface {
	ListCollections(ctx context.Context) ([]entity.Collection, error)
	GetCollection(ctx context.Context, id string) (*entity.CollectionDetail, error)
	CreateCollection(ctx context.Context, collection entity.Collection) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error)
	// DeleteCollection uncategorizes member assets before removing the collection.
	DeleteCollection(ctx context.Context, id string) error
}

type TagRepository interface {
	ListTags(ctx context.Context) ([]entity.Tag, error)
	// CreateTag fails with a validation error when the name is already taken, ignoring case.
	CreateTag(ctx context.Context, tag entity.Tag) (*entity.Tag, error)
	// DeleteTag removes the tag name from every asset before removing the tag.
	DeleteTag(ctx context.Context, id string) error
}

// CatalogRepository owns all three record sets.
type CatalogRepository interface {
	AssetRepository
	CollectionRepository
	TagRepository
	Stats(ctx context.Context) (CatalogStats, error)
}

type CatalogStats struct {
	Assets      int
	Collections int
	Tags        int
}
