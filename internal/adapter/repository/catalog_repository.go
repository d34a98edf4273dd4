package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/domain/service"
	"mediavault/pkg/errors"
	"mediavault/pkg/logger"
)

// catalogRepository keeps the catalog in memory behind a single-writer lock and
// writes the whole document through a SnapshotStore after every mutation.
// A failed save is logged and reported; the in-memory change is kept.
type catalogRepository struct {
	mu    sync.RWMutex
	doc   entity.CatalogDocument
	store repository.SnapshotStore
	now   func() time.Time
}

type Option func(*catalogRepository)

// WithClock overrides the time source used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *catalogRepository) { r.now = now }
}

// NewCatalogRepository starts from doc (nil means an empty catalog).
func NewCatalogRepository(store repository.SnapshotStore, doc *entity.CatalogDocument, opts ...Option) repository.CatalogRepository {
	r := &catalogRepository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	if doc != nil {
		r.doc = doc.Clone()
	}
	r.doc.Normalize()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// persist must be called with mu held.
func (r *catalogRepository) persist(ctx context.Context, resource, action string) error {
	snapshot := r.doc.Clone()
	if err := r.store.Save(ctx, &snapshot); err != nil {
		logger.LogMutationError(resource, action, err)
		return errors.Internal("Failed to save catalog", err)
	}
	return nil
}

func (r *catalogRepository) assetIndex(id string) int {
	for i := range r.doc.Assets {
		if r.doc.Assets[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *catalogRepository) collectionIndex(id string) int {
	for i := range r.doc.Collections {
		if r.doc.Collections[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *catalogRepository) ListAssets(ctx context.Context) ([]entity.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Asset, len(r.doc.Assets))
	for i, a := range r.doc.Assets {
		out[i] = a.Clone()
	}
	return out, nil
}

func (r *catalogRepository) GetAsset(ctx context.Context, id string) (*entity.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.assetIndex(id)
	if i < 0 {
		return nil, errors.NotFound("Asset", nil)
	}
	a := r.doc.Assets[i].Clone()
	return &a, nil
}

func (r *catalogRepository) CreateAsset(ctx context.Context, asset entity.Asset) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	now := r.now()
	if asset.UploadDate.IsZero() {
		asset.UploadDate = now
	}
	if asset.UpdatedAt.IsZero() {
		asset.UpdatedAt = asset.UploadDate
	}
	asset = asset.Clone()
	r.doc.Assets = append(r.doc.Assets, asset)

	created := asset.Clone()
	if err := r.persist(ctx, "assets", "create"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *catalogRepository) UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.assetIndex(id)
	if i < 0 {
		return nil, errors.NotFound("Asset", nil)
	}
	patch.Apply(&r.doc.Assets[i], r.now())
	updated := r.doc.Assets[i].Clone()

	if err := r.persist(ctx, "assets", "update"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *catalogRepository) DeleteAsset(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.assetIndex(id)
	if i < 0 {
		return errors.NotFound("Asset", nil)
	}
	r.doc.Assets = append(r.doc.Assets[:i], r.doc.Assets[i+1:]...)

	return r.persist(ctx, "assets", "delete")
}

func (r *catalogRepository) BulkUpdateAssets(ctx context.Context, ids []string, patch entity.AssetPatch) ([]entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	updated := make([]entity.Asset, 0, len(ids))
	for _, id := range ids {
		i := r.assetIndex(id)
		if i < 0 {
			continue
		}
		patch.Apply(&r.doc.Assets[i], now)
		updated = append(updated, r.doc.Assets[i].Clone())
	}
	if len(updated) == 0 {
		return updated, nil
	}

	if err := r.persist(ctx, "assets", "bulk_update"); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *catalogRepository) BulkDeleteAssets(ctx context.Context, ids []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}
	removed := []string{}
	kept := r.doc.Assets[:0]
	for _, a := range r.doc.Assets {
		if _, ok := remove[a.ID]; ok {
			removed = append(removed, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	// clear the tail so removed assets are not retained by the backing array
	for i := len(kept); i < len(r.doc.Assets); i++ {
		r.doc.Assets[i] = entity.Asset{}
	}
	r.doc.Assets = kept
	if len(removed) == 0 {
		return removed, nil
	}

	if err := r.persist(ctx, "assets", "bulk_delete"); err != nil {
		return removed, err
	}
	return removed, nil
}

func (r *catalogRepository) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]entity.Collection{}, r.doc.Collections...), nil
}

func (r *catalogRepository) GetCollection(ctx context.Context, id string) (*entity.CollectionDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.collectionIndex(id)
	if i < 0 {
		return nil, errors.NotFound("Collection", nil)
	}
	detail := &entity.CollectionDetail{
		Collection: r.doc.Collections[i],
		Assets:     []entity.Asset{},
	}
	for _, a := range r.doc.Assets {
		if a.InCollection(id) {
			detail.Assets = append(detail.Assets, a.Clone())
		}
	}
	return detail, nil
}

func (r *catalogRepository) CreateCollection(ctx context.Context, collection entity.Collection) (*entity.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if collection.ID == "" {
		collection.ID = uuid.NewString()
	}
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = r.now()
	}
	r.doc.Collections = append(r.doc.Collections, collection)

	if err := r.persist(ctx, "collections", "create"); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *catalogRepository) UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.collectionIndex(id)
	if i < 0 {
		return nil, errors.NotFound("Collection", nil)
	}
	patch.Apply(&r.doc.Collections[i])
	updated := r.doc.Collections[i]

	if err := r.persist(ctx, "collections", "update"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *catalogRepository) DeleteCollection(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.collectionIndex(id)
	if i < 0 {
		return errors.NotFound("Collection", nil)
	}
	service.NullifyCollection(r.doc.Assets, id, r.now())
	r.doc.Collections = append(r.doc.Collections[:i], r.doc.Collections[i+1:]...)

	return r.persist(ctx, "collections", "delete")
}

func (r *catalogRepository) ListTags(ctx context.Context) ([]entity.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]entity.Tag{}, r.doc.Tags...), nil
}

func (r *catalogRepository) CreateTag(ctx context.Context, tag entity.Tag) (*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.doc.Tags {
		if existing.SameName(tag.Name) {
			return nil, errors.Validation("Tag already exists")
		}
	}
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	r.doc.Tags = append(r.doc.Tags, tag)

	if err := r.persist(ctx, "tags", "create"); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) DeleteTag(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := -1
	for j := range r.doc.Tags {
		if r.doc.Tags[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return errors.NotFound("Tag", nil)
	}
	service.DetachTag(r.doc.Assets, r.doc.Tags[i].Name, r.now())
	r.doc.Tags = append(r.doc.Tags[:i], r.doc.Tags[i+1:]...)

	return r.persist(ctx, "tags", "delete")
}

func (r *catalogRepository) Stats(ctx context.Context) (repository.CatalogStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return repository.CatalogStats{
		Assets:      len(r.doc.Assets),
		Collections: len(r.doc.Collections),
		Tags:        len(r.doc.Tags),
	}, nil
}
