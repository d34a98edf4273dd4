package repository

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/memory"
	"mediavault/pkg/errors"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newTestRepo(t *testing.T) (repository.CatalogRepository, *memory.Store) {
	t.Helper()
	store := memory.New()
	doc := &entity.CatalogDocument{
		Assets: []entity.Asset{
			{ID: "a1", Title: "Mountain", Tags: []string{"Nature", "Travel"}, CollectionID: strPtr("c1")},
			{ID: "a2", Title: "Office", Tags: []string{"Business"}, CollectionID: strPtr("c2")},
			{ID: "a3", Title: "Zebra", Tags: []string{"Nature"}, CollectionID: strPtr("c1")},
		},
		Collections: []entity.Collection{
			{ID: "c1", Name: "Marketing"},
			{ID: "c2", Name: "Product"},
		},
		Tags: []entity.Tag{
			{ID: "t1", Name: "Nature"},
			{ID: "t2", Name: "Travel"},
		},
	}
	repo := NewCatalogRepository(store, doc, WithClock(func() time.Time { return fixedNow }))
	return repo, store
}

func TestCreateAssetAssignsIdentityAndPersists(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateAsset(ctx, entity.Asset{Title: "New"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixedNow, created.UploadDate)
	assert.Equal(t, fixedNow, created.UpdatedAt)

	got, err := repo.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, store.Saves())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved.Assets, 4)
}

func TestGetAssetReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.GetAsset(ctx, "a1")
	require.NoError(t, err)
	a.Tags[0] = "mutated"
	*a.CollectionID = "mutated"

	again, err := repo.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Nature", again.Tags[0])
	assert.Equal(t, "c1", *again.CollectionID)
}

func TestUpdateAssetAppliesPatch(t *testing.T) {
	repo, _ := newTestRepo(t)
	title := "Renamed"

	updated, err := repo.UpdateAsset(context.Background(), "a1", entity.AssetPatch{
		Title:        &title,
		CollectionID: entity.Null(),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Nil(t, updated.CollectionID)
	assert.Equal(t, []string{"Nature", "Travel"}, updated.Tags)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
}

func TestUpdateMissingAsset(t *testing.T) {
	repo, store := newTestRepo(t)
	_, err := repo.UpdateAsset(context.Background(), "nope", entity.AssetPatch{})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Zero(t, store.Saves())
}

func TestDeleteAssetTwiceIsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteAsset(ctx, "a2"))
	err := repo.DeleteAsset(ctx, "a2")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	err = repo.DeleteAsset(ctx, "a2")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Assets)
}

func TestBulkUpdateSkipsUnknownIDs(t *testing.T) {
	repo, store := newTestRepo(t)
	rights := "Editorial only"

	updated, err := repo.BulkUpdateAssets(context.Background(), []string{"a1", "ghost", "a3"}, entity.AssetPatch{UsageRights: &rights})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, "a1", updated[0].ID)
	assert.Equal(t, "a3", updated[1].ID)
	for _, a := range updated {
		assert.Equal(t, rights, a.UsageRights)
		assert.Equal(t, fixedNow, a.UpdatedAt)
	}
	assert.Equal(t, 1, store.Saves())
}

func TestBulkOperationsOnEmptyListAreNoOps(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	updated, err := repo.BulkUpdateAssets(ctx, nil, entity.AssetPatch{})
	require.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Empty(t, updated)

	removed, err := repo.BulkDeleteAssets(ctx, []string{})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Zero(t, store.Saves())
}

func TestBulkDeleteReturnsRemovedIDs(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	removed, err := repo.BulkDeleteAssets(ctx, []string{"ghost", "a3", "a1", "a3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, removed)
	assert.Equal(t, 1, store.Saves())

	remaining, err := repo.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "a2", remaining[0].ID)
}

func TestGetCollectionIncludesMembers(t *testing.T) {
	repo, _ := newTestRepo(t)

	detail, err := repo.GetCollection(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Marketing", detail.Name)
	require.Len(t, detail.Assets, 2)
	assert.Equal(t, "a1", detail.Assets[0].ID)
	assert.Equal(t, "a3", detail.Assets[1].ID)
}

func TestUpdateCollectionPinsID(t *testing.T) {
	repo, _ := newTestRepo(t)
	desc := "Campaign material"

	updated, err := repo.UpdateCollection(context.Background(), "c1", entity.CollectionPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "c1", updated.ID)
	assert.Equal(t, "Marketing", updated.Name)
	assert.Equal(t, desc, updated.Description)
}

func TestDeleteCollectionUncategorizesMembers(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteCollection(ctx, "c1"))

	collections, err := repo.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "c2", collections[0].ID)

	for _, id := range []string{"a1", "a3"} {
		a, err := repo.GetAsset(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, a.CollectionID, id)
	}
	a2, err := repo.GetAsset(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, "c2", *a2.CollectionID)

	err = repo.DeleteCollection(ctx, "c1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCreateTagRejectsDuplicateIgnoringCase(t *testing.T) {
	repo, store := newTestRepo(t)

	_, err := repo.CreateTag(context.Background(), entity.Tag{Name: "nature"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Zero(t, store.Saves())

	tag, err := repo.CreateTag(context.Background(), entity.Tag{Name: "Food"})
	require.NoError(t, err)
	assert.NotEmpty(t, tag.ID)
}

func TestDeleteTagDetachesFromAssets(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteTag(ctx, "t2"))

	a1, err := repo.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nature"}, a1.Tags)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Tag{{ID: "t1", Name: "Nature"}}, tags)

	assert.True(t, errors.Is(repo.DeleteTag(ctx, "t2"), "NOT_FOUND"))
}

func TestSaveFailureKeepsInMemoryChange(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	store.SetFailure(stderrors.New("disk full"))

	_, err := repo.CreateAsset(ctx, entity.Asset{ID: "a9", Title: "Unsaved"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
	assert.Contains(t, err.Error(), "disk full")

	got, err := repo.GetAsset(ctx, "a9")
	require.NoError(t, err)
	assert.Equal(t, "Unsaved", got.Title)

	store.SetFailure(nil)
	require.NoError(t, repo.DeleteAsset(ctx, "a2"))
	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved.Assets, 3, "next successful save catches up with memory")
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateAsset(ctx, entity.Asset{Title: "parallel"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23, stats.Assets)
}
