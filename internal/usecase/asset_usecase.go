package usecase

import (
	"context"
	"time"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/domain/service"
	"mediavault/pkg/errors"
)

type AssetUseCase struct {
	assetRepo repository.AssetRepository
	notifier  ChangeNotifier
	now       func() time.Time
}

func NewAssetUseCase(assetRepo repository.AssetRepository, notifier ChangeNotifier) *AssetUseCase {
	return &AssetUseCase{
		assetRepo: assetRepo,
		notifier:  notifierOrNoop(notifier),
		now:       utcNow,
	}
}

// ListAssets returns the assets matching filter, in the requested order.
func (uc *AssetUseCase) ListAssets(ctx context.Context, filter entity.AssetFilter) ([]entity.Asset, error) {
	assets, err := uc.assetRepo.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	return service.FilterAssets(assets, filter), nil
}

func (uc *AssetUseCase) GetAsset(ctx context.Context, id string) (*entity.Asset, error) {
	return uc.assetRepo.GetAsset(ctx, id)
}

func (uc *AssetUseCase) CreateAsset(ctx context.Context, input entity.AssetDraft) (*entity.Asset, error) {
	asset := entity.NewAsset(generateUUID(), input, uc.now())

	created, err := uc.assetRepo.CreateAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(entity.ResourceAssets, ActionCreate, created.ID)
	return created, nil
}

func (uc *AssetUseCase) UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error) {
	updated, err := uc.assetRepo.UpdateAsset(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(entity.ResourceAssets, ActionUpdate, id)
	return updated, nil
}

func (uc *AssetUseCase) DeleteAsset(ctx context.Context, id string) error {
	if err := uc.assetRepo.DeleteAsset(ctx, id); err != nil {
		return err
	}
	uc.notifier.Publish(entity.ResourceAssets, ActionDelete, id)
	return nil
}

type BulkUpdateInput struct {
	AssetIDs []string
	Updates  entity.AssetPatch
}

// BulkUpdateAssets patches every listed asset that exists; unknown ids are skipped.
func (uc *AssetUseCase) BulkUpdateAssets(ctx context.Context, input BulkUpdateInput) ([]entity.Asset, error) {
	if input.AssetIDs == nil {
		return nil, errors.Validation("assetIds array is required")
	}

	updated, err := uc.assetRepo.BulkUpdateAssets(ctx, input.AssetIDs, input.Updates)
	if err != nil {
		return nil, err
	}
	if len(updated) > 0 {
		ids := make([]string, len(updated))
		for i, a := range updated {
			ids[i] = a.ID
		}
		uc.notifier.Publish(entity.ResourceAssets, ActionBulkUpdate, ids...)
	}
	return updated, nil
}

// BulkDeleteAssets removes every listed asset that exists and reports how many were removed.
func (uc *AssetUseCase) BulkDeleteAssets(ctx context.Context, assetIDs []string) (int, error) {
	if assetIDs == nil {
		return 0, errors.Validation("assetIds array is required")
	}

	removed, err := uc.assetRepo.BulkDeleteAssets(ctx, assetIDs)
	if err != nil {
		return 0, err
	}
	if len(removed) > 0 {
		uc.notifier.Publish(entity.ResourceAssets, ActionBulkDelete, removed...)
	}
	return len(removed), nil
}
