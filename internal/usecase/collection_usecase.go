package usecase

import (
	"context"
	"time"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
)

type CollectionUseCase struct {
	collectionRepo repository.CollectionRepository
	notifier       ChangeNotifier
	now            func() time.Time
}

func NewCollectionUseCase(collectionRepo repository.CollectionRepository, notifier ChangeNotifier) *CollectionUseCase {
	return &CollectionUseCase{
		collectionRepo: collectionRepo,
		notifier:       notifierOrNoop(notifier),
		now:            utcNow,
	}
}

func (uc *CollectionUseCase) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	return uc.collectionRepo.ListCollections(ctx)
}

// GetCollection returns the collection with its member assets.
func (uc *CollectionUseCase) GetCollection(ctx context.Context, id string) (*entity.CollectionDetail, error) {
	return uc.collectionRepo.GetCollection(ctx, id)
}

func (uc *CollectionUseCase) CreateCollection(ctx context.Context, input entity.CollectionDraft) (*entity.Collection, error) {
	collection := entity.Collection{
		ID:          generateUUID(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   uc.now(),
	}

	created, err := uc.collectionRepo.CreateCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(entity.ResourceCollections, ActionCreate, created.ID)
	return created, nil
}

func (uc *CollectionUseCase) UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error) {
	updated, err := uc.collectionRepo.UpdateCollection(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(entity.ResourceCollections, ActionUpdate, id)
	return updated, nil
}

// DeleteCollection also uncategorizes the member assets, so both resources change.
func (uc *CollectionUseCase) DeleteCollection(ctx context.Context, id string) error {
	if err := uc.collectionRepo.DeleteCollection(ctx, id); err != nil {
		return err
	}
	uc.notifier.Publish(entity.ResourceCollections, ActionDelete, id)
	uc.notifier.Publish(entity.ResourceAssets, ActionUpdate)
	return nil
}
