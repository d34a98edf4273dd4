package usecase

import (
	"context"
	"strings"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/pkg/errors"
)

type TagUseCase struct {
	tagRepo  repository.TagRepository
	notifier ChangeNotifier
}

func NewTagUseCase(tagRepo repository.TagRepository, notifier ChangeNotifier) *TagUseCase {
	return &TagUseCase{
		tagRepo:  tagRepo,
		notifier: notifierOrNoop(notifier),
	}
}

func (uc *TagUseCase) ListTags(ctx context.Context) ([]entity.Tag, error) {
	return uc.tagRepo.ListTags(ctx)
}

// CreateTag rejects blank names and names already taken, ignoring case.
func (uc *TagUseCase) CreateTag(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	created, err := uc.tagRepo.CreateTag(ctx, entity.Tag{ID: generateUUID(), Name: name})
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(entity.ResourceTags, ActionCreate, created.ID)
	return created, nil
}

// DeleteTag also detaches the name from every asset.
func (uc *TagUseCase) DeleteTag(ctx context.Context, id string) error {
	if err := uc.tagRepo.DeleteTag(ctx, id); err != nil {
		return err
	}
	uc.notifier.Publish(entity.ResourceTags, ActionDelete, id)
	uc.notifier.Publish(entity.ResourceAssets, ActionUpdate)
	return nil
}
