package service

import (
	"context"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"github.com/mariyae/catalog-backend/pkg/redis"
)

var (
	ErrHandpickedNotFound = apperrors.NotFound(apperrors.HandpickedNotFound, "Item not found")
	ErrHandpickedBadSlot  = apperrors.Validation(apperrors.HandpickedBadSlot, "Slot must be one of left, top-right, bottom-right", "slot")
	ErrHandpickedSlotUsed = apperrors.Duplicate(apperrors.ResourceAlreadyExists, "Slot is already taken")
)

const cacheKeyHandpicked = "handpicked:all"

type HandpickedInput struct {
	Slot     string
	Subtitle string
	Title    string
	Link     string
	IsActive *bool
	Image    ImageSource
}

type HandpickedService interface {
	ListItems(ctx context.Context) ([]model.HandpickedItem, error)
	// SaveItem creates the item for input.Slot or replaces the one there.
	SaveItem(ctx context.Context, input HandpickedInput) (*model.HandpickedItem, error)
	DeleteItem(ctx context.Context, slot string) error
}

type handpickedService struct {
	repo   repository.HandpickedRepository
	media  storage.MediaStore
	cache  *redis.Cache
	folder string
}

func NewHandpickedService(repo repository.HandpickedRepository, media storage.MediaStore, cache *redis.Cache, namespace string) HandpickedService {
	return &handpickedService{
		repo:   repo,
		media:  media,
		cache:  cache,
		folder: storage.Folder(namespace, "handpicked"),
	}
}

func (s *handpickedService) ListItems(ctx context.Context) ([]model.HandpickedItem, error) {
	var items []model.HandpickedItem
	if s.cache.GetJSON(ctx, cacheKeyHandpicked, &items) {
		return items, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to fetch items", err)
	}

	s.cache.SetJSON(ctx, cacheKeyHandpicked, items)
	return items, nil
}

func (s *handpickedService) SaveItem(ctx context.Context, input HandpickedInput) (*model.HandpickedItem, error) {
	slot, err := parseSlot(input.Slot)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlot(ctx, slot)
	if err != nil {
		if !apperrors.IsRecordNotFound(err) {
			return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to save item", err)
		}
		existing = nil
	}

	var missing []string
	if strings.TrimSpace(input.Subtitle) == "" {
		missing = append(missing, "subtitle")
	}
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if input.Image.IsZero() && (existing == nil || existing.Image == "") {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(apperrors.ValidationRequired, missing)
	}

	item := existing
	if item == nil {
		item = &model.HandpickedItem{Slot: slot}
	}

	if item.Image, err = resolveImage(ctx, s.media, input.Image, s.folder, item.Image); err != nil {
		return nil, err
	}
	item.Subtitle = strings.TrimSpace(input.Subtitle)
	item.Title = strings.TrimSpace(input.Title)
	item.Link = strings.TrimSpace(input.Link)
	if item.Link == "" {
		item.Link = model.DefaultHandpickedLink
	}
	item.IsActive = input.IsActive == nil || *input.IsActive

	if existing == nil {
		err = s.repo.Create(ctx, item)
	} else {
		err = s.repo.Update(ctx, item)
	}
	if err != nil {
		return nil, translateWriteError(err, ErrHandpickedSlotUsed, "Failed to save item")
	}

	logger.Info("Handpicked item saved", map[string]interface{}{
		"slot":    item.Slot,
		"created": existing == nil,
	})
	s.cache.Invalidate(ctx, cacheKeyHandpicked)
	return item, nil
}

func (s *handpickedService) DeleteItem(ctx context.Context, slot string) error {
	parsed, err := parseSlot(slot)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBySlot(ctx, parsed); err != nil {
		return translateLookupError(err, ErrHandpickedNotFound, "Failed to delete item")
	}
	s.cache.Invalidate(ctx, cacheKeyHandpicked)
	return nil
}

func parseSlot(value string) (model.HandpickedSlot, error) {
	slot := model.HandpickedSlot(strings.ToLower(strings.TrimSpace(value)))
	if !slot.IsValid() {
		return "", ErrHandpickedBadSlot
	}
	return slot, nil
}
