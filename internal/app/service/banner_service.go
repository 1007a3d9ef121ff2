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
	ErrBannerNotFound      = apperrors.NotFound(apperrors.BannerNotFound, "Banner not found")
	ErrBannerImageRequired = apperrors.Validation(apperrors.ValidationRequired, "Background image is required", "backgroundImage")
	ErrBannerInvalidLayout = apperrors.Validation(apperrors.ValidationInvalidInput, "Layout type must be normal or reversed", "layoutType")
)

const (
	cacheKeyBanners       = "banners:all"
	cacheKeyActiveBanners = "banners:active"
	cachePatternBanners   = "banners:*"
)

// BannerInput carries the fields of a create or partial update. Nil
// pointers and empty image sources leave the stored value alone.
type BannerInput struct {
	Order           *int
	EyebrowText     *string
	Headline        *string
	Description     *string
	Button1Text     *string
	Button1Link     *string
	Button2Text     *string
	Button2Link     *string
	LayoutType      *string
	IsActive        *bool
	BackgroundImage ImageSource
	DecorativeImage ImageSource
}

type BannerService interface {
	ListBanners(ctx context.Context, activeOnly bool) ([]model.Banner, error)
	CreateBanner(ctx context.Context, input BannerInput) (*model.Banner, error)
	UpdateBanner(ctx context.Context, id string, input BannerInput) (*model.Banner, error)
	DeleteBanner(ctx context.Context, id string) error
}

type bannerService struct {
	repo   repository.BannerRepository
	media  storage.MediaStore
	cache  *redis.Cache
	folder string
}

func NewBannerService(repo repository.BannerRepository, media storage.MediaStore, cache *redis.Cache, namespace string) BannerService {
	return &bannerService{
		repo:   repo,
		media:  media,
		cache:  cache,
		folder: storage.Folder(namespace, "banners"),
	}
}

func (s *bannerService) ListBanners(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	key := cacheKeyBanners
	if activeOnly {
		key = cacheKeyActiveBanners
	}

	var banners []model.Banner
	if s.cache.GetJSON(ctx, key, &banners) {
		return banners, nil
	}

	banners, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to fetch banners", err)
	}

	s.cache.SetJSON(ctx, key, banners)
	return banners, nil
}

func (s *bannerService) CreateBanner(ctx context.Context, input BannerInput) (*model.Banner, error) {
	layout, err := parseLayout(input.LayoutType)
	if err != nil {
		return nil, err
	}
	if input.BackgroundImage.IsZero() {
		return nil, ErrBannerImageRequired
	}

	background, err := resolveImage(ctx, s.media, input.BackgroundImage, s.folder, "")
	if err != nil {
		return nil, err
	}
	decorative, err := resolveImage(ctx, s.media, input.DecorativeImage, s.folder, "")
	if err != nil {
		return nil, err
	}

	banner := &model.Banner{
		LayoutType:      layout,
		BackgroundImage: background,
		DecorativeImage: decorative,
		IsActive:        true,
	}
	applyBannerFields(banner, input)

	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to create banner", err)
	}

	logger.Info("Banner created", map[string]interface{}{
		"banner_id": banner.ID,
		"order":     banner.Order,
	})
	s.cache.Invalidate(ctx, cachePatternBanners)
	return banner, nil
}

func (s *bannerService) UpdateBanner(ctx context.Context, id string, input BannerInput) (*model.Banner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrBannerNotFound, "Failed to update banner")
	}

	if input.LayoutType != nil {
		layout, err := parseLayout(input.LayoutType)
		if err != nil {
			return nil, err
		}
		banner.LayoutType = layout
	}

	if banner.BackgroundImage, err = resolveImage(ctx, s.media, input.BackgroundImage, s.folder, banner.BackgroundImage); err != nil {
		return nil, err
	}
	if banner.DecorativeImage, err = resolveImage(ctx, s.media, input.DecorativeImage, s.folder, banner.DecorativeImage); err != nil {
		return nil, err
	}
	applyBannerFields(banner, input)

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, translateLookupError(err, ErrBannerNotFound, "Failed to update banner")
	}

	s.cache.Invalidate(ctx, cachePatternBanners)
	return banner, nil
}

func (s *bannerService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateLookupError(err, ErrBannerNotFound, "Failed to delete banner")
	}

	logger.Info("Banner deleted", map[string]interface{}{
		"banner_id": id,
	})
	s.cache.Invalidate(ctx, cachePatternBanners)
	return nil
}

// parseLayout defaults a missing or blank layout to normal.
func parseLayout(value *string) (model.BannerLayout, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return model.LayoutNormal, nil
	}
	layout := model.BannerLayout(strings.ToLower(strings.TrimSpace(*value)))
	if !layout.IsValid() {
		return "", ErrBannerInvalidLayout
	}
	return layout, nil
}

func applyBannerFields(banner *model.Banner, input BannerInput) {
	if input.Order != nil {
		banner.Order = *input.Order
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	for _, field := range []struct {
		dst *string
		src *string
	}{
		{&banner.EyebrowText, input.EyebrowText},
		{&banner.Headline, input.Headline},
		{&banner.Description, input.Description},
		{&banner.Button1Text, input.Button1Text},
		{&banner.Button1Link, input.Button1Link},
		{&banner.Button2Text, input.Button2Text},
		{&banner.Button2Link, input.Button2Link},
	} {
		if field.src != nil {
			*field.dst = strings.TrimSpace(*field.src)
		}
	}
}
