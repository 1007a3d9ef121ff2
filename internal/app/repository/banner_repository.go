package repository

import (
	"context"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type BannerRepository interface {
	// List returns banners by ascending display order.
	List(ctx context.Context, activeOnly bool) ([]model.Banner, error)
	FindByID(ctx context.Context, id string) (*model.Banner, error)
	Create(ctx context.Context, banner *model.Banner) error
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id string) error
}

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	query := r.db.WithContext(ctx).Order("sort_order ASC").Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var banners []model.Banner
	if err := query.Find(&banners).Error; err != nil {
		logger.Error("Failed to list banners", err)
		return nil, err
	}
	return banners, nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	var banner model.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		logger.Error("Failed to create banner in database", err, map[string]interface{}{
			"order": banner.Order,
		})
		return err
	}
	return nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		logger.Error("Failed to update banner in database", err, map[string]interface{}{
			"banner_id": banner.ID,
		})
		return err
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Banner{}, id)
}
