package repository

import (
	"context"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type HandpickedRepository interface {
	// List returns items sorted by slot name.
	List(ctx context.Context) ([]model.HandpickedItem, error)
	FindBySlot(ctx context.Context, slot model.HandpickedSlot) (*model.HandpickedItem, error)
	Create(ctx context.Context, item *model.HandpickedItem) error
	Update(ctx context.Context, item *model.HandpickedItem) error
	DeleteBySlot(ctx context.Context, slot model.HandpickedSlot) error
}

type handpickedRepository struct {
	db *gorm.DB
}

func NewHandpickedRepository(db *gorm.DB) HandpickedRepository {
	return &handpickedRepository{db: db}
}

func (r *handpickedRepository) List(ctx context.Context) ([]model.HandpickedItem, error) {
	var items []model.HandpickedItem
	if err := r.db.WithContext(ctx).Order("slot ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to list handpicked items", err)
		return nil, err
	}
	return items, nil
}

func (r *handpickedRepository) FindBySlot(ctx context.Context, slot model.HandpickedSlot) (*model.HandpickedItem, error) {
	var item model.HandpickedItem
	if err := r.db.WithContext(ctx).First(&item, "slot = ?", slot).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *handpickedRepository) Create(ctx context.Context, item *model.HandpickedItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		logger.Error("Failed to create handpicked item", err, map[string]interface{}{
			"slot": item.Slot,
		})
		return err
	}
	return nil
}

func (r *handpickedRepository) Update(ctx context.Context, item *model.HandpickedItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		logger.Error("Failed to update handpicked item", err, map[string]interface{}{
			"slot": item.Slot,
		})
		return err
	}
	return nil
}

func (r *handpickedRepository) DeleteBySlot(ctx context.Context, slot model.HandpickedSlot) error {
	result := r.db.WithContext(ctx).Delete(&model.HandpickedItem{}, "slot = ?", slot)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
