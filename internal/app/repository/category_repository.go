package repository

import (
	"context"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type MainCategoryRepository interface {
	List(ctx context.Context) ([]model.MainCategory, error)
	FindByID(ctx context.Context, id string) (*model.MainCategory, error)
	// FindByKey matches the case-insensitive name key.
	FindByKey(ctx context.Context, key string) (*model.MainCategory, error)
	// FindByName matches the stored name exactly.
	FindByName(ctx context.Context, name string) (*model.MainCategory, error)
	Create(ctx context.Context, category *model.MainCategory) error
	Update(ctx context.Context, category *model.MainCategory) error
	Delete(ctx context.Context, id string) error
}

type SubCategoryRepository interface {
	// List returns every sub category, or only those whose main category
	// equals mainCategory ignoring case when it is non-empty.
	List(ctx context.Context, mainCategory string) ([]model.SubCategory, error)
	FindByID(ctx context.Context, id string) (*model.SubCategory, error)
	FindByNameAndMain(ctx context.Context, name, mainCategory string) (*model.SubCategory, error)
	Create(ctx context.Context, category *model.SubCategory) error
	Update(ctx context.Context, category *model.SubCategory) error
	Delete(ctx context.Context, id string) error
}

type mainCategoryRepository struct {
	db *gorm.DB
}

func NewMainCategoryRepository(db *gorm.DB) MainCategoryRepository {
	return &mainCategoryRepository{db: db}
}

func (r *mainCategoryRepository) List(ctx context.Context) ([]model.MainCategory, error) {
	var categories []model.MainCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list main categories", err)
		return nil, err
	}
	return categories, nil
}

func (r *mainCategoryRepository) FindByID(ctx context.Context, id string) (*model.MainCategory, error) {
	var category model.MainCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *mainCategoryRepository) FindByKey(ctx context.Context, key string) (*model.MainCategory, error) {
	var category model.MainCategory
	if err := r.db.WithContext(ctx).First(&category, "name_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *mainCategoryRepository) FindByName(ctx context.Context, name string) (*model.MainCategory, error) {
	var category model.MainCategory
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *mainCategoryRepository) Create(ctx context.Context, category *model.MainCategory) error {
	logger.Debug("Creating main category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create main category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *mainCategoryRepository) Update(ctx context.Context, category *model.MainCategory) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		logger.Error("Failed to update main category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *mainCategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.MainCategory{}, id)
}

type subCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) List(ctx context.Context, mainCategory string) ([]model.SubCategory, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if mainCategory != "" {
		query = query.Where("LOWER(main_category) = ?", strings.ToLower(mainCategory))
	}

	var categories []model.SubCategory
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to list sub categories", err, map[string]interface{}{
			"main_category": mainCategory,
		})
		return nil, err
	}
	return categories, nil
}

func (r *subCategoryRepository) FindByID(ctx context.Context, id string) (*model.SubCategory, error) {
	var category model.SubCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *subCategoryRepository) FindByNameAndMain(ctx context.Context, name, mainCategory string) (*model.SubCategory, error) {
	var category model.SubCategory
	err := r.db.WithContext(ctx).
		First(&category, "name = ? AND main_category = ?", name, mainCategory).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *subCategoryRepository) Create(ctx context.Context, category *model.SubCategory) error {
	logger.Debug("Creating sub category in database", map[string]interface{}{
		"name":          category.Name,
		"main_category": category.MainCategory,
	})

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create sub category in database", err, map[string]interface{}{
			"name":          category.Name,
			"main_category": category.MainCategory,
		})
		return err
	}
	return nil
}

func (r *subCategoryRepository) Update(ctx context.Context, category *model.SubCategory) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		logger.Error("Failed to update sub category in database", err, map[string]interface{}{
			"sub_category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *subCategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.SubCategory{}, id)
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when the id
// matched nothing.
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id string) error {
	result := db.WithContext(ctx).Delete(value, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete record", result.Error, map[string]interface{}{
			"id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
