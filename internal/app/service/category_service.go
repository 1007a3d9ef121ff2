package service

import (
	"context"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"github.com/mariyae/catalog-backend/pkg/redis"
)

var (
	ErrCategoryNameRequired    = apperrors.Validation(apperrors.ValidationRequired, "Category name is required", "name")
	ErrSubCategoryNameRequired = apperrors.Validation(apperrors.ValidationRequired, "Sub category name is required", "name")
	ErrCategoryNotFound        = apperrors.NotFound(apperrors.CategoryNotFound, "Category not found")
	ErrCategoryExists          = apperrors.Duplicate(apperrors.CategoryAlreadyExists, "Category already exists")
	ErrSubCategoryNotFound     = apperrors.NotFound(apperrors.SubCategoryNotFound, "Sub category not found")
	ErrSubCategoryExists       = apperrors.Duplicate(apperrors.SubCategoryAlreadyExists, "Sub category already exists")
	ErrMainCategoryMissing     = apperrors.Reference(apperrors.CategoryMainNotFound, "Main category does not exist")
)

const (
	cacheKeyMainCategories = "categories:main"
	cacheKeySubCategories  = "categories:sub:"
	cachePatternCategories = "categories:*"
)

type MainCategoryInput struct {
	Name  string
	Image string
}

type SubCategoryInput struct {
	Name         string
	MainCategory string
	Image        string
}

type CategoryService interface {
	ListMainCategories(ctx context.Context) ([]model.MainCategory, error)
	CreateMainCategory(ctx context.Context, input MainCategoryInput) (*model.MainCategory, error)
	UpdateMainCategory(ctx context.Context, id string, input MainCategoryInput) (*model.MainCategory, error)
	DeleteMainCategory(ctx context.Context, id string) error

	ListSubCategories(ctx context.Context, mainCategory string) ([]model.SubCategory, error)
	CreateSubCategory(ctx context.Context, input SubCategoryInput) (*model.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id string, input SubCategoryInput) (*model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
}

type categoryService struct {
	mainRepo repository.MainCategoryRepository
	subRepo  repository.SubCategoryRepository
	cache    *redis.Cache
}

// NewCategoryService builds the registry. cache may be nil.
func NewCategoryService(mainRepo repository.MainCategoryRepository, subRepo repository.SubCategoryRepository, cache *redis.Cache) CategoryService {
	return &categoryService{
		mainRepo: mainRepo,
		subRepo:  subRepo,
		cache:    cache,
	}
}

func (s *categoryService) ListMainCategories(ctx context.Context) ([]model.MainCategory, error) {
	var categories []model.MainCategory
	if s.cache.GetJSON(ctx, cacheKeyMainCategories, &categories) {
		return categories, nil
	}

	categories, err := s.mainRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to fetch categories", err)
	}

	s.cache.SetJSON(ctx, cacheKeyMainCategories, categories)
	return categories, nil
}

func (s *categoryService) CreateMainCategory(ctx context.Context, input MainCategoryInput) (*model.MainCategory, error) {
	name := model.NormalizeCategoryName(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	if err := s.ensureMainNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	category := &model.MainCategory{Name: name, Image: strings.TrimSpace(input.Image)}
	if err := s.mainRepo.Create(ctx, category); err != nil {
		return nil, translateWriteError(err, ErrCategoryExists, "Failed to create category")
	}

	logger.Info("Main category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	s.cache.Invalidate(ctx, cachePatternCategories)
	return category, nil
}

func (s *categoryService) UpdateMainCategory(ctx context.Context, id string, input MainCategoryInput) (*model.MainCategory, error) {
	name := model.NormalizeCategoryName(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.mainRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrCategoryNotFound, "Failed to update category")
	}

	if err := s.ensureMainNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	category.Name = name
	category.Image = strings.TrimSpace(input.Image)
	if err := s.mainRepo.Update(ctx, category); err != nil {
		return nil, translateWriteError(err, ErrCategoryExists, "Failed to update category")
	}

	s.cache.Invalidate(ctx, cachePatternCategories)
	return category, nil
}

// ensureMainNameFree fails when another main category already uses name,
// ignoring case. exceptID is the record being renamed.
func (s *categoryService) ensureMainNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := s.mainRepo.FindByKey(ctx, model.CategoryKey(name))
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil
		}
		return apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to check category name", err)
	}
	if existing.ID != exceptID {
		return ErrCategoryExists
	}
	return nil
}

// DeleteMainCategory removes the record only. Sub categories and products
// naming it keep their plain string references.
func (s *categoryService) DeleteMainCategory(ctx context.Context, id string) error {
	if err := s.mainRepo.Delete(ctx, id); err != nil {
		return translateLookupError(err, ErrCategoryNotFound, "Failed to delete category")
	}
	s.cache.Invalidate(ctx, cachePatternCategories)
	return nil
}

func (s *categoryService) ListSubCategories(ctx context.Context, mainCategory string) ([]model.SubCategory, error) {
	mainCategory = strings.TrimSpace(mainCategory)
	key := cacheKeySubCategories + strings.ToLower(mainCategory)

	var categories []model.SubCategory
	if s.cache.GetJSON(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.subRepo.List(ctx, mainCategory)
	if err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to fetch sub categories", err)
	}

	s.cache.SetJSON(ctx, key, categories)
	return categories, nil
}

func (s *categoryService) CreateSubCategory(ctx context.Context, input SubCategoryInput) (*model.SubCategory, error) {
	if err := s.validateSubCategory(ctx, input, ""); err != nil {
		return nil, err
	}

	category := &model.SubCategory{
		Name:         input.Name,
		MainCategory: input.MainCategory,
		Image:        strings.TrimSpace(input.Image),
	}
	if err := s.subRepo.Create(ctx, category); err != nil {
		return nil, translateWriteError(err, ErrSubCategoryExists, "Failed to create sub category")
	}

	logger.Info("Sub category created", map[string]interface{}{
		"sub_category_id": category.ID,
		"name":            category.Name,
		"main_category":   category.MainCategory,
	})
	s.cache.Invalidate(ctx, cachePatternCategories)
	return category, nil
}

// UpdateSubCategory applies the same checks as creation, excluding the
// record itself from the duplicate check.
func (s *categoryService) UpdateSubCategory(ctx context.Context, id string, input SubCategoryInput) (*model.SubCategory, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrSubCategoryNameRequired
	}

	category, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrSubCategoryNotFound, "Failed to update sub category")
	}

	if err := s.validateSubCategory(ctx, input, id); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.MainCategory = input.MainCategory
	category.Image = strings.TrimSpace(input.Image)
	if err := s.subRepo.Update(ctx, category); err != nil {
		return nil, translateWriteError(err, ErrSubCategoryExists, "Failed to update sub category")
	}

	s.cache.Invalidate(ctx, cachePatternCategories)
	return category, nil
}

// validateSubCategory checks the name, the main category reference and the
// uniqueness of (name, mainCategory). An empty main category stands for
// "no main category", so bare names are unique among themselves.
func (s *categoryService) validateSubCategory(ctx context.Context, input SubCategoryInput, exceptID string) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrSubCategoryNameRequired
	}

	if input.MainCategory != "" {
		if _, err := s.mainRepo.FindByName(ctx, input.MainCategory); err != nil {
			if apperrors.IsRecordNotFound(err) {
				return ErrMainCategoryMissing
			}
			return apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to check main category", err)
		}
	}

	existing, err := s.subRepo.FindByNameAndMain(ctx, input.Name, input.MainCategory)
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil
		}
		return apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to check sub category", err)
	}
	if existing.ID == exceptID {
		return nil
	}
	if input.MainCategory != "" {
		return apperrors.Duplicate(apperrors.SubCategoryAlreadyExists, "Sub category already exists for this main category")
	}
	return ErrSubCategoryExists
}

func (s *categoryService) DeleteSubCategory(ctx context.Context, id string) error {
	if err := s.subRepo.Delete(ctx, id); err != nil {
		return translateLookupError(err, ErrSubCategoryNotFound, "Failed to delete sub category")
	}
	s.cache.Invalidate(ctx, cachePatternCategories)
	return nil
}
