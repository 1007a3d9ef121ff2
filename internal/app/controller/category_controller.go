package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type MainCategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type SubCategoryRequest struct {
	Name         string `json:"name"`
	MainCategory string `json:"mainCategory"`
	Image        string `json:"image"`
}

// ListMainCategories returns main categories sorted by name
// GET /api/v1/categories/main
func (ctrl *CategoryController) ListMainCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListMainCategories(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch categories", err, nil)
		apperrors.Respond(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// CreateMainCategory
// POST /api/v1/categories/main
func (ctrl *CategoryController) CreateMainCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MainCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	category, err := ctrl.categoryService.CreateMainCategory(c.Request.Context(), service.MainCategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		log.Warn("Failed to create category", map[string]interface{}{
			"name":  req.Name,
			"error": err.Error(),
		})
		apperrors.Respond(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"category": category,
	})
}

// UpdateMainCategory
// PUT /api/v1/categories/main/:id
func (ctrl *CategoryController) UpdateMainCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req MainCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	category, err := ctrl.categoryService.UpdateMainCategory(c.Request.Context(), id, service.MainCategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		log.Warn("Failed to update category", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.Respond(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": category,
	})
}

// DeleteMainCategory
// DELETE /api/v1/categories/main/:id
func (ctrl *CategoryController) DeleteMainCategory(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.categoryService.DeleteMainCategory(c.Request.Context(), id); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to delete category", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.Respond(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListSubCategories returns sub categories, optionally of one main category
// GET /api/v1/categories/sub?mainCategory=
func (ctrl *CategoryController) ListSubCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListSubCategories(c.Request.Context(), c.Query("mainCategory"))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch sub categories", err, nil)
		apperrors.Respond(c, err, "Failed to fetch sub categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"subCategories": categories,
	})
}

// CreateSubCategory
// POST /api/v1/categories/sub
func (ctrl *CategoryController) CreateSubCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	category, err := ctrl.categoryService.CreateSubCategory(c.Request.Context(), service.SubCategoryInput(req))
	if err != nil {
		log.Warn("Failed to create sub category", map[string]interface{}{
			"name":          req.Name,
			"main_category": req.MainCategory,
			"error":         err.Error(),
		})
		apperrors.Respond(c, err, "Failed to create sub category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"subCategory": category,
	})
}

// UpdateSubCategory
// PUT /api/v1/categories/sub/:id
func (ctrl *CategoryController) UpdateSubCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	category, err := ctrl.categoryService.UpdateSubCategory(c.Request.Context(), id, service.SubCategoryInput(req))
	if err != nil {
		log.Warn("Failed to update sub category", map[string]interface{}{
			"sub_category_id": id,
			"error":           err.Error(),
		})
		apperrors.Respond(c, err, "Failed to update sub category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"subCategory": category,
	})
}

// DeleteSubCategory
// DELETE /api/v1/categories/sub/:id
func (ctrl *CategoryController) DeleteSubCategory(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.categoryService.DeleteSubCategory(c.Request.Context(), id); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to delete sub category", map[string]interface{}{
			"sub_category_id": id,
			"error":           err.Error(),
		})
		apperrors.Respond(c, err, "Failed to delete sub category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
