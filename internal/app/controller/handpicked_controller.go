package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

type HandpickedController struct {
	handpickedService service.HandpickedService
}

func NewHandpickedController(handpickedService service.HandpickedService) *HandpickedController {
	return &HandpickedController{
		handpickedService: handpickedService,
	}
}

type HandpickedRequest struct {
	Slot     string `json:"slot"`
	Subtitle string `json:"subtitle"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	IsActive *bool  `json:"isActive"`
	Image    string `json:"image"`
	ImageURL string `json:"imageUrl"`
}

func bindHandpickedInput(c *gin.Context) (service.HandpickedInput, error) {
	if !isMultipart(c) {
		var req HandpickedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.HandpickedInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid request data")
		}
		imageURL := req.ImageURL
		if imageURL == "" {
			imageURL = req.Image
		}
		return service.HandpickedInput{
			Slot:     req.Slot,
			Subtitle: req.Subtitle,
			Title:    req.Title,
			Link:     req.Link,
			IsActive: req.IsActive,
			Image:    service.ImageSource{URL: imageURL},
		}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return service.HandpickedInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid form data")
	}
	fields := formFields(form.Value)

	input := service.HandpickedInput{
		Slot:     fields.text("slot"),
		Subtitle: fields.text("subtitle"),
		Title:    fields.text("title"),
		Link:     fields.text("link"),
		Image:    service.ImageSource{URL: fields.text("imageUrl")},
	}
	if input.IsActive, err = optionalBool(fields.text("isActive"), "isActive"); err != nil {
		return input, err
	}
	if input.Image.File, err = firstFile(form, "image"); err != nil {
		return input, err
	}
	return input, nil
}

// ListItems returns the handpicked grid sorted by slot
// GET /api/v1/handpicked
func (ctrl *HandpickedController) ListItems(c *gin.Context) {
	items, err := ctrl.handpickedService.ListItems(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch handpicked items", err, nil)
		apperrors.Respond(c, err, "Failed to fetch items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
	})
}

// SaveItem creates or replaces the item of a slot
// POST /api/v1/handpicked
func (ctrl *HandpickedController) SaveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, err := bindHandpickedInput(c)
	if err != nil {
		apperrors.Respond(c, err, "Failed to save item")
		return
	}

	item, err := ctrl.handpickedService.SaveItem(c.Request.Context(), input)
	if err != nil {
		log.Warn("Failed to save handpicked item", map[string]interface{}{
			"slot":  input.Slot,
			"error": err.Error(),
		})
		apperrors.Respond(c, err, "Failed to save item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

// DeleteItem clears a slot
// DELETE /api/v1/handpicked/:slot
func (ctrl *HandpickedController) DeleteItem(c *gin.Context) {
	slot := c.Param("slot")

	if err := ctrl.handpickedService.DeleteItem(c.Request.Context(), slot); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to delete handpicked item", map[string]interface{}{
			"slot":  slot,
			"error": err.Error(),
		})
		apperrors.Respond(c, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
