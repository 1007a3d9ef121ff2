package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

type BannerController struct {
	bannerService service.BannerService
}

func NewBannerController(bannerService service.BannerService) *BannerController {
	return &BannerController{
		bannerService: bannerService,
	}
}

// BannerRequest is the JSON body of create and update. Image fields hold
// URLs; omitted fields are left unchanged on update.
type BannerRequest struct {
	Order           *int    `json:"order"`
	EyebrowText     *string `json:"eyebrowText"`
	Headline        *string `json:"headline"`
	Description     *string `json:"description"`
	Button1Text     *string `json:"button1Text"`
	Button1Link     *string `json:"button1Link"`
	Button2Text     *string `json:"button2Text"`
	Button2Link     *string `json:"button2Link"`
	LayoutType      *string `json:"layoutType"`
	IsActive        *bool   `json:"isActive"`
	BackgroundImage string  `json:"backgroundImage"`
	DecorativeImage string  `json:"decorativeImage"`
}

// bindBannerInput reads JSON, or a multipart form carrying image files
// under backgroundImage/decorativeImage and URLs under *Url.
func bindBannerInput(c *gin.Context) (service.BannerInput, error) {
	if !isMultipart(c) {
		var req BannerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.BannerInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid request data")
		}
		return service.BannerInput{
			Order:           req.Order,
			EyebrowText:     req.EyebrowText,
			Headline:        req.Headline,
			Description:     req.Description,
			Button1Text:     req.Button1Text,
			Button1Link:     req.Button1Link,
			Button2Text:     req.Button2Text,
			Button2Link:     req.Button2Link,
			LayoutType:      req.LayoutType,
			IsActive:        req.IsActive,
			BackgroundImage: service.ImageSource{URL: req.BackgroundImage},
			DecorativeImage: service.ImageSource{URL: req.DecorativeImage},
		}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return service.BannerInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid form data")
	}
	fields := formFields(form.Value)

	input := service.BannerInput{
		EyebrowText: fields.optional("eyebrowText"),
		Headline:    fields.optional("headline"),
		Description: fields.optional("description"),
		Button1Text: fields.optional("button1Text"),
		Button1Link: fields.optional("button1Link"),
		Button2Text: fields.optional("button2Text"),
		Button2Link: fields.optional("button2Link"),
		LayoutType:  fields.optional("layoutType"),
		BackgroundImage: service.ImageSource{
			URL: fields.text("backgroundImageUrl"),
		},
		DecorativeImage: service.ImageSource{
			URL: fields.text("decorativeImageUrl"),
		},
	}

	if raw := fields.text("order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return input, apperrors.Validation(apperrors.ValidationInvalidInput, "order must be an integer", "order")
		}
		input.Order = &order
	}
	if input.IsActive, err = optionalBool(fields.text("isActive"), "isActive"); err != nil {
		return input, err
	}
	if input.BackgroundImage.File, err = firstFile(form, "backgroundImage"); err != nil {
		return input, err
	}
	if input.DecorativeImage.File, err = firstFile(form, "decorativeImage"); err != nil {
		return input, err
	}
	return input, nil
}

// ListBanners returns banners by display order
// GET /api/v1/banners?active=true
func (ctrl *BannerController) ListBanners(c *gin.Context) {
	banners, err := ctrl.bannerService.ListBanners(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch banners", err, nil)
		apperrors.Respond(c, err, "Failed to fetch banners")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"banners": banners,
	})
}

// CreateBanner
// POST /api/v1/banners
func (ctrl *BannerController) CreateBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, err := bindBannerInput(c)
	if err != nil {
		apperrors.Respond(c, err, "Failed to create banner")
		return
	}

	banner, err := ctrl.bannerService.CreateBanner(c.Request.Context(), input)
	if err != nil {
		log.Error("Failed to create banner", err, nil)
		apperrors.Respond(c, err, "Failed to create banner")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"banner":  banner,
	})
}

// UpdateBanner merges the given fields into a banner
// PUT /api/v1/banners/:id
func (ctrl *BannerController) UpdateBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	input, err := bindBannerInput(c)
	if err != nil {
		apperrors.Respond(c, err, "Failed to update banner")
		return
	}

	banner, err := ctrl.bannerService.UpdateBanner(c.Request.Context(), id, input)
	if err != nil {
		log.Warn("Failed to update banner", map[string]interface{}{
			"banner_id": id,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "Failed to update banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"banner":  banner,
	})
}

// DeleteBanner
// DELETE /api/v1/banners/:id
func (ctrl *BannerController) DeleteBanner(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.bannerService.DeleteBanner(c.Request.Context(), id); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to delete banner", map[string]interface{}{
			"banner_id": id,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "Failed to delete banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
