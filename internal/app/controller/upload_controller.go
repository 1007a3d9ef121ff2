package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
	"github.com/spf13/cast"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// SignUpload signs a direct client upload. folder, resource_type and
// content_type are read from the body; every other key is signed as given.
// POST /api/v1/upload/sign
func (ctrl *UploadController) SignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	body := map[string]interface{}{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respondInvalidBody(c, err)
			return
		}
	}

	req := service.SignRequest{
		Folder:       cast.ToString(body["folder"]),
		ResourceType: cast.ToString(body["resource_type"]),
		ContentType:  cast.ToString(body["content_type"]),
		Params:       map[string]interface{}{},
	}
	for key, value := range body {
		switch key {
		case "folder", "resource_type", "content_type":
		default:
			req.Params[key] = value
		}
	}

	result, err := ctrl.uploadService.Sign(c.Request.Context(), req)
	if err != nil {
		log.Error("Failed to generate signature", err, nil)
		apperrors.Respond(c, err, "Failed to generate signature")
		return
	}

	log.Info("Upload signature generated", map[string]interface{}{
		"folder": result.Folder,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"signature": result.Signature,
		"timestamp": result.Timestamp,
		"apiKey":    result.APIKey,
		"cloudName": result.CloudName,
		"folder":    result.Folder,
		"upload":    result.Upload,
	})
}
