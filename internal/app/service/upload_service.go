package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/model"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/mariyae/catalog-backend/pkg/logger"
)

var errMissingSecret = errors.New("media api secret is not configured")

// Presigner issues direct-upload URLs. *storage.S3MediaStore implements it.
type Presigner interface {
	PresignUpload(ctx context.Context, folder string, kind model.MediaKind, contentType string) (*storage.PresignedURLResponse, error)
}

type SignRequest struct {
	Folder       string
	ResourceType string
	ContentType  string
	Params       map[string]interface{}
}

type SignResult struct {
	Signature string                        `json:"signature"`
	Timestamp int64                         `json:"timestamp"`
	APIKey    string                        `json:"apiKey"`
	CloudName string                        `json:"cloudName"`
	Folder    string                        `json:"folder"`
	Upload    *storage.PresignedURLResponse `json:"upload,omitempty"`
}

type UploadService interface {
	// Sign returns the parameters a client needs to upload straight to the
	// media host.
	Sign(ctx context.Context, req SignRequest) (*SignResult, error)
}

type uploadService struct {
	presigner     Presigner
	apiKey        string
	apiSecret     string
	cloudName     string
	defaultFolder string
	now           func() time.Time
}

// NewUploadService builds the signer. presigner may be nil, in which case
// only the signature is returned.
func NewUploadService(cfg config.MediaConfig, presigner Presigner) UploadService {
	return &uploadService{
		presigner:     presigner,
		apiKey:        cfg.APIKey,
		apiSecret:     cfg.APISecret,
		cloudName:     cfg.CloudName,
		defaultFolder: storage.Folder(cfg.Namespace, "products"),
		now:           time.Now,
	}
}

func (s *uploadService) Sign(ctx context.Context, req SignRequest) (*SignResult, error) {
	if s.apiSecret == "" {
		return nil, apperrors.Upstream(apperrors.UploadSignFailed, "Failed to generate signature", errMissingSecret)
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = s.defaultFolder
	}
	kind := model.MediaImage
	if strings.EqualFold(req.ResourceType, string(model.MediaVideo)) {
		kind = model.MediaVideo
	}

	timestamp := s.now().Unix()
	params := make(map[string]interface{}, len(req.Params)+2)
	for key, value := range req.Params {
		params[key] = value
	}
	params["timestamp"] = timestamp
	params["folder"] = folder

	result := &SignResult{
		Signature: storage.SignParams(params, s.apiSecret),
		Timestamp: timestamp,
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
		Folder:    folder,
	}

	if s.presigner != nil {
		upload, err := s.presigner.PresignUpload(ctx, folder, kind, req.ContentType)
		if err != nil {
			return nil, apperrors.Upstream(apperrors.UploadSignFailed, "Failed to generate signature", err)
		}
		result.Upload = upload
	}

	logger.Debug("Upload signature issued", map[string]interface{}{
		"folder":        folder,
		"resource_type": kind,
	})
	return result, nil
}
