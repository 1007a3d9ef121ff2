package service

import (
	"context"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/mariyae/catalog-backend/pkg/logger"
)

// ImageSource is a single image given either as uploaded bytes or as a
// remote URL. File wins when both are set.
type ImageSource struct {
	File []byte
	URL  string
}

func (s ImageSource) IsZero() bool {
	return len(s.File) == 0 && strings.TrimSpace(s.URL) == ""
}

// resolveImage turns src into a stored URL. current is returned unchanged
// when src is empty or repeats it. A URL that cannot be fetched is kept as
// given; only a failed file upload is an error.
func resolveImage(ctx context.Context, media storage.MediaStore, src ImageSource, folder, current string) (string, error) {
	if len(src.File) > 0 {
		ref, err := media.Upload(ctx, src.File, folder, model.MediaImage)
		if err != nil {
			return "", apperrors.Upstream(apperrors.UploadFailed, "Failed to upload image", err)
		}
		return ref.URL, nil
	}

	rawURL := strings.TrimSpace(src.URL)
	if rawURL == "" || rawURL == current {
		return current, nil
	}

	ref, err := media.UploadFromURL(ctx, rawURL, folder)
	if err != nil {
		logger.Warn("Failed to copy image from URL, keeping the URL as given", map[string]interface{}{
			"url":    rawURL,
			"folder": folder,
			"error":  err.Error(),
		})
		return rawURL, nil
	}
	return ref.URL, nil
}
