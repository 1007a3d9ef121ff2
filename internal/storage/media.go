package storage

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
)

// MediaStore is the media host the catalog keeps its images and videos on.
// Every stored asset is addressed by a URL for display and a public id for
// deletion.
type MediaStore interface {
	// Upload stores raw bytes under folder.
	Upload(ctx context.Context, data []byte, folder string, kind model.MediaKind) (model.MediaRef, error)
	// UploadFromURL fetches a remote image and stores it under folder.
	UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error)
	Delete(ctx context.Context, publicID string, kind model.MediaKind) error
}

var canonicalURLPattern = regexp.MustCompile(`^https?://[^/]+/.+/(image|video)/upload/.+`)

// IsCanonicalURL reports whether rawURL has the shape of a URL issued by the
// media host: scheme://host/.../(image|video)/upload/...
func IsCanonicalURL(rawURL string) bool {
	return canonicalURLPattern.MatchString(rawURL)
}

// ExtractPublicID recovers the public id from a media URL: the text after the
// first "/upload/" with any trailing extension removed. A URL without
// "/upload/" is returned unchanged.
func ExtractPublicID(rawURL string) string {
	idx := strings.Index(rawURL, "/upload/")
	if idx == -1 || idx+len("/upload/") == len(rawURL) {
		return rawURL
	}
	rest := rawURL[idx+len("/upload/"):]
	if dot := strings.LastIndex(rest, "."); dot > 0 {
		rest = rest[:dot]
	}
	return rest
}

// RefFromURL pairs a URL with its extracted public id.
func RefFromURL(rawURL string) model.MediaRef {
	return model.MediaRef{URL: rawURL, PublicID: ExtractPublicID(rawURL)}
}

// Folder joins the configured namespace and a collection name,
// e.g. Folder("mariyae-com", "products") = "mariyae-com/products".
func Folder(namespace, name string) string {
	return path.Join(namespace, name)
}

var extensionsByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/avif":      ".avif",
	"image/svg+xml":   ".svg",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// extensionFor maps a content type to a file extension, "" when unknown.
func extensionFor(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return extensionsByType[strings.TrimSpace(strings.ToLower(base))]
}
