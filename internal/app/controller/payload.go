package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/model"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
	"github.com/spf13/cast"
)

const (
	maxImageBytes = 10 << 20
	maxVideoBytes = 100 << 20
)

// isMultipart reports whether the request carries a multipart form.
// Everything else is decoded as JSON.
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFields holds the text values of a multipart form.
type formFields map[string][]string

func (f formFields) get(key string) (string, bool) {
	values, ok := f[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (f formFields) text(key string) string {
	value, _ := f.get(key)
	return strings.TrimSpace(value)
}

// optional returns nil for an absent field so partial updates can tell
// "not sent" from "sent empty".
func (f formFields) optional(key string) *string {
	value, ok := f.get(key)
	if !ok {
		return nil
	}
	return &value
}

// list reads a field holding a JSON array string, falling back to a comma
// separated list.
func (f formFields) list(key string) ([]string, error) {
	raw := f.text(key)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, apperrors.Validation(apperrors.ProductInvalidPayload, fmt.Sprintf("%s must be a JSON array of strings", key), key)
		}
		return values, nil
	}
	return model.SplitFeatures(raw), nil
}

// readFiles loads every uploaded file under key, rejecting any larger than
// limit bytes. Empty parts are skipped.
func readFiles(form *multipart.Form, key string, limit int64) ([][]byte, error) {
	var files [][]byte
	for _, header := range form.File[key] {
		if header.Size == 0 {
			continue
		}
		if header.Size > limit {
			return nil, apperrors.Validation(apperrors.UploadFileTooLarge,
				fmt.Sprintf("%s exceeds the %d MB limit", header.Filename, limit>>20), key)
		}
		data, err := readFile(header)
		if err != nil {
			return nil, apperrors.Validation(apperrors.ValidationInvalidInput, "Could not read uploaded file "+header.Filename, key)
		}
		files = append(files, data)
	}
	return files, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// firstFile returns the first non-empty upload under key, or nil.
func firstFile(form *multipart.Form, key string) ([]byte, error) {
	files, err := readFiles(form, key, maxImageBytes)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return files[0], nil
}

// optionalFloat converts a JSON number or numeric string. Absent and blank
// values are nil.
func optionalFloat(value interface{}, field string) (*float64, error) {
	if isBlankValue(value) {
		return nil, nil
	}
	f, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(value)))
	if err != nil {
		return nil, apperrors.Validation(apperrors.ProductInvalidPayload, field+" must be a number", field)
	}
	return &f, nil
}

func optionalInt(value interface{}, field string) (*int, error) {
	f, err := optionalFloat(value, field)
	if err != nil || f == nil {
		return nil, err
	}
	i := int(*f)
	return &i, nil
}

func optionalBool(value interface{}, field string) (*bool, error) {
	if isBlankValue(value) {
		return nil, nil
	}
	b, err := cast.ToBoolE(strings.TrimSpace(cast.ToString(value)))
	if err != nil {
		return nil, apperrors.Validation(apperrors.ProductInvalidPayload, field+" must be true or false", field)
	}
	return &b, nil
}

// featureList accepts either a comma separated string or a JSON array.
func featureList(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return model.SplitFeatures(v)
	default:
		var features []string
		for _, item := range cast.ToStringSlice(v) {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				features = append(features, trimmed)
			}
		}
		return features
	}
}

func isBlankValue(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// respondInvalidBody reports a body that could not be decoded at all.
func respondInvalidBody(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})
	apperrors.Respond(c, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid request data"), "Invalid request data")
}
