package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation(ValidationRequired, "name is required", "name"), http.StatusBadRequest},
		{"duplicate", Duplicate(CategoryAlreadyExists, "Category already exists"), http.StatusBadRequest},
		{"reference", Reference(CategoryMainNotFound, "Main category does not exist"), http.StatusBadRequest},
		{"not found", NotFound(ProductNotFound, "Product not found"), http.StatusNotFound},
		{"upstream", Upstream(UploadFailed, "upload failed", errors.New("s3 down")), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("loading: %w", NotFound(ProductNotFound, "Product not found")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestAppError_IsMatchesKindAndCode(t *testing.T) {
	sentinel := NotFound(ProductNotFound, "Product not found")
	err := fmt.Errorf("update: %w", NotFound(ProductNotFound, "different message"))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, NotFound(BannerNotFound, "Banner not found"))
}

func TestMissingFields(t *testing.T) {
	err := MissingFields(ProductMissingFields, []string{"name", "price"})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Missing required fields: name, price", err.Error())
	assert.Equal(t, []string{"name", "price"}, err.Fields)
}

func TestParseError(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "product lookup")
	assert.Equal(t, http.StatusNotFound, info.Status)
	assert.Equal(t, "Product not found", info.Message)

	info = ParseError(errors.New("UNIQUE constraint failed: main_categories.name_key"), "")
	assert.Equal(t, CategoryAlreadyExists, info.Code)
	assert.Equal(t, http.StatusBadRequest, info.Status)

	info = ParseError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_sub_categories_name_main"`), "")
	assert.Equal(t, SubCategoryAlreadyExists, info.Code)

	info = ParseError(errors.New("dial tcp: connection refused"), "")
	assert.Equal(t, InternalExternalAPI, info.Code)

	info = ParseError(errors.New("weird"), "Failed to create product")
	assert.Equal(t, "Failed to create product", info.Message)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, MissingFields(ProductMissingFields, []string{"name"}), "Failed to create product")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, ProductMissingFields, body.Code)
	assert.Equal(t, []string{"name"}, body.Fields)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Respond(c, Upstream(UploadFailed, "upload failed", errors.New("s3 down")), "Failed to create product")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to create product", body.Error)
	assert.Contains(t, body.Details, "s3 down")
}
