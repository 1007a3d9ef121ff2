package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/app/service"
	"github.com/mariyae/catalog-backend/internal/db"
	"github.com/mariyae/catalog-backend/internal/middleware"
	"github.com/stretchr/testify/require"
)

// stubMediaStore hands out predictable refs and records deletes.
type stubMediaStore struct {
	mu      sync.Mutex
	next    int
	deleted []string
	failAll bool
}

func (s *stubMediaStore) ref(folder string, kind model.MediaKind) model.MediaRef {
	s.next++
	publicID := fmt.Sprintf("%s/asset-%d", folder, s.next)
	return model.MediaRef{
		URL:      fmt.Sprintf("https://cdn.test/mariyae/%s/upload/%s.jpg", kind, publicID),
		PublicID: publicID,
	}
}

func (s *stubMediaStore) Upload(ctx context.Context, data []byte, folder string, kind model.MediaKind) (model.MediaRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return model.MediaRef{}, errors.New("media host unavailable")
	}
	return s.ref(folder, kind), nil
}

func (s *stubMediaStore) UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return model.MediaRef{}, errors.New("media host unavailable")
	}
	return s.ref(folder, model.MediaImage), nil
}

func (s *stubMediaStore) Delete(ctx context.Context, publicID string, kind model.MediaKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}

type testCatalog struct {
	router *gin.Engine
	repos  repository.Repositories
	media  *stubMediaStore
}

// setupCatalogTest wires every controller against an in-memory database.
func setupCatalogTest(t *testing.T) *testCatalog {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repos := repository.NewGormRepositories(testDB)
	media := &stubMediaStore{}
	mediaCfg := config.MediaConfig{
		CloudName: "mariyae",
		Namespace: "mariyae-com",
		APIKey:    "key-123",
		APISecret: "secret-456",
	}

	categoryController := NewCategoryController(service.NewCategoryService(repos.MainCategories, repos.SubCategories, nil))
	productController := NewProductController(service.NewProductService(repos.Products, media, mediaCfg.Namespace))
	bulkController := NewBulkController(service.NewBulkService(repos.Products, 3))
	bannerController := NewBannerController(service.NewBannerService(repos.Banners, media, nil, mediaCfg.Namespace))
	handpickedController := NewHandpickedController(service.NewHandpickedService(repos.Handpicked, media, nil, mediaCfg.Namespace))
	uploadController := NewUploadController(service.NewUploadService(mediaCfg, nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())

	v1 := router.Group("/api/v1")
	v1.GET("/categories/main", categoryController.ListMainCategories)
	v1.POST("/categories/main", categoryController.CreateMainCategory)
	v1.PUT("/categories/main/:id", categoryController.UpdateMainCategory)
	v1.DELETE("/categories/main/:id", categoryController.DeleteMainCategory)
	v1.GET("/categories/sub", categoryController.ListSubCategories)
	v1.POST("/categories/sub", categoryController.CreateSubCategory)

	v1.GET("/products", productController.GetAllProducts)
	v1.POST("/products", productController.CreateProduct)
	v1.POST("/products/bulk", bulkController.ImportProducts)
	v1.POST("/products/bulk/upload", bulkController.UploadProducts)
	v1.GET("/products/bulk/template", bulkController.DownloadTemplate)
	v1.GET("/products/:id", productController.GetProductByID)
	v1.PUT("/products/:id", productController.UpdateProduct)
	v1.DELETE("/products/:id", productController.DeleteProduct)

	v1.GET("/banners", bannerController.ListBanners)
	v1.POST("/banners", bannerController.CreateBanner)
	v1.PUT("/banners/:id", bannerController.UpdateBanner)
	v1.DELETE("/banners/:id", bannerController.DeleteBanner)

	v1.GET("/handpicked", handpickedController.ListItems)
	v1.POST("/handpicked", handpickedController.SaveItem)
	v1.DELETE("/handpicked/:slot", handpickedController.DeleteItem)

	v1.POST("/upload/sign", uploadController.SignUpload)

	return &testCatalog{router: router, repos: repos, media: media}
}

func (tc *testCatalog) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	return w
}

func (tc *testCatalog) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return tc.do(req)
}

type formFile struct {
	field    string
	filename string
	data     []byte
}

func (tc *testCatalog) doMultipart(t *testing.T, method, path string, values map[string]string, files ...formFile) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range values {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return tc.do(req)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func newEmptyPost(path string) *http.Request {
	return httptest.NewRequest(http.MethodPost, path, nil)
}
