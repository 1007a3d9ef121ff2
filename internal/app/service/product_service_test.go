package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/db"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) (ProductService, repository.ProductRepository, *fakeMediaStore) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	media := newFakeMediaStore()
	return NewProductService(productRepo, media, "mariyae-com"), productRepo, media
}

func validProductInput() ProductInput {
	return ProductInput{
		Name:        "Pearl Drop Earrings",
		Description: "Freshwater pearls on a gold hook.",
		KeyFeatures: []string{"Freshwater pearl", "18k hook"},
		Price:       floatPtr(2499),
		Quantity:    intPtr(5),
		Category:    "Earrings",
	}
}

func TestProductService_CreateProduct_ResolvesCategory(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)

	input := validProductInput()
	input.Category = "Rings"
	input.SubCategory = "Studs"

	product, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Studs", product.Category)
	assert.Equal(t, "Studs", product.SubCategory)
	assert.NotEmpty(t, product.ID)
}

func TestProductService_CreateProduct_MissingFields(t *testing.T) {
	svc, productRepo, _ := setupProductServiceTest(t)

	_, err := svc.CreateProduct(context.Background(), ProductInput{Name: "Only a name"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"description", "keyFeatures", "price", "quantity", "category"}, appErr.Fields)

	products, err := productRepo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_CreateProduct_InvalidOffer(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)

	input := validProductInput()
	input.OfferPercentage = floatPtr(120)

	_, err := svc.CreateProduct(context.Background(), input)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestProductService_CreateProduct_SkipsFailedImageURL(t *testing.T) {
	var logs bytes.Buffer
	logger.Initialize(logger.Config{Level: "debug", Format: "json", Output: &logs})
	t.Cleanup(func() {
		logger.Initialize(logger.Config{Level: "info", Format: "json"})
	})

	svc, _, media := setupProductServiceTest(t)
	media.failURL = true

	failedURL := "https://unreachable.example/ring.jpg"
	input := validProductInput()
	input.ImageFiles = [][]byte{[]byte("jpeg-bytes")}
	input.ImageURLs = []string{failedURL}

	product, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, product.Images, 1)
	assert.Contains(t, product.Images[0].PublicID, "mariyae-com/products/")

	var warned bool
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]interface{}
		if json.Unmarshal([]byte(line), &entry) != nil {
			continue
		}
		if entry["level"] == "warn" && entry["url"] == failedURL {
			warned = true
			assert.NotEmpty(t, entry["error"])
		}
	}
	assert.True(t, warned, "expected a warn entry for %s in %q", failedURL, logs.String())
}

func TestProductService_CreateProduct_FileUploadFailure(t *testing.T) {
	svc, productRepo, media := setupProductServiceTest(t)
	media.failUpload = true

	input := validProductInput()
	input.ImageFiles = [][]byte{[]byte("jpeg-bytes")}

	_, err := svc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))

	products, err := productRepo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_DeleteProduct_DeletesEveryImage(t *testing.T) {
	svc, productRepo, media := setupProductServiceTest(t)
	ctx := context.Background()

	input := validProductInput()
	input.ImageFiles = [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	product, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	require.Len(t, product.Images, 3)

	report, err := svc.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Deleted)
	assert.Empty(t, report.Failed)
	assert.Len(t, media.deleted, 3)

	_, err = productRepo.FindByID(ctx, product.ID)
	assert.True(t, apperrors.IsRecordNotFound(err))
}

func TestProductService_DeleteProduct_ContinuesPastFailures(t *testing.T) {
	svc, _, media := setupProductServiceTest(t)
	ctx := context.Background()

	input := validProductInput()
	input.ImageFiles = [][]byte{[]byte("a"), []byte("b")}
	input.VideoFiles = [][]byte{[]byte("v")}
	product, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)

	failing := product.Images[0].PublicID
	media.failDelete[failing] = true

	report, err := svc.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, []string{failing}, report.Failed)
	assert.Len(t, media.deleted, 3)

	_, err = svc.GetProductByID(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	svc, _, media := setupProductServiceTest(t)

	_, err := svc.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, media.deleted)
}

func TestProductService_UpdateProduct_MergesMedia(t *testing.T) {
	svc, _, media := setupProductServiceTest(t)
	ctx := context.Background()

	input := validProductInput()
	input.ImageFiles = [][]byte{[]byte("a"), []byte("b")}
	product, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	dropped := product.Images[0]
	kept := product.Images[1]

	update := validProductInput()
	update.Name = "Pearl Drop Earrings II"
	update.ImagesToDelete = []string{dropped.PublicID}
	update.ImageFiles = [][]byte{[]byte("c")}

	updated, err := svc.UpdateProduct(ctx, product.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Pearl Drop Earrings II", updated.Name)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, kept, updated.Images[0])
	assert.NotEqual(t, dropped.PublicID, updated.Images[1].PublicID)
	assert.Equal(t, []string{dropped.PublicID}, media.deleted)

	stored, err := svc.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Images, stored.Images)
}

func TestProductService_UpdateProduct_KeepsFlagsWhenOmitted(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)
	ctx := context.Background()

	input := validProductInput()
	input.IsOnSale = boolPtr(true)
	input.OfferPercentage = floatPtr(15)
	product, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, product.ID, validProductInput())
	require.NoError(t, err)
	assert.True(t, updated.IsOnSale)
	assert.Equal(t, 15.0, updated.OfferPercentage)
}

func TestProductService_UpdateProduct_NotFoundBeforeValidation(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)

	_, err := svc.UpdateProduct(context.Background(), "missing", ProductInput{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts_Filter(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)
	ctx := context.Background()

	for _, category := range []string{"Earrings", "Necklaces", "Earrings"} {
		input := validProductInput()
		input.Category = category
		_, err := svc.CreateProduct(ctx, input)
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(ctx, repository.ProductFilter{Category: "earrings"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, product := range products {
		assert.Equal(t, "Earrings", product.Category)
	}

	all, err := svc.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
