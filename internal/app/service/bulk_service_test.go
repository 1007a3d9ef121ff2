package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/db"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulkImageURL = "https://cdn.test/mariyae/image/upload/mariyae-com/products/ring.jpg"

// flakyProductRepository fails inserts of products with a given name.
type flakyProductRepository struct {
	repository.ProductRepository
	failName string
}

func (r *flakyProductRepository) Create(ctx context.Context, product *model.Product) error {
	if product.Name == r.failName {
		return errors.New("connection reset by peer")
	}
	return r.ProductRepository.Create(ctx, product)
}

// pacedProductRepository holds every insert for a moment and records how
// many were in flight and which rows had finished when each one started.
type pacedProductRepository struct {
	repository.ProductRepository
	batchSize int

	mu         sync.Mutex
	inFlight   int
	peak       int
	finished   int
	violations []string
}

func (r *pacedProductRepository) Create(ctx context.Context, product *model.Product) error {
	var row int
	fmt.Sscanf(product.Name, "Ring %d", &row)

	r.mu.Lock()
	r.inFlight++
	if r.inFlight > r.peak {
		r.peak = r.inFlight
	}
	if earlier := (row - 1) / r.batchSize * r.batchSize; r.finished < earlier {
		r.violations = append(r.violations, fmt.Sprintf("row %d started after %d of %d earlier rows", row, r.finished, earlier))
	}
	r.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	r.mu.Lock()
	r.inFlight--
	r.finished++
	r.mu.Unlock()
	return nil
}

func setupBulkServiceTest(t *testing.T, batchSize int) (BulkService, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewBulkService(productRepo, batchSize), productRepo
}

func bulkRow(n int) importer.Values {
	return importer.Values{
		"name":        fmt.Sprintf("Ring %d", n),
		"description": "Sterling silver band. Polished by hand.",
		"keyFeatures": "Sterling silver, Hallmarked",
		"price":       1999.0,
		"stock":       "4",
		"category":    "Rings",
		"images":      []interface{}{bulkImageURL},
	}
}

func bulkRows(count int) []importer.Values {
	rows := make([]importer.Values, count)
	for i := range rows {
		rows[i] = bulkRow(i + 1)
	}
	return rows
}

func TestBulkService_ImportRows_PartialSuccess(t *testing.T) {
	for _, batchSize := range []int{10, 3, 1} {
		t.Run(fmt.Sprintf("batch size %d", batchSize), func(t *testing.T) {
			svc, productRepo := setupBulkServiceTest(t, batchSize)
			ctx := context.Background()

			rows := bulkRows(12)
			delete(rows[4], "name")

			result, err := svc.ImportRows(ctx, rows)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, 11, result.Created)
			assert.Equal(t, 1, result.Failed)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, 5, result.Errors[0].Index)
			assert.Equal(t, "Row 5: Product name is required", result.Errors[0].Error)

			products, err := productRepo.List(ctx, repository.ProductFilter{})
			require.NoError(t, err)
			assert.Len(t, products, 11)
		})
	}
}

func TestBulkService_ImportRows_AllValid(t *testing.T) {
	svc, productRepo := setupBulkServiceTest(t, 0)
	ctx := context.Background()

	result, err := svc.ImportRows(ctx, bulkRows(4))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Created)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)

	products, err := productRepo.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, 4, products[0].Quantity)
	assert.Equal(t, "mariyae-com/products/ring", products[0].Images[0].PublicID)
}

func TestBulkService_ImportRows_Empty(t *testing.T) {
	svc, _ := setupBulkServiceTest(t, 10)

	_, err := svc.ImportRows(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestBulkService_ImportRows_StoreFailureIsolated(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	svc := NewBulkService(&flakyProductRepository{ProductRepository: productRepo, failName: "Ring 2"}, 10)

	result, err := svc.ImportRows(context.Background(), bulkRows(3))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Index)
	assert.Contains(t, result.Errors[0].Error, "connection reset")
}

func TestBulkService_ImportRows_ErrorsSortedByIndex(t *testing.T) {
	svc, _ := setupBulkServiceTest(t, 4)

	rows := bulkRows(9)
	for _, i := range []int{8, 1, 5} {
		rows[i]["price"] = "free"
	}

	result, err := svc.ImportRows(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Created)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[0].Index)
	assert.Equal(t, 6, result.Errors[1].Index)
	assert.Equal(t, 9, result.Errors[2].Index)
}

func TestBulkService_ImportFile_CSV(t *testing.T) {
	svc, productRepo := setupBulkServiceTest(t, 10)
	ctx := context.Background()

	csv := "Name,Description,Key Features,Price,Stock,Category,Images\n" +
		"Pearl Studs,Freshwater pearls.,Pearl,899,12,Earrings," + bulkImageURL + "\n" +
		"Gold Hoops,Light hoops.,Gold,1299,3,Earrings," + bulkImageURL + "\n" +
		"Broken,Missing price.,x,,1,Earrings," + bulkImageURL + "\n"

	result, err := svc.ImportFile(ctx, strings.NewReader(csv), "products.csv")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Created)
	assert.Zero(t, result.Failed)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, 4, result.ParseErrors[0].Row)

	products, err := productRepo.List(ctx, repository.ProductFilter{Category: "Earrings"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestBulkService_ParseFile_DoesNotInsert(t *testing.T) {
	svc, productRepo := setupBulkServiceTest(t, 10)
	ctx := context.Background()

	csv := "name,description,keyFeatures,price,quantity,category,images\n" +
		"Pearl Studs,Freshwater pearls.,Pearl,899,12,Earrings," + bulkImageURL + "\n"

	result, err := svc.ParseFile(strings.NewReader(csv), "products.csv")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Products, 1)

	products, err := productRepo.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBulkService_ParseFile_Rejects(t *testing.T) {
	svc, _ := setupBulkServiceTest(t, 10)

	_, err := svc.ParseFile(strings.NewReader("x"), "products.pdf")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ImportInvalidFormat, appErr.Code)

	_, err = svc.ParseFile(strings.NewReader("name,price\n"), "products.csv")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ImportEmpty, appErr.Code)
}

func TestBulkService_ImportRows_BatchesSettleInOrder(t *testing.T) {
	for _, batchSize := range []int{DefaultBatchSize, 4} {
		t.Run(fmt.Sprintf("batch size %d", batchSize), func(t *testing.T) {
			repo := &pacedProductRepository{batchSize: batchSize}
			svc := NewBulkService(repo, batchSize)

			result, err := svc.ImportRows(context.Background(), bulkRows(25))
			require.NoError(t, err)
			assert.Equal(t, 25, result.Created)

			assert.LessOrEqual(t, repo.peak, batchSize)
			assert.Greater(t, repo.peak, 1)
			assert.Empty(t, repo.violations)
		})
	}
}

func TestBulkService_DefaultBatchSize(t *testing.T) {
	repo := &pacedProductRepository{batchSize: DefaultBatchSize}
	svc := NewBulkService(repo, 0)

	result, err := svc.ImportRows(context.Background(), bulkRows(25))
	require.NoError(t, err)
	assert.Equal(t, 25, result.Created)
	assert.LessOrEqual(t, repo.peak, DefaultBatchSize)
	assert.Empty(t, repo.violations)
}
