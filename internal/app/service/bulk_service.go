package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mariyae/catalog-backend/internal/app/repository"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/importer"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const DefaultBatchSize = 10

var ErrNoProducts = apperrors.Validation(apperrors.ImportEmpty, "No products provided", "products")

// BulkError reports one row that was not inserted. Index is the 1-based
// position of the row in the request, or its sheet row for file uploads.
type BulkError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BulkResult struct {
	Success bool        `json:"success"`
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Errors  []BulkError `json:"errors,omitempty"`
}

// FileImportResult is the outcome of an uploaded spreadsheet. ParseErrors
// lists rows rejected before insertion.
type FileImportResult struct {
	BulkResult
	ParseErrors []importer.RowError `json:"parseErrors"`
}

type BulkService interface {
	// ImportRows validates loosely typed rows and inserts the valid ones.
	ImportRows(ctx context.Context, rows []importer.Values) (*BulkResult, error)
	// ParseFile reads and validates a spreadsheet without writing anything.
	ParseFile(r io.Reader, filename string) (importer.ParseResult, error)
	// ImportFile parses a spreadsheet and inserts the rows that validated.
	ImportFile(ctx context.Context, r io.Reader, filename string) (*FileImportResult, error)
}

type bulkService struct {
	productRepo repository.ProductRepository
	batchSize   int
}

func NewBulkService(productRepo repository.ProductRepository, batchSize int) BulkService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &bulkService{
		productRepo: productRepo,
		batchSize:   batchSize,
	}
}

// bulkItem is one row waiting for insertion. Rows with problems are counted
// as failed without touching the store.
type bulkItem struct {
	index    int
	row      importer.ProductRow
	problems []string
}

func (s *bulkService) ImportRows(ctx context.Context, rows []importer.Values) (*BulkResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoProducts
	}

	items := make([]bulkItem, len(rows))
	for i, values := range rows {
		row := importer.ParseRow(importer.NewValues(values))
		items[i] = bulkItem{
			index:    i + 1,
			row:      row,
			problems: importer.ValidateRow(row, i+1),
		}
	}
	return s.insert(ctx, items), nil
}

func (s *bulkService) ParseFile(r io.Reader, filename string) (importer.ParseResult, error) {
	format, err := importer.FormatOf(filename)
	if err != nil {
		return importer.ParseResult{}, apperrors.Validation(apperrors.ImportInvalidFormat, err.Error(), "file")
	}

	result, err := importer.ParseFile(r, format)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return importer.ParseResult{}, apperrors.Validation(apperrors.ImportEmpty, "File is empty or has no data rows", "file")
		}
		return importer.ParseResult{}, apperrors.Validation(apperrors.ImportParseFailed, err.Error(), "file")
	}
	return result, nil
}

func (s *bulkService) ImportFile(ctx context.Context, r io.Reader, filename string) (*FileImportResult, error) {
	parsed, err := s.ParseFile(r, filename)
	if err != nil {
		return nil, err
	}

	rowNumbers := make(map[int]bool, len(parsed.Errors))
	for _, rowErr := range parsed.Errors {
		rowNumbers[rowErr.Row] = true
	}

	items := make([]bulkItem, len(parsed.Products))
	for i, row := range parsed.Products {
		items[i] = bulkItem{index: i + 1, row: row}
	}

	result := &FileImportResult{
		BulkResult:  *s.insert(ctx, items),
		ParseErrors: parsed.Errors,
	}
	result.Success = result.Success && parsed.Success

	logger.Info("Spreadsheet import finished", map[string]interface{}{
		"file":          filename,
		"created":       result.Created,
		"failed":        result.Failed,
		"rejected_rows": len(rowNumbers),
	})
	return result, nil
}

// insert writes items in batches of batchSize. Rows within a batch are
// written concurrently and a batch is fully settled before the next starts.
func (s *bulkService) insert(ctx context.Context, items []bulkItem) *BulkResult {
	result := &BulkResult{}
	var mu sync.Mutex

	record := func(item bulkItem, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			result.Created++
			return
		}
		result.Failed++
		result.Errors = append(result.Errors, BulkError{Index: item.index, Error: err.Error()})
	}

	for start := 0; start < len(items); start += s.batchSize {
		end := start + s.batchSize
		if end > len(items) {
			end = len(items)
		}

		var g errgroup.Group
		for _, item := range items[start:end] {
			g.Go(func() error {
				record(item, s.insertOne(ctx, item))
				return nil
			})
		}
		_ = g.Wait()
	}

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Index < result.Errors[j].Index
	})
	result.Success = result.Failed == 0

	logger.Info("Bulk insert finished", map[string]interface{}{
		"rows":       len(items),
		"created":    result.Created,
		"failed":     result.Failed,
		"batch_size": s.batchSize,
	})
	return result
}

func (s *bulkService) insertOne(ctx context.Context, item bulkItem) error {
	if len(item.problems) > 0 {
		return errors.New(strings.Join(item.problems, "; "))
	}

	product := item.row.Product()
	for _, ref := range append(product.Images, product.Videos...) {
		if ref.PublicID == ref.URL {
			logger.Warn("Media URL has no public id, storing URL as its id", map[string]interface{}{
				"index": item.index,
				"url":   ref.URL,
			})
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	return nil
}
