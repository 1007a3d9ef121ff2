package importer

import (
	"fmt"
	"math"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/storage"
)

// ValidateRow checks one row and returns every problem found, each message
// prefixed with "Row <rowNumber>: ". An empty result means the row is valid.
func ValidateRow(row ProductRow, rowNumber int) []string {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("Row %d: ", rowNumber)+fmt.Sprintf(format, args...))
	}

	if row.Name == "" {
		add("Product name is required")
	}
	if row.Description == "" {
		add("Description is required")
	}
	if len(row.KeyFeatures) == 0 {
		add("At least one key feature is required (comma-separated if multiple)")
	}
	if !positive(row.Price) {
		add("Valid price is required")
	}
	if model.ResolveCategory(row.Category, row.MainCategory, row.SubCategory) == "" {
		add("Category is required")
	}
	if row.Quantity == nil || *row.Quantity < 0 {
		add("Valid quantity (stock) is required")
	}

	if len(row.Images) == 0 {
		add("At least one image URL is required")
	}
	for i, url := range row.Images {
		if !storage.IsCanonicalURL(url) {
			add("Invalid image URL at position %d", i+1)
		}
	}
	for i, url := range row.Videos {
		if !storage.IsCanonicalURL(url) {
			add("Invalid video URL at position %d", i+1)
		}
	}

	if row.OriginalPrice != nil && !inRange(*row.OriginalPrice, 0, math.MaxFloat64) {
		add("Original price must be a valid number")
	}
	if row.OfferPercentage != nil && !inRange(*row.OfferPercentage, 0, 100) {
		add("Offer percentage must be between 0 and 100")
	}

	return problems
}

func positive(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && *f > 0 && !math.IsInf(*f, 1)
}

func inRange(f, lo, hi float64) bool {
	return !math.IsNaN(f) && f >= lo && f <= hi
}

type numberedRow struct {
	number int
	values Values
}

// ParseValues parses and validates a sequence of raw rows. firstRow is the
// user-facing number of the first row (1 for a JSON list).
func ParseValues(rows []Values, firstRow int) ParseResult {
	numbered := make([]numberedRow, len(rows))
	for i, values := range rows {
		numbered[i] = numberedRow{number: firstRow + i, values: values}
	}
	return parseRows(numbered)
}

func parseRows(rows []numberedRow) ParseResult {
	result := ParseResult{
		Products: make([]ProductRow, 0, len(rows)),
		Errors:   make([]RowError, 0),
	}

	for _, numbered := range rows {
		row := ParseRow(numbered.values)
		problems := ValidateRow(row, numbered.number)
		if len(problems) == 0 {
			result.Products = append(result.Products, row)
			continue
		}
		for _, problem := range problems {
			result.Errors = append(result.Errors, RowError{Row: numbered.number, Error: problem})
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}
