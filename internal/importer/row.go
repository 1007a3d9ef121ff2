package importer

import (
	"math"
	"regexp"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/spf13/cast"
)

// ProductRow is one product as read from a spreadsheet or a JSON body,
// before validation. Optional numeric and boolean fields stay nil when the
// source left them blank or unparseable.
type ProductRow struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	KeyFeatures     []string `json:"keyFeatures"`
	Price           *float64 `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	SizeConstraints string   `json:"sizeConstraints,omitempty"`
	Quantity        *int     `json:"quantity"`
	Category        string   `json:"category"`
	MainCategory    string   `json:"mainCategory,omitempty"`
	SubCategory     string   `json:"subCategory,omitempty"`
	Images          []string `json:"images"`
	Videos          []string `json:"videos,omitempty"`
	SKU             string   `json:"sku,omitempty"`
	IsNew           *bool    `json:"isNew,omitempty"`
	IsOnSale        *bool    `json:"isOnSale,omitempty"`
	OfferPercentage *float64 `json:"offerPercentage,omitempty"`
}

// RowError reports one problem with one input row.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParseResult is the outcome of reading a whole file. Products holds every
// row that validated on its own; Success is true only when no row failed.
type ParseResult struct {
	Success  bool         `json:"success"`
	Products []ProductRow `json:"products"`
	Errors   []RowError   `json:"errors"`
}

// Header aliases accepted for canonical fields.
var fieldAliases = map[string][]string{
	"quantity":    {"stock"},
	"keyFeatures": {"features", "highlights"},
}

// headerKey folds a header for lookup: "Key Features " -> "keyfeatures".
func headerKey(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), ""))
}

// Values is one raw input row keyed by folded header.
type Values map[string]interface{}

// NewValues folds the keys of a raw row.
func NewValues(raw map[string]interface{}) Values {
	values := make(Values, len(raw))
	for key, value := range raw {
		folded := headerKey(key)
		if folded == "" {
			continue
		}
		// a blank column never hides a filled one folding to the same key
		if existing, ok := values[folded]; ok && !isBlank(existing) {
			continue
		}
		values[folded] = value
	}
	return values
}

// FromStrings builds Values from a spreadsheet or CSV record.
func FromStrings(record map[string]string) Values {
	raw := make(map[string]interface{}, len(record))
	for key, value := range record {
		raw[key] = value
	}
	return NewValues(raw)
}

func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// get returns the first non-blank value of field or one of its aliases.
func (v Values) get(field string) interface{} {
	for _, name := range append([]string{field}, fieldAliases[field]...) {
		if value, ok := v[headerKey(name)]; ok && !isBlank(value) {
			return value
		}
	}
	return nil
}

func (v Values) text(field string) string {
	return strings.TrimSpace(cast.ToString(v.get(field)))
}

func (v Values) list(field string) []string {
	switch value := v.get(field).(type) {
	case nil:
		return nil
	case []interface{}, []string:
		return model.SplitFeatures(strings.Join(cast.ToStringSlice(value), ","))
	default:
		return model.SplitFeatures(cast.ToString(value))
	}
}

func (v Values) float(field string) *float64 {
	value := v.get(field)
	if value == nil {
		return nil
	}
	f, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(value)))
	if err != nil {
		nan := math.NaN()
		return &nan
	}
	return &f
}

// integer truncates fractional input ("5.7" -> 5). Blank or non-numeric
// input yields nil.
func (v Values) integer(field string) *int {
	f := v.float(field)
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	i := int(*f)
	return &i
}

// boolean accepts true/1/yes and false/0/no ignoring case; anything else is nil.
func (v Values) boolean(field string) *bool {
	value := v.get(field)
	if value == nil {
		return nil
	}
	var result bool
	switch strings.ToLower(strings.TrimSpace(cast.ToString(value))) {
	case "true", "1", "yes":
		result = true
	case "false", "0", "no":
		result = false
	default:
		return nil
	}
	return &result
}

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// FirstSentence returns description up to its first '.', '!' or '?'.
func FirstSentence(description string) string {
	return strings.TrimSpace(sentenceEnd.Split(description, 2)[0])
}

// ParseRow maps raw values onto a ProductRow, deriving a key feature from
// the description when none is given.
func ParseRow(values Values) ProductRow {
	row := ProductRow{
		Name:            values.text("name"),
		Description:     values.text("description"),
		KeyFeatures:     values.list("keyFeatures"),
		Price:           values.float("price"),
		OriginalPrice:   values.float("originalPrice"),
		SizeConstraints: values.text("sizeConstraints"),
		Quantity:        values.integer("quantity"),
		Category:        values.text("category"),
		MainCategory:    values.text("mainCategory"),
		SubCategory:     values.text("subCategory"),
		Images:          values.list("images"),
		Videos:          values.list("videos"),
		SKU:             values.text("sku"),
		IsNew:           values.boolean("isNew"),
		IsOnSale:        values.boolean("isOnSale"),
		OfferPercentage: values.float("offerPercentage"),
	}

	if len(row.KeyFeatures) == 0 && row.Description != "" {
		if sentence := FirstSentence(row.Description); sentence != "" {
			row.KeyFeatures = []string{sentence}
		}
	}

	return row
}

// Product converts a validated row into a catalog record. Media URLs are
// paired with the public id found after "/upload/"; a URL without that
// marker keeps the URL itself as its public id.
func (r ProductRow) Product() *model.Product {
	product := &model.Product{
		Name:            r.Name,
		Description:     r.Description,
		KeyFeatures:     r.KeyFeatures,
		OriginalPrice:   r.OriginalPrice,
		SizeConstraints: r.SizeConstraints,
		Category:        model.ResolveCategory(r.Category, r.MainCategory, r.SubCategory),
		MainCategory:    r.MainCategory,
		SubCategory:     r.SubCategory,
		Images:          mediaRefs(r.Images),
		Videos:          mediaRefs(r.Videos),
		SKU:             r.SKU,
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	if r.Quantity != nil {
		product.Quantity = *r.Quantity
	}
	if r.IsNew != nil {
		product.IsNew = *r.IsNew
	}
	if r.IsOnSale != nil {
		product.IsOnSale = *r.IsOnSale
	}
	if r.OfferPercentage != nil {
		product.OfferPercentage = *r.OfferPercentage
	}
	return product
}

func mediaRefs(urls []string) []model.MediaRef {
	refs := make([]model.MediaRef, 0, len(urls))
	for _, url := range urls {
		refs = append(refs, storage.RefFromURL(url))
	}
	return refs
}
