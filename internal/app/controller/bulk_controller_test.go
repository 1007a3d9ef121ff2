package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkRow(i int) map[string]interface{} {
	return map[string]interface{}{
		"name":        fmt.Sprintf("Ring %d", i),
		"description": "Polished band. Fits true to size.",
		"keyFeatures": "Sterling silver, Polished",
		"price":       "25",
		"quantity":    3,
		"category":    "Rings",
		"images":      "https://cdn.test/mariyae/image/upload/mariyae-com/products/ring.jpg",
	}
}

func TestBulkController_ImportProducts(t *testing.T) {
	tc := setupCatalogTest(t)

	rows := make([]map[string]interface{}, 0, 7)
	for i := 1; i <= 7; i++ {
		rows = append(rows, bulkRow(i))
	}
	rows[4]["name"] = ""

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products/bulk", map[string]interface{}{"products": rows})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, float64(6), response["created"])
	assert.Equal(t, float64(1), response["failed"])
	errs := response["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["index"])
	assert.Contains(t, first["error"], "Row 5: Product name is required")

	products, err := tc.repos.Products.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestBulkController_ImportProducts_Empty(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products/bulk", map[string]interface{}{"products": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

const sheetCSV = `Name,Description,Key Features,Price,Quantity,Category,Images
Ring 1,Polished band.,"Silver, Polished",25,3,Rings,https://cdn.test/mariyae/image/upload/a.jpg
Ring 2,Polished band.,"Silver, Polished",0,3,Rings,https://cdn.test/mariyae/image/upload/b.jpg
Ring 3,Polished band.,"Silver, Polished",30,1,Rings,https://cdn.test/mariyae/image/upload/c.jpg
`

func TestBulkController_UploadProducts_ValidateOnly(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doMultipart(t, http.MethodPost, "/api/v1/products/bulk/upload?validateOnly=true", nil,
		formFile{field: "file", filename: "products.csv", data: []byte(sheetCSV)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.Len(t, response["products"].([]interface{}), 2)
	errs := response["errors"].([]interface{})
	require.NotEmpty(t, errs)
	assert.Equal(t, float64(3), errs[0].(map[string]interface{})["row"])

	products, err := tc.repos.Products.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBulkController_UploadProducts_Import(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doMultipart(t, http.MethodPost, "/api/v1/products/bulk/upload", nil,
		formFile{field: "file", filename: "products.csv", data: []byte(sheetCSV)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, float64(2), response["created"])
	assert.NotEmpty(t, response["parseErrors"])
}

func TestBulkController_UploadProducts_Rejects(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doMultipart(t, http.MethodPost, "/api/v1/products/bulk/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = tc.doMultipart(t, http.MethodPost, "/api/v1/products/bulk/upload", nil,
		formFile{field: "file", filename: "products.pdf", data: []byte("%PDF")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestBulkController_DownloadTemplate(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodGet, "/api/v1/products/bulk/template?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "product_template.csv")
	header := strings.SplitN(w.Body.String(), "\n", 2)[0]
	assert.Contains(t, header, "name")

	w = tc.doJSON(t, http.MethodGet, "/api/v1/products/bulk/template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))

	w = tc.doJSON(t, http.MethodGet, "/api/v1/products/bulk/template?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadController_SignUpload(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/upload/sign", map[string]interface{}{
		"folder": "mariyae-com/banners",
		"tags":   "summer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "mariyae-com/banners", response["folder"])
	assert.Equal(t, "key-123", response["apiKey"])
	assert.Equal(t, "mariyae", response["cloudName"])
	assert.Len(t, response["signature"], 40)
	assert.NotZero(t, response["timestamp"])

	w = tc.do(newEmptyPost("/api/v1/upload/sign"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "mariyae-com/products", decodeBody(t, w)["folder"])
}
