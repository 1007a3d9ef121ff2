package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Pearl Drop",
		"description": "Freshwater pearl. Sterling silver hook.",
		"keyFeatures": []string{"Freshwater pearl", "Sterling silver"},
		"price":       "120.50",
		"quantity":    4,
		"category":    "Earrings",
		"subCategory": "Drops",
		"images": []map[string]string{
			{"url": "https://cdn.test/mariyae/image/upload/mariyae-com/products/pearl.jpg", "publicId": "mariyae-com/products/pearl"},
		},
	}
}

func TestProductController_CreateProduct_JSON(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", validProductBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, true, response["success"])
	product := response["data"].(map[string]interface{})
	assert.Equal(t, "Pearl Drop", product["name"])
	assert.Equal(t, 120.5, product["price"])
	assert.Equal(t, "Drops", product["category"])
	assert.Len(t, product["images"].([]interface{}), 1)
}

func TestProductController_CreateProduct_MissingFields(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", map[string]interface{}{"name": "Lonely"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "PRODUCT_MISSING_FIELDS", response["code"])
	assert.Equal(t, []interface{}{"description", "keyFeatures", "price", "quantity", "category"}, response["fields"])
}

func TestProductController_CreateProduct_InvalidNumber(t *testing.T) {
	tc := setupCatalogTest(t)

	body := validProductBody()
	body["price"] = "lots"
	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PRODUCT_INVALID_PAYLOAD", decodeBody(t, w)["code"])
}

func TestProductController_CreateProduct_Multipart(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doMultipart(t, http.MethodPost, "/api/v1/products", map[string]string{
		"name":         "Gold Hoop",
		"description":  "Classic hoop",
		"keyFeatures":  "18k gold, Hinged clasp",
		"price":        "89",
		"quantity":     "10",
		"mainCategory": "Earrings",
		"isNew":        "true",
	},
		formFile{field: "images", filename: "front.jpg", data: []byte("front")},
		formFile{field: "images", filename: "side.jpg", data: []byte("side")},
	)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	product := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Earrings", product["category"])
	assert.Equal(t, true, product["isNew"])
	assert.Equal(t, []interface{}{"18k gold", "Hinged clasp"}, product["keyFeatures"])
	assert.Len(t, product["images"].([]interface{}), 2)
}

func TestProductController_CreateProduct_UploadFailure(t *testing.T) {
	tc := setupCatalogTest(t)
	tc.media.failAll = true

	w := tc.doMultipart(t, http.MethodPost, "/api/v1/products", map[string]string{
		"name":        "Gold Hoop",
		"description": "Classic hoop",
		"keyFeatures": "18k gold",
		"price":       "89",
		"quantity":    "10",
		"category":    "Earrings",
	}, formFile{field: "images", filename: "front.jpg", data: []byte("front")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])

	products, err := tc.repos.Products.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductController_GetProductByID(t *testing.T) {
	tc := setupCatalogTest(t)

	product := &model.Product{Name: "Cuff", Description: "Wide cuff", KeyFeatures: []string{"Brass"}, Price: 45, Quantity: 2, Category: "Bracelets"}
	require.NoError(t, tc.repos.Products.Create(context.Background(), product))

	w := tc.doJSON(t, http.MethodGet, "/api/v1/products/"+product.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cuff", decodeBody(t, w)["data"].(map[string]interface{})["name"])

	w = tc.doJSON(t, http.MethodGet, "/api/v1/products/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "PRODUCT_NOT_FOUND", response["code"])
}

func TestProductController_GetAllProducts_Filter(t *testing.T) {
	tc := setupCatalogTest(t)

	ctx := context.Background()
	require.NoError(t, tc.repos.Products.Create(ctx, &model.Product{Name: "Cuff", Description: "d", Price: 45, Quantity: 2, Category: "Bracelets"}))
	require.NoError(t, tc.repos.Products.Create(ctx, &model.Product{Name: "Stud", Description: "d", Price: 20, Quantity: 2, Category: "Earrings"}))

	w := tc.doJSON(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = tc.doJSON(t, http.MethodGet, "/api/v1/products?category=Earrings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, "Stud", response["data"].([]interface{})[0].(map[string]interface{})["name"])
}

func TestProductController_UpdateProduct_MergesMedia(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", validProductBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["_id"].(string)

	w = tc.doMultipart(t, http.MethodPut, "/api/v1/products/"+id, map[string]string{
		"name":           "Pearl Drop II",
		"description":    "Updated",
		"keyFeatures":    "Freshwater pearl",
		"price":          "130",
		"quantity":       "3",
		"category":       "Earrings",
		"imagesToDelete": `["mariyae-com/products/pearl"]`,
	}, formFile{field: "newImages", filename: "new.jpg", data: []byte("new")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	product := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Pearl Drop II", product["name"])
	images := product["images"].([]interface{})
	require.Len(t, images, 1)
	assert.NotEqual(t, "mariyae-com/products/pearl", images[0].(map[string]interface{})["publicId"])
	assert.Contains(t, tc.media.deleted, "mariyae-com/products/pearl")
}

func TestProductController_DeleteProduct(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", validProductBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["_id"].(string)

	w = tc.doJSON(t, http.MethodDelete, "/api/v1/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decodeBody(t, w)["media"].(map[string]interface{})
	assert.Equal(t, float64(1), report["deleted"])

	w = tc.doJSON(t, http.MethodDelete, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_ResponsesUseDataEnvelope(t *testing.T) {
	tc := setupCatalogTest(t)

	w := tc.doJSON(t, http.MethodPost, "/api/v1/products", validProductBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, true, created["success"])
	require.Contains(t, created, "data")
	assert.NotContains(t, created, "product")
	id := created["data"].(map[string]interface{})["_id"].(string)

	w = tc.doJSON(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody(t, w)
	assert.Equal(t, true, listed["success"])
	require.Contains(t, listed, "data")
	assert.NotContains(t, listed, "products")
	assert.Len(t, listed["data"].([]interface{}), 1)

	w = tc.doJSON(t, http.MethodDelete, "/api/v1/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decodeBody(t, w)
	assert.Equal(t, id, deleted["data"].(map[string]interface{})["_id"])
}
