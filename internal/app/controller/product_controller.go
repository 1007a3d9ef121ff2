package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest is the JSON body of create and update. Numbers and
// booleans may arrive as strings; keyFeatures as a list or a comma
// separated string.
type ProductRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	KeyFeatures     interface{}      `json:"keyFeatures"`
	Price           interface{}      `json:"price"`
	OriginalPrice   interface{}      `json:"originalPrice"`
	SizeConstraints string           `json:"sizeConstraints"`
	Quantity        interface{}      `json:"quantity"`
	Category        string           `json:"category"`
	MainCategory    string           `json:"mainCategory"`
	SubCategory     string           `json:"subCategory"`
	IsNew           interface{}      `json:"isNew"`
	IsOnSale        interface{}      `json:"isOnSale"`
	OfferPercentage interface{}      `json:"offerPercentage"`
	SKU             string           `json:"sku"`
	Images          []model.MediaRef `json:"images"`
	Videos          []model.MediaRef `json:"videos"`
	ImageURLs       []string         `json:"imageUrls"`
	ImagesToDelete  []string         `json:"imagesToDelete"`
	VideosToDelete  []string         `json:"videosToDelete"`
}

func (r ProductRequest) toInput() (service.ProductInput, error) {
	input := service.ProductInput{
		Name:            r.Name,
		Description:     r.Description,
		KeyFeatures:     featureList(r.KeyFeatures),
		SizeConstraints: r.SizeConstraints,
		Category:        r.Category,
		MainCategory:    r.MainCategory,
		SubCategory:     r.SubCategory,
		SKU:             r.SKU,
		Images:          r.Images,
		Videos:          r.Videos,
		ImageURLs:       r.ImageURLs,
		ImagesToDelete:  r.ImagesToDelete,
		VideosToDelete:  r.VideosToDelete,
	}

	var err error
	if input.Price, err = optionalFloat(r.Price, "price"); err != nil {
		return input, err
	}
	if input.OriginalPrice, err = optionalFloat(r.OriginalPrice, "originalPrice"); err != nil {
		return input, err
	}
	if input.Quantity, err = optionalInt(r.Quantity, "quantity"); err != nil {
		return input, err
	}
	if input.OfferPercentage, err = optionalFloat(r.OfferPercentage, "offerPercentage"); err != nil {
		return input, err
	}
	if input.IsNew, err = optionalBool(r.IsNew, "isNew"); err != nil {
		return input, err
	}
	if input.IsOnSale, err = optionalBool(r.IsOnSale, "isOnSale"); err != nil {
		return input, err
	}
	return input, nil
}

// bindProductInput resolves a JSON or multipart body into one ProductInput.
// Multipart files come under images/videos, or newImages/newVideos on update.
func bindProductInput(c *gin.Context, update bool) (service.ProductInput, error) {
	if !isMultipart(c) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ProductInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid request data")
		}
		return req.toInput()
	}

	form, err := c.MultipartForm()
	if err != nil {
		return service.ProductInput{}, apperrors.Validation(apperrors.ValidationInvalidInput, "Invalid form data")
	}
	fields := formFields(form.Value)

	req := ProductRequest{
		Name:            fields.text("name"),
		Description:     fields.text("description"),
		KeyFeatures:     fields.text("keyFeatures"),
		Price:           fields.text("price"),
		OriginalPrice:   fields.text("originalPrice"),
		SizeConstraints: fields.text("sizeConstraints"),
		Quantity:        fields.text("quantity"),
		Category:        fields.text("category"),
		MainCategory:    fields.text("mainCategory"),
		SubCategory:     fields.text("subCategory"),
		IsNew:           fields.text("isNew"),
		IsOnSale:        fields.text("isOnSale"),
		OfferPercentage: fields.text("offerPercentage"),
		SKU:             fields.text("sku"),
	}
	if req.ImageURLs, err = fields.list("imageUrls"); err != nil {
		return service.ProductInput{}, err
	}
	if req.ImagesToDelete, err = fields.list("imagesToDelete"); err != nil {
		return service.ProductInput{}, err
	}
	if req.VideosToDelete, err = fields.list("videosToDelete"); err != nil {
		return service.ProductInput{}, err
	}

	input, err := req.toInput()
	if err != nil {
		return input, err
	}

	imageKey, videoKey := "images", "videos"
	if update {
		imageKey, videoKey = "newImages", "newVideos"
	}
	if input.ImageFiles, err = readFiles(form, imageKey, maxImageBytes); err != nil {
		return input, err
	}
	if input.VideoFiles, err = readFiles(form, videoKey, maxVideoBytes); err != nil {
		return input, err
	}
	return input, nil
}

// GetAllProducts returns products newest first
// GET /api/v1/products?category=&mainCategory=&subCategory=
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Category:     c.Query("category"),
		MainCategory: c.Query("mainCategory"),
		SubCategory:  c.Query("subCategory"),
	}

	products, err := ctrl.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.Respond(c, err, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		log.Warn("Failed to fetch product", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.Respond(c, err, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct creates a product from JSON or multipart input
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, err := bindProductInput(c, false)
	if err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, err, "Failed to create product")
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		apperrors.Respond(c, err, "Failed to create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct replaces product fields and merges media
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	input, err := bindProductInput(c, true)
	if err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.Respond(c, err, "Failed to update product")
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.Respond(c, err, "Failed to update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct deletes a product and its media
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	report, err := ctrl.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.Respond(c, err, "Failed to delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"_id": id},
		"media":   report,
	})
}
