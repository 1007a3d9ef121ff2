package service

import (
	"context"
	"strings"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/mariyae/catalog-backend/pkg/logger"
)

var (
	ErrProductNotFound = apperrors.NotFound(apperrors.ProductNotFound, "Product not found")
	ErrProductExists   = apperrors.Duplicate(apperrors.ResourceAlreadyExists, "Product already exists")
)

// ProductInput is a create or update request after the transport layer has
// decoded it, whatever its wire format.
type ProductInput struct {
	Name            string
	Description     string
	KeyFeatures     []string
	Price           *float64
	OriginalPrice   *float64
	SizeConstraints string
	Quantity        *int
	Category        string
	MainCategory    string
	SubCategory     string
	IsNew           *bool
	IsOnSale        *bool
	OfferPercentage *float64
	SKU             string

	// Images and Videos were uploaded to the media host by the client.
	Images []model.MediaRef
	Videos []model.MediaRef
	// ImageFiles and VideoFiles are raw uploads; any failure fails the request.
	ImageFiles [][]byte
	VideoFiles [][]byte
	// ImageURLs are fetched server side; a failed URL is logged and skipped.
	ImageURLs []string

	// Public ids dropped on update.
	ImagesToDelete []string
	VideosToDelete []string
}

// MediaDeletionReport lists the outcome of best-effort media deletes.
type MediaDeletionReport struct {
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed"`
}

type ProductService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*MediaDeletionReport, error)
}

type productService struct {
	productRepo repository.ProductRepository
	media       storage.MediaStore
	folder      string
}

// NewProductService stores product media under <namespace>/products.
func NewProductService(productRepo repository.ProductRepository, media storage.MediaStore, namespace string) ProductService {
	return &productService{
		productRepo: productRepo,
		media:       media,
		folder:      storage.Folder(namespace, "products"),
	}
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Upstream(apperrors.InternalDatabaseError, "Failed to fetch products", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrProductNotFound, "Failed to fetch product")
	}
	return product, nil
}

// validateProductInput resolves the effective category and reports every
// missing required field at once.
func validateProductInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = model.ResolveCategory(input.Category, input.MainCategory, input.SubCategory)

	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if len(input.KeyFeatures) == 0 {
		missing = append(missing, "keyFeatures")
	}
	if input.Price == nil {
		missing = append(missing, "price")
	}
	if input.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return apperrors.MissingFields(apperrors.ProductMissingFields, missing)
	}

	if *input.Price <= 0 {
		return apperrors.Validation(apperrors.ValidationInvalidRange, "Price must be greater than 0", "price")
	}
	if input.OriginalPrice != nil && *input.OriginalPrice < 0 {
		return apperrors.Validation(apperrors.ValidationInvalidRange, "Original price must not be negative", "originalPrice")
	}
	if *input.Quantity < 0 {
		return apperrors.Validation(apperrors.ValidationInvalidRange, "Quantity must not be negative", "quantity")
	}
	if p := input.OfferPercentage; p != nil && (*p < 0 || *p > 100) {
		return apperrors.Validation(apperrors.ValidationInvalidRange, "Offer percentage must be between 0 and 100", "offerPercentage")
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	images, videos, err := s.uploadNewMedia(ctx, input)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Images: append(append([]model.MediaRef{}, input.Images...), images...),
		Videos: append(append([]model.MediaRef{}, input.Videos...), videos...),
	}
	applyProductFields(product, input)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, translateWriteError(err, ErrProductExists, "Failed to create product")
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"category":   product.Category,
		"images":     len(product.Images),
		"videos":     len(product.Videos),
	})
	return product, nil
}

// UpdateProduct replaces the product fields and merges media: surviving
// existing entries first, new uploads appended.
func (s *productService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrProductNotFound, "Failed to update product")
	}

	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	images, videos, err := s.uploadNewMedia(ctx, input)
	if err != nil {
		return nil, err
	}

	s.deleteMedia(ctx, input.ImagesToDelete, model.MediaImage)
	s.deleteMedia(ctx, input.VideosToDelete, model.MediaVideo)

	product.Images = append(model.WithoutPublicIDs(product.Images, input.ImagesToDelete), input.Images...)
	product.Images = append(product.Images, images...)
	product.Videos = append(model.WithoutPublicIDs(product.Videos, input.VideosToDelete), input.Videos...)
	product.Videos = append(product.Videos, videos...)
	applyProductFields(product, input)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, translateWriteError(err, ErrProductExists, "Failed to update product")
	}
	return product, nil
}

// DeleteProduct deletes every referenced media object, carrying on past
// failures, then removes the record.
func (s *productService) DeleteProduct(ctx context.Context, id string) (*MediaDeletionReport, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, ErrProductNotFound, "Failed to delete product")
	}

	report := &MediaDeletionReport{Failed: []string{}}
	for _, group := range []struct {
		refs []model.MediaRef
		kind model.MediaKind
	}{
		{product.Images, model.MediaImage},
		{product.Videos, model.MediaVideo},
	} {
		for _, ref := range group.refs {
			if s.deleteOne(ctx, ref.PublicID, group.kind) {
				report.Deleted++
			} else {
				report.Failed = append(report.Failed, ref.PublicID)
			}
		}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, translateLookupError(err, ErrProductNotFound, "Failed to delete product")
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id":    id,
		"media_deleted": report.Deleted,
		"media_failed":  len(report.Failed),
	})
	return report, nil
}

// uploadNewMedia uploads raw files, failing on the first error, then fetches
// image URLs, skipping any that fail.
func (s *productService) uploadNewMedia(ctx context.Context, input ProductInput) (images, videos []model.MediaRef, err error) {
	for _, data := range input.ImageFiles {
		ref, err := s.media.Upload(ctx, data, s.folder, model.MediaImage)
		if err != nil {
			return nil, nil, apperrors.Upstream(apperrors.UploadFailed, "Failed to upload image", err)
		}
		images = append(images, ref)
	}

	for _, data := range input.VideoFiles {
		ref, err := s.media.Upload(ctx, data, s.folder, model.MediaVideo)
		if err != nil {
			return nil, nil, apperrors.Upstream(apperrors.UploadFailed, "Failed to upload video", err)
		}
		videos = append(videos, ref)
	}

	for _, rawURL := range input.ImageURLs {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" {
			continue
		}
		ref, err := s.media.UploadFromURL(ctx, rawURL, s.folder)
		if err != nil {
			logger.Warn("Skipping image URL that could not be uploaded", map[string]interface{}{
				"url":   rawURL,
				"error": err.Error(),
			})
			continue
		}
		images = append(images, ref)
	}

	return images, videos, nil
}

func (s *productService) deleteMedia(ctx context.Context, publicIDs []string, kind model.MediaKind) {
	for _, publicID := range publicIDs {
		s.deleteOne(ctx, publicID, kind)
	}
}

func (s *productService) deleteOne(ctx context.Context, publicID string, kind model.MediaKind) bool {
	if err := s.media.Delete(ctx, publicID, kind); err != nil {
		logger.Warn("Failed to delete media", map[string]interface{}{
			"public_id": publicID,
			"kind":      kind,
			"error":     err.Error(),
		})
		return false
	}
	return true
}

func applyProductFields(product *model.Product, input ProductInput) {
	product.Name = input.Name
	product.Description = input.Description
	product.KeyFeatures = input.KeyFeatures
	product.Price = *input.Price
	product.OriginalPrice = input.OriginalPrice
	product.SizeConstraints = strings.TrimSpace(input.SizeConstraints)
	product.Quantity = *input.Quantity
	product.Category = input.Category
	product.MainCategory = strings.TrimSpace(input.MainCategory)
	product.SubCategory = strings.TrimSpace(input.SubCategory)
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.IsOnSale != nil {
		product.IsOnSale = *input.IsOnSale
	}
	if input.OfferPercentage != nil {
		product.OfferPercentage = *input.OfferPercentage
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" {
		product.SKU = sku
	}
}
