package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// MediaKind is the resource type of a media reference on the media host.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef points at an asset held by the media host.
// PublicID is the handle used to delete the asset later.
type MediaRef struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"publicId"`
}

type Product struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name            string     `gorm:"not null" bson:"name" json:"name"`
	Description     string     `gorm:"type:text;not null" bson:"description" json:"description"`
	KeyFeatures     []string   `gorm:"serializer:json;type:text" bson:"key_features" json:"keyFeatures"`
	Price           float64    `gorm:"not null" bson:"price" json:"price"`
	OriginalPrice   *float64   `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	SizeConstraints string     `gorm:"type:text" bson:"size_constraints,omitempty" json:"sizeConstraints,omitempty"`
	Quantity        int        `gorm:"not null;default:0" bson:"quantity" json:"quantity"`
	Category        string     `gorm:"type:varchar(120);not null;index" bson:"category" json:"category"`
	MainCategory    string     `gorm:"type:varchar(120);index" bson:"main_category,omitempty" json:"mainCategory,omitempty"`
	SubCategory     string     `gorm:"type:varchar(120);index" bson:"sub_category,omitempty" json:"subCategory,omitempty"`
	Images          []MediaRef `gorm:"serializer:json;type:text" bson:"images" json:"images"`
	Videos          []MediaRef `gorm:"serializer:json;type:text" bson:"videos" json:"videos"`
	IsNew           bool       `gorm:"default:false" bson:"is_new" json:"isNew"`
	IsOnSale        bool       `gorm:"default:false" bson:"is_on_sale" json:"isOnSale"`
	OfferPercentage float64    `gorm:"default:0" bson:"offer_percentage" json:"offerPercentage"`
	SKU             string     `gorm:"type:varchar(64)" bson:"sku,omitempty" json:"sku,omitempty"`
	CreatedAt       time.Time  `gorm:"index" bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	touch(&p.CreatedAt, &p.UpdatedAt)
	if p.Images == nil {
		p.Images = []MediaRef{}
	}
	if p.Videos == nil {
		p.Videos = []MediaRef{}
	}
	return nil
}

// ResolveCategory picks the effective category of a product:
// sub category first, then main category, then the raw category.
// Empty means none of the three was given.
func ResolveCategory(category, mainCategory, subCategory string) string {
	for _, candidate := range []string{subCategory, mainCategory, category} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// SplitFeatures turns "a, b,,c " into ["a", "b", "c"].
func SplitFeatures(raw string) []string {
	parts := strings.Split(raw, ",")
	features := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	return features
}

// WithoutPublicIDs returns refs minus every entry whose PublicID is listed,
// keeping the original order.
func WithoutPublicIDs(refs []MediaRef, publicIDs []string) []MediaRef {
	if len(publicIDs) == 0 {
		return append([]MediaRef{}, refs...)
	}
	drop := make(map[string]struct{}, len(publicIDs))
	for _, id := range publicIDs {
		drop[id] = struct{}{}
	}
	kept := make([]MediaRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := drop[ref.PublicID]; !ok {
			kept = append(kept, ref)
		}
	}
	return kept
}
