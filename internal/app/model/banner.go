package model

import (
	"time"

	"gorm.io/gorm"
)

type BannerLayout string

const (
	LayoutNormal   BannerLayout = "normal"
	LayoutReversed BannerLayout = "reversed"
)

// IsValid reports whether l is a known layout.
func (l BannerLayout) IsValid() bool {
	return l == LayoutNormal || l == LayoutReversed
}

// Banner is one slide of the home page hero carousel.
type Banner struct {
	ID              string       `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Order           int          `gorm:"column:sort_order;default:0;index" bson:"order" json:"order"`
	EyebrowText     string       `bson:"eyebrow_text" json:"eyebrowText"`
	Headline        string       `bson:"headline" json:"headline"`
	Description     string       `gorm:"type:text" bson:"description" json:"description"`
	Button1Text     string       `bson:"button1_text" json:"button1Text"`
	Button1Link     string       `bson:"button1_link" json:"button1Link"`
	Button2Text     string       `bson:"button2_text" json:"button2Text"`
	Button2Link     string       `bson:"button2_link" json:"button2Link"`
	LayoutType      BannerLayout `gorm:"type:varchar(20)" bson:"layout_type" json:"layoutType"`
	BackgroundImage string       `gorm:"type:text;not null" bson:"background_image" json:"backgroundImage"`
	DecorativeImage string       `gorm:"type:text" bson:"decorative_image" json:"decorativeImage"`
	IsActive        bool         `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updated_at" json:"updatedAt"`
}

func (Banner) TableName() string {
	return "banners"
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	if b.LayoutType == "" {
		b.LayoutType = LayoutNormal
	}
	touch(&b.CreatedAt, &b.UpdatedAt)
	return nil
}
