package model

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// MainCategory is a top level navigation category (e.g. "Necklaces").
type MainCategory struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name      string    `gorm:"type:varchar(120);not null" bson:"name" json:"name"`
	NameKey   string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_main_categories_name_key" bson:"name_key" json:"-"`
	Image     string    `gorm:"type:text" bson:"image" json:"image"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (MainCategory) TableName() string {
	return "main_categories"
}

// BeforeSave keeps the case-insensitive uniqueness key in step with Name.
func (c *MainCategory) BeforeSave(tx *gorm.DB) error {
	c.NameKey = CategoryKey(c.Name)
	return nil
}

func (c *MainCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	touch(&c.CreatedAt, &c.UpdatedAt)
	return nil
}

// SubCategory belongs to at most one MainCategory, referenced by name only.
// An empty MainCategory means the sub category stands alone.
type SubCategory struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name         string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_sub_categories_name_main,priority:1" bson:"name" json:"name"`
	MainCategory string    `gorm:"type:varchar(120);not null;default:'';uniqueIndex:idx_sub_categories_name_main,priority:2" bson:"main_category" json:"mainCategory"`
	Image        string    `gorm:"type:text" bson:"image" json:"image"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}

func (c *SubCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	touch(&c.CreatedAt, &c.UpdatedAt)
	return nil
}

// CategoryKey is the case-insensitive comparison key of a category name.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeCategoryName trims the name and title-cases every
// whitespace-separated word: "  gold  RINGS" -> "Gold Rings".
func NormalizeCategoryName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
