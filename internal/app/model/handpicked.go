package model

import (
	"time"

	"gorm.io/gorm"
)

type HandpickedSlot string

const (
	SlotLeft        HandpickedSlot = "left"
	SlotTopRight    HandpickedSlot = "top-right"
	SlotBottomRight HandpickedSlot = "bottom-right"
)

// HandpickedSlots lists the slots in display order.
var HandpickedSlots = []HandpickedSlot{SlotLeft, SlotTopRight, SlotBottomRight}

func (s HandpickedSlot) IsValid() bool {
	for _, slot := range HandpickedSlots {
		if s == slot {
			return true
		}
	}
	return false
}

const DefaultHandpickedLink = "/products"

// HandpickedItem fills one tile of the "handpicked for you" grid.
type HandpickedItem struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Slot      HandpickedSlot `gorm:"type:varchar(20);not null;uniqueIndex" bson:"slot" json:"slot"`
	Image     string         `gorm:"type:text;not null" bson:"image" json:"image"`
	Subtitle  string         `gorm:"not null" bson:"subtitle" json:"subtitle"`
	Title     string         `gorm:"not null" bson:"title" json:"title"`
	Link      string         `bson:"link" json:"link"`
	IsActive  bool           `bson:"is_active" json:"isActive"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}

func (HandpickedItem) TableName() string {
	return "handpicked_items"
}

func (h *HandpickedItem) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = NewID()
	}
	if h.Link == "" {
		h.Link = DefaultHandpickedLink
	}
	touch(&h.CreatedAt, &h.UpdatedAt)
	return nil
}
