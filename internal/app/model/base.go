package model

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque record identifier.
// Both the SQL and document backends store the same string form.
func NewID() string {
	return uuid.New().String()
}

// touch stamps creation and update times on insert.
func touch(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
