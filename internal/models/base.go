package models

import (
	"time"

	"spendwise/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records. When CreatedAt is
// already set the id carries that instant instead of the wall clock.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		if b.CreatedAt.IsZero() {
			b.ID = uuid.New()
		} else {
			b.ID = uuid.NewAt(b.CreatedAt)
		}
	}
	return nil
}
