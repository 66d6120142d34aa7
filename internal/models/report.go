package models

import (
	"time"

	"spendwise/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Report is a point-in-time summary of an owner's transactions in a closed
// date range. Details are frozen at generation; later edits to the title or
// the range do not regenerate them.
type Report struct {
	Base
	UserID    string         `gorm:"not null;index" json:"userId"`
	Title     string         `gorm:"not null" json:"title"`
	StartDate time.Time      `gorm:"not null" json:"startDate"`
	EndDate   time.Time      `gorm:"not null" json:"endDate"`
	Details   []ReportDetail `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"details"`
}

// ReportDetail is one denormalized line of a report. Category holds the
// label text as it was when the report was generated.
type ReportDetail struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"-"`
	ReportID string          `gorm:"type:uuid;not null;index" json:"-"`
	Position int             `gorm:"not null" json:"-"`
	Category string          `gorm:"not null" json:"category"`
	Amount   decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"amount"`
	Type     TransactionType `gorm:"not null" json:"type"`
	Note     string          `json:"note"`
	Date     time.Time       `gorm:"not null" json:"date"`
}

// BeforeCreate hook generates a UUIDv7 for new detail rows
func (d *ReportDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New()
	}
	return nil
}
