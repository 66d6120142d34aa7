package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is redundant with the amount's sign and must agree with it.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TypeForAmount returns the transaction type implied by the sign of amount.
// Zero counts as income.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

// Transaction is one ledger entry. The ledger is owned by an external
// collaborator; this service only reads it.
type Transaction struct {
	Base
	UserID     string          `gorm:"not null;index" json:"userId"`
	CategoryID *string         `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	Type       TransactionType `gorm:"not null" json:"type"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"amount"`
	Note       string          `json:"note"`
	Date       time.Time       `gorm:"not null;index" json:"date"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeSave derives a missing type from the amount sign, rejects a type that
// contradicts the sign and defaults the date to the creation instant.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	implied := TypeForAmount(t.Amount)
	if t.Type == "" {
		t.Type = implied
	}
	if !t.Amount.IsZero() && t.Type != implied {
		return fmt.Errorf("transaction type %q does not match amount %s", t.Type, t.Amount)
	}
	if t.Date.IsZero() {
		if t.CreatedAt.IsZero() {
			t.Date = time.Now()
		} else {
			t.Date = t.CreatedAt
		}
	}
	return nil
}
