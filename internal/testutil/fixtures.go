package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewOwnerID returns a fresh owner identity.
func NewOwnerID() string {
	return uuid.New()
}

// Amount parses a decimal literal, failing the test on bad input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// CreateTestCategory creates a directory entry with the given label.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("Test Category %d", nextID())
	}
	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a ledger entry with a signed amount on date.
// A nil category leaves it uncategorized.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, category *models.Category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID: userID,
		Amount: Amount(t, amount),
		Note:   fmt.Sprintf("Test transaction %d", nextID()),
		Date:   date.UTC(),
	}
	if category != nil {
		tx.CategoryID = &category.ID
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget with an explicit creation instant.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category string, period models.BudgetPeriod, createdAt time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Base:     models.Base{CreatedAt: createdAt.UTC()},
		UserID:   userID,
		Category: category,
		Limit:    decimal.NewFromInt(100),
		Period:   period,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestReport stores a report with the given details as-is.
func CreateTestReport(t *testing.T, db *gorm.DB, userID string, start, end time.Time, details ...models.ReportDetail) *models.Report {
	t.Helper()

	for i := range details {
		details[i].Position = i
	}
	report := &models.Report{
		UserID:    userID,
		Title:     fmt.Sprintf("Test Report %d", nextID()),
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
		Details:   details,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to create test report: %v", err)
	}
	return report
}
