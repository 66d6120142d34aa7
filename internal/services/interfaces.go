package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// SpendServicer aggregates transaction amounts for budget categories.
type SpendServicer interface {
	SpendForCategory(ctx context.Context, category string) (decimal.Decimal, error)
	SpendForBudget(ctx context.Context, budget *models.Budget) (decimal.Decimal, error)
}

// BudgetView is a budget enriched with its derived spend and status.
type BudgetView struct {
	ID        string              `json:"id"`
	Category  string              `json:"category"`
	Limit     decimal.Decimal     `json:"limit"`
	Period    models.BudgetPeriod `json:"period"`
	Alert     bool                `json:"alert"`
	Spent     decimal.Decimal     `json:"spent"`
	Remaining decimal.Decimal     `json:"remaining"`
	OverLimit bool                `json:"overLimit"`
	Expired   bool                `json:"expired"`
	ExpiresAt time.Time           `json:"expiresAt"`
	CreatedAt time.Time           `json:"createdAt"`
}

// BudgetPatch holds the optional fields of a budget update.
type BudgetPatch struct {
	Category *string
	Limit    *decimal.Decimal
	Period   *models.BudgetPeriod
	Alert    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p BudgetPatch) IsEmpty() bool {
	return p.Category == nil && p.Limit == nil && p.Period == nil && p.Alert == nil
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, userID, category string, limit decimal.Decimal, period models.BudgetPeriod, alert bool) (*BudgetView, error)
	ListBudgets(ctx context.Context, userID string, status models.BudgetStatus) ([]BudgetView, error)
	GetBudget(ctx context.Context, userID, budgetID string) (*BudgetView, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, patch BudgetPatch) (*BudgetView, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// ReportPatch holds the optional fields of a report metadata update.
type ReportPatch struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ReportPatch) IsEmpty() bool {
	return p.Title == nil && p.StartDate == nil && p.EndDate == nil
}

// ReportServicer defines the contract for report generation and management.
type ReportServicer interface {
	CreateReport(ctx context.Context, userID, title string, start, end time.Time) (*models.Report, error)
	ListReports(ctx context.Context, userID string) ([]models.Report, error)
	GetReport(ctx context.Context, userID, reportID string) (*models.Report, error)
	UpdateReport(ctx context.Context, userID, reportID string, patch ReportPatch) (*models.Report, error)
	DeleteReport(ctx context.Context, userID, reportID string) error
	ReportChart(ctx context.Context, userID, reportID string) ([]byte, error)
}

// UncategorizedKey groups transactions that have no category in Stats.
const UncategorizedKey = "uncategorized"

// Stats is an owner's lifetime income and expense summary.
type Stats struct {
	Balance       decimal.Decimal            `json:"balance"`
	TotalIncome   decimal.Decimal            `json:"totalIncome"`
	TotalExpense  decimal.Decimal            `json:"totalExpense"`
	CategoryStats map[string]decimal.Decimal `json:"categoryStats"`
}

// StatsServicer defines the contract for transaction statistics.
type StatsServicer interface {
	ComputeStats(ctx context.Context, userID string) (*Stats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
