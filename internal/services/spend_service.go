package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/config"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// spendService sums transaction amounts by category label.
type spendService struct {
	db    *gorm.DB
	scope config.SpendScope
}

// NewSpendService creates a new SpendServicer using the given aggregation scope.
func NewSpendService(db *gorm.DB, scope config.SpendScope) SpendServicer {
	return &spendService{db: db, scope: scope}
}

// labelled selects transactions whose live category carries exactly this label.
func (s *spendService) labelled(ctx context.Context, category string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id AND categories.deleted_at IS NULL").
		Where("categories.name = ?", category)
}

// SpendForCategory returns the magnitude of the signed sum of every
// transaction labelled category, across all owners and dates.
func (s *spendService) SpendForCategory(ctx context.Context, category string) (decimal.Decimal, error) {
	return sumAbs(s.labelled(ctx, category))
}

// SpendForBudget applies the configured scope to the budget's category.
func (s *spendService) SpendForBudget(ctx context.Context, budget *models.Budget) (decimal.Decimal, error) {
	if s.scope != config.SpendScopeBudget {
		return s.SpendForCategory(ctx, budget.Category)
	}

	q := s.labelled(ctx, budget.Category).
		Where("transactions.user_id = ?", budget.UserID).
		Where("transactions.date >= ? AND transactions.date <= ?", budget.CreatedAt.UTC(), budget.ExpiresAt().UTC())
	return sumAbs(q)
}

func sumAbs(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := q.Select("SUM(transactions.amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Abs(), nil
}
