package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// statsService computes lifetime totals over an owner's transactions.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// ComputeStats sums income and expense and the absolute flow per category.
func (s *statsService) ComputeStats(ctx context.Context, userID string) (*Stats, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).
		Select("category_id", "amount").
		Where("user_id = ?", userID).
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &Stats{
		Balance:       decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
		CategoryStats: make(map[string]decimal.Decimal),
	}
	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		} else {
			stats.TotalExpense = stats.TotalExpense.Add(tx.Amount.Abs())
		}

		key := UncategorizedKey
		if tx.CategoryID != nil {
			key = *tx.CategoryID
		}
		stats.CategoryStats[key] = stats.CategoryStats[key].Add(tx.Amount.Abs())
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)

	return stats, nil
}
