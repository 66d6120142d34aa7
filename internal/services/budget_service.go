package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/events"
	"spendwise/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db          *gorm.DB
	spend       SpendServicer
	publisher   events.Publisher
	concurrency int
	now         func() time.Time
}

// NewBudgetService creates a new BudgetServicer. concurrency bounds the
// number of spend lookups running at once while listing.
func NewBudgetService(db *gorm.DB, spend SpendServicer, publisher events.Publisher, concurrency int) BudgetServicer {
	if concurrency < 1 {
		concurrency = 1
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &budgetService{
		db:          db,
		spend:       spend,
		publisher:   publisher,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func validateLimit(limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return apperrors.ErrInvalidBudgetLimit
	}
	return nil
}

func validatePeriod(period models.BudgetPeriod) (models.BudgetPeriod, error) {
	p, ok := models.ParseBudgetPeriod(string(period))
	if !ok {
		return "", apperrors.ErrInvalidBudgetPeriod
	}
	return p, nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required")
	}
	return nil
}

// CreateBudget creates a budget whose window starts now.
func (s *budgetService) CreateBudget(
	ctx context.Context,
	userID, category string,
	limit decimal.Decimal,
	period models.BudgetPeriod,
	alert bool,
) (*BudgetView, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	period, err := validatePeriod(period)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Base:     models.Base{CreatedAt: s.now().UTC()},
		UserID:   userID,
		Category: category,
		Limit:    limit,
		Period:   period,
		Alert:    alert,
	}
	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.BudgetCreated, userID, budget.ID))
	return s.enrich(ctx, budget)
}

// ListBudgets returns the owner's budgets matching status, newest first.
func (s *budgetService) ListBudgets(ctx context.Context, userID string, status models.BudgetStatus) ([]BudgetView, error) {
	switch status {
	case models.BudgetStatusAll, models.BudgetStatusActive, models.BudgetStatusExpired:
	default:
		return nil, apperrors.ErrInvalidBudgetStatus
	}

	var budgets []models.Budget
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	kept := budgets[:0]
	for _, b := range budgets {
		expired := b.ExpiredAt(now)
		if (status == models.BudgetStatusActive && expired) || (status == models.BudgetStatusExpired && !expired) {
			continue
		}
		kept = append(kept, b)
	}

	spent := make([]decimal.Decimal, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range kept {
		g.Go(func() error {
			v, err := s.spend.SpendForBudget(gctx, &kept[i])
			if err != nil {
				return err
			}
			spent[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]BudgetView, len(kept))
	for i := range kept {
		views[i] = newBudgetView(&kept[i], spent[i], now)
	}
	return views, nil
}

// GetBudget returns one of the owner's budgets with derived fields.
func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string) (*BudgetView, error) {
	budget, err := s.find(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, budget)
}

// UpdateBudget applies patch. The creation instant is never changed, so a new
// period recomputes expiry from the original start.
func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, patch BudgetPatch) (*BudgetView, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrEmptyUpdate
	}

	updates := make(map[string]interface{})
	if patch.Category != nil {
		if err := validateCategory(*patch.Category); err != nil {
			return nil, err
		}
		updates["category"] = *patch.Category
	}
	if patch.Limit != nil {
		if err := validateLimit(*patch.Limit); err != nil {
			return nil, err
		}
		updates["limit_amount"] = *patch.Limit
	}
	if patch.Period != nil {
		period, err := validatePeriod(*patch.Period)
		if err != nil {
			return nil, err
		}
		updates["period"] = period
	}
	if patch.Alert != nil {
		updates["alert"] = *patch.Alert
	}

	budget, err := s.find(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.BudgetUpdated, userID, budget.ID))
	return s.enrich(ctx, budget)
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	budget, err := s.find(ctx, userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.BudgetDeleted, userID, budget.ID))
	return nil
}

func (s *budgetService) find(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

func (s *budgetService) enrich(ctx context.Context, budget *models.Budget) (*BudgetView, error) {
	spent, err := s.spend.SpendForBudget(ctx, budget)
	if err != nil {
		return nil, err
	}
	view := newBudgetView(budget, spent, s.now())
	return &view, nil
}

func newBudgetView(b *models.Budget, spent decimal.Decimal, now time.Time) BudgetView {
	return BudgetView{
		ID:        b.ID,
		Category:  b.Category,
		Limit:     b.Limit,
		Period:    b.Period,
		Alert:     b.Alert,
		Spent:     spent,
		Remaining: b.Limit.Sub(spent),
		OverLimit: spent.GreaterThan(b.Limit),
		Expired:   b.ExpiredAt(now),
		ExpiresAt: b.ExpiresAt(),
		CreatedAt: b.CreatedAt,
	}
}
