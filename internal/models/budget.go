package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the length of a budget's validity window.
type BudgetPeriod string

const (
	BudgetPeriodWeek    BudgetPeriod = "Week"
	BudgetPeriodMonth   BudgetPeriod = "Month"
	BudgetPeriodQuarter BudgetPeriod = "Quarter"
	BudgetPeriodYear    BudgetPeriod = "Year"
)

// ParseBudgetPeriod matches s case-insensitively and returns the canonical
// spelling, so "month" and "MONTH" both store as Month.
func ParseBudgetPeriod(s string) (BudgetPeriod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return BudgetPeriodWeek, true
	case "month":
		return BudgetPeriodMonth, true
	case "quarter":
		return BudgetPeriodQuarter, true
	case "year":
		return BudgetPeriodYear, true
	}
	return "", false
}

// Valid reports whether p is one of the enumerated periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeek, BudgetPeriodMonth, BudgetPeriodQuarter, BudgetPeriodYear:
		return true
	}
	return false
}

// AddPeriod returns t advanced by one period using calendar arithmetic.
// Month based periods keep the day of month and time of day. When the target
// month is shorter the result clamps to the end of its last day, so
// Jan 31 + month is the last instant of Feb 28 (or 29).
// An unknown period returns t unchanged.
func AddPeriod(t time.Time, p BudgetPeriod) time.Time {
	switch p {
	case BudgetPeriodWeek:
		return t.AddDate(0, 0, 7)
	case BudgetPeriodMonth:
		return addMonthsClamped(t, 1)
	case BudgetPeriodQuarter:
		return addMonthsClamped(t, 3)
	case BudgetPeriodYear:
		return addMonthsClamped(t, 12)
	}
	return t
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	// Day 0 of the following month is the last day of target.
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		// A clamped window runs to the end of the last day, otherwise a budget
		// created on the 31st could expire before one created on the 30th.
		return time.Date(target.Year(), target.Month(), lastDay, 23, 59, 59, 999999999, t.Location())
	}

	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// BudgetStatus filters budgets by their derived state.
type BudgetStatus string

const (
	BudgetStatusAll     BudgetStatus = "All"
	BudgetStatusActive  BudgetStatus = "Active"
	BudgetStatusExpired BudgetStatus = "Expired"
)

// ParseBudgetStatus normalizes s (case-insensitive). An empty string means Active.
func ParseBudgetStatus(s string) (BudgetStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return BudgetStatusActive, true
	case "all":
		return BudgetStatusAll, true
	case "expired":
		return BudgetStatusExpired, true
	}
	return "", false
}

// Budget is a spending cap on a category label for a rolling period that
// starts at creation time. Its status is never stored.
type Budget struct {
	Base
	UserID   string          `gorm:"not null;index" json:"userId"`
	Category string          `gorm:"not null" json:"category"`
	Limit    decimal.Decimal `gorm:"column:limit_amount;type:numeric(20,8);not null" json:"limit"`
	Period   BudgetPeriod    `gorm:"not null" json:"period"`
	Alert    bool            `gorm:"not null;default:false" json:"alert"`
}

// ExpiresAt is the end of the budget's validity window.
func (b *Budget) ExpiresAt() time.Time {
	return AddPeriod(b.CreatedAt, b.Period)
}

// ExpiredAt reports whether the window has closed at now. The budget is still
// active at exactly its expiry instant.
func (b *Budget) ExpiredAt(now time.Time) bool {
	return now.After(b.ExpiresAt())
}
