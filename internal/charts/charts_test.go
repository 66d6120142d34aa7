package charts

import (
	"bytes"
	"errors"
	"testing"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

func detail(category, amount string) models.ReportDetail {
	return models.ReportDetail{Category: category, Amount: decimal.RequireFromString(amount)}
}

func TestGroupByCategory(t *testing.T) {
	slices := GroupByCategory([]models.ReportDetail{
		detail("Food", "50"),
		detail("Rent", "900"),
		detail("Food", "30.5"),
		detail("Gifts", "0"),
	})

	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d: %+v", len(slices), slices)
	}
	if slices[0].Category != "Food" || !slices[0].Amount.Equal(decimal.RequireFromString("80.5")) {
		t.Errorf("unexpected first slice: %+v", slices[0])
	}
	if slices[1].Category != "Rent" || !slices[1].Amount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("unexpected second slice: %+v", slices[1])
	}
}

func TestCategoryPie(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		report := &models.Report{
			Title:   "March",
			Details: []models.ReportDetail{detail("Food", "80"), detail("Salary", "100")},
		}

		img, err := CategoryPie(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(img, []byte("\x89PNG")) {
			t.Error("expected PNG signature")
		}
	})

	t.Run("no details", func(t *testing.T) {
		_, err := CategoryPie(&models.Report{Title: "Empty"})
		if !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("only zero amounts", func(t *testing.T) {
		_, err := CategoryPie(&models.Report{Details: []models.ReportDetail{detail("Food", "0")}})
		if !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}
