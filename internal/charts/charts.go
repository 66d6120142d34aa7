// Package charts renders report summaries as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing with a non-zero amount to draw.
var ErrNoData = errors.New("no chartable data")

// Slice is one category's share of a report.
type Slice struct {
	Category string
	Amount   decimal.Decimal
}

// GroupByCategory sums detail amounts per category label, in order of first
// appearance. Zero totals are dropped.
func GroupByCategory(details []models.ReportDetail) []Slice {
	index := make(map[string]int)
	var slices []Slice
	for _, d := range details {
		i, ok := index[d.Category]
		if !ok {
			i = len(slices)
			index[d.Category] = i
			slices = append(slices, Slice{Category: d.Category})
		}
		slices[i].Amount = slices[i].Amount.Add(d.Amount.Abs())
	}

	out := slices[:0]
	for _, s := range slices {
		if !s.Amount.IsZero() {
			out = append(out, s)
		}
	}
	return out
}

// CategoryPie renders a pie chart of a report's details by category.
func CategoryPie(report *models.Report) ([]byte, error) {
	slices := GroupByCategory(report.Details)
	if len(slices) == 0 {
		return nil, ErrNoData
	}

	total := decimal.Zero
	for _, s := range slices {
		total = total.Add(s.Amount)
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		pct := s.Amount.Div(total).Mul(decimal.NewFromInt(100))
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%s%%)", s.Category, s.Amount.StringFixed(2), pct.StringFixed(1)),
			Value: s.Amount.InexactFloat64(),
		})
	}

	pie := chart.PieChart{
		Title:  report.Title,
		Width:  1200,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}
