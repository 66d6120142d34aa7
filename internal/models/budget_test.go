package models

import (
	"testing"
	"time"
)

func TestAddPeriod(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		period BudgetPeriod
		want   time.Time
	}{
		{"week", date(2024, 3, 10), BudgetPeriodWeek, date(2024, 3, 17)},
		{"week across month", date(2024, 2, 27), BudgetPeriodWeek, date(2024, 3, 5)},
		{"month", date(2024, 3, 15), BudgetPeriodMonth, date(2024, 4, 15)},
		{"month clamps to leap february", date(2024, 1, 31), BudgetPeriodMonth, endOfDay(2024, 2, 29)},
		{"month clamps to february", date(2023, 1, 31), BudgetPeriodMonth, endOfDay(2023, 2, 28)},
		{"month clamps to 30 day month", date(2024, 3, 31), BudgetPeriodMonth, endOfDay(2024, 4, 30)},
		{"month across year", date(2024, 12, 15), BudgetPeriodMonth, date(2025, 1, 15)},
		{"quarter", date(2024, 1, 15), BudgetPeriodQuarter, date(2024, 4, 15)},
		{"quarter clamps", date(2024, 11, 30), BudgetPeriodQuarter, endOfDay(2025, 2, 28)},
		{"year", date(2024, 6, 1), BudgetPeriodYear, date(2025, 6, 1)},
		{"year from leap day", date(2024, 2, 29), BudgetPeriodYear, endOfDay(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddPeriod(tt.start, tt.period)
			if !got.Equal(tt.want) {
				t.Errorf("AddPeriod(%s, %s) = %s, want %s", tt.start.Format(time.RFC3339), tt.period, got.Format(time.RFC3339), tt.want.Format(time.RFC3339))
			}
		})
	}

	t.Run("keeps time of day", func(t *testing.T) {
		start := time.Date(2024, 1, 29, 13, 45, 10, 500, time.UTC)
		got := AddPeriod(start, BudgetPeriodMonth)
		want := time.Date(2024, 2, 29, 13, 45, 10, 500, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unknown period is identity", func(t *testing.T) {
		start := date(2024, 1, 1)
		if got := AddPeriod(start, "fortnight"); !got.Equal(start) {
			t.Errorf("expected %v, got %v", start, got)
		}
	})
}

func TestAddPeriod_Properties(t *testing.T) {
	periods := []BudgetPeriod{BudgetPeriodWeek, BudgetPeriodMonth, BudgetPeriodQuarter, BudgetPeriodYear}
	start := date(2023, 1, 1)

	for _, p := range periods {
		t.Run(string(p), func(t *testing.T) {
			prev := AddPeriod(start, p)
			for i := 0; i < 2*366; i++ {
				createdAt := start.Add(time.Duration(i) * 12 * time.Hour)
				expiry := AddPeriod(createdAt, p)

				if !expiry.After(createdAt) {
					t.Fatalf("expiry %v not after createdAt %v", expiry, createdAt)
				}
				if expiry.Before(prev) {
					t.Fatalf("expiry decreased: %v then %v (createdAt %v)", prev, expiry, createdAt)
				}
				prev = expiry
			}
		})
	}
}

func TestBudget_ExpiredAt(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	b := &Budget{Base: Base{CreatedAt: createdAt}, Period: BudgetPeriodWeek}
	expiry := createdAt.AddDate(0, 0, 7)

	if !b.ExpiresAt().Equal(expiry) {
		t.Fatalf("expected expiry %v, got %v", expiry, b.ExpiresAt())
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at creation", createdAt, false},
		{"day six", createdAt.AddDate(0, 0, 6), false},
		{"exactly at expiry", expiry, false},
		{"one nanosecond after expiry", expiry.Add(time.Nanosecond), true},
		{"day eight", createdAt.AddDate(0, 0, 8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ExpiredAt(tt.now); got != tt.want {
				t.Errorf("ExpiredAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestParseBudgetPeriod(t *testing.T) {
	for _, in := range []string{"week", "Month", " QUARTER ", "year"} {
		if _, ok := ParseBudgetPeriod(in); !ok {
			t.Errorf("expected %q to parse", in)
		}
	}
	for in, want := range map[string]BudgetPeriod{"month": BudgetPeriodMonth, "MONTH": BudgetPeriodMonth, "Week": BudgetPeriodWeek, " quarter": BudgetPeriodQuarter} {
		if p, _ := ParseBudgetPeriod(in); p != want {
			t.Errorf("ParseBudgetPeriod(%q) = %q, want %q", in, p, want)
		}
	}
	for _, in := range []string{"", "monthly", "day"} {
		if _, ok := ParseBudgetPeriod(in); ok {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestParseBudgetStatus(t *testing.T) {
	tests := []struct {
		in   string
		want BudgetStatus
		ok   bool
	}{
		{"", BudgetStatusActive, true},
		{"Active", BudgetStatusActive, true},
		{"all", BudgetStatusAll, true},
		{"EXPIRED", BudgetStatusExpired, true},
		{"archived", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseBudgetStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBudgetStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}
