package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn func(userID, category string, limit decimal.Decimal, period models.BudgetPeriod, alert bool) (*services.BudgetView, error)
	listBudgetsFn  func(userID string, status models.BudgetStatus) ([]services.BudgetView, error)
	getBudgetFn    func(userID, budgetID string) (*services.BudgetView, error)
	updateBudgetFn func(userID, budgetID string, patch services.BudgetPatch) (*services.BudgetView, error)
	deleteBudgetFn func(userID, budgetID string) error
}

func (m *mockBudgetService) CreateBudget(_ context.Context, userID, category string, limit decimal.Decimal, period models.BudgetPeriod, alert bool) (*services.BudgetView, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, category, limit, period, alert)
	}
	return &services.BudgetView{}, nil
}

func (m *mockBudgetService) ListBudgets(_ context.Context, userID string, status models.BudgetStatus) ([]services.BudgetView, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(userID, status)
	}
	return []services.BudgetView{}, nil
}

func (m *mockBudgetService) GetBudget(_ context.Context, userID, budgetID string) (*services.BudgetView, error) {
	if m.getBudgetFn != nil {
		return m.getBudgetFn(userID, budgetID)
	}
	return &services.BudgetView{}, nil
}

func (m *mockBudgetService) UpdateBudget(_ context.Context, userID, budgetID string, patch services.BudgetPatch) (*services.BudgetView, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, patch)
	}
	return &services.BudgetView{}, nil
}

func (m *mockBudgetService) DeleteBudget(_ context.Context, userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.ListBudgets)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func sampleView(category string, limit decimal.Decimal, period models.BudgetPeriod) *services.BudgetView {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &services.BudgetView{
		ID:        testBudgetID,
		Category:  category,
		Limit:     limit,
		Period:    period,
		Spent:     decimal.Zero,
		Remaining: limit,
		CreatedAt: created,
		ExpiresAt: models.AddPeriod(created, period),
	}
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotUser string
		var gotPeriod models.BudgetPeriod
		svc := &mockBudgetService{
			createBudgetFn: func(userID, category string, limit decimal.Decimal, period models.BudgetPeriod, _ bool) (*services.BudgetView, error) {
				gotUser, gotPeriod = userID, period
				return sampleView(category, limit, models.BudgetPeriodMonth), nil
			},
		}
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(svc, audit))

		rec := doRequest(r, "POST", "/budgets", `{"category":"Food","limit":"250.50","period":"Month","alert":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		budget := parseJSON(t, rec)
		if budget["category"] != "Food" {
			t.Errorf("expected Food, got %v", budget["category"])
		}
		if budget["limit"] != "250.5" {
			t.Errorf("expected limit \"250.5\", got %v", budget["limit"])
		}
		if gotUser != testUserID || gotPeriod != "Month" {
			t.Errorf("service called with user=%s period=%s", gotUser, gotPeriod)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditActionCreate {
			t.Errorf("expected one create audit entry, got %+v", audit.entries)
		}
	})

	t.Run("accepts numeric limit", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_, category string, limit decimal.Decimal, period models.BudgetPeriod, _ bool) (*services.BudgetView, error) {
				if !limit.Equal(decimal.NewFromInt(40)) {
					t.Errorf("expected limit 40, got %s", limit)
				}
				return sampleView(category, limit, period), nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"category":"Food","limit":40,"period":"week"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing category", `{"limit":"10","period":"week"}`, "INVALID_INPUT"},
		{"blank category", `{"category":"  ","limit":"10","period":"week"}`, "INVALID_INPUT"},
		{"missing limit", `{"category":"Food","period":"week"}`, "INVALID_INPUT"},
		{"unknown period", `{"category":"Food","limit":"10","period":"fortnight"}`, "INVALID_BUDGET_PERIOD"},
		{"malformed json", `{"category":`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))
			rec := doRequest(r, "POST", "/budgets", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), tt.code)
		})
	}

	t.Run("returns 400 on non-positive limit", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(string, string, decimal.Decimal, models.BudgetPeriod, bool) (*services.BudgetView, error) {
				return nil, apperrors.ErrInvalidBudgetLimit
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"category":"Food","limit":"0","period":"week"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_BUDGET_LIMIT")
	})

	t.Run("returns 401 without user", func(t *testing.T) {
		r := gin.New()
		r.POST("/budgets", NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}).CreateBudget)

		rec := doRequest(r, "POST", "/budgets", `{"category":"Food","limit":"10","period":"week"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})
}

func TestBudgetHandler_ListBudgets(t *testing.T) {
	statuses := []struct {
		query string
		want  models.BudgetStatus
	}{
		{"", models.BudgetStatusActive},
		{"?status=All", models.BudgetStatusAll},
		{"?status=expired", models.BudgetStatusExpired},
		{"?status=ACTIVE", models.BudgetStatusActive},
	}
	for _, tt := range statuses {
		t.Run("status "+tt.query, func(t *testing.T) {
			var got models.BudgetStatus
			svc := &mockBudgetService{
				listBudgetsFn: func(_ string, status models.BudgetStatus) ([]services.BudgetView, error) {
					got = status
					return []services.BudgetView{*sampleView("Food", decimal.NewFromInt(10), models.BudgetPeriodWeek)}, nil
				},
			}
			r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

			rec := doRequest(r, "GET", "/budgets"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, got)
			}
			if body := rec.Body.String(); len(body) == 0 || body[0] != '[' {
				t.Errorf("expected a JSON array, got %s", body)
			}
		})
	}

	t.Run("returns 400 on invalid status", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/budgets?status=pending", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_BUDGET_STATUS")
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		svc := &mockBudgetService{
			listBudgetsFn: func(string, models.BudgetStatus) ([]services.BudgetView, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, context.DeadlineExceeded)
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "GET", "/budgets", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetFn: func(_, budgetID string) (*services.BudgetView, error) {
				if budgetID != testBudgetID {
					t.Errorf("unexpected id %s", budgetID)
				}
				return sampleView("Food", decimal.NewFromInt(10), models.BudgetPeriodWeek), nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		budget := parseJSON(t, rec)
		if budget["id"] != testBudgetID {
			t.Errorf("expected id %s, got %v", testBudgetID, budget["id"])
		}
		for _, key := range []string{"spent", "remaining", "overLimit", "expired", "expiresAt", "createdAt"} {
			if _, ok := budget[key]; !ok {
				t.Errorf("expected %q in budget view", key)
			}
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/budgets/42", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetFn: func(string, string) (*services.BudgetView, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "GET", "/budgets/"+testBudgetID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("passes partial patch", func(t *testing.T) {
		var got services.BudgetPatch
		svc := &mockBudgetService{
			updateBudgetFn: func(_, _ string, patch services.BudgetPatch) (*services.BudgetView, error) {
				got = patch
				return sampleView("Food", decimal.NewFromInt(99), models.BudgetPeriodQuarter), nil
			},
		}
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(svc, audit))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"limit":"99","period":"Quarter"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Category != nil || got.Alert != nil {
			t.Errorf("unset fields should stay nil: %+v", got)
		}
		if got.Limit == nil || !got.Limit.Equal(decimal.NewFromInt(99)) {
			t.Errorf("expected limit 99, got %v", got.Limit)
		}
		if got.Period == nil || *got.Period != models.BudgetPeriodQuarter {
			t.Errorf("expected quarter, got %v", got.Period)
		}
		if len(audit.entries) != 1 || audit.entries[0].changes["period"] != "Quarter" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("returns 400 on empty patch", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, _ string, patch services.BudgetPatch) (*services.BudgetView, error) {
				if !patch.IsEmpty() {
					t.Errorf("expected empty patch, got %+v", patch)
				}
				return nil, apperrors.ErrEmptyUpdate
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EMPTY_UPDATE")
	})

	t.Run("returns 400 on invalid period", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))
		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"period":"daily"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_BUDGET_PERIOD")
	})

	t.Run("returns 404", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(string, string, services.BudgetPatch) (*services.BudgetView, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"alert":true}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, audit))

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["message"] == nil {
			t.Error("expected message")
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testBudgetID {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("returns 404", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteBudgetFn: func(string, string) error { return apperrors.ErrBudgetNotFound },
		}
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Error("failed delete must not be audited")
		}
	})
}
