package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SPEND_SCOPE", "")
		t.Setenv("DB_DRIVER", "")
		t.Setenv("PORT", "")
		t.Setenv("BUDGET_SPEND_CONCURRENCY", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.DBDriver != "postgres" {
			t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
		}
		if cfg.SpendScope != SpendScopeGlobal {
			t.Errorf("expected global spend scope, got %s", cfg.SpendScope)
		}
		if cfg.SpendConcurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", cfg.SpendConcurrency)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SPEND_SCOPE", "Budget")
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("BUDGET_SPEND_CONCURRENCY", "8")

		cfg, _ := Load()
		if cfg.SpendScope != SpendScopeBudget {
			t.Errorf("expected budget spend scope, got %s", cfg.SpendScope)
		}
		if cfg.DBDriver != "sqlite" {
			t.Errorf("expected sqlite driver, got %s", cfg.DBDriver)
		}
		if cfg.SpendConcurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", cfg.SpendConcurrency)
		}
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("SPEND_SCOPE", "everything")
		t.Setenv("BUDGET_SPEND_CONCURRENCY", "-2")

		cfg, _ := Load()
		if cfg.SpendScope != SpendScopeGlobal {
			t.Errorf("expected fallback to global, got %s", cfg.SpendScope)
		}
		if cfg.SpendConcurrency != 4 {
			t.Errorf("expected fallback concurrency 4, got %d", cfg.SpendConcurrency)
		}
	})
}
