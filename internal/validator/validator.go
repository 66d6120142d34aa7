// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendwise/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
		_ = v.RegisterValidation("budget_status", validateBudgetStatus)
		_ = v.RegisterValidation("not_blank", validateNotBlank)
	}
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	_, ok := models.ParseBudgetPeriod(fl.Field().String())
	return ok
}

func validateBudgetStatus(fl validator.FieldLevel) bool {
	_, ok := models.ParseBudgetStatus(fl.Field().String())
	return ok
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
