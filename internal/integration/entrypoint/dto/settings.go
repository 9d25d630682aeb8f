package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// UpdateSettingsRequest represents the request body for a settings update.
type UpdateSettingsRequest struct {
	MonthlyBudget          *decimal.Decimal `json:"monthly_budget,omitempty"`
	SpendingPercentage     *decimal.Decimal `json:"spending_percentage,omitempty"`
	LifestyleLimit         *decimal.Decimal `json:"lifestyle_limit,omitempty"`
	ShowMonthlyLimitAlert  *bool            `json:"show_monthly_limit_alert,omitempty"`
	ShowCategoryLimitAlert *bool            `json:"show_category_limit_alert,omitempty"`
}

// ResetRequest represents the request body for a ledger reset.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// SettingsResponse represents the budget settings in API responses.
type SettingsResponse struct {
	MonthlyBudget          decimal.Decimal `json:"monthly_budget"`
	SpendingPercentage     decimal.Decimal `json:"spending_percentage"`
	LifestyleLimit         decimal.Decimal `json:"lifestyle_limit"`
	ShowMonthlyLimitAlert  bool            `json:"show_monthly_limit_alert"`
	ShowCategoryLimitAlert bool            `json:"show_category_limit_alert"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// ToSettingsResponse converts settings to their response.
func ToSettingsResponse(settings *entity.UserBudgetSettings) SettingsResponse {
	if settings == nil {
		return SettingsResponse{}
	}
	return SettingsResponse{
		MonthlyBudget:          settings.MonthlyBudget.Decimal(),
		SpendingPercentage:     settings.SpendingPercentage,
		LifestyleLimit:         settings.LifestyleLimit,
		ShowMonthlyLimitAlert:  settings.ShowMonthlyLimitAlert,
		ShowCategoryLimitAlert: settings.ShowCategoryLimitAlert,
		UpdatedAt:              settings.UpdatedAt,
	}
}
