package dto

import (
	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// EvaluateLimitRequest represents the request body for a limit check.
type EvaluateLimitRequest struct {
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

// LimitDecisionResponse represents a limit decision in API responses.
type LimitDecisionResponse struct {
	MonthlyExceeded  bool             `json:"monthly_exceeded"`
	CategoryExceeded bool             `json:"category_exceeded"`
	CurrentSpent     decimal.Decimal  `json:"current_spent"`
	CategoryLimit    *decimal.Decimal `json:"category_limit"`
	MonthlyChecked   bool             `json:"monthly_checked"`
	MonthlySpent     decimal.Decimal  `json:"monthly_spent"`
	MonthlyEarned    decimal.Decimal  `json:"monthly_earned"`
	MonthlyAllowed   decimal.Decimal  `json:"monthly_allowed"`
}

// ToLimitDecisionResponse converts a decision to its response.
func ToLimitDecisionResponse(decision *entity.LimitDecision) *LimitDecisionResponse {
	if decision == nil {
		return nil
	}
	return &LimitDecisionResponse{
		MonthlyExceeded:  decision.MonthlyExceeded,
		CategoryExceeded: decision.CategoryExceeded,
		CurrentSpent:     decision.CurrentSpent.Decimal(),
		CategoryLimit:    moneyPtr(decision.CategoryLimit),
		MonthlyChecked:   decision.MonthlyChecked,
		MonthlySpent:     decision.MonthlySpent.Decimal(),
		MonthlyEarned:    decision.MonthlyEarned.Decimal(),
		MonthlyAllowed:   decision.MonthlyAllowed.Decimal(),
	}
}
