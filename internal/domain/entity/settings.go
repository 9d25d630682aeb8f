// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the settings singleton row.
const SettingsID = 1

// UserBudgetSettings is the singleton row of budget preferences.
type UserBudgetSettings struct {
	MonthlyBudget          Money
	SpendingPercentage     decimal.Decimal // Share of monthly earnings that may be spent
	LifestyleLimit         decimal.Decimal
	ShowMonthlyLimitAlert  bool
	ShowCategoryLimitAlert bool
	UpdatedAt              time.Time
}

// BudgetDefaults are the values used when the settings row is first seeded.
type BudgetDefaults struct {
	MonthlyBudget      Money
	SpendingPercentage decimal.Decimal
	LifestyleLimit     decimal.Decimal
}

// DefaultBudgetDefaults returns the seed values of a fresh ledger.
func DefaultBudgetDefaults() BudgetDefaults {
	return BudgetDefaults{
		MonthlyBudget:      Money(20000 * 100),
		SpendingPercentage: decimal.NewFromInt(100),
		LifestyleLimit:     decimal.NewFromInt(70),
	}
}

// NewUserBudgetSettings creates the settings row from defaults with both alerts enabled.
func NewUserBudgetSettings(defaults BudgetDefaults) *UserBudgetSettings {
	return &UserBudgetSettings{
		MonthlyBudget:          defaults.MonthlyBudget,
		SpendingPercentage:     defaults.SpendingPercentage,
		LifestyleLimit:         defaults.LifestyleLimit,
		ShowMonthlyLimitAlert:  true,
		ShowCategoryLimitAlert: true,
		UpdatedAt:              time.Now().UTC(),
	}
}
