// Package settings contains the budget settings use cases.
package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

var maxPercentage = decimal.NewFromInt(100)

// UpdateSettingsInput represents the input for saving budget settings.
// Nil fields keep their stored value.
type UpdateSettingsInput struct {
	MonthlyBudget          *entity.Money
	SpendingPercentage     *decimal.Decimal
	LifestyleLimit         *decimal.Decimal
	ShowMonthlyLimitAlert  *bool
	ShowCategoryLimitAlert *bool
}

// SettingsUseCase reads and writes the budget settings singleton.
type SettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
	maintenance  adapter.LedgerMaintenance
	clock        adapter.Clock
}

// NewSettingsUseCase creates a new SettingsUseCase instance.
func NewSettingsUseCase(
	settingsRepo adapter.SettingsRepository,
	maintenance adapter.LedgerMaintenance,
	clock adapter.Clock,
) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		maintenance:  maintenance,
		clock:        clock,
	}
}

// Get returns the current settings.
func (uc *SettingsUseCase) Get(ctx context.Context) (*entity.UserBudgetSettings, error) {
	return uc.settingsRepo.Get(ctx)
}

// Update validates and saves the provided fields.
func (uc *SettingsUseCase) Update(ctx context.Context, input UpdateSettingsInput) (*entity.UserBudgetSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.MonthlyBudget != nil {
		if *input.MonthlyBudget < 0 {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidMonthlyBudget,
				"monthly budget must not be negative",
				domainerror.ErrInvalidMonthlyBudget,
			)
		}
		settings.MonthlyBudget = *input.MonthlyBudget
	}
	if input.SpendingPercentage != nil {
		if err := validatePercentage(*input.SpendingPercentage); err != nil {
			return nil, err
		}
		settings.SpendingPercentage = *input.SpendingPercentage
	}
	if input.LifestyleLimit != nil {
		if err := validatePercentage(*input.LifestyleLimit); err != nil {
			return nil, err
		}
		settings.LifestyleLimit = *input.LifestyleLimit
	}
	if input.ShowMonthlyLimitAlert != nil {
		settings.ShowMonthlyLimitAlert = *input.ShowMonthlyLimitAlert
	}
	if input.ShowCategoryLimitAlert != nil {
		settings.ShowCategoryLimitAlert = *input.ShowCategoryLimitAlert
	}
	settings.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// DismissMonthlyAlert switches the monthly limit alert off.
func (uc *SettingsUseCase) DismissMonthlyAlert(ctx context.Context) error {
	return uc.settingsRepo.SetMonthlyLimitAlert(ctx, false)
}

// Reset drops the whole ledger and reseeds the settings row. It requires an
// explicit confirmation.
func (uc *SettingsUseCase) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domainerror.NewSettingsError(
			domainerror.ErrCodeResetNotConfirmed,
			"reset must be confirmed",
			domainerror.ErrResetNotConfirmed,
		)
	}

	return uc.maintenance.Reset(ctx)
}

func validatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxPercentage) {
		return domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidPercentage,
			"percentage must be between 0 and 100",
			domainerror.ErrInvalidPercentage,
		)
	}
	return nil
}
