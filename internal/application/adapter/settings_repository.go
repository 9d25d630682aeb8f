// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// SettingsRepository defines the interface for the budget settings singleton.
type SettingsRepository interface {
	// Get returns the settings row, seeding it from defaults when missing.
	Get(ctx context.Context) (*entity.UserBudgetSettings, error)

	// Save overwrites the settings row.
	Save(ctx context.Context, settings *entity.UserBudgetSettings) error

	// SetMonthlyLimitAlert toggles the monthly limit alert flag.
	SetMonthlyLimitAlert(ctx context.Context, enabled bool) error
}

// LedgerMaintenance resets persisted state.
type LedgerMaintenance interface {
	// Reset drops every ledger table, recreates the schema and seeds the settings row.
	Reset(ctx context.Context) error
}
