// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// Migrate creates or updates the ledger schema and seeds the settings row.
func Migrate(db *gorm.DB, defaults entity.BudgetDefaults) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	if err := seedSettings(db, defaults); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// ledgerMaintenance implements the adapter.LedgerMaintenance interface.
type ledgerMaintenance struct {
	db       *gorm.DB
	defaults entity.BudgetDefaults
}

// NewLedgerMaintenance creates a maintenance handle for destructive operations.
func NewLedgerMaintenance(db *gorm.DB, defaults entity.BudgetDefaults) adapter.LedgerMaintenance {
	return &ledgerMaintenance{
		db:       db,
		defaults: defaults,
	}
}

// Reset drops every ledger table, recreates the schema and seeds the settings row.
func (m *ledgerMaintenance) Reset(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	models := model.All()

	// Children before parents so foreign keys never block a drop.
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return domainerror.NewSettingsError(domainerror.ErrCodeResetFailed, "failed to drop ledger tables", err)
		}
	}

	if err := Migrate(db, m.defaults); err != nil {
		return domainerror.NewSettingsError(domainerror.ErrCodeResetFailed, "failed to recreate ledger", err)
	}

	slog.Warn("Ledger reset completed")
	return nil
}
