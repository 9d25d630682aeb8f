// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// settingsRepository implements the adapter.SettingsRepository interface.
type settingsRepository struct {
	db       *gorm.DB
	defaults entity.BudgetDefaults
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB, defaults entity.BudgetDefaults) adapter.SettingsRepository {
	return &settingsRepository{
		db:       db,
		defaults: defaults,
	}
}

// Get returns the settings row, seeding it when missing.
func (r *settingsRepository) Get(ctx context.Context) (*entity.UserBudgetSettings, error) {
	var settingsModel model.UserSettingsModel
	result := r.db.WithContext(ctx).Where("id = ?", entity.SettingsID).First(&settingsModel)
	if result.Error == nil {
		return settingsModel.ToEntity(), nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, settingsStorageError("failed to load settings", result.Error)
	}

	if err := seedSettings(r.db.WithContext(ctx), r.defaults); err != nil {
		return nil, settingsStorageError("failed to seed settings", err)
	}
	if err := r.db.WithContext(ctx).Where("id = ?", entity.SettingsID).First(&settingsModel).Error; err != nil {
		return nil, settingsStorageError("failed to load settings", err)
	}
	return settingsModel.ToEntity(), nil
}

// Save overwrites the settings row.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.UserBudgetSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(model.UserSettingsFromEntity(settings)).Error; err != nil {
		return settingsStorageError("failed to save settings", err)
	}
	return nil
}

// SetMonthlyLimitAlert toggles the monthly limit alert flag.
func (r *settingsRepository) SetMonthlyLimitAlert(ctx context.Context, enabled bool) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&model.UserSettingsModel{}).
		Where("id = ?", entity.SettingsID).
		UpdateColumns(map[string]any{
			"show_monthly_limit_alert": enabled,
			"updated_at":               time.Now().UTC(),
		}).Error
	if err != nil {
		return settingsStorageError("failed to update monthly alert", err)
	}
	return nil
}

// seedSettings inserts the singleton row unless it already exists.
func seedSettings(db *gorm.DB, defaults entity.BudgetDefaults) error {
	seed := model.UserSettingsFromEntity(entity.NewUserBudgetSettings(defaults))
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error
}

func settingsStorageError(message string, err error) error {
	return domainerror.NewSettingsError(domainerror.ErrCodeSettingsStorage, message, err)
}
