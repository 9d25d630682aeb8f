// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// UserSettingsModel represents the user_settings singleton table.
type UserSettingsModel struct {
	ID                     int             `gorm:"primaryKey;autoIncrement:false"`
	MonthlyBudget          int64           `gorm:"not null"`
	SpendingPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LifestyleLimit         decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ShowMonthlyLimitAlert  bool            `gorm:"not null;default:true"`
	ShowCategoryLimitAlert bool            `gorm:"not null;default:true"`
	UpdatedAt              time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserBudgetSettings entity.
func (m *UserSettingsModel) ToEntity() *entity.UserBudgetSettings {
	return &entity.UserBudgetSettings{
		MonthlyBudget:          entity.Money(m.MonthlyBudget),
		SpendingPercentage:     m.SpendingPercentage,
		LifestyleLimit:         m.LifestyleLimit,
		ShowMonthlyLimitAlert:  m.ShowMonthlyLimitAlert,
		ShowCategoryLimitAlert: m.ShowCategoryLimitAlert,
		UpdatedAt:              m.UpdatedAt.UTC(),
	}
}

// UserSettingsFromEntity creates the singleton model from a domain entity.
func UserSettingsFromEntity(settings *entity.UserBudgetSettings) *UserSettingsModel {
	return &UserSettingsModel{
		ID:                     entity.SettingsID,
		MonthlyBudget:          int64(settings.MonthlyBudget),
		SpendingPercentage:     settings.SpendingPercentage,
		LifestyleLimit:         settings.LifestyleLimit,
		ShowMonthlyLimitAlert:  settings.ShowMonthlyLimitAlert,
		ShowCategoryLimitAlert: settings.ShowCategoryLimitAlert,
		UpdatedAt:              settings.UpdatedAt,
	}
}
