// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SpendingType classifies a category for budgeting.
type SpendingType string

const (
	SpendingTypeEssential SpendingType = "essential"
	SpendingTypeLifestyle SpendingType = "lifestyle"
)

// IsValid reports whether the spending type is known.
func (s SpendingType) IsValid() bool {
	return s == SpendingTypeEssential || s == SpendingTypeLifestyle
}

// SalaryCategoryName is the category returned when a credit window has no activity.
const SalaryCategoryName = "Salary"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// DefaultCategoryIconSet is the default icon set for categories.
const DefaultCategoryIconSet = "MaterialIcons"

// Category represents a transaction category.
type Category struct {
	ID           uuid.UUID
	Name         string
	Icon         string
	IconSet      string
	SpendingType SpendingType
	Limit        *Money // Optional monthly ceiling
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCategory creates a new Category entity.
// Defaulting of icon and icon set is applied by the caller.
func NewCategory(name, icon, iconSet string, spendingType SpendingType, limit *Money) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:           uuid.New(),
		Name:         name,
		Icon:         icon,
		IconSet:      iconSet,
		SpendingType: spendingType,
		Limit:        limit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasLimit reports whether the category carries a monthly limit.
func (c *Category) HasLimit() bool {
	return c.Limit != nil
}

// CategoryBudget is a category with its limit and current-month debit total.
type CategoryBudget struct {
	Category   *Category
	MonthTotal Money
}
