// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Icon          string    `gorm:"type:varchar(50);not null"`
	IconSet       string    `gorm:"type:varchar(50);not null"`
	SpendingType  string    `gorm:"type:varchar(20);not null;default:'essential'"`
	CategoryLimit *int64
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var limit *entity.Money
	if m.CategoryLimit != nil {
		l := entity.Money(*m.CategoryLimit)
		limit = &l
	}

	return &entity.Category{
		ID:           m.ID,
		Name:         m.Name,
		Icon:         m.Icon,
		IconSet:      m.IconSet,
		SpendingType: entity.SpendingType(m.SpendingType),
		Limit:        limit,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var limit *int64
	if category.Limit != nil {
		l := int64(*category.Limit)
		limit = &l
	}

	return &CategoryModel{
		ID:            category.ID,
		Name:          category.Name,
		Icon:          category.Icon,
		IconSet:       category.IconSet,
		SpendingType:  string(category.SpendingType),
		CategoryLimit: limit,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}
