// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// DayKeyLayout is the layout of the occurred_on column.
const DayKeyLayout = "2006-01-02"

// TransactionModel represents the transactions table in the database.
//
// OccurredOn mirrors the UTC calendar day of CreatedAt so day and month
// windows can be expressed as plain string ranges on every dialect.
type TransactionModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type               string     `gorm:"type:varchar(10);not null;index"`
	Amount             int64      `gorm:"not null;check:amount > 0"`
	Note               string     `gorm:"type:text"`
	CreatedAt          time.Time  `gorm:"not null"`
	OccurredOn         string     `gorm:"type:varchar(10);not null;index"`
	IsRecurring        bool       `gorm:"not null;default:false;index"`
	RecurrencePattern  *string    `gorm:"type:varchar(10)"`
	RecurrenceInterval *int
	NextOccurrence     *time.Time
	TemplateID         *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedAt          time.Time  `gorm:"not null;autoUpdateTime:false"`

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// BeforeSave stores timestamps in UTC at second precision and derives OccurredOn.
func (m *TransactionModel) BeforeSave(tx *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.UTC().Truncate(time.Second)
	m.OccurredOn = m.CreatedAt.Format(DayKeyLayout)
	if m.NextOccurrence != nil {
		next := entity.NormalizeDate(*m.NextOccurrence)
		m.NextOccurrence = &next
	}
	return nil
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var pattern *entity.RecurrencePattern
	if m.RecurrencePattern != nil {
		p := entity.RecurrencePattern(*m.RecurrencePattern)
		pattern = &p
	}

	var next *time.Time
	if m.NextOccurrence != nil {
		n := m.NextOccurrence.UTC()
		next = &n
	}

	return &entity.Transaction{
		ID:                 m.ID,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		Type:               entity.TransactionType(m.Type),
		Amount:             entity.Money(m.Amount),
		Note:               m.Note,
		CreatedAt:          m.CreatedAt.UTC(),
		IsRecurring:        m.IsRecurring,
		RecurrencePattern:  pattern,
		RecurrenceInterval: m.RecurrenceInterval,
		NextOccurrence:     next,
		TemplateID:         m.TemplateID,
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var pattern *string
	if transaction.RecurrencePattern != nil {
		p := string(*transaction.RecurrencePattern)
		pattern = &p
	}

	return &TransactionModel{
		ID:                 transaction.ID,
		AccountID:          transaction.AccountID,
		CategoryID:         transaction.CategoryID,
		Type:               string(transaction.Type),
		Amount:             int64(transaction.Amount),
		Note:               transaction.Note,
		CreatedAt:          transaction.CreatedAt,
		IsRecurring:        transaction.IsRecurring,
		RecurrencePattern:  pattern,
		RecurrenceInterval: transaction.RecurrenceInterval,
		NextOccurrence:     transaction.NextOccurrence,
		TemplateID:         transaction.TemplateID,
		UpdatedAt:          transaction.UpdatedAt,
	}
}

// DayKey formats the UTC calendar day of t as stored in occurred_on.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}
