// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// OccurrenceBackfillModel represents the occurrence_backfills table in the database.
type OccurrenceBackfillModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TemplateID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_backfill_occurrence"`
	OccurrenceDate string       `gorm:"type:varchar(10);not null;uniqueIndex:idx_backfill_occurrence"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	CreatedAt      time.Time    `gorm:"not null"`
	ScheduledAt    time.Time    `gorm:"not null"`
	ResolvedAt     sql.NullTime
}

// TableName returns the table name for the OccurrenceBackfillModel.
func (OccurrenceBackfillModel) TableName() string {
	return "occurrence_backfills"
}

// ToEntity converts an OccurrenceBackfillModel to a domain OccurrenceBackfill entity.
func (m *OccurrenceBackfillModel) ToEntity() *entity.OccurrenceBackfill {
	occurrence, _ := time.ParseInLocation(DayKeyLayout, m.OccurrenceDate, time.UTC)

	var resolvedAt *time.Time
	if m.ResolvedAt.Valid {
		r := m.ResolvedAt.Time.UTC()
		resolvedAt = &r
	}

	return &entity.OccurrenceBackfill{
		ID:             m.ID,
		TemplateID:     m.TemplateID,
		OccurrenceDate: occurrence,
		Status:         entity.BackfillStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		CreatedAt:      m.CreatedAt.UTC(),
		ScheduledAt:    m.ScheduledAt.UTC(),
		ResolvedAt:     resolvedAt,
	}
}

// OccurrenceBackfillFromEntity creates an OccurrenceBackfillModel from a domain entity.
func OccurrenceBackfillFromEntity(b *entity.OccurrenceBackfill) *OccurrenceBackfillModel {
	var resolvedAt sql.NullTime
	if b.ResolvedAt != nil {
		resolvedAt = sql.NullTime{Time: b.ResolvedAt.UTC(), Valid: true}
	}

	return &OccurrenceBackfillModel{
		ID:             b.ID,
		TemplateID:     b.TemplateID,
		OccurrenceDate: DayKey(b.OccurrenceDate),
		Status:         string(b.Status),
		Attempts:       b.Attempts,
		MaxAttempts:    b.MaxAttempts,
		LastError:      b.LastError,
		CreatedAt:      b.CreatedAt.UTC().Truncate(time.Second),
		ScheduledAt:    b.ScheduledAt.UTC().Truncate(time.Second),
		ResolvedAt:     resolvedAt,
	}
}
