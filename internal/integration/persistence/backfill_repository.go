// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// backfillRepository implements the adapter.BackfillRepository interface.
type backfillRepository struct {
	db *gorm.DB
}

// NewBackfillRepository creates a new backfill repository instance.
func NewBackfillRepository(db *gorm.DB) adapter.BackfillRepository {
	return &backfillRepository{
		db: db,
	}
}

// Record stores a pending marker. An existing marker for the same template and
// date is put back to pending with its error refreshed and a fresh retry budget.
func (r *backfillRepository) Record(ctx context.Context, backfill *entity.OccurrenceBackfill) error {
	backfillModel := model.OccurrenceBackfillFromEntity(backfill)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "template_id"}, {Name: "occurrence_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":       string(entity.BackfillStatusPending),
				"attempts":     0,
				"max_attempts": backfillModel.MaxAttempts,
				"last_error":   backfillModel.LastError,
				"scheduled_at": backfillModel.ScheduledAt,
				"resolved_at":  nil,
			}),
		}).
		Create(backfillModel)
	if result.Error != nil {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeRecurrenceStorage,
			"failed to record backfill marker",
			result.Error,
		)
	}
	return nil
}

// GetPending retrieves markers ready to be processed.
func (r *backfillRepository) GetPending(ctx context.Context, now time.Time, limit int) ([]*entity.OccurrenceBackfill, error) {
	var models []model.OccurrenceBackfillModel

	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.BackfillStatusPending)).
		Where("scheduled_at <= ?", now.UTC()).
		Order("scheduled_at ASC, occurrence_date ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewRecurrenceError(
			domainerror.ErrCodeRecurrenceStorage,
			"failed to load pending backfills",
			result.Error,
		)
	}

	backfills := make([]*entity.OccurrenceBackfill, len(models))
	for i := range models {
		backfills[i] = models[i].ToEntity()
	}
	return backfills, nil
}

// Update saves changes to a marker.
func (r *backfillRepository) Update(ctx context.Context, backfill *entity.OccurrenceBackfill) error {
	if err := r.db.WithContext(ctx).Save(model.OccurrenceBackfillFromEntity(backfill)).Error; err != nil {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeRecurrenceStorage,
			"failed to update backfill marker",
			err,
		)
	}
	return nil
}

// CountPending returns the number of unresolved markers.
func (r *backfillRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OccurrenceBackfillModel{}).
		Where("status = ?", string(entity.BackfillStatusPending)).
		Count(&count).Error
	if err != nil {
		return 0, domainerror.NewRecurrenceError(
			domainerror.ErrCodeRecurrenceStorage,
			"failed to count backfills",
			err,
		)
	}
	return count, nil
}
