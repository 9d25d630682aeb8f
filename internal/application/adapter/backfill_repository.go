// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// BackfillRepository defines the interface for missed-occurrence markers.
type BackfillRepository interface {
	// Record stores a pending marker. A marker for the same template and date is reused.
	Record(ctx context.Context, backfill *entity.OccurrenceBackfill) error

	// GetPending retrieves markers ready to be processed, ordered by scheduled_at.
	GetPending(ctx context.Context, now time.Time, limit int) ([]*entity.OccurrenceBackfill, error)

	// Update saves changes to a marker.
	Update(ctx context.Context, backfill *entity.OccurrenceBackfill) error

	// CountPending returns the number of unresolved markers.
	CountPending(ctx context.Context) (int64, error)
}
