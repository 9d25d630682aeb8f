// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BackfillStatus represents the state of a missed-occurrence marker.
type BackfillStatus string

const (
	BackfillStatusPending  BackfillStatus = "pending"
	BackfillStatusResolved BackfillStatus = "resolved"
	BackfillStatusFailed   BackfillStatus = "failed"
)

// DefaultBackfillMaxAttempts is the number of retries before a marker is given up.
const DefaultBackfillMaxAttempts = 3

// OccurrenceBackfill records an occurrence whose posting failed during catch-up
// so a later pass can post it.
type OccurrenceBackfill struct {
	ID             uuid.UUID
	TemplateID     uuid.UUID
	OccurrenceDate time.Time // Midnight UTC
	Status         BackfillStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ResolvedAt     *time.Time
}

// NewOccurrenceBackfill creates a pending marker for one missed occurrence,
// ready to be retried immediately.
func NewOccurrenceBackfill(templateID uuid.UUID, occurrenceDate time.Time, cause error, maxAttempts int, now time.Time) *OccurrenceBackfill {
	now = now.UTC()
	if maxAttempts < 1 {
		maxAttempts = DefaultBackfillMaxAttempts
	}

	b := &OccurrenceBackfill{
		ID:             uuid.New(),
		TemplateID:     templateID,
		OccurrenceDate: NormalizeDate(occurrenceDate),
		Status:         BackfillStatusPending,
		MaxAttempts:    maxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
	if cause != nil {
		b.LastError = cause.Error()
	}
	return b
}

// MarkResolved marks the occurrence as present in the ledger.
func (b *OccurrenceBackfill) MarkResolved(now time.Time) {
	b.Status = BackfillStatusResolved
	resolvedAt := now.UTC()
	b.ResolvedAt = &resolvedAt
}

// MarkFailed records a failed retry and schedules the next one if attempts remain.
func (b *OccurrenceBackfill) MarkFailed(err error, permanent bool, now time.Time) {
	b.Attempts++
	b.LastError = err.Error()

	if permanent || b.Attempts >= b.MaxAttempts {
		b.Status = BackfillStatusFailed
		resolvedAt := now.UTC()
		b.ResolvedAt = &resolvedAt
	} else {
		b.Status = BackfillStatusPending
		b.ScheduledAt = b.nextRetry(now)
	}
}

// nextRetry uses backoff delays of 0s, 1min then 5min.
func (b *OccurrenceBackfill) nextRetry(now time.Time) time.Time {
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	if b.Attempts < len(delays) {
		return now.UTC().Add(delays[b.Attempts])
	}
	return now.UTC().Add(5 * time.Minute)
}

// IsReadyToProcess returns true if the marker is due for another attempt.
func (b *OccurrenceBackfill) IsReadyToProcess(now time.Time) bool {
	return b.Status == BackfillStatusPending && !now.UTC().Before(b.ScheduledAt)
}
