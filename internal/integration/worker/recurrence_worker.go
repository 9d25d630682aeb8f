// Package worker runs background ledger jobs.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CatchUpRunner expands recurring templates up to today.
type CatchUpRunner interface {
	Execute(ctx context.Context) (*entity.CatchUpSummary, error)
}

// BackfillRetrier reposts occurrences whose first attempt failed.
type BackfillRetrier interface {
	Execute(ctx context.Context, batchSize int) (*entity.BackfillSummary, error)
}

// RecurrenceWorker periodically runs the recurrence catch-up followed by a
// backfill retry pass.
type RecurrenceWorker struct {
	catchUp   CatchUpRunner
	backfills BackfillRetrier
	interval  time.Duration
	batchSize int
}

// RecurrenceWorkerConfig holds configuration for the recurrence worker.
type RecurrenceWorkerConfig struct {
	Interval  time.Duration
	BatchSize int
}

// DefaultRecurrenceWorkerConfig returns the default worker configuration.
func DefaultRecurrenceWorkerConfig() RecurrenceWorkerConfig {
	return RecurrenceWorkerConfig{
		Interval:  time.Hour,
		BatchSize: 20,
	}
}

// NewRecurrenceWorker creates a new recurrence worker.
func NewRecurrenceWorker(catchUp CatchUpRunner, backfills BackfillRetrier, config RecurrenceWorkerConfig) *RecurrenceWorker {
	defaults := DefaultRecurrenceWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	return &RecurrenceWorker{
		catchUp:   catchUp,
		backfills: backfills,
		interval:  config.Interval,
		batchSize: config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *RecurrenceWorker) Start(ctx context.Context) {
	slog.Info("Recurrence worker started",
		"interval", w.interval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Catch up immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurrence worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch runs one catch-up and one backfill pass. Failures are logged
// and retried on the next tick.
func (w *RecurrenceWorker) processBatch(ctx context.Context) {
	summary, err := w.catchUp.Execute(ctx)
	if err != nil {
		slog.Error("Recurrence catch-up failed", "error", err)
	} else if summary.Skipped {
		slog.Debug("Recurrence catch-up skipped, another run holds the lock")
	}

	if ctx.Err() != nil {
		return
	}

	backfills, err := w.backfills.Execute(ctx, w.batchSize)
	if err != nil {
		slog.Error("Backfill retry failed", "error", err)
		return
	}
	if backfills.Processed > 0 {
		slog.Info("Backfill retry pass finished",
			"processed", backfills.Processed,
			"resolved", backfills.Resolved,
			"retrying", backfills.Retrying,
			"failed", backfills.Failed,
		)
	}
}

// ProcessNow runs one pass immediately (useful for testing).
func (w *RecurrenceWorker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
