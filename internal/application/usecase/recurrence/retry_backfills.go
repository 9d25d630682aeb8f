package recurrence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// DefaultBackfillBatchSize is the number of markers processed per pass.
const DefaultBackfillBatchSize = 20

var errTemplateGone = errors.New("template no longer recurs")

// RetryBackfillsUseCase re-attempts occurrences whose posting failed during a
// catch-up run. It shares the catch-up run lock.
type RetryBackfillsUseCase struct {
	occurrences  *occurrencePoster
	backfillRepo adapter.BackfillRepository
	runLock      adapter.RunLock
	clock        adapter.Clock
	metrics      adapter.LedgerMetrics
	lockTTL      time.Duration
}

// NewRetryBackfillsUseCase creates a new RetryBackfillsUseCase instance.
func NewRetryBackfillsUseCase(
	transactionRepo adapter.TransactionRepository,
	backfillRepo adapter.BackfillRepository,
	poster Poster,
	runLock adapter.RunLock,
	clock adapter.Clock,
	metrics adapter.LedgerMetrics,
	lockTTL time.Duration,
) *RetryBackfillsUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}

	return &RetryBackfillsUseCase{
		occurrences: &occurrencePoster{
			transactionRepo: transactionRepo,
			poster:          poster,
		},
		backfillRepo: backfillRepo,
		runLock:      runLock,
		clock:        clock,
		metrics:      metrics,
		lockTTL:      lockTTL,
	}
}

// Execute processes up to batchSize markers that are due.
func (uc *RetryBackfillsUseCase) Execute(ctx context.Context, batchSize int) (*entity.BackfillSummary, error) {
	if batchSize <= 0 {
		batchSize = DefaultBackfillBatchSize
	}
	summary := &entity.BackfillSummary{}

	token, ok, err := uc.runLock.TryAcquire(ctx, LockKey, uc.lockTTL)
	if err != nil {
		return nil, domainerror.NewRecurrenceError(
			domainerror.ErrCodeRunLockUnavailable,
			"failed to acquire recurrence run lock",
			fmt.Errorf("%w: %w", domainerror.ErrRunLockUnavailable, err),
		)
	}
	if !ok {
		summary.Skipped = true
		return summary, nil
	}
	defer func() {
		if err := uc.runLock.Release(context.WithoutCancel(ctx), LockKey, token); err != nil {
			slog.Error("Failed to release recurrence run lock", "error", err)
		}
	}()

	pending, err := uc.backfillRepo.GetPending(ctx, uc.clock.Now(), batchSize)
	if err != nil {
		return nil, err
	}

	for _, backfill := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := renewRunLock(ctx, uc.runLock, token, uc.lockTTL); err != nil {
			return summary, err
		}

		uc.retry(ctx, backfill)
		if err := uc.backfillRepo.Update(ctx, backfill); err != nil {
			return summary, err
		}

		summary.Processed++
		switch backfill.Status {
		case entity.BackfillStatusResolved:
			summary.Resolved++
		case entity.BackfillStatusFailed:
			summary.Failed++
		default:
			summary.Retrying++
		}
		uc.metrics.BackfillProcessed(backfill.Status)
	}

	if summary.Processed > 0 {
		slog.Info("Occurrence backfill pass finished",
			"processed", summary.Processed,
			"resolved", summary.Resolved,
			"retrying", summary.Retrying,
			"failed", summary.Failed,
		)
	}
	return summary, nil
}

// retry attempts one marker and records the outcome on it.
func (uc *RetryBackfillsUseCase) retry(ctx context.Context, backfill *entity.OccurrenceBackfill) {
	now := uc.clock.Now()

	template, err := uc.occurrences.transactionRepo.FindByID(ctx, backfill.TemplateID)
	if err != nil {
		permanent := domainerror.KindOf(err) == domainerror.KindNotFound
		if permanent {
			err = fmt.Errorf("%w: %w", errTemplateGone, err)
		}
		backfill.MarkFailed(err, permanent, now)
		return
	}
	if !template.IsRecurring {
		backfill.MarkFailed(errTemplateGone, true, now)
		return
	}

	if _, err := uc.occurrences.post(ctx, template, backfill.OccurrenceDate); err != nil {
		backfill.MarkFailed(err, !domainerror.IsStorage(err), now)
		slog.Warn("Occurrence backfill attempt failed",
			"backfill_id", backfill.ID,
			"template_id", backfill.TemplateID,
			"occurrence_date", backfill.OccurrenceDate.Format(time.DateOnly),
			"attempts", backfill.Attempts,
			"error", err,
		)
		return
	}

	backfill.MarkResolved(now)
}
