package recurrence

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// CatchUpConfig holds the tunables of the catch-up run.
type CatchUpConfig struct {
	LockTTL             time.Duration
	BackfillMaxAttempts int
}

// RunCatchUpUseCase expands every recurring template into ledger rows up to
// today. Concurrent callers in one process share a single run, and the run
// lock keeps runs in different processes apart. The shared run is detached
// from any one caller and is cancelled only once every caller has left.
type RunCatchUpUseCase struct {
	occurrences  *occurrencePoster
	backfillRepo adapter.BackfillRepository
	runLock      adapter.RunLock
	clock        adapter.Clock
	publisher    adapter.EventPublisher
	metrics      adapter.LedgerMetrics
	config       CatchUpConfig
	group        singleflight.Group

	mu        sync.Mutex
	callers   int
	cancelRun context.CancelFunc
}

// NewRunCatchUpUseCase creates a new RunCatchUpUseCase instance.
// Publisher and metrics may be nil.
func NewRunCatchUpUseCase(
	transactionRepo adapter.TransactionRepository,
	backfillRepo adapter.BackfillRepository,
	poster Poster,
	runLock adapter.RunLock,
	clock adapter.Clock,
	publisher adapter.EventPublisher,
	metrics adapter.LedgerMetrics,
	config CatchUpConfig,
) *RunCatchUpUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if config.LockTTL <= 0 {
		config.LockTTL = 2 * time.Minute
	}
	if config.BackfillMaxAttempts <= 0 {
		config.BackfillMaxAttempts = entity.DefaultBackfillMaxAttempts
	}

	return &RunCatchUpUseCase{
		occurrences: &occurrencePoster{
			transactionRepo: transactionRepo,
			poster:          poster,
		},
		backfillRepo: backfillRepo,
		runLock:      runLock,
		clock:        clock,
		publisher:    publisher,
		metrics:      metrics,
		config:       config,
	}
}

// Execute runs the catch-up, joining a run already in flight in this process.
// A caller whose ctx ends gets ctx.Err() without stopping the run for the others.
func (uc *RunCatchUpUseCase) Execute(ctx context.Context) (*entity.CatchUpSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uc.join()
	defer uc.leave()

	results := uc.group.DoChan(LockKey, func() (any, error) {
		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		uc.startRun(cancel)
		defer uc.endRun(cancel)
		return uc.run(runCtx)
	})

	select {
	case res := <-results:
		if res.Shared {
			slog.Debug("Joined in-flight recurrence catch-up")
		}
		summary, _ := res.Val.(*entity.CatchUpSummary)
		return summary, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (uc *RunCatchUpUseCase) join() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.callers++
}

func (uc *RunCatchUpUseCase) leave() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.callers--
	if uc.callers == 0 && uc.cancelRun != nil {
		uc.cancelRun()
	}
}

func (uc *RunCatchUpUseCase) startRun(cancel context.CancelFunc) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cancelRun = cancel
	if uc.callers == 0 {
		cancel()
	}
}

func (uc *RunCatchUpUseCase) endRun(cancel context.CancelFunc) {
	cancel()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cancelRun = nil
}

func (uc *RunCatchUpUseCase) run(ctx context.Context) (*entity.CatchUpSummary, error) {
	summary := &entity.CatchUpSummary{
		RunID:     uuid.New(),
		StartedAt: uc.clock.Now().UTC(),
	}

	token, ok, err := uc.runLock.TryAcquire(ctx, LockKey, uc.config.LockTTL)
	if err != nil {
		return nil, domainerror.NewRecurrenceError(
			domainerror.ErrCodeRunLockUnavailable,
			"failed to acquire recurrence run lock",
			fmt.Errorf("%w: %w", domainerror.ErrRunLockUnavailable, err),
		)
	}
	if !ok {
		summary.Skipped = true
		summary.FinishedAt = uc.clock.Now().UTC()
		slog.Info("Recurrence catch-up skipped, another run holds the lock", "run_id", summary.RunID)
		return summary, nil
	}
	defer func() {
		if err := uc.runLock.Release(context.WithoutCancel(ctx), LockKey, token); err != nil {
			slog.Error("Failed to release recurrence run lock", "run_id", summary.RunID, "error", err)
		}
	}()

	err = uc.catchUpAll(ctx, token, summary)
	uc.finish(ctx, summary, err)
	return summary, err
}

func (uc *RunCatchUpUseCase) catchUpAll(ctx context.Context, token string, summary *entity.CatchUpSummary) error {
	templates, err := uc.occurrences.transactionRepo.FindRecurringTemplates(ctx)
	if err != nil {
		return err
	}

	today := entity.NormalizeDate(uc.clock.Now())

	for _, template := range templates {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !template.IsTemplate() {
			slog.Warn("Skipping recurring transaction without recurrence state", "template_id", template.ID)
			continue
		}

		if err := renewRunLock(ctx, uc.runLock, token, uc.config.LockTTL); err != nil {
			return err
		}

		summary.Templates++
		if err := uc.catchUpTemplate(ctx, template, today, summary); err != nil {
			return err
		}
	}

	return nil
}

// catchUpTemplate posts every due occurrence of one template and persists the
// advanced cursor. Storage failures on single occurrences are recorded as
// backfill markers and do not stop the loop; any other failure aborts.
func (uc *RunCatchUpUseCase) catchUpTemplate(
	ctx context.Context,
	template *entity.Transaction,
	today time.Time,
	summary *entity.CatchUpSummary,
) error {
	due, next, err := entity.DueOccurrences(*template.NextOccurrence, today, *template.RecurrencePattern, *template.RecurrenceInterval)
	if err != nil {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeCorruptTemplate,
			fmt.Sprintf("template %s has pattern %q and interval %d", template.ID, *template.RecurrencePattern, *template.RecurrenceInterval),
			fmt.Errorf("%w: %w", domainerror.ErrCorruptTemplate, err),
		)
	}
	if len(due) == 0 {
		return nil
	}

	for _, day := range due {
		if err := ctx.Err(); err != nil {
			return err
		}

		posted, err := uc.occurrences.post(ctx, template, day)
		switch {
		case err == nil && posted:
			summary.Posted++
		case err == nil:
			summary.AlreadyPresent++
		case ctx.Err() != nil:
			return ctx.Err()
		case domainerror.IsStorage(err):
			summary.Failed++
			slog.Error("Failed to post recurring occurrence",
				"run_id", summary.RunID,
				"template_id", template.ID,
				"occurrence_date", day.Format(time.DateOnly),
				"error", err,
			)
			uc.recordBackfill(ctx, template, day, err)
		default:
			return err
		}
	}

	if err := uc.occurrences.transactionRepo.UpdateNextOccurrence(ctx, template.ID, next, uc.clock.Now()); err != nil {
		// The duplicate guard keeps the next run from posting twice.
		slog.Error("Failed to persist recurrence cursor",
			"run_id", summary.RunID,
			"template_id", template.ID,
			"next_occurrence", next.Format(time.DateOnly),
			"error", err,
		)
		return nil
	}
	summary.CursorsAdvanced++

	return nil
}

func (uc *RunCatchUpUseCase) recordBackfill(ctx context.Context, template *entity.Transaction, day time.Time, cause error) {
	backfill := entity.NewOccurrenceBackfill(template.ID, day, cause, uc.config.BackfillMaxAttempts, uc.clock.Now())
	if err := uc.backfillRepo.Record(ctx, backfill); err != nil {
		slog.Error("Failed to record occurrence backfill",
			"template_id", template.ID,
			"occurrence_date", day.Format(time.DateOnly),
			"error", err,
		)
	}
}

func (uc *RunCatchUpUseCase) finish(ctx context.Context, summary *entity.CatchUpSummary, runErr error) {
	summary.FinishedAt = uc.clock.Now().UTC()
	uc.metrics.CatchUpFinished(*summary, summary.FinishedAt.Sub(summary.StartedAt))

	attrs := []any{
		"run_id", summary.RunID,
		"templates", summary.Templates,
		"posted", summary.Posted,
		"already_present", summary.AlreadyPresent,
		"failed", summary.Failed,
		"cursors_advanced", summary.CursorsAdvanced,
	}
	if runErr != nil {
		slog.Error("Recurrence catch-up aborted", append(attrs, "error", runErr)...)
		return
	}
	slog.Info("Recurrence catch-up finished", attrs...)

	if uc.publisher == nil {
		return
	}
	event := entity.NewLedgerEvent(entity.EventCatchUpCompleted, summary.FinishedAt)
	event.Attributes["run_id"] = summary.RunID.String()
	event.Attributes["posted"] = strconv.Itoa(summary.Posted)
	event.Attributes["failed"] = strconv.Itoa(summary.Failed)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish catch-up event", "run_id", summary.RunID, "error", err)
	}
}
