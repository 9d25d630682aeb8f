// Package recurrence contains the recurring transaction catch-up use cases.
package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// LockKey is the run lock shared by catch-up and backfill passes.
const LockKey = "kharcha:recurrence:catch-up"

// renewRunLock pushes the run lock another ttl out before the next unit of
// work. A run that no longer owns the lock must stop.
func renewRunLock(ctx context.Context, lock adapter.RunLock, token string, ttl time.Duration) error {
	renewed, err := lock.Extend(ctx, LockKey, token, ttl)
	if err != nil {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeRunLockUnavailable,
			"failed to renew recurrence run lock",
			fmt.Errorf("%w: %w", domainerror.ErrRunLockUnavailable, err),
		)
	}
	if !renewed {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeRunLockLost,
			"recurrence run lock expired before the run finished",
			domainerror.ErrRunLockLost,
		)
	}
	return nil
}

// Poster posts a single transaction and adjusts its account balance.
type Poster interface {
	Execute(ctx context.Context, input transaction.PostTransactionInput) (*transaction.PostTransactionOutput, error)
}

// occurrencePoster posts one dated occurrence of a template unless the ledger
// already holds it.
type occurrencePoster struct {
	transactionRepo adapter.TransactionRepository
	poster          Poster
}

// post returns true when a new row was written and false when the occurrence
// was already present.
func (p *occurrencePoster) post(ctx context.Context, template *entity.Transaction, day time.Time) (bool, error) {
	exists, err := p.transactionRepo.HasOccurrence(ctx, template, day)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	templateID := template.ID
	_, err = p.poster.Execute(ctx, transaction.PostTransactionInput{
		AccountID:  template.AccountID,
		CategoryID: template.CategoryID,
		Type:       template.Type,
		Amount:     template.Amount,
		Note:       template.Note,
		CreatedAt:  day,
		TemplateID: &templateID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

type noopMetrics struct{}

func (noopMetrics) TransactionPosted(entity.TransactionType, string) {}
func (noopMetrics) CatchUpFinished(entity.CatchUpSummary, time.Duration) {}
func (noopMetrics) BackfillProcessed(entity.BackfillStatus) {}
