package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// EditTransactionInput represents the input for editing a transaction.
// Nil fields keep their stored value.
type EditTransactionInput struct {
	ID         uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Amount     *entity.Money
	Note       *string
	CreatedAt  *time.Time
	// IsRecurring switches recurrence on or off. Turning it on requires Recurrence.
	IsRecurring *bool
	Recurrence  *RecurrenceInput
}

// EditTransactionOutput represents the output of editing a transaction.
type EditTransactionOutput struct {
	Transaction            *entity.Transaction
	Balance                entity.Money
	PreviousAccountID      uuid.UUID
	PreviousAccountBalance *entity.Money // Set when the transaction moved to another account
}

// EditTransactionUseCase handles transaction edits. The stored row's balance
// effect is reversed and the edited row's effect applied in one storage
// transaction.
type EditTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	notifier        *ledgerNotifier
}

// NewEditTransactionUseCase creates a new EditTransactionUseCase instance.
func NewEditTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	publisher adapter.EventPublisher,
) *EditTransactionUseCase {
	return &EditTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
		notifier:        newLedgerNotifier(publisher, nil),
	}
}

// Execute performs the transaction edit.
func (uc *EditTransactionUseCase) Execute(ctx context.Context, input EditTransactionInput) (*EditTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.AccountID != nil {
		transaction.AccountID = *input.AccountID
	}
	if input.CategoryID != nil {
		transaction.CategoryID = *input.CategoryID
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Note != nil {
		transaction.Note = *input.Note
	}
	if input.CreatedAt != nil {
		transaction.CreatedAt = input.CreatedAt.UTC()
	}

	if err := validateEntry(transaction.Type, transaction.Amount, transaction.Note); err != nil {
		return nil, err
	}
	if err := applyRecurrenceEdit(transaction, input); err != nil {
		return nil, err
	}
	transaction.UpdatedAt = uc.clock.Now().UTC()

	result, err := uc.transactionRepo.Edit(ctx, transaction)
	if err != nil {
		return nil, err
	}

	event := entity.NewLedgerEvent(entity.EventTransactionEdited, uc.clock.Now())
	event.TransactionID = &result.Transaction.ID
	event.AccountID = &result.Transaction.AccountID
	event.Balance = result.Balance.String()
	if result.PreviousAccountBalance != nil {
		event.Attributes["previous_account_id"] = result.PreviousAccountID.String()
		event.Attributes["previous_account_balance"] = result.PreviousAccountBalance.String()
	}
	uc.notifier.publish(ctx, event)

	return &EditTransactionOutput{
		Transaction:            result.Transaction,
		Balance:                result.Balance,
		PreviousAccountID:      result.PreviousAccountID,
		PreviousAccountBalance: result.PreviousAccountBalance,
	}, nil
}

// applyRecurrenceEdit updates recurrence state. A cursor is only created when
// recurrence is switched on for a non-recurring row; an existing cursor is
// never moved by an edit.
func applyRecurrenceEdit(transaction *entity.Transaction, input EditTransactionInput) error {
	if input.IsRecurring != nil && !*input.IsRecurring {
		transaction.DisableRecurrence()
		return nil
	}

	if input.Recurrence == nil {
		if input.IsRecurring != nil && *input.IsRecurring && !transaction.IsRecurring {
			return invalidRecurrence(entity.ErrInvalidRecurrence)
		}
		return nil
	}

	if !transaction.IsRecurring || transaction.NextOccurrence == nil {
		if err := transaction.EnableRecurrence(input.Recurrence.Pattern, input.Recurrence.Interval); err != nil {
			return invalidRecurrence(err)
		}
		return nil
	}

	if _, err := entity.Advance(*transaction.NextOccurrence, input.Recurrence.Pattern, input.Recurrence.Interval); err != nil {
		return invalidRecurrence(err)
	}
	pattern := input.Recurrence.Pattern
	interval := input.Recurrence.Interval
	transaction.RecurrencePattern = &pattern
	transaction.RecurrenceInterval = &interval
	return nil
}
