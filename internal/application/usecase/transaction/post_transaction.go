// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

const (
	// MaxNoteLength is the maximum allowed length for transaction notes.
	MaxNoteLength = 255

	// SourceManual marks a transaction entered by the user.
	SourceManual = "manual"
	// SourceRecurrence marks a transaction generated from a recurring template.
	SourceRecurrence = "recurrence"
)

// RecurrenceInput describes the recurrence state requested for a transaction.
type RecurrenceInput struct {
	Pattern  entity.RecurrencePattern
	Interval int
}

// PostTransactionInput represents the input for posting a transaction.
type PostTransactionInput struct {
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Type       entity.TransactionType
	Amount     entity.Money
	Note       string
	CreatedAt  time.Time        // Zero means now
	Recurrence *RecurrenceInput // Nil posts a non-recurring transaction
	TemplateID *uuid.UUID       // Set when posting an occurrence of a template
}

// PostTransactionOutput represents the output of posting a transaction.
type PostTransactionOutput struct {
	Transaction *entity.Transaction
	Balance     entity.Money
}

// PostTransactionUseCase is the single entry point that inserts a ledger row
// and adjusts the owning account balance. Manual entry and the recurrence
// engine both post through it.
type PostTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	notifier        *ledgerNotifier
}

// NewPostTransactionUseCase creates a new PostTransactionUseCase instance.
// Publisher and metrics may be nil.
func NewPostTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	publisher adapter.EventPublisher,
	metrics adapter.LedgerMetrics,
) *PostTransactionUseCase {
	return &PostTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
		notifier:        newLedgerNotifier(publisher, metrics),
	}
}

// Execute validates the input and posts the transaction atomically.
func (uc *PostTransactionUseCase) Execute(ctx context.Context, input PostTransactionInput) (*PostTransactionOutput, error) {
	if input.AccountID == uuid.Nil || input.CategoryID == uuid.Nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"account_id and category_id are required",
			nil,
		)
	}
	if err := validateEntry(input.Type, input.Amount, input.Note); err != nil {
		return nil, err
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = uc.clock.Now()
	}

	transaction := entity.NewTransaction(
		input.AccountID,
		input.CategoryID,
		input.Type,
		input.Amount,
		input.Note,
		createdAt,
	)
	transaction.TemplateID = input.TemplateID
	transaction.UpdatedAt = uc.clock.Now().UTC()

	if input.Recurrence != nil {
		if err := transaction.EnableRecurrence(input.Recurrence.Pattern, input.Recurrence.Interval); err != nil {
			return nil, invalidRecurrence(err)
		}
	}

	result, err := uc.transactionRepo.Post(ctx, transaction)
	if err != nil {
		return nil, err
	}

	source := SourceManual
	if input.TemplateID != nil {
		source = SourceRecurrence
	}

	slog.Debug("Transaction posted",
		"transaction_id", result.Transaction.ID,
		"account_id", result.Transaction.AccountID,
		"type", result.Transaction.Type,
		"amount", result.Transaction.Amount.String(),
		"source", source,
	)

	uc.notifier.metrics.TransactionPosted(result.Transaction.Type, source)

	event := entity.NewLedgerEvent(entity.EventTransactionPosted, uc.clock.Now())
	event.TransactionID = &result.Transaction.ID
	event.AccountID = &result.Transaction.AccountID
	event.Balance = result.Balance.String()
	event.Attributes["type"] = string(result.Transaction.Type)
	event.Attributes["amount"] = result.Transaction.Amount.String()
	event.Attributes["source"] = source
	uc.notifier.publish(ctx, event)

	return &PostTransactionOutput{
		Transaction: result.Transaction,
		Balance:     result.Balance,
	}, nil
}

// validateEntry checks the fields shared by post and edit.
func validateEntry(transactionType entity.TransactionType, amount entity.Money, note string) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'credit' or 'debit'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if len(note) > MaxNoteLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}

	return nil
}

func invalidRecurrence(err error) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidRecurrence,
		"recurrence pattern must be daily, weekly or monthly with an interval of at least 1",
		err,
	)
}
