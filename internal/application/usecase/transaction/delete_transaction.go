package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	AccountID uuid.UUID
	Balance   entity.Money
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	notifier        *ledgerNotifier
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	publisher adapter.EventPublisher,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
		notifier:        newLedgerNotifier(publisher, nil),
	}
}

// Execute removes the transaction and reverses its balance effect.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	now := uc.clock.Now()
	result, err := uc.transactionRepo.Remove(ctx, input.TransactionID, now)
	if err != nil {
		return nil, err
	}

	event := entity.NewLedgerEvent(entity.EventTransactionDeleted, now)
	event.TransactionID = &input.TransactionID
	event.AccountID = &result.AccountID
	event.Balance = result.Balance.String()
	uc.notifier.publish(ctx, event)

	return &DeleteTransactionOutput{
		AccountID: result.AccountID,
		Balance:   result.Balance,
	}, nil
}
