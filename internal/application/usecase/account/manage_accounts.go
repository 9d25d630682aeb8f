package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// DeleteAccountUseCase deletes an account. An account that still has
// transactions cannot be deleted.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, accountID uuid.UUID) error {
	return uc.accountRepo.Delete(ctx, accountID)
}

// GetAccountsUseCase reads accounts and the total balance.
type GetAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountsUseCase creates a new GetAccountsUseCase instance.
func NewGetAccountsUseCase(accountRepo adapter.AccountRepository) *GetAccountsUseCase {
	return &GetAccountsUseCase{accountRepo: accountRepo}
}

// List returns all accounts.
func (uc *GetAccountsUseCase) List(ctx context.Context) ([]*entity.Account, error) {
	return uc.accountRepo.FindAll(ctx)
}

// Get returns one account.
func (uc *GetAccountsUseCase) Get(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	return uc.accountRepo.FindByID(ctx, accountID)
}

// TotalBalance returns the sum of all account balances.
func (uc *GetAccountsUseCase) TotalBalance(ctx context.Context) (entity.Money, error) {
	return uc.accountRepo.TotalBalance(ctx)
}
