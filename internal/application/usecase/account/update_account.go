package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// UpdateAccountInput represents the input for account update.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	Name      *string
	Balance   *entity.Money // Manual correction, shifts the opening balance
}

// UpdateAccountUseCase renames an account or corrects its balance.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*entity.Account, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		account.Name = name
	}
	if input.Balance != nil {
		account.SetBalance(*input.Balance)
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
