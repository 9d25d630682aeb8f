// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindAll retrieves all accounts ordered by name.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// Update saves name, balance and opening balance of an account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account. It fails with a conflict while transactions reference it.
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalBalance returns the sum of all account balances.
	TotalBalance(ctx context.Context) (entity.Money, error)
}
