// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	AccountID    *uuid.UUID
	CategoryName string // Case-insensitive exact match
	Type         *entity.TransactionType
	From         *time.Time // Inclusive
	To           *time.Time // Exclusive
	Limit        int        // Zero means no limit
}

// TransactionRepository defines the interface for ledger persistence operations.
//
// Post, Edit and Remove each run in a single storage transaction that covers
// both the ledger row and the owning account balance.
type TransactionRepository interface {
	// Post inserts the transaction and applies its signed amount to the account balance.
	Post(ctx context.Context, transaction *entity.Transaction) (*entity.PostResult, error)

	// Edit reverses the stored row's balance effect, applies the new one and saves the row.
	Edit(ctx context.Context, transaction *entity.Transaction) (*entity.EditResult, error)

	// Remove reverses the row's balance effect and deletes it.
	Remove(ctx context.Context, id uuid.UUID, at time.Time) (*entity.RemoveResult, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions with their categories, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionWithCategory, error)

	// FindRecurringTemplates retrieves every row with is_recurring set.
	FindRecurringTemplates(ctx context.Context) ([]*entity.Transaction, error)

	// HasOccurrence reports whether the template already has a posted row on day,
	// either generated from it or matching its account, category, type and amount.
	HasOccurrence(ctx context.Context, template *entity.Transaction, day time.Time) (bool, error)

	// UpdateNextOccurrence persists a template cursor.
	UpdateNextOccurrence(ctx context.Context, templateID uuid.UUID, next, at time.Time) error
}
