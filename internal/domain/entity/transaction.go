// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Signed returns the balance effect of amount for this transaction type.
func (t TransactionType) Signed(amount Money) Money {
	if t == TransactionTypeCredit {
		return amount
	}
	return -amount
}

// Transaction represents a ledger entry. A row with IsRecurring set is both a
// posted occurrence and the template that drives later occurrences.
type Transaction struct {
	ID                 uuid.UUID
	AccountID          uuid.UUID
	CategoryID         uuid.UUID
	Type               TransactionType
	Amount             Money // Always positive, sign is carried by Type
	Note               string
	CreatedAt          time.Time
	IsRecurring        bool
	RecurrencePattern  *RecurrencePattern
	RecurrenceInterval *int
	NextOccurrence     *time.Time // Recurrence cursor, midnight UTC
	TemplateID         *uuid.UUID // Set on occurrences generated from a template
	UpdatedAt          time.Time
}

// NewTransaction creates a new non-recurring Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	categoryID uuid.UUID,
	transactionType TransactionType,
	amount Money,
	note string,
	createdAt time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       transactionType,
		Amount:     amount,
		Note:       note,
		CreatedAt:  createdAt.UTC(),
		UpdatedAt:  now,
	}
}

// SignedAmount returns the transaction's effect on its account balance.
func (t *Transaction) SignedAmount() Money {
	return t.Type.Signed(t.Amount)
}

// IsTemplate reports whether the row carries complete recurrence state.
func (t *Transaction) IsTemplate() bool {
	return t.IsRecurring && t.RecurrencePattern != nil && t.RecurrenceInterval != nil && t.NextOccurrence != nil
}

// EnableRecurrence turns the transaction into a template whose first cursor is
// one step after its own date.
func (t *Transaction) EnableRecurrence(pattern RecurrencePattern, interval int) error {
	next, err := Advance(NormalizeDate(t.CreatedAt), pattern, interval)
	if err != nil {
		return err
	}
	t.IsRecurring = true
	t.RecurrencePattern = &pattern
	t.RecurrenceInterval = &interval
	t.NextOccurrence = &next
	return nil
}

// DisableRecurrence clears all recurrence state.
func (t *Transaction) DisableRecurrence() {
	t.IsRecurring = false
	t.RecurrencePattern = nil
	t.RecurrenceInterval = nil
	t.NextOccurrence = nil
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionGroup holds transactions sharing one display date.
type TransactionGroup struct {
	Label        string
	Date         time.Time
	Transactions []*TransactionWithCategory
}

// PostResult is the outcome of an atomic post.
type PostResult struct {
	Transaction *Transaction
	Balance     Money
}

// EditResult is the outcome of an atomic edit. PreviousAccountBalance is set
// when the edit moved the transaction to another account.
type EditResult struct {
	Transaction            *Transaction
	Balance                Money
	PreviousAccountID      uuid.UUID
	PreviousAccountBalance *Money
}

// RemoveResult is the outcome of an atomic delete.
type RemoveResult struct {
	AccountID uuid.UUID
	Balance   Money
}
