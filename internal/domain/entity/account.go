// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a money container whose balance is the cached sum of its ledger.
//
// Balance always equals OpeningBalance plus the signed amounts of the account's
// transactions. Only the transaction poster moves Balance; SetBalance shifts
// OpeningBalance along with it so the equality keeps holding.
type Account struct {
	ID             uuid.UUID
	Name           string
	Balance        Money
	OpeningBalance Money
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(name string, openingBalance Money) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:             uuid.New(),
		Name:           name,
		Balance:        openingBalance,
		OpeningBalance: openingBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SetBalance corrects the balance manually by moving the opening balance by the same delta.
func (a *Account) SetBalance(balance Money) {
	delta := balance - a.Balance
	a.OpeningBalance += delta
	a.Balance = balance
}
