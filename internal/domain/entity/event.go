// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventType names a change in the ledger.
type LedgerEventType string

const (
	EventTransactionPosted  LedgerEventType = "transaction.posted"
	EventTransactionEdited  LedgerEventType = "transaction.edited"
	EventTransactionDeleted LedgerEventType = "transaction.deleted"
	EventCatchUpCompleted   LedgerEventType = "recurrence.completed"
)

// LedgerEvent is published after a ledger change has been committed.
type LedgerEvent struct {
	ID            uuid.UUID         `json:"id"`
	Type          LedgerEventType   `json:"type"`
	OccurredAt    time.Time         `json:"occurred_at"`
	TransactionID *uuid.UUID        `json:"transaction_id,omitempty"`
	AccountID     *uuid.UUID        `json:"account_id,omitempty"`
	Balance       string            `json:"balance,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// NewLedgerEvent creates an event stamped with a fresh id.
func NewLedgerEvent(eventType LedgerEventType, occurredAt time.Time) LedgerEvent {
	return LedgerEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Attributes: map[string]string{},
	}
}
