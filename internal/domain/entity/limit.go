// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// LimitDecision describes whether a prospective transaction would breach the
// monthly spending ceiling or its category limit. It is data, never an error.
type LimitDecision struct {
	CategoryID       uuid.UUID
	MonthlyExceeded  bool
	CategoryExceeded bool
	CurrentSpent     Money  // Category spend this month before the transaction
	CategoryLimit    *Money // Nil when the category has no limit
	MonthlyChecked   bool   // False when monthly alerts are switched off
	MonthlySpent     Money
	MonthlyEarned    Money
	MonthlyAllowed   Money
}

// Exceeded reports whether any limit would be breached.
func (d *LimitDecision) Exceeded() bool {
	return d.MonthlyExceeded || d.CategoryExceeded
}
