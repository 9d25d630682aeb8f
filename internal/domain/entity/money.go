// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidMoney is returned when an amount cannot be represented in minor units.
var ErrInvalidMoney = errors.New("invalid amount")

var (
	ErrMoneyPrecision  = fmt.Errorf("%w: more than two decimal places", ErrInvalidMoney)
	ErrMoneyOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidMoney)
)

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// Money is an amount in minor currency units (1/100 of the major unit).
type Money int64

// MoneyFromDecimal converts a major-unit decimal into Money.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Round(2)) {
		return 0, ErrMoneyPrecision
	}
	minor := d.Shift(2)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return 0, ErrMoneyOutOfRange
	}
	return Money(minor.IntPart()), nil
}

// ParseMoney parses a major-unit string such as "12.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	return MoneyFromDecimal(d)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}
