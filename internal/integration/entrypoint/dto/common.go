// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ToMoney converts a major-unit amount from a request body.
func ToMoney(field string, d decimal.Decimal) (entity.Money, error) {
	m, err := entity.MoneyFromDecimal(d)
	if errors.Is(err, entity.ErrMoneyOutOfRange) {
		return 0, domainerror.NewRequestError(domainerror.ErrCodeInvalidAmount, field+" is out of range", err)
	}
	if err != nil {
		return 0, domainerror.NewRequestError(domainerror.ErrCodeInvalidAmount, field+" must have at most two decimal places", err)
	}
	return m, nil
}

// ToMoneyPtr converts an optional amount.
func ToMoneyPtr(field string, d *decimal.Decimal) (*entity.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := ToMoney(field, *d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseID parses a UUID path or body value.
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerror.NewRequestError(domainerror.ErrCodeInvalidID, "invalid "+field+" format", err)
	}
	return id, nil
}

// ParseOptionalID parses an optional UUID value.
func ParseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := ParseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func moneyPtr(m *entity.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Decimal()
	return &d
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}
