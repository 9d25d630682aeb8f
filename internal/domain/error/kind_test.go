package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation", NewTransactionError(ErrCodeInvalidTransactionAmount, "bad amount", ErrInvalidTransactionAmount), KindValidation},
		{"reference", NewTransactionError(ErrCodeUnknownAccount, "unknown account", ErrUnknownAccount), KindReference},
		{"conflict", NewAccountError(ErrCodeAccountHasTransactions, "has transactions", ErrAccountHasTransactions), KindConflict},
		{"not found", NewCategoryError(ErrCodeCategoryNotFound, "missing", ErrCategoryNotFound), KindNotFound},
		{"storage", NewRecurrenceError(ErrCodeRecurrenceStorage, "db down", errors.New("io")), KindStorage},
		{"uncoded error is storage", errors.New("boom"), KindStorage},
		{"wrapped coded error", fmt.Errorf("context: %w", NewSettingsError(ErrCodeInvalidPercentage, "bad", ErrInvalidPercentage)), KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestCodedErrorsUnwrapSentinels(t *testing.T) {
	err := fmt.Errorf("post: %w", NewTransactionError(ErrCodeUnknownCategory, "category does not exist", ErrUnknownCategory))

	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.True(t, IsReference(err))
	assert.Equal(t, "TXN-020002", CodeOf(err))
	assert.Equal(t, "post: category does not exist: unknown category", err.Error())
}

func TestKindFromCode(t *testing.T) {
	assert.Equal(t, KindStorage, kindFromCode("garbage"))
	assert.Equal(t, KindStorage, kindFromCode("DSH-990001"))
	assert.Equal(t, KindNotFound, kindFromCode("REC-040001"))
}
