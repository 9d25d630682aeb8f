package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// DateRangeFilter selects a trailing window relative to now.
type DateRangeFilter string

const (
	DateRangeWeek      DateRangeFilter = "week"
	DateRangeMonth     DateRangeFilter = "month"
	DateRangeSixMonths DateRangeFilter = "6months"
)

// DefaultRecentLimit is the number of transactions returned by the recent list.
const DefaultRecentLimit = 5

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	AccountID    *uuid.UUID
	CategoryName string
	Type         *entity.TransactionType
	Range        DateRangeFilter // Empty means the whole ledger
	Limit        int
	GroupByDate  bool
}

// ListTransactionsOutput represents the output of listing transactions.
// Groups is only populated when grouping was requested.
type ListTransactionsOutput struct {
	Transactions []*entity.TransactionWithCategory
	Groups       []*entity.TransactionGroup
}

// ListTransactionsUseCase handles listing and filtering transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute lists transactions newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, invalidFilter("type must be 'credit' or 'debit'")
	}
	if input.Limit < 0 {
		return nil, invalidFilter("limit must not be negative")
	}

	now := uc.clock.Now()
	from, err := rangeStart(input.Range, now)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		AccountID:    input.AccountID,
		CategoryName: input.CategoryName,
		Type:         input.Type,
		From:         from,
		Limit:        input.Limit,
	})
	if err != nil {
		return nil, err
	}

	output := &ListTransactionsOutput{Transactions: transactions}
	if input.GroupByDate {
		output.Groups = GroupByDate(transactions, now)
	}
	return output, nil
}

// Recent returns the latest transactions across all accounts.
func (uc *ListTransactionsUseCase) Recent(ctx context.Context, limit int) ([]*entity.TransactionWithCategory, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{Limit: limit})
}

// CreditsThisMonth returns the credits dated in the current calendar month.
func (uc *ListTransactionsUseCase) CreditsThisMonth(ctx context.Context) ([]*entity.TransactionWithCategory, error) {
	month := entity.MonthRange(uc.clock.Now())
	credit := entity.TransactionTypeCredit

	return uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		Type: &credit,
		From: &month.From,
		To:   &month.To,
	})
}

// rangeStart resolves a trailing window to the first day it covers.
func rangeStart(r DateRangeFilter, now time.Time) (*time.Time, error) {
	var start time.Time

	switch r {
	case "":
		return nil, nil
	case DateRangeWeek:
		start = now.AddDate(0, 0, -7)
	case DateRangeMonth:
		start = now.AddDate(0, -1, 0)
	case DateRangeSixMonths:
		start = now.AddDate(0, -6, 0)
	default:
		return nil, invalidFilter(fmt.Sprintf("range must be one of: %s, %s, %s", DateRangeWeek, DateRangeMonth, DateRangeSixMonths))
	}

	start = entity.NormalizeDate(start)
	return &start, nil
}

func invalidFilter(message string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidFilter,
		message,
		domainerror.ErrInvalidFilter,
	)
}
