package dashboard

import (
	"context"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

const (
	// DefaultTopWindowDays is the trailing window of the top spending categories.
	DefaultTopWindowDays = 30
	// DefaultTopLimit is the number of top spending categories returned.
	DefaultTopLimit = 2
)

// GetTopCategoriesInput represents the input for top spending categories.
type GetTopCategoriesInput struct {
	WindowDays int
	Limit      int
}

// GetTopCategoriesUseCase ranks categories by debit total over a trailing
// window, and lists the categories that received credits this month.
type GetTopCategoriesUseCase struct {
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewGetTopCategoriesUseCase creates a new GetTopCategoriesUseCase instance.
func NewGetTopCategoriesUseCase(aggregationRepo adapter.AggregationRepository, clock adapter.Clock) *GetTopCategoriesUseCase {
	return &GetTopCategoriesUseCase{
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Execute returns the top spending categories, highest total first.
func (uc *GetTopCategoriesUseCase) Execute(ctx context.Context, input GetTopCategoriesInput) ([]entity.CategoryTotal, error) {
	if input.WindowDays == 0 {
		input.WindowDays = DefaultTopWindowDays
	}
	if input.Limit <= 0 {
		input.Limit = DefaultTopLimit
	}
	if err := ValidateWindow(input.WindowDays); err != nil {
		return nil, err
	}

	today := entity.DayRange(uc.clock.Now())
	rng := entity.DateRange{
		From: today.To.AddDate(0, 0, -input.WindowDays),
		To:   today.To,
	}

	return uc.aggregationRepo.CategoryTotals(ctx, adapter.CategoryTotalsQuery{
		Type:  entity.TransactionTypeDebit,
		Range: rng,
		Limit: input.Limit,
	})
}

// CreditCategoriesThisMonth returns the categories with credits in the current
// calendar month and their credit totals.
func (uc *GetTopCategoriesUseCase) CreditCategoriesThisMonth(ctx context.Context) ([]entity.CategoryTotal, error) {
	return uc.aggregationRepo.CategoryTotals(ctx, adapter.CategoryTotalsQuery{
		Type:  entity.TransactionTypeCredit,
		Range: entity.MonthRange(uc.clock.Now()),
	})
}
