package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// GetCategoryBreakdownUseCase computes every category's month-to-date debit
// total and its percentage of all month-to-date debits.
type GetCategoryBreakdownUseCase struct {
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(aggregationRepo adapter.AggregationRepository, clock adapter.Clock) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Execute returns the breakdown for the current month through today.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context) ([]entity.CategoryShare, error) {
	return breakdown(ctx, uc.aggregationRepo, entity.MonthToDate(uc.clock.Now()))
}

func breakdown(ctx context.Context, repo adapter.AggregationRepository, rng entity.DateRange) ([]entity.CategoryShare, error) {
	totals, err := repo.CategoryTotals(ctx, adapter.CategoryTotalsQuery{
		Type:         entity.TransactionTypeDebit,
		Range:        rng,
		IncludeEmpty: true,
	})
	if err != nil {
		return nil, err
	}

	var overall entity.Money
	for _, total := range totals {
		overall += total.Total
	}

	shares := make([]entity.CategoryShare, len(totals))
	for i, total := range totals {
		shares[i] = entity.CategoryShare{
			CategoryTotal: total,
			Percentage:    sharePercentage(total.Total, overall),
		}
	}
	return shares, nil
}

// sharePercentage returns part as a percentage of whole, rounded to two places.
// A zero whole yields zero.
func sharePercentage(part, whole entity.Money) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2)
}
