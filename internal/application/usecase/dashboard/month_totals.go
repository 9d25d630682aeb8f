package dashboard

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// GetMonthTotalsInput represents the input for month totals.
type GetMonthTotalsInput struct {
	Period string // YYYY-MM, empty for the current month
}

// GetMonthTotalsOutput holds the spent and earned totals of one calendar month.
type GetMonthTotalsOutput struct {
	Period string
	Spent  entity.Money
	Earned entity.Money
	Net    entity.Money
}

// GetMonthTotalsUseCase sums the debits and credits of one calendar month.
type GetMonthTotalsUseCase struct {
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewGetMonthTotalsUseCase creates a new GetMonthTotalsUseCase instance.
func NewGetMonthTotalsUseCase(aggregationRepo adapter.AggregationRepository, clock adapter.Clock) *GetMonthTotalsUseCase {
	return &GetMonthTotalsUseCase{
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Execute sums debits and credits within the calendar month.
func (uc *GetMonthTotalsUseCase) Execute(ctx context.Context, input GetMonthTotalsInput) (*GetMonthTotalsOutput, error) {
	month, err := ParsePeriod(input.Period, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	output := &GetMonthTotalsOutput{Period: month.From.Format(PeriodLayout)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		output.Spent, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeDebit, month)
		return err
	})
	g.Go(func() error {
		var err error
		output.Earned, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeCredit, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output.Net = output.Earned - output.Spent
	return output, nil
}

// GetCategorySpendUseCase sums one category's debits in the current month.
type GetCategorySpendUseCase struct {
	categoryRepo    adapter.CategoryRepository
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewGetCategorySpendUseCase creates a new GetCategorySpendUseCase instance.
func NewGetCategorySpendUseCase(
	categoryRepo adapter.CategoryRepository,
	aggregationRepo adapter.AggregationRepository,
	clock adapter.Clock,
) *GetCategorySpendUseCase {
	return &GetCategorySpendUseCase{
		categoryRepo:    categoryRepo,
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Execute returns the category's debit total for the current calendar month.
func (uc *GetCategorySpendUseCase) Execute(ctx context.Context, categoryID uuid.UUID) (entity.Money, error) {
	if _, err := uc.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return 0, err
	}
	return uc.aggregationRepo.SumByCategory(ctx, categoryID, entity.TransactionTypeDebit, entity.MonthRange(uc.clock.Now()))
}
