package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// GetMonthSummaryInput represents the input for a month summary.
type GetMonthSummaryInput struct {
	Period string // YYYY-MM, empty for the current month
}

// GetMonthSummaryUseCase composes the month totals, total balance, budget
// settings and category breakdown of one month.
type GetMonthSummaryUseCase struct {
	aggregationRepo adapter.AggregationRepository
	accountRepo     adapter.AccountRepository
	settingsRepo    adapter.SettingsRepository
	clock           adapter.Clock
}

// NewGetMonthSummaryUseCase creates a new GetMonthSummaryUseCase instance.
func NewGetMonthSummaryUseCase(
	aggregationRepo adapter.AggregationRepository,
	accountRepo adapter.AccountRepository,
	settingsRepo adapter.SettingsRepository,
	clock adapter.Clock,
) *GetMonthSummaryUseCase {
	return &GetMonthSummaryUseCase{
		aggregationRepo: aggregationRepo,
		accountRepo:     accountRepo,
		settingsRepo:    settingsRepo,
		clock:           clock,
	}
}

// Execute runs the independent reads concurrently.
func (uc *GetMonthSummaryUseCase) Execute(ctx context.Context, input GetMonthSummaryInput) (*entity.MonthSummary, error) {
	month, err := ParsePeriod(input.Period, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	summary := &entity.MonthSummary{Period: month.From.Format(PeriodLayout)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Spent, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeDebit, month)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Earned, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeCredit, month)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalBalance, err = uc.accountRepo.TotalBalance(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Settings, err = uc.settingsRepo.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Breakdown, err = breakdown(gctx, uc.aggregationRepo, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Net = summary.Earned - summary.Spent
	return summary, nil
}
