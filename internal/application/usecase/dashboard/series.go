package dashboard

import (
	"context"
	"strconv"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// GetSeriesUseCase computes the charting series: monthly totals over the whole
// ledger, daily debits of one month and weekly debits of one year. Every
// series is ordered by ascending key.
type GetSeriesUseCase struct {
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewGetSeriesUseCase creates a new GetSeriesUseCase instance.
func NewGetSeriesUseCase(aggregationRepo adapter.AggregationRepository, clock adapter.Clock) *GetSeriesUseCase {
	return &GetSeriesUseCase{
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Monthly returns totals of txType grouped by YYYY-MM.
func (uc *GetSeriesUseCase) Monthly(ctx context.Context, txType entity.TransactionType) ([]entity.PeriodTotal, error) {
	if err := ValidateType(txType); err != nil {
		return nil, err
	}
	return uc.aggregationRepo.PeriodTotals(ctx, txType, entity.GranularityMonth, nil)
}

// DailyExpenses returns debit totals grouped by YYYY-MM-DD within month.
// An empty month selects the current one.
func (uc *GetSeriesUseCase) DailyExpenses(ctx context.Context, month string) ([]entity.PeriodTotal, error) {
	rng, err := ParsePeriod(month, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return uc.aggregationRepo.PeriodTotals(ctx, entity.TransactionTypeDebit, entity.GranularityDay, &rng)
}

// WeeklyExpenses returns debit totals grouped by YYYY-Www within year.
// An empty year selects the current one.
func (uc *GetSeriesUseCase) WeeklyExpenses(ctx context.Context, year string) ([]entity.PeriodTotal, error) {
	if year == "" {
		year = strconv.Itoa(uc.clock.Now().UTC().Year())
	}
	rng, err := ParseYear(year)
	if err != nil {
		return nil, err
	}

	daily, err := uc.aggregationRepo.PeriodTotals(ctx, entity.TransactionTypeDebit, entity.GranularityDay, &rng)
	if err != nil {
		return nil, err
	}

	weekly := make([]entity.PeriodTotal, 0)
	for _, day := range daily {
		date, err := parseDay(day.Period)
		if err != nil {
			return nil, err
		}

		key := WeekKey(date)
		if n := len(weekly); n > 0 && weekly[n-1].Period == key {
			weekly[n-1].Total += day.Total
			continue
		}
		weekly = append(weekly, entity.PeriodTotal{Period: key, Total: day.Total})
	}
	return weekly, nil
}
