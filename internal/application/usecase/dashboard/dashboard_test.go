package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/application/usecase/dashboard"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/testutil"
)

// Wednesday.
var now = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 9, 0, 0, 0, time.UTC)
}

type fixture struct {
	db          *testutil.Ledger
	clock       *testutil.Clock
	aggregation adapter.AggregationRepository
	settings    adapter.SettingsRepository
	food        *entity.Category
	travel      *entity.Category
	salary      *entity.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)

	f := &fixture{
		db:          ledger,
		clock:       testutil.NewClock(now),
		aggregation: persistence.NewAggregationRepository(db),
		settings:    persistence.NewSettingsRepository(db, entity.DefaultBudgetDefaults()),
	}

	cash := ledger.Account("Cash", 0)
	f.food = ledger.Category("Food", nil)
	f.travel = ledger.Category("Travel", nil)
	f.salary = ledger.Category("Salary", nil)

	post := func(category *entity.Category, txType entity.TransactionType, major int64, at time.Time) {
		_, err := transactions.Post(context.Background(), entity.NewTransaction(cash.ID, category.ID, txType, testutil.Money(major), "", at))
		require.NoError(t, err)
	}

	post(f.food, entity.TransactionTypeDebit, 100, time.Date(2026, time.February, 27, 18, 0, 0, 0, time.UTC))
	post(f.food, entity.TransactionTypeDebit, 10, day(2))
	post(f.travel, entity.TransactionTypeDebit, 60, day(3))
	post(f.salary, entity.TransactionTypeCredit, 500, day(3))
	post(f.food, entity.TransactionTypeDebit, 30, day(4))
	post(f.food, entity.TransactionTypeDebit, 999, day(20))

	return f
}

func byName[T any](items []T, name func(T) string) map[string]T {
	out := make(map[string]T, len(items))
	for _, item := range items {
		out[name(item)] = item
	}
	return out
}

func TestMonthTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := dashboard.NewGetMonthTotalsUseCase(f.aggregation, f.clock)

	output, err := uc.Execute(ctx, dashboard.GetMonthTotalsInput{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03", output.Period)
	assert.Equal(t, testutil.Money(1099), output.Spent)
	assert.Equal(t, testutil.Money(500), output.Earned)
	assert.Equal(t, testutil.Money(-599), output.Net)

	output, err = uc.Execute(ctx, dashboard.GetMonthTotalsInput{Period: "2026-02"})
	require.NoError(t, err)
	assert.Equal(t, testutil.Money(100), output.Spent)
	assert.Zero(t, output.Earned)

	_, err = uc.Execute(ctx, dashboard.GetMonthTotalsInput{Period: "2026-13"})
	assert.Equal(t, string(domainerror.ErrCodeInvalidPeriod), domainerror.CodeOf(err))
}

func TestCategorySpend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := dashboard.NewGetCategorySpendUseCase(f.db.Categories, f.aggregation, f.clock)

	spent, err := uc.Execute(ctx, f.food.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Money(1039), spent)

	spent, err = uc.Execute(ctx, f.salary.ID)
	require.NoError(t, err)
	assert.Zero(t, spent)

	_, err = uc.Execute(ctx, uuid.New())
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
}

func TestCategoryBreakdown(t *testing.T) {
	f := newFixture(t)
	uc := dashboard.NewGetCategoryBreakdownUseCase(f.aggregation, f.clock)

	shares, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.Equal(t, "Travel", shares[0].Name)

	named := byName(shares, func(s entity.CategoryShare) string { return s.Name })
	assert.Equal(t, testutil.Money(40), named["Food"].Total)
	assert.True(t, named["Food"].Percentage.Equal(decimal.NewFromInt(40)))
	assert.True(t, named["Travel"].Percentage.Equal(decimal.NewFromInt(60)))
	assert.True(t, named["Salary"].Percentage.IsZero())

	t.Run("empty month has zero shares", func(t *testing.T) {
		f.clock.Time = now.AddDate(0, 2, 0)
		defer func() { f.clock.Time = now }()

		shares, err := uc.Execute(context.Background())
		require.NoError(t, err)
		for _, share := range shares {
			assert.True(t, share.Percentage.IsZero(), share.Name)
		}
	})
}

func TestMonthSummary(t *testing.T) {
	f := newFixture(t)
	uc := dashboard.NewGetMonthSummaryUseCase(f.aggregation, f.db.Accounts, f.settings, f.clock)

	summary, err := uc.Execute(context.Background(), dashboard.GetMonthSummaryInput{Period: "2026-02"})
	require.NoError(t, err)
	assert.Equal(t, "2026-02", summary.Period)
	assert.Equal(t, testutil.Money(100), summary.Spent)
	assert.Equal(t, testutil.Money(-100), summary.Net)
	assert.Equal(t, testutil.Money(-699), summary.TotalBalance)
	require.NotNil(t, summary.Settings)
	assert.True(t, summary.Settings.ShowMonthlyLimitAlert)

	named := byName(summary.Breakdown, func(s entity.CategoryShare) string { return s.Name })
	assert.True(t, named["Food"].Percentage.Equal(decimal.NewFromInt(100)))
}

func TestTrailingTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := dashboard.NewGetTrailingTotalsUseCase(f.aggregation, f.db.Categories, f.clock)

	t.Run("debits list every category but salary", func(t *testing.T) {
		slices, err := uc.Execute(ctx, dashboard.GetTrailingTotalsInput{WindowDays: 6, Type: entity.TransactionTypeDebit})
		require.NoError(t, err)
		require.Len(t, slices, 6)
		assert.Equal(t, time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC), slices[0].Date)
		assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), slices[5].Date)

		type want struct{ total, month int64 }
		expected := map[int]map[string]want{
			0: {"Food": {100, 100}, "Travel": {0, 0}},
			2: {"Food": {0, 0}, "Travel": {0, 0}},
			3: {"Food": {10, 10}, "Travel": {0, 0}},
			4: {"Food": {0, 10}, "Travel": {60, 60}},
			5: {"Food": {30, 40}, "Travel": {0, 60}},
		}

		for i, categories := range expected {
			got := byName(slices[i].Categories, func(c entity.TrailingCategoryTotal) string { return c.Name })
			require.Len(t, got, 2, slices[i].Date)
			for name, w := range categories {
				assert.Equal(t, testutil.Money(w.total), got[name].Total, "%s on %s", name, slices[i].Date)
				assert.Equal(t, testutil.Money(w.month), got[name].MonthTotal, "%s on %s", name, slices[i].Date)
			}
		}
	})

	t.Run("credit days without credits fall back to salary", func(t *testing.T) {
		slices, err := uc.Execute(ctx, dashboard.GetTrailingTotalsInput{WindowDays: 3, Type: entity.TransactionTypeCredit})
		require.NoError(t, err)
		require.Len(t, slices, 3)

		for i, total := range []int64{0, 500, 0} {
			require.Len(t, slices[i].Categories, 1)
			entry := slices[i].Categories[0]
			assert.Equal(t, f.salary.ID, entry.CategoryID)
			assert.Equal(t, testutil.Money(total), entry.Total)
		}
		assert.Equal(t, testutil.Money(500), slices[2].Categories[0].MonthTotal)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := uc.Execute(ctx, dashboard.GetTrailingTotalsInput{WindowDays: 0, Type: entity.TransactionTypeDebit})
		assert.Equal(t, string(domainerror.ErrCodeInvalidWindow), domainerror.CodeOf(err))

		_, err = uc.Execute(ctx, dashboard.GetTrailingTotalsInput{WindowDays: 7, Type: "both"})
		assert.Equal(t, string(domainerror.ErrCodeInvalidSeriesType), domainerror.CodeOf(err))
	})
}

func TestTrailingTotals_SalaryMissing(t *testing.T) {
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	uc := dashboard.NewGetTrailingTotalsUseCase(persistence.NewAggregationRepository(db), ledger.Categories, testutil.NewClock(now))

	slices, err := uc.Execute(context.Background(), dashboard.GetTrailingTotalsInput{WindowDays: 1, Type: entity.TransactionTypeCredit})
	require.NoError(t, err)
	require.Len(t, slices[0].Categories, 1)

	entry := slices[0].Categories[0]
	assert.Equal(t, entity.SalaryCategoryName, entry.Name)
	assert.Equal(t, uuid.Nil, entry.CategoryID)
	assert.Zero(t, entry.Total)
}

func TestTopCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := dashboard.NewGetTopCategoriesUseCase(f.aggregation, f.clock)

	tests := []struct {
		name  string
		input dashboard.GetTopCategoriesInput
		want  []string
		code  domainerror.DashboardErrorCode
	}{
		{name: "defaults", input: dashboard.GetTopCategoriesInput{}, want: []string{"Food", "Travel"}},
		{name: "limit", input: dashboard.GetTopCategoriesInput{Limit: 1}, want: []string{"Food"}},
		{name: "short window", input: dashboard.GetTopCategoriesInput{WindowDays: 2}, want: []string{"Travel", "Food"}},
		{name: "window too long", input: dashboard.GetTopCategoriesInput{WindowDays: 400}, code: domainerror.ErrCodeInvalidWindow},
		{name: "negative window", input: dashboard.GetTopCategoriesInput{WindowDays: -3}, code: domainerror.ErrCodeInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := uc.Execute(ctx, tt.input)
			if tt.code != "" {
				assert.Equal(t, string(tt.code), domainerror.CodeOf(err))
				return
			}
			require.NoError(t, err)

			names := make([]string, len(totals))
			for i, total := range totals {
				names[i] = total.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}

	credits, err := uc.CreditCategoriesThisMonth(ctx)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, "Salary", credits[0].Name)
	assert.Equal(t, testutil.Money(500), credits[0].Total)
}

func TestSeries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := dashboard.NewGetSeriesUseCase(f.aggregation, f.clock)

	monthly, err := uc.Monthly(ctx, entity.TransactionTypeDebit)
	require.NoError(t, err)
	assert.Equal(t, []entity.PeriodTotal{
		{Period: "2026-02", Total: testutil.Money(100)},
		{Period: "2026-03", Total: testutil.Money(1099)},
	}, monthly)

	daily, err := uc.DailyExpenses(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []entity.PeriodTotal{
		{Period: "2026-03-02", Total: testutil.Money(10)},
		{Period: "2026-03-03", Total: testutil.Money(60)},
		{Period: "2026-03-04", Total: testutil.Money(30)},
		{Period: "2026-03-20", Total: testutil.Money(999)},
	}, daily)

	weekly, err := uc.WeeklyExpenses(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []entity.PeriodTotal{
		{Period: "2026-W08", Total: testutil.Money(100)},
		{Period: "2026-W09", Total: testutil.Money(100)},
		{Period: "2026-W11", Total: testutil.Money(999)},
	}, weekly)

	t.Run("invalid input", func(t *testing.T) {
		_, err := uc.Monthly(ctx, "")
		assert.Equal(t, string(domainerror.ErrCodeInvalidSeriesType), domainerror.CodeOf(err))

		_, err = uc.DailyExpenses(ctx, "March")
		assert.Equal(t, string(domainerror.ErrCodeInvalidPeriod), domainerror.CodeOf(err))

		_, err = uc.WeeklyExpenses(ctx, "26")
		assert.Equal(t, string(domainerror.ErrCodeInvalidYear), domainerror.CodeOf(err))
	})
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "2026-W00"},
		{time.Date(2026, time.January, 4, 23, 0, 0, 0, time.UTC), "2026-W00"},
		{time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), "2026-W01"},
		{time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), "2026-W09"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "2026-W52"},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-W01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.WeekKey(tt.date))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	rng, err := dashboard.ParsePeriod("2024-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), rng.From)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), rng.To)

	rng, err = dashboard.ParsePeriod("", now)
	require.NoError(t, err)
	assert.Equal(t, entity.MonthRange(now), rng)

	year, err := dashboard.ParseYear("2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), year.To)

	_, err = dashboard.ParseYear("0000")
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
}
