package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/testutil"
)

func TestAggregationRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)
	repo := persistence.NewAggregationRepository(db)

	cash := ledger.Account("Cash", 0)
	limit := testutil.Money(150)
	food := ledger.Category("Food", &limit)
	travel := ledger.Category("Travel", nil)
	salary := ledger.Category("Salary", nil)
	ledger.Category("Unused", nil)

	feb28 := time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC)
	mar1 := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	mar15 := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	mar31 := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	apr1 := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	post(t, transactions, cash, food, entity.TransactionTypeDebit, 1000, feb28)
	post(t, transactions, cash, food, entity.TransactionTypeDebit, 2000, mar1)
	post(t, transactions, cash, travel, entity.TransactionTypeDebit, 5000, mar15)
	post(t, transactions, cash, food, entity.TransactionTypeDebit, 3000, mar31)
	post(t, transactions, cash, salary, entity.TransactionTypeCredit, 90000, mar15)
	post(t, transactions, cash, food, entity.TransactionTypeDebit, 4000, apr1)

	march := entity.MonthRange(mar15)

	t.Run("sum by type uses half-open month", func(t *testing.T) {
		debits, err := repo.SumByType(ctx, entity.TransactionTypeDebit, march)
		require.NoError(t, err)
		assert.Equal(t, entity.Money(10000), debits)

		credits, err := repo.SumByType(ctx, entity.TransactionTypeCredit, march)
		require.NoError(t, err)
		assert.Equal(t, entity.Money(90000), credits)
	})

	t.Run("sum by category", func(t *testing.T) {
		total, err := repo.SumByCategory(ctx, food.ID, entity.TransactionTypeDebit, march)
		require.NoError(t, err)
		assert.Equal(t, entity.Money(5000), total)

		total, err = repo.SumByCategory(ctx, food.ID, entity.TransactionTypeCredit, march)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("empty window sums to zero", func(t *testing.T) {
		total, err := repo.SumByType(ctx, entity.TransactionTypeDebit, entity.MonthRange(apr1.AddDate(0, 1, 0)))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("category totals", func(t *testing.T) {
		tests := []struct {
			name  string
			query adapter.CategoryTotalsQuery
			want  []string
		}{
			{
				name:  "active categories by total",
				query: adapter.CategoryTotalsQuery{Type: entity.TransactionTypeDebit, Range: march},
				want:  []string{"Food", "Travel"},
			},
			{
				name:  "include empty keeps every category",
				query: adapter.CategoryTotalsQuery{Type: entity.TransactionTypeDebit, Range: march, IncludeEmpty: true},
				want:  []string{"Food", "Travel", "Salary", "Unused"},
			},
			{
				name:  "exclude name ignores case",
				query: adapter.CategoryTotalsQuery{Type: entity.TransactionTypeCredit, Range: march, IncludeEmpty: true, ExcludeName: "SALARY"},
				want:  []string{"Food", "Travel", "Unused"},
			},
			{
				name:  "limit",
				query: adapter.CategoryTotalsQuery{Type: entity.TransactionTypeDebit, Range: march, Limit: 1},
				want:  []string{"Food"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				totals, err := repo.CategoryTotals(ctx, tt.query)
				require.NoError(t, err)

				names := make([]string, len(totals))
				for i, total := range totals {
					names[i] = total.Name
				}
				assert.Equal(t, tt.want, names)
			})
		}

		totals, err := repo.CategoryTotals(ctx, adapter.CategoryTotalsQuery{Type: entity.TransactionTypeDebit, Range: march})
		require.NoError(t, err)
		assert.Equal(t, entity.Money(5000), totals[0].Total)
		require.NotNil(t, totals[0].Limit)
		assert.Equal(t, limit, *totals[0].Limit)
		assert.Nil(t, totals[1].Limit)
	})

	t.Run("period totals by month", func(t *testing.T) {
		totals, err := repo.PeriodTotals(ctx, entity.TransactionTypeDebit, entity.GranularityMonth, nil)
		require.NoError(t, err)
		assert.Equal(t, []entity.PeriodTotal{
			{Period: "2026-02", Total: 1000},
			{Period: "2026-03", Total: 10000},
			{Period: "2026-04", Total: 4000},
		}, totals)
	})

	t.Run("period totals by day within range", func(t *testing.T) {
		totals, err := repo.PeriodTotals(ctx, entity.TransactionTypeDebit, entity.GranularityDay, &march)
		require.NoError(t, err)
		assert.Equal(t, []entity.PeriodTotal{
			{Period: "2026-03-01", Total: 2000},
			{Period: "2026-03-15", Total: 5000},
			{Period: "2026-03-31", Total: 3000},
		}, totals)
	})
}
