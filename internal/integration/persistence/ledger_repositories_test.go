package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
	"github.com/itissulav/Kharcha/internal/testutil"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)
	repo := ledger.Accounts

	wallet := ledger.Account("Wallet", testutil.Money(20))
	bank := ledger.Account("Bank", testutil.Money(300))
	food := ledger.Category("Food", nil)

	t.Run("find all orders by name", func(t *testing.T) {
		accounts, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "Bank", accounts[0].Name)
		assert.Equal(t, "Wallet", accounts[1].Name)
	})

	t.Run("total balance", func(t *testing.T) {
		total, err := repo.TotalBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, testutil.Money(320), total)
	})

	t.Run("update keeps opening balance in step", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, wallet.ID)
		require.NoError(t, err)

		stored.Name = "Pocket"
		stored.SetBalance(testutil.Money(50))
		require.NoError(t, repo.Update(ctx, stored))

		reloaded, err := repo.FindByID(ctx, wallet.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pocket", reloaded.Name)
		assert.Equal(t, testutil.Money(50), reloaded.Balance)
		assert.Equal(t, testutil.Money(50), reloaded.OpeningBalance)
	})

	t.Run("delete refuses while transactions exist", func(t *testing.T) {
		post(t, transactions, bank, food, entity.TransactionTypeDebit, 100, march10)

		err := repo.Delete(ctx, bank.ID)
		assert.Equal(t, string(domainerror.ErrCodeAccountHasTransactions), domainerror.CodeOf(err))
		assert.Equal(t, domainerror.KindConflict, domainerror.KindOf(err))

		_, err = repo.FindByID(ctx, bank.ID)
		assert.NoError(t, err)
	})

	t.Run("delete removes an empty account", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, wallet.ID))

		_, err := repo.FindByID(ctx, wallet.ID)
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))

		err = repo.Delete(ctx, wallet.ID)
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)
	repo := ledger.Categories

	cash := ledger.Account("Cash", 0)
	rent := ledger.Category("rent", nil)
	food := ledger.Category("Food", nil)

	t.Run("find all ignores case", func(t *testing.T) {
		categories, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Food", categories[0].Name)
		assert.Equal(t, "rent", categories[1].Name)
	})

	t.Run("exists by name", func(t *testing.T) {
		exists, err := repo.ExistsByName(ctx, "Food", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, "Food", &food.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update sets and clears the limit", func(t *testing.T) {
		limit := testutil.Money(75)
		food.Limit = &limit
		require.NoError(t, repo.Update(ctx, food))

		stored, err := repo.FindByName(ctx, "Food")
		require.NoError(t, err)
		require.True(t, stored.HasLimit())
		assert.Equal(t, limit, *stored.Limit)

		stored.Limit = nil
		require.NoError(t, repo.Update(ctx, stored))

		stored, err = repo.FindByID(ctx, food.ID)
		require.NoError(t, err)
		assert.False(t, stored.HasLimit())
	})

	t.Run("delete refuses while transactions exist", func(t *testing.T) {
		post(t, transactions, cash, rent, entity.TransactionTypeDebit, 100, march10)

		err := repo.Delete(ctx, rent.ID)
		assert.Equal(t, string(domainerror.ErrCodeCategoryInUse), domainerror.CodeOf(err))
	})

	t.Run("delete removes an unused category", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, food.ID))

		err := repo.Delete(ctx, uuid.New())
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := persistence.NewSettingsRepository(db, entity.DefaultBudgetDefaults())

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.Money(20000), settings.MonthlyBudget)
	assert.True(t, settings.ShowMonthlyLimitAlert)

	settings.SpendingPercentage = decimal.NewFromInt(80)
	require.NoError(t, repo.Save(ctx, settings))
	require.NoError(t, repo.SetMonthlyLimitAlert(ctx, false))

	settings, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.SpendingPercentage.Equal(decimal.NewFromInt(80)))
	assert.False(t, settings.ShowMonthlyLimitAlert)

	t.Run("missing row is reseeded", func(t *testing.T) {
		require.NoError(t, db.Where("id = ?", entity.SettingsID).Delete(&model.UserSettingsModel{}).Error)

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, settings.SpendingPercentage.Equal(decimal.NewFromInt(100)))
	})
}

func TestBackfillRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)
	repo := persistence.NewBackfillRepository(db)

	cash := ledger.Account("Cash", 0)
	rent := ledger.Category("Rent", nil)
	template := post(t, transactions, cash, rent, entity.TransactionTypeDebit, 100, march10).Transaction

	now := march10
	day := entity.NormalizeDate(march10.AddDate(0, 0, 1))
	cause := errors.New("database is locked")

	first := entity.NewOccurrenceBackfill(template.ID, day, cause, 3, now)
	require.NoError(t, repo.Record(ctx, first))

	t.Run("same template and day reuse one marker", func(t *testing.T) {
		again := entity.NewOccurrenceBackfill(template.ID, day, errors.New("disk full"), 3, now.Add(time.Minute))
		require.NoError(t, repo.Record(ctx, again))

		count, err := repo.CountPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		pending, err := repo.GetPending(ctx, now.Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "disk full", pending[0].LastError)
	})

	t.Run("markers scheduled later are not ready", func(t *testing.T) {
		pending, err := repo.GetPending(ctx, now.Add(-time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("resolved markers leave the queue", func(t *testing.T) {
		pending, err := repo.GetPending(ctx, now.Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		marker := pending[0]
		marker.MarkResolved(now.Add(time.Hour))
		require.NoError(t, repo.Update(ctx, marker))

		count, err := repo.CountPending(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestBackfillRepository_RecordRestoresRetryBudget(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)
	repo := persistence.NewBackfillRepository(db)

	template := post(t, transactions, ledger.Account("Cash", 0), ledger.Category("Rent", nil), entity.TransactionTypeDebit, 100, march10).Transaction
	day := entity.NormalizeDate(march10.AddDate(0, 0, 1))
	cause := errors.New("database is locked")

	require.NoError(t, repo.Record(ctx, entity.NewOccurrenceBackfill(template.ID, day, cause, 3, march10)))

	pending, err := repo.GetPending(ctx, march10, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	marker := pending[0]
	for i := 0; i < 3; i++ {
		marker.MarkFailed(cause, false, march10)
	}
	require.Equal(t, entity.BackfillStatusFailed, marker.Status)
	require.NoError(t, repo.Update(ctx, marker))

	require.NoError(t, repo.Record(ctx, entity.NewOccurrenceBackfill(template.ID, day, cause, 3, march10.Add(time.Hour))))

	pending, err = repo.GetPending(ctx, march10.Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.BackfillStatusPending, pending[0].Status)
	assert.Zero(t, pending[0].Attempts)
	assert.Nil(t, pending[0].ResolvedAt)

	pending[0].MarkFailed(cause, false, march10.Add(time.Hour))
	assert.Equal(t, entity.BackfillStatusPending, pending[0].Status, "a re-recorded marker gets its retries back")
}

func TestLedgerMaintenance_Reset(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	transactions := persistence.NewTransactionRepository(db)

	cash := ledger.Account("Cash", testutil.Money(10))
	food := ledger.Category("Food", nil)
	post(t, transactions, cash, food, entity.TransactionTypeDebit, 100, march10)

	settings := persistence.NewSettingsRepository(db, entity.DefaultBudgetDefaults())
	require.NoError(t, settings.SetMonthlyLimitAlert(ctx, false))

	maintenance := persistence.NewLedgerMaintenance(db, entity.DefaultBudgetDefaults())
	require.NoError(t, maintenance.Reset(ctx))

	accounts, err := ledger.Accounts.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	categories, err := ledger.Categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	reseeded, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.True(t, reseeded.ShowMonthlyLimitAlert)
}
