package transaction_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/testutil"
)

var now = time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.LedgerEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type recordingMetrics struct {
	posted map[string]int
}

func (m *recordingMetrics) TransactionPosted(txType entity.TransactionType, source string) {
	m.posted[string(txType)+"/"+source]++
}
func (m *recordingMetrics) CatchUpFinished(entity.CatchUpSummary, time.Duration) {}
func (m *recordingMetrics) BackfillProcessed(entity.BackfillStatus)             {}

type fixture struct {
	clock        *testutil.Clock
	transactions adapter.TransactionRepository
	accounts     adapter.AccountRepository
	publisher    *recordingPublisher
	metrics      *recordingMetrics
	post         *transaction.PostTransactionUseCase
	edit         *transaction.EditTransactionUseCase
	remove       *transaction.DeleteTransactionUseCase
	list         *transaction.ListTransactionsUseCase
	cash         *entity.Account
	bank         *entity.Account
	food         *entity.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDatabase(t)
	ledger := testutil.NewLedger(t, db)
	f := &fixture{
		clock:        testutil.NewClock(now),
		transactions: persistence.NewTransactionRepository(db),
		accounts:     ledger.Accounts,
		publisher:    &recordingPublisher{},
		metrics:      &recordingMetrics{posted: map[string]int{}},
		cash:         ledger.Account("Cash", testutil.Money(1000)),
		bank:         ledger.Account("Bank", 0),
		food:         ledger.Category("Food", nil),
	}
	f.post = transaction.NewPostTransactionUseCase(f.transactions, f.clock, f.publisher, f.metrics)
	f.edit = transaction.NewEditTransactionUseCase(f.transactions, f.clock, f.publisher)
	f.remove = transaction.NewDeleteTransactionUseCase(f.transactions, f.clock, f.publisher)
	f.list = transaction.NewListTransactionsUseCase(f.transactions, f.clock)
	return f
}

func (f *fixture) debit(t *testing.T, amount entity.Money, at time.Time) *transaction.PostTransactionOutput {
	t.Helper()
	output, err := f.post.Execute(context.Background(), transaction.PostTransactionInput{
		AccountID:  f.cash.ID,
		CategoryID: f.food.ID,
		Type:       entity.TransactionTypeDebit,
		Amount:     amount,
		CreatedAt:  at,
	})
	require.NoError(t, err)
	return output
}

func (f *fixture) balance(t *testing.T, id uuid.UUID) entity.Money {
	t.Helper()
	account, err := f.accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return account.Balance
}

func TestPostTransaction_Validation(t *testing.T) {
	f := newFixture(t)

	valid := transaction.PostTransactionInput{
		AccountID:  f.cash.ID,
		CategoryID: f.food.ID,
		Type:       entity.TransactionTypeDebit,
		Amount:     500,
	}

	tests := []struct {
		name   string
		mutate func(in *transaction.PostTransactionInput)
		code   domainerror.TransactionErrorCode
	}{
		{"missing account", func(in *transaction.PostTransactionInput) { in.AccountID = uuid.Nil }, domainerror.ErrCodeMissingTransactionFields},
		{"missing category", func(in *transaction.PostTransactionInput) { in.CategoryID = uuid.Nil }, domainerror.ErrCodeMissingTransactionFields},
		{"unknown type", func(in *transaction.PostTransactionInput) { in.Type = "transfer" }, domainerror.ErrCodeInvalidTransactionType},
		{"zero amount", func(in *transaction.PostTransactionInput) { in.Amount = 0 }, domainerror.ErrCodeInvalidTransactionAmount},
		{"negative amount", func(in *transaction.PostTransactionInput) { in.Amount = -100 }, domainerror.ErrCodeInvalidTransactionAmount},
		{"note too long", func(in *transaction.PostTransactionInput) { in.Note = strings.Repeat("n", 256) }, domainerror.ErrCodeNoteTooLong},
		{"zero interval", func(in *transaction.PostTransactionInput) {
			in.Recurrence = &transaction.RecurrenceInput{Pattern: entity.RecurrenceDaily, Interval: 0}
		}, domainerror.ErrCodeInvalidRecurrence},
		{"unknown pattern", func(in *transaction.PostTransactionInput) {
			in.Recurrence = &transaction.RecurrenceInput{Pattern: "yearly", Interval: 1}
		}, domainerror.ErrCodeInvalidRecurrence},
		{"unknown account", func(in *transaction.PostTransactionInput) { in.AccountID = uuid.New() }, domainerror.ErrCodeUnknownAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := f.post.Execute(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, string(tt.code), domainerror.CodeOf(err))
		})
	}

	assert.Equal(t, testutil.Money(1000), f.balance(t, f.cash.ID))
	assert.Empty(t, f.publisher.events)
}

func TestPostTransaction_Success(t *testing.T) {
	f := newFixture(t)

	output := f.debit(t, 2550, time.Time{})
	assert.Equal(t, testutil.Money(1000)-2550, output.Balance)
	assert.Equal(t, now, output.Transaction.CreatedAt)
	assert.Equal(t, 1, f.metrics.posted["debit/manual"])

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, entity.EventTransactionPosted, event.Type)
	assert.Equal(t, output.Transaction.ID, *event.TransactionID)
	assert.Equal(t, "manual", event.Attributes["source"])

	t.Run("publisher failure does not fail the post", func(t *testing.T) {
		f.publisher.err = errors.New("broker down")
		defer func() { f.publisher.err = nil }()

		output := f.debit(t, 450, time.Time{})
		assert.Equal(t, testutil.Money(970), output.Balance)
	})

	t.Run("occurrence is counted as recurrence", func(t *testing.T) {
		templateID := output.Transaction.ID
		_, err := f.post.Execute(context.Background(), transaction.PostTransactionInput{
			AccountID:  f.cash.ID,
			CategoryID: f.food.ID,
			Type:       entity.TransactionTypeCredit,
			Amount:     100,
			TemplateID: &templateID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.metrics.posted["credit/recurrence"])
	})

	t.Run("recurring post sets the first cursor", func(t *testing.T) {
		output, err := f.post.Execute(context.Background(), transaction.PostTransactionInput{
			AccountID:  f.cash.ID,
			CategoryID: f.food.ID,
			Type:       entity.TransactionTypeDebit,
			Amount:     100,
			CreatedAt:  time.Date(2026, time.January, 31, 8, 0, 0, 0, time.UTC),
			Recurrence: &transaction.RecurrenceInput{Pattern: entity.RecurrenceMonthly, Interval: 1},
		})
		require.NoError(t, err)
		require.NotNil(t, output.Transaction.NextOccurrence)
		assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), *output.Transaction.NextOccurrence)
	})
}

func TestEditTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	original := f.debit(t, testutil.Money(100), now)

	t.Run("changing amount and type", func(t *testing.T) {
		credit := entity.TransactionTypeCredit
		amount := testutil.Money(40)

		output, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: original.Transaction.ID, Type: &credit, Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, testutil.Money(1040), output.Balance)
		assert.Nil(t, output.PreviousAccountBalance)
	})

	t.Run("moving to another account", func(t *testing.T) {
		output, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: original.Transaction.ID, AccountID: &f.bank.ID})
		require.NoError(t, err)
		assert.Equal(t, testutil.Money(40), output.Balance)
		require.NotNil(t, output.PreviousAccountBalance)
		assert.Equal(t, testutil.Money(1000), *output.PreviousAccountBalance)
		assert.Equal(t, testutil.Money(1000), f.balance(t, f.cash.ID))
	})

	t.Run("invalid edit leaves balances alone", func(t *testing.T) {
		zero := entity.Money(0)
		_, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: original.Transaction.ID, Amount: &zero})
		assert.Equal(t, string(domainerror.ErrCodeInvalidTransactionAmount), domainerror.CodeOf(err))
		assert.Equal(t, testutil.Money(40), f.balance(t, f.bank.ID))
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: uuid.New()})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})

	edited := 0
	for _, event := range f.publisher.events {
		if event.Type == entity.EventTransactionEdited {
			edited++
		}
	}
	assert.Equal(t, 2, edited)
}

func TestEditTransaction_Recurrence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	yes, no := true, false

	plain := f.debit(t, 100, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	t.Run("turning on without a pattern is rejected", func(t *testing.T) {
		_, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: plain.Transaction.ID, IsRecurring: &yes})
		assert.Equal(t, string(domainerror.ErrCodeInvalidRecurrence), domainerror.CodeOf(err))
	})

	t.Run("turning on creates a cursor after the row date", func(t *testing.T) {
		output, err := f.edit.Execute(ctx, transaction.EditTransactionInput{
			ID:          plain.Transaction.ID,
			IsRecurring: &yes,
			Recurrence:  &transaction.RecurrenceInput{Pattern: entity.RecurrenceWeekly, Interval: 1},
		})
		require.NoError(t, err)
		require.NotNil(t, output.Transaction.NextOccurrence)
		assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), *output.Transaction.NextOccurrence)
	})

	t.Run("changing the pattern keeps the cursor", func(t *testing.T) {
		output, err := f.edit.Execute(ctx, transaction.EditTransactionInput{
			ID:         plain.Transaction.ID,
			Recurrence: &transaction.RecurrenceInput{Pattern: entity.RecurrenceDaily, Interval: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), *output.Transaction.NextOccurrence)
		assert.Equal(t, 3, *output.Transaction.RecurrenceInterval)
	})

	t.Run("turning off clears the state", func(t *testing.T) {
		output, err := f.edit.Execute(ctx, transaction.EditTransactionInput{ID: plain.Transaction.ID, IsRecurring: &no})
		require.NoError(t, err)
		assert.False(t, output.Transaction.IsRecurring)
		assert.Nil(t, output.Transaction.NextOccurrence)

		templates, err := f.transactions.FindRecurringTemplates(ctx)
		require.NoError(t, err)
		assert.Empty(t, templates)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	posted := f.debit(t, testutil.Money(250), now.AddDate(0, 0, -3))
	assert.True(t, now.Equal(posted.Transaction.UpdatedAt), "posted row stamped with the clock")

	f.clock.Advance(time.Hour)
	output, err := f.remove.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: posted.Transaction.ID})
	require.NoError(t, err)
	assert.Equal(t, f.cash.ID, output.AccountID)
	assert.Equal(t, testutil.Money(1000), output.Balance)

	account, err := f.accounts.FindByID(ctx, f.cash.ID)
	require.NoError(t, err)
	assert.True(t, now.Add(time.Hour).Equal(account.UpdatedAt), "account updated_at = %s", account.UpdatedAt)

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, entity.EventTransactionDeleted, last.Type)

	_, err = f.remove.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: posted.Transaction.ID})
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.debit(t, 1, now.AddDate(0, -7, 0))
	f.debit(t, 2, now.AddDate(0, -2, 0))
	f.debit(t, 3, now.AddDate(0, 0, -7))
	f.debit(t, 4, now.AddDate(0, 0, -1))
	f.debit(t, 5, now)

	debit := entity.TransactionTypeDebit
	tests := []struct {
		name    string
		input   transaction.ListTransactionsInput
		amounts []entity.Money
		code    domainerror.TransactionErrorCode
	}{
		{name: "whole ledger", input: transaction.ListTransactionsInput{}, amounts: []entity.Money{5, 4, 3, 2, 1}},
		{name: "week includes its first day", input: transaction.ListTransactionsInput{Range: transaction.DateRangeWeek}, amounts: []entity.Money{5, 4, 3}},
		{name: "month", input: transaction.ListTransactionsInput{Range: transaction.DateRangeMonth}, amounts: []entity.Money{5, 4, 3}},
		{name: "six months", input: transaction.ListTransactionsInput{Range: transaction.DateRangeSixMonths}, amounts: []entity.Money{5, 4, 3, 2}},
		{name: "limit", input: transaction.ListTransactionsInput{Limit: 2, Type: &debit}, amounts: []entity.Money{5, 4}},
		{name: "unknown range", input: transaction.ListTransactionsInput{Range: "year"}, code: domainerror.ErrCodeInvalidFilter},
		{name: "negative limit", input: transaction.ListTransactionsInput{Limit: -1}, code: domainerror.ErrCodeInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := f.list.Execute(ctx, tt.input)
			if tt.code != "" {
				assert.Equal(t, string(tt.code), domainerror.CodeOf(err))
				return
			}
			require.NoError(t, err)

			amounts := make([]entity.Money, len(output.Transactions))
			for i, row := range output.Transactions {
				amounts[i] = row.Transaction.Amount
			}
			assert.Equal(t, tt.amounts, amounts)
			assert.Nil(t, output.Groups)
		})
	}

	t.Run("recent defaults to five", func(t *testing.T) {
		f.debit(t, 6, now)
		recent, err := f.list.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, recent, transaction.DefaultRecentLimit)
	})

	t.Run("credits this month", func(t *testing.T) {
		_, err := f.post.Execute(ctx, transaction.PostTransactionInput{
			AccountID: f.cash.ID, CategoryID: f.food.ID, Type: entity.TransactionTypeCredit, Amount: 900, CreatedAt: now.AddDate(0, 0, -9),
		})
		require.NoError(t, err)
		_, err = f.post.Execute(ctx, transaction.PostTransactionInput{
			AccountID: f.cash.ID, CategoryID: f.food.ID, Type: entity.TransactionTypeCredit, Amount: 800, CreatedAt: now.AddDate(0, 0, -10),
		})
		require.NoError(t, err)

		credits, err := f.list.CreditsThisMonth(ctx)
		require.NoError(t, err)
		require.Len(t, credits, 1)
		assert.Equal(t, entity.Money(900), credits[0].Transaction.Amount)
	})

	t.Run("grouped by date", func(t *testing.T) {
		output, err := f.list.Execute(ctx, transaction.ListTransactionsInput{Range: transaction.DateRangeWeek, Type: &debit, GroupByDate: true})
		require.NoError(t, err)
		require.Len(t, output.Groups, 3)
		assert.Equal(t, "Today", output.Groups[0].Label)
		assert.Len(t, output.Groups[0].Transactions, 2)
		assert.Equal(t, "Yesterday", output.Groups[1].Label)
		assert.Equal(t, "March 3", output.Groups[2].Label)
	})
}

func TestGroupByDate(t *testing.T) {
	row := func(at time.Time) *entity.TransactionWithCategory {
		return &entity.TransactionWithCategory{Transaction: &entity.Transaction{ID: uuid.New(), CreatedAt: at}}
	}

	rows := []*entity.TransactionWithCategory{
		row(now),
		row(now.Add(-13 * time.Hour)),
		row(now.Add(-15 * time.Hour)),
		row(time.Date(2025, time.December, 25, 10, 0, 0, 0, time.UTC)),
	}

	groups := transaction.GroupByDate(rows, now)
	require.Len(t, groups, 3)

	assert.Equal(t, "Today", groups[0].Label)
	assert.Len(t, groups[0].Transactions, 2)
	assert.Equal(t, "Yesterday", groups[1].Label)
	assert.Equal(t, "December 25", groups[2].Label)
	assert.Equal(t, time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), groups[2].Date)

	assert.Empty(t, transaction.GroupByDate(nil, now))
}
