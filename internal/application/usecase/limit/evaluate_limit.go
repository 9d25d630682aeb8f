// Package limit contains the spending limit evaluator.
package limit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// EvaluateLimitInput describes a prospective transaction.
type EvaluateLimitInput struct {
	CategoryID uuid.UUID
	Amount     entity.Money
	Type       entity.TransactionType
}

// EvaluateLimitUseCase decides whether a prospective debit would breach the
// monthly spending ceiling or its category limit. It only reads the ledger.
type EvaluateLimitUseCase struct {
	categoryRepo    adapter.CategoryRepository
	aggregationRepo adapter.AggregationRepository
	settingsRepo    adapter.SettingsRepository
	clock           adapter.Clock
}

// NewEvaluateLimitUseCase creates a new EvaluateLimitUseCase instance.
func NewEvaluateLimitUseCase(
	categoryRepo adapter.CategoryRepository,
	aggregationRepo adapter.AggregationRepository,
	settingsRepo adapter.SettingsRepository,
	clock adapter.Clock,
) *EvaluateLimitUseCase {
	return &EvaluateLimitUseCase{
		categoryRepo:    categoryRepo,
		aggregationRepo: aggregationRepo,
		settingsRepo:    settingsRepo,
		clock:           clock,
	}
}

// Execute returns the limit decision. Exceeded limits are reported in the
// decision, never as an error.
func (uc *EvaluateLimitUseCase) Execute(ctx context.Context, input EvaluateLimitInput) (*entity.LimitDecision, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'credit' or 'debit'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	decision := &entity.LimitDecision{CategoryID: input.CategoryID}
	if input.Type == entity.TransactionTypeCredit {
		return decision, nil
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if domainerror.KindOf(err) == domainerror.KindNotFound {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeUnknownCategory,
				"category does not exist",
				domainerror.ErrUnknownCategory,
			)
		}
		return nil, err
	}

	month := entity.MonthRange(uc.clock.Now())

	var (
		categorySpent entity.Money
		monthSpent    entity.Money
		monthEarned   entity.Money
		settings      *entity.UserBudgetSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categorySpent, err = uc.aggregationRepo.SumByCategory(gctx, category.ID, entity.TransactionTypeDebit, month)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = uc.settingsRepo.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		monthSpent, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeDebit, month)
		return err
	})
	g.Go(func() error {
		var err error
		monthEarned, err = uc.aggregationRepo.SumByType(gctx, entity.TransactionTypeCredit, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decision.CurrentSpent = categorySpent
	if category.HasLimit() {
		categoryLimit := *category.Limit
		decision.CategoryLimit = &categoryLimit
		decision.CategoryExceeded = categorySpent+input.Amount > categoryLimit
	}

	if settings.ShowMonthlyLimitAlert {
		allowed := settings.SpendingPercentage.Div(hundred).Mul(monthEarned.Decimal())
		projected := (monthSpent + input.Amount).Decimal()

		decision.MonthlyChecked = true
		decision.MonthlySpent = monthSpent
		decision.MonthlyEarned = monthEarned
		decision.MonthlyAllowed = floorMoney(allowed)
		decision.MonthlyExceeded = projected.GreaterThan(allowed)
	}

	return decision, nil
}

// floorMoney truncates a major-unit decimal to whole minor units.
func floorMoney(d decimal.Decimal) entity.Money {
	return entity.Money(d.Mul(hundred).Floor().IntPart())
}
