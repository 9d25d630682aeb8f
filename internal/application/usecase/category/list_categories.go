package category

import (
	"context"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// ListCategoriesUseCase lists categories, optionally with their monthly budget usage.
type ListCategoriesUseCase struct {
	categoryRepo    adapter.CategoryRepository
	aggregationRepo adapter.AggregationRepository
	clock           adapter.Clock
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	aggregationRepo adapter.AggregationRepository,
	clock adapter.Clock,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo:    categoryRepo,
		aggregationRepo: aggregationRepo,
		clock:           clock,
	}
}

// Execute returns all categories ordered by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.FindAll(ctx)
}

// Budgets returns every category with its limit and current-month debit total,
// highest spend first.
func (uc *ListCategoriesUseCase) Budgets(ctx context.Context) ([]entity.CategoryBudget, error) {
	totals, err := uc.aggregationRepo.CategoryTotals(ctx, adapter.CategoryTotalsQuery{
		Type:         entity.TransactionTypeDebit,
		Range:        entity.MonthRange(uc.clock.Now()),
		IncludeEmpty: true,
	})
	if err != nil {
		return nil, err
	}

	budgets := make([]entity.CategoryBudget, len(totals))
	for i, total := range totals {
		budgets[i] = entity.CategoryBudget{
			Category: &entity.Category{
				ID:           total.CategoryID,
				Name:         total.Name,
				Icon:         total.Icon,
				IconSet:      total.IconSet,
				SpendingType: total.SpendingType,
				Limit:        total.Limit,
			},
			MonthTotal: total.Total,
		}
	}
	return budgets, nil
}
