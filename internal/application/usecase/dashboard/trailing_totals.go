package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// GetTrailingTotalsInput represents the input for trailing category totals.
type GetTrailingTotalsInput struct {
	WindowDays int
	Type       entity.TransactionType
}

// GetTrailingTotalsUseCase returns one slice per day of the window, oldest
// first, each carrying per-category day totals and the category's
// month-to-date total through that day.
//
// Debit slices list every category except Salary, with zero totals included.
// Credit slices list only categories with credits that day; a day without
// credits yields the Salary category with a zero total.
type GetTrailingTotalsUseCase struct {
	aggregationRepo adapter.AggregationRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGetTrailingTotalsUseCase creates a new GetTrailingTotalsUseCase instance.
func NewGetTrailingTotalsUseCase(
	aggregationRepo adapter.AggregationRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetTrailingTotalsUseCase {
	return &GetTrailingTotalsUseCase{
		aggregationRepo: aggregationRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute returns WindowDays slices ending with today.
func (uc *GetTrailingTotalsUseCase) Execute(ctx context.Context, input GetTrailingTotalsInput) ([]entity.DayCategoryTotals, error) {
	if err := ValidateWindow(input.WindowDays); err != nil {
		return nil, err
	}
	if err := ValidateType(input.Type); err != nil {
		return nil, err
	}

	days := trailingDays(uc.clock.Now(), input.WindowDays)
	result := make([]entity.DayCategoryTotals, 0, len(days))

	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		categories, err := uc.daySlice(ctx, day, input.Type)
		if err != nil {
			return nil, err
		}
		result = append(result, entity.DayCategoryTotals{Date: day, Categories: categories})
	}

	return result, nil
}

func (uc *GetTrailingTotalsUseCase) daySlice(ctx context.Context, day time.Time, txType entity.TransactionType) ([]entity.TrailingCategoryTotal, error) {
	query := adapter.CategoryTotalsQuery{Type: txType, Range: entity.DayRange(day)}
	if txType == entity.TransactionTypeDebit {
		query.IncludeEmpty = true
		query.ExcludeName = entity.SalaryCategoryName
	}

	dayTotals, err := uc.aggregationRepo.CategoryTotals(ctx, query)
	if err != nil {
		return nil, err
	}

	monthQuery := query
	monthQuery.Range = entity.MonthToDate(day)
	monthTotals, err := uc.aggregationRepo.CategoryTotals(ctx, monthQuery)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[uuid.UUID]entity.Money, len(monthTotals))
	for _, total := range monthTotals {
		byCategory[total.CategoryID] = total.Total
	}

	if txType == entity.TransactionTypeCredit && len(dayTotals) == 0 {
		salary, err := uc.salaryPlaceholder(ctx)
		if err != nil {
			return nil, err
		}
		dayTotals = []entity.CategoryTotal{salary}
	}

	slice := make([]entity.TrailingCategoryTotal, len(dayTotals))
	for i, total := range dayTotals {
		slice[i] = entity.TrailingCategoryTotal{
			CategoryTotal: total,
			MonthTotal:    byCategory[total.CategoryID],
		}
	}
	return slice, nil
}

// salaryPlaceholder returns the Salary category with a zero total. When no
// such category exists a detached entry carrying only the name is returned.
func (uc *GetTrailingTotalsUseCase) salaryPlaceholder(ctx context.Context) (entity.CategoryTotal, error) {
	category, err := uc.categoryRepo.FindByName(ctx, entity.SalaryCategoryName)
	if err != nil {
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			return entity.CategoryTotal{}, err
		}
		return entity.CategoryTotal{
			Name:         entity.SalaryCategoryName,
			Icon:         entity.DefaultCategoryIcon,
			IconSet:      entity.DefaultCategoryIconSet,
			SpendingType: entity.SpendingTypeEssential,
		}, nil
	}

	return entity.CategoryTotal{
		CategoryID:   category.ID,
		Name:         category.Name,
		Icon:         category.Icon,
		IconSet:      category.IconSet,
		SpendingType: category.SpendingType,
		Limit:        category.Limit,
	}, nil
}
