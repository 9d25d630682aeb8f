// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name         string
	Icon         string
	IconSet      string
	SpendingType entity.SpendingType
	Limit        *entity.Money
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	spendingType := input.SpendingType
	if spendingType == "" {
		spendingType = entity.SpendingTypeEssential
	}
	if err := validateSpendingType(spendingType); err != nil {
		return nil, err
	}
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nameExists()
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	iconSet := input.IconSet
	if iconSet == "" {
		iconSet = entity.DefaultCategoryIconSet
	}

	category := entity.NewCategory(name, icon, iconSet, spendingType, input.Limit)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return &CreateCategoryOutput{Category: category}, nil
}

func validateName(name string) error {
	if len(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

func validateSpendingType(spendingType entity.SpendingType) error {
	if !spendingType.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidSpendingType,
			"spending type must be 'essential' or 'lifestyle'",
			domainerror.ErrInvalidSpendingType,
		)
	}
	return nil
}

func validateLimit(limit *entity.Money) error {
	if limit != nil && !limit.IsPositive() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryLimit,
			"category limit must be greater than zero",
			domainerror.ErrInvalidCategoryLimit,
		)
	}
	return nil
}

func nameExists() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNameExists,
		"a category with this name already exists",
		domainerror.ErrCategoryNameExists,
	)
}
