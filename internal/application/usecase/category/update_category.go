package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	CategoryID   uuid.UUID
	Name         *string // Optional
	Icon         *string // Optional
	IconSet      *string // Optional
	SpendingType *entity.SpendingType
	Limit        *entity.Money
	ClearLimit   bool
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryFields,
				"category name must not be empty",
				nil,
			)
		}
		if err := validateName(name); err != nil {
			return nil, err
		}

		if name != category.Name {
			exists, err := uc.categoryRepo.ExistsByName(ctx, name, &category.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, nameExists()
			}
		}
		category.Name = name
	}

	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.IconSet != nil {
		category.IconSet = *input.IconSet
	}

	if input.SpendingType != nil {
		if err := validateSpendingType(*input.SpendingType); err != nil {
			return nil, err
		}
		category.SpendingType = *input.SpendingType
	}

	switch {
	case input.ClearLimit:
		category.Limit = nil
	case input.Limit != nil:
		if err := validateLimit(input.Limit); err != nil {
			return nil, err
		}
		limit := *input.Limit
		category.Limit = &limit
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
