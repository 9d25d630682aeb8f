package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/adapter"
)

// DeleteCategoryUseCase handles category deletion. A category that is still
// referenced by transactions cannot be deleted.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, categoryID uuid.UUID) error {
	return uc.categoryRepo.Delete(ctx, categoryID)
}
