// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// ExistsByName checks if a category with the given name exists, ignoring excludeID.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// FindAll retrieves all categories ordered by name, case-insensitive.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Update saves changes to a category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. It fails with a conflict while transactions reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}
