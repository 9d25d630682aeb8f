// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := r.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return categoryWriteError("failed to create category", err)
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName retrieves a category by its exact name.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *categoryRepository) findOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where(query, arg).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, categoryStorageError("failed to load category", result.Error)
	}
	return categoryModel.ToEntity(), nil
}

// ExistsByName checks if a category with the given name exists.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.CategoryModel{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, categoryStorageError("failed to check category name", err)
	}
	return count > 0, nil
}

// FindAll retrieves all categories ordered by name, case-insensitive.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, categoryStorageError("failed to list categories", result.Error)
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Update saves changes to a category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now().UTC()
	categoryModel := model.CategoryFromEntity(category)

	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":           categoryModel.Name,
			"icon":           categoryModel.Icon,
			"icon_set":       categoryModel.IconSet,
			"spending_type":  categoryModel.SpendingType,
			"category_limit": categoryModel.CategoryLimit,
			"updated_at":     categoryModel.UpdatedAt,
		})
	if result.Error != nil {
		return categoryWriteError("failed to update category", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return nil
}

// Delete removes a category that no transaction references.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TransactionModel{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return categoryStorageError("failed to count category transactions", err)
		}
		if count > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryInUse,
				"category is used by transactions",
				domainerror.ErrCategoryInUse,
			)
		}

		result := tx.Where("id = ?", id).Delete(&model.CategoryModel{})
		if result.Error != nil {
			return categoryStorageError("failed to delete category", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil
	})
}

// categoryWriteError maps unique violations on name to a conflict.
func categoryWriteError(message string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return categoryStorageError(message, err)
}

func categoryStorageError(message string, err error) error {
	return domainerror.NewCategoryError(domainerror.ErrCodeCategoryStorage, message, err)
}
