package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name          string           `json:"name"`
	Icon          string           `json:"icon,omitempty"`
	IconSet       string           `json:"icon_set,omitempty"`
	SpendingType  string           `json:"spending_type,omitempty"`
	CategoryLimit *decimal.Decimal `json:"category_limit,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name,omitempty"`
	Icon          *string          `json:"icon,omitempty"`
	IconSet       *string          `json:"icon_set,omitempty"`
	SpendingType  *string          `json:"spending_type,omitempty"`
	CategoryLimit *decimal.Decimal `json:"category_limit,omitempty"`
	ClearLimit    bool             `json:"clear_limit,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Icon          string           `json:"icon"`
	IconSet       string           `json:"icon_set"`
	SpendingType  string           `json:"spending_type"`
	CategoryLimit *decimal.Decimal `json:"category_limit"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CategoryBudgetResponse is a category with its current-month spend.
type CategoryBudgetResponse struct {
	CategoryResponse
	MonthTotal decimal.Decimal `json:"month_total"`
}

// CategoryBudgetListResponse represents the response for category budgets.
type CategoryBudgetListResponse struct {
	Budgets []CategoryBudgetResponse `json:"budgets"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:            cat.ID.String(),
		Name:          cat.Name,
		Icon:          cat.Icon,
		IconSet:       cat.IconSet,
		SpendingType:  string(cat.SpendingType),
		CategoryLimit: moneyPtr(cat.Limit),
		CreatedAt:     cat.CreatedAt,
		UpdatedAt:     cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	response := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, cat := range categories {
		response.Categories = append(response.Categories, ToCategoryResponse(cat))
	}
	return response
}

// ToCategoryBudgetListResponse converts category budgets to their response.
func ToCategoryBudgetListResponse(budgets []entity.CategoryBudget) CategoryBudgetListResponse {
	response := CategoryBudgetListResponse{Budgets: make([]CategoryBudgetResponse, 0, len(budgets))}
	for _, budget := range budgets {
		response.Budgets = append(response.Budgets, CategoryBudgetResponse{
			CategoryResponse: ToCategoryResponse(budget.Category),
			MonthTotal:       budget.MonthTotal.Decimal(),
		})
	}
	return response
}
