package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/category"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Budgets handles GET /categories/budgets requests.
func (c *CategoryController) Budgets(ctx *gin.Context) {
	budgets, err := c.listUseCase.Budgets(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBudgetListResponse(budgets))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	limit, err := dto.ToMoneyPtr("category_limit", req.CategoryLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:         req.Name,
		Icon:         req.Icon,
		IconSet:      req.IconSet,
		SpendingType: entity.SpendingType(req.SpendingType),
		Limit:        limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "category ID")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	limit, err := dto.ToMoneyPtr("category_limit", req.CategoryLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	input := category.UpdateCategoryInput{
		CategoryID: categoryID,
		Name:       req.Name,
		Icon:       req.Icon,
		IconSet:    req.IconSet,
		Limit:      limit,
		ClearLimit: req.ClearLimit,
	}
	if req.SpendingType != nil {
		spendingType := entity.SpendingType(*req.SpendingType)
		input.SpendingType = &spendingType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "category ID")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), categoryID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
