package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/settings"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// SettingsController handles budget settings endpoints.
type SettingsController struct {
	settingsUseCase *settings.SettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(settingsUseCase *settings.SettingsUseCase) *SettingsController {
	return &SettingsController{settingsUseCase: settingsUseCase}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	current, err := c.settingsUseCase.Get(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(current))
}

// Update handles PUT /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	budget, err := dto.ToMoneyPtr("monthly_budget", req.MonthlyBudget)
	if err != nil {
		respondError(ctx, err)
		return
	}

	updated, err := c.settingsUseCase.Update(ctx.Request.Context(), settings.UpdateSettingsInput{
		MonthlyBudget:          budget,
		SpendingPercentage:     req.SpendingPercentage,
		LifestyleLimit:         req.LifestyleLimit,
		ShowMonthlyLimitAlert:  req.ShowMonthlyLimitAlert,
		ShowCategoryLimitAlert: req.ShowCategoryLimitAlert,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(updated))
}

// DismissMonthlyAlert handles POST /settings/monthly-alert/dismiss requests.
func (c *SettingsController) DismissMonthlyAlert(ctx *gin.Context) {
	if err := c.settingsUseCase.DismissMonthlyAlert(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Reset handles POST /settings/reset requests.
func (c *SettingsController) Reset(ctx *gin.Context) {
	var req dto.ResetRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.settingsUseCase.Reset(ctx.Request.Context(), req.Confirm); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
