package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/limit"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// LimitController handles limit evaluation endpoints.
type LimitController struct {
	evaluateUseCase *limit.EvaluateLimitUseCase
}

// NewLimitController creates a new limit controller instance.
func NewLimitController(evaluateUseCase *limit.EvaluateLimitUseCase) *LimitController {
	return &LimitController{evaluateUseCase: evaluateUseCase}
}

// Evaluate handles POST /limits/evaluate requests.
func (c *LimitController) Evaluate(ctx *gin.Context) {
	var req dto.EvaluateLimitRequest
	if !bindJSON(ctx, &req) {
		return
	}

	categoryID, err := dto.ParseID("category_id", req.CategoryID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	amount, err := dto.ToMoney("amount", req.Amount)
	if err != nil {
		respondError(ctx, err)
		return
	}

	decision, err := c.evaluateUseCase.Execute(ctx.Request.Context(), limit.EvaluateLimitInput{
		CategoryID: categoryID,
		Amount:     amount,
		Type:       entity.TransactionType(req.Type),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLimitDecisionResponse(decision))
}
