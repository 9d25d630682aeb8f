package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/recurrence"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// RecurrenceController handles recurrence endpoints.
type RecurrenceController struct {
	catchUpUseCase    *recurrence.RunCatchUpUseCase
	backfillUseCase   *recurrence.RetryBackfillsUseCase
	backfillBatchSize int
}

// NewRecurrenceController creates a new recurrence controller instance.
func NewRecurrenceController(
	catchUpUseCase *recurrence.RunCatchUpUseCase,
	backfillUseCase *recurrence.RetryBackfillsUseCase,
	backfillBatchSize int,
) *RecurrenceController {
	return &RecurrenceController{
		catchUpUseCase:    catchUpUseCase,
		backfillUseCase:   backfillUseCase,
		backfillBatchSize: backfillBatchSize,
	}
}

// Run handles POST /recurrence/run requests.
// A run skipped because another run holds the lock answers 202.
func (c *RecurrenceController) Run(ctx *gin.Context) {
	summary, err := c.catchUpUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusOK
	if summary.Skipped {
		status = http.StatusAccepted
	}
	ctx.JSON(status, dto.ToCatchUpResponse(summary))
}

// Backfill handles POST /recurrence/backfill requests.
func (c *RecurrenceController) Backfill(ctx *gin.Context) {
	batchSize, ok := queryInt(ctx, "batch", c.backfillBatchSize)
	if !ok {
		return
	}

	summary, err := c.backfillUseCase.Execute(ctx.Request.Context(), batchSize)
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusOK
	if summary.Skipped {
		status = http.StatusAccepted
	}
	ctx.JSON(status, dto.ToBackfillResponse(summary))
}
