package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/dashboard"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// StatsController handles aggregation endpoints.
type StatsController struct {
	monthTotals   *dashboard.GetMonthTotalsUseCase
	categorySpend *dashboard.GetCategorySpendUseCase
	summary       *dashboard.GetMonthSummaryUseCase
	breakdown     *dashboard.GetCategoryBreakdownUseCase
	trailing      *dashboard.GetTrailingTotalsUseCase
	series        *dashboard.GetSeriesUseCase
	topCategories *dashboard.GetTopCategoriesUseCase
}

// StatsUseCases groups the use cases behind the stats endpoints.
type StatsUseCases struct {
	MonthTotals   *dashboard.GetMonthTotalsUseCase
	CategorySpend *dashboard.GetCategorySpendUseCase
	Summary       *dashboard.GetMonthSummaryUseCase
	Breakdown     *dashboard.GetCategoryBreakdownUseCase
	Trailing      *dashboard.GetTrailingTotalsUseCase
	Series        *dashboard.GetSeriesUseCase
	TopCategories *dashboard.GetTopCategoriesUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(useCases StatsUseCases) *StatsController {
	return &StatsController{
		monthTotals:   useCases.MonthTotals,
		categorySpend: useCases.CategorySpend,
		summary:       useCases.Summary,
		breakdown:     useCases.Breakdown,
		trailing:      useCases.Trailing,
		series:        useCases.Series,
		topCategories: useCases.TopCategories,
	}
}

// Month handles GET /stats/month requests.
func (c *StatsController) Month(ctx *gin.Context) {
	output, err := c.monthTotals.Execute(ctx.Request.Context(), dashboard.GetMonthTotalsInput{
		Period: ctx.Query("period"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthTotalsResponse(output))
}

// Summary handles GET /stats/summary requests.
func (c *StatsController) Summary(ctx *gin.Context) {
	summary, err := c.summary.Execute(ctx.Request.Context(), dashboard.GetMonthSummaryInput{
		Period: ctx.Query("period"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthSummaryResponse(summary))
}

// CategorySpend handles GET /stats/category-spend/:id requests.
func (c *StatsController) CategorySpend(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "category ID")
	if !ok {
		return
	}

	spent, err := c.categorySpend.Execute(ctx.Request.Context(), categoryID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AmountResponse{Amount: spent.Decimal()})
}

// Breakdown handles GET /stats/breakdown requests.
func (c *StatsController) Breakdown(ctx *gin.Context) {
	shares, err := c.breakdown.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryShareResponses(shares)})
}

// Trailing handles GET /stats/trailing requests.
func (c *StatsController) Trailing(ctx *gin.Context) {
	days, ok := queryInt(ctx, "days", 7)
	if !ok {
		return
	}

	slices, err := c.trailing.Execute(ctx.Request.Context(), dashboard.GetTrailingTotalsInput{
		WindowDays: days,
		Type:       entity.TransactionType(ctx.DefaultQuery("type", string(entity.TransactionTypeDebit))),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"days": dto.ToTrailingDayResponses(slices)})
}

// Monthly handles GET /stats/monthly requests.
func (c *StatsController) Monthly(ctx *gin.Context) {
	txType := entity.TransactionType(ctx.DefaultQuery("type", string(entity.TransactionTypeDebit)))

	totals, err := c.series.Monthly(ctx.Request.Context(), txType)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"series": dto.ToPeriodTotalResponses(totals)})
}

// Daily handles GET /stats/daily requests.
func (c *StatsController) Daily(ctx *gin.Context) {
	totals, err := c.series.DailyExpenses(ctx.Request.Context(), ctx.Query("month"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"series": dto.ToPeriodTotalResponses(totals)})
}

// Weekly handles GET /stats/weekly requests.
func (c *StatsController) Weekly(ctx *gin.Context) {
	totals, err := c.series.WeeklyExpenses(ctx.Request.Context(), ctx.Query("year"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"series": dto.ToPeriodTotalResponses(totals)})
}

// TopCategories handles GET /stats/top-categories requests.
func (c *StatsController) TopCategories(ctx *gin.Context) {
	days, ok := queryInt(ctx, "days", dashboard.DefaultTopWindowDays)
	if !ok {
		return
	}
	limitValue, ok := queryInt(ctx, "limit", dashboard.DefaultTopLimit)
	if !ok {
		return
	}

	totals, err := c.topCategories.Execute(ctx.Request.Context(), dashboard.GetTopCategoriesInput{
		WindowDays: days,
		Limit:      limitValue,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryTotalResponses(totals)})
}

// CreditCategories handles GET /stats/credit-categories requests.
func (c *StatsController) CreditCategories(ctx *gin.Context) {
	totals, err := c.topCategories.CreditCategoriesThisMonth(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryTotalResponses(totals)})
}
