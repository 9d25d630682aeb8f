package dto

import (
	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/application/usecase/dashboard"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// MonthTotalsResponse represents spent, earned and net for one month.
type MonthTotalsResponse struct {
	Period string          `json:"period"`
	Spent  decimal.Decimal `json:"spent"`
	Earned decimal.Decimal `json:"earned"`
	Net    decimal.Decimal `json:"net"`
}

// AmountResponse wraps a single amount.
type AmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotalResponse is one category's total over a window.
type CategoryTotalResponse struct {
	CategoryID    string           `json:"category_id"`
	Name          string           `json:"name"`
	Icon          string           `json:"icon"`
	IconSet       string           `json:"icon_set"`
	SpendingType  string           `json:"spending_type"`
	CategoryLimit *decimal.Decimal `json:"category_limit"`
	Total         decimal.Decimal  `json:"total"`
}

// CategoryShareResponse is a category total with its share of all spending.
type CategoryShareResponse struct {
	CategoryTotalResponse
	Percentage decimal.Decimal `json:"percentage"`
}

// TrailingCategoryResponse is one category's day total and month-to-date total.
type TrailingCategoryResponse struct {
	CategoryTotalResponse
	MonthTotal decimal.Decimal `json:"month_total"`
}

// TrailingDayResponse is one day slice of trailing totals.
type TrailingDayResponse struct {
	Date       string                     `json:"date"`
	Categories []TrailingCategoryResponse `json:"categories"`
}

// PeriodTotalResponse is one bucket of a series.
type PeriodTotalResponse struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// MonthSummaryResponse aggregates one calendar month.
type MonthSummaryResponse struct {
	Period       string                  `json:"period"`
	Spent        decimal.Decimal         `json:"spent"`
	Earned       decimal.Decimal         `json:"earned"`
	Net          decimal.Decimal         `json:"net"`
	TotalBalance decimal.Decimal         `json:"total_balance"`
	Settings     SettingsResponse        `json:"settings"`
	Breakdown    []CategoryShareResponse `json:"breakdown"`
}

// ToMonthTotalsResponse converts month totals to their response.
func ToMonthTotalsResponse(output *dashboard.GetMonthTotalsOutput) MonthTotalsResponse {
	return MonthTotalsResponse{
		Period: output.Period,
		Spent:  output.Spent.Decimal(),
		Earned: output.Earned.Decimal(),
		Net:    output.Net.Decimal(),
	}
}

// ToCategoryTotalResponse converts a category total to its response.
func ToCategoryTotalResponse(total entity.CategoryTotal) CategoryTotalResponse {
	return CategoryTotalResponse{
		CategoryID:    total.CategoryID.String(),
		Name:          total.Name,
		Icon:          total.Icon,
		IconSet:       total.IconSet,
		SpendingType:  string(total.SpendingType),
		CategoryLimit: moneyPtr(total.Limit),
		Total:         total.Total.Decimal(),
	}
}

// ToCategoryTotalResponses converts category totals to their responses.
func ToCategoryTotalResponses(totals []entity.CategoryTotal) []CategoryTotalResponse {
	responses := make([]CategoryTotalResponse, 0, len(totals))
	for _, total := range totals {
		responses = append(responses, ToCategoryTotalResponse(total))
	}
	return responses
}

// ToCategoryShareResponses converts a breakdown to its responses.
func ToCategoryShareResponses(shares []entity.CategoryShare) []CategoryShareResponse {
	responses := make([]CategoryShareResponse, 0, len(shares))
	for _, share := range shares {
		responses = append(responses, CategoryShareResponse{
			CategoryTotalResponse: ToCategoryTotalResponse(share.CategoryTotal),
			Percentage:            share.Percentage,
		})
	}
	return responses
}

// ToTrailingDayResponses converts trailing totals to their responses.
func ToTrailingDayResponses(days []entity.DayCategoryTotals) []TrailingDayResponse {
	responses := make([]TrailingDayResponse, 0, len(days))
	for _, day := range days {
		categories := make([]TrailingCategoryResponse, 0, len(day.Categories))
		for _, category := range day.Categories {
			categories = append(categories, TrailingCategoryResponse{
				CategoryTotalResponse: ToCategoryTotalResponse(category.CategoryTotal),
				MonthTotal:            category.MonthTotal.Decimal(),
			})
		}
		responses = append(responses, TrailingDayResponse{
			Date:       day.Date.Format(DateLayout),
			Categories: categories,
		})
	}
	return responses
}

// ToPeriodTotalResponses converts a series to its responses.
func ToPeriodTotalResponses(totals []entity.PeriodTotal) []PeriodTotalResponse {
	responses := make([]PeriodTotalResponse, 0, len(totals))
	for _, total := range totals {
		responses = append(responses, PeriodTotalResponse{
			Period: total.Period,
			Total:  total.Total.Decimal(),
		})
	}
	return responses
}

// ToMonthSummaryResponse converts a month summary to its response.
func ToMonthSummaryResponse(summary *entity.MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		Period:       summary.Period,
		Spent:        summary.Spent.Decimal(),
		Earned:       summary.Earned.Decimal(),
		Net:          summary.Net.Decimal(),
		TotalBalance: summary.TotalBalance.Decimal(),
		Settings:     ToSettingsResponse(summary.Settings),
		Breakdown:    ToCategoryShareResponses(summary.Breakdown),
	}
}
