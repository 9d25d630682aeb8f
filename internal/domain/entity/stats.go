// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Granularity is the bucket size of a period series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// DateRange is a half-open range of instants [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayRange returns the range covering the calendar day containing t.
func DayRange(t time.Time) DateRange {
	day := NormalizeDate(t)
	return DateRange{From: day, To: day.AddDate(0, 0, 1)}
}

// MonthRange returns the range covering the calendar month containing t.
func MonthRange(t time.Time) DateRange {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: start, To: start.AddDate(0, 1, 0)}
}

// MonthToDate returns the range from the first of t's month through the end of t's day.
func MonthToDate(t time.Time) DateRange {
	return DateRange{From: MonthRange(t).From, To: DayRange(t).To}
}

// CategoryTotal is the sum of one category's amounts over a window.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	Name         string
	Icon         string
	IconSet      string
	SpendingType SpendingType
	Limit        *Money
	Total        Money
}

// TrailingCategoryTotal is one category's total on a single day plus its
// month-to-date total through that day.
type TrailingCategoryTotal struct {
	CategoryTotal
	MonthTotal Money
}

// DayCategoryTotals holds the category totals of one day in a trailing window.
type DayCategoryTotals struct {
	Date       time.Time
	Categories []TrailingCategoryTotal
}

// CategoryShare is a category's month-to-date total and its share of all spending.
type CategoryShare struct {
	CategoryTotal
	Percentage decimal.Decimal
}

// PeriodTotal is the sum of amounts within one period bucket.
type PeriodTotal struct {
	Period string // YYYY-MM, YYYY-MM-DD or YYYY-Www
	Total  Money
}

// MonthSummary aggregates one calendar month.
type MonthSummary struct {
	Period       string
	Spent        Money
	Earned       Money
	Net          Money
	TotalBalance Money
	Settings     *UserBudgetSettings
	Breakdown    []CategoryShare
}

// CatchUpSummary reports the outcome of one recurrence catch-up run.
type CatchUpSummary struct {
	RunID           uuid.UUID
	Skipped         bool // Another run held the lock
	Templates       int
	Posted          int
	AlreadyPresent  int
	Failed          int
	CursorsAdvanced int
	StartedAt       time.Time
	FinishedAt      time.Time
}

// BackfillSummary reports the outcome of one backfill retry pass.
type BackfillSummary struct {
	Skipped   bool // Another run held the lock
	Processed int
	Resolved  int
	Retrying  int
	Failed    int
}
