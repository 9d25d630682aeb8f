// Package dashboard contains the read-only aggregation use cases.
package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
)

const (
	// PeriodLayout is the layout of a calendar month period.
	PeriodLayout = "2006-01"
	// DayLayout is the layout of a calendar day period.
	DayLayout = "2006-01-02"

	// MaxWindowDays bounds trailing windows.
	MaxWindowDays = 366
)

// ParsePeriod parses a "YYYY-MM" period into its month range. An empty period
// selects the month containing now.
func ParsePeriod(period string, now time.Time) (entity.DateRange, error) {
	if period == "" {
		return entity.MonthRange(now), nil
	}

	t, err := time.ParseInLocation(PeriodLayout, period, time.UTC)
	if err != nil {
		return entity.DateRange{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidPeriod,
			fmt.Sprintf("invalid period %q", period),
			domainerror.ErrInvalidPeriod,
		)
	}
	return entity.MonthRange(t), nil
}

// ParseYear parses a four digit year into the range covering it.
func ParseYear(year string) (entity.DateRange, error) {
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 || y < 1 {
		return entity.DateRange{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("invalid year %q", year),
			domainerror.ErrInvalidYear,
		)
	}

	start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return entity.DateRange{From: start, To: start.AddDate(1, 0, 0)}, nil
}

// ValidateWindow checks a trailing window length in days.
func ValidateWindow(days int) error {
	if days < 1 || days > MaxWindowDays {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidWindow,
			fmt.Sprintf("window must be between 1 and %d days", MaxWindowDays),
			domainerror.ErrInvalidWindow,
		)
	}
	return nil
}

// ValidateType checks a transaction type filter.
func ValidateType(txType entity.TransactionType) error {
	if !txType.IsValid() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidSeriesType,
			"type must be 'credit' or 'debit'",
			nil,
		)
	}
	return nil
}

// WeekKey returns the "YYYY-Www" key of the Monday-based week containing
// date. Days before the first Monday of the year fall in week 00.
func WeekKey(date time.Time) string {
	date = date.UTC()
	mondayBased := (int(date.Weekday()) + 6) % 7
	week := (date.YearDay() - 1 + 7 - mondayBased) / 7
	return fmt.Sprintf("%d-W%02d", date.Year(), week)
}

// trailingDays returns the last n calendar days ending with today, oldest first.
func trailingDays(now time.Time, n int) []time.Time {
	today := entity.NormalizeDate(now)
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

func parseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError,
			fmt.Sprintf("unexpected day key %q", day),
			err,
		)
	}
	return t, nil
}
