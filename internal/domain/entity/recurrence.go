// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"
)

// RecurrencePattern is the step unit of a recurring template.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

// ErrInvalidRecurrence is returned when a pattern or interval cannot advance a cursor.
var ErrInvalidRecurrence = errors.New("invalid recurrence pattern or interval")

// IsValid reports whether the pattern is known.
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// NormalizeDate returns midnight UTC of the calendar day containing t.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Advance moves cursor forward by one step of pattern and interval. The result
// is always strictly after the normalized cursor. Monthly steps keep the day of
// month, clamped to the last day of a shorter target month.
func Advance(cursor time.Time, pattern RecurrencePattern, interval int) (time.Time, error) {
	if interval < 1 || !pattern.IsValid() {
		return time.Time{}, ErrInvalidRecurrence
	}

	cursor = NormalizeDate(cursor)
	switch pattern {
	case RecurrenceDaily:
		return cursor.AddDate(0, 0, interval), nil
	case RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7*interval), nil
	default:
		return addMonthsClamped(cursor, interval), nil
	}
}

// addMonthsClamped adds months without overflowing into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DueOccurrences lists every cursor value from cursor through today inclusive.
// The second return value is the advanced cursor, strictly after today.
func DueOccurrences(cursor, today time.Time, pattern RecurrencePattern, interval int) ([]time.Time, time.Time, error) {
	if interval < 1 || !pattern.IsValid() {
		return nil, cursor, ErrInvalidRecurrence
	}

	cursor = NormalizeDate(cursor)
	today = NormalizeDate(today)

	var due []time.Time
	for !cursor.After(today) {
		due = append(due, cursor)
		next, err := Advance(cursor, pattern, interval)
		if err != nil {
			return nil, cursor, err
		}
		cursor = next
	}
	return due, cursor, nil
}
