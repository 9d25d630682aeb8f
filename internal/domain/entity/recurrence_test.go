package entity

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		cursor   time.Time
		pattern  RecurrencePattern
		interval int
		want     time.Time
	}{
		{"daily by one", date(2024, 3, 1), RecurrenceDaily, 1, date(2024, 3, 2)},
		{"daily across month", date(2024, 1, 30), RecurrenceDaily, 3, date(2024, 2, 2)},
		{"weekly by two", date(2024, 3, 1), RecurrenceWeekly, 2, date(2024, 3, 15)},
		{"monthly keeps day", date(2024, 1, 15), RecurrenceMonthly, 1, date(2024, 2, 15)},
		{"monthly clamps to leap february", date(2024, 1, 31), RecurrenceMonthly, 1, date(2024, 2, 29)},
		{"monthly clamps to short month", date(2023, 1, 31), RecurrenceMonthly, 1, date(2023, 2, 28)},
		{"monthly across year", date(2024, 11, 30), RecurrenceMonthly, 3, date(2025, 2, 28)},
		{"time of day is dropped", time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC), RecurrenceDaily, 1, date(2024, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(tt.cursor, tt.pattern, tt.interval)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if !got.After(NormalizeDate(tt.cursor)) {
				t.Errorf("cursor did not move forward: %s", got)
			}
		})
	}
}

func TestAdvance_RejectsCorruptState(t *testing.T) {
	tests := []struct {
		name     string
		pattern  RecurrencePattern
		interval int
	}{
		{"zero interval", RecurrenceDaily, 0},
		{"negative interval", RecurrenceWeekly, -2},
		{"unknown pattern", RecurrencePattern("yearly"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Advance(date(2024, 1, 1), tt.pattern, tt.interval)
			if !errors.Is(err, ErrInvalidRecurrence) {
				t.Errorf("expected ErrInvalidRecurrence, got %v", err)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2024, 3, 2, 3, 0, 0, 0, loc) // 2024-03-01 22:00 UTC

	got := NormalizeDate(in)
	if !got.Equal(date(2024, 3, 1)) {
		t.Errorf("expected 2024-03-01 UTC, got %s", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %s", got.Location())
	}
}

func TestDueOccurrences(t *testing.T) {
	t.Run("daily template five days behind", func(t *testing.T) {
		today := date(2024, 5, 10)
		due, next, err := DueOccurrences(date(2024, 5, 6), today, RecurrenceDaily, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 5 {
			t.Fatalf("expected 5 occurrences, got %d", len(due))
		}
		if !next.After(today) {
			t.Errorf("expected cursor after today, got %s", next)
		}
	})

	t.Run("monthly interval two from three months ago", func(t *testing.T) {
		today := date(2024, 5, 10)
		due, next, err := DueOccurrences(date(2024, 2, 10), today, RecurrenceMonthly, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 2 {
			t.Fatalf("expected 2 occurrences, got %d", len(due))
		}
		if !due[0].Equal(date(2024, 2, 10)) || !due[1].Equal(date(2024, 4, 10)) {
			t.Errorf("unexpected occurrences: %v", due)
		}
		if !next.Equal(date(2024, 6, 10)) {
			t.Errorf("expected cursor 2024-06-10, got %s", next)
		}
	})

	t.Run("nothing due leaves cursor unchanged", func(t *testing.T) {
		cursor := date(2024, 6, 1)
		due, next, err := DueOccurrences(cursor, date(2024, 5, 10), RecurrenceWeekly, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 0 {
			t.Errorf("expected no occurrences, got %d", len(due))
		}
		if !next.Equal(cursor) {
			t.Errorf("expected cursor unchanged, got %s", next)
		}
	})

	t.Run("cursor equal to today is due", func(t *testing.T) {
		today := date(2024, 5, 10)
		due, _, err := DueOccurrences(today, today.Add(20*time.Hour), RecurrenceDaily, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 1 {
			t.Errorf("expected 1 occurrence, got %d", len(due))
		}
	})
}
