package services

import (
	"time"

	apperrors "trackly/internal/errors"
)

// ParseMonth parses a month in YYYY-MM form into the first instant of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidMonth
	}
	return t, nil
}

// monthWindow returns the half-open [start, end) window for the month containing t.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfTomorrow returns midnight of the day after t. Rows dated at or after
// this instant are "strictly future" relative to t's calendar day.
func startOfTomorrow(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}
