package util

import (
	"fmt"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) in local timezone for the given time.
// This normalizes any time to the same day in local timezone for date-only comparison.
func StartOfDay(t time.Time) time.Time {
	localTime := t.Local()
	return time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, time.Local)
}

// ParseDateLocal parses a date string in YYYY-MM-DD format and returns it in local timezone.
// This ensures dates from HTML date inputs are parsed consistently in local time.
func ParseDateLocal(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

// MonthWindow parses a month string in YYYY-MM format and returns the first
// and last day of that month as local start-of-day times.
func MonthWindow(monthStr string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", monthStr, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// ObservableEnd clamps the end of a reporting window so that future dates are
// never counted: it returns min(monthEnd, today), both as local start-of-day.
func ObservableEnd(monthEnd, today time.Time) time.Time {
	end := StartOfDay(monthEnd)
	day := StartOfDay(today)
	if day.Before(end) {
		return day
	}
	return end
}

// ValidateNotFutureDate validates that a date is not in the future.
// It compares only the DATE (not time of day). Treats "today" as allowed.
func ValidateNotFutureDate(d time.Time) error {
	todayDay := StartOfDay(time.Now())
	noteDay := StartOfDay(d)

	if noteDay.After(todayDay) {
		return fmt.Errorf("date cannot be in the future")
	}

	return nil
}
