// Package period implements the calendar filters used by the income and
// spending list views.
package period

import (
	"errors"
	"strings"
	"time"
)

type Filter string

const (
	All     Filter = "all"
	Today   Filter = "today"
	Week    Filter = "week"
	Month   Filter = "month"
	Quarter Filter = "quarter"
	Year    Filter = "year"
)

var ErrInvalidFilter = errors.New("invalid period filter")

// Parse maps an empty value to All and rejects anything not in allowed.
func Parse(value string, allowed ...Filter) (Filter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return All, nil
	}
	for _, f := range allowed {
		if string(f) == value {
			return f, nil
		}
	}
	return "", ErrInvalidFilter
}

// Matches reports whether date falls in the filter window relative to now.
// Both values are compared as calendar days in UTC.
func (f Filter) Matches(date, now time.Time) bool {
	date = StartOfDay(date)
	today := StartOfDay(now)

	switch f {
	case Today:
		return date.Equal(today)
	case Week:
		return !date.Before(today.AddDate(0, 0, -6))
	case Month:
		return date.Year() == today.Year() && date.Month() == today.Month()
	case Quarter:
		return date.Year() == today.Year() && QuarterOf(date) == QuarterOf(today)
	case Year:
		return date.Year() == today.Year()
	default:
		return true
	}
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// QuarterOf returns 1..4.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
