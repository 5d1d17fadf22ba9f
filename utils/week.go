package utils

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO date format the upstream API expects for week_start_date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidWeek = errors.New("week_start_date must be an ISO date (YYYY-MM-DD)")
	ErrNotMonday   = errors.New("week_start_date must be a Monday")
)

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMonday returns the Monday of next week. A Monday never counts as its own next Monday.
func NextMonday(now time.Time) time.Time {
	days := (8 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return midnight(now).AddDate(0, 0, days)
}

// CurrentMonday returns the Monday of the week containing now; Sunday belongs to the week before.
func CurrentMonday(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return midnight(now).AddDate(0, 0, -offset)
}

// ParseWeekStart validates a week_start_date query value.
func ParseWeekStart(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeek, raw)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("%w: %s is a %s", ErrNotMonday, raw, t.Weekday())
	}
	return t, nil
}

// ResolveWeek returns raw when it is a valid Monday, or the formatted fallback week when raw is empty.
func ResolveWeek(raw string, now time.Time, fallback func(time.Time) time.Time) (string, error) {
	if raw == "" {
		return fallback(now).Format(DateLayout), nil
	}
	t, err := ParseWeekStart(raw)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
