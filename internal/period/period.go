// Package period holds the calendar arithmetic the engine depends on:
// date keys, ISO week keys, day differences and month layouts.
package period

import (
	"fmt"
	"math"
	"time"
)

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Today returns the date key for the clock's current instant.
func Today(c Clock) string {
	return DateKey(c.Now())
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// ISOWeek returns the ISO-8601 week key of t as "YYYY-W<n>".
//
// The calendar date of t is moved to the Thursday of its Monday-based week;
// that Thursday's year is the ISO year and the week number is counted from
// January 1 of that year.
func ISOWeek(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	d = d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := float64(d.Sub(yearStart)) / float64(day)
	week := int(math.Ceil((days + 1) / 7))
	return fmt.Sprintf("%d-W%d", d.Year(), week)
}

// DaysBetween floor-divides the raw duration a-b by 24h.
//
// This does not account for DST shifts or timezone changes: two instants
// 23 hours apart across a spring-forward boundary count as 0 days.
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(float64(a.Sub(b)) / float64(day)))
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday offset (Sunday=0) of day 1 of the month.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// ParseMonthKey parses YYYY-MM.
func ParseMonthKey(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
