package dateutil

import (
	"time"
)

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalendarDay strips the clock and zone from t, keeping its calendar date.
func CalendarDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DaysBetween returns the number of calendar days from start to end.
// Negative when end is before start.
func DaysBetween(start, end time.Time) int {
	s := CalendarDay(start)
	e := CalendarDay(end)
	return int(e.Sub(s).Hours() / 24)
}

// HeldMoreThan reports whether end is strictly more than days calendar days after start.
func HeldMoreThan(start, end time.Time, days int) bool {
	return DaysBetween(start, end) > days
}

// HeldAtLeast reports whether end is at least days calendar days after start.
func HeldAtLeast(start, end time.Time, days int) bool {
	return DaysBetween(start, end) >= days
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based ordinal of t within year, clamped to
// [1, DaysInYear(year)] for dates outside the year.
func DayOfYear(t time.Time, year int) int {
	elapsed := DaysBetween(Date(year, time.January, 1), t) + 1
	total := DaysInYear(year)
	if elapsed < 1 {
		return 1
	}
	if elapsed > total {
		return total
	}
	return elapsed
}

// InYear reports whether t falls within the calendar year.
func InYear(t time.Time, year int) bool {
	return !t.IsZero() && t.Year() == year
}
