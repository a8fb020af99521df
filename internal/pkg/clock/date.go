package clock

import "time"

// DateOf truncates t to midnight of its calendar day in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// In re-anchors the calendar day of t at midnight in loc.
// Dates read back from a DATE column arrive as UTC midnight.
func In(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// DateKey formats the calendar day of t. Keys sort chronologically.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// DaysBetween counts calendar days from a to b, ignoring DST shifts.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// WeekBounds returns the Monday and Sunday of the ISO week containing d.
func WeekBounds(d time.Time) (monday, sunday time.Time) {
	day := DateOf(d)
	offset := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// IsWeekday reports whether d is Monday through Friday.
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MonthBounds returns the first and last day of the month containing d.
func MonthBounds(d time.Time) (first, last time.Time) {
	first = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return first, first.AddDate(0, 1, -1)
}

// YearBounds returns 1 January and 31 December of d's year.
func YearBounds(d time.Time) (first, last time.Time) {
	first = time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	return first, time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, d.Location())
}
