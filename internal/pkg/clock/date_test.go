package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		date   string
		monday string
		sunday string
	}{
		{"2026-02-09", "2026-02-09", "2026-02-15"}, // Monday
		{"2026-02-12", "2026-02-09", "2026-02-15"},
		{"2026-02-15", "2026-02-09", "2026-02-15"}, // Sunday
		{"2026-03-01", "2026-02-23", "2026-03-01"},
	}
	for _, c := range cases {
		d, err := ParseDate(c.date, wib)
		require.NoError(t, err)
		monday, sunday := WeekBounds(d)
		assert.Equal(t, c.monday, DateKey(monday), c.date)
		assert.Equal(t, c.sunday, DateKey(sunday), c.date)
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2026-02-10", wib)
	b, _ := ParseDate("2026-02-12", wib)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))

	// DATE columns come back as UTC midnight
	utc := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, utc))
}

func TestInKeepsCalendarDay(t *testing.T) {
	utc := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)
	local := In(utc, wib)
	assert.Equal(t, "2026-02-12", DateKey(local))
	assert.Equal(t, wib, local.Location())
}

func TestMonthBounds(t *testing.T) {
	d, _ := ParseDate("2026-02-17", wib)
	first, last := MonthBounds(d)
	assert.Equal(t, "2026-02-01", DateKey(first))
	assert.Equal(t, "2026-02-28", DateKey(last))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 2, 10, 22, 0, 0, 0, wib)
	c := NewFixed(start)
	c.Advance(150 * time.Minute)
	assert.Equal(t, "2026-02-11", DateKey(c.Now()))
	assert.Equal(t, wib, c.Location())
}
