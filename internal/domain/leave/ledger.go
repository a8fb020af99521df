package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
)

// Policy holds the submission gates for annual leave.
type Policy struct {
	AnnualNoticeDays int
	AnnualMaxDays    int
}

func DefaultPolicy() Policy {
	return Policy{AnnualNoticeDays: 7, AnnualMaxDays: 5}
}

// DayCount returns the inclusive number of days in [start, end].
func DayCount(start, end time.Time) int {
	return clock.DaysBetween(start, end) + 1
}

// Overlaps reports whether candidate [start, end] collides with existing
// [exStart, exEnd]: either candidate endpoint falls inside the existing
// range, or the existing range sits inside the candidate.
func Overlaps(start, end, exStart, exEnd time.Time) bool {
	s, e := clock.DateKey(start), clock.DateKey(end)
	xs, xe := clock.DateKey(exStart), clock.DateKey(exEnd)

	startInside := xs <= s && s <= xe
	endInside := xs <= e && e <= xe
	contains := s <= xs && xe <= e
	return startInside || endInside || contains
}

// BalanceFor returns the balance counter debited by leave type t.
func BalanceFor(b employee.Balances, t Type) int {
	switch t {
	case TypeAnnual:
		return b.Annual
	case TypeSick:
		return b.Sick
	case TypeEmergency:
		return b.Emergency
	}
	return 0
}

// MaxBalance is the policy cap for leave type t.
func MaxBalance(t Type) int {
	switch t {
	case TypeAnnual:
		return employee.MaxAnnualBalance
	case TypeSick:
		return employee.MaxSickBalance
	case TypeEmergency:
		return employee.MaxEmergencyBalance
	}
	return 0
}

// WithBalance returns b with the counter for t replaced by value.
func WithBalance(b employee.Balances, t Type, value int) employee.Balances {
	switch t {
	case TypeAnnual:
		b.Annual = value
	case TypeSick:
		b.Sick = value
	case TypeEmergency:
		b.Emergency = value
	}
	return b
}

// Restore credits days back to balance, capped at the policy maximum.
func Restore(balance int, t Type, days int) int {
	next := balance + days
	if max := MaxBalance(t); next > max {
		return max
	}
	return next
}
