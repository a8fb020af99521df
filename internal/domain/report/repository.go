package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
)

// Totals aggregates attendance records by status for one employee.
type Totals struct {
	OnTime                int
	Late                  int
	LateMinutes           int
	EarlyDepartureCount   int
	EarlyDepartureMinutes int
}

// DailyTotals counts distinct staff for one shift date.
type DailyTotals struct {
	Scheduled int
	Present   int
	Late      int
}

type ReportRepository interface {
	// CountAbsences counts the employee's schedule entries in [from, to]
	// dated before today that no attendance references.
	CountAbsences(ctx context.Context, employeeID string, from, to, today time.Time) (int, error)

	// AttendanceTotals aggregates records whose shift date is in [from, to].
	AttendanceTotals(ctx context.Context, employeeID string, from, to time.Time) (Totals, error)

	// DailyTotals counts staff scheduled on date and staff with a non-missed
	// (and a late) attendance for that shift date.
	DailyTotals(ctx context.Context, date time.Time) (DailyTotals, error)

	// UnattendedEntries lists the entries on date that no attendance references.
	UnattendedEntries(ctx context.Context, date time.Time) ([]schedule.Entry, error)

	CountPendingLeaveRequests(ctx context.Context) (int, error)
}
