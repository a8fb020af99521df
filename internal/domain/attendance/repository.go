package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for attendances table
type AttendanceRepository interface {
	// Create inserts an open record. Returns ErrAlreadyClockedIn when the
	// employee already has one.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetLatestOpen returns the employee's open record, most recent clock-in
	// first, or nil when there is none.
	GetLatestOpen(ctx context.Context, employeeID string) (*Attendance, error)

	// Close sets clock_out on a record that is still open. Returns
	// ErrNoOpenRecord when the record was closed concurrently.
	Close(ctx context.Context, id string, clockOut time.Time, earlyDepartureMinutes int) error

	// MarkMissed closes an expired open record at closedAt with StatusMissed.
	MarkMissed(ctx context.Context, id string, closedAt time.Time) error

	ListByEmployeeAndShiftDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)
	// ListOpen returns every open record, oldest clock-in first.
	ListOpen(ctx context.Context) ([]Attendance, error)
}
