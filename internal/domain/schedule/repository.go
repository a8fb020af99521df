package schedule

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
)

// ScheduleRepository - interface for shift_schedules table
type ScheduleRepository interface {
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Entry, error)
	ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	// ListInRange returns every entry in [from, to] with the occupant's name.
	ListInRange(ctx context.Context, from, to time.Time) ([]Entry, error)

	// CountInRange counts the employee's entries in [from, to], leaving out exclude.
	CountInRange(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error)

	// UpsertSlot makes entry the sole occupant of its (date, shift type) slot,
	// displacing any previous occupant.
	UpsertSlot(ctx context.Context, entry Entry) (Entry, error)

	// CreateIfAbsent inserts entry unless the employee already holds that
	// shift on that date. Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, entry Entry) (bool, error)

	// ExistsByTypeInRange reports whether any entry of shiftType exists in [from, to].
	ExistsByTypeInRange(ctx context.Context, shiftType shift.Type, from, to time.Time) (bool, error)

	DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	DeleteInRange(ctx context.Context, from, to time.Time) (int, error)

	// LockWeek serializes week-level generation for the week starting monday
	// until the surrounding transaction ends.
	LockWeek(ctx context.Context, monday time.Time) error
}
