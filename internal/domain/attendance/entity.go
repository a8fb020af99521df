package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
)

type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
	// StatusMissed marks a record whose clock-out window closed while it was
	// still open. It is closed at the window's deadline.
	StatusMissed Status = "missed"
)

// Attendance is one clock-in/clock-out cycle. ShiftDate and ShiftType are
// copied from the schedule entry so the window stays computable after the
// entry is deleted, and for synthesized office shifts that have no entry.
type Attendance struct {
	ID                    string
	EmployeeID            string
	ScheduleEntryID       *string
	ShiftDate             time.Time
	ShiftType             shift.Type
	ClockIn               time.Time
	ClockOut              *time.Time
	Status                Status
	LateMinutes           int
	EarlyDepartureMinutes int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// DayState is an employee's progress through today's shift.
type DayState int

const (
	NotClockedIn DayState = 0
	ClockedIn    DayState = 1
	ClockedOut   DayState = 2
)

func (s DayState) String() string {
	switch s {
	case NotClockedIn:
		return "not_clocked_in"
	case ClockedIn:
		return "clocked_in"
	case ClockedOut:
		return "clocked_out"
	}
	return "unknown"
}
