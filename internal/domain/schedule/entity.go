package schedule

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
)

// Entry assigns one employee to one shift on one date.
type Entry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ShiftType  shift.Type
	CreatedAt  time.Time

	// Joined
	EmployeeName string
}

// WeeklyShiftLimit is the default cap on entries per ISO week.
const WeeklyShiftLimit = 6
