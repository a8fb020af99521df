package attendance

import "github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"

var (
	ErrOnLeave          = apperror.Policy("on_leave", "Employee is on approved leave today")
	ErrNoSchedule       = apperror.Policy("no_schedule", "No shift scheduled for today")
	ErrTooEarly         = apperror.Policy("too_early", "Clock-in is not open yet for this shift")
	ErrAlreadyClockedIn = apperror.Policy("already_clocked_in", "Employee already has an open attendance")
	ErrNoOpenRecord     = apperror.Policy("no_open_record", "No open attendance to clock out of")
	ErrWindowClosed     = apperror.Policy("window_closed", "The clock window for this shift has closed")
)
