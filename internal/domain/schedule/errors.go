package schedule

import "github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"

var (
	ErrWrongRole       = apperror.Policy("wrong_role", "Only employees can be assigned to morning or evening shifts")
	ErrSameDayConflict = apperror.Policy("same_day_conflict", "Employee already works the other shift on this date")
	ErrWeekLimit       = apperror.Policy("week_limit", "Employee has reached the weekly shift limit")
	ErrOnLeave         = apperror.Policy("on_leave", "Employee is on approved leave on this date")
)
