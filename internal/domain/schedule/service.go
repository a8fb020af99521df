package schedule

import "context"

type ScheduleService interface {
	// Assign places an employee on a morning or evening slot and makes sure
	// the week's supervisor office shifts exist.
	Assign(ctx context.Context, req AssignShiftRequest) (WeekSnapshot, error)

	Week(ctx context.Context, req WeekRequest) (WeekSnapshot, error)
	MyWeek(ctx context.Context, employeeID string, req WeekRequest) (MyWeekResponse, error)

	// ResetWeek deletes every entry in the selected week.
	ResetWeek(ctx context.Context, req WeekRequest) (ResetWeekResponse, error)
}
