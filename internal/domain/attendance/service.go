package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens an attendance against today's shift
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the employee's latest open attendance, which may have
	// started on the previous calendar day
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// Status reports where the employee stands in today's shift
	Status(ctx context.Context, employeeID string) (StatusResponse, error)
	// CloseExpired marks every open record whose clock-out window has
	// closed as missed, and reports how many were closed
	CloseExpired(ctx context.Context) (int, error)
}
