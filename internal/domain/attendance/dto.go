package attendance

import (
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockInRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockOutRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type AttendanceResponse struct {
	ID                    string     `json:"id"`
	EmployeeID            string     `json:"employee_id"`
	ScheduleEntryID       *string    `json:"schedule_entry_id"`
	ShiftDate             string     `json:"shift_date"`
	ShiftType             shift.Type `json:"shift_type"`
	ClockIn               string     `json:"clock_in"`
	ClockOut              *string    `json:"clock_out"`
	Status                Status     `json:"status"`
	LateMinutes           int        `json:"late_minutes"`
	EarlyDepartureMinutes int        `json:"early_departure_minutes"`
}

type ClockOutResponse struct {
	AttendanceResponse
	EarlyExit bool `json:"early_exit"`
}

type ShiftWindowResponse struct {
	ShiftType shift.Type `json:"shift_type"`
	StartsAt  string     `json:"starts_at"`
	EndsAt    string     `json:"ends_at"`
}

type StatusResponse struct {
	EmployeeID string               `json:"employee_id"`
	Date       string               `json:"date"`
	State      DayState             `json:"state"`
	StateName  string               `json:"state_name"`
	Shift      *ShiftWindowResponse `json:"shift,omitempty"`
	Attendance *AttendanceResponse  `json:"attendance,omitempty"`
}
