package schedule

import (
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/validator"
)

type AssignShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftType  string `json:"shift_type"`
	Date       string `json:"date"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if t, err := shift.ParseType(r.ShiftType); err != nil || !t.Assignable() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be morning or evening",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WeekRequest selects the ISO week containing Date; empty means this week.
type WeekRequest struct {
	Date string `json:"date"`
}

func (r *WeekRequest) Validate() error {
	if validator.IsEmpty(r.Date) {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

type Occupant struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

type DaySlots struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Morning *Occupant  `json:"morning"`
	Evening *Occupant  `json:"evening"`
	Office  []Occupant `json:"office"`
}

// WeekSnapshot is the Monday to Sunday roster.
type WeekSnapshot struct {
	WeekStart string     `json:"week_start"`
	WeekEnd   string     `json:"week_end"`
	Days      []DaySlots `json:"days"`
}

type MyShift struct {
	Date      string     `json:"date"`
	Weekday   string     `json:"weekday"`
	ShiftType shift.Type `json:"shift_type"`
	StartsAt  string     `json:"starts_at"`
	EndsAt    string     `json:"ends_at"`
}

type MyWeekResponse struct {
	EmployeeID string    `json:"employee_id"`
	WeekStart  string    `json:"week_start"`
	WeekEnd    string    `json:"week_end"`
	Shifts     []MyShift `json:"shifts"`
}

type ResetWeekResponse struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Deleted   int    `json:"deleted"`
}
