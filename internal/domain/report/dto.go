package report

import (
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ABSENCE COUNT
// ========================================

type AbsenceCountRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (r *AbsenceCountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = validator.DateRange(errs, "from", r.From, "to", r.To)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AbsenceCountResponse struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Absences   int    `json:"absences"`
}

// ========================================
// ATTENDANCE SUMMARY
// ========================================

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four-digit year",
		})
	}
	return errs
}

type AttendanceSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	PeriodRequest
}

func (r *AttendanceSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = r.PeriodRequest.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceSummary struct {
	EmployeeID            string          `json:"employee_id"`
	EmployeeName          string          `json:"employee_name"`
	PeriodStart           string          `json:"period_start"`
	PeriodEnd             string          `json:"period_end"`
	Present               int             `json:"present"`
	Late                  int             `json:"late"`
	Absent                int             `json:"absent"`
	LateMinutes           int             `json:"late_minutes"`
	EarlyDepartureCount   int             `json:"early_departure_count"`
	EarlyDepartureMinutes int             `json:"early_departure_minutes"`
	AttendanceRate        decimal.Decimal `json:"attendance_rate"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	PeriodRequest
}

func (r *MonthlyReportRequest) Validate() error {
	if errs := r.PeriodRequest.validate(nil); len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReport struct {
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	GeneratedAt string              `json:"generated_at"`
	Employees   []AttendanceSummary `json:"employees"`
}

// ========================================
// DASHBOARD
// ========================================

type PersonalSummary struct {
	Month AttendanceSummary `json:"month"`
	Year  AttendanceSummary `json:"year"`
}

// TodayOverview counts people, not shifts. Absent staff have an unattended
// shift whose clock-in window has closed; awaiting staff can still clock in.
type TodayOverview struct {
	Date                 string `json:"date"`
	StaffCount           int    `json:"staff_count"`
	Scheduled            int    `json:"scheduled"`
	Present              int    `json:"present"`
	Late                 int    `json:"late"`
	Absent               int    `json:"absent"`
	AwaitingClockIn      int    `json:"awaiting_clock_in"`
	PendingLeaveRequests int    `json:"pending_leave_requests"`
}
