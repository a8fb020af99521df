package leave

import (
	"strings"

	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID         string  `json:"-"`
	Type               string  `json:"leave_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date,omitempty"`
	Remark             string  `json:"remark"`
	SupportingDocument *string `json:"supporting_document,omitempty"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, err := ParseType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: Annual Leave, Sick Leave, Emergency Leave",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsEmpty(r.EndDate) {
		end, endOK := validator.IsValidDate(r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(r.Remark) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "remark",
			Message: "remark must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HasDocument reports whether a non-blank document reference was supplied.
func (r *SubmitLeaveRequest) HasDocument() bool {
	return r.SupportingDocument != nil && strings.TrimSpace(*r.SupportingDocument) != ""
}

type DecideLeaveRequest struct {
	RequestID  string   `json:"-"`
	ApproverID string   `json:"-"`
	Decision   Decision `json:"decision"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}
	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLeaveRequest struct {
	ViewerID string
	Status   *int
}

func (r *ListLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ViewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "viewer_id",
			Message: "viewer_id is required",
		})
	}
	if r.Status != nil && (*r.Status < int(StatusPending) || *r.Status > int(StatusRejected)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be 0, 1 or 2",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustBalanceRequest struct {
	ActorID    string `json:"-"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"leave_type"`
	Days       int    `json:"days"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := ParseType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: Annual Leave, Sick Leave, Emergency Leave",
		})
	}
	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	Type               Type    `json:"leave_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Days               int     `json:"days"`
	Status             string  `json:"status"`
	StatusCode         Status  `json:"status_code"`
	Remark             string  `json:"remark"`
	SupportingDocument *string `json:"supporting_document,omitempty"`
	DecidedBy          *string `json:"decided_by,omitempty"`
	DecidedAt          *string `json:"decided_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

type DecideLeaveResponse struct {
	Request            LeaveRequestResponse `json:"request"`
	ReassignmentNeeded *ReassignmentNeeded  `json:"reassignment_needed,omitempty"`
}

type BalanceItem struct {
	Remaining int `json:"remaining"`
	Max       int `json:"max"`
}

type BalanceResponse struct {
	EmployeeID string      `json:"employee_id"`
	Annual     BalanceItem `json:"annual"`
	Sick       BalanceItem `json:"sick"`
	Emergency  BalanceItem `json:"emergency"`
}
