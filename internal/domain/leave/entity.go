package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
)

type Type string

const (
	TypeAnnual    Type = "Annual Leave"
	TypeSick      Type = "Sick Leave"
	TypeEmergency Type = "Emergency Leave"
)

var AllTypes = []Type{TypeAnnual, TypeSick, TypeEmergency}

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAnnual, TypeSick, TypeEmergency:
		return Type(s), nil
	}
	return "", ErrUnknownLeaveType
}

// RequiresDocument reports whether a supporting document must accompany the request.
func (t Type) RequiresDocument() bool {
	return t == TypeSick || t == TypeEmergency
}

// CancelsSchedule reports whether approval removes the schedule entries in range.
func (t Type) CancelsSchedule() bool {
	return t == TypeSick || t == TypeEmergency
}

type Status int

const (
	StatusPending  Status = 0
	StatusApproved Status = 1
	StatusRejected Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Blocking reports whether a request in this status reserves its dates.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusApproved
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID                 string
	EmployeeID         string
	Type               Type
	StartDate          time.Time
	EndDate            time.Time
	Status             Status
	Remark             string
	SupportingDocument *string
	DecidedBy          *string
	DecidedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined
	EmployeeName string
	EmployeeRole employee.Role
}

// Days is the inclusive day count of the request.
func (r LeaveRequest) Days() int {
	return DayCount(r.StartDate, r.EndDate)
}

// Covers reports whether date falls inside the request's range.
func (r LeaveRequest) Covers(date time.Time) bool {
	key := clock.DateKey(date)
	return clock.DateKey(r.StartDate) <= key && key <= clock.DateKey(r.EndDate)
}
