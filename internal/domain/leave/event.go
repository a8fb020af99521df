package leave

import "context"

// ReassignmentNeeded is raised when an approval removes assigned shifts
// that a supervisor must re-staff.
type ReassignmentNeeded struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	From         string `json:"from"`
	To           string `json:"to"`
	Count        int    `json:"count"`
	ApproverID   string `json:"-"`
}

// DecisionMade is raised after a leave request leaves Pending.
type DecisionMade struct {
	RequestID     string
	EmployeeID    string
	EmployeeName  string
	EmployeeEmail string
	Type          Type
	StartDate     string
	EndDate       string
	Status        Status
	DecidedBy     string
}

// Notifier delivers leave events outside the transaction. Delivery is best-effort.
type Notifier interface {
	LeaveDecided(ctx context.Context, event DecisionMade) error
	ReassignmentNeeded(ctx context.Context, event ReassignmentNeeded) error
}
