package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
)

type LeaveRequestFilter struct {
	// EmployeeID restricts to one requester.
	EmployeeID *string
	// RequesterRoles restricts to requesters holding one of these roles.
	RequesterRoles []employee.Role
	// IncludeEmployeeID adds this requester's own requests to a role-scoped listing.
	IncludeEmployeeID *string
	Status            *Status
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// HasOverlap reports a Pending or Approved request of the employee colliding with [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// HasApprovedOn reports an Approved request of the employee covering date.
	HasApprovedOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// UpdateStatus moves a Pending request to status. Returns ErrNotPending
	// when the request is no longer Pending.
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time) error
}

// LeaveBalanceRepository - interface for the balance columns on employees
type LeaveBalanceRepository interface {
	// Deduct debits days from the balance for t only when enough remains.
	// Returns ErrInsufficientBalance otherwise.
	Deduct(ctx context.Context, employeeID string, t Type, days int) error
	Set(ctx context.Context, employeeID string, t Type, value int) error
}
