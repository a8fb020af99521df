package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

// withEmployee must run under s.mu.
func (r *leaveRequestRepository) withEmployee(req leave.LeaveRequest) leave.LeaveRequest {
	if emp, ok := r.s.employees[req.EmployeeID]; ok {
		req.EmployeeName = emp.Name
		req.EmployeeRole = emp.Role
	}
	return req
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	request.ID = uuid.NewString()
	now := time.Now()
	request.CreatedAt, request.UpdatedAt = now, now
	r.s.leaveRequests[request.ID] = request
	return r.withEmployee(request), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withEmployee(req), nil
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.leaveRequests {
		req = r.withEmployee(req)
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if len(filter.RequesterRoles) > 0 && !slices.Contains(filter.RequesterRoles, req.EmployeeRole) {
			own := filter.IncludeEmployeeID != nil && req.EmployeeID == *filter.IncludeEmployeeID
			if !own {
				continue
			}
		}
		result = append(result, req)
	}
	slices.SortFunc(result, func(a, b leave.LeaveRequest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.leaveRequests {
		if req.EmployeeID != employeeID || !req.Status.Blocking() {
			continue
		}
		if leave.Overlaps(start, end, req.StartDate, req.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) HasApprovedOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.leaveRequests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved && req.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.leaveRequests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.ErrNotPending
	}
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &decidedAt
	req.UpdatedAt = time.Now()
	r.s.leaveRequests[id] = req
	return nil
}
