package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx       database.TxManager
	clock    clock.Clock
	policy   leave.Policy
	notifier leave.Notifier
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
}

func toResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		Type:               r.Type,
		StartDate:          clock.DateKey(r.StartDate),
		EndDate:            clock.DateKey(r.EndDate),
		Days:               r.Days(),
		Status:             r.Status.String(),
		StatusCode:         r.Status,
		Remark:             r.Remark,
		SupportingDocument: r.SupportingDocument,
		DecidedBy:          r.DecidedBy,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func toBalanceResponse(emp employee.Employee) leave.BalanceResponse {
	item := func(t leave.Type) leave.BalanceItem {
		return leave.BalanceItem{
			Remaining: leave.BalanceFor(emp.Balances, t),
			Max:       leave.MaxBalance(t),
		}
	}
	return leave.BalanceResponse{
		EmployeeID: emp.ID,
		Annual:     item(leave.TypeAnnual),
		Sick:       item(leave.TypeSick),
		Emergency:  item(leave.TypeEmergency),
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := l.clock.Now()
	loc := now.Location()
	today := clock.DateOf(now)

	leaveType, err := leave.ParseType(req.Type)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	start, err := clock.ParseDate(req.StartDate, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	end := start
	if req.EndDate != "" {
		if end, err = clock.ParseDate(req.EndDate, loc); err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end_date: %w", err)
		}
	}
	days := leave.DayCount(start, end)

	if start.Before(today) {
		return leave.LeaveRequestResponse{}, leave.ErrPastDate
	}
	if leaveType == leave.TypeAnnual {
		if clock.DaysBetween(today, start) < l.policy.AnnualNoticeDays {
			return leave.LeaveRequestResponse{}, leave.ErrAdvanceNotice
		}
		if days > l.policy.AnnualMaxDays {
			return leave.LeaveRequestResponse{}, leave.ErrMaxDuration
		}
	}
	if leaveType.RequiresDocument() && !req.HasDocument() {
		return leave.LeaveRequestResponse{}, leave.ErrMissingDocument
	}

	var created leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := l.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		overlap, err := l.LeaveRequestRepository.HasOverlap(ctx, emp.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check leave overlap: %w", err)
		}
		if overlap {
			return leave.ErrOverlap
		}

		if leave.BalanceFor(emp.Balances, leaveType) < days {
			return leave.ErrInsufficientBalance
		}

		var document *string
		if req.HasDocument() {
			document = req.SupportingDocument
		}
		created, err = l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID:         emp.ID,
			Type:               leaveType,
			StartDate:          start,
			EndDate:            end,
			Status:             leave.StatusPending,
			Remark:             req.Remark,
			SupportingDocument: document,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toResponse(created), nil
}

// Decide implements leave.LeaveService.
func (l *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.DecideLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.DecideLeaveResponse{}, err
	}
	now := l.clock.Now()

	var (
		decided      leave.LeaveRequest
		requester    employee.Employee
		reassignment *leave.ReassignmentNeeded
	)
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		reassignment = nil

		approver, err := l.EmployeeRepository.GetByID(ctx, req.ApproverID)
		if err != nil {
			return err
		}

		request, err := l.LeaveRequestRepository.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request.EmployeeID == approver.ID || !approver.Role.Decides(request.EmployeeRole) {
			return leave.ErrUnauthorized
		}
		if request.Status != leave.StatusPending {
			return leave.ErrNotPending
		}

		requester, err = l.EmployeeRepository.GetByIDForUpdate(ctx, request.EmployeeID)
		if err != nil {
			return err
		}

		status := leave.StatusRejected
		if req.Decision == leave.DecisionApprove {
			status = leave.StatusApproved

			if err := l.LeaveBalanceRepository.Deduct(ctx, requester.ID, request.Type, request.Days()); err != nil {
				return err
			}

			if request.Type.CancelsSchedule() {
				count, err := l.ScheduleRepository.DeleteByEmployeeInRange(ctx, requester.ID, request.StartDate, request.EndDate)
				if err != nil {
					return fmt.Errorf("failed to cancel schedules: %w", err)
				}
				if count > 0 {
					reassignment = &leave.ReassignmentNeeded{
						EmployeeID:   requester.ID,
						EmployeeName: requester.Name,
						From:         clock.DateKey(request.StartDate),
						To:           clock.DateKey(request.EndDate),
						Count:        count,
						ApproverID:   approver.ID,
					}
				}
			}
		}

		if err := l.LeaveRequestRepository.UpdateStatus(ctx, request.ID, status, approver.ID, now); err != nil {
			return err
		}

		decided = request
		decided.Status = status
		decided.DecidedBy = &approver.ID
		decided.DecidedAt = &now
		return nil
	})
	if err != nil {
		return leave.DecideLeaveResponse{}, err
	}

	l.notify(ctx, decided, requester, reassignment)

	return leave.DecideLeaveResponse{
		Request:            toResponse(decided),
		ReassignmentNeeded: reassignment,
	}, nil
}

// notify runs after commit. Failures are logged and never undo the decision.
func (l *LeaveServiceImpl) notify(ctx context.Context, decided leave.LeaveRequest, requester employee.Employee, reassignment *leave.ReassignmentNeeded) {
	if l.notifier == nil {
		return
	}

	event := leave.DecisionMade{
		RequestID:     decided.ID,
		EmployeeID:    requester.ID,
		EmployeeName:  requester.Name,
		EmployeeEmail: requester.Email,
		Type:          decided.Type,
		StartDate:     clock.DateKey(decided.StartDate),
		EndDate:       clock.DateKey(decided.EndDate),
		Status:        decided.Status,
		DecidedBy:     *decided.DecidedBy,
	}
	if err := l.notifier.LeaveDecided(ctx, event); err != nil {
		slog.Warn("Failed to notify leave decision", "request_id", decided.ID, "error", err)
	}

	if reassignment != nil {
		if err := l.notifier.ReassignmentNeeded(ctx, *reassignment); err != nil {
			slog.Warn("Failed to notify reassignment", "employee_id", reassignment.EmployeeID, "error", err)
		}
	}
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, viewerID, id string) (leave.LeaveRequestResponse, error) {
	viewer, err := l.EmployeeRepository.GetByID(ctx, viewerID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.EmployeeID != viewer.ID && !viewer.Role.Decides(request.EmployeeRole) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}
	return toResponse(request), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, req leave.ListLeaveRequest) ([]leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	viewer, err := l.EmployeeRepository.GetByID(ctx, req.ViewerID)
	if err != nil {
		return nil, err
	}

	var filter leave.LeaveRequestFilter
	switch viewer.Role {
	case employee.RoleOwner:
		filter.RequesterRoles = []employee.Role{employee.RoleAdmin}
		filter.IncludeEmployeeID = &viewer.ID
	case employee.RoleAdmin:
		filter.RequesterRoles = []employee.Role{employee.RoleEmployee}
		filter.IncludeEmployeeID = &viewer.ID
	case employee.RoleEmployee:
		filter.EmployeeID = &viewer.ID
	}
	if req.Status != nil {
		status := leave.Status(*req.Status)
		filter.Status = &status
	}

	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return responses, nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return toBalanceResponse(emp), nil
}

// AdjustBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}
	leaveType, err := leave.ParseType(req.Type)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	var updated employee.Employee
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		actor, err := l.EmployeeRepository.GetByID(ctx, req.ActorID)
		if err != nil {
			return err
		}

		target, err := l.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !actor.Role.Decides(target.Role) {
			return leave.ErrUnauthorized
		}

		value := leave.Restore(leave.BalanceFor(target.Balances, leaveType), leaveType, req.Days)
		if err := l.LeaveBalanceRepository.Set(ctx, target.ID, leaveType, value); err != nil {
			return fmt.Errorf("failed to set balance: %w", err)
		}

		target.Balances = leave.WithBalance(target.Balances, leaveType, value)
		updated = target
		return nil
	})
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	slog.Info("Leave balance adjusted",
		"actor_id", req.ActorID, "employee_id", updated.ID, "leave_type", leaveType, "days", req.Days)
	return toBalanceResponse(updated), nil
}

func NewLeaveService(
	tx database.TxManager,
	clk clock.Clock,
	policy leave.Policy,
	notifier leave.Notifier,
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		clock:                  clk,
		policy:                 policy,
		notifier:               notifier,
		LeaveRequestRepository: leaveRequestRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		EmployeeRepository:     employeeRepo,
		ScheduleRepository:     scheduleRepo,
	}
}
