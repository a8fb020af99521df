package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.status, lr.remark,
		   lr.supporting_document, lr.decided_by, lr.decided_at, lr.created_at, lr.updated_at,
		   e.name, e.role
	FROM leave_requests lr
	INNER JOIN employees e ON lr.employee_id = e.id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.Remark,
		&lr.SupportingDocument,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.EmployeeRole,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, status, remark, supporting_document)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id string
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Status,
		request.Remark,
		request.SupportingDocument,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id)
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, leaveRequestSelect+` WHERE lr.id = $1 FOR UPDATE OF lr`, id)
}

func (r *leaveRequestRepositoryImpl) get(ctx context.Context, query, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("get leave request %s: %w", id, err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EmployeeID != nil {
		conditions = append(conditions, "lr.employee_id = "+next(*filter.EmployeeID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "lr.status = "+next(*filter.Status))
	}
	if len(filter.RequesterRoles) > 0 {
		roles := make([]string, len(filter.RequesterRoles))
		for i, role := range filter.RequesterRoles {
			roles[i] = string(role)
		}
		scope := "e.role = ANY(" + next(roles) + "::text[])"
		if filter.IncludeEmployeeID != nil {
			scope = "(" + scope + " OR lr.employee_id = " + next(*filter.IncludeEmployeeID) + ")"
		}
		conditions = append(conditions, scope)
	}

	query := leaveRequestSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
				AND status IN ($4, $5)
				AND start_date <= $3
				AND end_date >= $2
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end, leave.StatusPending, leave.StatusApproved).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check leave overlap: %w", err)
	}
	return exists, nil
}

// HasApprovedOn implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasApprovedOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status = $3 AND $2 BETWEEN start_date AND end_date
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, leave.StatusApproved).Scan(&exists); err != nil {
		return false, fmt.Errorf("check approved leave: %w", err)
	}
	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`, id, status, decidedBy, decidedAt, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrNotPending
	}
	return nil
}
