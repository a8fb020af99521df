package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, name, email, role, annual_leave_balance, sick_leave_balance, emergency_leave_balance, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Role,
		&e.Balances.Annual,
		&e.Balances.Sick,
		&e.Balances.Emergency,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, name, email, role, annual_leave_balance, sick_leave_balance, emergency_leave_balance)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.Name,
		newEmployee.Email,
		newEmployee.Role,
		newEmployee.Balances.Annual,
		newEmployee.Balances.Sick,
		newEmployee.Balances.Emergency,
	))
	if err != nil {
		if database.HasCode(err, database.CodeUniqueViolation) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

func (r *employeeRepositoryImpl) get(ctx context.Context, query, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee %s: %w", id, err)
	}
	return e, nil
}

// ListByRoles implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByRoles(ctx context.Context, roles ...employee.Role) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE cardinality($1::text[]) = 0 OR role = ANY($1::text[])
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func balanceColumn(t leave.Type) (string, error) {
	switch t {
	case leave.TypeAnnual:
		return "annual_leave_balance", nil
	case leave.TypeSick:
		return "sick_leave_balance", nil
	case leave.TypeEmergency:
		return "emergency_leave_balance", nil
	}
	return "", leave.ErrUnknownLeaveType
}

// Deduct implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, t leave.Type, days int) error {
	q := GetQuerier(ctx, r.db)

	column, err := balanceColumn(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %[1]s = %[1]s - $2, updated_at = NOW()
		WHERE id = $1 AND %[1]s >= $2
	`, column)

	tag, err := q.Exec(ctx, query, employeeID, days)
	if err != nil {
		return fmt.Errorf("deduct %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// Set implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Set(ctx context.Context, employeeID string, t leave.Type, value int) error {
	q := GetQuerier(ctx, r.db)

	column, err := balanceColumn(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE employees SET %s = $2, updated_at = NOW() WHERE id = $1`, column)
	tag, err := q.Exec(ctx, query, employeeID, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
