package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/google/uuid"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if strings.EqualFold(e.Email, newEmployee.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	if newEmployee.ID == "" {
		newEmployee.ID = uuid.NewString()
	}
	now := time.Now()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.s.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// GetByIDForUpdate needs no row lock; transactions already run one at a time.
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *employeeRepository) ListByRoles(ctx context.Context, roles ...employee.Role) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]employee.Employee, 0)
	for _, e := range r.s.employees {
		if len(roles) == 0 || slices.Contains(roles, e.Role) {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, func(a, b employee.Employee) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

type leaveBalanceRepository struct {
	s *Store
}

func NewLeaveBalanceRepository(s *Store) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{s: s}
}

func (r *leaveBalanceRepository) Deduct(ctx context.Context, employeeID string, t leave.Type, days int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	balance := leave.BalanceFor(e.Balances, t)
	if balance < days {
		return leave.ErrInsufficientBalance
	}
	e.Balances = leave.WithBalance(e.Balances, t, balance-days)
	e.UpdatedAt = time.Now()
	r.s.employees[employeeID] = e
	return nil
}

func (r *leaveBalanceRepository) Set(ctx context.Context, employeeID string, t leave.Type, value int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Balances = leave.WithBalance(e.Balances, t, value)
	e.UpdatedAt = time.Now()
	r.s.employees[employeeID] = e
	return nil
}
