package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the employee row for the rest of the
	// transaction; per-employee operations serialize on it.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	ListByRoles(ctx context.Context, roles ...Role) ([]Employee, error)
}
