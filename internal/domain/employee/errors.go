package employee

import "github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.NotFound("employee_not_found", "Employee not found")
	ErrUnknownRole      = apperror.Validation("unknown_role", "Role must be employee, admin or owner")
	ErrEmailExists      = apperror.Policy("email_exists", "Email already registered")
)
