package fixtures

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
)

// ==========================================
// DEFAULT STAFF
// ==========================================

// StaffMember is one seeded employee
type StaffMember struct {
	Name  string
	Email string
	Role  employee.Role
}

// DefaultStaff returns the demo roster: one owner, two admins and five
// shift workers, all with full leave balances.
func DefaultStaff() []StaffMember {
	return []StaffMember{
		{Name: "Olivia Owner", Email: "owner@example.com", Role: employee.RoleOwner},
		{Name: "Adi Admin", Email: "adi@example.com", Role: employee.RoleAdmin},
		{Name: "Ayu Admin", Email: "ayu@example.com", Role: employee.RoleAdmin},
		{Name: "Budi", Email: "budi@example.com", Role: employee.RoleEmployee},
		{Name: "Citra", Email: "citra@example.com", Role: employee.RoleEmployee},
		{Name: "Dewi", Email: "dewi@example.com", Role: employee.RoleEmployee},
		{Name: "Eko", Email: "eko@example.com", Role: employee.RoleEmployee},
		{Name: "Fajar", Email: "fajar@example.com", Role: employee.RoleEmployee},
	}
}

// SeededStaff maps seeded names to their employees
type SeededStaff map[string]employee.Employee

// ID returns the seeded employee ID for name, or "" when absent
func (s SeededStaff) ID(name string) string {
	return s[name].ID
}

// SeedStaff creates members through repo and returns them by name
func SeedStaff(ctx context.Context, repo employee.EmployeeRepository, members ...StaffMember) (SeededStaff, error) {
	if len(members) == 0 {
		members = DefaultStaff()
	}

	seeded := make(SeededStaff, len(members))
	for _, m := range members {
		created, err := repo.Create(ctx, employee.Employee{
			Name:     m.Name,
			Email:    m.Email,
			Role:     m.Role,
			Balances: employee.DefaultBalances(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", m.Name, err)
		}
		seeded[m.Name] = created
	}
	return seeded, nil
}
