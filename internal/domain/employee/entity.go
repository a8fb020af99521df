package employee

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Business owner - decides supervisor leave
	RoleAdmin    Role = "admin"    // Supervisor - runs rosters, decides staff leave
	RoleEmployee Role = "employee" // Rank-and-file shift worker
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleEmployee:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// IsSupervisor reports whether the role manages rosters and staff.
func (r Role) IsSupervisor() bool {
	switch r {
	case RoleAdmin, RoleOwner:
		return true
	case RoleEmployee:
		return false
	}
	return false
}

// Decides reports whether r may approve or reject leave filed by subject:
// owners decide for admins, admins decide for employees.
func (r Role) Decides(subject Role) bool {
	switch r {
	case RoleOwner:
		return subject == RoleAdmin
	case RoleAdmin:
		return subject == RoleEmployee
	case RoleEmployee:
		return false
	}
	return false
}

// Balances are remaining leave days per leave type.
type Balances struct {
	Annual    int
	Sick      int
	Emergency int
}

// Policy maxima; also the balances a new employee starts with.
const (
	MaxAnnualBalance    = 14
	MaxSickBalance      = 14
	MaxEmergencyBalance = 7
)

func DefaultBalances() Balances {
	return Balances{
		Annual:    MaxAnnualBalance,
		Sick:      MaxSickBalance,
		Emergency: MaxEmergencyBalance,
	}
}

type Employee struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Balances  Balances
	CreatedAt time.Time
	UpdatedAt time.Time
}
