package employee

import (
	"database/sql/driver"
	"fmt"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"
)

// Role is closed: an employee is either a regular Employee or a Manager.
type Role int

const (
	RoleEmployee Role = iota + 1
	RoleManager
)

var AllRoles = []Role{RoleEmployee, RoleManager}

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleManager:
		return "Manager"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager:
		return true
	default:
		return false
	}
}

// CanDecide reports whether the role may approve or reject leave requests.
func (r Role) CanDecide() bool {
	switch r {
	case RoleManager:
		return true
	default:
		return false
	}
}

// ParseRole accepts the role name in any letter case.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EMPLOYEE":
		return RoleEmployee, nil
	case "MANAGER":
		return RoleManager, nil
	default:
		return 0, fmt.Errorf("%w: %q", employeeerrors.ErrInvalidRole, s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role by name.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
}
