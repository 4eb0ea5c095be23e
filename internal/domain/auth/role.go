package auth

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Capabilities is the per-request permission set derived from a role, so
// handlers branch on explicit flags instead of comparing role strings.
type Capabilities struct {
	CanEditAll        bool
	CanEditStatusNote bool
	CanDelete         bool
}

func (r Role) Capabilities() Capabilities {
	switch r {
	case RoleAdmin:
		return Capabilities{CanEditAll: true, CanEditStatusNote: true, CanDelete: true}
	case RoleStaff:
		return Capabilities{CanEditStatusNote: true}
	default:
		return Capabilities{}
	}
}
