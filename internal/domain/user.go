package domain

import "time"

// Role is the authorization tier assigned to a dashboard user.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// AdminTier reports whether the role grants admin-level access.
func (r Role) AdminTier() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the domain model for dashboard accounts. Accounts are never
// physically deleted; deactivation flips IsActive.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	TeamID       *int64
	IsActive     bool
	ProfileColor *string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
