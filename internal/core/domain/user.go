package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSales      = "sales"
	RoleWarehouse  = "warehouse"
	RoleAccountant = "accountant"
)

// ValidRole reports whether name belongs to the closed role vocabulary.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleManager, RoleSales, RoleWarehouse, RoleAccountant:
		return true
	}
	return false
}

// User models an account in the user store. PasswordHash never leaves the
// backend: it is excluded from JSON and stripped before a Principal is built.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	Active       bool              `json:"active"`
	Locked       bool              `json:"locked"`
	LockUntil    time.Time         `json:"lock_until,omitempty"`
	FailedLogins int               `json:"-"`
	Permissions  []PermissionEntry `json:"permissions,omitempty"`
	PasswordHash string            `json:"-"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// IsLocked reports whether the account is locked at the given instant.
// A set Locked flag is a hard lock; LockUntil is a time-bound lock that
// expires on its own.
func (u *User) IsLocked(now time.Time) bool {
	if u.Locked {
		return true
	}
	return !u.LockUntil.IsZero() && now.Before(u.LockUntil)
}

// Role is a named permission baseline. Inactive roles contribute nothing:
// permission resolution treats them as absent.
type Role struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Active      bool              `json:"active"`
	Permissions []PermissionEntry `json:"permissions"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Principal is the authenticated actor attached to a request after the full
// verify→load→resolve pipeline. It carries the effective permission set and
// deliberately omits credential material.
type Principal struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Role        string        `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

// IsAdmin reports whether the principal bypasses permission and ownership
// checks. The bypass is deliberately universal across all gates.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
