package domain

import (
	"errors"
	"fmt"
)

// Machine-readable codes surfaced in the failure envelope. Clients branch on
// these; the accompanying messages are written for end users.
const (
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenError         = "TOKEN_ERROR"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
)

// Authentication failures (401). Each maps to a distinct code so clients can
// tell "log in again" from "session expired" from "account problem".
var (
	ErrNoToken            = errors.New("authentication required, please login")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrTokenExpired       = errors.New("session expired, please login again")
	ErrTokenError         = errors.New("token verification failed")
	ErrUserNotFound       = errors.New("user account not found")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrNotAuthenticated   = errors.New("please login first")
	ErrInvalidAPIKey      = errors.New("invalid or missing API key")
)

// Login subsystem failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("an account with this email already exists")
)

// Authorization and throttling failures.
var (
	ErrNotOwner         = errors.New("you do not have access to this resource")
	ErrResourceNotFound = errors.New("resource not found")
	ErrRateLimited      = errors.New("too many attempts, please try again later")
)

// RoleDeniedError is returned when the principal's role is not on a route's
// allow-list. The message names the offending role.
type RoleDeniedError struct {
	Role string
}

func (e *RoleDeniedError) Error() string {
	return fmt.Sprintf("role %q is not allowed to access this resource", e.Role)
}

// PermissionDeniedError is returned when the effective permission set does not
// grant the required action on a module.
type PermissionDeniedError struct {
	Module string
	Action string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("you do not have %q permission on %q", e.Action, e.Module)
}
