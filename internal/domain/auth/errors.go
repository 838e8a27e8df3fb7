package auth

import "errors"

// Errors raised while resolving the caller of a request.
var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTokenExpired            = errors.New("token has expired")
	ErrMissingToken            = errors.New("missing token")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrEmployeeIdentityMissing = errors.New("token does not identify an employee")
)
