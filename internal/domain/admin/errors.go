package admin

import "errors"

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password required")
	ErrUserSessionActive  = errors.New("user session active")
	ErrLockedOut          = errors.New("too many attempts")
)
