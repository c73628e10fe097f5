package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("admin role required")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrMalformedUsers     = errors.New("malformed user list")
)
