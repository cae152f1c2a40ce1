package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrSessionMissing         = errors.New("no authenticated session")
	ErrAgencyRequired         = errors.New("session is not bound to an agency")
	ErrInsufficientPermission = errors.New("insufficient permissions")
)
