package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrCompanyNotFound    = errors.New("company not found or invalid API key")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists for this company")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrDuplicateVote      = errors.New("user already voted on this post")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrSubdomainTaken     = errors.New("subdomain already in use")
)
