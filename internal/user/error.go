package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidTier        = errors.New("invalid membership tier")
)

// Postgres unique violation, checked via pq error codes.
const PgUniqueViolation = "23505"
