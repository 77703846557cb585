package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// ErrSessionCorrupt marks a persisted session that could not be decoded.
	// It is recovered by deleting the record and never reaches a client.
	ErrSessionCorrupt = errors.New("persisted session is corrupt")

	// ErrUnauthorizedRole is reported when an authenticated user asks for a
	// view their role may not open, or carries a role with no landing view.
	ErrUnauthorizedRole = errors.New("role not permitted for route")

	// ErrContextMisuse is raised when a handler reads the auth session
	// outside of the auth context middleware. It indicates a wiring bug.
	ErrContextMisuse = errors.New("auth session accessed outside of its provider")

	// ErrLoginSuperseded is returned by a login that completed after a
	// logout (or a newer login) invalidated it.
	ErrLoginSuperseded = errors.New("login superseded by a newer session change")

	ErrUserNotFound    = errors.New("user not found")
	ErrUnknownWidget   = errors.New("unknown widget")
	ErrUnknownMetric   = errors.New("unknown health metric")
	ErrDuplicateNotice = errors.New("notification already sent")
)
