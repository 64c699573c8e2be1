package gateway

import "errors"

// Domain errors for the gateway package.
var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("gateway: already started")

	// ErrNotStarted is returned when an operation requires a running gateway.
	ErrNotStarted = errors.New("gateway: not started")

	// ErrThingNotFound is returned when a thing id cannot be resolved.
	ErrThingNotFound = errors.New("gateway: thing not found")

	// ErrRegistrationFailed is returned when the DevIoT server rejects a
	// registration announcement.
	ErrRegistrationFailed = errors.New("gateway: registration failed")
)
