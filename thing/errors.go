package thing

import "errors"

// Domain errors for the thing package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, thing.ErrActionNotFound) {
//	    // handle unknown action
//	}
var (
	// ErrActionNotFound is returned by CallAction when no registered Action
	// matches the requested name.
	ErrActionNotFound = errors.New("thing: action not found")

	// ErrHandlerNotFound is returned by CallAction when an Action is declared
	// but no implementation handler was registered for its name.
	ErrHandlerNotFound = errors.New("thing: action handler not found")
)
