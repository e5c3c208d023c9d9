package approval

import "errors"

var (
	// ErrUnknownAuthority is returned when a decision targets an id outside
	// the current matched set.
	ErrUnknownAuthority = errors.New("approval: unknown authority")

	// ErrResolved is returned for decisions made after a terminal outcome.
	ErrResolved = errors.New("approval: already resolved")
)
