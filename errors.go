package visitgate

import (
	"errors"

	"github.com/viant/visitgate/service/approval"
)

var (
	// ErrUnknownAuthority is returned when an operation targets an authority
	// outside the current matched set.
	ErrUnknownAuthority = approval.ErrUnknownAuthority

	// ErrResolved is returned for decisions made after a terminal outcome.
	ErrResolved = approval.ErrResolved

	// ErrFallbackUnavailable is returned when a fallback action is used while
	// authorities match the purpose, or before any purpose is set.
	ErrFallbackUnavailable = errors.New("visitgate: fallback unavailable")

	// ErrNoDialer is returned by Call when no dialer is configured.
	ErrNoDialer = errors.New("visitgate: no dialer configured")

	// ErrClosed is returned by operations on a closed widget.
	ErrClosed = errors.New("visitgate: widget closed")
)
