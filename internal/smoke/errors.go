package smoke

import "errors"

var (
	// ErrUnexpectedStatus is returned when the service answers with a status
	// the flow did not expect.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrInvariant is returned when served standings are inconsistent.
	ErrInvariant = errors.New("standings invariant violated")
	// ErrMismatch is returned when state differs from what an operation promised.
	ErrMismatch = errors.New("state mismatch")
)
