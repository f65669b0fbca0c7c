package engine

import "errors"

var (
	// ErrInvalidFormat is returned when the input stream does not carry a
	// recognizable header or is truncated.
	ErrInvalidFormat = errors.New("unrecognized or corrupt stream")
	// ErrAuthentication is returned when the integrity trailer does not
	// verify, meaning a wrong password or corrupted data.
	ErrAuthentication = errors.New("message authentication failed (wrong password or corrupted data)")
	// ErrIterationRange is returned when a stored iteration count falls
	// outside the supported bounds.
	ErrIterationRange = errors.New("iteration count out of range")
)
