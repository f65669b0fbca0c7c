package keymat

import "errors"

var (
	// ErrInvalidEncoding is returned when password or key bytes are not
	// valid non-empty UTF-8.
	ErrInvalidEncoding = errors.New("key material is not valid UTF-8")
	// ErrMalformedKeyFile is returned when a UTF-16 key file has an odd
	// byte count or is too short to hold anything beyond its byte-order mark.
	ErrMalformedKeyFile = errors.New("malformed key file")
	// ErrConversionFailed is returned when UTF-16 to UTF-8 conversion
	// produced no output.
	ErrConversionFailed = errors.New("key text conversion produced no output")
	// ErrNoInput is returned when the interactive prompt read an empty line.
	ErrNoInput = errors.New("no password was entered")
	// ErrMismatch is returned when the two entries of a verified prompt differ.
	ErrMismatch = errors.New("passwords entered do not match")
)
