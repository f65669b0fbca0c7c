package pipeline

import "errors"

var (
	// ErrMissingSuffix is returned before any file is touched when
	// decrypting without an output override and an input name lacks the
	// reserved suffix.
	ErrMissingSuffix = errors.New("input file does not end with " + Suffix)
	// ErrAmbiguousOutputName is returned when stripping the reserved
	// suffix would leave an empty output name.
	ErrAmbiguousOutputName = errors.New("stripping " + Suffix + " leaves an empty name; specify an output file")
	// ErrPathConflict is returned when the output target already exists as
	// a regular file or is a directory.
	ErrPathConflict = errors.New("output path conflict")
)
