package pipeline

import (
	"strings"
)

// Suffix is the reserved filename suffix marking encrypted output:
// appended when encrypting, stripped when decrypting.
const Suffix = ".aes"

// Stdio is the filename sentinel for standard input/output.
const Stdio = "-"

// HasSuffix reports whether name carries the reserved suffix,
// case-insensitively.
func HasSuffix(name string) bool {
	if len(name) < len(Suffix) {
		return false
	}

	return strings.EqualFold(name[len(name)-len(Suffix):], Suffix)
}

// outputName derives the output filename for input. Encrypting appends the
// reserved suffix; decrypting strips it. Stripping a name that consists of
// nothing but the suffix would leave an empty name, which is an error the
// caller maps to ErrAmbiguousOutputName.
func outputName(input string, decrypt bool) (string, error) {
	if !decrypt {
		return input + Suffix, nil
	}

	if !HasSuffix(input) {
		return "", ErrMissingSuffix
	}

	stripped := input[:len(input)-len(Suffix)]
	if stripped == "" {
		return "", ErrAmbiguousOutputName
	}

	return stripped, nil
}
