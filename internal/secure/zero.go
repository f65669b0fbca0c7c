package secure

import (
	"crypto/subtle"
)

// Zero overwrites b with zeros. The subtle call keeps the compiler from
// optimizing the loop away.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}

	for i := range b {
		b[i] = 0
	}

	_ = subtle.ConstantTimeCompare(b, make([]byte, len(b)))
}

// Compare reports whether a and b are equal, in constant time.
func Compare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
