//go:build unix

package secure

import (
	"golang.org/x/sys/unix"
)

// lockMemory pins b into RAM so secret bytes are not written to swap.
func lockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	return unix.Mlock(b)
}

func unlockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	return unix.Munlock(b)
}
