//go:build windows

package secure

// Memory locking is not implemented on Windows; zeroization still applies.
func lockMemory(_ []byte) error {
	return nil
}

func unlockMemory(_ []byte) error {
	return nil
}
