package keymat

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// Key-file sizes in octets. Each octet carries 6 bits of entropy, so the
// minimum of 43 yields just over 256 bits; the default of 64 yields 384.
const (
	MinKeyFileSize     = 43
	DefaultKeyFileSize = 64
	MaxKeyFileSize     = 4096
)

// keyAlphabet maps 6-bit values to printable key characters.
var keyAlphabet = [64]byte{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H',
	'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P',
	'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X',
	'Y', 'Z', 'a', 'b', 'c', 'd', 'e', 'f',
	'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n',
	'o', 'p', 'q', 'r', 's', 't', 'u', 'v',
	'w', 'x', 'y', 'z', '0', '1', '2', '3',
	'4', '5', '6', '7', '8', '9', '_', '+',
}

// GenerateKeyFile writes size random printable key octets to the named
// file, or to stdout when path is "-". An existing regular file is never
// overwritten, and a partially written key file is removed on failure.
func GenerateKeyFile(path string, size int, log *logging.Logger) (err error) {
	if size <= 0 {
		return fmt.Errorf("key size must be positive, got %d", size)
	}

	log.Infof("generating %d-octet key file", size)

	key := make([]byte, size)
	defer secure.Zero(key)

	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("generating random key data: %w", err)
	}

	for i, v := range key {
		key[i] = keyAlphabet[v&0x3f]
	}

	if path == "-" {
		if _, err := os.Stdout.Write(key); err != nil {
			return fmt.Errorf("writing key data: %w", err)
		}

		return nil
	}

	if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
		return fmt.Errorf("key file already exists: %q", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file %q: %w", path, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing key file: %w", closeErr)
		}

		if err != nil {
			if removeErr := os.Remove(path); removeErr != nil {
				log.Errorf("unable to remove key file %q: %v", path, removeErr)
			}
		}
	}()

	if _, err = file.Write(key); err != nil {
		return fmt.Errorf("writing key data: %w", err)
	}

	log.Infof("key file generated")

	return nil
}
