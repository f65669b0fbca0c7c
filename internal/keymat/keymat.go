// Package keymat acquires the UTF-8 password bytes handed to the transform
// engine, from a direct password argument, a key file, or an interactive
// terminal prompt. All three paths either return non-empty valid UTF-8 in a
// secure buffer or fail with a specific reason, leaving no secret material
// in intermediate storage.
package keymat

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// Encoding describes how a key file's bytes were interpreted, determined
// once from the leading byte-order mark.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
)

// DetectEncoding inspects the first bytes of data for a UTF-16 byte-order
// mark. Anything else is treated as UTF-8.
func DetectEncoding(data []byte) Encoding {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			return EncodingUTF16LE
		case data[0] == 0xFE && data[1] == 0xFF:
			return EncodingUTF16BE
		}
	}

	return EncodingUTF8
}

// FromPassword validates a password supplied directly on the command line.
func FromPassword(text string) (*secure.Buffer, error) {
	if len(text) == 0 || !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}

	return secure.NewBuffer([]byte(text)), nil
}

// FromKeyFile reads the named key file ("-" means stdin) and returns its
// key as UTF-8 password bytes. UTF-8 files are truncated at the first NUL,
// CR, or LF; UTF-16 files are identified by their byte-order mark and
// converted.
func FromKeyFile(path string, log *logging.Logger) (*secure.Buffer, error) {
	var (
		data []byte
		err  error
	)

	log.Infof("reading key file %q", path)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is user-provided by design
	}

	if err != nil {
		return nil, fmt.Errorf("reading key file %q: %w", path, err)
	}

	buf, err := fromKeyBytes(data)

	secure.Zero(data)

	if err != nil {
		return nil, err
	}

	return buf, nil
}

// fromKeyBytes interprets raw key-file content according to its detected
// encoding. The caller zeroes data.
func fromKeyBytes(data []byte) (*secure.Buffer, error) {
	encoding := DetectEncoding(data)

	if encoding == EncodingUTF8 {
		key := data

		// The key ends at the first NUL, CR, or LF; anything after is
		// metadata or line-ending noise.
		for i, b := range key {
			if b == 0 || b == '\r' || b == '\n' {
				key = key[:i]

				break
			}
		}

		if len(key) == 0 || !utf8.Valid(key) {
			return nil, ErrInvalidEncoding
		}

		owned := make([]byte, len(key))
		copy(owned, key)

		return secure.NewBuffer(owned), nil
	}

	// UTF-16 content must pair up into code units, and must hold at least
	// one code unit beyond the two-byte mark.
	if len(data)%2 != 0 || len(data) < 4 {
		return nil, ErrMalformedKeyFile
	}

	endian := unicode.LittleEndian
	if encoding == EncodingUTF16BE {
		endian = unicode.BigEndian
	}

	decoder := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()

	converted, err := decoder.Bytes(data[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	if len(converted) == 0 {
		return nil, ErrConversionFailed
	}

	return secure.NewBuffer(converted), nil
}
