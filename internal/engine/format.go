package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	formatMagic   = "AECR"
	formatVersion = byte(1)

	saltSize    = 16
	ivSize      = 16
	trailerSize = sha256.Size

	derivedKeySize = 64 // 32 bytes cipher key + 32 bytes MAC key

	// Extension fields are length-prefixed with 16-bit values, which also
	// bounds their size.
	maxExtensionField = 1<<16 - 1
)

// encodeHeader serializes the fixed header and extension block.
func encodeHeader(extensions []Extension) ([]byte, error) {
	if len(extensions) > maxExtensionField {
		return nil, fmt.Errorf("%w: too many extensions", ErrInvalidFormat)
	}

	header := make([]byte, 0, len(formatMagic)+3)
	header = append(header, formatMagic...)
	header = append(header, formatVersion)
	header = binary.BigEndian.AppendUint16(header, uint16(len(extensions)))

	for _, ext := range extensions {
		if len(ext.Name) > maxExtensionField || len(ext.Value) > maxExtensionField {
			return nil, fmt.Errorf("%w: extension %q too large", ErrInvalidFormat, ext.Name)
		}

		header = binary.BigEndian.AppendUint16(header, uint16(len(ext.Name)))
		header = append(header, ext.Name...)
		header = binary.BigEndian.AppendUint16(header, uint16(len(ext.Value)))
		header = append(header, ext.Value...)
	}

	return header, nil
}

// readHeader consumes and returns the raw header bytes from r, validating
// the magic and version. The extension contents are not interpreted here;
// they only feed the integrity trailer.
func readHeader(r io.Reader) ([]byte, error) {
	fixed := make([]byte, len(formatMagic)+3)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidFormat, err)
	}

	if string(fixed[:len(formatMagic)]) != formatMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidFormat)
	}

	if fixed[len(formatMagic)] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, fixed[len(formatMagic)])
	}

	header := fixed
	count := binary.BigEndian.Uint16(fixed[len(formatMagic)+1:])

	for i := uint16(0); i < count; i++ {
		for j := 0; j < 2; j++ { // name then value
			sizeBuf := make([]byte, 2)
			if _, err := io.ReadFull(r, sizeBuf); err != nil {
				return nil, fmt.Errorf("%w: reading extension length: %v", ErrInvalidFormat, err)
			}

			header = append(header, sizeBuf...)

			field := make([]byte, binary.BigEndian.Uint16(sizeBuf))
			if _, err := io.ReadFull(r, field); err != nil {
				return nil, fmt.Errorf("%w: reading extension data: %v", ErrInvalidFormat, err)
			}

			header = append(header, field...)
		}
	}

	return header, nil
}
