package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/pbkdf2"

	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// Decryptor performs a single streaming decryption. Create a fresh
// Decryptor per transform; the cancellation flag is one-way.
type Decryptor struct {
	log       *logging.Logger
	cancelled atomic.Bool
}

// NewDecryptor creates a Decryptor that logs diagnostics to log.
func NewDecryptor(log *logging.Logger) *Decryptor {
	return &Decryptor{log: log}
}

// Cancel requests that an in-progress Decrypt stop at the next chunk
// boundary and return Cancelled. Safe to call from another goroutine.
func (d *Decryptor) Cancel() {
	d.cancelled.Store(true)
}

// Decrypt reads an encrypted stream from in and writes the recovered
// plaintext to out. Nothing about the trailer is known until EOF, so the
// last trailerSize bytes are held back from decryption and verified once
// the stream ends. The progress callback, when non-nil, is invoked with
// the input byte offset no more often than every interval bytes.
func (d *Decryptor) Decrypt(
	password []byte,
	in io.Reader,
	out io.Writer,
	progress ProgressFunc,
	interval int64,
) (Outcome, error) {
	header, err := readHeader(in)
	if err != nil {
		return InvalidFormat, err
	}

	params := make([]byte, saltSize+4+ivSize)
	if _, err := io.ReadFull(in, params); err != nil {
		return InvalidFormat, fmt.Errorf("%w: reading parameters: %v", ErrInvalidFormat, err)
	}

	salt := params[:saltSize]
	iterations := binary.BigEndian.Uint32(params[saltSize : saltSize+4])
	iv := params[saltSize+4:]

	if iterations < MinIterations || iterations > MaxIterations {
		return InvalidFormat, fmt.Errorf("%w: %d", ErrIterationRange, iterations)
	}

	d.log.Infof("deriving keys (%d KDF iterations)", iterations)

	derived := pbkdf2.Key(password, salt, int(iterations), derivedKeySize, sha256.New)
	defer secure.Zero(derived)

	block, err := aes.NewCipher(derived[:32])
	if err != nil {
		return Internal, fmt.Errorf("creating cipher: %w", err)
	}

	stream := cipher.NewCTR(block, iv)
	mac := hmac.New(sha256.New, derived[32:])
	mac.Write(header)
	mac.Write(params)

	buf := bufferPool.Get().([]byte)
	defer bufferPool.Put(buf) //nolint:staticcheck // fixed-size chunk buffer

	// carry holds the most recent bytes read, which may turn out to be the
	// integrity trailer once EOF is reached.
	carry := make([]byte, 0, trailerSize)
	position := int64(len(header) + len(params))
	lastReport := position

	for {
		if d.cancelled.Load() {
			d.log.Infof("decryption cancelled at offset %d", position)

			return Cancelled, nil
		}

		n, readErr := in.Read(buf)
		if n > 0 {
			position += int64(n)

			pending := append(carry, buf[:n]...)

			if body := len(pending) - trailerSize; body > 0 {
				chunk := pending[:body]
				mac.Write(chunk)
				stream.XORKeyStream(chunk, chunk)

				if _, err := out.Write(chunk); err != nil {
					return IOError, fmt.Errorf("writing plaintext: %w", err)
				}

				pending = pending[body:]
			}

			carry = append(carry[:0], pending...)

			if progress != nil && interval > 0 && position-lastReport >= interval {
				progress(position)
				lastReport = position
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return IOError, fmt.Errorf("reading ciphertext: %w", readErr)
		}
	}

	if len(carry) != trailerSize {
		return InvalidFormat, fmt.Errorf("%w: truncated stream", ErrInvalidFormat)
	}

	if !hmac.Equal(carry, mac.Sum(nil)) {
		return Authentication, ErrAuthentication
	}

	d.log.Infof("decrypted %d input bytes", position)

	return Success, nil
}
