package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/pbkdf2"

	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// Encryptor performs a single streaming encryption. Create a fresh
// Encryptor per transform; the cancellation flag is one-way.
type Encryptor struct {
	log       *logging.Logger
	cancelled atomic.Bool
}

// NewEncryptor creates an Encryptor that logs diagnostics to log.
func NewEncryptor(log *logging.Logger) *Encryptor {
	return &Encryptor{log: log}
}

// Cancel requests that an in-progress Encrypt stop at the next chunk
// boundary and return Cancelled. Safe to call from another goroutine.
func (e *Encryptor) Cancel() {
	e.cancelled.Store(true)
}

// Encrypt reads plaintext from in and writes the encrypted stream to out.
// The progress callback, when non-nil, is invoked with the input byte
// offset no more often than every interval bytes; interval <= 0 disables
// progress reporting entirely.
func (e *Encryptor) Encrypt(
	password []byte,
	iterations uint32,
	in io.Reader,
	out io.Writer,
	extensions []Extension,
	progress ProgressFunc,
	interval int64,
) (Outcome, error) {
	if iterations < MinIterations || iterations > MaxIterations {
		return Internal, fmt.Errorf("%w: %d", ErrIterationRange, iterations)
	}

	header, err := encodeHeader(extensions)
	if err != nil {
		return Internal, err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return Internal, fmt.Errorf("generating salt: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return Internal, fmt.Errorf("generating IV: %w", err)
	}

	header = append(header, salt...)
	header = binary.BigEndian.AppendUint32(header, iterations)
	header = append(header, iv...)

	e.log.Infof("deriving keys (%d KDF iterations)", iterations)

	derived := pbkdf2.Key(password, salt, int(iterations), derivedKeySize, sha256.New)
	defer secure.Zero(derived)

	block, err := aes.NewCipher(derived[:32])
	if err != nil {
		return Internal, fmt.Errorf("creating cipher: %w", err)
	}

	stream := cipher.NewCTR(block, iv)
	mac := hmac.New(sha256.New, derived[32:])

	if _, err := out.Write(header); err != nil {
		return IOError, fmt.Errorf("writing header: %w", err)
	}

	mac.Write(header)

	buf := bufferPool.Get().([]byte)
	defer bufferPool.Put(buf) //nolint:staticcheck // fixed-size chunk buffer

	var position, lastReport int64

	for {
		if e.cancelled.Load() {
			e.log.Infof("encryption cancelled at offset %d", position)

			return Cancelled, nil
		}

		n, readErr := in.Read(buf)
		if n > 0 {
			stream.XORKeyStream(buf[:n], buf[:n])
			mac.Write(buf[:n])

			if _, err := out.Write(buf[:n]); err != nil {
				return IOError, fmt.Errorf("writing ciphertext: %w", err)
			}

			position += int64(n)

			if progress != nil && interval > 0 && position-lastReport >= interval {
				progress(position)
				lastReport = position
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return IOError, fmt.Errorf("reading plaintext: %w", readErr)
		}
	}

	if _, err := out.Write(mac.Sum(nil)); err != nil {
		return IOError, fmt.Errorf("writing trailer: %w", err)
	}

	e.log.Infof("encrypted %d bytes", position)

	return Success, nil
}
