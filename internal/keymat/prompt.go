package keymat

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// FromPrompt reads a password from the controlling terminal with echo
// disabled. stdin/stdout are deliberately not used since they may carry
// file data. When verify is set the prompt is presented twice and the two
// entries must match byte for byte.
func FromPrompt(verify bool, log *logging.Logger) (*secure.Buffer, error) {
	log.Infof("prompting for password on the terminal")

	first, err := readTerminalLine("Enter password: ")
	if err != nil {
		return nil, err
	}

	if verify {
		second, err := readTerminalLine("Re-enter password: ")
		if err != nil {
			secure.Zero(first)

			return nil, err
		}

		match := secure.Compare(first, second)

		secure.Zero(second)

		if !match {
			secure.Zero(first)

			return nil, ErrMismatch
		}
	}

	if !utf8.Valid(first) {
		secure.Zero(first)

		return nil, ErrInvalidEncoding
	}

	return secure.NewBuffer(first), nil
}

// readTerminalLine writes prompt to the controlling terminal, reads one
// line with echo disabled, and returns it with control characters removed.
// Echo is restored on every exit path.
func readTerminalLine(prompt string) ([]byte, error) {
	tty, err := openTTY()
	if err != nil {
		return nil, fmt.Errorf("opening terminal device: %w", err)
	}
	defer tty.Close()

	if _, err := tty.WriteString(prompt); err != nil {
		return nil, fmt.Errorf("writing password prompt: %w", err)
	}

	// ReadPassword disables echo for the duration of the read and restores
	// the previous terminal state even when the read fails.
	line, err := term.ReadPassword(int(tty.Fd()))

	// The suppressed newline still needs to reach the terminal.
	_, _ = tty.WriteString("\n")

	if err != nil {
		secure.Zero(line)

		return nil, fmt.Errorf("reading password input: %w", err)
	}

	filtered := line[:0]

	for _, b := range line {
		if b < 0x20 {
			continue
		}

		filtered = append(filtered, b)
	}

	secure.Zero(line[len(filtered):])

	if len(filtered) == 0 {
		return nil, ErrNoInput
	}

	return filtered, nil
}
