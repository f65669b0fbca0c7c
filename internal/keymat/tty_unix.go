//go:build unix

package keymat

import (
	"os"
)

// openTTY opens the controlling terminal for interactive prompting.
func openTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}
