//go:build windows

package keymat

import (
	"os"
)

// openTTY opens the console input device. The console delivers wide
// characters; the terminal package converts them to UTF-8 on read.
func openTTY() (*os.File, error) {
	return os.OpenFile("CONIN$", os.O_RDWR, 0)
}
