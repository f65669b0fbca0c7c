//go:build unix

package cancel

import (
	"os"
	"syscall"
)

var platformSignals = []os.Signal{syscall.SIGHUP, syscall.SIGQUIT}
