//go:build windows

package cancel

import (
	"os"
)

var platformSignals []os.Signal
