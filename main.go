// Command aescrypt is a command-line file encryption utility.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
	"github.com/terrapane/aescrypt-cli/internal/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		// A cancellation notice has already been printed; anything else
		// gets its full diagnostic detail.
		if !errors.Is(err, cancel.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
