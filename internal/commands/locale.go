package commands

import (
	"os"
	"strings"

	"github.com/terrapane/aescrypt-cli/internal/logging"
)

// warnNonUTF8Locale warns when the environment does not advertise a UTF-8
// locale. Passwords are defined as UTF-8 byte sequences, so non-ASCII
// characters typed under another encoding will not round-trip.
func warnNonUTF8Locale(log *logging.Logger) {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LC_CTYPE")
	}

	if locale == "" {
		locale = os.Getenv("LANG")
	}

	if locale == "" {
		return
	}

	normalized := strings.ToLower(strings.ReplaceAll(locale, "-", ""))
	if !strings.Contains(normalized, "utf8") {
		log.Warnf("locale %q is not UTF-8; do not use passwords with non-ASCII characters", locale)
	}
}
