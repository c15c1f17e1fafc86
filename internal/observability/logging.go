package observability

import (
	"github.com/imbecis/app-imbecis/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskToken keeps the first four characters of a token or device id for
// correlation and hides the rest.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "********"
}
