// Package diag is the library's internal logging facade. Other packages
// use diag.Logger with additional context fields rather than importing
// zerolog directly.
package diag

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger defaults to a no-op sink: domjson is a library, and a library
// that logs to stderr by default surprises embedders. cmd/domjson calls
// UseStderr to opt in for the CLI.
var Logger zerolog.Logger = zerolog.Nop()

// UseStderr switches Logger to a human-readable stderr sink at level,
// for use by cmd/domjson and tests that want to see parser diagnostics.
func UseStderr(level zerolog.Level) {
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
