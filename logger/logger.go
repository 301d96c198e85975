package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Debug mode gets a human-readable
// console writer; otherwise structured JSON at info level.
func New(debug bool) zerolog.Logger {
	if debug {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}
