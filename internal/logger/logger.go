// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Outside production the output is the
// human-readable console writer, otherwise one JSON object per line.
func Init(level zerolog.Level, pretty bool) {
	var out io.Writer = os.Stderr
	if pretty {
		// Use ConsoleWriter for human-readable, colorized output in development
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(level)

	// Add a hook to include the caller's file and line number
	log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
}
