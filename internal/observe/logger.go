// Package observe builds the loggers every service entry point shares. The
// engine packages themselves never log; logging happens at the edges.
package observe

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger returns the service logger: console output, RFC 3339 timestamps
// and an app field on every line. An unknown or empty level falls back to
// info. The global zerolog logger is pointed at the same output.
func NewLogger(app, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(output).Level(lvl).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
