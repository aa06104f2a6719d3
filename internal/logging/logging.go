// Package logging builds the zerolog logger shared by the CLI and the TUI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string    // trace, debug, info, warn, error, disabled
	Pretty bool      // console output instead of JSON lines
	Out    io.Writer // defaults to stderr so stdout stays free for results
}

// New creates a structured logger
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    out != os.Stderr,
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level. "off" is accepted as an
// alias for disabled; empty or unknown names mean info.
func ParseLevel(s string) zerolog.Level {
	lvl, ok := lookupLevel(s)
	if !ok {
		return zerolog.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether s names a level ParseLevel understands.
func ValidLevel(s string) bool {
	_, ok := lookupLevel(s)
	return ok
}

func lookupLevel(s string) (zerolog.Level, bool) {
	if s == "off" {
		return zerolog.Disabled, true
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return lvl, true
}
