// Package logging configures lcat's own diagnostics.
//
// Diagnostics go to stderr through a zerolog console writer so they never
// mix with rendered output on stdout.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Debug   bool
	Output  io.Writer // defaults to os.Stderr
	NoColor bool
}

// New creates a console logger.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
