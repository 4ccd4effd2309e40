// Package logging configures the zerolog logger shared by the cldflex
// commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options select the log level and destination.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives the log instead of Out.
	File string
	// Out is the console destination. Nil means stderr.
	Out io.Writer
	// NoColor disables ANSI colors on the console writer.
	NoColor bool
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// New builds a console logger writing to w.
func New(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// Setup configures the global logger and returns it. The returned closer
// releases the log file, if any.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = io.NopCloser(nil)
	noColor := opts.NoColor
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer, noColor = f, f, true
	}
	log.Logger = New(out, level, noColor)
	return log.Logger, closer, nil
}
