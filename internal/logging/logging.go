package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and sink of the process logger.
// Zero values mean stderr console output at info level.
type Options struct {
	Level string
	// File, when set, receives JSON log lines through a rolling writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps debug|info|warn|error to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger. The returned closer releases the log file,
// if any, and is safe to call when logging to the console.
func New(opts Options, console io.Writer) (zerolog.Logger, io.Closer) {
	var out io.Writer
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
		}
		out, closer = lj, lj
	} else {
		out = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return l, closer
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
