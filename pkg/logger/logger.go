package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognised level names.
var ErrUnknownLevel = errors.New("logger: unknown level")

// Option configures the handler built by New.
type Option func(*options)

type options struct {
	writer io.Writer
	format string
	level  slog.Level
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		format: FormatJSON,
		level:  slog.LevelInfo,
	}
}

// WithLevel sets the minimum level. Default: info.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithFormat selects "json" or "text" output. Unknown values keep JSON.
func WithFormat(format string) Option {
	return func(o *options) {
		if format == FormatText {
			o.format = FormatText
			return
		}
		o.format = FormatJSON
	}
}

// WithWriter sets the output destination. Default: stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// New creates a logger writing JSON to stdout at info level unless options
// say otherwise.
func New(opts ...Option) *slog.Logger {
	return slog.New(newHandler(opts...))
}

func newHandler(opts ...Option) slog.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ho := &slog.HandlerOptions{Level: o.level}
	if o.format == FormatText {
		return slog.NewTextHandler(o.writer, ho)
	}
	return slog.NewJSONHandler(o.writer, ho)
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels,
// case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Join(ErrUnknownLevel, errors.New(s))
	}
}
