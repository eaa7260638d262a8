package blog

import (
	"io"
	"log/slog"
)

// Format selects the encoding used when pretty-printing is disabled.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// Defaults applied by New before any Option runs.
const (
	DefaultLevel  = LevelInfo
	DefaultFormat = FormatJSON
	DefaultCaller = false
	DefaultPretty = true
)

// config holds the configuration a New call resolves before building a
// Logger's handler.
type config struct {
	output io.Writer
	level  Level
	format Format
	caller bool
	pretty bool
}

// Option configures a Logger built by New.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{
		output: w,
		level:  DefaultLevel,
		format: DefaultFormat,
		caller: DefaultCaller,
		pretty: DefaultPretty,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.output == nil {
		c.output = io.Discard
	}

	return c
}

// WithLevel sets the minimum level a built Logger emits. Messages below
// this level are discarded before ever reaching the handler.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat selects the plain-handler encoding used when pretty-printing
// is disabled (see WithPretty).
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithCaller controls whether each log line carries the logging call's
// file:line.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty toggles the colorized, human-readable PrettyHandler. Disabled,
// New falls back to a plain slog.JSONHandler or slog.TextHandler (per
// WithFormat) suited to machine consumption. Enabled by default.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

func (c config) handler() slog.Handler {
	if c.pretty {
		return NewPrettyHandler(c.output, c.level, c.caller)
	}

	opts := &slog.HandlerOptions{AddSource: c.caller, Level: slog.Level(c.level)}

	switch c.format {
	case FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.NewJSONHandler(c.output, opts)
	}
}
