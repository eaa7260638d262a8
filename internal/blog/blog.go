// Package blog provides the structured, leveled logger used as a
// diagnostic side-channel throughout bconf: the parser never returns a
// *blog.Logger and never logs an error it also returns (failures always
// surface as a *bconf.ParseError to the caller), but it traces the start
// and end of each document parse at LevelTrace for a caller who wires up a
// verbose logger.
//
// A zero-value Logger is a safe no-op, so bconf's internals never need a
// nil check before logging.
package blog

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Level extends slog's levels with a Trace level below Debug, the level of
// the parser's own diagnostic records.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// Logger wraps *slog.Logger. The zero value is valid and discards
// everything.
type Logger struct {
	inner *slog.Logger
}

// New builds a Logger writing to w, configured by the given Options
// (WithLevel, WithFormat, WithCaller, WithPretty). With no options, it
// writes colorized, human-readable lines at LevelInfo and above; pass
// WithPretty(false) for a plain slog.JSONHandler/TextHandler instead,
// suited to non-interactive/machine consumption.
func New(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{inner: slog.New(cfg.handler())}
}

// Wrap adopts an already-configured *slog.Logger as-is, bypassing New's
// Option handling.
func Wrap(inner *slog.Logger) Logger {
	return Logger{inner: inner}
}

// Discard returns the no-op Logger (equivalent to the zero value).
func Discard() Logger {
	return Logger{}
}

// With returns a Logger that includes attrs on every subsequent record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.inner == nil {
		return l
	}

	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}

	return Logger{inner: l.inner.With(args...)}
}

func (l Logger) log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.inner == nil {
		return
	}

	sl := slog.Level(level)
	if !l.inner.Enabled(ctx, sl) {
		return
	}

	// Skip runtime.Callers, log, and the exported *Context method so the
	// record's source is the caller of that method, not this wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), sl, msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.inner.Handler().Handle(ctx, r)
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}
