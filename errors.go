package bconf

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel base errors categorize the failure a *ParseError carries,
// independent of its human-readable Message, the way lang/error.go's own
// predefined errors do. Match them with errors.Is instead of inspecting
// Message text.
var (
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrUnknownKey         = errors.New("unknown key")
	ErrUnresolvedVariable = errors.New("unresolved variable")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrUnterminatedString = errors.New("unterminated string")
)

// ParseError is the single error kind returned by Parse and everything it
// calls: a message paired with the row/column of the offending token. No
// partial result is ever returned alongside a non-nil error.
type ParseError struct {
	Message string
	Row     int
	Column  int
	kind    error
	cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d:%d: %s: %v", e.Row, e.Column, e.Message, e.cause)
	}

	return fmt.Sprintf("%d:%d: %s", e.Row, e.Column, e.Message)
}

// Unwrap exposes a wrapped cause, if any, for errors.Is/errors.As. A
// resolver-thrown cause may itself wrap one of the sentinels above (see
// builtins.go's tagRef), in which case errors.Is finds it here without
// needing e.kind at all.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// Is reports whether e's own sentinel category matches target, letting a
// parser-internal error (no wrapped cause) still answer errors.Is.
func (e *ParseError) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

// LogValue lets a ParseError be logged directly as a structured group.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", e.Message),
		slog.Int("row", e.Row),
		slog.Int("column", e.Column),
	}
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(attrs...)
}

// errAt builds a *ParseError positioned at pos with a formatted message,
// categorized as ErrUnexpectedToken (the catch-all syntax-error sentinel).
func errAt(pos Position, format string, args ...any) *ParseError {
	return errAtKind(ErrUnexpectedToken, pos, format, args...)
}

// errAtKind is errAt with an explicit sentinel category.
func errAtKind(kind error, pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Row:     pos.Row,
		Column:  pos.Column,
		kind:    kind,
	}
}

// errToken is shorthand for errAt using a token's own position.
func errToken(t Token, format string, args ...any) *ParseError {
	return errAt(Position{Row: t.Row, Column: t.Column}, format, args...)
}

// errTokenKind is errToken with an explicit sentinel category.
func errTokenKind(kind error, t Token, format string, args ...any) *ParseError {
	return errAtKind(kind, Position{Row: t.Row, Column: t.Column}, format, args...)
}

// errDuplicateKey is the plain (unpositioned) error returned by the
// duplicate-key walk in tree.go; the parser positions it at the offending
// key's token before returning it to the caller via wrapAt, which preserves
// the %w-wrapped ErrDuplicateKey through to errors.Is.
func errDuplicateKey(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateKey, name)
}

// errInvalidNumber is the plain error for a malformed numeric literal,
// positioned by its caller via wrapAt.
func errInvalidNumber(lit string) error {
	return fmt.Errorf("%w: %q", ErrInvalidNumber, lit)
}

// wrapAt re-wraps an arbitrary error (typically thrown from inside a
// resolver, or one of errDuplicateKey/errInvalidNumber's plain errors) as a
// *ParseError positioned at pos, per §7: "Errors thrown from within a
// resolver are re-wrapped at the current token position." The original
// error is kept as cause so errors.Is can still find a %w-wrapped sentinel.
func wrapAt(pos Position, err error) *ParseError {
	if err == nil {
		return nil
	}

	var pe *ParseError
	if existing, ok := err.(*ParseError); ok {
		pe = existing

		return &ParseError{Message: pe.Message, Row: pos.Row, Column: pos.Column, kind: pe.kind, cause: pe.cause}
	}

	return &ParseError{Message: err.Error(), Row: pos.Row, Column: pos.Column, cause: err}
}
