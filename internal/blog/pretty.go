package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

// levelStyles maps each level to a lipgloss style used by PrettyHandler,
// matching aenv's log package convention of coloring the level tag and
// leaving message/attribute text in the terminal's default color.
var levelStyles = map[Level]lipgloss.Style{
	LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

var attrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

func levelLabel(l Level) string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// PrettyHandler is a slog.Handler that renders human-readable, colorized
// log lines: "LEVEL message  key=value key=value". It is meant for
// interactive terminal use (the CLI's default); non-interactive consumers
// should use slog.NewJSONHandler or slog.NewTextHandler instead.
type PrettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  Level
	caller bool
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler creates a PrettyHandler writing to w at the given
// minimum level. When caller is true, each line is suffixed with the
// logging call's file:line.
func NewPrettyHandler(w io.Writer, level Level, caller bool) *PrettyHandler {
	return &PrettyHandler{w: w, mu: &sync.Mutex{}, level: level, caller: caller}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return Level(level) >= h.level
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	style, ok := levelStyles[Level(r.Level)]
	if !ok {
		style = lipgloss.NewStyle()
	}

	line := style.Render(levelLabel(Level(r.Level))) + " " + r.Message

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, formatAttr(h.groups, a))
	}

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, formatAttr(h.groups, a))

		return true
	})

	sort.Strings(attrs)

	for _, a := range attrs {
		line += "  " + attrStyle.Render(a)
	}

	if h.caller {
		if src := r.Source(); src != nil {
			line += "  " + sourceStyle.Render(fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintln(h.w, line)

	return err
}

func formatAttr(groups []string, a slog.Attr) string {
	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	return fmt.Sprintf("%s=%v", key, a.Value.Any())
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)

	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)

	return &next
}
