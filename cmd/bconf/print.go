package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bconf-lang/go-bconf"
)

var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	boolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	nullStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printTree renders an eval result (an *bconf.Object, []any, or scalar) as
// an indented, styled value tree. It's read-only inspection output, not a
// re-serialization into bconf syntax.
func printTree(label string, v any) string {
	var b strings.Builder

	if label != "" {
		b.WriteString(keyStyle.Render(label))
		b.WriteString("\n")
	}

	writeValue(&b, v, 0)

	return b.String()
}

func writeValue(b *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)

	switch t := v.(type) {
	case *bconf.Object:
		for _, key := range t.Keys() {
			child, _ := t.Get(key)
			b.WriteString(indent)
			b.WriteString(keyStyle.Render(key))
			b.WriteString(":")

			if isScalar(child) {
				b.WriteString(" ")
				b.WriteString(renderScalar(child))
				b.WriteString("\n")
			} else {
				b.WriteString("\n")
				writeValue(b, child, depth+1)
			}
		}
	case []any:
		for i, elem := range t {
			b.WriteString(indent)
			b.WriteString(keyStyle.Render(fmt.Sprintf("[%d]", i)))
			b.WriteString(":")

			if isScalar(elem) {
				b.WriteString(" ")
				b.WriteString(renderScalar(elem))
				b.WriteString("\n")
			} else {
				b.WriteString("\n")
				writeValue(b, elem, depth+1)
			}
		}
	default:
		b.WriteString(indent)
		b.WriteString(renderScalar(v))
		b.WriteString("\n")
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case *bconf.Object, []any:
		return false
	default:
		return true
	}
}

func renderScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return nullStyle.Render("null")
	case bool:
		return boolStyle.Render(strconv.FormatBool(t))
	case int64:
		return numberStyle.Render(strconv.FormatInt(t, 10))
	case float64:
		return numberStyle.Render(strconv.FormatFloat(t, 'g', -1, 64))
	case string:
		return stringStyle.Render(strconv.Quote(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}
