// Package repl implements an interactive session for trying out bconf
// fragments: each accepted line is appended to a growing document, which is
// re-parsed and its resolved value tree redrawn below the input.
package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/bconf-lang/go-bconf"
)

const prompt = "bconf› "

// builtinNames seed fuzzy completion with the names a fragment is likely to
// reference before any keys or variables exist yet.
var builtinNames = []string{
	"ref", "env", "string", "number", "int", "float", "bool",
	"import", "export", "extends", "from", "vars", "as",
	"true", "false", "null",
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	treeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type model struct {
	input      textinput.Model
	lines      []string
	result     *bconf.Result
	parseErr   error
	candidates []string
	matches    fuzzy.Matches
	suggIdx    int
}

func initialModel() model {
	ti := textinput.New()
	ti.Placeholder = "$port = 8080"
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()

	return model{input: ti, candidates: builtinNames}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.accept(), nil

		case tea.KeyTab:
			return m.cycleCompletion(1), nil

		case tea.KeyShiftTab:
			return m.cycleCompletion(-1), nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	if m.parseErr != nil {
		b.WriteString(errorStyle.Render(m.parseErr.Error()))
		b.WriteString("\n")
	} else if m.result != nil {
		b.WriteString(treeStyle.Render(render(m.result)))
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: accept line  tab: complete  ctrl+c: quit"))

	return b.String()
}

// accept appends the current input as a new line, re-parses the whole
// buffer, and clears the input on success. On a parse error the line is
// left in the input box so the user can fix it.
func (m model) accept() model {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m
	}

	candidate := append(append([]string{}, m.lines...), line)
	text := strings.Join(candidate, "\n")

	result, err := bconf.Parse(text)
	if err != nil {
		m.parseErr = err

		return m
	}

	m.lines = candidate
	m.result = result
	m.parseErr = nil
	m.input.SetValue("")
	m.refreshCandidates()

	return m
}

// refreshCandidates rebuilds the completion candidate list from the
// builtin names plus the keys and variables bound so far.
func (m *model) refreshCandidates() {
	names := append([]string{}, builtinNames...)

	if m.result != nil && m.result.Data != nil {
		names = append(names, m.result.Data.Keys()...)
	}

	if m.result != nil && m.result.Variables != nil {
		names = append(names, m.result.Variables.Keys()...)
	}

	m.candidates = names
}

func (m *model) refreshMatches() {
	word := currentWord(m.input.Value())
	if word == "" {
		m.matches = nil

		return
	}

	m.matches = fuzzy.Find(word, m.candidates)
	m.suggIdx = 0
}

func (m model) cycleCompletion(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)

	word := currentWord(m.input.Value())
	value := m.input.Value()
	trimmed := strings.TrimSuffix(value, word)
	m.input.SetValue(trimmed + m.matches[m.suggIdx].Str)
	m.input.CursorEnd()

	return m
}

// currentWord returns the trailing identifier-like run of input, the
// fragment fuzzy completion matches against.
func currentWord(input string) string {
	end := len(input)
	start := end

	for start > 0 {
		c := input[start-1]
		if c == ' ' || c == '\t' || c == '(' || c == ')' || c == '=' || c == ',' {
			break
		}

		start--
	}

	return input[start:end]
}

func render(result *bconf.Result) string {
	var b strings.Builder

	b.WriteString("data:\n")
	renderObject(&b, result.Data, 1)

	if result.Variables != nil && result.Variables.Len() > 0 {
		b.WriteString("variables:\n")
		renderObject(&b, result.Variables, 1)
	}

	return b.String()
}

func renderObject(b *strings.Builder, obj *bconf.Object, depth int) {
	indent := strings.Repeat("  ", depth)

	obj.Range(func(key string, v bconf.Value) bool {
		if child, ok := v.(*bconf.Object); ok {
			fmt.Fprintf(b, "%s%s:\n", indent, key)
			renderObject(b, child, depth+1)
		} else {
			fmt.Fprintf(b, "%s%s: %v\n", indent, key, v)
		}

		return true
	})
}

// Run starts the REPL program and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context) error {
	p := tea.NewProgram(initialModel(), tea.WithContext(ctx))
	_, err := p.Run()

	return err
}
