package calculator

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chalk/internal/platform/calc"
	"chalk/internal/ui/theme"
)

const maxHistory = 50

type entry struct {
	expr   string
	result string
	failed bool
}

// Model evaluates one expression per enter and keeps a scrolling history.
// "ans" in an expression is replaced by the last result.
type Model struct {
	input   textinput.Model
	history []entry
	last    string
	width   int
	height  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "2 * (3 + 4)^2"
	ti.CharLimit = 200
	ti.Prompt = "› "
	return Model{input: ti}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m.evaluate()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) evaluate() {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" {
		return
	}
	substituted := expr
	if m.last != "" {
		substituted = strings.ReplaceAll(substituted, "ans", "("+m.last+")")
	}
	e := entry{expr: expr}
	if v, err := calc.Evaluate(substituted); err != nil {
		e.result = err.Error()
		e.failed = true
	} else {
		e.result = calc.Format(v)
		m.last = e.result
	}
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.input.SetValue("")
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Calculator") + "\n\n")

	// newest at the bottom, above the input
	rows := max(0, (m.height-5)/2)
	start := max(0, len(m.history)-rows)
	for _, e := range m.history[start:] {
		sb.WriteString(theme.Muted.Render(e.expr) + "\n")
		if e.failed {
			sb.WriteString("  " + theme.Error.Render(e.result) + "\n")
		} else {
			sb.WriteString("  = " + theme.Hot.Render(e.result) + "\n")
		}
	}
	sb.WriteString("\n" + m.input.View())
	return sb.String()
}

// Last returns the most recent successful result.
func (m Model) Last() string { return m.last }

func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m *Model) Blur() { m.input.Blur() }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(1, width-4)
}
