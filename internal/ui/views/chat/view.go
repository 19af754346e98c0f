package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	classroomdto "chalk/internal/modules/classroom/dto"
	"chalk/internal/ui/theme"
)

// SendMsg is emitted on enter with the raw draft.
type SendMsg struct {
	Text string
}

// Model shows the transcript above a one-line draft input.
type Model struct {
	transcript viewport.Model
	input      textinput.Model
	renderer   *glamour.TermRenderer
	entries    []classroomdto.TranscriptEntry
	waiting    bool
	width      int
	height     int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the lesson…"
	ti.CharLimit = 500
	ti.Prompt = "› "
	return Model{transcript: viewport.New(0, 0), input: ti}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			text := m.input.Value()
			return m, func() tea.Msg { return SendMsg{Text: text} }
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
	}
	if _, ok := msg.(tea.MouseMsg); ok {
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Draft is the text in the input line.
func (m Model) Draft() string { return m.input.Value() }

func (m Model) View() string {
	return theme.Title.Render("Chat") + "\n" + m.transcript.View() + "\n" + m.input.View()
}

// Sync copies transcript and draft from the session snapshot.
func (m *Model) Sync(entries []classroomdto.TranscriptEntry, draft string, waiting bool) {
	if m.input.Value() != draft {
		m.input.SetValue(draft)
		m.input.CursorEnd()
	}
	if len(entries) == len(m.entries) && waiting == m.waiting {
		return
	}
	m.entries = append(m.entries[:0:0], entries...)
	m.waiting = waiting
	m.transcript.SetContent(m.render())
	m.transcript.GotoBottom()
}

func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m *Model) Blur() { m.input.Blur() }

func (m *Model) SetSize(width, height int) {
	m.height = height
	m.transcript.Width = width
	m.transcript.Height = max(1, height-2)
	m.input.Width = max(1, width-4)
	if width != m.width {
		m.width = width
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(max(20, width-4)),
		); err == nil {
			m.renderer = r
		}
		m.transcript.SetContent(m.render())
		m.transcript.GotoBottom()
	}
}

func (m Model) render() string {
	if len(m.entries) == 0 && !m.waiting {
		return theme.Muted.Render("Select text in the lesson or type a question.")
	}
	var sb strings.Builder
	for _, entry := range m.entries {
		if entry.FromLearner {
			sb.WriteString(theme.Learner.Render("you") + "\n")
			sb.WriteString(lipgloss.NewStyle().Width(max(10, m.width-2)).Render(entry.Text) + "\n\n")
			continue
		}
		sb.WriteString(theme.Tutor.Render("tutor") + "\n")
		sb.WriteString(m.markdown(entry.Text))
	}
	if m.waiting {
		sb.WriteString(theme.Muted.Render("tutor is thinking…"))
	}
	return sb.String()
}

func (m Model) markdown(text string) string {
	if m.renderer == nil {
		return text + "\n\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n\n"
	}
	return strings.TrimLeft(out, "\n")
}
