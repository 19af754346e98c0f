package notes

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"chalk/internal/ui/theme"
)

// Model is the scratch notepad. Its text lives in the classroom session: the
// root model reads Value after each update and pushes it back with SetValue.
type Model struct {
	area   textarea.Model
	width  int
	height int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Jot something down…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	return Model{area: ta}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m Model) Value() string { return m.area.Value() }

func (m Model) View() string {
	return theme.Title.Render("Notes") + "\n" + m.area.View() + "\n" +
		theme.Muted.Render("notes are not saved when the session ends")
}

// SetValue replaces the buffer. The cursor stays put when text is unchanged.
func (m *Model) SetValue(text string) {
	if m.area.Value() == text {
		return
	}
	m.area.SetValue(text)
}

func (m *Model) Focus() tea.Cmd { return m.area.Focus() }

func (m *Model) Blur() { m.area.Blur() }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.area.SetWidth(width)
	m.area.SetHeight(max(1, height-2))
}
