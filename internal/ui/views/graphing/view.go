package graphing

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chalk/internal/ui/theme"
)

// LaunchMsg asks the root model to open the graphing tool in the browser.
type LaunchMsg struct{}

// LaunchedMsg reports the outcome of a launch.
type LaunchedMsg struct {
	Target string
	Err    error
}

// Model points the learner at the external graphing calculator.
type Model struct {
	url    string
	open   key.Binding
	status string
	failed bool
	width  int
}

func New(url string) Model {
	return Model{
		url:  url,
		open: key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open in browser")),
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.open) {
			m.status = "opening…"
			m.failed = false
			return m, func() tea.Msg { return LaunchMsg{} }
		}
	case LaunchedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			m.failed = true
		} else {
			m.status = "opened " + msg.Target
			m.failed = false
		}
	}
	return m, nil
}

func (m Model) View() string {
	url := lipgloss.NewStyle().Width(max(10, m.width)).Foreground(theme.Sapphire).Underline(true).Render(m.url)
	out := theme.Title.Render("Graphing tool") + "\n\n" + url + "\n\n" +
		theme.Muted.Render("o: open in browser")
	switch {
	case m.status == "":
	case m.failed:
		out += "\n\n" + theme.Error.Render(m.status)
	default:
		out += "\n\n" + theme.Done.Render(m.status)
	}
	return out
}

func (m *Model) SetSize(width, _ int) { m.width = width }
