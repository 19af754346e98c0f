package formulas

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"chalk/internal/ui/theme"
)

type Port interface {
	FormulaSheet(ctx context.Context) (string, error)
}

type SheetLoadedMsg struct {
	Markdown string
	Err      error
}

// Model renders the formula sheet markdown with glamour.
type Model struct {
	port     Port
	viewport viewport.Model
	renderer *glamour.TermRenderer
	sheet    string
	err      error
	loaded   bool
	width    int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

// Load fetches the sheet once; later calls are no-ops.
func (m Model) Load() tea.Cmd {
	if m.loaded || m.port == nil {
		return nil
	}
	return func() tea.Msg {
		sheet, err := m.port.FormulaSheet(context.Background())
		return SheetLoadedMsg{Markdown: sheet, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(SheetLoadedMsg); ok {
		m.loaded = loaded.Err == nil
		m.err = loaded.Err
		m.sheet = loaded.Markdown
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(1, height)
	if width != m.width {
		m.width = width
		// glamour wraps at construction time
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(max(20, width-2)),
		); err == nil {
			m.renderer = r
		}
		m.viewport.SetContent(m.render())
	}
}

func (m Model) render() string {
	switch {
	case m.err != nil:
		return theme.Error.Render("formula sheet: " + m.err.Error())
	case m.sheet == "":
		return theme.Muted.Render("Loading formula sheet…")
	case m.renderer == nil:
		return m.sheet
	}
	out, err := m.renderer.Render(m.sheet)
	if err != nil {
		return m.sheet
	}
	return out
}
