package chapters

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	lessondto "chalk/internal/modules/lesson/dto"
	"chalk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListLessons(ctx context.Context) ([]lessondto.LessonOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LessonsLoadedMsg struct {
	Lessons []lessondto.LessonOutput
	Err     error
}

// OpenLessonMsg asks the root model to open a lesson.
type OpenLessonMsg struct {
	ID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type lessonItem struct {
	lesson lessondto.LessonOutput
}

func (i lessonItem) Title() string {
	if i.lesson.Completed {
		return "✓ " + i.lesson.Title
	}
	return "  " + i.lesson.Title
}

func (i lessonItem) Description() string {
	if i.lesson.Chapter == "" {
		return "  " + i.lesson.Format
	}
	return "  " + i.lesson.Chapter
}

func (i lessonItem) FilterValue() string { return i.lesson.Chapter + " " + i.lesson.Title }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists the lessons of the vault, grouped by chapter in index order.
type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	open    key.Binding
	lessons []lessondto.LessonOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Chapters"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	// the root model owns quitting
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		spinner: sp,
		open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open lesson")),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload re-reads the lesson index, e.g. after a lesson was completed.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LessonsLoadedMsg{}
		}
		lessons, err := m.port.ListLessons(context.Background())
		return LessonsLoadedMsg{Lessons: lessons, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case LessonsLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.lessons = msg.Lessons
		items := make([]list.Item, len(msg.Lessons))
		for i, lesson := range msg.Lessons {
			items[i] = lessonItem{lesson: lesson}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.Filtering() && key.Matches(msg, m.open) {
			if item, ok := m.list.SelectedItem().(lessonItem); ok {
				id := item.lesson.ID
				return m, func() tea.Msg { return OpenLessonMsg{ID: id} }
			}
			return m, nil
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading lessons…")
	case m.err != nil:
		return theme.Error.Render("lessons: " + m.err.Error())
	case len(m.lessons) == 0:
		return theme.Muted.Render("No lessons yet. Run `chalk init`.")
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

// Filtering reports whether the list filter has the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Select moves the cursor to the lesson with id.
func (m *Model) Select(id string) {
	for i, lesson := range m.lessons {
		if lesson.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// Neighbour returns the lesson before (step -1) or after (step 1) id.
func (m Model) Neighbour(id string, step int) (string, bool) {
	for i, lesson := range m.lessons {
		if lesson.ID != id {
			continue
		}
		j := i + step
		if j < 0 || j >= len(m.lessons) {
			return "", false
		}
		return m.lessons[j].ID, true
	}
	return "", false
}

// First returns the first lesson in chapter order.
func (m Model) First() (string, bool) {
	if len(m.lessons) == 0 {
		return "", false
	}
	return m.lessons[0].ID, true
}

func (m Model) Summary() string {
	done := 0
	for _, lesson := range m.lessons {
		if lesson.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d lessons", done, len(m.lessons))
}
