package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	classroomdto "chalk/internal/modules/classroom/dto"
	classroomin "chalk/internal/modules/classroom/port/in"
	lessondto "chalk/internal/modules/lesson/dto"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/ui/components"
	"chalk/internal/ui/theme"
	calculatorview "chalk/internal/ui/views/calculator"
	chaptersview "chalk/internal/ui/views/chapters"
	chatview "chalk/internal/ui/views/chat"
	formulasview "chalk/internal/ui/views/formulas"
	graphingview "chalk/internal/ui/views/graphing"
	lessonview "chalk/internal/ui/views/lesson"
	notesview "chalk/internal/ui/views/notes"
)

const replyTimeout = 20 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────

type classroomPort interface {
	Begin(ctx context.Context, lessonID, lessonTitle string, segments []classroomdto.Segment, host classroomin.SelectionHost) error
	Toggle(panel string) error
	Activate(panel string) error
	Deactivate(panel string) error
	SelectionCommitted(raw string) bool
	ContextMenuRequested(raw string, x, y int) bool
	AskAssistant() (string, bool)
	AddToNotes() bool
	Copy() bool
	DismissMenu() bool
	SendChat(text string) (string, bool)
	SetDraft(text string)
	SetNotes(text string)
	AppendAssistantReply(text string)
	Continue() bool
	IsRevealing() bool
	TakeCompleted() []string
	RecordProgress(ctx context.Context, lessonID string) error
	Snapshot() classroomdto.Snapshot
	Reply(ctx context.Context, question, lessonID, lessonTitle string) (string, error)
	LaunchGraphingTool(ctx context.Context) (string, error)
}

type lessonPort interface {
	ListLessons(ctx context.Context) ([]lessondto.LessonOutput, error)
	GetLesson(ctx context.Context, id string) (lessondto.LessonDetailOutput, error)
	FormulaSheet(ctx context.Context) (string, error)
}

// Dispatcher runs scheduler ticks on the Update goroutine.
type Dispatcher interface {
	Dispatch(msg tea.Msg) bool
}

type Settings struct {
	ContinueKey string
	GraphingURL string
	// Lesson opened on start. Empty opens the first lesson.
	Lesson string
}

// ─── async messages ──────────────────────────────────────────────────────────

type lessonLoadedMsg struct {
	detail lessondto.LessonDetailOutput
	err    error
}

type replyMsg struct {
	answer string
	err    error
}

type progressRecordedMsg struct {
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Continue   key.Binding
	Chapters   key.Binding
	Notes      key.Binding
	Calculator key.Binding
	Formulas   key.Binding
	Graphing   key.Binding
	Chat       key.Binding
	Select     key.Binding
	Menu       key.Binding
	Focus      key.Binding
	Back       key.Binding
	PrevLesson key.Binding
	NextLesson key.Binding
	Help       key.Binding
	Palette    key.Binding
	Quit       key.Binding
}

func defaultKeys(continueKey string) keyMap {
	keys := []string{continueKey}
	label := continueKey
	if continueKey == "space" || continueKey == " " {
		keys = []string{" ", "space"}
		label = "space"
	}
	return keyMap{
		Continue:   key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, "continue")),
		Chapters:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chapters")),
		Notes:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		Calculator: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "calculator")),
		Formulas:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "formulas")),
		Graphing:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "graphing")),
		Chat:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "chat")),
		Select:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select text")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "selection menu")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to lesson")),
		PrevLesson: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "prev/next lesson")),
		NextLesson: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "prev/next lesson")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue, k.Chat, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Continue, k.Select, k.Menu, k.PrevLesson},
		{k.Chapters, k.Notes, k.Calculator, k.Formulas, k.Graphing, k.Chat},
		{k.Focus, k.Back, k.Help, k.Palette, k.Quit},
	}
}

var paletteHints = []string{
	"lesson:open <id>",
	"lesson:next",
	"lesson:prev",
	"panel:open <chapters|notes|calculator|formulas|graphing|chat>",
	"panel:close",
	"reveal:continue",
	"graph:open",
	"ask <question>",
}

// ─── model ───────────────────────────────────────────────────────────────────

type focus int

const (
	focusLesson focus = iota
	focusPanel
)

// Model is the root Bubble Tea model. Session state lives in the classroom;
// after every classroom call the model re-reads a snapshot and pushes it
// into the sub-views.
type Model struct {
	classroom  classroomPort
	lessons    lessonPort
	dispatcher Dispatcher
	settings   Settings

	board      lessonview.Model
	chapters   chaptersview.Model
	notes      notesview.Model
	calculator calculatorview.Model
	formulas   formulasview.Model
	graphing   graphingview.Model
	chat       chatview.Model

	snap        classroomdto.Snapshot
	caret       components.Caret
	spinner     spinner.Model
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	focus       focus
	opened      bool
	waiting     int
	toldNoAgent bool
	status      string
	width       int
	height      int
}

func NewModel(classroom classroomPort, lessons lessonPort, dispatcher Dispatcher, settings Settings) Model {
	if settings.ContinueKey == "" {
		settings.ContinueKey = "space"
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Peach)

	keys := defaultKeys(settings.ContinueKey)
	hint := fmt.Sprintf("press %s to continue ▸", keys.Continue.Help().Key)

	var chaptersPort chaptersview.Port
	var formulasPort formulasview.Port
	if lessons != nil {
		chaptersPort = lessons
		formulasPort = lessons
	}

	snap := classroomdto.Snapshot{ActivePanel: classroomdto.PanelNone}
	if classroom != nil {
		snap = classroom.Snapshot()
	}

	return Model{
		snap:       snap,
		classroom:  classroom,
		lessons:    lessons,
		dispatcher: dispatcher,
		settings:   settings,
		board:      lessonview.New(hint),
		chapters:   chaptersview.New(chaptersPort),
		notes:      notesview.New(),
		calculator: calculatorview.New(),
		formulas:   formulasview.New(formulasPort),
		graphing:   graphingview.New(settings.GraphingURL),
		chat:       chatview.New(),
		spinner:    sp,
		keys:       keys,
		help:       help.New(),
		palette:    components.NewPalette(paletteHints),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.chapters.Init()}
	if m.settings.Lesson != "" {
		cmds = append(cmds, m.loadLessonCmd(m.settings.Lesson))
	}
	return tea.Batch(cmds...)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dispatcher != nil && m.dispatcher.Dispatch(msg) {
		cmd := m.sync()
		return m, cmd
	}

	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case lessonLoadedMsg:
		cmd := m.openLesson(msg)
		return m, cmd

	case chaptersview.LessonsLoadedMsg:
		var cmd tea.Cmd
		m.chapters, cmd = m.chapters.Update(msg)
		cmds = append(cmds, cmd)
		if !m.opened && m.settings.Lesson == "" {
			if id, ok := m.chapters.First(); ok {
				cmds = append(cmds, m.loadLessonCmd(id))
			}
		}
		if m.opened {
			m.chapters.Select(m.snap.LessonID)
		}
		return m, tea.Batch(cmds...)

	case chaptersview.OpenLessonMsg:
		m.focus = focusLesson
		return m, m.loadLessonCmd(msg.ID)

	case lessonview.SelectionMsg:
		if m.classroom.SelectionCommitted(msg.Text) {
			m.status = "sent selection to chat"
		}
		cmd := m.sync()
		return m, cmd

	case lessonview.MenuRequestMsg:
		if !m.classroom.ContextMenuRequested(msg.Text, msg.X, msg.Y) {
			m.classroom.DismissMenu()
		}
		cmd := m.sync()
		return m, cmd

	case chatview.SendMsg:
		question, ok := m.classroom.SendChat(msg.Text)
		cmd := m.sync()
		if !ok {
			return m, cmd
		}
		cmd = tea.Batch(cmd, m.replyCmd(question))
		return m, cmd

	case progressRecordedMsg:
		if msg.err != nil {
			m.status = "progress: " + msg.err.Error()
		}
		return m, m.chapters.Reload()

	case graphingview.LaunchMsg:
		return m, m.launchGraphingCmd()

	case graphingview.LaunchedMsg:
		m.graphing, _ = m.graphing.Update(msg)
		if msg.Err != nil {
			m.status = "graphing tool: " + msg.Err.Error()
		}
		return m, nil

	case formulasview.SheetLoadedMsg:
		m.formulas, _ = m.formulas.Update(msg)
		return m, nil

	case replyMsg:
		m.waiting = max(0, m.waiting-1)
		switch {
		case errors.Is(msg.err, apperrors.ErrNoAssistant):
			if !m.toldNoAgent {
				m.toldNoAgent = true
				m.status = "no assistant configured (set assistant.plugin)"
			}
		case msg.err != nil:
			m.status = "assistant: " + msg.err.Error()
		default:
			m.classroom.AppendAssistantReply(msg.answer)
		}
		cmd := m.sync()
		return m, cmd

	case components.CaretBlinkMsg:
		var cmd tea.Cmd
		m.caret, cmd = m.caret.Update(msg)
		m.board.SetReveal(m.snap.Reveal, m.caret.Visible())
		return m, cmd

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.chapters, cmd = m.chapters.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	cmd := m.updatePanel(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	// The context menu owns the keyboard while it is open.
	if m.snap.HasPending {
		switch msg.String() {
		case "a":
			question, ok := m.classroom.AskAssistant()
			cmd := m.sync()
			if ok {
				cmd = tea.Batch(cmd, m.replyCmd(question))
			}
			return m, cmd
		case "n":
			m.classroom.AddToNotes()
			m.status = "added to notes"
		case "y":
			if m.classroom.Copy() {
				m.status = "copied to clipboard"
			}
		case "esc":
			m.classroom.DismissMenu()
		default:
			return m, nil
		}
		cmd := m.sync()
		return m, cmd
	}

	if m.focus == focusPanel && m.snap.ActivePanel != classroomdto.PanelNone {
		switch {
		case key.Matches(msg, m.keys.Back) && !m.chapters.Filtering():
			m.focusLesson()
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			m.focusLesson()
			return m, nil
		}
		cmd := m.updatePanel(msg)
		return m, cmd
	}

	// Keyboard selection mode owns the lesson keys.
	if m.board.Host().Visual() {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Continue):
		cmd := m.continueReveal()
		return m, cmd
	case key.Matches(msg, m.keys.Chapters):
		cmd := m.toggle(classroomdto.PanelChapters)
		return m, cmd
	case key.Matches(msg, m.keys.Notes):
		cmd := m.toggle(classroomdto.PanelNotes)
		return m, cmd
	case key.Matches(msg, m.keys.Calculator):
		cmd := m.toggle(classroomdto.PanelCalculator)
		return m, cmd
	case key.Matches(msg, m.keys.Formulas):
		cmd := m.toggle(classroomdto.PanelFormulaSheet)
		return m, cmd
	case key.Matches(msg, m.keys.Graphing):
		cmd := m.toggle(classroomdto.PanelGraphingTool)
		return m, cmd
	case key.Matches(msg, m.keys.Chat):
		cmd := m.toggle(classroomdto.PanelChat)
		return m, cmd
	case key.Matches(msg, m.keys.Focus):
		if m.snap.ActivePanel != classroomdto.PanelNone {
			cmd := m.focusPanel()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevLesson):
		return m, m.stepLesson(-1)
	case key.Matches(msg, m.keys.NextLesson):
		return m, m.stepLesson(1)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		cmd := m.palette.Open()
		return m, cmd
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.snap.HasPending {
		if msg.Action == tea.MouseActionPress && msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			m.classroom.DismissMenu()
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	}
	boardW, _ := m.boardSize()
	if msg.X < boardW || m.board.Host().Active() {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}
	cmd := m.updatePanel(msg)
	return m, cmd
}

// ─── classroom plumbing ──────────────────────────────────────────────────────

// sync re-reads the session snapshot and pushes it into every view. A
// change of active panel moves keyboard focus.
func (m *Model) sync() tea.Cmd {
	prev := m.snap
	m.snap = m.classroom.Snapshot()

	var cmds []tea.Cmd
	switch {
	case m.snap.Reveal.Active:
		cmds = append(cmds, m.caret.Start())
	case prev.Reveal.Active:
		m.caret.Stop()
		if m.snap.Reveal.Complete {
			m.status = "lesson complete"
		}
	}
	if done := m.classroom.TakeCompleted(); len(done) > 0 {
		cmds = append(cmds, m.recordProgressCmd(done))
	}
	m.board.SetReveal(m.snap.Reveal, m.caret.Visible())
	m.notes.SetValue(m.snap.Notes)
	m.chat.Sync(m.snap.Transcript, m.snap.Draft, m.waiting > 0)

	if m.snap.ActivePanel != prev.ActivePanel {
		m.propagateSize()
		if m.snap.ActivePanel == classroomdto.PanelNone {
			m.focusLesson()
		} else {
			cmds = append(cmds, m.focusPanel())
		}
		if m.snap.ActivePanel == classroomdto.PanelFormulaSheet {
			cmds = append(cmds, m.formulas.Load())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) toggle(panel classroomdto.Panel) tea.Cmd {
	if err := m.classroom.Toggle(string(panel)); err != nil {
		m.status = err.Error()
		return nil
	}
	return m.sync()
}

func (m *Model) continueReveal() tea.Cmd {
	if !m.classroom.Continue() {
		return nil
	}
	m.status = "writing…"
	return tea.Batch(m.sync(), m.spinner.Tick)
}

func (m *Model) openLesson(msg lessonLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.status = "lesson: " + msg.err.Error()
		return nil
	}
	d := msg.detail
	if err := m.classroom.Begin(context.Background(), d.ID, d.Title, toClassroomSegments(d.Continuation), m.board.Host()); err != nil {
		m.status = "lesson: " + err.Error()
		return nil
	}
	m.board.SetLesson(d.Title, d.Chapter, toClassroomSegments(d.Body))
	m.opened = true
	m.caret.Stop()
	m.chapters.Select(d.ID)
	if m.snap.ActivePanel == classroomdto.PanelChapters {
		m.classroom.Deactivate(string(classroomdto.PanelChapters))
	}
	m.status = "opened " + d.Title
	return m.sync()
}

func (m *Model) stepLesson(step int) tea.Cmd {
	id, ok := m.chapters.Neighbour(m.snap.LessonID, step)
	if !ok {
		return nil
	}
	return m.loadLessonCmd(id)
}

func (m Model) busy() bool {
	return m.snap.Reveal.Active || m.waiting > 0
}

// ─── focus ───────────────────────────────────────────────────────────────────

func (m *Model) focusLesson() {
	m.focus = focusLesson
	m.notes.Blur()
	m.calculator.Blur()
	m.chat.Blur()
}

func (m *Model) focusPanel() tea.Cmd {
	m.focusLesson()
	m.focus = focusPanel
	switch m.snap.ActivePanel {
	case classroomdto.PanelNotes:
		return m.notes.Focus()
	case classroomdto.PanelCalculator:
		return m.calculator.Focus()
	case classroomdto.PanelChat:
		return m.chat.Focus()
	}
	return nil
}

// updatePanel forwards msg to the active panel. Notes and draft edits reach
// the classroom before it returns.
func (m *Model) updatePanel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.snap.ActivePanel {
	case classroomdto.PanelChapters:
		m.chapters, cmd = m.chapters.Update(msg)
	case classroomdto.PanelNotes:
		before := m.notes.Value()
		m.notes, cmd = m.notes.Update(msg)
		if after := m.notes.Value(); after != before {
			m.classroom.SetNotes(after)
			m.snap.Notes = after
		}
	case classroomdto.PanelCalculator:
		m.calculator, cmd = m.calculator.Update(msg)
	case classroomdto.PanelFormulaSheet:
		m.formulas, cmd = m.formulas.Update(msg)
	case classroomdto.PanelGraphingTool:
		m.graphing, cmd = m.graphing.Update(msg)
	case classroomdto.PanelChat:
		before := m.chat.Draft()
		m.chat, cmd = m.chat.Update(msg)
		if after := m.chat.Draft(); after != before {
			m.classroom.SetDraft(after)
			m.snap.Draft = after
		}
	}
	return cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	contentH := max(1, m.height-2)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Padding(1, 2).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		boardW, _ := m.boardSize()
		board := lipgloss.NewStyle().Width(boardW).Height(contentH).Render(m.board.View())
		if panel := m.renderPanel(); panel != "" {
			content = lipgloss.JoinHorizontal(lipgloss.Top, board, panel)
		} else {
			content = board
		}
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, header, content, status)
	if m.snap.HasPending && !m.showHelp && !m.palette.Visible() {
		frame = components.Overlay(frame, components.ContextMenu(m.snap.Pending.Text),
			m.snap.Pending.AnchorX, m.snap.Pending.AnchorY, m.width, m.height)
	}
	return frame
}

func (m Model) renderPanel() string {
	var body string
	switch m.snap.ActivePanel {
	case classroomdto.PanelChapters:
		body = m.chapters.View()
	case classroomdto.PanelNotes:
		body = m.notes.View()
	case classroomdto.PanelCalculator:
		body = m.calculator.View()
	case classroomdto.PanelFormulaSheet:
		body = m.formulas.View()
	case classroomdto.PanelGraphingTool:
		body = m.graphing.View()
	case classroomdto.PanelChat:
		body = m.chat.View()
	default:
		return ""
	}
	style := theme.Pane
	if m.focus == focusPanel {
		style = theme.PaneFocused
	}
	w, h := m.panelInner()
	return style.Width(w + 2).Height(h).Render(body)
}

func (m Model) renderHeader() string {
	title := m.snap.LessonTitle
	if title == "" {
		title = "no lesson"
	}
	bar := theme.Hot.Render("chalk") + "  " + title + theme.Muted.Render("  ·  "+m.chapters.Summary())
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.Reveal.Active {
		left = m.spinner.View() + " writing…"
	} else if m.waiting > 0 {
		left = m.spinner.View() + " asking assistant…"
	}
	right := theme.Muted.Render(m.hints())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) hints() string {
	switch {
	case m.snap.HasPending:
		return "a:ask  n:notes  y:copy  esc:dismiss"
	case m.board.Host().Visual():
		return "arrows:extend  enter:chat  m:menu  esc:cancel"
	case m.focus == focusPanel:
		return "esc/tab:lesson  ctrl+c:quit"
	}
	return m.keys.Continue.Help().Key + ":continue  v:select  c n x f g t:panels  ?:help  q:quit"
}

// ─── layout ──────────────────────────────────────────────────────────────────

func (m Model) boardSize() (int, int) {
	h := max(1, m.height-2)
	if m.snap.ActivePanel == classroomdto.PanelNone {
		return m.width, h
	}
	pw, _ := m.panelInner()
	return max(20, m.width-pw-4), h
}

// panelInner is the content size inside the panel border and padding.
func (m Model) panelInner() (int, int) {
	w := max(28, m.width*2/5)
	w = min(w, max(10, m.width-24))
	return w - 4, max(1, m.height-4)
}

func (m *Model) propagateSize() {
	bw, bh := m.boardSize()
	m.board.SetSize(bw, bh)
	m.board.SetOrigin(0, 1)
	pw, ph := m.panelInner()
	m.chapters.SetSize(pw, ph)
	m.notes.SetSize(pw, ph)
	m.calculator.SetSize(pw, ph)
	m.formulas.SetSize(pw, ph)
	m.graphing.SetSize(pw, ph)
	m.chat.SetSize(pw, ph)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "lesson:open":
		if len(parts) < 2 {
			m.status = "usage: lesson:open <id>"
			return m, nil
		}
		return m, m.loadLessonCmd(parts[1])
	case "lesson:next":
		return m, m.stepLesson(1)
	case "lesson:prev":
		return m, m.stepLesson(-1)
	case "panel:open":
		if len(parts) < 2 {
			m.status = "usage: panel:open <name>"
			return m, nil
		}
		if err := m.classroom.Activate(parts[1]); err != nil {
			m.status = err.Error()
			return m, nil
		}
		cmd := m.sync()
		return m, cmd
	case "panel:close":
		if m.snap.ActivePanel == classroomdto.PanelNone {
			return m, nil
		}
		m.classroom.Deactivate(string(m.snap.ActivePanel))
		cmd := m.sync()
		return m, cmd
	case "reveal:continue":
		cmd := m.continueReveal()
		return m, cmd
	case "graph:open":
		return m, m.launchGraphingCmd()
	case "ask":
		question, ok := m.classroom.SendChat(strings.TrimSpace(strings.TrimPrefix(input, "ask")))
		if !ok {
			m.status = "usage: ask <question>"
			return m, nil
		}
		if m.snap.ActivePanel != classroomdto.PanelChat {
			m.classroom.Activate(string(classroomdto.PanelChat))
		}
		cmd := tea.Batch(m.sync(), m.replyCmd(question))
		return m, cmd
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadLessonCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.lessons == nil {
			return lessonLoadedMsg{err: fmt.Errorf("lesson catalog is not configured")}
		}
		detail, err := m.lessons.GetLesson(context.Background(), id)
		return lessonLoadedMsg{detail: detail, err: err}
	}
}

// replyCmd asks the assistant off the Update goroutine. Only the answer
// comes back; appending it happens in Update.
func (m *Model) replyCmd(question string) tea.Cmd {
	m.waiting++
	m.chat.Sync(m.snap.Transcript, m.snap.Draft, true)
	lessonID, lessonTitle := m.snap.LessonID, m.snap.LessonTitle
	classroom := m.classroom
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		answer, err := classroom.Reply(ctx, question, lessonID, lessonTitle)
		return replyMsg{answer: answer, err: err}
	})
}

// recordProgressCmd writes completed lessons to the index off the Update
// goroutine.
func (m Model) recordProgressCmd(lessonIDs []string) tea.Cmd {
	classroom := m.classroom
	return func() tea.Msg {
		var errs []error
		for _, id := range lessonIDs {
			errs = append(errs, classroom.RecordProgress(context.Background(), id))
		}
		return progressRecordedMsg{err: errors.Join(errs...)}
	}
}

func (m Model) launchGraphingCmd() tea.Cmd {
	classroom := m.classroom
	return func() tea.Msg {
		target, err := classroom.LaunchGraphingTool(context.Background())
		return graphingview.LaunchedMsg{Target: target, Err: err}
	}
}

func toClassroomSegments(in []lessondto.Segment) []classroomdto.Segment {
	out := make([]classroomdto.Segment, 0, len(in))
	for _, s := range in {
		out = append(out, classroomdto.Segment{Kind: s.Kind, Text: s.Text})
	}
	return out
}
