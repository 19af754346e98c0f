package lesson

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	classroomdto "chalk/internal/modules/classroom/dto"
	"chalk/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SelectionMsg is emitted when a drag or visual selection is committed.
type SelectionMsg struct {
	Text string
}

// MenuRequestMsg asks for the context menu at screen cell (X, Y). Text is
// empty when nothing is highlighted.
type MenuRequestMsg struct {
	Text string
	X, Y int
}

// ─── highlight ───────────────────────────────────────────────────────────────

// Highlight is the on-screen selection, measured in word indexes. It is held
// by pointer so the classroom can clear it while copies of the model exist.
type Highlight struct {
	active   bool
	visual   bool
	dragging bool
	moved    bool
	button   tea.MouseButton
	anchor   int
	head     int
}

func (h *Highlight) ClearSelection() { *h = Highlight{} }

func (h *Highlight) Active() bool { return h.active }

// Visual reports whether keyboard selection mode is on.
func (h *Highlight) Visual() bool { return h.visual }

func (h *Highlight) bounds() (int, int) {
	if h.anchor <= h.head {
		return h.anchor, h.head
	}
	return h.head, h.anchor
}

func (h *Highlight) contains(idx int) bool {
	if !h.active {
		return false
	}
	lo, hi := h.bounds()
	return idx >= lo && idx <= hi
}

// ─── layout ──────────────────────────────────────────────────────────────────

const (
	marginX    = 2
	bodyTopRow = 2
	caretGlyph = "▌"
)

type word struct {
	text    string
	formula bool
	para    int
	row     int
	col     int
	width   int
}

type layout struct {
	words    []word
	rows     int
	caretRow int
	caretCol int
}

func buildLayout(body, revealed []classroomdto.Segment, width int) layout {
	wrap := width - 2*marginX
	if wrap < 10 {
		wrap = 10
	}
	out := layout{}
	row, col, para := bodyTopRow, 0, 0
	place := func(seg classroomdto.Segment) {
		if seg.Kind == "break" {
			if col > 0 || row > bodyTopRow {
				row += 2
				col = 0
			}
			para++
			return
		}
		w := lipgloss.Width(seg.Text)
		if col > 0 && col+1+w > wrap {
			row++
			col = 0
		}
		if col > 0 {
			col++
		}
		out.words = append(out.words, word{
			text:    seg.Text,
			formula: seg.Kind == "formula",
			para:    para,
			row:     row,
			col:     col,
			width:   w,
		})
		col += w
	}
	for _, seg := range body {
		place(seg)
	}
	if len(revealed) > 0 && len(body) > 0 {
		place(classroomdto.Segment{Kind: "break"})
	}
	for _, seg := range revealed {
		place(seg)
	}
	out.caretRow, out.caretCol = row, col
	if col > 0 {
		out.caretCol++
	}
	out.rows = row + 1
	return out
}

// ─── model ───────────────────────────────────────────────────────────────────

type keyMap struct {
	Visual key.Binding
	Commit key.Binding
	Menu   key.Binding
	Cancel key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Visual: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send to chat")),
		Menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "actions")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
	}
}

// Model is the lesson board: the static text, the revealed continuation and
// the writing caret, with word-level selection by mouse or keyboard.
type Model struct {
	viewport  viewport.Model
	highlight *Highlight
	keys      keyMap

	title   string
	chapter string
	body    []classroomdto.Segment
	reveal  classroomdto.RevealView
	caretOn bool
	hint    string
	layout  layout

	width   int
	height  int
	originX int
	originY int
}

func New(continueHint string) Model {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
		Left:         key.NewBinding(key.WithDisabled()),
		Right:        key.NewBinding(key.WithDisabled()),
	}
	return Model{
		viewport:  vp,
		highlight: &Highlight{},
		keys:      defaultKeys(),
		hint:      continueHint,
	}
}

// Host is the selection host handed to the classroom.
func (m Model) Host() *Highlight { return m.highlight }

// SetLesson replaces the board content and drops any selection.
func (m *Model) SetLesson(title, chapter string, body []classroomdto.Segment) {
	m.title = title
	m.chapter = chapter
	m.body = body
	m.reveal = classroomdto.RevealView{}
	m.highlight.ClearSelection()
	m.relayout()
	m.viewport.GotoTop()
}

// SetReveal updates the revealed continuation. While writing, the caret row
// is kept in view.
func (m *Model) SetReveal(reveal classroomdto.RevealView, caretOn bool) {
	m.reveal = reveal
	m.caretOn = caretOn
	m.relayout()
	if reveal.Active {
		bottom := m.viewport.YOffset + m.viewport.Height
		if m.layout.caretRow >= bottom {
			m.viewport.SetYOffset(m.layout.caretRow - m.viewport.Height + 1)
		}
	}
}

// SetSize sizes the board. SetOrigin tells it where its top-left cell sits
// on screen so mouse events can be mapped to words.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height)
	m.relayout()
}

func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

func (m Model) Title() string { return m.title }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if cmd, handled := m.handleMouse(msg); handled {
			m.render()
			return m, cmd
		}
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			m.render()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

// Selected returns the highlighted text, with paragraph breaks kept.
func (m Model) Selected() string {
	if !m.highlight.active {
		return ""
	}
	lo, hi := m.highlight.bounds()
	if lo < 0 || hi >= len(m.layout.words) {
		return ""
	}
	var sb strings.Builder
	for i := lo; i <= hi; i++ {
		if i > lo {
			if m.layout.words[i].para != m.layout.words[i-1].para {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(m.layout.words[i].text)
	}
	return sb.String()
}

// ─── input ───────────────────────────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	h := m.highlight
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
			return nil, false
		}
		idx, ok := m.wordAt(msg.X, msg.Y, false)
		if !ok {
			h.ClearSelection()
			return nil, true
		}
		*h = Highlight{active: true, dragging: true, button: msg.Button, anchor: idx, head: idx}
		return nil, true
	case tea.MouseActionMotion:
		if !h.dragging {
			return nil, false
		}
		if idx, ok := m.wordAt(msg.X, msg.Y, true); ok && idx != h.head {
			h.head = idx
			h.moved = true
		}
		return nil, true
	case tea.MouseActionRelease:
		if !h.dragging {
			return nil, false
		}
		h.dragging = false
		if h.button == tea.MouseButtonRight {
			text, x, y := m.Selected(), msg.X, msg.Y+1
			return func() tea.Msg { return MenuRequestMsg{Text: text, X: x, Y: y} }, true
		}
		if !h.moved {
			// a plain click selects nothing
			h.ClearSelection()
			return nil, true
		}
		text := m.Selected()
		return func() tea.Msg { return SelectionMsg{Text: text} }, true
	}
	return nil, false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	h := m.highlight
	if key.Matches(msg, m.keys.Menu) {
		text := m.Selected()
		x, y := m.anchorCell()
		return func() tea.Msg { return MenuRequestMsg{Text: text, X: x, Y: y} }, true
	}
	if !h.visual {
		if !key.Matches(msg, m.keys.Visual) {
			return nil, false
		}
		if idx, ok := m.firstVisibleWord(); ok {
			*h = Highlight{active: true, visual: true, anchor: idx, head: idx}
		}
		return nil, true
	}
	switch {
	case key.Matches(msg, m.keys.Visual), key.Matches(msg, m.keys.Cancel):
		h.ClearSelection()
		return nil, true
	case key.Matches(msg, m.keys.Commit):
		text := m.Selected()
		return func() tea.Msg { return SelectionMsg{Text: text} }, true
	case key.Matches(msg, m.keys.Left):
		h.head = max(0, h.head-1)
	case key.Matches(msg, m.keys.Right):
		h.head = min(len(m.layout.words)-1, h.head+1)
	case key.Matches(msg, m.keys.Up):
		h.head = m.wordOnRow(h.head, -1)
	case key.Matches(msg, m.keys.Down):
		h.head = m.wordOnRow(h.head, 1)
	default:
		return nil, false
	}
	m.scrollTo(m.layout.words[h.head].row)
	return nil, true
}

// anchorCell is the screen cell under the highlight head, or the board's
// top-left corner when nothing is highlighted.
func (m Model) anchorCell() (int, int) {
	if !m.highlight.active || m.highlight.head >= len(m.layout.words) {
		return m.originX + marginX, m.originY + 1
	}
	w := m.layout.words[m.highlight.head]
	return m.originX + marginX + w.col, m.originY + w.row - m.viewport.YOffset + 1
}

// wordAt maps a screen cell to a word. With nearest set, a cell between
// words resolves to the closest word on that row.
func (m Model) wordAt(x, y int, nearest bool) (int, bool) {
	row := y - m.originY + m.viewport.YOffset
	col := x - m.originX - marginX
	if y < m.originY || y >= m.originY+m.viewport.Height {
		return 0, false
	}
	best, found := -1, false
	for i, w := range m.layout.words {
		if w.row != row {
			continue
		}
		if col >= w.col && col < w.col+w.width {
			return i, true
		}
		if nearest && (w.col <= col || best < 0) {
			best, found = i, true
		}
	}
	return best, found
}

func (m Model) firstVisibleWord() (int, bool) {
	for i, w := range m.layout.words {
		if w.row >= m.viewport.YOffset {
			return i, true
		}
	}
	return 0, false
}

// wordOnRow moves from word idx to the closest word by column on the next
// row in direction dir.
func (m Model) wordOnRow(idx, dir int) int {
	from := m.layout.words[idx]
	target := -1
	for i := idx + dir; i >= 0 && i < len(m.layout.words); i += dir {
		if row := m.layout.words[i].row; row != from.row {
			target = row
			break
		}
	}
	if target < 0 {
		return idx
	}
	best, bestDist := idx, -1
	for i, w := range m.layout.words {
		if w.row != target {
			continue
		}
		dist := w.col - from.col
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (m *Model) scrollTo(row int) {
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

// ─── render ──────────────────────────────────────────────────────────────────

func (m *Model) relayout() {
	m.layout = buildLayout(m.body, m.reveal.Segments, m.width)
	if m.highlight.active && m.highlight.head >= len(m.layout.words) {
		m.highlight.ClearSelection()
	}
	m.render()
}

func (m *Model) render() {
	if m.title == "" {
		m.viewport.SetContent(theme.Muted.Render("  No lesson open. Press c for chapters."))
		return
	}
	lines := make([]strings.Builder, m.layout.rows+2)
	cols := make([]int, len(lines))
	pad := strings.Repeat(" ", marginX)

	lines[0].WriteString(pad + theme.Title.Render(m.title))
	if m.chapter != "" {
		lines[0].WriteString(theme.Muted.Render("  · " + m.chapter))
	}
	for i, w := range m.layout.words {
		b := &lines[w.row]
		if cols[w.row] == 0 {
			b.WriteString(pad)
		}
		if gap := w.col - cols[w.row]; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		switch {
		case m.highlight.contains(i):
			b.WriteString(theme.Selection.Render(w.text))
		case w.formula:
			b.WriteString(theme.Formula.Render(w.text))
		default:
			b.WriteString(w.text)
		}
		cols[w.row] = w.col + w.width
	}

	r := m.reveal
	switch {
	case r.ShowMarker:
		row := m.layout.caretRow
		if cols[row] == 0 {
			lines[row].WriteString(pad)
		}
		lines[row].WriteString(strings.Repeat(" ", max(0, m.layout.caretCol-cols[row])))
		if m.caretOn {
			lines[row].WriteString(theme.Caret.Render(caretGlyph))
		}
	case r.Total > 0 && !r.Active && !r.Complete:
		lines[m.layout.rows+1].WriteString(pad + theme.Muted.Render(m.hint))
	case r.Total > 0 && r.Complete:
		lines[m.layout.rows+1].WriteString(pad + theme.Done.Render("✓ lesson complete"))
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
}
