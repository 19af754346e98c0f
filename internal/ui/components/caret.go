package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const caretBlink = 530 * time.Millisecond

// CaretBlinkMsg flips the writing caret. Tag filters out ticks from an
// earlier Start.
type CaretBlinkMsg struct{ Tag int }

// Caret is the blinking cursor drawn after the last revealed word.
type Caret struct {
	visible bool
	running bool
	tag     int
}

func (c Caret) Visible() bool { return c.running && c.visible }

// Start begins blinking. Calling it while running is a no-op.
func (c *Caret) Start() tea.Cmd {
	if c.running {
		return nil
	}
	c.running = true
	c.visible = true
	c.tag++
	return c.tick()
}

func (c *Caret) Stop() {
	c.running = false
	c.visible = false
}

func (c Caret) Update(msg tea.Msg) (Caret, tea.Cmd) {
	blink, ok := msg.(CaretBlinkMsg)
	if !ok || !c.running || blink.Tag != c.tag {
		return c, nil
	}
	c.visible = !c.visible
	return c, c.tick()
}

func (c Caret) tick() tea.Cmd {
	tag := c.tag
	return tea.Tick(caretBlink, func(time.Time) tea.Msg { return CaretBlinkMsg{Tag: tag} })
}
