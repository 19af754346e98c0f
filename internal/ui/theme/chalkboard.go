package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, with the board pane drawn on Base.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")

	Board = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 3)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneFocused = Pane.BorderForeground(Lavender)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error   = lipgloss.NewStyle().Foreground(Red)
	Done    = lipgloss.NewStyle().Foreground(Green)
	Formula = lipgloss.NewStyle().Foreground(Yellow).Italic(true)
	Caret   = lipgloss.NewStyle().Foreground(Peach)

	// Selected words in the lesson pane.
	Selection = lipgloss.NewStyle().Background(Surface1).Foreground(Lavender)

	Learner = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Tutor   = lipgloss.NewStyle().Foreground(Green).Bold(true)
)
