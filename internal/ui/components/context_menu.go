package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"chalk/internal/ui/theme"
)

const menuWidth = 28

var menuStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Lavender).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

var menuItems = [][2]string{
	{"a", "Ask assistant"},
	{"n", "Add to notes"},
	{"y", "Copy"},
	{"esc", "Dismiss"},
}

// ContextMenu renders the selection action box. The quoted selection is cut
// to a single line.
func ContextMenu(selection string) string {
	quote := strings.Join(strings.Fields(selection), " ")
	quote = ansi.Truncate("“"+quote+"”", menuWidth-4, "…")

	lines := []string{theme.Muted.Render(quote), ""}
	for _, item := range menuItems {
		lines = append(lines, theme.Hot.Render(padCells(item[0], 4))+item[1])
	}
	return menuStyle.Width(menuWidth).Render(strings.Join(lines, "\n"))
}

// Overlay draws box over base with its top-left corner at cell (x, y). The
// box is shifted left or up to stay inside width x height.
func Overlay(base, box string, x, y, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, ansi.StringWidth(line))
	}
	x = clamp(x, 0, max(0, width-boxW))
	y = clamp(y, 0, max(0, len(baseLines)-len(boxLines)))

	for i, line := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		target := padCells(baseLines[row], width)
		left := padCells(ansi.Truncate(target, x, ""), x)
		right := ansi.TruncateLeft(target, x+boxW, "")
		baseLines[row] = left + padCells(line, boxW) + right
	}
	return strings.Join(baseLines, "\n")
}

func padCells(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
