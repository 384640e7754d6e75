package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	noteStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	dividerStyle  = lipgloss.NewStyle().Faint(true)
)

// padToWidth pads or truncates a styled line to an exact display width.
func padToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
