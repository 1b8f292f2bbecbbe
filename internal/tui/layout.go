package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants
const (
	DefaultNameWidth = 24 // Name column width before the first WindowSizeMsg
	MinNameWidth     = 8
	MaxNameWidth     = 40

	// articleColumnWidth covers "article N" plus a few digits, the gap and
	// the content box border and padding.
	articleColumnWidth = 20
)

// nameColumnWidth picks the prisoner name column width for a terminal of
// the given width. Zero means the size is not known yet.
func nameColumnWidth(termWidth int) int {
	if termWidth <= 0 {
		return DefaultNameWidth
	}
	return max(MinNameWidth, min(MaxNameWidth, termWidth-articleColumnWidth))
}

// fitName pads or truncates name to exactly width terminal cells.
func fitName(name string, width int) string {
	if w := lipgloss.Width(name); w <= width {
		return name + strings.Repeat(" ", width-w)
	}
	if width <= 3 {
		return ansi.Truncate(name, width, "")
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(name, width, "...")
}
