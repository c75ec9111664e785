package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - conflicts
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// styleTitle for section headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleSuccess for all-clear messages.
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// styleWarning for paid/outdated annotations.
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// styleConflict for version conflict lines.
	styleConflict = lipgloss.NewStyle().Foreground(colorRed)

	// styleDim for secondary text.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	// styleHeader for table header cells.
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)

	// styleCell for table body cells.
	styleCell = lipgloss.NewStyle().Padding(0, 1)
)

// title formats a section heading.
func title(s string) string { return styleTitle.Render(s) }

// detail formats a secondary information line.
func detail(format string, args ...any) string {
	return styleDim.Render(fmt.Sprintf(format, args...))
}
