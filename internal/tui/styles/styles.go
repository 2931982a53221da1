// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items and the header
	Highlight = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00AA00"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// Title is the style for the header title
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HeaderInfo is for sort/filter indicators appended to the header
	HeaderInfo = lipgloss.NewStyle().
			Foreground(Subtle)

	// FilterQuery highlights the active filter text in the header
	FilterQuery = lipgloss.NewStyle().
			Foreground(WarningColor)
)

// Article table styles
var (
	// TableHeader is for the column header row
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	// RowSelected is the style for the row under the cursor
	RowSelected = lipgloss.NewStyle().
			Reverse(true).
			Foreground(Highlight)

	// RowRead dims articles already marked read
	RowRead = lipgloss.NewStyle().
		Faint(true)

	// RowIndex is for the row number column
	RowIndex = lipgloss.NewStyle().
			Foreground(Highlight).
			Faint(true)

	// CellDim is for secondary metadata cells (source, topic, date)
	CellDim = lipgloss.NewStyle().
		Foreground(Subtle)

	// RatingPositive / RatingNegative color the rating cell
	RatingPositive = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	RatingNegative = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
)

// Footer styles
var (
	// Pager is for the right-aligned page/count indicator
	Pager = lipgloss.NewStyle().
		Foreground(Subtle)

	// StatusError is for command error messages in the footer's left slot
	StatusError = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// StatusInfo is for transient informational messages
	StatusInfo = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Overlay styles
var (
	// OverlayPanel frames centered overlays (help, popup, detail)
	OverlayPanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(1, 3)

	// OverlayTitle is for overlay headings
	OverlayTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	// PopupText is for the popup body
	PopupText = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	// HelpKey and HelpDesc lay out help overlay entries
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		Width(14)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// Spinner is for the loading spinner
	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)
)
