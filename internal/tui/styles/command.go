package styles

import "github.com/charmbracelet/lipgloss"

var (
	// CommandSuggestion is the style for autocomplete suggestions.
	CommandSuggestion = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	// CommandSuggestionSelected is the style for the selected autocomplete suggestion.
	CommandSuggestionSelected = lipgloss.NewStyle().
					Foreground(lipgloss.Color("#FFFFFF")).
					Background(lipgloss.Color("#444444"))

	// CommandLineContainer is the container for the footer's left slot.
	CommandLineContainer = lipgloss.NewStyle().
				Padding(0, 1)
)
