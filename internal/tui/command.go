package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inforadar/inforadar/internal/tui/cmdline"
)

// handleCommandKeyMsg processes input while the ':' command line is active.
// Every key goes to the editor; Tab is intercepted for autocompletion.
func (a *App) handleCommandKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		a.cycleAutocomplete()
		return a, nil
	}
	a.resetAutocomplete()

	action := a.cmdline.HandleKey(msg.String())
	switch action.Type {
	case cmdline.Deactivated:
		a.mode = modeNormal
	case cmdline.Committed:
		a.mode = modeNormal
		return a.executeCommand(action.Text)
	}
	return a, nil
}

// handleFilterKeyMsg processes input while the '/' filter line is active.
// The table filter tracks the buffer live.
func (a *App) handleFilterKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := a.cmdline.HandleKey(msg.String())
	switch action.Type {
	case cmdline.Deactivated:
		// Esc restores the last committed query.
		a.mode = modeNormal
		a.filterQuery = a.committedQuery
		a.applyFilterAndSort()
	case cmdline.Committed:
		a.mode = modeNormal
		a.committedQuery = action.Text
		a.filterQuery = action.Text
		a.applyFilterAndSort()
	default:
		a.filterQuery = a.cmdline.Text()
		a.applyFilterAndSort()
	}
	return a, nil
}

// executeCommand dispatches a committed command string. Unknown commands put
// an error message in the footer's left slot.
func (a *App) executeCommand(raw string) (tea.Model, tea.Cmd) {
	cmd := strings.TrimSpace(raw)
	if cmd == "" {
		return a, nil
	}

	switch cmd {
	case "q", "quit":
		return a, tea.Quit
	case "help", "?":
		a.overlay = overlayHelp
	case "noh":
		a.cursorVisible = false
	case "test":
		a.overlay = overlayPopup
		a.popup = "test"
	default:
		a.setStatus(fmt.Sprintf("command '%s' not found", cmd), true)
	}
	return a, nil
}

// cycleAutocomplete steps through the known commands sharing the prefix that
// was typed when Tab was first pressed.
func (a *App) cycleAutocomplete() {
	if !a.acActive {
		a.acActive = true
		a.acPrefix = a.cmdline.Text()
		a.acIndex = -1
	}

	matches := a.autocompleteMatches()
	if len(matches) == 0 {
		return
	}

	a.acIndex = (a.acIndex + 1) % len(matches)
	a.cmdline.SetText(matches[a.acIndex])
}

// autocompleteMatches returns the known commands sharing the captured prefix,
// sorted for a stable Tab cycle.
func (a *App) autocompleteMatches() []string {
	var matches []string
	for _, c := range knownCommands {
		if strings.HasPrefix(c, a.acPrefix) {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)
	return matches
}

func (a *App) resetAutocomplete() {
	a.acActive = false
	a.acPrefix = ""
	a.acIndex = -1
}
