// Package tui provides the terminal user interface for Info Radar.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all normal-mode key bindings. None of them fire while the
// command line is active.
type Keymap struct {
	// Navigation
	Up       Key
	Down     Key
	Top      Key
	Bottom   Key
	HalfUp   Key
	HalfDown Key

	// Actions
	Select      Key
	Back        Key
	Quit        Key
	Help        Key
	Fetch       Key
	ToggleRead  Key
	ToggleStar  Key
	ToggleCols  Key
	CopyLink    Key
	CommandMode Key
	FilterMode  Key

	// Sort cycles
	SortRating    Key
	SortViews     Key
	SortComments  Key
	SortBookmarks Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:       Key{Key: "k", Help: "up"},
		Down:     Key{Key: "j", Help: "down"},
		Top:      Key{Key: "g", Help: "top (gg)"},
		Bottom:   Key{Key: "G", Help: "bottom"},
		HalfUp:   Key{Key: "ctrl+u", Help: "half page up"},
		HalfDown: Key{Key: "ctrl+d", Help: "half page down"},

		Select:      Key{Key: "enter", Help: "open article"},
		Back:        Key{Key: "esc", Help: "clear filter / back"},
		Quit:        Key{Key: "q", Help: "quit"},
		Help:        Key{Key: "?", Help: "help"},
		Fetch:       Key{Key: "f", Help: "fetch new articles"},
		ToggleRead:  Key{Key: "m", Help: "toggle read"},
		ToggleStar:  Key{Key: "i", Help: "toggle interesting"},
		ToggleCols:  Key{Key: "d", Help: "toggle detail columns"},
		CopyLink:    Key{Key: "y", Help: "copy link"},
		CommandMode: Key{Key: ":", Help: "command mode"},
		FilterMode:  Key{Key: "/", Help: "filter"},

		SortRating:    Key{Key: "r", Help: "sort by rating"},
		SortViews:     Key{Key: "v", Help: "sort by views"},
		SortComments:  Key{Key: "c", Help: "sort by comments"},
		SortBookmarks: Key{Key: "b", Help: "sort by bookmarks"},
	}
}

// HelpItems returns the bindings in display order for the help overlay.
func (k Keymap) HelpItems() []Key {
	return []Key{
		k.Down, k.Up, k.Top, k.Bottom, k.HalfDown, k.HalfUp,
		k.Select, k.Fetch, k.ToggleRead, k.ToggleStar, k.ToggleCols, k.CopyLink,
		k.SortRating, k.SortViews, k.SortComments, k.SortBookmarks,
		k.FilterMode, k.CommandMode, k.Help, k.Back, k.Quit,
	}
}

// KeyState tracks multi-key sequences (like 'gg').
type KeyState struct {
	WaitingG bool // Waiting for second 'g' in 'gg'
}

// HandleKey resolves a key press against the keymap, tracking the 'gg'
// sequence. Returns the action name and whether the key was consumed.
func (s *KeyState) HandleKey(msg tea.KeyMsg, keymap Keymap) (string, bool) {
	key := msg.String()

	if s.WaitingG {
		s.WaitingG = false
		if key == "g" {
			return "top", true
		}
		// Fall through: the aborted sequence does not swallow this key.
	}

	switch key {
	case keymap.Top.Key:
		s.WaitingG = true
		return "", false
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Bottom.Key:
		return "bottom", true
	case keymap.HalfUp.Key:
		return "half_up", true
	case keymap.HalfDown.Key:
		return "half_down", true
	case keymap.Select.Key:
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key:
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Fetch.Key:
		return "fetch", true
	case keymap.ToggleRead.Key:
		return "toggle_read", true
	case keymap.ToggleStar.Key:
		return "toggle_star", true
	case keymap.ToggleCols.Key:
		return "toggle_cols", true
	case keymap.CopyLink.Key:
		return "copy_link", true
	case keymap.CommandMode.Key:
		return "command_mode", true
	case keymap.FilterMode.Key:
		return "filter_mode", true
	case keymap.SortRating.Key:
		return "sort_rating", true
	case keymap.SortViews.Key:
		return "sort_views", true
	case keymap.SortComments.Key:
		return "sort_comments", true
	case keymap.SortBookmarks.Key:
		return "sort_bookmarks", true
	}

	return "", false
}
