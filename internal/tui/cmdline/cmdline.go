// Package cmdline implements the single-line modal editor behind the
// vim-style command line and the search filter.
package cmdline

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// ActionType classifies the outcome of a handled key.
type ActionType int

const (
	// Continue means the editor stays active; the buffer or cursor may have changed.
	Continue ActionType = iota
	// Deactivated means the editor reset itself (Esc).
	Deactivated
	// Committed means Enter finalized the buffer; Text carries the command string.
	Committed
)

// Action is the result of HandleKey.
type Action struct {
	Type ActionType
	Text string // Set only for Committed.
}

// Editor holds the state of the command line: an editable rune buffer and a
// cursor offset in [0, len(buffer)]. While inactive the buffer is always empty
// and the cursor at zero, so no stale input can leak into the next invocation.
type Editor struct {
	active bool
	prompt string
	buffer []rune
	cursor int

	cursorStyle lipgloss.Style
	promptStyle lipgloss.Style
}

// New creates an inactive editor.
func New() *Editor {
	return &Editor{
		cursorStyle: lipgloss.NewStyle().Reverse(true),
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00")).Bold(true),
	}
}

// Active reports whether the editor currently owns keyboard input.
func (e *Editor) Active() bool { return e.active }

// Text returns the current buffer contents.
func (e *Editor) Text() string { return string(e.buffer) }

// Cursor returns the cursor offset into the buffer.
func (e *Editor) Cursor() int { return e.cursor }

// Activate enters edit mode with an empty buffer. The host must route all
// keystrokes to HandleKey until the editor deactivates.
func (e *Editor) Activate(prompt string) {
	e.active = true
	e.prompt = prompt
	e.buffer = nil
	e.cursor = 0
}

// ActivateWithText enters edit mode with pre-filled text and the cursor at the
// end. Used by the filter mode to resume editing a committed query.
func (e *Editor) ActivateWithText(prompt, text string) {
	e.Activate(prompt)
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

// SetText replaces the buffer and moves the cursor to the end. Used by
// command autocompletion.
func (e *Editor) SetText(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

// Reset returns the editor to the inactive state.
func (e *Editor) Reset() {
	e.active = false
	e.prompt = ""
	e.buffer = nil
	e.cursor = 0
}

// HandleKey processes one keystroke, given in bubbletea's KeyMsg.String()
// form. Keys outside the editing table leave the state untouched. Calling it
// while inactive is a host bug; it is a no-op rather than a runtime failure.
func (e *Editor) HandleKey(key string) Action {
	if !e.active {
		return Action{Type: Continue}
	}

	switch key {
	case "esc":
		e.Reset()
		return Action{Type: Deactivated}
	case "enter":
		text := string(e.buffer)
		e.Reset()
		return Action{Type: Committed, Text: text}
	case "left", "ctrl+b":
		e.moveLeft()
	case "right", "ctrl+f":
		e.moveRight()
	case "alt+b", "shift+left":
		e.moveWordLeft()
	case "alt+f", "shift+right":
		e.moveWordRight()
	case "ctrl+a", "home":
		e.cursor = 0
	case "ctrl+e", "end":
		e.cursor = len(e.buffer)
	case "backspace", "ctrl+h":
		e.deleteBack()
	case "delete":
		e.deleteForward()
	case "ctrl+w":
		e.deleteWordBack()
	case "ctrl+u":
		e.deleteToStart()
	case "space":
		e.insert(' ')
	default:
		for _, r := range insertableRunes(key) {
			e.insert(r)
		}
	}

	return Action{Type: Continue}
}

// View renders the prompt plus buffer with a reverse-video cursor cell. Pure
// function of the editor state; the bubbletea frame diff keeps the repaint
// confined to the footer.
func (e *Editor) View() string {
	var b strings.Builder
	b.WriteString(e.promptStyle.Render(e.prompt))
	b.WriteString(string(e.buffer[:e.cursor]))
	if e.cursor < len(e.buffer) {
		b.WriteString(e.cursorStyle.Render(string(e.buffer[e.cursor])))
		b.WriteString(string(e.buffer[e.cursor+1:]))
	} else {
		b.WriteString(e.cursorStyle.Render(" "))
	}
	return b.String()
}

func (e *Editor) insert(r rune) {
	e.buffer = append(e.buffer, 0)
	copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
	e.buffer[e.cursor] = r
	e.cursor++
}

func (e *Editor) deleteBack() {
	if e.cursor > 0 {
		e.buffer = append(e.buffer[:e.cursor-1], e.buffer[e.cursor:]...)
		e.cursor--
	}
}

func (e *Editor) deleteForward() {
	if e.cursor < len(e.buffer) {
		e.buffer = append(e.buffer[:e.cursor], e.buffer[e.cursor+1:]...)
	}
}

func (e *Editor) moveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) moveRight() {
	if e.cursor < len(e.buffer) {
		e.cursor++
	}
}

// A word is a maximal run of non-whitespace runes. Motion and deletion share
// the same definition so alt+b/alt+f and ctrl+w always agree on boundaries.

func (e *Editor) moveWordLeft() {
	for e.cursor > 0 && unicode.IsSpace(e.buffer[e.cursor-1]) {
		e.cursor--
	}
	for e.cursor > 0 && !unicode.IsSpace(e.buffer[e.cursor-1]) {
		e.cursor--
	}
}

func (e *Editor) moveWordRight() {
	n := len(e.buffer)
	for e.cursor < n && !unicode.IsSpace(e.buffer[e.cursor]) {
		e.cursor++
	}
	for e.cursor < n && unicode.IsSpace(e.buffer[e.cursor]) {
		e.cursor++
	}
}

func (e *Editor) deleteWordBack() {
	end := e.cursor
	e.moveWordLeft()
	e.buffer = append(e.buffer[:e.cursor], e.buffer[end:]...)
}

func (e *Editor) deleteToStart() {
	e.buffer = append([]rune(nil), e.buffer[e.cursor:]...)
	e.cursor = 0
}

// insertableRunes filters a KeyMsg string down to printable input. Multi-rune
// strings that name special keys ("tab", "ctrl+x", "f1", ...) are rejected;
// only plain typed text passes through.
func insertableRunes(key string) []rune {
	runes := []rune(key)
	if len(runes) != 1 {
		// Alt-modified and named keys arrive as multi-rune strings.
		return nil
	}
	if !unicode.IsPrint(runes[0]) {
		return nil
	}
	return runes
}
