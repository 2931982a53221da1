package tui

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inforadar/inforadar/internal/store"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case articlesLoadedMsg:
		a.loading = false
		// a.detail aliases the visible slice, whose backing array
		// applyFilterAndSort reuses; read the ID before it is rewritten.
		var detailID int64
		if a.detail != nil {
			detailID = a.detail.ID
		}
		a.articles = msg.articles
		a.applyFilterAndSort()
		// Re-resolve the overlay pointer into the fresh slice so status
		// toggles show up immediately.
		if a.detail != nil {
			a.detail = nil
			for i := range a.visible {
				if a.visible[i].ID == detailID {
					a.detail = &a.visible[i]
					break
				}
			}
			if a.detail == nil {
				a.overlay = overlayNone
			}
		}
		return a, nil

	case refreshDoneMsg:
		a.statusMsg = fmt.Sprintf("%d new articles", msg.added)
		a.statusErr = false
		return a, a.loadArticles()
	}

	return a, nil
}

// handleKeyMsg routes keyboard input. The mode switch comes first: while the
// command line is active it receives every key and no shortcut fires.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Only ctrl+c is truly global.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeCommand:
		return a.handleCommandKeyMsg(msg)
	case modeFilter:
		return a.handleFilterKeyMsg(msg)
	}

	// Overlays consume keys before normal-mode shortcuts.
	if a.overlay != overlayNone {
		return a.handleOverlayKeyMsg(msg)
	}

	return a.handleNormalKeyMsg(msg)
}

// handleOverlayKeyMsg processes input while an overlay is shown.
func (a *App) handleOverlayKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch a.overlay {
	case overlayPopup:
		// Any key dismisses the popup.
		a.overlay = overlayNone
		a.popup = ""
		return a, nil

	case overlayHelp:
		// Any key closes help, matching the reference behavior.
		a.overlay = overlayNone
		return a, nil

	case overlayDetail:
		switch key {
		case "esc", "enter", "q":
			a.overlay = overlayNone
			a.detail = nil
		case a.keymap.CopyLink.Key:
			if a.detail != nil {
				if err := clipboard.WriteAll(a.detail.Link); err != nil {
					a.setStatus("clipboard unavailable", true)
				} else {
					a.setStatus("link copied", false)
				}
			}
		case a.keymap.ToggleRead.Key:
			if a.detail != nil {
				return a, a.toggleRead(a.detail.ID, !a.detail.Read)
			}
		case a.keymap.ToggleStar.Key:
			if a.detail != nil {
				return a, a.toggleInteresting(a.detail.ID, !a.detail.Interesting)
			}
		}
		return a, nil
	}

	return a, nil
}

// handleNormalKeyMsg processes navigation-mode input.
func (a *App) handleNormalKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// A lingering command status clears on the next key press.
	if a.statusMsg != "" {
		a.setStatus("", false)
	}

	// Digits accumulate into a jump-to-visible-row buffer. Like the other
	// branches that bypass the keymap, they abort a pending 'g' sequence.
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		a.keyState.WaitingG = false
		return a.handleDigit(key)
	}
	a.numBuf = ""

	switch key {
	case a.keymap.CommandMode.Key:
		a.keyState.WaitingG = false
		a.mode = modeCommand
		a.cmdline.Activate(":")
		a.resetAutocomplete()
		return a, nil
	case a.keymap.FilterMode.Key:
		a.keyState.WaitingG = false
		a.mode = modeFilter
		a.cmdline.ActivateWithText("/", a.filterQuery)
		a.committedQuery = a.filterQuery
		return a, nil
	}

	action, consumed := a.keyState.HandleKey(msg, a.keymap)
	if !consumed {
		return a, nil
	}

	switch action {
	case "quit":
		return a, tea.Quit
	case "help":
		a.overlay = overlayHelp
	case "up":
		a.moveCursor(-1)
	case "down":
		a.moveCursor(1)
	case "top":
		a.cursor = 0
	case "bottom":
		if len(a.visible) > 0 {
			a.cursor = len(a.visible) - 1
		}
	case "half_up":
		a.moveCursor(-a.rowsPerPage() / 2)
	case "half_down":
		a.moveCursor(a.rowsPerPage() / 2)
	case "select":
		if article := a.selected(); article != nil {
			a.detail = article
			a.overlay = overlayDetail
			if !article.Read {
				return a, a.toggleRead(article.ID, true)
			}
		}
	case "back":
		return a.handleBack()
	case "fetch":
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.runRefresh())
	case "toggle_read":
		if article := a.selected(); article != nil {
			return a, a.toggleRead(article.ID, !article.Read)
		}
	case "toggle_star":
		if article := a.selected(); article != nil {
			return a, a.toggleInteresting(article.ID, !article.Interesting)
		}
	case "toggle_cols":
		a.showDetails = !a.showDetails
	case "copy_link":
		if article := a.selected(); article != nil {
			if err := clipboard.WriteAll(article.Link); err != nil {
				a.setStatus("clipboard unavailable", true)
			} else {
				a.setStatus("link copied", false)
			}
		}
	case "sort_rating":
		a.cycleSort(sortRatingDesc, sortRatingAsc)
	case "sort_views":
		a.cycleSort(sortViewsDesc, sortViewsAsc)
	case "sort_comments":
		a.cycleSort(sortCommentsDesc, sortCommentsAsc)
	case "sort_bookmarks":
		a.cycleSort(sortBookmarksDesc, sortBookmarksAsc)
	}

	return a, nil
}

// handleBack implements the layered Esc behavior: clear the filter first,
// then reset the sort, then quit.
func (a *App) handleBack() (tea.Model, tea.Cmd) {
	if a.filterQuery != "" || a.committedQuery != "" {
		a.filterQuery = ""
		a.committedQuery = ""
		a.applyFilterAndSort()
		return a, nil
	}
	if a.sort != sortDateDesc {
		a.sort = sortDateDesc
		a.applyFilterAndSort()
		return a, nil
	}
	return a, tea.Quit
}

// handleDigit accumulates a row number and jumps to it on the current page.
// A number overflowing the page resets the buffer to the latest digit.
func (a *App) handleDigit(key string) (tea.Model, tea.Cmd) {
	a.numBuf += key

	n, err := strconv.Atoi(a.numBuf)
	if err != nil {
		a.numBuf = ""
		return a, nil
	}

	pageSize := a.currentPageSize()
	if pageSize > 0 && n > pageSize {
		a.numBuf = key
		n, _ = strconv.Atoi(key)
	}

	if n >= 1 && n <= pageSize {
		a.cursor = a.pageStart() + n - 1
		a.cursorVisible = true
	} else {
		a.numBuf = ""
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	if len(a.visible) == 0 {
		return
	}
	a.cursorVisible = true
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
}

// cycleSort toggles desc -> asc for the pressed key's metric; pressing a
// different sort key starts at descending.
func (a *App) cycleSort(desc, asc sortMode) {
	switch a.sort {
	case desc:
		a.sort = asc
	default:
		a.sort = desc
	}
	a.applyFilterAndSort()
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

// toggleRead persists a read-status change and reloads.
func (a *App) toggleRead(id int64, read bool) tea.Cmd {
	return func() tea.Msg {
		if err := a.engine.SetRead(id, read); err != nil {
			return errMsg{err}
		}
		articles, err := a.engine.Articles(store.Filter{})
		if err != nil {
			return errMsg{err}
		}
		return articlesLoadedMsg{articles: articles}
	}
}

// toggleInteresting persists an interesting-status change and reloads.
func (a *App) toggleInteresting(id int64, interesting bool) tea.Cmd {
	return func() tea.Msg {
		if err := a.engine.SetInteresting(id, interesting); err != nil {
			return errMsg{err}
		}
		articles, err := a.engine.Articles(store.Filter{})
		if err != nil {
			return errMsg{err}
		}
		return articlesLoadedMsg{articles: articles}
	}
}
