package tui

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inforadar/inforadar/internal/config"
	"github.com/inforadar/inforadar/internal/feed"
	"github.com/inforadar/inforadar/internal/radar"
	"github.com/inforadar/inforadar/internal/store"
	"github.com/inforadar/inforadar/internal/tui/cmdline"
	"github.com/inforadar/inforadar/internal/tui/styles"
)

// uiMode selects who receives keystrokes. While the command line owns input
// (modeCommand/modeFilter) no normal-mode shortcut fires; the routing switch
// in handleKeyMsg consults the mode before anything else.
type uiMode int

const (
	modeNormal uiMode = iota
	modeCommand
	modeFilter
)

// overlayKind identifies the active centered overlay, if any.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayPopup
	overlayDetail
)

// sortMode enumerates the article orderings cycled by the sort keys.
type sortMode int

const (
	sortDateDesc sortMode = iota
	sortRatingDesc
	sortRatingAsc
	sortViewsDesc
	sortViewsAsc
	sortCommentsDesc
	sortCommentsAsc
	sortBookmarksDesc
	sortBookmarksAsc
)

// knownCommands is the vocabulary of the ':' command line, used by Tab
// autocompletion and the dispatcher.
var knownCommands = []string{"help", "noh", "q", "quit", "test"}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	engine *radar.Engine
	config *config.Config

	// Data
	articles []feed.Article // everything loaded from the store
	visible  []feed.Article // after filter + sort

	// List state
	cursor        int // index into visible
	cursorVisible bool

	// Input state
	mode     uiMode
	cmdline  *cmdline.Editor
	numBuf   string // numeric jump-to-row buffer
	keyState KeyState
	keymap   Keymap

	// Autocomplete state (command mode only)
	acPrefix string
	acIndex  int
	acActive bool

	// Filter state
	filterQuery    string // live query applied to the table
	committedQuery string // last Enter-committed query, restored on Esc

	// Sort / display state
	sort        sortMode
	showDetails bool

	// Overlay state
	overlay overlayKind
	detail  *feed.Article
	popup   string

	// UI state
	statusMsg string
	statusErr bool
	loading   bool
	err       error
	width     int
	height    int
	spinner   spinner.Model
}

// NewApp creates a new App instance.
func NewApp(engine *radar.Engine, cfg *config.Config) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &App{
		engine:        engine,
		config:        cfg,
		cmdline:       cmdline.New(),
		keymap:        DefaultKeymap(),
		sort:          sortFromConfig(cfg.UI.DefaultSort),
		showDetails:   cfg.UI.ShowDetails,
		cursorVisible: true,
		loading:       true,
		spinner:       s,
	}
}

// sortFromConfig maps the configured default order to a sort mode. Unknown
// values fall back to newest first.
func sortFromConfig(name string) sortMode {
	switch name {
	case "rating":
		return sortRatingDesc
	case "views":
		return sortViewsDesc
	case "comments":
		return sortCommentsDesc
	case "bookmarks":
		return sortBookmarksDesc
	default:
		return sortDateDesc
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadArticles(),
	)
}

// Message types
type errMsg struct{ err error }
type articlesLoadedMsg struct{ articles []feed.Article }
type refreshDoneMsg struct{ added int }

// loadArticles reads the stored articles.
func (a *App) loadArticles() tea.Cmd {
	return func() tea.Msg {
		articles, err := a.engine.Articles(store.Filter{})
		if err != nil {
			return errMsg{err}
		}
		return articlesLoadedMsg{articles: articles}
	}
}

// runRefresh fetches new articles from all sources.
func (a *App) runRefresh() tea.Cmd {
	return func() tea.Msg {
		added, err := a.engine.Refresh(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return refreshDoneMsg{added: added}
	}
}

// applyFilterAndSort rebuilds the visible slice from the loaded articles and
// clamps the cursor.
func (a *App) applyFilterAndSort() {
	a.visible = a.visible[:0]
	for _, article := range a.articles {
		if matchFilter(article.Title, a.filterQuery) {
			a.visible = append(a.visible, article)
		}
	}

	key, descending := a.sortKey()
	if key != nil {
		sort.SliceStable(a.visible, func(i, j int) bool {
			ki, kj := key(a.visible[i]), key(a.visible[j])
			if descending {
				return ki > kj
			}
			return ki < kj
		})
	}

	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// sortKey returns the sort key extractor and direction for the current mode.
// Date-descending is the store's natural order, so it needs no re-sort.
func (a *App) sortKey() (func(feed.Article) float64, bool) {
	metric := func(v *int) float64 {
		if v == nil {
			return 0
		}
		return float64(*v)
	}

	switch a.sort {
	case sortRatingDesc:
		return func(ar feed.Article) float64 { return metric(ar.Rating) }, true
	case sortRatingAsc:
		return func(ar feed.Article) float64 { return metric(ar.Rating) }, false
	case sortViewsDesc:
		return func(ar feed.Article) float64 { return parseMetric(ar.Views) }, true
	case sortViewsAsc:
		return func(ar feed.Article) float64 { return parseMetric(ar.Views) }, false
	case sortCommentsDesc:
		return func(ar feed.Article) float64 { return metric(ar.Comments) }, true
	case sortCommentsAsc:
		return func(ar feed.Article) float64 { return metric(ar.Comments) }, false
	case sortBookmarksDesc:
		return func(ar feed.Article) float64 { return metric(ar.Bookmarks) }, true
	case sortBookmarksAsc:
		return func(ar feed.Article) float64 { return metric(ar.Bookmarks) }, false
	default:
		return nil, false
	}
}

// rowsPerPage is how many article rows fit between the header block and the
// footer at the current window height.
func (a *App) rowsPerPage() int {
	// header (2) + column header (2) + footer (1) + margin (1)
	rows := a.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// pageStart returns the index of the first visible row on the cursor's page.
func (a *App) pageStart() int {
	rows := a.rowsPerPage()
	return (a.cursor / rows) * rows
}

// currentPageSize returns how many rows the cursor's page actually holds.
func (a *App) currentPageSize() int {
	start := a.pageStart()
	size := len(a.visible) - start
	if rows := a.rowsPerPage(); size > rows {
		size = rows
	}
	if size < 0 {
		size = 0
	}
	return size
}

func (a *App) selected() *feed.Article {
	if a.cursor < 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return &a.visible[a.cursor]
}
