package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inforadar/inforadar/internal/feed"
	"github.com/inforadar/inforadar/internal/tui/styles"
)

const (
	colIndexWidth    = 3
	colSourceWidth   = 10
	colTopicWidth    = 14
	colDateWidth     = 10
	colMetricWidth   = 6
	minTitleWidth    = 16
	defaultViewWidth = 100
)

// View implements tea.Model.
func (a *App) View() string {
	if a.err != nil {
		return styles.StatusError.Render(fmt.Sprintf("error: %v", a.err)) +
			"\n\nPress q to quit.\n"
	}

	width := a.width
	if width <= 0 {
		width = defaultViewWidth
	}

	switch a.overlay {
	case overlayHelp:
		return a.centerOverlay(a.helpView())
	case overlayPopup:
		return a.centerOverlay(a.popupView())
	case overlayDetail:
		return a.centerOverlay(a.detailView())
	}

	var b strings.Builder
	lines := 0

	b.WriteString(a.headerView(width))
	b.WriteString("\n\n")
	lines += 2

	if a.loading && len(a.visible) == 0 {
		b.WriteString(" " + a.spinner.View() + " loading articles...\n")
		lines++
	} else {
		b.WriteString(a.tableHeaderView(width))
		b.WriteString("\n\n")
		lines += 2
		start := a.pageStart()
		end := start + a.currentPageSize()
		for i := start; i < end; i++ {
			b.WriteString(a.rowView(i, width))
			b.WriteString("\n")
			lines++
		}
		if len(a.visible) == 0 {
			b.WriteString(styles.CellDim.Render(" no articles, press f to fetch"))
			b.WriteString("\n")
			lines++
		}
	}

	// Pin the footer to the bottom row so the pager never jumps around.
	if a.height > 0 {
		for lines < a.height-1 {
			b.WriteString("\n")
			lines++
		}
	}

	b.WriteString(a.footerView(width))
	return b.String()
}

// headerView renders the title line with the active sort and filter.
func (a *App) headerView(width int) string {
	title := styles.Title.Render(" Info Radar")

	var info []string
	if label := a.sortLabel(); label != "" {
		info = append(info, "sort: "+label)
	}
	if a.loading {
		info = append(info, a.spinner.View()+" fetching")
	}

	line := title
	if len(info) > 0 {
		line += styles.HeaderInfo.Render("  [" + strings.Join(info, " | ") + "]")
	}
	if a.filterQuery != "" {
		line += styles.FilterQuery.Render("  /" + a.filterQuery)
	}
	if lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func (a *App) sortLabel() string {
	switch a.sort {
	case sortRatingDesc:
		return "rating ↓"
	case sortRatingAsc:
		return "rating ↑"
	case sortViewsDesc:
		return "views ↓"
	case sortViewsAsc:
		return "views ↑"
	case sortCommentsDesc:
		return "comments ↓"
	case sortCommentsAsc:
		return "comments ↑"
	case sortBookmarksDesc:
		return "bookmarks ↓"
	case sortBookmarksAsc:
		return "bookmarks ↑"
	default:
		return ""
	}
}

func (a *App) titleWidth(width int) int {
	fixed := colIndexWidth + 1 + 2 + // index, gap, interest marker
		colSourceWidth + 1 +
		colTopicWidth + 1 +
		colDateWidth + 1
	if a.showDetails {
		fixed += 4 * (colMetricWidth + 1)
	}
	w := width - fixed - 2
	if w < minTitleWidth {
		w = minTitleWidth
	}
	return w
}

func (a *App) tableHeaderView(width int) string {
	cells := []string{
		padLeft("#", colIndexWidth),
		"  ",
		padRight("Article", a.titleWidth(width)),
		padRight("Src", colSourceWidth),
		padRight("Topic", colTopicWidth),
		padRight("Date", colDateWidth),
	}
	if a.showDetails {
		cells = append(cells,
			padLeft("Rate", colMetricWidth),
			padLeft("Views", colMetricWidth),
			padLeft("Comm", colMetricWidth),
			padLeft("Book", colMetricWidth),
		)
	}
	return styles.TableHeader.Render(" " + strings.Join(cells, " "))
}

// rowView renders one article row. The index shown is the row's position on
// the current page, matching the numeric jump keys.
func (a *App) rowView(i int, width int) string {
	article := a.visible[i]

	marker := " "
	if article.Interesting {
		marker = "*"
	}

	topic := ""
	if len(article.Tags) > 0 {
		topic = article.Tags[0]
	}

	cells := []string{
		padLeft(fmt.Sprintf("%d", i-a.pageStart()+1), colIndexWidth),
		marker + " ",
		padRight(truncate(article.Title, a.titleWidth(width)), a.titleWidth(width)),
		padRight(truncate(article.Source, colSourceWidth), colSourceWidth),
		padRight(truncate(topic, colTopicWidth), colTopicWidth),
		padRight(article.Published.Format("2006-01-02"), colDateWidth),
	}
	if a.showDetails {
		cells = append(cells,
			padLeft(ratingCell(article.Rating), colMetricWidth),
			padLeft(compactNumber(parseMetric(article.Views)), colMetricWidth),
			padLeft(intCell(article.Comments), colMetricWidth),
			padLeft(intCell(article.Bookmarks), colMetricWidth),
		)
	}
	if i == a.cursor && a.cursorVisible {
		return styles.RowSelected.Render(" " + strings.Join(cells, " "))
	}
	if article.Read {
		return styles.RowRead.Render(" " + strings.Join(cells, " "))
	}

	// Cell-level colors only on plain rows; a row-level style would be cut
	// short by the nested resets.
	cells[0] = styles.RowIndex.Render(cells[0])
	if a.showDetails && article.Rating != nil {
		switch {
		case *article.Rating > 0:
			cells[6] = styles.RatingPositive.Render(cells[6])
		case *article.Rating < 0:
			cells[6] = styles.RatingNegative.Render(cells[6])
		}
	}
	return " " + strings.Join(cells, " ")
}

func ratingCell(rating *int) string {
	if rating == nil {
		return "-"
	}
	if *rating > 0 {
		return fmt.Sprintf("+%d", *rating)
	}
	return fmt.Sprintf("%d", *rating)
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return compactNumber(float64(*v))
}

// footerView renders the bottom line: the command line or a status message on
// the left, the pager flush right.
func (a *App) footerView(width int) string {
	var left string
	switch {
	case a.mode == modeCommand:
		left = a.cmdline.View() + a.suggestionsView()
	case a.mode == modeFilter:
		left = a.cmdline.View()
	case a.statusMsg != "" && a.statusErr:
		left = styles.StatusError.Render(a.statusMsg)
	case a.statusMsg != "":
		left = styles.StatusInfo.Render(a.statusMsg)
	default:
		left = styles.StatusInfo.Render("? for help")
	}

	right := styles.Pager.Render(a.pagerText())

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

// suggestionsView lists the Tab-completion candidates next to the command
// line while a cycle is in progress.
func (a *App) suggestionsView() string {
	if !a.acActive {
		return ""
	}
	matches := a.autocompleteMatches()
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, len(matches))
	for i, m := range matches {
		if i == a.acIndex {
			parts[i] = styles.CommandSuggestionSelected.Render(m)
		} else {
			parts[i] = styles.CommandSuggestion.Render(m)
		}
	}
	return styles.CommandLineContainer.Render(strings.Join(parts, " "))
}

// pagerText is the stable right-aligned indicator, e.g. "Page 2 of 5 | Items 104".
func (a *App) pagerText() string {
	rows := a.rowsPerPage()
	total := (len(a.visible) + rows - 1) / rows
	if total < 1 {
		total = 1
	}
	page := a.cursor/rows + 1
	return fmt.Sprintf("Page %d of %d | Items %d", page, total, len(a.visible))
}

func (a *App) helpView() string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range a.keymap.HelpItems() {
		b.WriteString(styles.HelpKey.Render(k.Key))
		b.WriteString(styles.HelpDesc.Render(k.Help))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("press any key to close"))
	return styles.OverlayPanel.Render(b.String())
}

func (a *App) popupView() string {
	var b strings.Builder
	b.WriteString(styles.PopupText.Render(a.popup))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("press any key to close"))
	return styles.OverlayPanel.Render(b.String())
}

func (a *App) detailView() string {
	if a.detail == nil {
		return ""
	}
	article := a.detail

	var b strings.Builder
	b.WriteString(styles.OverlayTitle.Render(article.Title))
	b.WriteString("\n\n")

	writeField := func(name, value string) {
		b.WriteString(styles.HelpKey.Render(name))
		b.WriteString(value)
		b.WriteString("\n")
	}

	writeField("Link", article.Link)
	writeField("Source", article.Source)
	writeField("Published", article.Published.Format("2006-01-02 15:04"))
	if len(article.Tags) > 0 {
		writeField("Tags", strings.Join(article.Tags, ", "))
	}
	writeField("Rating", ratingCell(article.Rating))
	if article.Views != "" {
		writeField("Views", article.Views)
	}
	writeField("Comments", intCell(article.Comments))
	writeField("Bookmarks", intCell(article.Bookmarks))
	if article.ReadingTime != "" {
		writeField("Reading", article.ReadingTime)
	}
	writeField("Status", detailStatus(article))

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("y copy link · m toggle read · i toggle interesting · esc close"))
	return styles.OverlayPanel.Render(b.String())
}

func detailStatus(article *feed.Article) string {
	parts := []string{"unread"}
	if article.Read {
		parts[0] = "read"
	}
	if article.Interesting {
		parts = append(parts, "interesting")
	}
	return strings.Join(parts, ", ")
}

// centerOverlay places a panel in the middle of the window.
func (a *App) centerOverlay(panel string) string {
	if a.width <= 0 || a.height <= 0 {
		return panel
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
