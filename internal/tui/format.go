package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// compactNumber formats a count the way Habr displays them: 999, 1.2k, 12k,
// 1.5M. Zero renders as a dash.
func compactNumber(n float64) string {
	switch {
	case n == 0:
		return "-"
	case n < 1000:
		return strconv.Itoa(int(n))
	case n < 1000000:
		k := n / 1000
		if k < 10 {
			return strings.Replace(fmt.Sprintf("%.1fk", k), ".0k", "k", 1)
		}
		return fmt.Sprintf("%dk", int(k))
	default:
		m := n / 1000000
		if m < 10 {
			return strings.Replace(fmt.Sprintf("%.1fM", m), ".0M", "M", 1)
		}
		return fmt.Sprintf("%dM", int(m))
	}
}

// parseMetric converts a scraped display value ("12K", "1,5k", "3400") to a
// number usable as a sort key. Unparseable values sort as zero.
func parseMetric(val string) float64 {
	s := strings.TrimSpace(strings.ToLower(val))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n * multiplier
}

// truncate shortens s to the given display width, appending an ellipsis when
// something was cut. Width-aware so wide runes don't break the table.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads s with spaces on the left to the given display width.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// matchFilter reports whether title matches the `*`-wildcard pattern: every
// literal segment must occur in order, case-insensitively.
func matchFilter(title, pattern string) bool {
	if pattern == "" {
		return true
	}
	text := strings.ToLower(title)
	pos := 0
	for _, part := range strings.Split(strings.ToLower(pattern), "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(text[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}
	return true
}
