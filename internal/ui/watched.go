package ui

import (
	"fmt"
	"strings"

	"github.com/five82/popcorn/internal/movie"
	"github.com/five82/popcorn/internal/watchlist"
)

// renderWatched renders the statistics header and the watch-list entries.
func (m Model) renderWatched(width, height int, focused bool) string {
	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 1)

	items := m.watchlist.List()
	lines := []string{
		bg.Render(formatStats(watchlist.ComputeStats(items)), styles.InfoText),
		bg.Render(strings.Repeat("─", inner), styles.FaintText),
	}

	if len(items) == 0 {
		lines = append(lines, styles.MutedText.Width(inner).Render("Rate a movie and press a to add it here"))
		return m.renderTitledBox("Movies you watched", strings.Join(lines, "\n"), width, height, focused)
	}

	visible := max(height-2-len(lines), 1)
	start, end := visibleWindow(m.watchedRow, len(items), visible)
	for i := start; i < end; i++ {
		text := watchedRow(items[i], inner)
		if i == m.watchedRow && focused {
			lines = append(lines, styles.Selected.Width(inner).Render(text))
			continue
		}
		style := styles.Text
		if i == m.watchedRow {
			style = styles.AccentText
		}
		lines = append(lines, bg.FillLine(bg.Render(text, style), inner))
	}
	return m.renderTitledBox("Movies you watched", strings.Join(lines, "\n"), width, height, focused)
}

// formatStats renders the watch-list summary line.
func formatStats(s watchlist.Stats) string {
	return fmt.Sprintf("#️⃣ %s  ⭐ %s  🌟 %s  ⏳ %s min",
		pluralize(s.Count, "movie"),
		formatMean(s.AvgIMDbRating, 1),
		formatMean(s.AvgUserRating, 1),
		formatMean(s.AvgRuntime, 0),
	)
}

// watchedRow renders one entry as "Title  ⭐ 8.8 🌟 10 ⏳ 148 min", shortening
// the title to fit width.
func watchedRow(w movie.Watched, width int) string {
	facts := fmt.Sprintf("  ⭐ %s 🌟 %d ⏳ %d min", formatIMDbRating(w.IMDbRating), w.UserRating, w.RuntimeMinutes)
	titleWidth := max(width-len([]rune(facts)), 8)
	return truncate(w.Title, titleWidth) + facts
}
