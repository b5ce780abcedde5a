package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/movie"
	"github.com/five82/popcorn/internal/search"
)

// renderContent lays out the results pane next to the detail or watch-list pane.
func (m Model) renderContent() string {
	height := m.contentHeight()
	left, right := paneWidths(m.width, m.prefs.ResultsCollapsed, m.prefs.WatchedCollapsed)

	var resultsPane, rightPane string
	if m.prefs.ResultsCollapsed {
		resultsPane = m.renderCollapsed(left, height, m.focus == paneResults)
	} else {
		resultsPane = m.renderResults(left, height)
	}
	if m.prefs.WatchedCollapsed {
		rightPane = m.renderCollapsed(right, height, m.focus == paneRight)
	} else {
		rightPane = m.renderRight(right, height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, resultsPane, rightPane)
}

// renderCollapsed renders the stub left behind by a collapsed pane.
func (m Model) renderCollapsed(width, height int, focused bool) string {
	focused = focused && !m.input.Focused()
	return m.renderTitledBox("", "+", width, height, focused)
}

// renderResults renders the search results pane.
func (m Model) renderResults(width, height int) string {
	st := m.engine.State()
	focused := m.focus == paneResults && !m.input.Focused()
	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 1)

	var body string
	switch {
	case st.Loading:
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading...")
	case st.Err != "":
		body = styles.DangerText.Width(inner).Render("⛔ " + st.Err)
	case len(st.Results) == 0:
		body = styles.MutedText.Width(inner).Render(m.emptyResultsHint(st))
	default:
		body = m.renderResultRows(st.Results, inner, max(height-2, 1), bgColor, focused)
	}

	title := "Results"
	if len(st.Results) > 0 {
		title = fmt.Sprintf("Results (%d)", len(st.Results))
	}
	return m.renderTitledBox(title, body, width, height, focused)
}

// emptyResultsHint explains why the results pane is empty.
func (m Model) emptyResultsHint(st search.State) string {
	q := strings.TrimSpace(st.Query)
	if utf8.RuneCountInString(q) < m.minQuery {
		return fmt.Sprintf("Type at least %d characters to search", m.minQuery)
	}
	return fmt.Sprintf("No movies found for %q", q)
}

// renderResultRows renders the visible window of results.
func (m Model) renderResultRows(results []movie.Summary, width, visible int, bgColor string, focused bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	openID := m.viewer.State().SelectedID

	start, end := visibleWindow(m.resultRow, len(results), visible)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := results[i]
		marker := ternary(r.ID == openID, "▶ ", "  ")
		text := marker + truncate(titleWithYear(r.Title, r.Year), width-len([]rune(marker)))

		if i == m.resultRow && focused {
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		style := styles.Text
		if i == m.resultRow {
			style = styles.AccentText
		}
		if r.ID == openID {
			style = style.Bold(true)
		}
		lines = append(lines, bg.FillLine(bg.Render(text, style), width))
	}
	return strings.Join(lines, "\n")
}

// visibleWindow returns the [start, end) slice of a list of total rows that
// keeps cursor on screen when only visible rows fit.
func visibleWindow(cursor, total, visible int) (int, int) {
	if total <= 0 || visible <= 0 {
		return 0, 0
	}
	if total <= visible {
		return 0, total
	}
	cursor = clampIndex(cursor, total)
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	return start, start + visible
}
