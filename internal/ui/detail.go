package ui

import (
	"fmt"
	"strings"

	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/movie"
)

// renderRight renders the open movie, or the watch-list when none is open.
func (m Model) renderRight(width, height int) string {
	focused := m.focus == paneRight && !m.input.Focused()
	st := m.viewer.State()
	if !st.Open() {
		return m.renderWatched(width, height, focused)
	}

	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 1)

	var body string
	switch {
	case st.Loading:
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading...")
	case st.Err != "":
		body = styles.DangerText.Width(inner).Render("⛔ " + st.Err)
	default:
		body = m.detailViewport.View()
	}

	title := "Movie"
	if st.Loaded {
		title = truncate(st.Detail.Title, inner-4)
	}
	return m.renderTitledBox(title, body, width, height, focused)
}

// refreshDetail re-renders the loaded movie into the detail viewport.
func (m *Model) refreshDetail() {
	st := m.viewer.State()
	if !st.Loaded {
		m.detailViewport.SetContent("")
		return
	}
	focused := m.focus == paneRight && !m.input.Focused()
	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	m.detailViewport.SetContent(m.renderDetailBody(st, m.detailViewport.Width, bgColor))
}

// renderDetailBody renders the facts, rating widget and credits of a movie.
func (m Model) renderDetailBody(st detail.State, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	d := st.Detail
	width = max(width, 10)

	var lines []string
	add := func(s string) {
		lines = append(lines, s)
	}

	add(styles.Text.Bold(true).Width(width).Render(titleWithYear(d.Title, d.Year)))
	facts := make([]string, 0, 2)
	if d.Released != "" {
		facts = append(facts, d.Released)
	}
	facts = append(facts, d.RuntimeLabel())
	add(styles.MutedText.Render(strings.Join(facts, " · ")))
	if d.Genre != "" {
		add(styles.MutedText.Width(width).Render(d.Genre))
	}
	add(styles.WarningText.Render("⭐ " + formatIMDbRating(d.IMDbRating) + " IMDb rating"))
	add("")

	if w, ok := m.watchlist.Get(d.ID); ok {
		add(styles.AccentText.Render(fmt.Sprintf("You rated this movie %d ⭐", w.UserRating)))
	} else {
		add(m.renderStars(st.Rating, styles))
		if m.viewer.CanAdd() {
			add(styles.SuccessText.Render("a") + styles.MutedText.Render(" add to list"))
		} else {
			add(styles.MutedText.Render("Rate with 1-9, 0 for 10, or left/right"))
		}
	}
	add("")

	if d.Plot != "" {
		add(styles.Text.Italic(true).Width(width).Render(d.Plot))
		add("")
	}
	if d.Actors != "" {
		add(styles.Text.Width(width).Render("Starring " + d.Actors))
	}
	if d.Director != "" {
		add(styles.Text.Width(width).Render("Directed by " + d.Director))
	}
	if d.PosterURL != "" {
		add("")
		add(styles.FaintText.Render("Poster " + truncateMiddle(d.PosterURL, width-7)))
	}
	return strings.Join(lines, "\n")
}

// renderStars renders the 1..10 rating widget.
func (m Model) renderStars(rating int, styles Styles) string {
	var b strings.Builder
	for i := movie.MinRating; i <= movie.MaxRating; i++ {
		if i > movie.MinRating {
			b.WriteString(styles.StarEmpty.Render(" "))
		}
		if i <= rating {
			b.WriteString(styles.Star.Render("★"))
		} else {
			b.WriteString(styles.StarEmpty.Render("☆"))
		}
	}
	label := "  -"
	if rating > 0 {
		label = fmt.Sprintf("  %d", rating)
	}
	b.WriteString(styles.Star.Render(label))
	return b.String()
}
