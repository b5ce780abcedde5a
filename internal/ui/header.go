package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

const logoText = "🍿 usePopcorn"

// renderHeader renders the top bar: logo, search box and result count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(3)

	count := len(m.engine.State().Results)
	parts := []string{
		bg.Render(logoText, styles.Logo),
		m.input.View(),
		bg.Render("Found", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", count), styles.Text.Bold(true)) + bg.Space() +
			bg.Render(ternary(count == 1, "result", "results"), styles.MutedText),
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the status line, or key hints when there is no status.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.status != "" {
		style := styles.SuccessText
		if m.statusErr {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(bg.Render(truncate(m.status, m.width-2), style))
	}

	bindings := m.keys.ShortHelp()
	if m.viewer.State().Open() {
		bindings = []key.Binding{m.keys.Rate, m.keys.Add, m.keys.Close, m.keys.Help}
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(hints, " · "))
}
