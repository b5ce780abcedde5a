package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the results pane
	// takes half the screen instead of 40%.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for a 30% results pane.
	LayoutExtraWideWidth = 160
)

const (
	// chromeHeight is the header plus footer.
	chromeHeight = 2

	// collapsedPaneWidth is the width of a collapsed pane's stub.
	collapsedPaneWidth = 5

	// minResultsWidth keeps titles readable on narrow terminals.
	minResultsWidth = 24

	helpModalWidth = 46

	// searchBoxWidth is the visible width of the query field.
	searchBoxWidth = 32

	searchCharLimit = 120
)

// paneWidths splits the terminal between the results and right panes.
func paneWidths(total int, resultsCollapsed, rightCollapsed bool) (results, right int) {
	switch {
	case resultsCollapsed:
		return collapsedPaneWidth, total - collapsedPaneWidth
	case rightCollapsed:
		return total - collapsedPaneWidth, collapsedPaneWidth
	}

	switch {
	case total >= LayoutExtraWideWidth:
		results = total * 30 / 100
	case total < LayoutCompactWidth:
		results = total / 2
	default:
		results = total * 40 / 100
	}
	results = min(max(results, minResultsWidth), total)
	return results, total - results
}
