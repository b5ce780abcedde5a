package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	QuitAlt    key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding

	// Search box
	FocusSearch key.Binding
	Blur        key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Select   key.Binding
	Remove   key.Binding
	Collapse key.Binding
	Expand   key.Binding

	// Detail
	Close        key.Binding
	RateUp       key.Binding
	RateDown     key.Binding
	Rate         key.Binding
	Add          key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		QuitAlt: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),

		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "New search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc", "enter", "tab"),
			key.WithHelp("esc/enter", "Leave search box"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Open/close movie"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove from list"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Collapse results"),
		),
		Expand: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Collapse right pane"),
		),

		Close: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Close movie"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("right", "Rating +1"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("left", "Rating -1"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "Rate 1-10"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to list"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.Select, k.Tab, k.Help, k.QuitAlt}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusSearch, k.Blur},
		{k.Up, k.Down, k.Top, k.Bottom, k.Select, k.Tab},
		{k.Rate, k.RateUp, k.RateDown, k.Add, k.Close, k.HalfPageDown, k.HalfPageUp},
		{k.Remove, k.Collapse, k.Expand},
		{k.CycleTheme, k.Help, k.QuitAlt, k.Quit},
	}
}
