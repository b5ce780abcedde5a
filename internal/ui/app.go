package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/search"
	"github.com/five82/popcorn/internal/watchlist"
)

// pane identifies which pane receives list navigation keys.
type pane int

const (
	paneResults pane = iota
	paneRight
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Search         *search.Engine
	Viewer         *detail.Viewer
	Watchlist      *watchlist.Manager
	Prefs          prefs.Prefs
	PrefsPath      string
	MinQueryLength int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	engine    *search.Engine
	viewer    *detail.Viewer
	watchlist *watchlist.Manager
	prefs     prefs.Prefs
	prefsPath string
	minQuery  int

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    pane
	showHelp bool

	input          textinput.Model
	spinner        spinner.Model
	detailViewport viewport.Model

	resultRow  int
	watchedRow int

	title     string
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	engine := opts.Search
	if engine == nil {
		engine = search.NewEngine(nil, search.Options{})
	}
	viewer := opts.Viewer
	if viewer == nil {
		viewer = detail.NewViewer(nil)
	}
	list := opts.Watchlist
	if list == nil {
		list = watchlist.Load(watchlist.NewMemoryStore(nil))
	}

	minQuery := opts.MinQueryLength
	if minQuery <= 0 {
		minQuery = search.DefaultMinQueryLength
	}

	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = prefs.Defaults().Theme
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search movies..."
	input.CharLimit = searchCharLimit
	input.Width = searchBoxWidth
	input.SetValue(engine.State().Query)
	input.Focus()

	m := Model{
		ctx:            ctx,
		engine:         engine,
		viewer:         viewer,
		watchlist:      list,
		prefs:          p,
		prefsPath:      opts.PrefsPath,
		minQuery:       minQuery,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(p.Theme),
		input:          input,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		detailViewport: viewport.New(0, 0),
		title:          viewer.Title(),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tea.SetWindowTitle(m.title),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case searchResultMsg:
		if m.engine.Commit(search.Result(msg)) {
			m.clampRows()
		}
		return m, nil

	case detailResultMsg:
		if m.viewer.Commit(detail.Result(msg)) {
			m.refreshDetail()
			m.detailViewport.GotoTop()
		}
		return m, m.syncTitle()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input housekeeping.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return m, tea.Quit
	}
	m.setStatus("", false)

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.QuitAlt):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.focusSearch()

	case key.Matches(msg, m.keys.Tab):
		m.togglePane()
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		m.prefs.ResultsCollapsed = !m.prefs.ResultsCollapsed
		m.savePrefs()
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		m.prefs.WatchedCollapsed = !m.prefs.WatchedCollapsed
		m.savePrefs()
		m.resize()
		return m, nil
	}

	if m.viewer.State().Open() {
		// The open movie covers the watch-list; its keys stop here.
		handled, cmd := m.handleDetailKey(msg)
		if handled || m.focus == paneRight {
			return m, cmd
		}
	}

	switch m.focus {
	case paneResults:
		return m, m.handleResultsKey(msg)
	default:
		m.handleWatchedKey(msg)
		return m, nil
	}
}

// handleInputKey feeds the search box and issues a lookup when the query
// text changed.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Blur) {
		m.input.Blur()
		m.focus = paneResults
		m.refreshDetail()
		return m, nil
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}

	searchCmd := m.applyQuery(m.input.Value())
	titleCmd := m.syncTitle()
	return m, tea.Batch(inputCmd, searchCmd, titleCmd)
}

// handleDetailKey handles the rating widget and close keys of an open movie.
func (m *Model) handleDetailKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.viewer.Close()
		m.refreshDetail()
		return true, m.syncTitle()

	case key.Matches(msg, m.keys.Rate):
		m.rate(ratingForKey(msg.String()))
		return true, nil

	case key.Matches(msg, m.keys.RateUp):
		m.adjustRating(1)
		return true, nil

	case key.Matches(msg, m.keys.RateDown):
		m.adjustRating(-1)
		return true, nil

	case key.Matches(msg, m.keys.Add):
		return true, m.addWatched()

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
		return true, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
		return true, nil
	}

	if m.focus == paneRight {
		switch {
		case key.Matches(msg, m.keys.Down):
			m.detailViewport.ScrollDown(1)
			return true, nil
		case key.Matches(msg, m.keys.Up):
			m.detailViewport.ScrollUp(1)
			return true, nil
		}
	}
	return false, nil
}

// handleResultsKey processes navigation in the results pane.
func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	count := len(m.engine.State().Results)
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.resultRow < count-1 {
			m.resultRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.resultRow > 0 {
			m.resultRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.resultRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.resultRow = count - 1
	case key.Matches(msg, m.keys.Select):
		return m.selectHighlighted()
	}
	return nil
}

// handleWatchedKey processes navigation in the watch-list pane.
func (m *Model) handleWatchedKey(msg tea.KeyMsg) {
	count := m.watchlist.Len()
	if count == 0 {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.watchedRow < count-1 {
			m.watchedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.watchedRow > 0 {
			m.watchedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.watchedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.watchedRow = count - 1
	case key.Matches(msg, m.keys.Remove):
		m.removeWatched()
	}
}

// applyQuery hands a changed query to the search engine and returns the
// lookup command, if any.
func (m *Model) applyQuery(query string) tea.Cmd {
	req := m.engine.SetQuery(m.ctx, query)
	m.resultRow = 0
	m.refreshDetail()
	return searchCmd(req)
}

// focusSearch focuses the search box and clears it.
func (m *Model) focusSearch() tea.Cmd {
	cmds := []tea.Cmd{m.input.Focus()}
	if m.input.Value() != "" {
		m.input.Reset()
		cmds = append(cmds, m.applyQuery(""), m.syncTitle())
	}
	m.refreshDetail()
	return tea.Batch(cmds...)
}

// selectHighlighted toggles the detail view for the highlighted result.
func (m *Model) selectHighlighted() tea.Cmd {
	results := m.engine.State().Results
	if m.resultRow < 0 || m.resultRow >= len(results) {
		return nil
	}
	req := m.viewer.Select(m.ctx, results[m.resultRow].ID)
	m.refreshDetail()
	m.detailViewport.GotoTop()
	return tea.Batch(detailCmd(req), m.syncTitle())
}

func (m *Model) rate(n int) {
	if !m.canRate() {
		return
	}
	m.viewer.SetRating(n)
	m.refreshDetail()
}

func (m *Model) adjustRating(delta int) {
	if !m.canRate() {
		return
	}
	m.viewer.AdjustRating(delta)
	m.refreshDetail()
}

// canRate reports whether the rating widget is shown for the open movie.
func (m *Model) canRate() bool {
	st := m.viewer.State()
	return st.Loaded && !m.watchlist.Contains(st.SelectedID)
}

// addWatched adds the open movie with the chosen rating and closes it.
func (m *Model) addWatched() tea.Cmd {
	if !m.viewer.CanAdd() || !m.canRate() {
		return nil
	}
	w, err := m.viewer.Watched()
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	added, err := m.watchlist.Add(w)
	switch {
	case err != nil:
		log.Printf("add %s to watch-list: %v", w.ID, err)
		m.setStatus(fmt.Sprintf("Could not save the watch-list: %v", err), true)
	case added:
		m.setStatus(fmt.Sprintf("Added %s (%d/10)", w.Title, w.UserRating), false)
	}

	m.viewer.Close()
	m.refreshDetail()
	m.clampRows()
	return m.syncTitle()
}

// removeWatched removes the highlighted watch-list entry.
func (m *Model) removeWatched() {
	items := m.watchlist.List()
	if m.watchedRow < 0 || m.watchedRow >= len(items) {
		return
	}
	w := items[m.watchedRow]
	removed, err := m.watchlist.Remove(w.ID)
	switch {
	case err != nil:
		log.Printf("remove %s from watch-list: %v", w.ID, err)
		m.setStatus(fmt.Sprintf("Could not save the watch-list: %v", err), true)
	case removed:
		m.setStatus("Removed "+w.Title, false)
	}
	m.clampRows()
}

func (m *Model) togglePane() {
	if m.focus == paneResults {
		m.focus = paneRight
	} else {
		m.focus = paneResults
	}
	m.refreshDetail()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.applyTheme()
	m.refreshDetail()
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.MutedText
	m.spinner.Style = styles.AccentText
}

// syncTitle returns a command updating the terminal title when it changed.
func (m *Model) syncTitle() tea.Cmd {
	title := m.viewer.Title()
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// clampRows keeps the list cursors inside their lists.
func (m *Model) clampRows() {
	m.resultRow = clampIndex(m.resultRow, len(m.engine.State().Results))
	m.watchedRow = clampIndex(m.watchedRow, m.watchlist.Len())
}

// resize recomputes component sizes after a window or layout change.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	_, right := paneWidths(m.width, m.prefs.ResultsCollapsed, m.prefs.WatchedCollapsed)
	m.detailViewport.Width = max(right-4, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.input.Width = min(searchBoxWidth, max(m.width/3, 8))
	m.refreshDetail()
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// shutdown cancels in-flight lookups so nothing lands after quit.
func (m *Model) shutdown() {
	m.engine.Close()
	m.viewer.Close()
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ratingForKey maps "1".."9" to 1..9 and "0" to 10.
func ratingForKey(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0
	}
	n := int(s[0] - '0')
	if n == 0 {
		return 10
	}
	return n
}

// Messages

type searchResultMsg search.Result

type detailResultMsg detail.Result

// Commands

func searchCmd(req *search.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return searchResultMsg(req.Run())
	}
}

func detailCmd(req *detail.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return detailResultMsg(req.Run())
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// opts.Context stops the program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	defer m.shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}
