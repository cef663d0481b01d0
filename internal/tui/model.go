// Package tui implements the interactive search view: a Bubble Tea model
// that debounces keystrokes into search requests, renders scored results,
// pivots to similar bookmarks and drives the search-history dropdown.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/debounce"
	"github.com/runger/marks/internal/history"
	mlog "github.com/runger/marks/internal/log"
	"github.com/runger/marks/internal/render"
	"github.com/runger/marks/internal/sanitize"
)

const (
	// searchDelay is the quiet period after the last keystroke before a
	// search is issued.
	searchDelay = 300 * time.Millisecond

	// blurGrace is how long the history dropdown survives losing focus.
	blurGrace = 150 * time.Millisecond
)

// Status line texts.
const (
	statusSearching      = "Searching..."
	statusNoResults      = "No results found"
	statusNoSimilar      = "No similar bookmarks found"
	emptyResultsMessage  = "No matching bookmarks found"
	statusOllamaOffline  = "Ollama offline"
	statusPartsSeparator = " · "
)

// viewMode is the state of the results area.
type viewMode int

const (
	modeIdle      viewMode = iota // Empty input, nothing shown
	modeSearching                 // Debounce armed or request in flight
	modeResults                   // Text search results shown
	modeSimilar                   // Similarity results shown under a banner
	modeEmpty                     // Search succeeded with zero results
	modeError                     // Last request failed
)

// focusArea is the part of the view receiving keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// dropdown is the transient state of the history dropdown.
type dropdown struct {
	visible     bool
	highlighted int // -1 when nothing is highlighted
}

// initMsg is sent by Init() so the startup requests are issued via Update.
type initMsg struct{}

// runSearchMsg is the payload of the search debouncer.
type runSearchMsg struct {
	query string
}

// hideHistoryMsg is the payload of the blur grace debouncer.
type hideHistoryMsg struct{}

// searchDoneMsg is sent when a text search completes.
type searchDoneMsg struct {
	requestID uint64
	query     string
	resp      *api.Response
	err       error
}

// similarDoneMsg is sent when a similarity search completes.
type similarDoneMsg struct {
	requestID uint64
	source    api.Result
	resp      *api.Response
	err       error
}

// statusDoneMsg is sent when the startup status poll completes.
type statusDoneMsg struct {
	status *api.Status
	err    error
}

// Model is the Bubble Tea model of the search view.
type Model struct {
	searcher api.Searcher
	history  *history.Store
	logger   *slog.Logger

	sessionID string

	input     textinput.Model
	selectAll bool // Next edit replaces the whole input
	focus     focusArea
	dropdown  dropdown

	search      debounce.Debouncer
	blur        debounce.Debouncer
	searchDelay time.Duration
	blurDelay   time.Duration

	mode         viewMode
	status       string
	results      []api.Result
	selection    int         // Index into results; -1 when empty
	similarTo    *api.Result // Source of the similarity results
	lastQuery    string      // Query of the last text search issued
	initialQuery string

	requestID   uint64 // Monotonic counter for stale detection
	cancelFetch context.CancelFunc

	keys   keyMap
	help   help.Model
	styles render.Styles
	san    sanitize.Sanitizer

	width  int
	height int

	// result holds the URL chosen with Enter in the results pane.
	result string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStyles replaces the terminal palette.
func WithStyles(st render.Styles) Option {
	return func(m *Model) { m.styles = st }
}

// WithQuery starts the session with a search for q.
func WithQuery(q string) Option {
	return func(m *Model) { m.initialQuery = strings.TrimSpace(q) }
}

// WithDelays overrides the debounce and blur grace intervals.
func WithDelays(search, blur time.Duration) Option {
	return func(m *Model) {
		m.searchDelay = search
		m.blurDelay = blur
	}
}

// NewModel creates a search view backed by searcher. A nil store keeps
// history in memory for the session only.
func NewModel(searcher api.Searcher, store *history.Store, opts ...Option) Model {
	if store == nil {
		store = history.New(nil)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search bookmarks"
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		searcher:    searcher,
		history:     store,
		logger:      mlog.Discard(),
		sessionID:   uuid.NewString(),
		input:       ti,
		focus:       focusInput,
		dropdown:    dropdown{highlighted: -1},
		search:      debounce.New("search"),
		blur:        debounce.New("blur"),
		searchDelay: searchDelay,
		blurDelay:   blurGrace,
		selection:   -1,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      render.DefaultStyles(),
		san:         sanitize.Terminal{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.logger = m.logger.With("session_id", m.sessionID)
	return m
}

// Result returns the URL chosen by the user, or "" if none.
func (m Model) Result() string {
	return m.result
}

// SessionID identifies this session in the logs.
func (m Model) SessionID() string {
	return m.sessionID
}

// Init implements tea.Model. It sends an initMsg so that the startup
// requests are issued through Update, where state mutations are captured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return initMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - len(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
		return m, nil

	case initMsg:
		return m.handleInit()

	case debounce.FiredMsg:
		return m.handleFired(msg)

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case similarDoneMsg:
		return m.handleSimilarDone(msg)

	case statusDoneMsg:
		return m.handleStatusDone(msg)
	}

	// Cursor blink and other textinput internals.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleInit() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.fetchStatus()}
	if m.initialQuery != "" {
		m.input.SetValue(m.initialQuery)
		m.input.CursorEnd()
		cmds = append(cmds, m.startSearch(m.initialQuery))
	} else {
		m.showHistoryIfEmpty()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleFired(msg debounce.FiredMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.search.Owns(msg):
		payload, ok := m.search.Resolve(msg)
		if !ok {
			return m, nil
		}
		if run, ok := payload.(runSearchMsg); ok {
			return m, m.startSearch(run.query)
		}
	case m.blur.Owns(msg):
		if _, ok := m.blur.Resolve(msg); ok {
			m.hideHistory()
		}
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelInflight()
		m.search.Cancel()
		m.blur.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		return m, m.focusInput(true)

	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusInput {
			return m, m.focusResults()
		}
		return m, m.focusInput(false)

	case key.Matches(msg, m.keys.Hide):
		m.hideHistory()
		return m, nil
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleInputKey processes keys while the text input has focus. Bare
// letters are text here, so only non-rune keys reach the bindings.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyRunes {
		historyShown := m.historyShown()
		switch {
		case historyShown && key.Matches(msg, m.keys.Up):
			m.moveHighlight(-1)
			return m, nil

		case historyShown && key.Matches(msg, m.keys.Down):
			m.moveHighlight(1)
			return m, nil

		case historyShown && m.dropdown.highlighted >= 0 && key.Matches(msg, m.keys.Remove):
			m.removeHighlighted()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			return m.submitInput()

		case key.Matches(msg, m.keys.Similar):
			return m, m.findSimilar()

		case key.Matches(msg, m.keys.Back):
			return m, m.back()
		}
	}

	before := m.input.Value()
	if m.selectAll {
		m.selectAll = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			m.input.SetValue("")
			return m, m.inputChanged(before)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.inputChanged(before))
}

// handleResultsKey processes keys while the results pane has focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selection > 0 {
			m.selection--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selection < len(m.results)-1 {
			m.selection++
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		// Within the blur grace the dropdown is still live: Enter takes the
		// highlighted entry as if focus had never left the input.
		if m.historyShown() && m.dropdown.highlighted >= 0 {
			focusCmd := m.focusInput(false)
			next, searchCmd := m.submitInput()
			return next, tea.Batch(focusCmd, searchCmd)
		}
		if m.selection >= 0 && m.selection < len(m.results) {
			m.result = m.results[m.selection].URL
			m.cancelInflight()
			m.search.Cancel()
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Similar):
		return m, m.findSimilar()

	case key.Matches(msg, m.keys.Back):
		return m, m.back()
	}
	return m, nil
}

// inputChanged reacts to an edit of the input whose previous value was
// before. It returns nil when the edit did not change the value.
func (m *Model) inputChanged(before string) tea.Cmd {
	value := m.input.Value()
	if value == before {
		return nil
	}

	query := strings.TrimSpace(value)
	if query == "" {
		m.search.Cancel()
		m.clearView()
		return nil
	}

	// A reply to an earlier query must not land while this one waits.
	m.cancelInflight()
	m.requestID++

	m.hideHistory()
	m.status = statusSearching
	m.mode = modeSearching
	return m.search.Schedule(m.searchDelay, runSearchMsg{query: query})
}

// submitInput adopts the highlighted history entry or flushes the pending
// debounce.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.historyShown() && m.dropdown.highlighted >= 0 {
		entries := m.history.List()
		if m.dropdown.highlighted < len(entries) {
			q := entries[m.dropdown.highlighted]
			m.input.SetValue(q)
			m.input.CursorEnd()
			m.selectAll = false
			m.hideHistory()
			m.search.Cancel()
			return m, m.startSearch(q)
		}
	}

	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	m.hideHistory()
	m.search.Cancel()
	return m, m.startSearch(query)
}

// focusInput moves focus to the input, cancelling a pending blur. With
// selectAll the current text is selected so the next edit replaces it.
func (m *Model) focusInput(selectAll bool) tea.Cmd {
	m.blur.Cancel()
	m.focus = focusInput
	cmd := m.input.Focus()
	m.input.CursorEnd()
	m.selectAll = selectAll && m.input.Value() != ""
	m.showHistoryIfEmpty()
	return cmd
}

// focusResults moves focus to the results pane and starts the blur grace
// timer of the dropdown.
func (m *Model) focusResults() tea.Cmd {
	m.focus = focusResults
	m.selectAll = false
	m.input.Blur()
	if !m.dropdown.visible {
		return nil
	}
	return m.blur.Schedule(m.blurDelay, hideHistoryMsg{})
}

// startSearch cancels any in-flight request, increments requestID, and
// returns a tea.Cmd that runs the text search.
func (m *Model) startSearch(query string) tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.mode = modeSearching
	m.status = statusSearching
	m.lastQuery = query

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	m.logger.Debug("search issued", "request_id", reqID, "query", query)

	s := m.searcher
	return func() tea.Msg {
		resp, err := s.Search(ctx, query, api.SearchLimit)
		return searchDoneMsg{requestID: reqID, query: query, resp: resp, err: err}
	}
}

// findSimilar starts a similarity search for the selected result.
func (m *Model) findSimilar() tea.Cmd {
	if m.selection < 0 || m.selection >= len(m.results) {
		return nil
	}
	source := m.results[m.selection]

	m.search.Cancel()
	m.cancelInflight()
	m.requestID++
	m.status = statusSearching

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	m.logger.Debug("similar issued", "request_id", reqID, "source_id", source.ID)

	s := m.searcher
	return func() tea.Msg {
		resp, err := s.Similar(ctx, source.ID, api.SimilarLimit)
		return similarDoneMsg{requestID: reqID, source: source, resp: resp, err: err}
	}
}

// back leaves the similarity view, re-running the text search when the
// input still holds a query.
func (m *Model) back() tea.Cmd {
	if m.similarTo == nil {
		return nil
	}
	m.similarTo = nil
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.search.Cancel()
		m.clearView()
		return nil
	}
	m.search.Cancel()
	return m.startSearch(query)
}

// fetchStatus polls the service status once.
func (m *Model) fetchStatus() tea.Cmd {
	s := m.searcher
	return func() tea.Msg {
		st, err := s.Status(context.Background())
		return statusDoneMsg{status: st, err: err}
	}
}

// handleSearchDone processes the result of a text search.
func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		mlog.LogStaleResponse(m.logger, "search", msg.requestID, m.requestID)
		return m, nil
	}
	m.cancelInflight()

	if msg.err != nil {
		mlog.LogRequestFailed(m.logger, "search", msg.err)
		m.showError(msg.err)
		return m, nil
	}

	m.similarTo = nil
	if msg.resp == nil || len(msg.resp.Results) == 0 {
		m.mode = modeEmpty
		m.status = statusNoResults
		m.results = nil
		m.selection = -1
		return m, nil
	}

	m.mode = modeResults
	m.status = fmt.Sprintf("%d results", msg.resp.Total)
	m.results = msg.resp.Results
	m.selection = 0
	m.history.Record(msg.query)
	m.logger.Debug("search completed", "request_id", msg.requestID, "total", msg.resp.Total)
	return m, nil
}

// handleSimilarDone processes the result of a similarity search.
func (m Model) handleSimilarDone(msg similarDoneMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		mlog.LogStaleResponse(m.logger, "similar", msg.requestID, m.requestID)
		return m, nil
	}
	m.cancelInflight()

	if msg.err != nil {
		mlog.LogRequestFailed(m.logger, "similar", msg.err)
		m.showError(msg.err)
		return m, nil
	}

	if msg.resp == nil || len(msg.resp.Results) == 0 {
		m.status = statusNoSimilar
		return m, nil
	}

	source := msg.source
	m.similarTo = &source
	m.mode = modeSimilar
	m.status = fmt.Sprintf("%d similar bookmarks", msg.resp.Total)
	m.results = msg.resp.Results
	m.selection = 0
	return m, nil
}

// handleStatusDone shows the index summary unless a search has already
// taken over the status line.
func (m Model) handleStatusDone(msg statusDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || msg.status == nil {
		if msg.err != nil {
			m.logger.Debug("status poll failed", "error", msg.err)
		}
		return m, nil
	}
	if m.mode != modeIdle || m.status != "" {
		return m, nil
	}
	m.status = statusLine(msg.status)
	return m, nil
}

// statusLine formats the startup status.
func statusLine(st *api.Status) string {
	parts := []string{fmt.Sprintf("%d bookmarks indexed", st.IndexCount)}
	if !st.OllamaOK {
		parts = append(parts, statusOllamaOffline)
	}
	return strings.Join(parts, statusPartsSeparator)
}

// showError clears the results and reports err on the status line.
func (m *Model) showError(err error) {
	m.mode = modeError
	m.status = "Error: " + err.Error()
	m.results = nil
	m.selection = -1
	m.similarTo = nil
}

// clearView invalidates in-flight requests and empties the results and
// status line.
func (m *Model) clearView() {
	m.cancelInflight()
	m.requestID++
	m.mode = modeIdle
	m.status = ""
	m.results = nil
	m.selection = -1
	m.similarTo = nil
}

// cancelInflight cancels any in-progress request context.
func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

// historyShown reports whether the dropdown is on screen. It stays up
// while the blur grace timer runs.
func (m Model) historyShown() bool {
	if !m.dropdown.visible || m.history.IsEmpty() {
		return false
	}
	return m.focus == focusInput || m.blur.Pending()
}

// showHistoryIfEmpty opens the dropdown when the focused input is empty
// and there is history to show. An open dropdown keeps its highlight.
func (m *Model) showHistoryIfEmpty() {
	if m.focus != focusInput || strings.TrimSpace(m.input.Value()) != "" || m.history.IsEmpty() {
		return
	}
	if m.dropdown.visible {
		return
	}
	m.dropdown = dropdown{visible: true, highlighted: -1}
}

func (m *Model) hideHistory() {
	m.dropdown = dropdown{highlighted: -1}
}

// moveHighlight moves the dropdown highlight by delta within [-1, n-1].
func (m *Model) moveHighlight(delta int) {
	n := m.history.Len()
	h := m.dropdown.highlighted + delta
	if h < -1 {
		h = -1
	}
	if h > n-1 {
		h = n - 1
	}
	m.dropdown.highlighted = h
}

// removeHighlighted forgets the highlighted history entry.
func (m *Model) removeHighlighted() {
	entries := m.history.List()
	h := m.dropdown.highlighted
	if h < 0 || h >= len(entries) {
		return
	}
	m.history.Remove(entries[h])

	n := m.history.Len()
	if n == 0 {
		m.hideHistory()
		return
	}
	if m.dropdown.highlighted > n-1 {
		m.dropdown.highlighted = n - 1
	}
}
