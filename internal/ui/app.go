package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kpcc/internal/config"
	"github.com/five82/kpcc/internal/logtail"
	"github.com/five82/kpcc/internal/podcast"
	"github.com/five82/kpcc/internal/prefs"
	"github.com/five82/kpcc/internal/state"
	"github.com/five82/kpcc/pkg/kpcc"
)

// logFetchLimit is how many log lines the Logs view reads.
const logFetchLimit = 500

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *kpcc.Client
	Podcasts  *podcast.Reader
	Store     *state.Store
	Refresh   func() // asks the poller for an immediate refresh
	Config    *config.Config
	Logger    *slog.Logger
	PollTick  time.Duration
	ThemeName string
	StartView string
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *kpcc.Client
	podcasts  *podcast.Reader
	store     *state.Store
	refresh   func()
	config    *config.Config
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration
	now       func() time.Time

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	status      string

	// Data state
	snapshot   state.Snapshot
	logs       []logtail.Entry
	logErr     error
	categories []kpcc.Category
	member     *kpcc.Member

	// Selection and filtering
	selected  map[View]int
	search    textinput.Model
	searching bool
	query     string
	category  string

	// Detail state
	detailViewport viewport.Model
	detailKey      string // row shown in the viewport
	details        map[string]any
	detailErrs     map[string]error
	loading        map[string]bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 80

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		podcasts:    opts.Podcasts,
		store:       opts.Store,
		refresh:     opts.Refresh,
		config:      opts.Config,
		logger:      logger.With("component", "ui"),
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ParseView(opts.StartView),
		selected:    make(map[View]int),
		search:      search,
		details:     make(map[string]any),
		detailErrs:  make(map[string]error),
		loading:     make(map[string]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.client != nil {
		cmds = append(cmds, loadCategoriesCmd(m.ctx, m.client))
		if m.config != nil && m.config.MemberToken != "" {
			cmds = append(cmds, loadMemberCmd(m.ctx, m.client, m.config.MemberToken))
		}
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, m.refreshLogs())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeDetail()
		m.updateDetailViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.status == "Refreshing..." && !m.snapshot.LastUpdated.IsZero() {
			m.status = ""
		}
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil

	case logsMsg:
		m.logs, m.logErr = msg.entries, msg.err
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.logger.Warn("categories unavailable", "error", msg.err)
			return m, nil
		}
		m.categories = msg.categories
		return m, nil

	case memberMsg:
		if msg.err != nil {
			m.logger.Warn("member lookup failed", "error", msg.err)
			m.status = "Member lookup failed: " + describeError(msg.err)
			return m, nil
		}
		member := msg.member
		m.member = &member
		return m, nil

	case detailMsg:
		delete(m.loading, msg.key)
		if msg.err != nil {
			m.detailErrs[msg.key] = msg.err
			m.status = "Load failed: " + describeError(msg.err)
			m.logger.Warn("detail load failed", "key", msg.key, "error", msg.err)
		} else {
			delete(m.detailErrs, msg.key)
			m.details[msg.key] = msg.value
			m.status = ""
		}
		m.updateDetailViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.refresh()
			m.status = "Refreshing..."
		}
		if m.currentView == ViewLogs {
			return m, m.refreshLogs()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		return m.switchView(View((int(m.currentView) + 1) % len(viewNames)))

	case key.Matches(msg, m.keys.PrevView):
		return m.switchView(View((int(m.currentView) + len(viewNames) - 1) % len(viewNames)))

	case key.Matches(msg, m.keys.ViewHeadlines):
		return m.switchView(ViewHeadlines)
	case key.Matches(msg, m.keys.ViewPrograms):
		return m.switchView(ViewPrograms)
	case key.Matches(msg, m.keys.ViewSchedule):
		return m.switchView(ViewSchedule)
	case key.Matches(msg, m.keys.ViewEvents):
		return m.switchView(ViewEvents)
	case key.Matches(msg, m.keys.ViewLists):
		return m.switchView(ViewLists)
	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Escape):
		m.query = ""
		m.search.SetValue("")
		m.status = ""
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleCategory):
		if m.currentView != ViewHeadlines {
			return m, nil
		}
		m.category = categoryCycle(m.categories, m.category)
		m.selected[m.currentView] = 0
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.NowPlaying):
		m.jumpToOnAir()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		cmd := m.openSelected()
		return m, cmd

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfViewUp()
		return m, nil
	}

	return m.handleListKey(msg)
}

// handleSearchKey feeds the search box; the list filters as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = strings.TrimSpace(m.search.Value())
	m.selected[m.currentView] = 0
	m.updateDetailViewport()
	return m, cmd
}

// handleListKey moves the selection in the list pane.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.rows())
	if count == 0 {
		return m, nil
	}

	sel := m.selected[m.currentView]
	switch {
	case key.Matches(msg, m.keys.Down):
		if sel < count-1 {
			sel++
		}
	case key.Matches(msg, m.keys.Up):
		if sel > 0 {
			sel--
		}
	case key.Matches(msg, m.keys.Top):
		sel = 0
	case key.Matches(msg, m.keys.Bottom):
		sel = count - 1
	default:
		return m, nil
	}
	m.selected[m.currentView] = sel
	m.updateDetailViewport()
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if v == m.currentView {
		return m, nil
	}
	m.currentView = v
	m.status = ""
	m.clampSelection()
	m.updateDetailViewport()
	if v == ViewLogs {
		// Fetch immediately when entering logs
		return m, m.refreshLogs()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// rows returns the visible rows of the current view.
func (m Model) rows() []row {
	return rowsFor(m.currentView, m.snapshot, m.logs, m.query, m.category, m.now())
}

// selectedRow returns the row under the cursor.
func (m Model) selectedRow() (row, bool) {
	rows := m.rows()
	sel := m.selected[m.currentView]
	if sel < 0 || sel >= len(rows) {
		return row{}, false
	}
	return rows[sel], true
}

func (m *Model) clampSelection() {
	count := len(m.rows())
	sel := m.selected[m.currentView]
	switch {
	case count == 0:
		sel = 0
	case sel >= count:
		sel = count - 1
	case sel < 0:
		sel = 0
	}
	m.selected[m.currentView] = sel
}

// jumpToOnAir selects the occurrence currently on air, switching to the
// schedule view first.
func (m *Model) jumpToOnAir() {
	m.currentView = ViewSchedule
	m.query = ""
	m.search.SetValue("")
	for i, r := range m.rows() {
		if r.marker != "" {
			m.selected[ViewSchedule] = i
			m.status = ""
			m.updateDetailViewport()
			return
		}
	}
	m.status = "Nothing on air right now"
	m.clampSelection()
	m.updateDetailViewport()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, StartView: strings.ToLower(m.currentView.String())}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("prefs save failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

type categoriesMsg struct {
	categories []kpcc.Category
	err        error
}

type memberMsg struct {
	member kpcc.Member
	err    error
}

// detailMsg carries a loaded detail for the row with the given key.
type detailMsg struct {
	key   string
	value any
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loadCategoriesCmd(ctx context.Context, client *kpcc.Client) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.Categories(ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

func loadMemberCmd(ctx context.Context, client *kpcc.Client, token string) tea.Cmd {
	return func() tea.Msg {
		member, err := client.Member(ctx, token)
		return memberMsg{member: member, err: err}
	}
}

func (m Model) refreshLogs() tea.Cmd {
	if m.config == nil || m.config.LogFile == "" {
		return nil
	}
	path := m.config.LogFile
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, logFetchLimit)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		// Shut down by signal
		return nil
	}
	return err
}
