package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/desertthunder/toptracks/internal/viewer"
)

// CaptureFunc waits for the implicit-grant redirect and returns its URL fragment.
//
// ready is called once the redirect target is listening; it is where the user gets sent to log in.
type CaptureFunc func(ctx context.Context, ready func() error) (string, error)

// Options configures a [Model].
type Options struct {
	Viewer    *viewer.Viewer
	Navigator viewer.Navigator
	Capture   CaptureFunc
	Logger    *log.Logger
	// InitialURL, when set, is passed through the token extractor once on start.
	InitialURL string
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	viewer     *viewer.Viewer
	nav        viewer.Navigator
	capture    CaptureFunc
	logger     *log.Logger
	initialURL string

	width    int
	height   int
	cursor   int
	offset   int
	waiting  bool
	fetching int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Navigator == nil {
		opts.Navigator = shared.BrowserNavigator{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Model{
		ctx:        ctx,
		viewer:     opts.Viewer,
		nav:        opts.Navigator,
		capture:    opts.Capture,
		logger:     opts.Logger,
		initialURL: opts.InitialURL,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init runs the token extractor on the initial URL, if any.
func (m *Model) Init() tea.Cmd {
	if m.initialURL != "" {
		m.viewer.ExtractToken(m.initialURL)
	}
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll(len(m.viewer.Snapshot().Tracks))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		view := m.viewer.View()
		switch view.Kind {
		case viewer.LoginView:
			return m.handleLoginKeys(msg)
		case viewer.FetchView:
			return m.handleFetchKeys(msg)
		case viewer.GridView:
			return m.handleGridKeys(msg, view.Cards)
		}

	case Msg:
		switch msg.kind {
		case MsgFragmentCaptured:
			m.waiting = false
			res := msg.data.(fragmentResult)
			if res.err != nil {
				m.logger.Error("login did not complete", "err", res.err)
				return m, nil
			}
			m.viewer.ExtractToken(res.fragment)
			m.cursor, m.offset = 0, 0
		case MsgTracksFetched:
			m.fetching = max(m.fetching-1, 0)
			m.cursor, m.offset = 0, 0
		case MsgLinkOpened:
			if err, ok := msg.data.(error); ok && err != nil {
				m.logger.Error("failed to open track", "err", err)
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.login) && !m.waiting {
		m.waiting = true
		return m, m.login()
	}
	return m, nil
}

func (m *Model) handleFetchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.fetch) {
		m.fetching++
		return m, m.fetch()
	}
	return m, nil
}

func (m *Model) handleGridKeys(msg tea.KeyMsg, cards []viewer.Card) (tea.Model, tea.Cmd) {
	cols := gridColumns(m.width)
	last := len(cards) - 1

	switch {
	case key.Matches(msg, m.keys.open):
		if m.cursor > last {
			return m, nil
		}
		return m, m.open(cards[m.cursor].Link)
	case key.Matches(msg, m.keys.left):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.right):
		m.cursor = min(m.cursor+1, last)
	case key.Matches(msg, m.keys.up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.down):
		m.cursor = min(m.cursor+cols, last)
	}

	m.scroll(len(cards))
	return m, nil
}

// scroll keeps the cursor's row inside the visible window.
func (m *Model) scroll(count int) {
	if count == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(m.cursor, count-1)

	cols := gridColumns(m.width)
	rows := m.visibleRows()
	row := m.cursor / cols

	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
}

// visibleRows is how many card rows fit under the heading and above the help line.
func (m *Model) visibleRows() int {
	if m.height == 0 {
		return 1 << 16
	}
	// heading (2) + help (2), each card row is cardHeight plus its border
	return max((m.height-4)/(cardHeight+2), 1)
}

func (m *Model) login() tea.Cmd {
	return func() tea.Msg {
		ready := func() error { return m.viewer.Login(m.nav) }
		if m.capture == nil {
			return fragmentCapturedMsg("", ready())
		}
		fragment, err := m.capture(m.ctx, ready)
		return fragmentCapturedMsg(fragment, err)
	}
}

func (m *Model) fetch() tea.Cmd {
	return func() tea.Msg {
		m.viewer.FetchTopTracks(m.ctx)
		return tracksFetchedMsg()
	}
}

func (m *Model) open(link string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg(m.nav.Navigate(link))
	}
}

// View renders the UI based on the current viewer state.
func (m *Model) View() string {
	view := m.viewer.View()
	heading := styles.title.Render(view.Heading)

	switch view.Kind {
	case viewer.LoginView:
		return m.renderLogin(heading, view)
	case viewer.FetchView:
		return m.renderFetch(heading, view)
	default:
		return m.renderGrid(heading, view)
	}
}

func (m *Model) renderLogin(heading string, view viewer.View) string {
	body := styles.login.Render(view.Action)
	if m.waiting {
		body = styles.warn.Render("Waiting for Spotify sign in in your browser...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.login, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", heading, body, helpView)
}

func (m *Model) renderFetch(heading string, view viewer.View) string {
	body := styles.fetch.Render(view.Action)
	if m.fetching > 0 {
		body += "\n" + styles.help.Render("Fetching...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.fetch, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", heading, body, helpView)
}

func (m *Model) renderGrid(heading string, view viewer.View) string {
	grid := renderGrid(view.Cards, m.cursor, gridColumns(m.width), m.offset, m.visibleRows())
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.left, m.keys.right, m.keys.open, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", heading, grid, helpView)
}
