package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/gooeynav/internal/logging/events"
	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav"
	"github.com/atomicstack/gooeynav/internal/nav/burst"
	"github.com/atomicstack/gooeynav/internal/nav/layout"
	"github.com/atomicstack/gooeynav/internal/route"
	"github.com/atomicstack/gooeynav/internal/theme"
	"github.com/atomicstack/gooeynav/internal/ui/command"
	uistate "github.com/atomicstack/gooeynav/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	siteTitle     = "gooeynav"
	headerLines   = 1
	infoLifetime  = 5 * time.Second
	maxSuggestion = 5
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the UI model.
type Options struct {
	Items        []menu.Item
	InitialIndex int
	// Location is the deep link the app opened on. Empty keeps the nav bar on
	// InitialIndex until the router reports a change.
	Location   string
	Burst      burst.Config
	Router     Router
	Width      int
	Height     int
	ShowFooter bool
	// Frames and Clock default to real ticks and time.Now.
	Frames nav.FrameScheduler
	Clock  func() time.Time
}

// Model implements the Bubble Tea model for the portal.
type Model struct {
	nav       *nav.Model
	container *layout.Container
	router    Router
	events    <-chan route.Event
	location  string

	keys KeyMap
	help help.Model

	prompt      textinput.Model
	promptOpen  bool
	suggestions *uistate.Suggestions

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	clock      func() time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel initialises the UI state with the nav items and router.
func NewModel(opts Options) *Model {
	m := &Model{
		router:     opts.Router,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		bus:        command.New(),
		clock:      opts.Clock,
		location:   "/",
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	var navigator nav.Navigator
	if m.router != nil {
		navigator = m.router
		m.events = m.router.Events()
		m.location = m.router.Location()
	}
	m.container = layout.NewContainer(m.width, m.height)
	m.nav = nav.New(nav.Options{
		Items:        opts.Items,
		InitialIndex: opts.InitialIndex,
		Location:     opts.Location,
		Burst:        opts.Burst,
		Navigator:    navigator,
		Frames:       opts.Frames,
		Clock:        opts.Clock,
		Container:    m.container,
		Styles:       styles,
	})
	m.nav.SetOrigin(0, headerLines)
	m.help.Width = m.width

	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "/path"
	ti.CharLimit = 256
	ti.PromptStyle = *styles.Prompt
	ti.TextStyle = *styles.PromptText
	ti.Cursor.SetMode(cursor.CursorStatic)
	m.prompt = ti
	m.suggestions = uistate.NewSuggestions(opts.Items)
	m.suggestions.SetLimit(maxSuggestion)

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return waitForRouteEvent(m.events)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleNavMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(nav.FrameMsg{}):      m.handleNavMsg,
		reflect.TypeOf(nav.SelectMsg{}):     m.handleNavMsg,
		reflect.TypeOf(nav.ItemsMsg{}):      m.handleItemsMsg,
		reflect.TypeOf(nav.NavigatedMsg{}):  m.handleNavigatedMsg,
		reflect.TypeOf(routeEventMsg{}):     m.handleRouteEventMsg,
		reflect.TypeOf(routeDoneMsg{}):      m.handleRouteDoneMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Nav exposes the nav bar.
func (m *Model) Nav() *nav.Model {
	return m.nav
}

// Location returns the last location reported by the router.
func (m *Model) Location() string {
	return m.location
}

// Close releases the nav bar's subscriptions and pending particles.
func (m *Model) Close() {
	m.nav.Close()
}

func (m *Model) handleNavMsg(msg tea.Msg) tea.Cmd {
	return m.nav.Update(msg)
}

func (m *Model) handleItemsMsg(msg tea.Msg) tea.Cmd {
	items, ok := msg.(nav.ItemsMsg)
	if !ok {
		return nil
	}
	m.suggestions.UpdateCandidates(items.Items)
	return m.nav.Update(items)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.promptOpen {
		events.UI.Key(keyMsg.String(), "prompt")
		return m.handlePromptKey(keyMsg)
	}
	events.UI.Key(keyMsg.String(), "nav")
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		events.App.Stop("quit key")
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		return m.historyCmd("back", "Back", func(r Router) error { return r.Back() })
	case key.Matches(keyMsg, m.keys.Forward):
		return m.historyCmd("forward", "Forward", func(r Router) error { return r.Forward() })
	case key.Matches(keyMsg, m.keys.Prompt):
		return m.openPrompt()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	return m.nav.Update(keyMsg)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.help.Width = m.width
	m.prompt.Width = m.width - len(m.prompt.Prompt) - 1
	m.container.Resize(m.width, m.height)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.clock().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.clock().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
