// Package nav is the animated navigation bar. It keeps one active item in
// sync with the router, tracks where that item sits on screen and plays a
// particle burst whenever the visitor picks a different item.
package nav

import (
	"errors"
	"time"

	"github.com/atomicstack/gooeynav/internal/logging/events"
	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav/burst"
	"github.com/atomicstack/gooeynav/internal/nav/layout"
	"github.com/atomicstack/gooeynav/internal/nav/routesync"
	"github.com/atomicstack/gooeynav/internal/nav/selection"
	"github.com/atomicstack/gooeynav/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigator moves the app to a new location. Navigate is called from the
// update loop and must not block.
type Navigator interface {
	Navigate(target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string) error

func (f NavigatorFunc) Navigate(target string) error {
	return f(target)
}

// SelectMsg is an explicit selection of Index, as if the visitor clicked it.
type SelectMsg struct {
	Index int
}

// LocationMsg reports the router's current location.
type LocationMsg struct {
	Location string
}

// ItemsMsg replaces the item sequence.
type ItemsMsg struct {
	Items []menu.Item
}

// NavigatedMsg carries the result of a Navigate call.
type NavigatedMsg struct {
	Target string
	Err    error
}

// fieldRows is the number of particle rows drawn above and below the bar.
const fieldRows = 2

// Options configures a nav bar.
type Options struct {
	Items        []menu.Item
	InitialIndex int
	// Location is the router location at mount time. Empty means unknown.
	Location  string
	Burst     burst.Config
	Navigator Navigator
	Frames    FrameScheduler
	Clock     func() time.Time
	Container *layout.Container
	Keys      *KeyMap
	Styles    *theme.Styles
	Gap       int
}

// Model is the nav bar. It is not safe for concurrent use; drive it from the
// Bubble Tea update loop.
type Model struct {
	holder    *selection.Holder
	sync      routesync.Adapter
	tracker   *layout.Tracker
	container *layout.Container
	engine    *burst.Engine
	burstCfg  burst.Config

	navigator Navigator
	frames    FrameScheduler
	clock     func() time.Time
	keys      KeyMap
	styles    *theme.Styles

	overlay   layout.Overlay
	overlayOK bool

	gen         uint64
	frameQueued bool
	mounted     bool

	originX int
	originY int
}

// New builds a nav bar and mounts it on opts.Container.
func New(opts Options) *Model {
	m := &Model{
		holder:    selection.New(opts.Items, opts.InitialIndex),
		burstCfg:  opts.Burst,
		navigator: opts.Navigator,
		frames:    opts.Frames,
		clock:     opts.Clock,
		styles:    opts.Styles,
	}
	if m.frames == nil {
		m.frames = TickScheduler{}
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.styles == nil {
		m.styles = theme.Default()
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	} else {
		m.keys = DefaultKeyMap()
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 1
	}
	m.tracker = layout.NewTracker(theme.NavCell(), gap)
	m.tracker.SetLabels(menu.Labels(opts.Items))
	if opts.Location != "" {
		if change, ok := m.sync.Observe(opts.Location, m.holder.Items()); ok {
			m.holder.Apply(change)
		}
	}
	container := opts.Container
	if container == nil {
		container = layout.NewContainer(0, 0)
	}
	m.Mount(container)
	return m
}

// Mount attaches the bar to c. Any earlier mount is torn down first and its
// pending frames become stale.
func (m *Model) Mount(c *layout.Container) {
	if m.mounted {
		m.Close()
	}
	m.gen++
	m.mounted = true
	m.frameQueued = false
	m.container = c
	m.engine = burst.New(m.burstCfg)
	m.tracker.Observe(c, m.onResize)
	m.reposition()
}

// Close releases the resize subscription and every pending particle. Frames
// requested before Close are ignored when they arrive.
func (m *Model) Close() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.gen++
	m.frameQueued = false
	m.engine.Close()
	m.tracker.Close()
	m.overlayOK = false
}

// Items returns the current item sequence.
func (m *Model) Items() []menu.Item {
	return m.holder.Items()
}

// Active returns the active index, or -1 without items.
func (m *Model) Active() int {
	return m.holder.Active()
}

// ActiveItem returns the active item when one exists.
func (m *Model) ActiveItem() (menu.Item, bool) {
	return m.holder.ActiveItem()
}

// Location returns the last location observed from the router.
func (m *Model) Location() string {
	return m.sync.Location()
}

// Overlay returns the last positioned highlight.
func (m *Model) Overlay() (layout.Overlay, bool) {
	return m.overlay, m.overlayOK
}

// Engine exposes the burst engine for inspection.
func (m *Model) Engine() *burst.Engine {
	return m.engine
}

// Keys returns the key bindings.
func (m *Model) Keys() KeyMap {
	return m.keys
}

// SetOrigin records where the bar's view starts on screen, for mouse hits.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// ScreenRect returns item i's rectangle in screen cells.
func (m *Model) ScreenRect(i int) (layout.Rect, bool) {
	geom, ok := m.tracker.Geometry()
	if !ok || i < 0 || i >= len(geom.Cells) {
		return layout.Rect{}, false
	}
	r := geom.Cells[i].Rect
	r.Left += m.originX
	r.Top += m.originY + fieldRows
	return r, true
}

// Height is the number of lines View renders.
func (m *Model) Height() int {
	geom, ok := m.tracker.Geometry()
	if !ok || len(geom.Cells) == 0 {
		return 0
	}
	return geom.Height + 2*fieldRows
}

// SetItems swaps the item sequence. A new sequence re-resolves the active
// index against the last known location.
func (m *Model) SetItems(items []menu.Item) {
	m.holder.SetItems(items)
	m.tracker.SetLabels(menu.Labels(items))
	if change, ok := m.sync.Refresh(items); ok {
		out := m.holder.Apply(change)
		events.Nav.Sync(m.sync.Location(), out.Index, out.Changed)
	}
	events.Nav.Items(len(items))
	m.reposition()
}

// Update handles nav messages. Messages the bar does not care about are
// ignored and return nil.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if frame, ok := msg.(FrameMsg); ok {
		return m.handleFrame(frame)
	}
	if !m.mounted {
		return nil
	}
	switch msg := msg.(type) {
	case SelectMsg:
		return m.Select(msg.Index)
	case LocationMsg:
		m.SyncLocation(msg.Location)
		return nil
	case ItemsMsg:
		m.SetItems(msg.Items)
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

// Select makes an explicit selection. It always navigates to the item's
// target before returning, and starts a burst when the index moved. The
// returned command reports the navigation result.
func (m *Model) Select(index int) tea.Cmd {
	if !m.mounted || m.holder.Len() == 0 {
		return nil
	}
	out := m.holder.Apply(selection.ExplicitSelect(index))
	events.Nav.Select(out.Index, out.Target.Target, out.Changed)
	if out.Changed {
		m.reposition()
	}
	var cmds []tea.Cmd
	if out.Navigate {
		cmds = append(cmds, m.navigate(out.Target.Target))
	}
	if out.Burst {
		id := m.engine.Fire(m.clock())
		events.Nav.Burst(id, m.engine.Config().ParticleCount, m.engine.BubbleTime())
		cmds = append(cmds, m.requestFrame())
	}
	return tea.Batch(cmds...)
}

// SyncLocation aligns the active item with location without navigating or
// starting a burst.
func (m *Model) SyncLocation(location string) {
	if !m.mounted {
		return
	}
	change, ok := m.sync.Observe(location, m.holder.Items())
	if !ok {
		return
	}
	out := m.holder.Apply(change)
	events.Nav.Sync(location, out.Index, out.Changed)
	if out.Changed {
		m.reposition()
	}
}

// navigate calls the navigator inline so consecutive selections reach it in
// the order they were made. Only the result travels through a command.
func (m *Model) navigate(target string) tea.Cmd {
	if m.navigator == nil {
		return nil
	}
	err := m.navigator.Navigate(target)
	return func() tea.Msg {
		return NavigatedMsg{Target: target, Err: err}
	}
}

func (m *Model) requestFrame() tea.Cmd {
	if m.frameQueued {
		return nil
	}
	m.frameQueued = true
	return m.frames.Schedule(m.gen)
}

func (m *Model) handleFrame(msg FrameMsg) tea.Cmd {
	if msg.Gen != m.gen || !m.mounted {
		return nil
	}
	m.frameQueued = false
	m.engine.Advance(msg.At)
	if m.engine.Busy(msg.At) {
		return m.requestFrame()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	n := m.holder.Len()
	if n == 0 {
		return nil
	}
	active := m.holder.Active()
	switch {
	case key.Matches(msg, m.keys.Prev):
		return m.Select((active - 1 + n) % n)
	case key.Matches(msg, m.keys.Next):
		return m.Select((active + 1) % n)
	case key.Matches(msg, m.keys.First):
		return m.Select(0)
	case key.Matches(msg, m.keys.Last):
		return m.Select(n - 1)
	case key.Matches(msg, m.keys.Activate):
		return m.Select(active)
	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.String()[0] - '1')
		if idx >= n {
			return nil
		}
		return m.Select(idx)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	x := msg.X - m.originX
	y := msg.Y - m.originY - fieldRows
	idx, ok := m.tracker.HitTest(x, y)
	if !ok {
		return nil
	}
	return m.Select(idx)
}

func (m *Model) onResize(size layout.Size) {
	events.Nav.Resize(size.Width, size.Height)
	m.reposition()
}

// reposition recomputes the overlay. When the layout cannot be measured the
// previous overlay stays in place until the next trigger.
func (m *Model) reposition() {
	active := m.holder.Active()
	overlay, err := m.tracker.Position(active)
	if err != nil {
		if errors.Is(err, layout.ErrNoActive) {
			m.overlayOK = false
		}
		events.Nav.LayoutSkipped(active, err)
		return
	}
	m.overlay = overlay
	m.overlayOK = true
}
