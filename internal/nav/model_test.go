package nav

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav/burst"
	"github.com/atomicstack/gooeynav/internal/nav/layout"
	"github.com/atomicstack/gooeynav/internal/route"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) Navigate(target string) error {
	r.calls = append(r.calls, target)
	return r.err
}

type fixture struct {
	model     *Model
	nav       *recorder
	frames    *ManualFrames
	container *layout.Container
	now       time.Time
	results   []NavigatedMsg
}

func newFixture(t *testing.T, items []menu.Item, initial int) *fixture {
	t.Helper()
	f := &fixture{
		nav:       &recorder{},
		frames:    &ManualFrames{},
		container: layout.NewContainer(40, 10),
		now:       t0,
	}
	cfg := burst.DefaultConfig()
	cfg.ParticleCount = 6
	cfg.Seed = 7
	f.model = New(Options{
		Items:        items,
		InitialIndex: initial,
		Burst:        cfg,
		Navigator:    f.nav,
		Frames:       f.frames,
		Clock:        func() time.Time { return f.now },
		Container:    f.container,
	})
	t.Cleanup(f.model.Close)
	return f
}

func scenarioItems() []menu.Item {
	return []menu.Item{{Label: "A", Target: "/x"}, {Label: "B", Target: "/y"}, {Label: "C", Target: "/z"}}
}

// send delivers msg and runs every resulting command, expanding batches.
func (f *fixture) send(msg tea.Msg) {
	f.run(f.model.Update(msg))
}

func (f *fixture) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			f.run(c)
		}
	case NavigatedMsg:
		f.results = append(f.results, msg)
	default:
		f.send(msg)
	}
}

// tick moves the clock one frame and delivers any requested frames.
func (f *fixture) tick() {
	f.now = f.now.Add(burst.FrameInterval)
	for _, msg := range f.frames.Drain(f.now) {
		f.send(msg)
	}
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if f.frames.Pending() == 0 {
			return
		}
		f.tick()
	}
	t.Fatalf("frame loop did not settle")
}

func TestScenarioClickThenExternalSync(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)

	f.send(SelectMsg{Index: 1})
	if got := f.model.Active(); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}
	if diff := cmp.Diff([]string{"/y"}, f.nav.calls); diff != "" {
		t.Fatalf("navigate calls (-want +got):\n%s", diff)
	}
	if got := f.model.Engine().Stats().Bursts; got != 1 {
		t.Fatalf("bursts = %d, want 1", got)
	}
	f.settle(t)
	if s := f.model.Engine().Stats(); s.Created != 6 || s.Removed != 6 {
		t.Fatalf("expected one full burst of 6, got %+v", s)
	}

	f.send(LocationMsg{Location: "/z"})
	if got := f.model.Active(); got != 2 {
		t.Fatalf("active = %d after sync, want 2", got)
	}
	if len(f.nav.calls) != 1 {
		t.Fatalf("external sync must not navigate, calls = %v", f.nav.calls)
	}
	if got := f.model.Engine().Stats().Bursts; got != 1 {
		t.Fatalf("external sync must not burst, bursts = %d", got)
	}
	if f.frames.Pending() != 0 {
		t.Fatalf("external sync must not request frames")
	}
}

func TestExplicitSelectNavigatesOnce(t *testing.T) {
	sequences := [][]menu.Item{
		{{Label: "Only", Target: "/only"}},
		scenarioItems(),
		menu.DefaultItems(),
	}
	for _, items := range sequences {
		for i := range items {
			f := newFixture(t, items, 0)
			f.send(SelectMsg{Index: i})
			if f.model.Active() != i {
				t.Fatalf("select %d of %d: active = %d", i, len(items), f.model.Active())
			}
			if diff := cmp.Diff([]string{items[i].Target}, f.nav.calls); diff != "" {
				t.Fatalf("select %d navigate calls (-want +got):\n%s", i, diff)
			}
		}
	}
}

func TestReselectNavigatesWithoutBurst(t *testing.T) {
	f := newFixture(t, scenarioItems(), 1)
	f.send(SelectMsg{Index: 1})
	f.send(SelectMsg{Index: 1})
	if diff := cmp.Diff([]string{"/y", "/y"}, f.nav.calls); diff != "" {
		t.Fatalf("navigate calls (-want +got):\n%s", diff)
	}
	if got := f.model.Engine().Stats().Bursts; got != 0 {
		t.Fatalf("re-selecting must not burst, bursts = %d", got)
	}
}

func TestNavigateErrorIsReported(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	boom := errors.New("boom")
	f.nav.err = boom
	f.send(SelectMsg{Index: 2})
	if len(f.results) != 1 || !errors.Is(f.results[0].Err, boom) || f.results[0].Target != "/z" {
		t.Fatalf("unexpected navigate results %+v", f.results)
	}
	if f.model.Active() != 2 {
		t.Fatalf("selection must not depend on the navigate result")
	}
}

func TestExternalSyncResolution(t *testing.T) {
	items := []menu.Item{{Label: "Home", Target: "/"}, {Label: "A", Target: "/a"}, {Label: "B", Target: "/b"}}
	cases := []struct {
		location string
		want     int
	}{
		{"/b", 2},
		{"/a/b", 1},
		{"/a/", 1},
		{"/b?tab=2", 2},
		{"/nowhere", 0},
		{"/", 0},
	}
	for _, tc := range cases {
		f := newFixture(t, items, 1)
		f.send(LocationMsg{Location: tc.location})
		if got := f.model.Active(); got != tc.want {
			t.Fatalf("location %q: active = %d, want %d", tc.location, got, tc.want)
		}
		if len(f.nav.calls) != 0 || f.model.Engine().Stats().Bursts != 0 {
			t.Fatalf("location %q: sync must be passive", tc.location)
		}
	}
}

func TestInitialLocationOverridesInitialIndex(t *testing.T) {
	f := &fixture{nav: &recorder{}, frames: &ManualFrames{}, now: t0}
	m := New(Options{
		Items:        scenarioItems(),
		InitialIndex: 0,
		Location:     "/z/deep",
		Navigator:    f.nav,
		Frames:       f.frames,
		Container:    layout.NewContainer(30, 5),
	})
	defer m.Close()
	if m.Active() != 2 {
		t.Fatalf("active = %d, want 2", m.Active())
	}
	if len(f.nav.calls) != 0 {
		t.Fatalf("mount must not navigate")
	}
}

func TestOutOfRangeInitialIndexClamps(t *testing.T) {
	f := newFixture(t, scenarioItems(), 9)
	if f.model.Active() != 0 {
		t.Fatalf("active = %d, want 0", f.model.Active())
	}
}

func TestSupersededBurstStillCompletes(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.send(SelectMsg{Index: 1})
	f.tick()
	f.tick()
	f.send(SelectMsg{Index: 2})
	for _, p := range f.model.Engine().Visible() {
		if p.Burst != 2 {
			t.Fatalf("particle of superseded burst still visible")
		}
	}
	f.settle(t)
	s := f.model.Engine().Stats()
	if s.Bursts != 2 || s.Created != 12 || s.Removed != 12 {
		t.Fatalf("expected 12 creations and removals across two bursts, got %+v", s)
	}
}

func TestOnlyOneFrameOutstanding(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.send(SelectMsg{Index: 1})
	f.send(SelectMsg{Index: 2})
	if got := f.frames.Pending(); got != 1 {
		t.Fatalf("pending frames = %d, want 1", got)
	}
}

func TestFrameLoopStopsAfterGlow(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.send(SelectMsg{Index: 1})
	start := f.now
	f.settle(t)
	if f.now.Sub(start) < f.model.Engine().BubbleTime() {
		t.Fatalf("frames stopped after %v, before the glow ended", f.now.Sub(start))
	}
	if f.model.Engine().Busy(f.now) {
		t.Fatalf("engine still busy after frames stopped")
	}
}

func TestPositioningIsIdempotent(t *testing.T) {
	f := newFixture(t, scenarioItems(), 1)
	first, err := f.model.tracker.Position(f.model.Active())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	second, err := f.model.tracker.Position(f.model.Active())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("positioning changed between calls (-first +second):\n%s", diff)
	}
	overlay, ok := f.model.Overlay()
	if !ok {
		t.Fatalf("expected overlay after mount")
	}
	if diff := cmp.Diff(first, overlay); diff != "" {
		t.Fatalf("overlay differs from positioning (-want +got):\n%s", diff)
	}
}

func TestResizeRepositionsOverlay(t *testing.T) {
	items := menu.DefaultItems()
	f := newFixture(t, items, 4)
	f.container.Resize(80, 10)
	before, _ := f.model.Overlay()
	if before.Filter.Top != 0 {
		t.Fatalf("expected a single row at width 80, overlay %+v", before)
	}

	f.container.Resize(16, 10)
	after, ok := f.model.Overlay()
	if !ok {
		t.Fatalf("expected overlay after resize")
	}
	geom, _ := f.model.tracker.Geometry()
	if diff := cmp.Diff(geom.Cells[4].Rect, after.Filter); diff != "" {
		t.Fatalf("overlay does not match active item (-want +got):\n%s", diff)
	}
	if after.Filter.Top == 0 {
		t.Fatalf("expected the last item to wrap at width 16, overlay %+v", after)
	}
}

func TestUnmeasurableResizeKeepsOverlay(t *testing.T) {
	f := newFixture(t, scenarioItems(), 1)
	before, _ := f.model.Overlay()
	f.container.Resize(0, 10)
	after, ok := f.model.Overlay()
	if !ok || after != before {
		t.Fatalf("expected overlay to be left in place, got %+v (ok=%v)", after, ok)
	}
}

func TestCloseTearsDown(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	if got := f.container.Observers(); got != 1 {
		t.Fatalf("observers = %d, want 1", got)
	}
	f.send(SelectMsg{Index: 1})
	stale := f.frames.Drain(f.now.Add(time.Second))
	f.model.Close()

	if got := f.container.Observers(); got != 0 {
		t.Fatalf("observers after Close = %d, want 0", got)
	}
	for _, msg := range stale {
		f.send(msg)
	}
	if f.frames.Pending() != 0 {
		t.Fatalf("stale frame scheduled another frame")
	}
	if f.model.Engine().Pending() != 0 {
		t.Fatalf("expected no pending particles after Close")
	}
	if cmd := f.model.Select(2); cmd != nil {
		t.Fatalf("closed bar must not navigate")
	}
	if f.model.View() != "" {
		t.Fatalf("closed bar must render nothing")
	}
}

func TestRemountIgnoresOldFrames(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.send(SelectMsg{Index: 1})
	stale := f.frames.Drain(f.now)
	other := layout.NewContainer(30, 5)
	f.model.Mount(other)
	if f.container.Observers() != 0 || other.Observers() != 1 {
		t.Fatalf("expected subscription to move to the new container")
	}
	for _, msg := range stale {
		f.send(msg)
	}
	if s := f.model.Engine().Stats(); s.Created != 0 {
		t.Fatalf("stale frame advanced the new engine: %+v", s)
	}
}

func TestKeyBindingsSelect(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	steps := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyRight}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 2},
		{tea.KeyMsg{Type: tea.KeyHome}, 0},
		{tea.KeyMsg{Type: tea.KeyEnd}, 2},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}, 1},
		{tea.KeyMsg{Type: tea.KeyEnter}, 1},
	}
	for i, step := range steps {
		f.send(step.msg)
		if got := f.model.Active(); got != step.want {
			t.Fatalf("step %d (%s): active = %d, want %d", i, step.msg, got, step.want)
		}
	}
	if len(f.nav.calls) != len(steps) {
		t.Fatalf("expected one navigate per key, got %d", len(f.nav.calls))
	}
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if len(f.nav.calls) != len(steps) {
		t.Fatalf("jump past the last item must be ignored")
	}
}

func TestMouseClickSelects(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.model.SetOrigin(0, 3)
	geom, _ := f.model.tracker.Geometry()
	c := geom.Cells[2].Rect
	f.send(tea.MouseMsg{X: c.Left + 1, Y: 3 + fieldRows + c.Top, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if f.model.Active() != 2 {
		t.Fatalf("click did not select item 2, active = %d", f.model.Active())
	}
	f.send(tea.MouseMsg{X: 39, Y: 3 + fieldRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.send(tea.MouseMsg{X: c.Left, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(f.nav.calls) != 1 {
		t.Fatalf("clicks outside items must be ignored, calls = %v", f.nav.calls)
	}
}

func TestSetItemsResyncs(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	f.send(LocationMsg{Location: "/y"})
	next := []menu.Item{{Label: "Y", Target: "/y"}, {Label: "W", Target: "/w"}}
	f.send(ItemsMsg{Items: next})
	if f.model.Active() != 0 {
		t.Fatalf("active = %d, want 0 after re-sync", f.model.Active())
	}
	if o, ok := f.model.Overlay(); !ok || o.Label != "Y" {
		t.Fatalf("overlay not repositioned for new items: %+v", o)
	}
	f.model.SetItems(nil)
	if f.model.Active() != -1 || f.model.View() != "" {
		t.Fatalf("empty items must render nothing")
	}
	if cmd := f.model.Select(0); cmd != nil {
		t.Fatalf("select with no items must do nothing")
	}
}

func TestViewRendersItemsAndParticles(t *testing.T) {
	f := newFixture(t, scenarioItems(), 0)
	view := f.model.View()
	for _, label := range []string{"A", "B", "C"} {
		if !strings.Contains(view, label) {
			t.Fatalf("view missing %q:\n%s", label, view)
		}
	}
	if got := len(strings.Split(view, "\n")); got != f.model.Height() {
		t.Fatalf("view has %d lines, Height says %d", got, f.model.Height())
	}
	f.send(SelectMsg{Index: 1})
	for i := 0; i < 60; i++ {
		f.tick()
		if strings.ContainsAny(f.model.View(), "✦✧●•·") {
			return
		}
	}
	t.Fatalf("no particle drawn during the burst:\n%s", f.model.View())
}

func TestRapidSelectionsReachRouterInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	router := route.New("/x")
	defer func() {
		router.Stop()
		router.Wait()
	}()
	cfg := burst.DefaultConfig()
	cfg.Seed = 7
	model := New(Options{
		Items:     scenarioItems(),
		Location:  router.Location(),
		Burst:     cfg,
		Navigator: router,
		Frames:    &ManualFrames{},
		Clock:     func() time.Time { return t0 },
		Container: layout.NewContainer(40, 10),
	})
	defer model.Close()

	first := model.Select(1)
	second := model.Select(2)
	// the runtime may run the two commands in either order
	for _, cmd := range []tea.Cmd{second, first} {
		if cmd != nil {
			cmd()
		}
	}

	if loc := router.Location(); loc != "/z" {
		t.Fatalf("router location = %q after B then C, want /z", loc)
	}
	history, _ := router.History()
	if diff := cmp.Diff([]string{"/x", "/y", "/z"}, history); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	for i := 0; i < 2; i++ {
		select {
		case evt := <-router.Events():
			model.Update(LocationMsg{Location: evt.Location})
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for route event %d", i)
		}
	}
	if got := model.Active(); got != 2 {
		t.Fatalf("active = %d after router events, want 2", got)
	}
}
