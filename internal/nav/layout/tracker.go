package layout

import "github.com/charmbracelet/lipgloss"

// Overlay is where the two highlight layers sit for the active item: the
// gooey filter layer and the text layer that redraws the active label.
type Overlay struct {
	Index  int
	Filter Rect
	Text   Rect
	Label  string
}

// Tracker owns the measured geometry of the nav items and the subscription to
// the container they live in.
type Tracker struct {
	cell      lipgloss.Style
	gap       int
	labels    []string
	container *Container
	cancel    func()
	geom      Geometry
	measured  bool
}

// NewTracker creates a tracker that renders each item with cell and separates
// items by gap cells.
func NewTracker(cell lipgloss.Style, gap int) *Tracker {
	return &Tracker{cell: cell, gap: gap}
}

// SetLabels replaces the item labels. Geometry is re-measured on next use.
func (t *Tracker) SetLabels(labels []string) {
	t.labels = append([]string(nil), labels...)
	t.measured = false
}

// Observe attaches the tracker to c, dropping any earlier subscription first.
// onResize runs after the tracker has re-measured for the new size.
func (t *Tracker) Observe(c *Container, onResize func(Size)) {
	t.detach()
	t.container = c
	t.measured = false
	if c == nil {
		return
	}
	t.cancel = c.Subscribe(func(size Size) {
		t.measured = false
		if onResize != nil {
			onResize(size)
		}
	})
}

// Close drops the container subscription.
func (t *Tracker) Close() {
	t.detach()
	t.container = nil
	t.measured = false
}

func (t *Tracker) detach() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Measure recomputes geometry from the current container size.
func (t *Tracker) Measure() (Geometry, error) {
	if t.container == nil {
		t.measured = false
		return Geometry{}, ErrUnmeasured
	}
	geom, err := Measure(t.labels, t.cell, t.gap, t.container.Size().Width)
	if err != nil {
		t.measured = false
		return Geometry{}, err
	}
	t.geom = geom
	t.measured = true
	return geom, nil
}

// Geometry returns the last successful measurement.
func (t *Tracker) Geometry() (Geometry, bool) {
	return t.geom, t.measured
}

// Position measures the layout and returns the overlay for the active item.
// Calling it twice without a state change in between yields the same overlay.
func (t *Tracker) Position(active int) (Overlay, error) {
	geom, err := t.Measure()
	if err != nil {
		return Overlay{}, err
	}
	if active < 0 || active >= len(geom.Cells) {
		return Overlay{}, ErrNoActive
	}
	cell := geom.Cells[active]
	return Overlay{
		Index:  active,
		Filter: cell.Rect,
		Text:   cell.Rect,
		Label:  cell.Label,
	}, nil
}

// HitTest returns the index of the item covering container cell (x, y).
func (t *Tracker) HitTest(x, y int) (int, bool) {
	if !t.measured {
		if _, err := t.Measure(); err != nil {
			return -1, false
		}
	}
	for i, c := range t.geom.Cells {
		if c.Rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
