// Package layout measures where each nav item lands inside its container and
// positions the highlight overlays over the active one.
package layout

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// ErrUnmeasured means the container or an item has no usable size yet.
// Callers skip positioning for the cycle and try again on the next trigger.
var ErrUnmeasured = errors.New("layout: geometry unavailable")

// ErrNoActive means there is no item at the requested index.
var ErrNoActive = errors.New("layout: no active item")

// Rect is a cell rectangle relative to the container origin.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Center returns the centre cell of r.
func (r Rect) Center() (x, y int) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Cell is one laid-out item: its rectangle and the label that fits in it.
type Cell struct {
	Rect  Rect
	Label string
}

// Geometry is the measured layout of every item.
type Geometry struct {
	Cells  []Cell
	Width  int
	Height int
}

// Measure lays labels out left to right in a container width cells wide,
// wrapping to a new row when the next item would overflow. Labels wider than
// the container are truncated so each item still fits on its own row.
func Measure(labels []string, cell lipgloss.Style, gap, width int) (Geometry, error) {
	if width <= 0 {
		return Geometry{}, ErrUnmeasured
	}
	if gap < 0 {
		gap = 0
	}
	geom := Geometry{Cells: make([]Cell, 0, len(labels)), Width: width}
	x, top, rowHeight := 0, 0, 0
	for _, label := range labels {
		rendered := cell.Render(label)
		w := lipgloss.Width(rendered)
		h := lipgloss.Height(rendered)
		if w > width {
			frame := w - lipgloss.Width(label)
			avail := width - frame
			if avail < 1 {
				return Geometry{}, ErrUnmeasured
			}
			label = truncate.StringWithTail(label, uint(avail), "…")
			rendered = cell.Render(label)
			w = lipgloss.Width(rendered)
		}
		if x > 0 && x+w > width {
			top += rowHeight
			x, rowHeight = 0, 0
		}
		rect := Rect{Left: x, Top: top, Width: w, Height: h}
		if rect.Empty() {
			return Geometry{}, ErrUnmeasured
		}
		geom.Cells = append(geom.Cells, Cell{Rect: rect, Label: label})
		if h > rowHeight {
			rowHeight = h
		}
		x += w + gap
	}
	geom.Height = top + rowHeight
	return geom, nil
}
