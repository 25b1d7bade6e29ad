package nav

import (
	"math"
	"strings"
	"time"

	"github.com/atomicstack/gooeynav/internal/nav/burst"
	"github.com/atomicstack/gooeynav/internal/nav/layout"
	"github.com/charmbracelet/lipgloss"
)

// View renders the particle field, the item rows and the active highlight.
// Nothing is drawn without items or before the container has a width.
func (m *Model) View() string {
	if !m.mounted || m.holder.Len() == 0 {
		return ""
	}
	geom, ok := m.tracker.Geometry()
	if !ok || len(geom.Cells) == 0 {
		return ""
	}
	now := m.clock()
	field := m.particleField(geom, now)

	lines := make([]string, 0, geom.Height+2*fieldRows)
	for row := 0; row < fieldRows; row++ {
		lines = append(lines, field[row])
	}
	lines = append(lines, m.renderBar(geom, now)...)
	for row := 0; row < fieldRows; row++ {
		lines = append(lines, field[fieldRows+row])
	}
	return strings.Join(lines, "\n")
}

func (m *Model) highlightStyle(now time.Time) lipgloss.Style {
	switch {
	case m.engine.Merging():
		return *m.styles.NavMerging
	case m.engine.Glowing(now):
		return *m.styles.NavGlow
	default:
		return *m.styles.NavActive
	}
}

func (m *Model) renderBar(geom layout.Geometry, now time.Time) []string {
	lines := make([]string, geom.Height)
	cursor := make([]int, geom.Height)
	for i, c := range geom.Cells {
		style := *m.styles.NavItem
		label := c.Label
		if m.overlayOK && i == m.overlay.Index {
			style = m.highlightStyle(now).Inherit(*m.styles.NavText)
			label = m.overlay.Label
		}
		block := strings.Split(style.Render(label), "\n")
		for j, text := range block {
			row := c.Rect.Top + j
			if row >= len(lines) {
				break
			}
			if pad := c.Rect.Left - cursor[row]; pad > 0 {
				lines[row] += strings.Repeat(" ", pad)
			}
			lines[row] += text
			cursor[row] = c.Rect.Left + lipgloss.Width(text)
		}
	}
	return lines
}

// particleField draws visible particles into the rows above and below the
// bar. Particles that land on the bar itself or outside the container are
// clipped.
func (m *Model) particleField(geom layout.Geometry, now time.Time) []string {
	width := geom.Width
	grid := make([][]string, 2*fieldRows)
	for i := range grid {
		grid[i] = make([]string, width)
	}
	if m.overlayOK {
		cx, cy := m.overlay.Filter.Center()
		for _, p := range m.engine.Visible() {
			col := cx + int(math.Round(p.Pos.X))
			row := cy + int(math.Round(p.Pos.Y))
			var slot int
			switch {
			case row < 0 && row >= -fieldRows:
				slot = fieldRows + row
			case row >= geom.Height && row < geom.Height+fieldRows:
				slot = fieldRows + row - geom.Height
			default:
				continue
			}
			if col < 0 || col >= width {
				continue
			}
			grid[slot][col] = m.styles.Particle(p.Color).Render(glyph(&p, now))
		}
	}
	out := make([]string, len(grid))
	for i, cells := range grid {
		var b strings.Builder
		for _, c := range cells {
			if c == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c)
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// glyph picks a character for p that shrinks as the particle ages.
func glyph(p *burst.Particle, now time.Time) string {
	progress := p.Progress(now) / math.Max(p.Scale, 0.1)
	switch {
	case progress < 0.3:
		if p.Rotation >= 0 {
			return "✦"
		}
		return "✧"
	case progress < 0.6:
		return "●"
	case progress < 0.85:
		return "•"
	default:
		return "·"
	}
}
