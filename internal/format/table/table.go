// Package table lays out short text rows in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Gap separates adjacent columns.
const Gap = "  "

// Format pads every cell to the widest entry of its column. Widths are
// measured in terminal cells, so styled or wide text lines up. Rows shorter
// than the first row are padded with empty cells.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, width := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				b.WriteString(Gap)
			}
			pad := width - lipgloss.Width(cell)
			last := c == len(widths)-1
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(spaces(pad))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if !last {
				b.WriteString(spaces(pad))
			}
		}
		out[i] = b.String()
	}
	return out
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
