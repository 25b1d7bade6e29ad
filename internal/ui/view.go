package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/gooeynav/internal/format/table"
	"github.com/atomicstack/gooeynav/internal/nav/routesync"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]string, 0, 16)
	lines = append(lines, m.headerLine())
	if bar := m.nav.View(); bar != "" {
		lines = append(lines, bar)
	}
	lines = append(lines, "")
	lines = append(lines, m.pageLines()...)
	if m.errMsg != "" {
		lines = append(lines, "", styles.Error.Render(m.truncate("Error: "+m.errMsg)))
	} else if info := m.currentInfo(); info != "" {
		lines = append(lines, "", styles.Info.Render(m.truncate(info)))
	}
	if m.promptOpen {
		lines = append(lines, "", m.prompt.View())
		lines = append(lines, m.suggestionLines()...)
	}
	if m.showFooter {
		lines = append(lines, "", styles.Footer.Render(m.help.View(helpKeys{app: m.keys, nav: m.nav.Keys()})))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) headerLine() string {
	title := styles.Header.Render(siteTitle)
	loc := styles.Info.Render(m.location)
	return m.truncate(title + "  " + loc)
}

// pageLines renders the placeholder page body for the current location.
func (m *Model) pageLines() []string {
	item, ok := m.nav.ActiveItem()
	if !ok {
		return []string{styles.PageBody.Render("(no sections configured)")}
	}
	lines := []string{styles.PageTitle.Render(m.truncate(item.Label))}
	body := fmt.Sprintf("You are viewing %s.", m.location)
	if m.location != item.Target && routesync.Matches(item.Target, m.location) {
		body = fmt.Sprintf("You are viewing %s, part of %s.", m.location, item.Target)
	} else if !routesync.Matches(item.Target, m.location) {
		body = fmt.Sprintf("Nothing lives at %s yet.", m.location)
	}
	lines = append(lines, styles.PageBody.Render(m.truncate(body)))
	return lines
}

func (m *Model) suggestionLines() []string {
	items := m.suggestions.Items
	if len(items) == 0 {
		return []string{styles.Suggestion.Render("  no matching sections")}
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.Target, item.Label}
	}
	lines := make([]string, 0, len(items))
	for i, text := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}) {
		prefix := "  "
		style := styles.Suggestion
		if i == m.suggestions.Cursor {
			prefix = "› "
			style = styles.SuggestionHit
		}
		lines = append(lines, style.Render(m.truncate(prefix+text)))
	}
	return lines
}

func (m *Model) truncate(text string) string {
	if m.width <= 0 || lipgloss.Width(text) <= m.width {
		return text
	}
	return truncate.StringWithTail(text, uint(m.width), "…")
}
