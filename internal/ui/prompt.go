package ui

import (
	"strings"

	"github.com/atomicstack/gooeynav/internal/logging/events"
	"github.com/atomicstack/gooeynav/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// openPrompt shows the route prompt. Submitting it navigates like an address
// bar would: the router reports the new location and the nav bar follows
// without a burst.
func (m *Model) openPrompt() tea.Cmd {
	if m.router == nil {
		return nil
	}
	m.promptOpen = true
	m.errMsg = ""
	m.forceClearInfo()
	m.prompt.SetValue("")
	m.suggestions.SetQuery("")
	events.Prompt.Open(m.location)
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptOpen = false
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.suggestions.SetQuery("")
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		events.Prompt.Cancel()
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		return m.submitPrompt()
	case tea.KeyTab:
		if sel, ok := m.suggestions.Selected(); ok {
			events.Prompt.Complete(m.prompt.Value(), sel.Target)
			m.prompt.SetValue(sel.Target)
			m.prompt.CursorEnd()
			m.suggestions.SetQuery(sel.Target)
		}
		return nil
	case tea.KeyUp:
		m.suggestions.MoveCursor(-1)
		return nil
	case tea.KeyDown:
		m.suggestions.MoveCursor(1)
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.suggestions.SetQuery(m.prompt.Value())
	return cmd
}

func (m *Model) submitPrompt() tea.Cmd {
	value := strings.TrimSpace(m.prompt.Value())
	if value == "" {
		if sel, ok := m.suggestions.Selected(); ok {
			value = sel.Target
		}
	}
	m.closePrompt()
	if value == "" {
		return nil
	}
	events.Prompt.Submit(value)
	r := m.router
	return m.bus.Execute(command.Request{ID: "goto", Label: value, Run: func() error {
		return r.Navigate(value)
	}})
}
