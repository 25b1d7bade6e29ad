package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/gooeynav/internal/logging"
	"github.com/atomicstack/gooeynav/internal/nav"
	"github.com/atomicstack/gooeynav/internal/route"
	"github.com/atomicstack/gooeynav/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// Router is the location source and navigation target of the app.
type Router interface {
	nav.Navigator
	Back() error
	Forward() error
	Location() string
	Events() <-chan route.Event
}

func waitForRouteEvent(events <-chan route.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return routeDoneMsg{}
		}
		return routeEventMsg{event: evt}
	}
}

type routeEventMsg struct {
	event route.Event
}

type routeDoneMsg struct{}

func (m *Model) handleRouteEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(routeEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyRouteEvent(eventMsg.event)
	if m.events != nil {
		waitCmd := waitForRouteEvent(m.events)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleRouteDoneMsg(msg tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}

func (m *Model) applyRouteEvent(evt route.Event) tea.Cmd {
	m.location = evt.Location
	m.errMsg = ""
	if evt.Cause != route.CauseNavigate {
		m.setInfo(fmt.Sprintf("%s to %s", evt.Cause, evt.Location))
	}
	return m.nav.Update(nav.LocationMsg{Location: evt.Location})
}

func (m *Model) historyCmd(id, label string, run func(Router) error) tea.Cmd {
	if m.router == nil {
		return nil
	}
	r := m.router
	return m.bus.Execute(command.Request{ID: id, Label: label, Run: func() error {
		return run(r)
	}})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	switch {
	case result.Err == nil:
		m.errMsg = ""
	case errors.Is(result.Err, route.ErrNoHistory):
		m.setInfo(fmt.Sprintf("nothing to go %s to", result.ID))
	default:
		logging.Errorf("%s: %w", result.Label, result.Err)
		m.errMsg = result.Err.Error()
	}
	return nil
}

func (m *Model) handleNavigatedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(nav.NavigatedMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		logging.Errorf("navigate to %s: %w", result.Target, result.Err)
		m.errMsg = result.Err.Error()
		return nil
	}
	m.errMsg = ""
	return nil
}
