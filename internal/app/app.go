package app

import (
	"errors"

	"github.com/atomicstack/gooeynav/internal/logging/events"
	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav/burst"
	"github.com/atomicstack/gooeynav/internal/route"
	"github.com/atomicstack/gooeynav/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	// Location is the deep link to open. Empty starts the router at "/" and
	// leaves the highlight on InitialIndex until the first route change.
	Location     string
	Items        []menu.Item
	InitialIndex int
	Burst        burst.Config
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	router := route.New(cfg.Location)
	defer func() {
		router.Stop()
		router.Wait()
	}()
	model := NewModel(cfg, router)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	events.App.Stop("program exit")
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewModel builds the UI model for cfg on top of router.
func NewModel(cfg Config, router ui.Router) *ui.Model {
	return ui.NewModel(ui.Options{
		Items:        menu.CloneItems(cfg.Items),
		InitialIndex: cfg.InitialIndex,
		Location:     cfg.Location,
		Burst:        cfg.Burst,
		Router:       router,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
	})
}
