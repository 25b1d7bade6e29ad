package ui

import (
	"github.com/atomicstack/gooeynav/internal/nav"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds the app level keys. Nav bar keys live in nav.KeyMap.
type KeyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Forward key.Binding
	Prompt  key.Binding
	Help    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "[", "alt+left"),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]", "alt+right"),
			key.WithHelp("]", "forward"),
		),
		Prompt: key.NewBinding(
			key.WithKeys(":", "/"),
			key.WithHelp(":", "go to"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// helpKeys merges app and nav bindings for the help footer.
type helpKeys struct {
	app KeyMap
	nav nav.KeyMap
}

// ShortHelp keeps to the bindings a visitor needs first so quit still fits
// on a narrow terminal. The rest is under "?".
func (h helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.nav.Prev, h.nav.Next, h.app.Prompt, h.app.Help, h.app.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.nav.FullHelp(),
		[]key.Binding{h.app.Prompt, h.app.Back, h.app.Forward},
		[]key.Binding{h.app.Help, h.app.Quit},
	)
}
