package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	NavItem       *lipgloss.Style
	NavActive     *lipgloss.Style
	NavMerging    *lipgloss.Style
	NavGlow       *lipgloss.Style
	NavText       *lipgloss.Style
	Particles     []lipgloss.Style
	Header        *lipgloss.Style
	PageTitle     *lipgloss.Style
	PageBody      *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
	Prompt        *lipgloss.Style
	PromptText    *lipgloss.Style
	Suggestion    *lipgloss.Style
	SuggestionHit *lipgloss.Style
}

// NavCell is the frame every nav item is rendered in. Layout measurement
// uses the same frame so rectangles line up with what is drawn.
func NavCell() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 2)
}

var defaultStyles = Styles{
	NavItem: ptr(
		NavCell().Foreground(lipgloss.Color("249")),
	),
	NavActive: ptr(
		NavCell().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	NavMerging: ptr(
		NavCell().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	),
	NavGlow: ptr(
		NavCell().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("255")).Bold(true),
	),
	NavText: ptr(
		lipgloss.NewStyle().Bold(true),
	),
	Particles: []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	},
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PageTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	PageBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SuggestionHit: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Particle returns the style for palette entry i, wrapping around.
func (s *Styles) Particle(i int) lipgloss.Style {
	if len(s.Particles) == 0 {
		return lipgloss.NewStyle()
	}
	if i < 0 {
		i = -i
	}
	return s.Particles[i%len(s.Particles)]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
