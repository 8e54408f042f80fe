package console

import "github.com/charmbracelet/lipgloss"

// Styles groups the text styles used by the demos.
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Key     lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warn    lipgloss.Style
	Box     lipgloss.Style
}

// NewStyles builds the styles for a renderer. Renderers for writers that are
// not terminals drop colors and attributes.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtle:  r.NewStyle().Foreground(lipgloss.Color("240")),
		Key:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("63")),
		Success: r.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
	}
}
