package display

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used when printing a frame.
type Styles struct {
	Title    lipgloss.Style
	Line     lipgloss.Style
	Overlay  lipgloss.Style
	Axis     lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style
	enabled  bool
}

// DefaultStyles returns coloured styles, or pass-through ones when color is false.
func DefaultStyles(color bool) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Line:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Overlay:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Axis:     lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		enabled:  color,
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}
