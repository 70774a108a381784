package render

import "github.com/charmbracelet/lipgloss"

// Phosphor terminal palette. The whole presentation leans on the green
// monochrome look of the era; alerts are the one thing allowed to be red.
var (
	colorPhosphor = lipgloss.Color("#33ff33")
	colorDim      = lipgloss.Color("#1f7a1f")
	colorAmber    = lipgloss.Color("#ffb000")
	colorAlert    = lipgloss.Color("#ff3333")
)

// Styles groups every lipgloss style the renderer uses.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Warn      lipgloss.Style
	Alert     lipgloss.Style
	Banner    lipgloss.Style
	Cable     lipgloss.Style
	Encrypted lipgloss.Style
	Advice    lipgloss.Style
}

// NewStyles returns the default phosphor styling.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPhosphor).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(colorDim),

		Value: lipgloss.NewStyle().
			Foreground(colorPhosphor),

		Muted: lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true),

		Warn: lipgloss.NewStyle().
			Foreground(colorAmber).
			Bold(true),

		Alert: lipgloss.NewStyle().
			Foreground(colorAlert).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Foreground(colorPhosphor).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPhosphor),

		Cable: lipgloss.NewStyle().
			Foreground(colorPhosphor).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorDim),

		Encrypted: lipgloss.NewStyle().
			Foreground(colorAmber),

		Advice: lipgloss.NewStyle().
			Foreground(colorPhosphor).
			Italic(true),
	}
}
