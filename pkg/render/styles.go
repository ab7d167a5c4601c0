package render

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

// Styles are applied to cell text after it has been fitted to its column, so
// they must not add width (no padding, margins or borders).
type Styles struct {
	Caption lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Footer  lipgloss.Style
	Thumb   lipgloss.Style
	Track   lipgloss.Style
}

// DefaultStyles returns the styles used for interactive output.
func DefaultStyles() Styles {
	return Styles{
		Caption: lipgloss.NewStyle().Italic(true).Foreground(colorGray),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
		Body:    lipgloss.NewStyle(),
		Footer:  lipgloss.NewStyle().Foreground(colorGray),
		Thumb:   lipgloss.NewStyle().Foreground(colorCyan),
		Track:   lipgloss.NewStyle().Foreground(colorDim),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Caption: s, Header: s, Body: s, Footer: s, Thumb: s, Track: s}
}
