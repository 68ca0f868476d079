package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/Vandesm14/stack-server/internal/highlight"
	"github.com/alecthomas/chroma/v2"
)

// styles holds the lipgloss styles derived from a highlight.Palette.
type styles struct {
	theme   string
	palette highlight.Palette

	Cell       lipgloss.Style
	Marker     lipgloss.Style
	Cursor     lipgloss.Style
	Frame      lipgloss.Style
	StatusText lipgloss.Style
	Mode       lipgloss.Style
	Error      lipgloss.Style

	tokens map[chroma.TokenType]lipgloss.Style
}

func newStyles(theme string) styles {
	p := highlight.ThemePalette(theme)
	bg := lipgloss.Color(p.Bg)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(bg)
	return styles{
		theme:      theme,
		palette:    p,
		Cell:       cell,
		Marker:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Marker)).Background(bg),
		Cursor:     cell.Reverse(true),
		Frame:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Frame)).BorderBackground(bg),
		StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Status)),
		Mode:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Background(bg),
		tokens:     make(map[chroma.TokenType]lipgloss.Style),
	}
}

// token returns the cell style for a Chroma token class.
func (s styles) token(tt chroma.TokenType) lipgloss.Style {
	if st, ok := s.tokens[tt]; ok {
		return st
	}
	st := s.Cell
	if c := highlight.TokenColour(s.theme, tt); c != "" {
		st = st.Foreground(lipgloss.Color(c))
	}
	s.tokens[tt] = st
	return st
}
