package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Vandesm14/stack-server/internal/editor"
	"github.com/Vandesm14/stack-server/internal/highlight"
	"github.com/charmbracelet/x/ansi"
)

// lineMarker flags the first cell of a source line in Edit mode.
const lineMarker = ':'

type cell struct {
	r      rune
	style  lipgloss.Style
	cursor bool
	failed bool
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent stacks the framed device, the status line and the help.
func (m Model) renderContent() string {
	device := m.styles.Frame.Render(m.renderScreen())
	content := lipgloss.JoinVertical(lipgloss.Left,
		device,
		m.renderStatus(lipgloss.Width(device)),
		m.help.View(m.keys),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderScreen renders the device grid with every cell styled.
func (m Model) renderScreen() string {
	g := m.grid()
	rows := make([]string, len(g))
	var b strings.Builder
	for i, row := range g {
		b.Reset()
		for _, c := range row {
			b.WriteString(c.style.Render(string(c.r)))
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}

// renderStatus renders the mode badge and cursor position, truncated to w.
func (m Model) renderStatus(w int) string {
	s := m.state
	mode := strings.ToUpper(s.Mode().String())
	if m.pending {
		mode = "RUNNING"
	}
	badge := m.styles.Mode
	if s.Mode() == editor.Run && s.RunFailed() && !m.pending {
		mode = "ERROR"
		badge = m.styles.Error.Bold(true)
	}
	pos := fmt.Sprintf(" %d:%d top %d", s.CursorLine()+1, s.CursorColumn()+1, s.ViewportTop())
	return ansi.Truncate(badge.Render(mode)+m.styles.StatusText.Render(pos), w, "…")
}

// grid lays the visible window out on a WindowHeight by WrapWidth+2 screen.
// Column 0 holds the line marker in Edit mode, so unwrapped cells shift
// right by one there; forced-wrap continuation lines may use the last cell.
func (m Model) grid() [][]cell {
	rows := m.machine.WindowHeight()
	cols := m.machine.WrapWidth() + 2

	g := make([][]cell, rows)
	for y := range g {
		g[y] = make([]cell, cols)
		for x := range g[y] {
			g[y][x] = cell{r: ' ', style: m.styles.Cell}
		}
	}

	s := m.state
	edit := s.Mode() == editor.Edit
	failed := s.Mode() == editor.Run && s.RunFailed()
	top := s.ViewportTop()
	cursor := s.Cursor()
	classes := highlight.Cells(s.Display(), m.language)

	// Position after the last drawn cell, where a past-end cursor sits.
	endRow, endX := 0, 0
	if edit {
		endX = 1
	}
	reachedEnd := s.Len() == 0

	for _, c := range s.VisibleWindow() {
		row := c.Line - top
		if row >= rows {
			break
		}
		x := c.Column
		if edit && !c.Wrapped {
			x++
			if c.Column == 0 {
				g[row][0] = cell{r: lineMarker, style: m.styles.Marker}
			}
		}
		endRow, endX = row, x+1
		reachedEnd = c.Index == s.Len()-1
		if x >= cols {
			continue
		}

		st := m.styles.Cell
		switch {
		case failed:
			st = m.styles.Error
		case c.Index < len(classes):
			st = m.styles.token(classes[c.Index])
		}
		if c.Index == cursor {
			st = m.styles.Cursor
		}
		g[row][x] = cell{r: c.Rune, style: st, cursor: c.Index == cursor, failed: failed}
	}

	if cursor >= s.Len() && reachedEnd && endX < cols {
		g[endRow][endX] = cell{r: ' ', style: m.styles.Cursor, cursor: true}
	}
	return g
}

// plain renders a grid without styles.
func plain(g [][]cell) string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.r)
		}
	}
	return b.String()
}
