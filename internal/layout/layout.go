// Package layout turns a flat text buffer into fixed-width positioned cells
// for the device display, and indexes the result by flat index and line.
package layout

// Break is the explicit line-break marker. It ends the current line and is
// consumed without occupying a cell.
const Break = '\n'

// Char is one visible cell of a laid-out buffer.
type Char struct {
	Rune    rune
	Index   int  // dense flat index over visible cells
	Line    int  // visual line, incremented on every break or forced wrap
	Column  int  // cell within the line, 0 at each line start
	Wrapped bool // true when the line was created by exceeding the width
}

// Layout is the ordered result of Lay. It is never mutated after creation.
type Layout []Char

// Lay lays out text at the given wrap width, scanning one rune at a time.
//
// A line that begins after a forced wrap holds width+1 cells before it wraps
// again, while the first line and lines after an explicit break hold exactly
// width cells. Widths below 1 are treated as 1.
func Lay(text string, width int) Layout {
	if width < 1 {
		width = 1
	}

	var (
		out      Layout
		line     int
		column   int
		index    int
		wrapping bool
	)
	for _, r := range text {
		if r == Break {
			column = 0
			line++
			wrapping = false
			continue
		}

		limit := width
		if wrapping {
			limit = width + 1
		}
		if column >= limit {
			column = 0
			line++
			wrapping = true
		}

		out = append(out, Char{
			Rune:    r,
			Index:   index,
			Line:    line,
			Column:  column,
			Wrapped: wrapping,
		})
		index++
		column++
	}
	return out
}

// Len returns the number of visible cells.
func (l Layout) Len() int { return len(l) }
