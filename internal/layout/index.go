package layout

// span is the inclusive range of flat indices that make up one line.
type span struct{ first, last int }

// Index answers flat-index and line queries against one Layout. Build it
// once per Layout with NewIndex; it is read-only afterwards.
type Index struct {
	chars Layout
	lines map[int]span
	last  int // highest line number, -1 when empty
}

// NewIndex precomputes the line table for l.
func NewIndex(l Layout) *Index {
	idx := &Index{
		chars: l,
		lines: make(map[int]span),
		last:  -1,
	}
	for i, c := range l {
		s, ok := idx.lines[c.Line]
		if !ok {
			s.first = i
		}
		s.last = i
		idx.lines[c.Line] = s
		if c.Line > idx.last {
			idx.last = c.Line
		}
	}
	return idx
}

// Layout returns the indexed layout.
func (x *Index) Layout() Layout { return x.chars }

// Len returns the number of visible cells.
func (x *Index) Len() int { return len(x.chars) }

// LastLine returns the highest line number, or -1 for an empty layout.
func (x *Index) LastLine() int { return x.last }

// CharAt returns the cell with the given flat index.
func (x *Index) CharAt(flat int) (Char, bool) {
	if flat < 0 || flat >= len(x.chars) {
		return Char{}, false
	}
	return x.chars[flat], true
}

// FirstOfLine returns the first cell on line, in document order.
func (x *Index) FirstOfLine(line int) (Char, bool) {
	s, ok := x.lines[line]
	if !ok {
		return Char{}, false
	}
	return x.chars[s.first], true
}

// LastOfLine returns the last cell on line.
func (x *Index) LastOfLine(line int) (Char, bool) {
	s, ok := x.lines[line]
	if !ok {
		return Char{}, false
	}
	return x.chars[s.last], true
}

// From returns the layout starting at the first cell of line, or the whole
// layout when the line does not exist.
func (x *Index) From(line int) Layout {
	s, ok := x.lines[line]
	if !ok {
		return x.chars
	}
	return x.chars[s.first:]
}
