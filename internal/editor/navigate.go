package editor

// vertical moves the cursor one line in dir (-1 up, +1 down), keeping its
// column when the target line is long enough. Moving past the first line
// goes to 0, past the last line to the end of the text.
func (s State) vertical(dir int) int {
	idx := s.Index()
	target := s.CursorLine() + dir
	first, okFirst := idx.FirstOfLine(target)
	last, okLast := idx.LastOfLine(target)
	if !okFirst || !okLast {
		if dir < 0 {
			return 0
		}
		return s.Len()
	}
	return min(first.Index+s.CursorColumn(), last.Index)
}

// home returns the first cell of the cursor's line.
func (s State) home() int {
	if c, ok := s.Index().FirstOfLine(s.CursorLine()); ok {
		return c.Index
	}
	return 0
}

// end returns the last cell of the cursor's line, or the end of the text on
// the final line.
func (s State) end() int {
	idx := s.Index()
	line := s.CursorLine()
	if line >= idx.LastLine() {
		return idx.Len()
	}
	if c, ok := idx.LastOfLine(line); ok {
		return c.Index
	}
	return s.cursor
}
