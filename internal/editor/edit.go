package editor

// Every rune of the source, line breaks included, owns exactly one cell of
// the normalised display, so a cursor maps to the source rune offset
// min(cursor, runes).

func (m *Machine) insert(s State, r rune) State {
	if s.mode != Edit || r == '\r' {
		return s
	}
	src := []rune(s.source)
	off := min(s.cursor, len(src))

	out := make([]rune, 0, len(src)+1)
	out = append(out, src[:off]...)
	out = append(out, r)
	out = append(out, src[off:]...)

	s.source = string(out)
	s.cursor = off + 1
	return m.relayout(s)
}

// deleteBackward removes the rune before the cursor. At the start of the
// buffer it does nothing.
func (m *Machine) deleteBackward(s State) State {
	if s.mode != Edit {
		return s
	}
	src := []rune(s.source)
	off := min(s.cursor, len(src))
	if off == 0 {
		return s
	}

	out := make([]rune, 0, len(src)-1)
	out = append(out, src[:off-1]...)
	out = append(out, src[off:]...)

	s.source = string(out)
	s.cursor = off - 1
	return m.relayout(s)
}
