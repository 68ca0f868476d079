// Package editor is the device's editing state machine. A State is an
// immutable snapshot of the buffer, its layout, the cursor and the viewport;
// Machine.Apply maps a State and an Action to the next State.
package editor

import (
	"strings"

	"github.com/Vandesm14/stack-server/internal/layout"
)

// Mode is what the display is showing.
type Mode int

const (
	// Edit shows the user's source text.
	Edit Mode = iota
	// Run shows the output of the last execution.
	Run
)

func (m Mode) String() string {
	if m == Run {
		return "run"
	}
	return "edit"
}

// State is a snapshot of the device. The zero value is an empty Edit buffer
// with no layout; use Machine.Start to build a laid-out one.
type State struct {
	source  string
	display string
	index   *layout.Index
	cursor  int
	top     int
	mode    Mode
	output  string
	failed  bool
}

// Source returns the user-authored text.
func (s State) Source() string { return s.source }

// Display returns the normalised text that is laid out.
func (s State) Display() string { return s.display }

// Mode returns the current mode.
func (s State) Mode() Mode { return s.mode }

// RunOutput returns the text produced by the last run, empty in Edit mode.
func (s State) RunOutput() string { return s.output }

// RunFailed reports whether the run output is an error description.
func (s State) RunFailed() bool { return s.failed }

// Cursor returns the cursor's flat index, in [0, Len()].
func (s State) Cursor() int { return s.cursor }

// ViewportTop returns the topmost visible line.
func (s State) ViewportTop() int { return s.top }

// Index returns the lookup structure over the current layout.
func (s State) Index() *layout.Index {
	if s.index == nil {
		return layout.NewIndex(nil)
	}
	return s.index
}

// Layout returns the current layout.
func (s State) Layout() layout.Layout { return s.Index().Layout() }

// Len returns the number of cells in the layout.
func (s State) Len() int { return s.Index().Len() }

// CursorLine returns the line the cursor is on. A cursor past the last cell
// belongs to the last cell's line.
func (s State) CursorLine() int {
	c, ok := s.cursorChar()
	if !ok {
		return 0
	}
	return c.Line
}

// CursorColumn returns the cursor's column. A cursor past the last cell sits
// one column after it.
func (s State) CursorColumn() int {
	c, ok := s.cursorChar()
	if !ok {
		return 0
	}
	if s.cursor >= s.Len() {
		return c.Column + 1
	}
	return c.Column
}

// cursorChar returns the cell under the cursor, or the last cell when the
// cursor is past the end.
func (s State) cursorChar() (layout.Char, bool) {
	idx := s.Index()
	if c, ok := idx.CharAt(s.cursor); ok {
		return c, true
	}
	if s.cursor >= idx.Len() && idx.Len() > 0 {
		return idx.CharAt(idx.Len() - 1)
	}
	return layout.Char{}, false
}

// VisibleWindow returns the layout from the first cell of the viewport's top
// line to the end. Renderers clip to the window height themselves.
func (s State) VisibleWindow() layout.Layout { return s.Index().From(s.top) }

// normalize pads every line break and the end of the text with a space so
// the cursor always has a cell to sit on at the end of a line.
func normalize(text string) string {
	out := strings.ReplaceAll(text, string(layout.Break), " "+string(layout.Break))
	if !strings.HasSuffix(out, " ") {
		out += " "
	}
	return out
}
