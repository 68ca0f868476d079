// Package tui draws the device in a terminal and feeds key presses to the
// editor state machine.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"github.com/Vandesm14/stack-server/internal/editor"
)

// Options configures the device rendering.
type Options struct {
	// Theme is the Chroma style the cells are coloured with.
	Theme string
	// Language is the Chroma lexer used to classify cells. Empty leaves
	// every cell as plain text.
	Language string
}

// Model is the device program model.
type Model struct {
	width  int
	height int

	machine *editor.Machine
	state   editor.State
	pending bool // a run is in flight; key presses are dropped

	keys     keyMap
	help     help.Model
	styles   styles
	language string

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the device model booted with source.
func New(machine *editor.Machine, source string, opts Options) Model {
	st := newStyles(opts.Theme)

	h := help.New()
	h.Styles.ShortKey = st.StatusText
	h.Styles.ShortDesc = st.StatusText.Faint(true)
	h.Styles.ShortSeparator = st.StatusText.Faint(true)
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		machine:  machine,
		state:    machine.Start(source),
		keys:     defaultKeyMap(),
		help:     h,
		styles:   st,
		language: opts.Language,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current editor state.
func (m Model) State() editor.State { return m.state }

// Pending reports whether a run is in flight.
func (m Model) Pending() bool { return m.pending }
