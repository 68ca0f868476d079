package editor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vandesm14/stack-server/internal/constants"
	"github.com/Vandesm14/stack-server/internal/engine"
	"github.com/Vandesm14/stack-server/internal/layout"
)

// Machine applies actions to States. It holds the device geometry and the
// execution engine used when switching into Run mode. A Machine is safe to
// share; it keeps no per-state data.
type Machine struct {
	engine  engine.Engine
	width   int
	height  int
	timeout time.Duration
}

// Option configures a Machine.
type Option func(*Machine)

// WithWrapWidth sets the number of cells per display line.
func WithWrapWidth(w int) Option {
	return func(m *Machine) {
		if w >= 1 {
			m.width = w
		}
	}
}

// WithWindowHeight sets the number of visible display lines.
func WithWindowHeight(h int) Option {
	return func(m *Machine) {
		if h >= 1 {
			m.height = h
		}
	}
}

// WithRunTimeout bounds each engine run. Zero disables the bound.
func WithRunTimeout(d time.Duration) Option {
	return func(m *Machine) { m.timeout = d }
}

// New returns a Machine using e for Run mode. Runs are bounded by
// constants.RunTimeout unless WithRunTimeout says otherwise.
func New(e engine.Engine, opts ...Option) *Machine {
	m := &Machine{
		width:   constants.WrapWidth,
		height:  constants.WindowHeight,
		timeout: constants.RunTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if e != nil {
		m.engine = engine.WithTimeout(e, m.timeout)
	}
	return m
}

// WrapWidth returns the configured wrap width.
func (m *Machine) WrapWidth() int { return m.width }

// WindowHeight returns the configured window height.
func (m *Machine) WindowHeight() int { return m.height }

// Start returns the initial Edit-mode State for source with the cursor at 0.
func (m *Machine) Start(source string) State {
	s := State{source: source, mode: Edit}
	return m.relayout(s)
}

// Apply returns the State that results from a on s. It never fails: bounds
// are clamped, edits outside Edit mode are ignored and engine failures
// become the run output.
func (m *Machine) Apply(ctx context.Context, s State, a Action) State {
	if s.index == nil {
		s = m.relayout(s)
	}

	switch a.Kind {
	case MoveLeft:
		s.cursor = clamp(s.cursor-1, 0, s.Len())
	case MoveRight:
		s.cursor = clamp(s.cursor+1, 0, s.Len())
	case MoveUp:
		s.cursor = s.vertical(-1)
	case MoveDown:
		s.cursor = s.vertical(+1)
	case Home:
		s.cursor = s.home()
	case End:
		s.cursor = s.end()
	case ToggleMode:
		s = m.toggle(ctx, s)
	case InsertChar:
		s = m.insert(s, a.Char)
	case InsertNewline:
		s = m.insert(s, layout.Break)
	case DeleteBackward:
		s = m.deleteBackward(s)
	default:
		return s
	}

	s.top = m.scroll(s)
	log.Debug().
		Str("action", a.String()).
		Str("mode", s.mode.String()).
		Int("cursor", s.cursor).
		Int("line", s.CursorLine()).
		Int("top", s.top).
		Msg("editor: apply")
	return s
}

// relayout recomputes the display text and layout from the mode and clamps
// the cursor into the new bounds.
func (m *Machine) relayout(s State) State {
	if s.mode == Run {
		s.display = normalize(s.output)
	} else {
		s.display = normalize(s.source)
	}
	s.index = layout.NewIndex(layout.Lay(s.display, m.width))
	s.cursor = clamp(s.cursor, 0, s.Len())
	s.top = m.scroll(s)
	return s
}

// scroll returns the viewport top that keeps the cursor line visible. The
// viewport only moves when the cursor leaves it.
func (m *Machine) scroll(s State) int {
	line := s.CursorLine()
	top := s.top
	switch {
	case line < top:
		top = line
	case line >= top+m.height:
		top = line - (m.height - 1)
	}
	return top
}

func (m *Machine) toggle(ctx context.Context, s State) State {
	if s.mode == Run {
		s.mode = Edit
		s.output = ""
		s.failed = false
	} else {
		s.mode = Run
		s.output, s.failed = m.run(ctx, s.source)
	}
	s.cursor = 0
	s.top = 0
	return m.relayout(s)
}

// run executes source and returns the run output and whether it describes
// a failure.
func (m *Machine) run(ctx context.Context, source string) (string, bool) {
	if m.engine == nil {
		return "no execution engine", true
	}
	start := time.Now()
	vs, err := m.engine.Run(ctx, source)
	if err != nil {
		log.Info().Err(err).Dur("elapsed", time.Since(start)).Msg("editor: run failed")
		return err.Error(), true
	}
	log.Debug().Int("values", len(vs)).Dur("elapsed", time.Since(start)).Msg("editor: run")
	return engine.Render(vs), false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
