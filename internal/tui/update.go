package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/Vandesm14/stack-server/internal/editor"
	"github.com/rs/zerolog/log"
)

// ranMsg carries the state produced by a run started off the UI loop.
type ranMsg struct {
	state editor.State
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case ranMsg:
		m.state = msg.state
		m.pending = false
		log.Info().
			Str("mode", m.state.Mode().String()).
			Str("output", m.state.RunOutput()).
			Msg("tui: run finished")
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return m, tea.Quit
	}
	if m.pending {
		log.Debug().Str("key", msg.String()).Msg("tui: key dropped while running")
		return m, nil
	}

	a, ok := m.keys.action(msg)
	if !ok {
		return m, nil
	}
	if a.Kind == editor.ToggleMode && m.state.Mode() == editor.Edit {
		m.pending = true
		return m, m.runCmd(a)
	}
	m.state = m.machine.Apply(m.ctx, m.state, a)
	return m, nil
}

// runCmd applies a (which runs the program) on the command goroutine.
func (m Model) runCmd(a editor.Action) tea.Cmd {
	machine, ctx, s := m.machine, m.ctx, m.state
	return func() tea.Msg {
		return ranMsg{state: machine.Apply(ctx, s, a)}
	}
}
