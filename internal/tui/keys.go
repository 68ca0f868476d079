package tui

import (
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/Vandesm14/stack-server/internal/editor"
)

// keyMap binds device keys to editor actions.
type keyMap struct {
	Mode   key.Binding
	Home   key.Binding
	End    key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Mode:   key.NewBinding(key.WithKeys("tab", "ctrl+r"), key.WithHelp("tab", "run/edit")),
		Home:   key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Delete: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "delete")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Enter, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Enter, k.Delete},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Home, k.End, k.Quit},
	}
}

// action maps a key press to the editor action it triggers. Printable
// runes not bound to anything else insert themselves.
func (k keyMap) action(msg tea.KeyPressMsg) (editor.Action, bool) {
	bound := []struct {
		binding key.Binding
		kind    editor.Kind
	}{
		{k.Mode, editor.ToggleMode},
		{k.Home, editor.Home},
		{k.End, editor.End},
		{k.Left, editor.MoveLeft},
		{k.Right, editor.MoveRight},
		{k.Up, editor.MoveUp},
		{k.Down, editor.MoveDown},
		{k.Enter, editor.InsertNewline},
		{k.Delete, editor.DeleteBackward},
	}
	for _, b := range bound {
		if key.Matches(msg, b.binding) {
			return editor.Do(b.kind), true
		}
	}

	if msg.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModMeta|tea.ModSuper) != 0 || utf8.RuneCountInString(msg.Text) != 1 {
		return editor.Action{}, false
	}
	r, _ := utf8.DecodeRuneInString(msg.Text)
	if !unicode.IsPrint(r) {
		return editor.Action{}, false
	}
	return editor.Insert(r), true
}
