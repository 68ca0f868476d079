package editor

import (
	"fmt"

	"github.com/Vandesm14/stack-server/internal/layout"
)

// Kind identifies an editor action.
type Kind int

const (
	Noop Kind = iota
	ToggleMode
	Home
	End
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	InsertNewline
	DeleteBackward
	InsertChar
)

var kindNames = map[Kind]string{
	Noop:           "noop",
	ToggleMode:     "mode",
	Home:           "home",
	End:            "end",
	MoveLeft:       "left",
	MoveRight:      "right",
	MoveUp:         "up",
	MoveDown:       "down",
	InsertNewline:  "enter",
	DeleteBackward: "delete",
	InsertChar:     "insert",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is one input event. Char is only meaningful for InsertChar.
type Action struct {
	Kind Kind
	Char rune
}

// Do returns the action of kind k.
func Do(k Kind) Action { return Action{Kind: k} }

// Insert returns the action that types r at the cursor.
func Insert(r rune) Action {
	if r == layout.Break {
		return Action{Kind: InsertNewline}
	}
	return Action{Kind: InsertChar, Char: r}
}

func (a Action) String() string {
	if a.Kind == InsertChar {
		return fmt.Sprintf("insert(%q)", a.Char)
	}
	return a.Kind.String()
}

// ParseAction maps an action name ("up", "mode", "delete", ...) back to its
// Action. Unknown names yield Noop.
func ParseAction(name string) Action {
	for k, s := range kindNames {
		if s == name && k != InsertChar {
			return Do(k)
		}
	}
	return Do(Noop)
}
