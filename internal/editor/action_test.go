package editor

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		name string
		want Action
	}{
		{"mode", Do(ToggleMode)},
		{"home", Do(Home)},
		{"end", Do(End)},
		{"left", Do(MoveLeft)},
		{"right", Do(MoveRight)},
		{"up", Do(MoveUp)},
		{"down", Do(MoveDown)},
		{"enter", Do(InsertNewline)},
		{"delete", Do(DeleteBackward)},
		{"noop", Do(Noop)},
		{"insert", Do(Noop)},
		{"", Do(Noop)},
		{"UP", Do(Noop)},
	}
	for _, tt := range tests {
		if got := ParseAction(tt.name); got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if got := Insert('x').String(); got != `insert('x')` {
		t.Errorf("got %s", got)
	}
	if got := Insert('\n'); got != Do(InsertNewline) {
		t.Errorf("Insert(newline) = %v", got)
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("got %s", got)
	}
	if Edit.String() != "edit" || Run.String() != "run" {
		t.Errorf("mode strings %s %s", Edit, Run)
	}
}
