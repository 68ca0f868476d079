package layout

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// lineLens returns the number of cells on each line present in l.
func lineLens(l Layout) map[int]int {
	out := make(map[int]int)
	for _, c := range l {
		out[c.Line]++
	}
	return out
}

func TestLayExplicitBreak(t *testing.T) {
	l := Lay("2 2 +\nh", 15)
	if l.Len() != 6 {
		t.Fatalf("got %d cells, want 6", l.Len())
	}
	for i, c := range l[:5] {
		if c.Line != 0 || c.Column != i || c.Wrapped {
			t.Errorf("cell %d: %+v", i, c)
		}
	}
	h := l[5]
	want := Char{Rune: 'h', Index: 5, Line: 1, Column: 0, Wrapped: false}
	if h != want {
		t.Errorf("got %+v, want %+v", h, want)
	}
}

func TestLayForcedWrapBoundary(t *testing.T) {
	l := Lay(strings.Repeat("a", 20), 15)
	lens := lineLens(l)
	if lens[0] != 15 || lens[1] != 5 {
		t.Fatalf("line lengths = %v, want 15 then 5", lens)
	}
	if l[14].Wrapped || !l[15].Wrapped {
		t.Errorf("wrap flag: cell 14 %v, cell 15 %v", l[14].Wrapped, l[15].Wrapped)
	}
	if l[15].Column != 0 || l[15].Line != 1 {
		t.Errorf("cell 15 = %+v, want line 1 column 0", l[15])
	}
}

// A continuation line holds one cell more than the wrap width. This is the
// device's historical behaviour and must not change.
func TestLayContinuationLineHoldsOneExtra(t *testing.T) {
	l := Lay(strings.Repeat("a", 40), 15)
	lens := lineLens(l)
	want := map[int]int{0: 15, 1: 16, 2: 9}
	for line, n := range want {
		if lens[line] != n {
			t.Errorf("line %d: %d cells, want %d", line, lens[line], n)
		}
	}
	if !l[31].Wrapped || l[31].Line != 2 || l[31].Column != 0 {
		t.Errorf("cell 31 = %+v", l[31])
	}
}

func TestLayPostBreakLineWrapsAtWidth(t *testing.T) {
	text := strings.Repeat("a", 17) + "\n" + strings.Repeat("b", 16)
	l := Lay(text, 15)
	lens := lineLens(l)
	want := map[int]int{0: 15, 1: 2, 2: 15, 3: 1}
	for line, n := range want {
		if lens[line] != n {
			t.Errorf("line %d: %d cells, want %d", line, lens[line], n)
		}
	}
	for _, c := range l {
		wantWrapped := c.Line == 1 || c.Line == 3
		if c.Wrapped != wantWrapped {
			t.Errorf("cell %d on line %d: wrapped=%v", c.Index, c.Line, c.Wrapped)
		}
	}
}

func TestLayConsecutiveBreaksSkipLines(t *testing.T) {
	l := Lay("a\n\nb", 15)
	if l.Len() != 2 {
		t.Fatalf("got %d cells, want 2", l.Len())
	}
	if l[1].Line != 2 || l[1].Column != 0 || l[1].Index != 1 {
		t.Errorf("b = %+v, want line 2 column 0 index 1", l[1])
	}
}

func TestLayEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		lines []int
	}{
		{"empty", "", 15, nil},
		{"only breaks", "\n\n", 15, nil},
		{"width zero acts as one", "abcd", 0, []int{0, 1, 1, 2}},
		{"width one", "abcd", 1, []int{0, 1, 1, 2}},
		{"multibyte runes", "héllo", 2, []int{0, 0, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lay(tt.text, tt.width)
			if l.Len() != len(tt.lines) {
				t.Fatalf("got %d cells, want %d", l.Len(), len(tt.lines))
			}
			for i, c := range l {
				if c.Line != tt.lines[i] {
					t.Errorf("cell %d: line %d, want %d", i, c.Line, tt.lines[i])
				}
			}
		})
	}
}

func TestLayInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("ab +-\n\n12é")
	for iter := 0; iter < 500; iter++ {
		n := rng.IntN(80)
		rs := make([]rune, n)
		breaks := 0
		for i := range rs {
			rs[i] = alphabet[rng.IntN(len(alphabet))]
			if rs[i] == Break {
				breaks++
			}
		}
		width := 1 + rng.IntN(20)
		l := Lay(string(rs), width)

		if l.Len() != n-breaks {
			t.Fatalf("%q: %d cells, want %d", string(rs), l.Len(), n-breaks)
		}
		for i, c := range l {
			if c.Index != i {
				t.Fatalf("%q: cell %d has index %d", string(rs), i, c.Index)
			}
			if i == 0 {
				if c.Wrapped {
					t.Fatalf("%q: first cell wrapped", string(rs))
				}
				continue
			}
			prev := l[i-1]
			switch {
			case c.Line < prev.Line:
				t.Fatalf("%q: line decreased at %d", string(rs), i)
			case c.Line > prev.Line && c.Column != 0:
				t.Fatalf("%q: column %d after line change at %d", string(rs), c.Column, i)
			case c.Line == prev.Line && c.Column != prev.Column+1:
				t.Fatalf("%q: column jump at %d", string(rs), i)
			}
			limit := width
			if c.Wrapped {
				limit = width + 1
			}
			if c.Column >= limit {
				t.Fatalf("%q: column %d exceeds limit %d", string(rs), c.Column, limit)
			}
		}
	}
}
