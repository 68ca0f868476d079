package layout

import "testing"

func TestIndexLookups(t *testing.T) {
	idx := NewIndex(Lay("2 2 +\nh", 15))

	if idx.Len() != 6 || idx.LastLine() != 1 {
		t.Fatalf("len=%d lastLine=%d", idx.Len(), idx.LastLine())
	}

	c, ok := idx.CharAt(5)
	if !ok || c.Rune != 'h' {
		t.Errorf("CharAt(5) = %+v, %v", c, ok)
	}
	for _, flat := range []int{-1, 6, 100} {
		if _, ok := idx.CharAt(flat); ok {
			t.Errorf("CharAt(%d) should miss", flat)
		}
	}

	first, ok := idx.FirstOfLine(0)
	if !ok || first.Index != 0 {
		t.Errorf("FirstOfLine(0) = %+v, %v", first, ok)
	}
	last, ok := idx.LastOfLine(0)
	if !ok || last.Index != 4 || last.Rune != '+' {
		t.Errorf("LastOfLine(0) = %+v, %v", last, ok)
	}
	if _, ok := idx.FirstOfLine(2); ok {
		t.Error("FirstOfLine(2) should miss")
	}
	if _, ok := idx.LastOfLine(-1); ok {
		t.Error("LastOfLine(-1) should miss")
	}
}

func TestIndexMissingMiddleLine(t *testing.T) {
	idx := NewIndex(Lay("a\n\nb", 15))
	if _, ok := idx.FirstOfLine(1); ok {
		t.Error("line 1 has no cells")
	}
	if c, ok := idx.FirstOfLine(2); !ok || c.Rune != 'b' {
		t.Errorf("FirstOfLine(2) = %+v, %v", c, ok)
	}
}

func TestIndexFrom(t *testing.T) {
	idx := NewIndex(Lay("ab\ncd\nef", 15))
	if got := idx.From(1); len(got) != 4 || got[0].Rune != 'c' {
		t.Errorf("From(1) = %+v", got)
	}
	if got := idx.From(9); len(got) != 6 {
		t.Errorf("From(9) should return the whole layout, got %d cells", len(got))
	}
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex(nil)
	if idx.Len() != 0 || idx.LastLine() != -1 {
		t.Errorf("len=%d lastLine=%d", idx.Len(), idx.LastLine())
	}
	if _, ok := idx.FirstOfLine(0); ok {
		t.Error("empty index has no lines")
	}
	if got := idx.From(0); len(got) != 0 {
		t.Errorf("From(0) = %+v", got)
	}
}
