package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
)

func TestCellsSkipsBreaks(t *testing.T) {
	text := "2 2 + \nh "
	got := Cells(text, "forth")
	if len(got) != len([]rune(text))-1 {
		t.Fatalf("got %d cells, want %d", len(got), len([]rune(text))-1)
	}
}

func TestCellsKeepCarriageReturns(t *testing.T) {
	got := Cells("x\r\n\r\n12 ", "forth")
	if len(got) != 6 {
		t.Fatalf("got %d cells, want 6", len(got))
	}
	for _, i := range []int{3, 4} {
		if got[i] != chroma.LiteralNumberInteger {
			t.Errorf("cell %d = %v, want LiteralNumberInteger", i, got[i])
		}
	}
}

func TestCellsUnknownLanguage(t *testing.T) {
	got := Cells("abc \nd ", "no-such-language")
	if len(got) != 6 {
		t.Fatalf("got %d cells, want 6", len(got))
	}
	for i, tt := range got {
		if tt != chroma.Text {
			t.Errorf("cell %d = %v, want Text", i, tt)
		}
	}
}

func TestCellsEmpty(t *testing.T) {
	if got := Cells("", "forth"); len(got) != 0 {
		t.Fatalf("got %d cells, want 0", len(got))
	}
}

func TestCellsCached(t *testing.T) {
	a := Cells("1 2 + ", "forth")
	b := Cells("1 2 + ", "forth")
	if len(a) == 0 || &a[0] != &b[0] {
		t.Fatal("expected cached slice to be reused")
	}
}

func TestTokenColour(t *testing.T) {
	got := TokenColour("github-dark", chroma.Keyword)
	if len(got) != 7 || got[0] != '#' {
		t.Fatalf("TokenColour = %q, want #rrggbb", got)
	}
}

func TestThemePalette(t *testing.T) {
	p := ThemePalette("github-dark")
	for name, c := range map[string]string{
		"bg": p.Bg, "fg": p.Fg, "frame": p.Frame, "marker": p.Marker,
		"status": p.Status, "accent": p.Accent, "error": p.Error,
	} {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("%s = %q, want #rrggbb", name, c)
		}
	}
}

func TestLerpHex(t *testing.T) {
	tests := []struct {
		a, b string
		t    float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#c8c8c8", 0.25, "#323232"},
		{"bogus", "#ffffff", 1, "#ffffff"},
	}
	for _, tt := range tests {
		if got := lerpHex(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("lerpHex(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		lang, kind, want string
	}{
		{"", "stack", "forth"},
		{"", "Shell", "bash"},
		{"", "remote", "forth"},
		{"", "other", ""},
		{" Python ", "shell", "python"},
	}
	for _, tt := range tests {
		if got := LanguageFor(tt.lang, tt.kind); got != tt.want {
			t.Errorf("LanguageFor(%q, %q) = %q, want %q", tt.lang, tt.kind, got, tt.want)
		}
	}
}
