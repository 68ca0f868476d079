// Package highlight classifies device cells with Chroma and derives the
// device colour palette from a Chroma theme.
package highlight

import (
	"fmt"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var (
	classCache   = make(map[string][]chroma.TokenType)
	classCacheMu sync.RWMutex
)

// Cells returns the Chroma token type of every cell of text: one entry per
// rune, with line breaks skipped so the result lines up with layout flat
// indices. Unknown languages classify every cell as chroma.Text.
func Cells(text, language string) []chroma.TokenType {
	cacheKey := language + ":" + text
	classCacheMu.RLock()
	if v, ok := classCache[cacheKey]; ok {
		classCacheMu.RUnlock()
		return v
	}
	classCacheMu.RUnlock()

	out := classify(text, language)

	classCacheMu.Lock()
	if len(classCache) > 500 {
		classCache = make(map[string][]chroma.TokenType)
	}
	classCache[cacheKey] = out
	classCacheMu.Unlock()
	return out
}

func classify(text, language string) []chroma.TokenType {
	runes := []rune(text)
	types := make([]chroma.TokenType, len(runes))
	for i := range types {
		types[i] = chroma.Text
	}

	if lex := lexers.Get(language); lex != nil {
		lex = chroma.Coalesce(lex)
		if it, err := lex.Tokenise(&chroma.TokeniseOptions{State: "root"}, text); err == nil {
			pos := 0
			for tok := it(); tok != chroma.EOF && pos < len(types); tok = it() {
				for range []rune(tok.Value) {
					if pos >= len(types) {
						break
					}
					types[pos] = tok.Type
					pos++
				}
			}
		}
	}

	cells := types[:0]
	for i, r := range runes {
		if r == '\n' {
			continue
		}
		cells = append(cells, types[i])
	}
	return cells
}

// TokenColour returns the foreground hex colour theme assigns to tt, falling
// back through the token's parent categories. Returns "" when unset.
func TokenColour(theme string, tt chroma.TokenType) string {
	sty := styles.Get(theme)
	if sty == nil {
		return ""
	}
	e := sty.Get(tt)
	if !e.Colour.IsSet() {
		return ""
	}
	return e.Colour.String()
}

// Palette holds the device colours derived from a Chroma theme. Greys are
// a linear ramp from bg to fg; the accent is the most saturated token colour.
type Palette struct {
	Bg     string // screen background
	Fg     string // plain cells
	Frame  string // 10% bg to fg, device border
	Marker string // 25% bg to fg, line-start markers
	Status string // 45% bg to fg, status line
	Accent string // cursor and mode badge
	Error  string // failed runs
}

// ThemePalette derives the device palette from a Chroma theme name. Unknown
// themes get the default palette.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	return Palette{
		Bg:     bg,
		Fg:     fg,
		Frame:  lerpHex(bg, fg, 0.10),
		Marker: lerpHex(bg, fg, 0.25),
		Status: lerpHex(bg, fg, 0.45),
		Accent: pickAccent(sty, fg),
		Error:  pickError(sty, bg, fg),
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Frame: "#141414", Marker: "#323232",
		Status: "#5a5a5a",
		Accent: "#00dfff", Error: "#932e2e",
	}
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := maxf(r, maxf(g, b))
		mn := minf(r, minf(g, b))
		if mx == 0 {
			continue
		}
		sat := (mx - mn) / mx
		if sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// pickError extracts the Error token color and lerps it 45% toward fg
// so it's visible but not garish against the theme background.
func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, fg, 0.45) // muted fallback
	}
	return lerpHex(bg, e.Colour.String(), 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

