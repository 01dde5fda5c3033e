// Package theme resolves opaque style identifiers into concrete terminal
// attributes. Token styles come from a chroma style table; decoration and
// marker styles (line numbers, git glyphs, end-of-line markers) use a fixed
// palette that doesn't vary by theme.
package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/glowcat/glowcat/internal/highlight"
)

// Default theme names for dark and light terminal backgrounds.
const (
	DefaultDark  = "catppuccin-mocha"
	DefaultLight = "catppuccin-latte"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Attr is a renderable attribute set for one style. The zero value means
// "default terminal style" and produces no escape sequence.
type Attr struct {
	HasFG     bool
	FG        RGB
	Bold      bool
	Italic    bool
	Underline bool
	Dim       bool
}

// IsZero reports whether a is the default terminal style.
func (a Attr) IsZero() bool {
	return a == Attr{}
}

// Sequence returns the ANSI escape prefix selecting a, or "" for the zero
// value. Callers are responsible for emitting a reset afterwards.
func (a Attr) Sequence() string {
	if a.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString("\x1b[")
	wrote := false
	sep := func() {
		if wrote {
			b.WriteByte(';')
		}
		wrote = true
	}
	if a.Bold {
		sep()
		b.WriteByte('1')
	}
	if a.Dim {
		sep()
		b.WriteByte('2')
	}
	if a.Italic {
		sep()
		b.WriteByte('3')
	}
	if a.Underline {
		sep()
		b.WriteByte('4')
	}
	if a.HasFG {
		sep()
		b.WriteString("38;2;")
		b.WriteString(strconv.Itoa(int(a.FG.R)))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(a.FG.G)))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(a.FG.B)))
	}
	b.WriteByte('m')
	return b.String()
}

// Reset is the ANSI sequence restoring the default terminal style.
const Reset = "\x1b[0m"

// Decoration palette. Matches the glyph colors a user expects from diff
// tooling: green additions, yellow modifications, red removals, dim gray for
// everything structural.
var (
	attrDim      = Attr{HasFG: true, FG: RGB{100, 100, 100}}
	attrAdded    = Attr{HasFG: true, FG: RGB{150, 255, 150}}
	attrModified = Attr{HasFG: true, FG: RGB{255, 200, 100}}
	attrRemoved  = Attr{HasFG: true, FG: RGB{255, 100, 100}}
	attrHeader   = Attr{HasFG: true, FG: RGB{0, 200, 200}, Bold: true}
)

// Theme maps style identifiers to attributes. Immutable once constructed;
// safe to share across files in one invocation.
type Theme struct {
	name  string
	style *chroma.Style
}

// Name returns the resolved chroma style name backing t.
func (t Theme) Name() string {
	return t.name
}

// Resolve returns the attribute set for id. Reserved decoration identifiers
// use the fixed palette; anything else is treated as a chroma token type and
// resolved through the theme's style table (with chroma's inheritance rules).
func (t Theme) Resolve(id highlight.StyleID) Attr {
	switch id {
	case highlight.StyleNone:
		return Attr{}
	case highlight.StyleLineNumber, highlight.StyleGrid, highlight.StyleEOLMarker:
		return attrDim
	case highlight.StyleAdded:
		return attrAdded
	case highlight.StyleModified:
		return attrModified
	case highlight.StyleRemoved:
		return attrRemoved
	case highlight.StyleHeader:
		return attrHeader
	}

	if t.style == nil {
		return Attr{}
	}
	entry := t.style.Get(chroma.TokenType(id))
	var a Attr
	if entry.Colour.IsSet() {
		a.HasFG = true
		a.FG = RGB{entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()}
	}
	if entry.Bold == chroma.Yes {
		a.Bold = true
	}
	if entry.Italic == chroma.Yes {
		a.Italic = true
	}
	if entry.Underline == chroma.Yes {
		a.Underline = true
	}
	return a
}

// Load resolves a theme by name, honoring the original semantics of the
// --theme flag:
//   - "auto" (or "") picks the dark or light default based on the terminal
//     background, with lightName/darkName as user overrides
//   - "dark"/"light" force that side's theme
//   - any other name is looked up directly, falling back to auto when unknown
func Load(name, lightName, darkName string) Theme {
	key := strings.TrimSpace(name)
	// Allow "name:variant" forms; only the base key selects the table.
	if i := strings.IndexByte(key, ':'); i >= 0 {
		key = key[:i]
	}

	switch key {
	case "", "auto":
		return loadAuto(lightName, darkName)
	case "dark":
		return loadNamed(darkName, true)
	case "light":
		return loadNamed(lightName, false)
	default:
		if st, ok := styles.Registry[key]; ok {
			return Theme{name: key, style: st}
		}
		return loadAuto(lightName, darkName)
	}
}

func loadAuto(lightName, darkName string) Theme {
	if backgroundIsLight() {
		return loadNamed(lightName, false)
	}
	return loadNamed(darkName, true)
}

func loadNamed(override string, preferDark bool) Theme {
	if name := strings.TrimSpace(override); name != "" {
		if st, ok := styles.Registry[name]; ok {
			return Theme{name: name, style: st}
		}
	}
	if preferDark {
		return Theme{name: DefaultDark, style: styles.Get(DefaultDark)}
	}
	return Theme{name: DefaultLight, style: styles.Get(DefaultLight)}
}

// backgroundIsLight reports whether the terminal background looks light.
// COLORFGBG is the only widely-set hint reachable from a child process
// ("15;0" means white-on-black); absent or unparsable means dark, the safer
// default for syntax themes.
func backgroundIsLight() bool {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	bg := parts[len(parts)-1]
	n, err := strconv.Atoi(bg)
	if err != nil {
		return false
	}
	// 0-6 and 8 are dark ANSI backgrounds; 7 and 9-15 are light.
	return n == 7 || n >= 9
}

// Names returns the sorted names of all registered themes.
func Names() []string {
	return styles.Names()
}
