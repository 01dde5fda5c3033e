// Package notation maps unprintable characters to visible glyphs for show-all
// mode, like `cat -A` but per character rather than per byte.
//
// The table is pure: a substitution replaces exactly one character in the
// visible stream and never changes which style span covers that position. The
// one exception is the end-of-line marker, which is metadata about line
// termination rather than content and therefore carries its own fixed style;
// the renderer handles that override.
package notation

import "os"

// Style selects the glyph family.
type Style uint8

const (
	// Unicode uses symbol glyphs (→, ↵, ·, ␊, control pictures).
	Unicode Style = iota
	// Caret uses caret notation (^I, ^M, $).
	Caret
)

// Detect picks the glyph style from the locale environment: a UTF-8 locale
// gets Unicode glyphs, anything else caret notation. Unset locale variables
// default to Unicode, which is right on modern systems.
func Detect() Style {
	for _, key := range []string{"LANG", "LC_CTYPE", "LC_ALL"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if containsUTF(v) {
			return Unicode
		}
		return Caret
	}
	return Unicode
}

func containsUTF(v string) bool {
	for i := 0; i+3 <= len(v); i++ {
		c0 := v[i] | 0x20
		c1 := v[i+1] | 0x20
		c2 := v[i+2] | 0x20
		if c0 == 'u' && c1 == 't' && c2 == 'f' {
			return true
		}
	}
	return false
}

// Table is a glyph substitution table. The zero value uses Unicode glyphs.
type Table struct {
	style Style
}

// NewTable returns a substitution table for the given glyph style.
func NewTable(style Style) Table {
	return Table{style: style}
}

// Lookup returns the visible replacement for r, or ok == false when r is
// printable and passes through unchanged. The end-of-line case is separate
// (see EOLMarker) because '\n' is only substituted at a true end of line.
func (t Table) Lookup(r rune) (string, bool) {
	if t.style == Caret {
		return t.lookupCaret(r)
	}
	return t.lookupUnicode(r)
}

func (t Table) lookupUnicode(r rune) (string, bool) {
	switch r {
	case ' ':
		return "·", true
	case '\t':
		return "→", true
	case '\r':
		return "↵", true
	case '\x1b':
		return "␛", true
	case 0x00:
		return "␀", true
	case 0x7f:
		return "␡", true
	case '\u200B':
		return "[ZWSP]", true
	case '\u200C':
		return "[ZWNJ]", true
	case '\u200D':
		return "[ZWJ]", true
	case '\uFEFF':
		return "[BOM]", true
	}
	if r > 0 && r < 0x20 && r != '\n' {
		// Control pictures: U+2400 + code.
		return string(rune(0x2400 + r)), true
	}
	return "", false
}

func (t Table) lookupCaret(r rune) (string, bool) {
	switch r {
	case ' ':
		return "·", true
	case '\t':
		return "^I", true
	case '\r':
		return "^M", true
	case '\x1b':
		return "^[", true
	case 0x00:
		return "^@", true
	case 0x7f:
		return "^?", true
	case '\u200B':
		return "[ZWSP]", true
	case '\u200C':
		return "[ZWNJ]", true
	case '\u200D':
		return "[ZWJ]", true
	case '\uFEFF':
		return "[BOM]", true
	}
	if r > 0 && r < 0x20 && r != '\n' {
		return "^" + string(rune('@'+r)), true
	}
	return "", false
}

// EOLMarker returns the glyph marking a line's terminating newline.
func (t Table) EOLMarker() string {
	if t.style == Caret {
		return "$"
	}
	return "␊"
}

// Reverse returns the original character for a replacement glyph produced by
// Lookup, or ok == false when glyph is not a known replacement. It is the
// inverse of Lookup over the table's domain, which makes show-all output
// recoverable.
func (t Table) Reverse(glyph string) (rune, bool) {
	switch glyph {
	case "·":
		return ' ', true
	case "[ZWSP]":
		return '\u200B', true
	case "[ZWNJ]":
		return '\u200C', true
	case "[ZWJ]":
		return '\u200D', true
	case "[BOM]":
		return '\uFEFF', true
	}

	if t.style == Caret {
		switch {
		case len(glyph) == 2 && glyph[0] == '^' && glyph[1] == '?':
			return 0x7f, true
		case len(glyph) == 2 && glyph[0] == '^':
			return rune(glyph[1] - '@'), true
		}
		return 0, false
	}

	runes := []rune(glyph)
	if len(runes) != 1 {
		return 0, false
	}
	switch runes[0] {
	case '→':
		return '\t', true
	case '↵':
		return '\r', true
	case '␡':
		return 0x7f, true
	}
	if runes[0] >= 0x2400 && runes[0] < 0x2420 {
		return runes[0] - 0x2400, true
	}
	return 0, false
}
