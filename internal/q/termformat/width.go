package termformat

import (
	"strings"

	"github.com/glowcat/glowcat/internal/q/uni"
)

// TextWidthWithANSICodes returns the text width of str for monospace fonts in terminals while ignoring ANSI codes. Ex: color formatting codes don't
// contribute to the width and so are ignored. In other words, if rendered to a terminal, how many cells does str occupy?
func TextWidthWithANSICodes(str string) int {
	if str == "" {
		return 0
	}

	width := 0
	segmentStart := 0

	for i := 0; i < len(str); {
		if str[i] != '\x1b' {
			i++
			continue
		}

		if segmentStart < i {
			width += uni.TextWidth(str[segmentStart:i])
		}

		seqLen := ansiSequenceLength(str[i:])
		if seqLen == 0 {
			i++
		} else {
			i += seqLen
		}
		segmentStart = i
	}

	if segmentStart < len(str) {
		width += uni.TextWidth(str[segmentStart:])
	}

	return width
}

// StripANSICodes returns str with all ANSI escape sequences removed. The remaining bytes are exactly the visible text (plus any controls that aren't
// escape sequences, which are left as-is).
func StripANSICodes(str string) string {
	if !strings.ContainsRune(str, '\x1b') {
		return str
	}

	var b strings.Builder
	b.Grow(len(str))
	for i := 0; i < len(str); {
		if str[i] != '\x1b' {
			b.WriteByte(str[i])
			i++
			continue
		}
		seqLen := ansiSequenceLength(str[i:])
		if seqLen == 0 {
			i++
			continue
		}
		i += seqLen
	}
	return b.String()
}

func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			final := s[i]
			if final >= 0x40 && final <= 0x7e { // Final byte of a CSI sequence
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' { // ST terminator
				return i + 2
			}
		}
		return 0
	default:
		return 2
	}
}
