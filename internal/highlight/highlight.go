// Package highlight defines the style-span stream that the rendering pipeline
// consumes, and adapts chroma lexers into that contract.
//
// A span stream for a buffer of n bytes is a sorted, non-overlapping list of
// spans whose union covers [0, n) exactly. Downstream code (the compositor)
// assumes that invariant; Normalize establishes it for any input, so a buggy
// or partial tokenizer degrades to unstyled runs instead of breaking a render.
package highlight

import (
	"sort"
)

// StyleID is an opaque style identifier attached to a span.
//
// Non-negative values (and chroma's small negative specials) are chroma token
// types, resolved into concrete colors by the theme package. The reserved
// values below name decoration and marker styles that don't come from any
// tokenizer; they sit far outside chroma's token-type range.
type StyleID int

// Reserved style identifiers for decorations and markers.
const (
	StyleNone       StyleID = -1000 - iota // no highlighting; render with default terminal style
	StyleLineNumber                        // line number column
	StyleGrid                              // grid separator between decorations and content
	StyleEOLMarker                         // end-of-line marker glyph in show-all mode
	StyleAdded                             // git: line added
	StyleModified                          // git: line modified
	StyleRemoved                           // git: lines removed after this line
	StyleHeader                            // file header between files
)

// Span is a contiguous byte range [Start, End) tagged with a style.
type Span struct {
	Start int
	End   int
	Style StyleID
}

// Source produces a span stream for a buffer. Any grammar-aware highlighter
// can serve; the rendering pipeline depends only on this contract.
//
// Implementations should return spans in order, but callers must run the
// result through Normalize before use: coverage is a contract the pipeline
// enforces rather than trusts.
type Source interface {
	Spans(content string) ([]Span, error)
}

// Plain returns a span stream with no highlighting: one StyleNone span
// covering [0, n). Returns nil when n <= 0.
func Plain(n int) []Span {
	if n <= 0 {
		return nil
	}
	return []Span{{Start: 0, End: n, Style: StyleNone}}
}

// Normalize returns a span stream that exactly covers [0, n): sorted,
// non-overlapping, contiguous. Input spans are clipped to the buffer, empty
// and inverted spans are dropped, overlaps are resolved in favor of the
// earlier span, and gaps are filled with StyleNone.
//
// Normalize never fails; a malformed input stream yields unstyled runs where
// the input was broken.
func Normalize(spans []Span, n int) []Span {
	if n <= 0 {
		return nil
	}

	clipped := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > n {
			s.End = n
		}
		if s.End <= s.Start {
			continue
		}
		clipped = append(clipped, s)
	}
	sort.SliceStable(clipped, func(i, j int) bool { return clipped[i].Start < clipped[j].Start })

	out := make([]Span, 0, len(clipped)+1)
	pos := 0
	for _, s := range clipped {
		if s.End <= pos {
			continue // fully covered by earlier spans
		}
		if s.Start > pos {
			out = append(out, Span{Start: pos, End: s.Start, Style: StyleNone})
		}
		if s.Start < pos {
			s.Start = pos
		}
		out = append(out, s)
		pos = s.End
	}
	if pos < n {
		out = append(out, Span{Start: pos, End: n, Style: StyleNone})
	}
	return out
}

// Cursor walks a normalized span stream left to right. StyleAt must be called
// with non-decreasing positions; it advances an index instead of re-scanning,
// which keeps the per-character style lookup O(1) amortized over a render.
type Cursor struct {
	spans []Span
	idx   int
}

// NewCursor returns a cursor over a normalized span stream.
func NewCursor(spans []Span) *Cursor {
	return &Cursor{spans: spans}
}

// StyleAt returns the style covering byte position pos. Positions outside the
// stream return StyleNone.
func (c *Cursor) StyleAt(pos int) StyleID {
	for c.idx < len(c.spans) && c.spans[c.idx].End <= pos {
		c.idx++
	}
	if c.idx >= len(c.spans) || c.spans[c.idx].Start > pos {
		return StyleNone
	}
	return c.spans[c.idx].Style
}
