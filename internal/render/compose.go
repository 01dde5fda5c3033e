// Package render composes the final styled output for one file: it merges
// highlighter spans with line decorations (numbers, change markers), applies
// unprintable-character substitution, and hands per-line fragment sequences
// to a sink for ANSI emission.
package render

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/glowcat/glowcat/internal/changes"
	"github.com/glowcat/glowcat/internal/highlight"
	"github.com/glowcat/glowcat/internal/notation"
	"github.com/glowcat/glowcat/internal/q/uni"
)

// Config selects which decoration and substitution layers are active. It is
// resolved once per invocation and read-only during rendering.
type Config struct {
	Numbers bool
	Changes bool
	ShowAll bool

	// Notation selects the glyph set used when ShowAll is on.
	Notation notation.Style

	// FirstLine offsets displayed line numbers when rendering a slice of a
	// file (ex: file.go#L10-L20 numbers from 10). Zero means 1.
	FirstLine int
}

func (c Config) decorated() bool {
	return c.Numbers || c.Changes
}

// Fragment is a run of text sharing one resolved style.
type Fragment struct {
	Text  string
	Style highlight.StyleID
}

// RenderedLine is the compositor's output unit: a fixed-width decoration
// prefix, the styled content fragments, and whether the source line had a
// terminating newline. Consumed exactly once by the sink.
type RenderedLine struct {
	Prefix     []Fragment
	Content    []Fragment
	HasNewline bool
}

// Compositor renders the lines of one buffer. It holds immutable snapshots
// of all inputs; nothing is shared across files.
type Compositor struct {
	cfg      Config
	buffer   string
	lines    []Line
	cursor   *highlight.Cursor
	changes  changes.Result
	table    notation.Table
	numWidth int
}

// NewCompositor prepares a render pass over buffer. spans may be malformed or
// partial; coverage gaps degrade to unstyled text rather than failing.
func NewCompositor(cfg Config, buffer string, spans []highlight.Span, ch changes.Result) *Compositor {
	lines := SplitLines(buffer)
	if cfg.FirstLine < 1 {
		cfg.FirstLine = 1
	}
	numWidth := 1
	if n := len(lines); n > 0 {
		numWidth = len(strconv.Itoa(cfg.FirstLine + n - 1))
	}
	return &Compositor{
		cfg:      cfg,
		buffer:   buffer,
		lines:    lines,
		cursor:   highlight.NewCursor(highlight.Normalize(spans, len(buffer))),
		changes:  ch,
		table:    notation.NewTable(cfg.Notation),
		numWidth: numWidth,
	}
}

// Lines returns the buffer's line table.
func (c *Compositor) Lines() []Line {
	return c.lines
}

// Render produces the RenderedLine for one line. Lines must be rendered in
// increasing order: the span cursor only advances.
func (c *Compositor) Render(line Line) RenderedLine {
	return RenderedLine{
		Prefix:     c.prefix(line),
		Content:    c.content(line),
		HasNewline: line.HasNewline,
	}
}

// prefix builds the decoration columns. Width is constant across the file:
// the number column is sized to the largest line number, and the change
// column is always exactly one glyph plus a space.
func (c *Compositor) prefix(line Line) []Fragment {
	if !c.cfg.decorated() {
		return nil
	}
	var out []Fragment
	if c.cfg.Numbers {
		out = append(out, Fragment{
			Text:  fmt.Sprintf("%*d ", c.numWidth, c.cfg.FirstLine+line.Index-1),
			Style: highlight.StyleLineNumber,
		})
	}
	if c.cfg.Changes {
		out = append(out, c.changeColumn(line))
	}
	out = append(out, Fragment{Text: "│ ", Style: highlight.StyleGrid})
	return out
}

// changeColumn picks the glyph for the single change column. A line's own
// tag wins; otherwise a deletion gap ending just above this line shows as a
// removal marker. A gap past the final line has no line below to carry it,
// so the final line carries it instead.
func (c *Compositor) changeColumn(line Line) Fragment {
	switch c.changes.TagFor(line.Index) {
	case changes.TagAdded:
		return Fragment{Text: "+ ", Style: highlight.StyleAdded}
	case changes.TagModified:
		return Fragment{Text: "~ ", Style: highlight.StyleModified}
	}
	if c.changes.DeletedAfter(line.Index-1) > 0 {
		return Fragment{Text: "- ", Style: highlight.StyleRemoved}
	}
	if line.Index == len(c.lines) && c.changes.DeletedAfter(line.Index) > 0 {
		return Fragment{Text: "- ", Style: highlight.StyleRemoved}
	}
	return Fragment{Text: "  ", Style: highlight.StyleNone}
}

func (c *Compositor) content(line Line) []Fragment {
	var out []Fragment
	emit := func(text string, style highlight.StyleID) {
		if text == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Style == style {
			out[n-1].Text += text
			return
		}
		out = append(out, Fragment{Text: text, Style: style})
	}

	// Walk grapheme clusters, not runes: a combining sequence or emoji must
	// come out as one unit even when the span stream splits inside it.
	it := uni.NewGraphemeIterator(line.Text(c.buffer))
	for it.Next() {
		style := c.cursor.StyleAt(line.Start + it.Start())
		text := it.Value()
		if c.cfg.ShowAll {
			// Substitution is 1-for-1 and keeps the span's style, so turning
			// show-all on never loses highlighting.
			if r, size := utf8.DecodeRuneInString(text); size == len(text) {
				if glyph, ok := c.table.Lookup(r); ok {
					text = glyph
				}
			}
		}
		emit(text, style)
	}

	if c.cfg.ShowAll && line.HasNewline {
		emit(c.table.EOLMarker(), highlight.StyleEOLMarker)
	}

	return out
}

// HeaderLine renders a standalone file header row, used when concatenating
// multiple named files.
func HeaderLine(name string) RenderedLine {
	return RenderedLine{
		Content:    []Fragment{{Text: "==> " + name + " <==", Style: highlight.StyleHeader}},
		HasNewline: true,
	}
}
