package render

import (
	"io"
	"strings"

	"github.com/glowcat/glowcat/internal/theme"
)

// Sink writes rendered lines as ANSI-styled text. When color is off, all
// style information is discarded but glyph substitutions and decorations
// remain in the output.
type Sink struct {
	w     io.Writer
	theme theme.Theme
	color bool
}

// NewSink wraps w. theme is only consulted when color is true.
func NewSink(w io.Writer, th theme.Theme, color bool) *Sink {
	return &Sink{w: w, theme: th, color: color}
}

// WriteLine emits one rendered line. A write error (ex: broken pipe) is
// returned so the caller can abort the current file; flushed lines are not
// retracted.
func (s *Sink) WriteLine(rl RenderedLine) error {
	var b strings.Builder
	s.appendFragments(&b, rl.Prefix)
	s.appendFragments(&b, rl.Content)
	if rl.HasNewline {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(s.w, b.String())
	return err
}

func (s *Sink) appendFragments(b *strings.Builder, frags []Fragment) {
	for _, f := range frags {
		if !s.color {
			b.WriteString(f.Text)
			continue
		}
		seq := s.theme.Resolve(f.Style).Sequence()
		if seq == "" {
			b.WriteString(f.Text)
			continue
		}
		b.WriteString(seq)
		b.WriteString(f.Text)
		b.WriteString(theme.Reset)
	}
}
