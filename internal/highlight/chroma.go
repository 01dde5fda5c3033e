package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaSource adapts a chroma lexer to the Source contract. The zero value is
// not usable; construct with NewChromaSource.
type ChromaSource struct {
	lexer chroma.Lexer
}

// NewChromaSource returns a Source for the named chroma lexer, or ok == false
// when no lexer is registered under that name.
func NewChromaSource(language string) (*ChromaSource, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, false
	}
	return &ChromaSource{lexer: chroma.Coalesce(lexer)}, true
}

// Spans tokenizes content and returns one span per token, tagged with the
// token's type. The result is in order and covers the buffer (chroma emits
// every input byte exactly once), but callers normalize anyway.
func (s *ChromaSource) Spans(content string) ([]Span, error) {
	it, err := s.lexer.Tokenise(nil, content)
	if err != nil {
		return nil, fmt.Errorf("highlight: tokenise: %w", err)
	}

	var spans []Span
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		end := pos + len(tok.Value)
		spans = append(spans, Span{Start: pos, End: end, Style: StyleID(tok.Type)})
		pos = end
	}
	return spans, nil
}
