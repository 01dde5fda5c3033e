package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireCovers asserts that spans are sorted, non-overlapping, contiguous,
// and exactly cover [0, n).
func requireCovers(t *testing.T, spans []Span, n int) {
	t.Helper()
	if n == 0 {
		require.Empty(t, spans)
		return
	}
	require.NotEmpty(t, spans)
	require.Equal(t, 0, spans[0].Start)
	for i, s := range spans {
		require.Less(t, s.Start, s.End)
		if i > 0 {
			require.Equal(t, spans[i-1].End, s.Start)
		}
	}
	require.Equal(t, n, spans[len(spans)-1].End)
}

func TestNormalize_Empty(t *testing.T) {
	require.Nil(t, Normalize(nil, 0))
	requireCovers(t, Normalize(nil, 10), 10)
	require.Equal(t, []Span{{0, 10, StyleNone}}, Normalize(nil, 10))
}

func TestNormalize_AlreadyCovering(t *testing.T) {
	in := []Span{{0, 3, 5}, {3, 7, 6}, {7, 10, 7}}
	out := Normalize(in, 10)
	require.Equal(t, in, out)
}

func TestNormalize_GapIsFilledWithStyleNone(t *testing.T) {
	in := []Span{{0, 3, 5}, {6, 10, 7}}
	out := Normalize(in, 10)
	requireCovers(t, out, 10)
	require.Equal(t, []Span{{0, 3, 5}, {3, 6, StyleNone}, {6, 10, 7}}, out)
}

func TestNormalize_LeadingAndTrailingGaps(t *testing.T) {
	in := []Span{{2, 4, 9}}
	out := Normalize(in, 6)
	require.Equal(t, []Span{{0, 2, StyleNone}, {2, 4, 9}, {4, 6, StyleNone}}, out)
}

func TestNormalize_ClipsAndDrops(t *testing.T) {
	in := []Span{
		{-5, 2, 1},  // clipped to [0,2)
		{2, 2, 2},   // empty, dropped
		{4, 3, 3},   // inverted, dropped
		{8, 99, 4},  // clipped to [8,10)
		{20, 30, 5}, // entirely out of range, dropped
	}
	out := Normalize(in, 10)
	requireCovers(t, out, 10)
	require.Equal(t, []Span{{0, 2, 1}, {2, 8, StyleNone}, {8, 10, 4}}, out)
}

func TestNormalize_OverlapFavorsEarlierSpan(t *testing.T) {
	in := []Span{{0, 6, 1}, {4, 10, 2}}
	out := Normalize(in, 10)
	requireCovers(t, out, 10)
	require.Equal(t, []Span{{0, 6, 1}, {6, 10, 2}}, out)
}

func TestNormalize_ArbitraryJunkAlwaysCovers(t *testing.T) {
	junk := []Span{{9, 2, 1}, {-3, -1, 2}, {5, 5, 3}, {1, 100, 4}, {0, 1, 5}, {2, 3, 6}}
	out := Normalize(junk, 17)
	requireCovers(t, out, 17)
}

func TestPlain(t *testing.T) {
	require.Nil(t, Plain(0))
	require.Nil(t, Plain(-1))
	require.Equal(t, []Span{{0, 5, StyleNone}}, Plain(5))
}

func TestCursor_AdvancesMonotonically(t *testing.T) {
	spans := []Span{{0, 3, 1}, {3, 5, 2}, {5, 9, 3}}
	c := NewCursor(spans)
	require.Equal(t, StyleID(1), c.StyleAt(0))
	require.Equal(t, StyleID(1), c.StyleAt(2))
	require.Equal(t, StyleID(2), c.StyleAt(3))
	require.Equal(t, StyleID(3), c.StyleAt(8))
	require.Equal(t, StyleNone, c.StyleAt(9))
}

func TestChromaSource_CoversBuffer(t *testing.T) {
	src, ok := NewChromaSource("go")
	require.True(t, ok)

	content := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	spans, err := src.Spans(content)
	require.NoError(t, err)

	norm := Normalize(spans, len(content))
	requireCovers(t, norm, len(content))

	// The keyword "package" should carry a non-default style distinct from the
	// surrounding whitespace.
	require.Equal(t, 0, spans[0].Start)
	require.NotEqual(t, StyleNone, spans[0].Style)
}

func TestChromaSource_UnknownLanguage(t *testing.T) {
	_, ok := NewChromaSource("not-a-language")
	require.False(t, ok)
}

func TestChromaSource_SpansReconstructContent(t *testing.T) {
	src, ok := NewChromaSource("python")
	require.True(t, ok)

	content := "def f(x):\n    return x + 1\n"
	spans, err := src.Spans(content)
	require.NoError(t, err)

	var b strings.Builder
	for _, s := range spans {
		b.WriteString(content[s.Start:s.End])
	}
	require.Equal(t, content, b.String())
}
