package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// TextWidth returns the text width of str for monospace fonts in terminals.
func TextWidth(str string) int {
	return cond().StringWidth(str)
}

// RuneWidth returns the width of r for monospace fonts in terminals.
func RuneWidth(r rune) int {
	return cond().RuneWidth(r)
}

// Iterator iterates over grapheme clusters of a string.
//
// Rendering code walks file content one user-perceived character at a time (a
// combining sequence or emoji must never be split mid-cluster by styling), so
// the iterator exposes byte offsets into the original string alongside each
// cluster.
type Iterator struct {
	iter graphemes.Iterator[string]
}

// NewGraphemeIterator returns a new grapheme iterator over str.
func NewGraphemeIterator(str string) *Iterator {
	return &Iterator{iter: graphemes.FromString(str)}
}

func (iter *Iterator) Next() bool {
	return iter.iter.Next()
}

// Value returns the current grapheme cluster.
func (iter *Iterator) Value() string {
	return iter.iter.Value()
}

// Start returns the byte position of the current cluster in the original string.
func (iter *Iterator) Start() int {
	return iter.iter.Start()
}

// End returns the byte position after the current cluster in the original string. Allows looping over bytes [Start(), End()).
func (iter *Iterator) End() int {
	return iter.iter.End()
}

// Width returns the text width of the current cluster for monospace fonts in terminals.
func (iter *Iterator) Width() int {
	return cond().StringWidth(iter.iter.Value())
}

func cond() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}
