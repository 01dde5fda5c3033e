// Package changes classifies each line of a buffer against the file's last
// committed revision: unchanged, added, or modified in place, plus markers for
// committed lines that were deleted between two surviving lines.
//
// Classification aligns the two line sequences with an LCS diff where each
// line is an opaque token (two lines match iff byte-identical). Within a run
// of unmatched lines, old and new lines pair up 1:1 as modifications; excess
// new lines are additions; excess old lines become a single deletion marker
// anchored after the last surviving line of the run.
package changes

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Tag classifies one current line relative to the committed revision.
type Tag uint8

const (
	TagUnchanged Tag = iota
	TagAdded
	TagModified
)

func (t Tag) String() string {
	switch t {
	case TagAdded:
		return "added"
	case TagModified:
		return "modified"
	default:
		return "unchanged"
	}
}

// DeletionMarker records Count committed lines removed after line AfterLine
// (1-based; 0 means before the first line). Deleted content has no current
// line to attach a Tag to, so markers live out of band.
type DeletionMarker struct {
	AfterLine int
	Count     int
}

// Result holds per-line tags and deletion markers for one buffer. The zero
// value classifies every line as unchanged with no markers, which is also the
// "no git data" degradation.
type Result struct {
	tags      []Tag
	deletions map[int]int // AfterLine -> Count
}

// TagFor returns the tag for a 1-based line number. Lines outside the buffer
// are unchanged.
func (r Result) TagFor(line int) Tag {
	if line < 1 || line > len(r.tags) {
		return TagUnchanged
	}
	return r.tags[line-1]
}

// DeletedAfter returns how many committed lines were removed immediately
// after the given 1-based line (0 = before the first line).
func (r Result) DeletedAfter(line int) int {
	return r.deletions[line]
}

// HasChanges reports whether any line is tagged or any deletion is recorded.
func (r Result) HasChanges() bool {
	if len(r.deletions) > 0 {
		return true
	}
	for _, t := range r.tags {
		if t != TagUnchanged {
			return true
		}
	}
	return false
}

// Markers returns all deletion markers sorted by anchor line.
func (r Result) Markers() []DeletionMarker {
	out := make([]DeletionMarker, 0, len(r.deletions))
	for line, count := range r.deletions {
		out = append(out, DeletionMarker{AfterLine: line, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AfterLine < out[j].AfterLine })
	return out
}

// Classify aligns oldText (the committed revision) against newText (the
// current buffer) and tags every current line.
func Classify(oldText, newText string) Result {
	res := Result{
		tags:      make([]Tag, countLines(newText)),
		deletions: map[int]int{},
	}
	if oldText == newText {
		return res
	}

	dmp := diffmatchpatch.New()
	rOld, rNew, _ := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	// newLine counts new-side lines consumed so far; at any point it equals the
	// 1-based number of the last consumed line.
	newLine := 0
	pendingDel := 0
	pendingIns := 0
	insStart := 0

	flush := func() {
		if pendingDel == 0 && pendingIns == 0 {
			return
		}
		paired := pendingDel
		if pendingIns < paired {
			paired = pendingIns
		}
		for i := 0; i < pendingIns && insStart+i < len(res.tags); i++ {
			if i < paired {
				res.tags[insStart+i] = TagModified
			} else {
				res.tags[insStart+i] = TagAdded
			}
		}
		if excess := pendingDel - paired; excess > 0 {
			res.deletions[newLine] += excess
		}
		pendingDel = 0
		pendingIns = 0
	}

	for _, d := range diffs {
		// Each rune in the encoded diff text stands for one whole line.
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			newLine += n
		case diffmatchpatch.DiffDelete:
			pendingDel += n
		case diffmatchpatch.DiffInsert:
			if pendingIns == 0 {
				insStart = newLine
			}
			pendingIns += n
			newLine += n
		}
	}
	flush()

	return res
}

// countLines counts lines the way the renderer splits them: a trailing
// newline does not start an extra line, but a final unterminated line counts.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
