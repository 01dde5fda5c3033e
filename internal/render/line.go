package render

import "strings"

// Line is one line of a buffer: a 1-based index and a byte range into the
// buffer, exclusive of the terminating newline.
type Line struct {
	Index      int
	Start      int
	End        int
	HasNewline bool
}

// SplitLines derives the line table for content. A trailing newline does not
// produce an empty final line; an empty buffer has no lines.
func SplitLines(content string) []Line {
	var lines []Line
	start := 0
	for start < len(content) {
		end := strings.IndexByte(content[start:], '\n')
		if end < 0 {
			lines = append(lines, Line{
				Index: len(lines) + 1,
				Start: start,
				End:   len(content),
			})
			break
		}
		lines = append(lines, Line{
			Index:      len(lines) + 1,
			Start:      start,
			End:        start + end,
			HasNewline: true,
		})
		start += end + 1
	}
	return lines
}

// Text returns the line's content within buffer.
func (l Line) Text(buffer string) string {
	return buffer[l.Start:l.End]
}
