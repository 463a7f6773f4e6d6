package snipq

import "sort"

// lineIndex maps between byte offsets and 1-indexed lines.
type lineIndex struct {
	starts []int // offset of the first byte of each line
	size   int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts, size: len(source)}
}

// count returns the number of lines. A trailing newline does not open a new
// line.
func (l *lineIndex) count() int {
	n := len(l.starts)
	if n > 1 && l.starts[n-1] == l.size {
		return n - 1
	}
	return n
}

// lineOf returns the line holding offset: the number of newlines before it,
// plus one.
func (l *lineIndex) lineOf(offset int) int {
	return sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset })
}

// lastLineOf returns the line of the last byte in [start, end).
func (l *lineIndex) lastLineOf(start, end int) int {
	if end > start {
		return l.lineOf(end - 1)
	}
	return l.lineOf(start)
}

// start returns the offset of the first byte of line.
func (l *lineIndex) start(line int) int {
	return l.starts[line-1]
}

// end returns the offset of line's terminating newline, or the end of the
// source for the last line.
func (l *lineIndex) end(line int) int {
	if line < len(l.starts) {
		return l.starts[line] - 1
	}
	return l.size
}

func (l *lineIndex) clamp(line int) int {
	return max(1, min(line, l.count()))
}

// snap widens [start, end) to whole lines, newline excluded.
func (l *lineIndex) snap(start, end int) (int, int) {
	return l.start(l.lineOf(start)), l.end(l.lastLineOf(start, end))
}
