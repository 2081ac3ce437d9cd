package scanner

import (
	"sort"
	"unicode/utf8"
)

// Position locates a byte offset in the scanned document.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based byte offset
}

// PositionIndex converts span offsets to line/column positions. Build it
// once per document; lookups are O(log lines).
type PositionIndex struct {
	src        string
	lineStarts []int
}

func NewPositionIndex(src string) *PositionIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &PositionIndex{src: src, lineStarts: starts}
}

// At returns the position of a byte offset. Offsets past the end of the
// document resolve to the position just past the last rune.
func (ix *PositionIndex) At(offset int) Position {
	if offset > len(ix.src) {
		offset = len(ix.src)
	}
	line := sort.Search(len(ix.lineStarts), func(i int) bool {
		return ix.lineStarts[i] > offset
	}) - 1
	column := utf8.RuneCountInString(ix.src[ix.lineStarts[line]:offset]) + 1
	return Position{Line: line + 1, Column: column, Offset: offset}
}
