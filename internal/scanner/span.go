package scanner

// Category is the semantic label attached to a classified span.
type Category string

const (
	// Plain marks text no rule claimed: whitespace, stray punctuation,
	// and anything skipped one rune at a time. The scanner never emits
	// Plain spans itself; Flatten uses it to tag the gaps.
	Plain Category = "plain"

	Keyword Category = "keyword"

	NumberHex Category = "number.hex"
	NumberBin Category = "number.bin"
	NumberOct Category = "number.oct"
	NumberDec Category = "number.dec"

	String        Category = "string"
	Escape        Category = "escape"
	InvalidEscape Category = "invalid-escape"

	Array Category = "array"
	Map   Category = "map"

	MapKey        Category = "map-key"
	SeparatorKV   Category = "separator.kv"
	SeparatorPath Category = "separator.path"

	Comment       Category = "comment"
	CommentMarker Category = "comment.marker"
)

// Span is a classified range of input text. Start and End are byte
// offsets into the scanned document (End exclusive); both always fall on
// rune boundaries. Children are fully contained within [Start, End),
// ordered by Start, and never overlap one another.
type Span struct {
	Start    int
	End      int
	Category Category
	Children []Span
}

// Text returns the slice of src the span covers.
func (sp Span) Text(src string) string {
	return src[sp.Start:sp.End]
}

// Segment is a flattened, leaf-level classified range. Unlike spans,
// segments do not nest: consecutive segments tile the input exactly.
type Segment struct {
	Start    int
	End      int
	Category Category
}

// Flatten reduces a span forest to ordered leaf segments covering all of
// src. Inside composite spans the child category wins over the parent's,
// and text outside any span is tagged Plain.
func Flatten(src string, spans []Span) []Segment {
	return flattenInto(nil, spans, Plain, 0, len(src))
}

func flattenInto(segs []Segment, spans []Span, outer Category, start, end int) []Segment {
	pos := start
	for _, sp := range spans {
		if sp.Start > pos {
			segs = append(segs, Segment{Start: pos, End: sp.Start, Category: outer})
		}
		segs = flattenInto(segs, sp.Children, sp.Category, sp.Start, sp.End)
		pos = sp.End
	}
	if pos < end {
		segs = append(segs, Segment{Start: pos, End: end, Category: outer})
	}
	return segs
}
