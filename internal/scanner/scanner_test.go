package scanner

import (
	"reflect"
	"testing"
)

func flatCategories(spans []Span) []Category {
	var cats []Category
	for _, sp := range spans {
		cats = append(cats, sp.Category)
	}
	return cats
}

func assertCategories(t *testing.T, spans []Span, expected ...Category) {
	t.Helper()
	got := flatCategories(spans)
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected categories %v, got %v", expected, got)
	}
}

func TestKeywords(t *testing.T) {
	spans := Scan("true false null")
	assertCategories(t, spans, Keyword, Keyword, Keyword)

	if spans[0].Start != 0 || spans[0].End != 4 {
		t.Errorf("expected true span [0,4), got [%d,%d)", spans[0].Start, spans[0].End)
	}
	if spans[2].Start != 11 || spans[2].End != 15 {
		t.Errorf("expected null span [11,15), got [%d,%d)", spans[2].Start, spans[2].End)
	}
}

func TestKeywordWholeWordOnly(t *testing.T) {
	// A keyword that continues as an identifier is a key, not a keyword.
	spans := Scan("true_x")
	assertCategories(t, spans, MapKey)

	spans = Scan("nullable")
	assertCategories(t, spans, MapKey)
}

func TestNumberSubkinds(t *testing.T) {
	tests := []struct {
		input string
		cat   Category
	}{
		{"0x1F", NumberHex},
		{"0x1_F", NumberHex},
		{"0xdead_beef", NumberHex},
		{"0b1010", NumberBin},
		{"0b1_0", NumberBin},
		{"0o755", NumberOct},
		{"0o7_7", NumberOct},
		{"42", NumberDec},
		{"-17", NumberDec},
		{"1_000_000", NumberDec},
		{"3.25", NumberDec},
		{"1.", NumberDec},
		{"1.5e-3", NumberDec},
		{"2E+10", NumberDec},
		{"6e9", NumberDec},
		{"1__0_", NumberDec}, // underscore placement is not validated
	}

	for _, tt := range tests {
		spans := Scan(tt.input)
		if len(spans) != 1 {
			t.Errorf("%q: expected one span, got %d", tt.input, len(spans))
			continue
		}
		if spans[0].Category != tt.cat {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.cat, spans[0].Category)
		}
		if spans[0].Start != 0 || spans[0].End != len(tt.input) {
			t.Errorf("%q: expected span over whole token, got [%d,%d)",
				tt.input, spans[0].Start, spans[0].End)
		}
	}
}

func TestRadixPrefixWithoutDigits(t *testing.T) {
	// "0x" with nothing after it is a decimal zero followed by a key.
	spans := Scan("0x")
	assertCategories(t, spans, NumberDec, MapKey)
	if spans[0].End != 1 {
		t.Errorf("expected decimal span [0,1), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestRadixDigitAlphabets(t *testing.T) {
	// Digits outside the radix alphabet end the span instead of joining it.
	spans := Scan("0b12")
	assertCategories(t, spans, NumberBin, NumberDec)
	if spans[0].End != 3 || spans[1].Start != 3 {
		t.Errorf("expected binary span to stop before '2', got %v", spans)
	}

	spans = Scan("0o78")
	assertCategories(t, spans, NumberOct, NumberDec)
}

func TestStringEscapes(t *testing.T) {
	spans := Scan(`"a\n b\t \\ \" \x41 \u{1F600}"`)
	assertCategories(t, spans, String)

	var cats []Category
	for _, child := range spans[0].Children {
		cats = append(cats, child.Category)
	}
	expected := []Category{Escape, Escape, Escape, Escape, Escape, Escape}
	if !reflect.DeepEqual(cats, expected) {
		t.Fatalf("expected children %v, got %v", expected, cats)
	}
}

func TestInvalidEscapes(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
	}{
		{`"\q"`, 1, 3},     // unknown short escape
		{`"\x4"`, 1, 3},    // \x without two hex digits claims only \x
		{`"\xGG"`, 1, 3},   //
		{`"\u{}"`, 1, 3},   // \u{} with no digits claims only \u
		{`"\u1234"`, 1, 3}, // missing braces
	}

	for _, tt := range tests {
		spans := Scan(tt.input)
		if len(spans) != 1 || spans[0].Category != String {
			t.Fatalf("%q: expected one string span, got %v", tt.input, spans)
		}
		if len(spans[0].Children) != 1 {
			t.Fatalf("%q: expected one child span, got %v", tt.input, spans[0].Children)
		}
		child := spans[0].Children[0]
		if child.Category != InvalidEscape {
			t.Errorf("%q: expected invalid-escape, got %s", tt.input, child.Category)
		}
		if child.Start != tt.start || child.End != tt.end {
			t.Errorf("%q: expected invalid-escape [%d,%d), got [%d,%d)",
				tt.input, tt.start, tt.end, child.Start, child.End)
		}
	}
}

func TestEscapedQuoteDoesNotTerminate(t *testing.T) {
	input := `"a\"b"`
	spans := Scan(input)
	assertCategories(t, spans, String)

	if spans[0].End != len(input) {
		t.Errorf("expected string to end at %d, got %d", len(input), spans[0].End)
	}
	if len(spans[0].Children) != 1 || spans[0].Children[0].Category != Escape {
		t.Fatalf("expected one escape child, got %v", spans[0].Children)
	}
	if spans[0].Children[0].Start != 2 || spans[0].Children[0].End != 4 {
		t.Errorf("expected escape over [2,4), got [%d,%d)",
			spans[0].Children[0].Start, spans[0].Children[0].End)
	}
}

func TestUnterminatedStringExtendsToEOF(t *testing.T) {
	input := "\"abc\n123"
	spans := Scan(input)
	assertCategories(t, spans, String)
	if spans[0].End != len(input) {
		t.Errorf("expected string span to end at EOF %d, got %d", len(input), spans[0].End)
	}
}

func TestTrailingBackslashInString(t *testing.T) {
	// A lone backslash at end of input is plain content, not an escape.
	spans := Scan(`"abc\`)
	assertCategories(t, spans, String)
	if len(spans[0].Children) != 0 {
		t.Errorf("expected no escape children, got %v", spans[0].Children)
	}
	if spans[0].End != 5 {
		t.Errorf("expected string span to end at EOF, got %d", spans[0].End)
	}
}

func TestMapScenario(t *testing.T) {
	input := `key = { a.b = "x\n" }`
	spans := Scan(input)
	assertCategories(t, spans, MapKey, SeparatorKV, Map)

	key := spans[0]
	if key.Start != 0 || key.End != 3 {
		t.Errorf("expected key span [0,3), got [%d,%d)", key.Start, key.End)
	}
	sep := spans[1]
	if sep.Start != 4 || sep.End != 5 {
		t.Errorf("expected separator span [4,5), got [%d,%d)", sep.Start, sep.End)
	}

	m := spans[2]
	if m.Start != 6 || m.End != len(input) {
		t.Errorf("expected map span [6,%d), got [%d,%d)", len(input), m.Start, m.End)
	}
	assertCategories(t, m.Children, MapKey, SeparatorKV, String)

	inner := m.Children[0]
	if inner.Start != 8 || inner.End != 11 {
		t.Errorf("expected inner key span [8,11), got [%d,%d)", inner.Start, inner.End)
	}
	if len(inner.Children) != 1 || inner.Children[0].Category != SeparatorPath {
		t.Fatalf("expected one separator.path child, got %v", inner.Children)
	}
	if inner.Children[0].Start != 9 || inner.Children[0].End != 10 {
		t.Errorf("expected path separator [9,10), got [%d,%d)",
			inner.Children[0].Start, inner.Children[0].End)
	}

	str := m.Children[2]
	if str.Start != 14 || str.End != 19 {
		t.Errorf("expected string span [14,19), got [%d,%d)", str.Start, str.End)
	}
	if len(str.Children) != 1 || str.Children[0].Category != Escape {
		t.Fatalf("expected one escape child, got %v", str.Children)
	}
	if str.Children[0].Start != 16 || str.Children[0].End != 18 {
		t.Errorf("expected escape span [16,18), got [%d,%d)",
			str.Children[0].Start, str.Children[0].End)
	}
}

func TestArrayWithoutSeparators(t *testing.T) {
	spans := Scan("[1 2 3]")
	assertCategories(t, spans, Array)
	assertCategories(t, spans[0].Children, NumberDec, NumberDec, NumberDec)

	if spans[0].End != 7 {
		t.Errorf("expected array span [0,7), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestCommentBetweenArrayElements(t *testing.T) {
	spans := Scan("[1, // note\n 2]")
	assertCategories(t, spans, Array)
	assertCategories(t, spans[0].Children, NumberDec, Comment, NumberDec)

	comment := spans[0].Children[1]
	if comment.Start != 4 || comment.End != 12 {
		t.Errorf("expected comment span [4,12), got [%d,%d)", comment.Start, comment.End)
	}
	if len(comment.Children) != 1 || comment.Children[0].Category != CommentMarker {
		t.Fatalf("expected comment.marker child, got %v", comment.Children)
	}
	if comment.Children[0].Start != 4 || comment.Children[0].End != 6 {
		t.Errorf("expected marker span [4,6), got [%d,%d)",
			comment.Children[0].Start, comment.Children[0].End)
	}
}

func TestCommentWithoutTrailingNewline(t *testing.T) {
	spans := Scan("// hi")
	assertCategories(t, spans, Comment)
	if spans[0].End != 5 {
		t.Errorf("expected comment to end at EOF, got %d", spans[0].End)
	}
}

func TestCommentIncludesTrailingNewline(t *testing.T) {
	spans := Scan("// hi\nkey = 1")
	assertCategories(t, spans, Comment, MapKey, SeparatorKV, NumberDec)
	if spans[0].End != 6 {
		t.Errorf("expected comment span [0,6), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestUnterminatedRegions(t *testing.T) {
	input := "{ a = [1"
	spans := Scan(input)
	assertCategories(t, spans, Map)
	if spans[0].End != len(input) {
		t.Errorf("expected map span to end at EOF, got %d", spans[0].End)
	}

	assertCategories(t, spans[0].Children, MapKey, SeparatorKV, Array)
	arr := spans[0].Children[2]
	if arr.End != len(input) {
		t.Errorf("expected array span to end at EOF, got %d", arr.End)
	}
	assertCategories(t, arr.Children, NumberDec)
}

func TestRegionEndOffsets(t *testing.T) {
	// A closed region ends just past its delimiter, never elsewhere.
	spans := Scan("{ a = 1 } trailing")
	assertCategories(t, spans, Map, MapKey)
	if spans[0].End != 9 {
		t.Errorf("expected map span [0,9), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestStrayClosingBraceAtTopLevel(t *testing.T) {
	// Without an open map region, "}" is plain text and scanning continues.
	spans := Scan("} a = 1")
	assertCategories(t, spans, MapKey, SeparatorKV, NumberDec)
}

func TestEqualsInsideArrayIsPlain(t *testing.T) {
	// The array body has no separator rule, so "=" is skipped silently.
	spans := Scan("[= 1]")
	assertCategories(t, spans, Array)
	assertCategories(t, spans[0].Children, NumberDec)
}

func TestBackslashKeyQuirk(t *testing.T) {
	spans := Scan(`a\b = 1`)
	assertCategories(t, spans, MapKey, SeparatorKV, NumberDec)
	if spans[0].End != 3 {
		t.Errorf("expected key span [0,3), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestDottedKeyTrailingDot(t *testing.T) {
	// A dot with no segment after it stays outside the key span.
	spans := Scan("a.b. = 1")
	assertCategories(t, spans, MapKey, SeparatorKV, NumberDec)
	if spans[0].End != 3 {
		t.Errorf("expected key span [0,3), got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestDeepNesting(t *testing.T) {
	spans := Scan("a = { b = [ { c = [0x1] } ] }")
	assertCategories(t, spans, MapKey, SeparatorKV, Map)

	outer := spans[2]
	assertCategories(t, outer.Children, MapKey, SeparatorKV, Array)
	arr := outer.Children[2]
	assertCategories(t, arr.Children, Map)
	inner := arr.Children[0]
	assertCategories(t, inner.Children, MapKey, SeparatorKV, Array)
	assertCategories(t, inner.Children[2].Children, NumberHex)
}

func TestMultiByteContentStaysOnRuneBoundaries(t *testing.T) {
	input := "名前 = \"値🎉\" // コメント"
	spans := Scan(input)

	// The non-ASCII key characters are plain text; classification picks
	// up again at the separator, the string, and the comment.
	assertCategories(t, spans, SeparatorKV, String, Comment)
	for _, sp := range spans {
		for _, off := range []int{sp.Start, sp.End} {
			if off > len(input) {
				t.Fatalf("span offset %d out of range", off)
			}
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	input := "a.b = { list = [1 0x2_F \"s\\n\"] // c\n flag = true }"
	first := Scan(input)
	second := Scan(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-scanning the same document produced a different tree")
	}
}

func checkInvariants(t *testing.T, spans []Span, lo, hi int) {
	t.Helper()
	prevEnd := lo
	for _, sp := range spans {
		if sp.Start < prevEnd {
			t.Errorf("span [%d,%d) overlaps its predecessor ending at %d", sp.Start, sp.End, prevEnd)
		}
		if sp.End < sp.Start || sp.Start < lo || sp.End > hi {
			t.Errorf("span [%d,%d) escapes parent range [%d,%d)", sp.Start, sp.End, lo, hi)
		}
		checkInvariants(t, sp.Children, sp.Start, sp.End)
		prevEnd = sp.End
	}
}

func TestSpanTreeInvariants(t *testing.T) {
	input := "x = [true {a.b=1} \"\\q\" // c\n 0b10] y = -2.5e_1 } ="
	spans := Scan(input)
	checkInvariants(t, spans, 0, len(input))
}
