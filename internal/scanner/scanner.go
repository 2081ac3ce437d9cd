// Package scanner classifies YCF configuration text into a forest of
// semantic spans. It is a recursive-descent span classifier: the document
// body is scanned as the inside of a map without enclosing braces, and the
// value grammar (keyword, number, string, array, map, comment) recurses
// back into itself for composite regions.
//
// Scanning never fails. Unterminated regions extend to the end of input,
// malformed escapes become invalid-escape spans, and unrecognized runes
// are skipped one at a time so a bad token cannot block classification of
// the rest of the document.
package scanner

import (
	"strings"
	"unicode/utf8"
)

// Scan classifies src and returns the ordered, non-overlapping span
// forest. Scan is pure: concurrent calls over different (or identical)
// documents need no coordination.
func Scan(src string) []Span {
	s := &scanner{src: src}
	return s.scanMapContents()
}

type scanner struct {
	src   string
	pos   int
	state scanState
}

// scanState is the stack of currently open region categories. It is
// pushed and popped as string, array, and map regions open and close, and
// resolves which end delimiter terminates consumption at the current
// position.
type scanState struct {
	open []Category
}

func (st *scanState) push(c Category) { st.open = append(st.open, c) }
func (st *scanState) pop()            { st.open = st.open[:len(st.open)-1] }

func (st *scanState) top() (Category, bool) {
	if len(st.open) == 0 {
		return "", false
	}
	return st.open[len(st.open)-1], true
}

// scanMapContents is the shared body grammar for the top-level document
// and the inside of a {...} region. A bare "}" terminates it only when a
// map region is open; at the top level it is skipped as plain text.
func (s *scanner) scanMapContents() []Span {
	var spans []Span
	for !s.atEnd() {
		if top, ok := s.state.top(); ok && top == Map && s.peek() == '}' {
			break
		}
		if s.peek() == '=' {
			spans = append(spans, Span{Start: s.pos, End: s.pos + 1, Category: SeparatorKV})
			s.pos++
			continue
		}
		if sp, ok := s.scanValue(); ok {
			spans = append(spans, sp)
			continue
		}
		if sp, ok := s.scanMapKey(); ok {
			spans = append(spans, sp)
			continue
		}
		s.bump()
	}
	return spans
}

// scanValue tries the value alternatives in fixed priority order and
// commits to the first that matches at the current position. Ties are
// broken by declaration order, never by longest match. On no match it
// consumes nothing.
func (s *scanner) scanValue() (Span, bool) {
	if sp, ok := s.scanKeyword(); ok {
		return sp, true
	}
	if sp, ok := s.scanNumber(); ok {
		return sp, true
	}
	if sp, ok := s.scanString(); ok {
		return sp, true
	}
	if sp, ok := s.scanArray(); ok {
		return sp, true
	}
	if sp, ok := s.scanMap(); ok {
		return sp, true
	}
	if sp, ok := s.scanComment(); ok {
		return sp, true
	}
	return Span{}, false
}

var keywords = [...]string{"true", "false", "null"}

func (s *scanner) scanKeyword() (Span, bool) {
	for _, kw := range keywords {
		if !strings.HasPrefix(s.src[s.pos:], kw) {
			continue
		}
		// Whole word only: "nullable" is an identifier, not a keyword.
		if next := s.pos + len(kw); next < len(s.src) && isSegmentPart(s.src[next]) {
			continue
		}
		sp := Span{Start: s.pos, End: s.pos + len(kw), Category: Keyword}
		s.pos = sp.End
		return sp, true
	}
	return Span{}, false
}

var radixForms = [...]struct {
	prefix string
	digit  func(byte) bool
	cat    Category
}{
	{"0x", isHexDigit, NumberHex},
	{"0b", isBinDigit, NumberBin},
	{"0o", isOctDigit, NumberOct},
}

// scanNumber matches the radix forms before decimal. Underscores are
// accepted anywhere after the first digit without validating their
// placement; "1__0_" is one decimal span.
func (s *scanner) scanNumber() (Span, bool) {
	for _, form := range radixForms {
		if !strings.HasPrefix(s.src[s.pos:], form.prefix) {
			continue
		}
		i := s.pos + len(form.prefix)
		if i >= len(s.src) || !form.digit(s.src[i]) {
			// A bare "0x" is not a hex literal; the "0" falls through
			// to the decimal form.
			continue
		}
		for i < len(s.src) && (form.digit(s.src[i]) || s.src[i] == '_') {
			i++
		}
		sp := Span{Start: s.pos, End: i, Category: form.cat}
		s.pos = i
		return sp, true
	}
	return s.scanDecimal()
}

func (s *scanner) scanDecimal() (Span, bool) {
	i := s.pos
	if i < len(s.src) && s.src[i] == '-' {
		i++
	}
	if i >= len(s.src) || !isDigit(s.src[i]) {
		return Span{}, false
	}
	i = eatDigitRun(s.src, i+1)
	if i < len(s.src) && s.src[i] == '.' {
		// The fraction admits zero digits, so "1." is a single span.
		i = eatDigitRun(s.src, i+1)
	}
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		i = eatDigitRun(s.src, i)
	}
	sp := Span{Start: s.pos, End: i, Category: NumberDec}
	s.pos = i
	return sp, true
}

// scanString consumes a double-quoted region. The escape sub-rule runs
// before the end-delimiter test, so an escaped quote can never terminate
// the string. An unterminated string extends to the end of input.
func (s *scanner) scanString() (Span, bool) {
	if s.peek() != '"' {
		return Span{}, false
	}
	start := s.pos
	s.pos++
	s.state.push(String)
	var children []Span
	for !s.atEnd() {
		if s.peek() == '"' {
			s.pos++
			break
		}
		if s.peek() == '\\' {
			if esc, ok := s.scanEscape(); ok {
				children = append(children, esc)
				continue
			}
		}
		s.bump()
	}
	s.state.pop()
	return Span{Start: start, End: s.pos, Category: String, Children: children}, true
}

// scanEscape classifies the sequence after a backslash: the short escapes
// n r t 0 \ ", a two-hex-digit \xHH byte, or \u{...} with one to six hex
// digits. Anything else backslash-prefixed becomes an invalid-escape span
// rather than a failure. A lone backslash at end of input does not match.
func (s *scanner) scanEscape() (Span, bool) {
	start := s.pos
	i := s.pos + 1
	if i >= len(s.src) {
		return Span{}, false
	}
	switch s.src[i] {
	case 'n', 'r', 't', '0', '\\', '"':
		s.pos = i + 1
		return Span{Start: start, End: s.pos, Category: Escape}, true
	case 'x':
		if i+2 < len(s.src) && isHexDigit(s.src[i+1]) && isHexDigit(s.src[i+2]) {
			s.pos = i + 3
			return Span{Start: start, End: s.pos, Category: Escape}, true
		}
	case 'u':
		if end, ok := matchUnicodeEscape(s.src, i+1); ok {
			s.pos = end
			return Span{Start: start, End: end, Category: Escape}, true
		}
	}
	_, size := utf8.DecodeRuneInString(s.src[i:])
	s.pos = i + size
	return Span{Start: start, End: s.pos, Category: InvalidEscape}, true
}

func matchUnicodeEscape(src string, i int) (int, bool) {
	if i >= len(src) || src[i] != '{' {
		return 0, false
	}
	i++
	digits := 0
	for i < len(src) && isHexDigit(src[i]) {
		i++
		digits++
	}
	if digits < 1 || digits > 6 || i >= len(src) || src[i] != '}' {
		return 0, false
	}
	return i + 1, true
}

// scanArray consumes a [...] region of repeated values. There is no
// element separator rule: adjacent values re-enter the loop directly, and
// runes that start no value (commas included) are skipped one at a time.
func (s *scanner) scanArray() (Span, bool) {
	if s.peek() != '[' {
		return Span{}, false
	}
	start := s.pos
	s.pos++
	s.state.push(Array)
	var children []Span
	for !s.atEnd() && s.peek() != ']' {
		if sp, ok := s.scanValue(); ok {
			children = append(children, sp)
			continue
		}
		s.bump()
	}
	if !s.atEnd() {
		s.pos++
	}
	s.state.pop()
	return Span{Start: start, End: s.pos, Category: Array, Children: children}, true
}

func (s *scanner) scanMap() (Span, bool) {
	if s.peek() != '{' {
		return Span{}, false
	}
	start := s.pos
	s.pos++
	s.state.push(Map)
	children := s.scanMapContents()
	if !s.atEnd() {
		s.pos++
	}
	s.state.pop()
	return Span{Start: start, End: s.pos, Category: Map, Children: children}, true
}

// scanComment consumes // through end of line, trailing newline included.
// Comments are a value alternative, so they may sit between array
// elements or map entries, not only at line ends.
func (s *scanner) scanComment() (Span, bool) {
	if !strings.HasPrefix(s.src[s.pos:], "//") {
		return Span{}, false
	}
	start := s.pos
	marker := Span{Start: start, End: start + 2, Category: CommentMarker}
	s.pos += 2
	for !s.atEnd() {
		if s.peek() == '\n' {
			s.pos++
			break
		}
		s.bump()
	}
	return Span{Start: start, End: s.pos, Category: Comment, Children: []Span{marker}}, true
}

// scanMapKey matches a dotted identifier path. A dot is consumed only
// when a segment start follows, so "a." leaves the dot unclaimed. The
// segment continuation set deliberately includes a literal backslash; see
// isSegmentPart.
func (s *scanner) scanMapKey() (Span, bool) {
	if s.atEnd() || !isSegmentStart(s.peek()) {
		return Span{}, false
	}
	start := s.pos
	var children []Span
	s.eatSegment()
	for s.pos+1 < len(s.src) && s.src[s.pos] == '.' && isSegmentStart(s.src[s.pos+1]) {
		children = append(children, Span{Start: s.pos, End: s.pos + 1, Category: SeparatorPath})
		s.pos++
		s.eatSegment()
	}
	return Span{Start: start, End: s.pos, Category: MapKey, Children: children}, true
}

func (s *scanner) eatSegment() {
	s.pos++ // segment start is always a single ASCII byte
	for s.pos < len(s.src) && isSegmentPart(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

// bump advances past one rune so that skipped multi-byte text keeps every
// span on a rune boundary.
func (s *scanner) bump() {
	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
}

func eatDigitRun(src string, i int) int {
	for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isOctDigit(c byte) bool {
	return '0' <= c && c <= '7'
}

func isSegmentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

// isSegmentPart accepts backslash inside unquoted key segments. It is
// almost certainly a character-class escaping artifact, but files relying
// on it exist, so `a\b` stays a legal single-segment key.
func isSegmentPart(c byte) bool {
	return isSegmentStart(c) || isDigit(c) || c == '-' || c == '\\'
}
