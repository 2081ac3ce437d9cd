package lsp

import (
	"strings"
	"unicode/utf8"

	"ycf/internal/scanner"
)

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based; TokenType indexes SemanticTokenTypes and TokenModifiers is
// a bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens scans the document and converts the flattened
// classified segments into semantic tokens. Segments spanning several
// lines (comments with their newline, unterminated strings) are split per
// line, since clients do not handle multiline tokens.
func collectSemanticTokens(src string) []SemanticToken {
	segments := scanner.Flatten(src, scanner.Scan(src))
	index := scanner.NewPositionIndex(src)

	var tokens []SemanticToken
	for _, seg := range segments {
		tokenType, modifiers, ok := tokenInfo(seg.Category)
		if !ok {
			continue
		}

		offset := seg.Start
		for _, part := range strings.SplitAfter(src[seg.Start:seg.End], "\n") {
			text := strings.TrimSuffix(part, "\n")
			if text != "" {
				pos := index.At(offset)
				tokens = append(tokens, SemanticToken{
					Line:           uint32(pos.Line - 1),
					StartChar:      uint32(pos.Column - 1),
					Length:         uint32(utf8.RuneCountInString(text)),
					TokenType:      tokenType,
					TokenModifiers: modifiers,
				})
			}
			offset += len(part)
		}
	}

	return tokens
}

// tokenInfo maps a span category to its legend index and modifier mask.
// Container categories (map, array) and plain text carry no token.
func tokenInfo(cat scanner.Category) (tokenType, modifiers int, ok bool) {
	switch cat {
	case scanner.MapKey:
		return indexOf("property", SemanticTokenTypes), modifierMask("declaration"), true
	case scanner.Keyword:
		return indexOf("keyword", SemanticTokenTypes), 0, true
	case scanner.NumberHex, scanner.NumberBin, scanner.NumberOct, scanner.NumberDec:
		return indexOf("number", SemanticTokenTypes), 0, true
	case scanner.String, scanner.Escape:
		return indexOf("string", SemanticTokenTypes), 0, true
	case scanner.InvalidEscape:
		return indexOf("string", SemanticTokenTypes), modifierMask("deprecated"), true
	case scanner.Comment, scanner.CommentMarker:
		return indexOf("comment", SemanticTokenTypes), 0, true
	case scanner.SeparatorKV, scanner.SeparatorPath:
		return indexOf("operator", SemanticTokenTypes), 0, true
	default:
		return 0, 0, false
	}
}

func modifierMask(modifier string) int {
	return 1 << indexOf(modifier, SemanticTokenModifiers)
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
