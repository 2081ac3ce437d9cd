// Package highlight renders classified YCF text for terminals.
package highlight

import (
	"strings"

	"github.com/fatih/color"

	"ycf/internal/scanner"
)

// Theme maps span categories to terminal styles. Categories without an
// entry render unstyled.
type Theme map[scanner.Category]*color.Color

func DefaultTheme() Theme {
	number := color.New(color.FgCyan)
	separator := color.New(color.FgYellow)
	comment := color.New(color.FgHiBlack)

	return Theme{
		scanner.Keyword:       color.New(color.FgMagenta, color.Bold),
		scanner.NumberHex:     number,
		scanner.NumberBin:     number,
		scanner.NumberOct:     number,
		scanner.NumberDec:     number,
		scanner.String:        color.New(color.FgGreen),
		scanner.Escape:        color.New(color.FgHiGreen, color.Bold),
		scanner.InvalidEscape: color.New(color.FgRed, color.Underline),
		scanner.MapKey:        color.New(color.FgBlue),
		scanner.SeparatorKV:   separator,
		scanner.SeparatorPath: separator,
		scanner.Comment:       comment,
		scanner.CommentMarker: comment,
	}
}

// Render scans src and returns it with the theme's ANSI styles applied.
// The uncolored text content is always exactly src.
func Render(src string, theme Theme) string {
	segments := scanner.Flatten(src, scanner.Scan(src))

	var b strings.Builder
	b.Grow(len(src))
	for _, seg := range segments {
		text := src[seg.Start:seg.End]
		if c, ok := theme[seg.Category]; ok {
			b.WriteString(c.Sprint(text))
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}
