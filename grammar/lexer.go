package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var YCFLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// Keywords and identifiers (order matters). The trailing
		// backslash in the class is a compatibility quirk the span
		// scanner preserves too.
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_\-\\]*`, Action: nil},

		// Numeric literals (radix forms must come before decimal)
		{Name: "HexNumber", Pattern: `0x[0-9a-fA-F][0-9a-fA-F_]*`, Action: nil},
		{Name: "BinNumber", Pattern: `0b[01][01_]*`, Action: nil},
		{Name: "OctNumber", Pattern: `0o[0-7][0-7_]*`, Action: nil},
		{Name: "DecNumber", Pattern: `-?[0-9][0-9_]*(\.[0-9_]*)?([eE][+-]?[0-9_]*)?`, Action: nil},

		// Strings with backslash escapes
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},

		// Punctuation
		{Name: "Punct", Pattern: `[{}\[\]=.]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
