// Package grammar is the strict structural grammar for YCF documents.
//
// The span scanner in internal/scanner never fails; this package is the
// separate validation pass layered on top of it. It parses a document into
// a plain syntax tree and reports the first structural error with its
// position, which is what the CLI check mode and the LSP diagnostics use.
package grammar

// Document is the top level: bare map contents without enclosing braces.
type Document struct {
	Entries []*Entry `parser:"@@*"`
}

type Entry struct {
	Comment *Comment `parser:"  @@"`
	Pair    *Pair    `parser:"| @@"`
}

type Pair struct {
	Key   *Key   `parser:"@@ \"=\""`
	Value *Value `parser:"@@"`
}

type Key struct {
	Segments []string `parser:"@Ident { \".\" @Ident }"`
}

type Value struct {
	Keyword *string  `parser:"  @(\"true\" | \"false\" | \"null\")"`
	Hex     *string  `parser:"| @HexNumber"`
	Bin     *string  `parser:"| @BinNumber"`
	Oct     *string  `parser:"| @OctNumber"`
	Dec     *string  `parser:"| @DecNumber"`
	Str     *string  `parser:"| @String"`
	Array   *Array   `parser:"| @@"`
	Map     *Map     `parser:"| @@"`
	Comment *Comment `parser:"| @@"`
}

// Array elements have no separator token; values and comments simply
// follow one another.
type Array struct {
	Values []*Value `parser:"\"[\" { @@ } \"]\""`
}

type Map struct {
	Entries []*Entry `parser:"\"{\" { @@ } \"}\""`
}

type Comment struct {
	Text string `parser:"@Comment"`
}
