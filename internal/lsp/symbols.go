package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ycf/internal/scanner"
)

// collectDocumentSymbols builds the outline: each key/value pair becomes a
// symbol named after its (dotted) key, and map values contribute their own
// entries as children.
func collectDocumentSymbols(src string) []protocol.DocumentSymbol {
	index := scanner.NewPositionIndex(src)
	return symbolsFrom(src, index, scanner.Scan(src))
}

func symbolsFrom(src string, index *scanner.PositionIndex, spans []scanner.Span) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	var key *scanner.Span

	for i := range spans {
		sp := &spans[i]
		switch sp.Category {
		case scanner.MapKey:
			key = sp
		case scanner.SeparatorKV, scanner.Comment:
			// a pending key stays pending across the separator and any
			// interleaved comments
		default:
			if key == nil {
				continue
			}
			symbol := protocol.DocumentSymbol{
				Name:           key.Text(src),
				Kind:           symbolKind(src, sp),
				Range:          spanRange(index, key.Start, sp.End),
				SelectionRange: spanRange(index, key.Start, key.End),
			}
			if sp.Category == scanner.Map {
				symbol.Children = symbolsFrom(src, index, sp.Children)
			}
			symbols = append(symbols, symbol)
			key = nil
		}
	}

	return symbols
}

func symbolKind(src string, sp *scanner.Span) protocol.SymbolKind {
	switch sp.Category {
	case scanner.Map:
		return protocol.SymbolKindObject
	case scanner.Array:
		return protocol.SymbolKindArray
	case scanner.String:
		return protocol.SymbolKindString
	case scanner.NumberHex, scanner.NumberBin, scanner.NumberOct, scanner.NumberDec:
		return protocol.SymbolKindNumber
	case scanner.Keyword:
		if sp.Text(src) == "null" {
			return protocol.SymbolKindNull
		}
		return protocol.SymbolKindBoolean
	default:
		return protocol.SymbolKindField
	}
}

func spanRange(index *scanner.PositionIndex, start, end int) protocol.Range {
	from := index.At(start)
	to := index.At(end)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(from.Line - 1), Character: uint32(from.Column - 1)},
		End:   protocol.Position{Line: uint32(to.Line - 1), Character: uint32(to.Column - 1)},
	}
}
