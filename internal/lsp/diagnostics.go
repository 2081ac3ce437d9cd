package lsp

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ycf/grammar"
)

// strictDiagnostics runs the strict grammar over the document and converts
// its errors into LSP diagnostics. The span scanner itself never fails, so
// this is the only diagnostic source.
func strictDiagnostics(name, content string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := grammar.ParseSource(name, content)
	if err == nil {
		return diagnostics
	}

	line, character := uint32(0), uint32(0)
	message := err.Error()

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		if pos.Line > 0 {
			line = uint32(pos.Line - 1)
		}
		if pos.Column > 0 {
			character = uint32(pos.Column - 1)
		}
		message = perr.Message()
	}

	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: character},
			End:   protocol.Position{Line: line, Character: character + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("ycf-grammar"),
		Message:  message,
	})

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
