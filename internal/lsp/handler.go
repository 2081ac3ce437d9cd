package lsp

import (
	"fmt"
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"property",
	"keyword",
	"number",
	"string",
	"comment",
	"operator",
}

// Define the set of supported semantic token modifiers (for extra tagging)
var SemanticTokenModifiers = []string{
	"declaration",
	"deprecated",
}

// Handler implements the LSP server handlers for YCF documents. Document
// text is taken from the protocol notifications; the server never reads
// files from disk on its own.
type Handler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

func NewHandler() *Handler {
	return &Handler{
		content: make(map[protocol.DocumentUri]string),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("YCF LSP initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("YCF LSP shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen stores the opened document and publishes strict-pass
// diagnostics for it.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened document: %s\n", params.TextDocument.URI)

	h.setContent(params.TextDocument.URI, params.TextDocument.Text)
	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange applies full-sync content changes and republishes
// diagnostics.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed document: %s\n", params.TextDocument.URI)

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			// Full sync is the only advertised mode, so ranged events
			// still carry the whole document text.
			h.setContent(params.TextDocument.URI, c.Text)
		case *protocol.TextDocumentContentChangeEvent:
			h.setContent(params.TextDocument.URI, c.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			h.setContent(params.TextDocument.URI, c.Text)
		case *protocol.TextDocumentContentChangeEventWhole:
			h.setContent(params.TextDocument.URI, c.Text)
		}
	}

	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed document: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, params.TextDocument.URI)
	return nil
}

// TextDocumentSemanticTokensFull classifies the whole document and encodes
// the flattened spans into the LSP semantic token wire format.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := h.getContent(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("unknown document: %s", params.TextDocument.URI)
	}

	tokens := collectSemanticTokens(content)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens using delta-line, delta-start compression
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// TextDocumentDocumentSymbol builds the document outline from map-key
// spans, nesting symbols the way map regions nest.
func (h *Handler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	content, ok := h.getContent(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("unknown document: %s", params.TextDocument.URI)
	}

	return collectDocumentSymbols(content), nil
}

func (h *Handler) setContent(uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.content[uri] = text
}

func (h *Handler) getContent(uri protocol.DocumentUri) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	content, ok := h.content[uri]
	return content, ok
}

// publishDiagnostics runs the strict grammar over the document and sends
// the result. The notification is sent even when the list is empty so the
// client clears stale diagnostics.
func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	content, ok := h.getContent(uri)
	if !ok {
		return
	}

	diagnostics := strictDiagnostics(string(uri), content)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
