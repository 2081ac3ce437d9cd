// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"ycf/internal/lsp"
)

const lsName = "ycf" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	ycfHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     ycfHandler.Initialize,
		Initialized:                    ycfHandler.Initialized,
		Shutdown:                       ycfHandler.Shutdown,
		SetTrace:                       ycfHandler.SetTrace,
		TextDocumentDidOpen:            ycfHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           ycfHandler.TextDocumentDidClose,
		TextDocumentDidChange:          ycfHandler.TextDocumentDidChange,
		TextDocumentDocumentSymbol:     ycfHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: ycfHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting YCF LSP server %s...", version)

	// Serve over standard input/output, the transport editors use to talk
	// to language server processes.
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting YCF LSP server:", err)
		os.Exit(1)
	}
}
