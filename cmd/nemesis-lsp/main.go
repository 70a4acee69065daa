// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"nemesis/internal/lsp"
)

const lsName = "nemesis" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	verbosity := flag.Int("v", 1, "log verbosity")
	logPath := flag.String("log", "", "log file (default stderr)")
	flag.Parse()

	if *logPath != "" {
		commonlog.Configure(*verbosity, logPath)
	} else {
		commonlog.Configure(*verbosity, nil)
	}
	log := commonlog.GetLogger("nemesis.lsp")

	modelHandler := lsp.NewModelHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     modelHandler.Initialize,
		Initialized:                    modelHandler.Initialized,
		Shutdown:                       modelHandler.Shutdown,
		SetTrace:                       modelHandler.SetTrace,
		TextDocumentDidOpen:            modelHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           modelHandler.TextDocumentDidClose,
		TextDocumentDidChange:          modelHandler.TextDocumentDidChange,
		TextDocumentCompletion:         modelHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: modelHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	// Editors talk to the server over standard input/output
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
