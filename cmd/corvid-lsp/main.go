// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"corvid/internal/config"
	"corvid/internal/lsp"
)

const lsName = "corvid"

var handler protocol.Handler

func main() {
	verbosity := flag.Int("v", 1, "log verbosity (0 quiet, higher is louder)")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("corvid.lsp")

	cfg, err := config.Discover(".")
	if err != nil {
		log.Warningf("using defaults: %s", err)
		cfg = config.Default()
	}

	corvidHandler := lsp.NewHandler(cfg)

	handler = protocol.Handler{
		Initialize:                     corvidHandler.Initialize,
		Initialized:                    corvidHandler.Initialized,
		Shutdown:                       corvidHandler.Shutdown,
		SetTrace:                       corvidHandler.SetTrace,
		TextDocumentDidOpen:            corvidHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           corvidHandler.TextDocumentDidClose,
		TextDocumentDidChange:          corvidHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: corvidHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Info("starting corvid language server")
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
