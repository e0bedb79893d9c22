package lsp

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"corvid/internal/cache"
	"corvid/internal/config"
	"corvid/internal/semantic"
	"corvid/internal/workspace"
)

var log = commonlog.GetLogger("corvid.lsp")

type document struct {
	path    string
	text    string
	version protocol.Integer
}

// Handler implements the LSP server handlers. Every change re-analyzes the
// open documents together with the workspace files on disk.
type Handler struct {
	mu     sync.Mutex
	docs   map[protocol.DocumentUri]*document
	config config.Config
	root   string
	cache  semantic.TableCache
}

// NewHandler creates a handler using cfg until the client names a
// workspace root.
func NewHandler(cfg config.Config) *Handler {
	return &Handler{
		docs:   make(map[protocol.DocumentUri]*document),
		config: cfg,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	if params.RootURI != nil {
		root, err := uriToPath(*params.RootURI)
		if err != nil {
			return nil, err
		}
		cfg, err := config.Discover(root)
		if err != nil {
			log.Warningf("loading configuration: %s", err)
		} else {
			h.mu.Lock()
			h.root = root
			h.config = cfg
			h.mu.Unlock()
		}
	}

	h.mu.Lock()
	if h.config.CacheDir != "" {
		if disk, err := cache.Open(h.config.CacheDir); err != nil {
			log.Warningf("opening cache: %s", err)
		} else {
			h.cache = disk
		}
	}
	h.mu.Unlock()

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "corvid",
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.docs[params.TextDocument.URI] = &document{
		path:    path,
		text:    params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	h.mu.Unlock()

	return h.publish(ctx)
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	h.mu.Lock()
	doc, ok := h.docs[params.TextDocument.URI]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("change for unopened document %s", params.TextDocument.URI)
	}
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			doc.text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			// only full sync is advertised; a ranged change without a range
			// still carries the whole text
			if c.Range == nil {
				doc.text = c.Text
			}
		}
	}
	doc.version = params.TextDocument.Version
	h.mu.Unlock()

	return h.publish(ctx)
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return h.publish(ctx)
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	h.mu.Lock()
	doc, ok := h.docs[params.TextDocument.URI]
	var path, text string
	if ok {
		path, text = doc.path, doc.text
	}
	h.mu.Unlock()
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	in := workspace.Parse(path, []byte(text))
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(in.Unit)),
	}, nil
}

// publish analyzes the workspace and sends diagnostics for every open
// document.
func (h *Handler) publish(ctx *glsp.Context) error {
	h.mu.Lock()
	cfg := h.config
	root := h.root
	tableCache := h.cache
	open := make(map[string]protocol.DocumentUri, len(h.docs))
	texts := make(map[string]string, len(h.docs))
	for uri, doc := range h.docs {
		open[doc.path] = uri
		texts[doc.path] = doc.text
	}
	h.mu.Unlock()

	inputs := make([]semantic.Input, 0, len(texts))
	for path, text := range texts {
		inputs = append(inputs, workspace.Parse(path, []byte(text)))
	}
	if root != "" {
		files, err := workspace.Files(cfg, []string{root})
		if err != nil {
			log.Warningf("listing workspace files: %s", err)
		}
		files = slices.DeleteFunc(files, func(path string) bool {
			_, isOpen := texts[path]
			return isOpen
		})
		disk, _, err := workspace.Load(files)
		if err != nil {
			log.Warningf("loading workspace files: %s", err)
		}
		inputs = append(inputs, disk...)
	}

	program := semantic.NewProgram(cfg.Options(), nil)
	if tableCache != nil {
		program = program.WithCache(tableCache)
	}
	result, err := program.Analyze(context.Background(), inputs)
	if err != nil {
		return fmt.Errorf("analyzing workspace: %w", err)
	}

	for _, unit := range result.Units {
		uri, ok := open[unit.Path]
		if !ok {
			continue
		}
		if unit.Err != nil {
			log.Warningf("%s: %s", unit.Path, unit.Err)
		}
		sendDiagnosticNotification(ctx, uri, ConvertDiagnostics(unit.Diagnostics))
	}
	return nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
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
