package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"corvid/internal/config"
	"corvid/internal/lsp"
)

type published struct {
	mu    sync.Mutex
	byURI map[protocol.DocumentUri][]protocol.Diagnostic
}

func newContext() (*glsp.Context, *published) {
	p := &published{byURI: make(map[protocol.DocumentUri][]protocol.Diagnostic)}
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			msg := params.(*protocol.PublishDiagnosticsParams)
			p.mu.Lock()
			p.byURI[msg.URI] = msg.Diagnostics
			p.mu.Unlock()
		},
	}
	return ctx, p
}

func (p *published) get(uri protocol.DocumentUri) ([]protocol.Diagnostic, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.byURI[uri]
	return d, ok
}

func fileURI(t *testing.T, path string) protocol.DocumentUri {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(abs)
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	t.Helper()
	require.NoError(t, h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "php", Version: 1, Text: text},
	}))
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, _ := newContext()

	root := fileURI(t, t.TempDir())
	result, err := h.Initialize(ctx, &protocol.InitializeParams{RootURI: &root})
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	textSync, ok := initResult.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *textSync.Change)

	tokens, ok := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
}

func TestDidOpenPublishesTieredDiagnostics(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, pub := newContext()
	uri := fileURI(t, "app.php")

	open(t, h, ctx, uri, `<?php
function f($a) {
    return $a;
}
f();
echo $missing;
`)

	diags, ok := pub.get(uri)
	require.True(t, ok)
	require.Len(t, diags, 2)

	byLine := make(map[uint32]protocol.Diagnostic)
	for _, d := range diags {
		byLine[d.Range.Start.Line] = d
		require.NotNil(t, d.Source)
		assert.Equal(t, "corvid", *d.Source)
	}

	arity := byLine[4]
	assert.Equal(t, protocol.DiagnosticSeverityError, *arity.Severity)
	assert.Equal(t, uint32(0), arity.Range.Start.Character)

	undefined := byLine[5]
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *undefined.Severity, "Future findings are warnings")
	assert.Contains(t, undefined.Message, "missing")
}

func TestDidChangeRepublishes(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, pub := newContext()
	uri := fileURI(t, "app.php")

	open(t, h, ctx, uri, "<?php\necho $missing;\n")
	diags, _ := pub.get(uri)
	require.Len(t, diags, 1)

	require.NoError(t, h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "<?php\n$found = 1;\necho $found;\n"},
		},
	}))

	diags, _ = pub.get(uri)
	assert.Empty(t, diags)
}

func TestDidChangeUnopenedDocument(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, _ := newContext()

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: fileURI(t, "nowhere.php")},
		},
	})
	assert.Error(t, err)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, pub := newContext()
	uri := fileURI(t, "app.php")

	open(t, h, ctx, uri, "<?php\necho $missing;\n")
	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	diags, ok := pub.get(uri)
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestWorkspaceFilesResolveOpenDocuments(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.php"),
		[]byte("<?php\nfunction helper($x) { return $x; }\n"), 0o644))

	h := lsp.NewHandler(config.Default())
	ctx, pub := newContext()
	rootURI := fileURI(t, root)
	_, err := h.Initialize(ctx, &protocol.InitializeParams{RootURI: &rootURI})
	require.NoError(t, err)

	uri := fileURI(t, filepath.Join(root, "main.php"))
	open(t, h, ctx, uri, "<?php\nhelper(1);\nhelper();\n")

	diags, _ := pub.get(uri)
	require.Len(t, diags, 1, "Only the short call is reported")
	assert.Equal(t, uint32(2), diags[0].Range.Start.Line)

	_, ok := pub.get(fileURI(t, filepath.Join(root, "lib.php")))
	assert.False(t, ok, "Files that are not open get no diagnostics")
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, _ := newContext()
	uri := fileURI(t, "tokens.php")

	open(t, h, ctx, uri, `<?php
namespace App;
const LIMIT = 1;
abstract class Base {
    private static $count = 0;
    abstract protected function run($job);
}
`)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 6)

	assertToken(t, &decoded[0], 2, 11, 3, "namespace", []string{"declaration"})
	assertToken(t, &decoded[1], 3, 7, 5, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[2], 4, 16, 4, "class", []string{"declaration", "abstract"})
	assertToken(t, &decoded[3], 5, 20, 6, "property", []string{"declaration", "static"})
	assertToken(t, &decoded[4], 6, 33, 3, "method", []string{"declaration", "abstract"})
	assertToken(t, &decoded[5], 6, 37, 4, "parameter", []string{"declaration"})
}

func TestSemanticTokensForUnknownDocument(t *testing.T) {
	h := lsp.NewHandler(config.Default())
	ctx, _ := newContext()

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: fileURI(t, "closed.php")},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1,
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
