package lsp

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"

	"corvid/internal/ast"
)

// SemanticTokenTypes is the token type legend advertised to the client
var SemanticTokenTypes = []string{
	"namespace",
	"class",
	"interface",
	"function",
	"method",
	"property",
	"parameter",
	"variable",
}

// SemanticTokenModifiers is the modifier legend; a token's modifiers are a
// bitmask over its indices.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"static",
	"abstract",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens marks every declaration in the unit, in source
// order.
func collectSemanticTokens(unit *ast.Unit) []SemanticToken {
	var tokens []SemanticToken
	if unit == nil {
		return tokens
	}

	add := func(pos ast.Position, text, tokenType string, modifiers ...string) {
		if tok, ok := makeToken(pos, text, tokenType, modifiers...); ok {
			tokens = append(tokens, tok)
		}
	}

	ast.Inspect(unit, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.NamespaceBlock:
			if n.Name != nil {
				add(n.Name.Pos, n.Name.String(), "namespace", "declaration")
			}
		case *ast.FunctionDecl:
			add(n.Name.Pos, n.Name.Value, "function", "declaration")
		case *ast.ClassDecl:
			if n.Abstract {
				add(n.Name.Pos, n.Name.Value, "class", "declaration", "abstract")
			} else {
				add(n.Name.Pos, n.Name.Value, "class", "declaration")
			}
		case *ast.InterfaceDecl:
			add(n.Name.Pos, n.Name.Value, "interface", "declaration")
		case *ast.MethodDecl:
			add(n.Name.Pos, n.Name.Value, "method", memberModifiers(n.Modifiers)...)
		case *ast.PropertyDecl:
			for _, v := range n.Vars {
				add(v.Pos, "$"+v.Name, "property", memberModifiers(n.Modifiers)...)
			}
		case *ast.ConstDecl:
			add(n.Name.Pos, n.Name.Value, "variable", "declaration", "readonly")
		case *ast.Param:
			add(n.Pos, "$"+n.Name, "parameter", "declaration")
		}
		return true
	})

	slices.SortStableFunc(tokens, func(a, b SemanticToken) int {
		return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.StartChar, b.StartChar))
	})
	return tokens
}

func memberModifiers(m ast.Modifiers) []string {
	modifiers := []string{"declaration"}
	if m.Static {
		modifiers = append(modifiers, "static")
	}
	if m.Abstract {
		modifiers = append(modifiers, "abstract")
	}
	return modifiers
}

func makeToken(pos ast.Position, text, tokenType string, modifiers ...string) (SemanticToken, bool) {
	if text == "" || text == "$" || pos.Line <= 0 || pos.Column <= 0 {
		return SemanticToken{}, false
	}

	line, err := safecast.Conv[uint32](pos.Line - 1)
	if err != nil {
		return SemanticToken{}, false
	}
	start, err := safecast.Conv[uint32](pos.Column - 1)
	if err != nil {
		return SemanticToken{}, false
	}
	length, err := safecast.Conv[uint32](utf8.RuneCountInString(text))
	if err != nil {
		return SemanticToken{}, false
	}

	mask := 0
	for _, m := range modifiers {
		if i := slices.Index(SemanticTokenModifiers, m); i >= 0 {
			mask |= 1 << i
		}
	}
	return SemanticToken{
		Line:           line,
		StartChar:      start,
		Length:         length,
		TokenType:      max(0, slices.Index(SemanticTokenTypes, tokenType)),
		TokenModifiers: mask,
	}, true
}

// encodeSemanticTokens writes tokens in the LSP relative format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		kind, _ := safecast.Conv[uint32](token.TokenType)
		mods, _ := safecast.Conv[uint32](token.TokenModifiers)
		data = append(data, deltaLine, deltaStart, token.Length, kind, mods)

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}
