package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"corvid/internal/ast"
)

// SourceLexer splits a source file into inline text and code. Inline text
// outside <?php ... ?> is dropped by tokenize; a close tag terminates the
// current statement like ";".
var SourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "OpenTagEcho", Pattern: `<\?=`, Action: lexer.Push("Code")},
		{Name: "OpenTag", Pattern: `<\?php\b|<\?`, Action: lexer.Push("Code")},
		{Name: "InlineHTML", Pattern: `[^<]+|<`, Action: nil},
	},
	"Code": {
		{Name: "CloseTag", Pattern: `\?>\n?`, Action: lexer.Pop()},

		// Comments
		{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`, Action: nil},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `\s+`, Action: nil},

		{Name: "Variable", Pattern: `\$[a-zA-Z_\x80-\x{10FFFF}][a-zA-Z0-9_\x80-\x{10FFFF}]*`, Action: nil},
		{Name: "Cast", Pattern: `(?i)\(\s*(?:int|integer|float|double|real|string|bool|boolean|array|object|unset|binary)\s*\)`, Action: nil},

		// Numeric literals (float before int)
		{Name: "Float", Pattern: `(?:[0-9][0-9_]*\.[0-9_]*|\.[0-9][0-9_]*)(?:[eE][+-]?[0-9]+)?|[0-9][0-9_]*[eE][+-]?[0-9]+`, Action: nil},
		{Name: "Int", Pattern: `0[xX][0-9a-fA-F_]+|0[bB][01_]+|[0-9][0-9_]*`, Action: nil},

		// String literals
		{Name: "String", Pattern: `'(?s:[^'\\]|\\.)*'`, Action: nil},
		{Name: "Template", Pattern: `"(?s:[^"\\]|\\.)*"`, Action: nil},

		// Names, optionally qualified or fully qualified
		{Name: "Name", Pattern: `\\?[a-zA-Z_\x80-\x{10FFFF}][a-zA-Z0-9_\x80-\x{10FFFF}]*(?:\\[a-zA-Z_\x80-\x{10FFFF}][a-zA-Z0-9_\x80-\x{10FFFF}]*)*`, Action: nil},

		// Operators, longest first
		{Name: "Operator", Pattern: `<<=|>>=|\*\*=|\?\?=|===|!==|<=>|\.\.\.|\?->|<<|>>|\*\*|\?\?|->|=>|::|\+\+|--|==|!=|<>|<=|>=|&&|\|\||\+=|-=|\*=|/=|\.=|%=|&=|\|=|\^=|[-+*/%=<>!.&|^~?:;,()\[\]{}@$\\]`, Action: nil},

		// Anything else is reported by the parser
		{Name: "Invalid", Pattern: `.`, Action: nil},
	},
})

type tokenKinds struct {
	openTagEcho, closeTag, inlineHTML, openTag lexer.TokenType
	blockComment, comment, whitespace          lexer.TokenType
	variable, cast, float, integer             lexer.TokenType
	str, template, name, operator              lexer.TokenType
}

var kinds = func() tokenKinds {
	s := SourceLexer.Symbols()
	return tokenKinds{
		openTagEcho:  s["OpenTagEcho"],
		openTag:      s["OpenTag"],
		inlineHTML:   s["InlineHTML"],
		closeTag:     s["CloseTag"],
		blockComment: s["BlockComment"],
		comment:      s["Comment"],
		whitespace:   s["Whitespace"],
		variable:     s["Variable"],
		cast:         s["Cast"],
		float:        s["Float"],
		integer:      s["Int"],
		str:          s["String"],
		template:     s["Template"],
		name:         s["Name"],
		operator:     s["Operator"],
	}
}()

// positioned matches errors raised by the participle lexer.
type positioned interface {
	error
	Position() lexer.Position
	Message() string
}

// tokenize lexes source into parser tokens. Trivia and inline text are
// dropped. A lexer failure stops tokenization; the tokens read so far are
// returned with an EOF appended, together with the error.
func tokenize(filename, source string) ([]Token, []ParseError) {
	lex, err := SourceLexer.LexString(filename, source)
	if err != nil {
		return []Token{{Type: EOF}}, []ParseError{{Message: fmt.Sprintf("failed to start lexer: %v", err)}}
	}

	var tokens []Token
	var errs []ParseError
	var last lexer.Position
	for {
		tok, err := lex.Next()
		if err != nil {
			pe := ParseError{Message: err.Error(), Position: toPosition(last)}
			var perr positioned
			if errors.As(err, &perr) {
				pe = ParseError{Message: perr.Message(), Position: toPosition(perr.Position())}
			}
			errs = append(errs, pe)
			break
		}
		if tok.EOF() {
			last = tok.Pos
			break
		}
		last = tok.Pos
		pos := toPosition(tok.Pos)

		switch tok.Type {
		case kinds.openTag, kinds.inlineHTML, kinds.whitespace, kinds.comment, kinds.blockComment:
			continue
		case kinds.openTagEcho:
			tokens = append(tokens, Token{Type: NAME, Lexeme: "echo", Position: pos})
		case kinds.closeTag:
			tokens = append(tokens, Token{Type: OPERATOR, Lexeme: ";", Position: pos})
		case kinds.variable:
			tokens = append(tokens, Token{Type: VARIABLE, Lexeme: tok.Value, Position: pos})
		case kinds.cast:
			tokens = append(tokens, Token{Type: CAST, Lexeme: castType(tok.Value), Position: pos})
		case kinds.float:
			tokens = append(tokens, Token{Type: FLOAT, Lexeme: tok.Value, Position: pos})
		case kinds.integer:
			tokens = append(tokens, Token{Type: INT, Lexeme: tok.Value, Position: pos})
		case kinds.str:
			tokens = append(tokens, Token{Type: STRING, Lexeme: tok.Value, Position: pos})
		case kinds.template:
			tokens = append(tokens, Token{Type: TEMPLATE, Lexeme: tok.Value, Position: pos})
		case kinds.name:
			tokens = append(tokens, Token{Type: NAME, Lexeme: tok.Value, Position: pos})
		case kinds.operator:
			tokens = append(tokens, Token{Type: OPERATOR, Lexeme: tok.Value, Position: pos})
		default:
			tokens = append(tokens, Token{Type: ILLEGAL, Lexeme: tok.Value, Position: pos})
		}
	}

	tokens = append(tokens, Token{Type: EOF, Position: toPosition(last)})
	return tokens, errs
}

func toPosition(p lexer.Position) ast.Position {
	return ast.Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

// castType normalizes "( Integer )" to "int".
func castType(lexeme string) string {
	t := strings.ToLower(strings.TrimSpace(strings.Trim(lexeme, "()")))
	switch t {
	case "integer":
		return "int"
	case "double", "real":
		return "float"
	case "boolean":
		return "bool"
	case "binary":
		return "string"
	}
	return t
}
