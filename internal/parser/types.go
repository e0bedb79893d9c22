package parser

import (
	"corvid/internal/ast"
	"corvid/internal/errors"
)

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	NAME     // foo, a\b\foo, \foo, keywords
	VARIABLE // $foo
	INT
	FLOAT
	STRING   // single-quoted, raw
	TEMPLATE // double-quoted, raw
	CAST     // (int), (string), ...

	// Operators and punctuation; the lexeme carries the exact symbol
	OPERATOR
)

var tokenTypeNames = [...]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	NAME:     "NAME",
	VARIABLE: "VARIABLE",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	TEMPLATE: "TEMPLATE",
	CAST:     "CAST",
	OPERATOR: "OPERATOR",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "ILLEGAL"
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Position ast.Position
}

type ParseError struct {
	Message  string
	Position ast.Position
}

func (e ParseError) Error() string {
	return e.Message
}

// Diagnostic converts the error into an immediate SyntaxError finding
func (e ParseError) Diagnostic() errors.Diagnostic {
	return errors.Syntax(e.Message, e.Position)
}

// Diagnostics converts every parse error of a unit
func Diagnostics(errs []ParseError) []errors.Diagnostic {
	out := make([]errors.Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Diagnostic())
	}
	return out
}
