package parser

import (
	"fmt"
	"strings"

	"corvid/internal/ast"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

// checkOp reports whether the current token is the given operator.
func (p *Parser) checkOp(op string) bool {
	tok := p.peek()
	return tok.Type == OPERATOR && tok.Lexeme == op
}

func (p *Parser) matchOp(ops ...string) bool {
	for _, op := range ops {
		if p.checkOp(op) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consumeOp(op string, message string) Token {
	if p.checkOp(op) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

// checkKeyword matches unqualified names case-insensitively.
func (p *Parser) checkKeyword(kw string) bool {
	tok := p.peek()
	return tok.Type == NAME && strings.EqualFold(tok.Lexeme, kw)
}

func (p *Parser) matchKeyword(kws ...string) bool {
	for _, kw := range kws {
		if p.checkKeyword(kw) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consumeKeyword(kw string, message string) Token {
	if p.checkKeyword(kw) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}
}

// checkNext looks one token ahead; an empty lexeme matches any token of tt.
func (p *Parser) checkNext(tt TokenType, lexeme string) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	next := p.tokens[p.current+1]
	if next.Type != tt {
		return false
	}
	if lexeme == "" {
		return true
	}
	if tt == NAME {
		return strings.EqualFold(next.Lexeme, lexeme)
	}
	return next.Lexeme == lexeme
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	tok := p.peek()
	if tok.Type == EOF {
		message = fmt.Sprintf("%s, found end of file", message)
	} else {
		message = fmt.Sprintf("%s, found %q", message, tok.Lexeme)
	}
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: tok.Position,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	pos := tok.Position
	pos.Filename = p.filename
	return pos
}

// synchronize skips to the next statement boundary after an error. It
// always consumes at least one token unless the current token closes a
// block.
func (p *Parser) synchronize() {
	if p.checkOp("}") {
		return
	}
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == OPERATOR && p.previous().Lexeme == ";" {
			return
		}
		if p.checkOp("}") {
			return
		}
		if p.peek().Type == NAME {
			switch strings.ToLower(p.peek().Lexeme) {
			case "function", "class", "interface", "abstract", "final", "if", "while",
				"for", "foreach", "return", "namespace", "use", "const", "echo":
				return
			}
		}
		p.advance()
	}
}

// Helper functions to reduce repetitive AST node creation

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:   p.makePos(tok),
		Value: tok.Lexeme,
	}
}

// consumeIdent consumes an unqualified name token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.peek()
	if tok.Type != NAME || strings.Contains(tok.Lexeme, `\`) {
		p.errorAtCurrent(message)
		return ast.Ident{Pos: p.makePos(tok), Value: "error"}, false
	}
	p.advance()
	return p.makeIdent(tok), true
}

// makeName builds an ast.Name, expanding the namespace\foo form against
// the current namespace.
func (p *Parser) makeName(tok Token) *ast.Name {
	name := ast.NewName(p.makePos(tok), tok.Lexeme)
	if !name.FullyQualified && len(name.Parts) > 1 && strings.EqualFold(name.Parts[0], "namespace") {
		parts := append(append([]string{}, p.namespace...), name.Parts[1:]...)
		name.Parts = parts
		name.FullyQualified = true
	}
	return name
}

// parseNameList parses a comma-separated list of names
// e.g., implements A, B\C, \D
func (p *Parser) parseNameList(message string) []*ast.Name {
	var names []*ast.Name

	for !p.isAtEnd() {
		tok := p.consume(NAME, message)
		if tok.Type == ILLEGAL {
			break
		}
		names = append(names, p.makeName(tok))

		if !p.matchOp(",") {
			break
		}
	}

	return names
}

// skipBalanced skips tokens up to and including the closer matching the
// opener that was just consumed.
func (p *Parser) skipBalanced(open, close string) {
	depth := 1
	for !p.isAtEnd() && depth > 0 {
		tok := p.advance()
		if tok.Type != OPERATOR {
			continue
		}
		switch tok.Lexeme {
		case open:
			depth++
		case close:
			depth--
		}
	}
}

// endStatement consumes the ";" terminating a simple statement.
func (p *Parser) endStatement(what string) {
	if p.matchOp(";") {
		return
	}
	// The last statement of a file may omit its terminator.
	if p.isAtEnd() {
		return
	}
	p.errorAtCurrent(fmt.Sprintf("expected ';' after %s", what))
	p.synchronize()
}
