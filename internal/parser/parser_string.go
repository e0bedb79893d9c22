package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"corvid/internal/ast"
)

// unquoteSingle decodes a single-quoted literal; only \' and \\ are escapes.
func unquoteSingle(raw string) string {
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && (body[i+1] == '\'' || body[i+1] == '\\') {
			i++
		}
		sb.WriteByte(body[i])
	}
	return sb.String()
}

// templateScanner walks the body of a double-quoted string while tracking
// source positions.
type templateScanner struct {
	p    *Parser
	body string
	i    int
	pos  ast.Position
}

func (s *templateScanner) atEnd() bool { return s.i >= len(s.body) }

func (s *templateScanner) peekAt(n int) byte {
	if s.i+n >= len(s.body) {
		return 0
	}
	return s.body[s.i+n]
}

func (s *templateScanner) advance(n int) {
	for k := 0; k < n && s.i < len(s.body); k++ {
		c := s.body[s.i]
		s.i++
		s.pos.Offset++
		if c == '\n' {
			s.pos.Line++
			s.pos.Column = 1
		} else if utf8.RuneStart(c) {
			s.pos.Column++
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// readName reads an identifier at the cursor.
func (s *templateScanner) readName() string {
	start := s.i
	for !s.atEnd() && isNameChar(s.body[s.i]) {
		s.advance(1)
	}
	return s.body[start:s.i]
}

// parseTemplate turns a double-quoted literal into a plain string literal,
// or an InterpolatedStringExpr when it embeds variables.
func (p *Parser) parseTemplate(tok Token) ast.Expr {
	pos := p.makePos(tok)
	body := tok.Lexeme[1 : len(tok.Lexeme)-1]
	s := &templateScanner{p: p, body: body, pos: pos}
	s.pos.Offset++
	s.pos.Column++

	var parts []ast.Expr
	var lit strings.Builder
	litPos := s.pos
	hasVars := false

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, &ast.LiteralExpr{Pos: litPos, Kind: ast.StringLit, Value: lit.String()})
			lit.Reset()
		}
	}

	for !s.atEnd() {
		c := s.body[s.i]
		switch {
		case c == '\\':
			s.decodeEscape(&lit)
			continue

		case c == '$' && isNameStart(s.peekAt(1)):
			flush()
			hasVars = true
			parts = append(parts, s.simpleVar())
			litPos = s.pos
			continue

		case c == '{' && s.peekAt(1) == '$':
			flush()
			hasVars = true
			parts = append(parts, s.complexExpr())
			litPos = s.pos
			continue

		case c == '$' && s.peekAt(1) == '{':
			flush()
			hasVars = true
			parts = append(parts, s.dollarBrace())
			litPos = s.pos
			continue
		}

		if lit.Len() == 0 {
			litPos = s.pos
		}
		lit.WriteByte(c)
		s.advance(1)
	}
	flush()

	if !hasVars {
		value := ""
		if len(parts) == 1 {
			value = parts[0].(*ast.LiteralExpr).Value
		}
		return &ast.LiteralExpr{Pos: pos, Kind: ast.StringLit, Value: value}
	}
	return &ast.InterpolatedStringExpr{Pos: pos, Parts: parts}
}

func (s *templateScanner) decodeEscape(out *strings.Builder) {
	next := s.peekAt(1)
	simple := map[byte]byte{
		'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'e': 0x1b, 'f': '\f',
		'\\': '\\', '$': '$', '"': '"',
	}
	if b, ok := simple[next]; ok {
		out.WriteByte(b)
		s.advance(2)
		return
	}

	switch {
	case next >= '0' && next <= '7':
		end := s.i + 1
		for end < len(s.body) && end < s.i+4 && s.body[end] >= '0' && s.body[end] <= '7' {
			end++
		}
		v, _ := strconv.ParseUint(s.body[s.i+1:end], 8, 16)
		out.WriteByte(byte(v))
		s.advance(end - s.i)
		return

	case next == 'x' && isHex(s.peekAt(2)):
		end := s.i + 2
		for end < len(s.body) && end < s.i+4 && isHex(s.body[end]) {
			end++
		}
		v, _ := strconv.ParseUint(s.body[s.i+2:end], 16, 8)
		out.WriteByte(byte(v))
		s.advance(end - s.i)
		return

	case next == 'u' && s.peekAt(2) == '{':
		if rbrace := strings.IndexByte(s.body[s.i:], '}'); rbrace > 3 {
			if v, err := strconv.ParseUint(s.body[s.i+3:s.i+rbrace], 16, 32); err == nil {
				out.WriteRune(rune(v))
				s.advance(rbrace + 1)
				return
			}
		}
	}

	// unknown escapes are kept verbatim
	out.WriteByte('\\')
	s.advance(1)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// simpleVar parses "$name", "$name[key]" and "$name->prop".
func (s *templateScanner) simpleVar() ast.Expr {
	start := s.pos
	s.advance(1) // $
	var expr ast.Expr = &ast.VarExpr{Pos: start, Name: s.readName()}

	switch {
	case s.peekAt(0) == '[':
		s.advance(1)
		keyPos := s.pos
		var key ast.Expr
		switch c := s.peekAt(0); {
		case c == '$' && isNameStart(s.peekAt(1)):
			s.advance(1)
			key = &ast.VarExpr{Pos: keyPos, Name: s.readName()}
		case c == '-' || (c >= '0' && c <= '9'):
			begin := s.i
			s.advance(1)
			for !s.atEnd() && s.body[s.i] >= '0' && s.body[s.i] <= '9' {
				s.advance(1)
			}
			key = &ast.LiteralExpr{Pos: keyPos, Kind: ast.IntLit, Value: s.body[begin:s.i]}
		case isNameStart(c):
			key = &ast.LiteralExpr{Pos: keyPos, Kind: ast.StringLit, Value: s.readName()}
		}
		if key != nil && s.peekAt(0) == ']' {
			s.advance(1)
			expr = &ast.IndexExpr{Pos: start, Base: expr, Index: key}
		} else {
			s.p.errors = append(s.p.errors, ParseError{Message: "malformed array offset in string", Position: s.pos})
		}

	case s.peekAt(0) == '-' && s.peekAt(1) == '>' && isNameStart(s.peekAt(2)):
		s.advance(2)
		expr = &ast.PropertyFetchExpr{Pos: start, Object: expr, Name: s.readName()}
	}
	return expr
}

// dollarBrace parses "${name}" and "${expr}".
func (s *templateScanner) dollarBrace() ast.Expr {
	start := s.pos
	s.advance(1) // $
	if isNameStart(s.peekAt(1)) {
		save, savePos := s.i, s.pos
		s.advance(1)
		name := s.readName()
		if s.peekAt(0) == '}' {
			s.advance(1)
			return &ast.VarExpr{Pos: start, Name: name}
		}
		s.i, s.pos = save, savePos
	}
	inner := s.complexExpr()
	return &ast.DynamicVarExpr{Pos: start, Name: inner}
}

// complexExpr parses the braced expression starting at the cursor's "{".
func (s *templateScanner) complexExpr() ast.Expr {
	open := s.pos
	s.advance(1) // {
	innerPos := s.pos
	begin := s.i

	depth := 1
	for !s.atEnd() && depth > 0 {
		switch s.body[s.i] {
		case '{':
			depth++
		case '}':
			depth--
		case '\'':
			// skip quoted keys such as {$a['}']}
			s.advance(1)
			for !s.atEnd() && s.body[s.i] != '\'' {
				if s.body[s.i] == '\\' {
					s.advance(1)
				}
				s.advance(1)
			}
		}
		if depth == 0 {
			break
		}
		s.advance(1)
	}
	if s.atEnd() {
		s.p.errors = append(s.p.errors, ParseError{Message: "unterminated '{' in string", Position: open})
		return &ast.BadExpr{Pos: open, Message: "unterminated interpolation"}
	}
	inner := s.body[begin:s.i]
	s.advance(1) // }

	return s.p.parseEmbedded(inner, innerPos)
}

// parseEmbedded parses source embedded in a string, shifting positions so
// they point into the enclosing file.
func (p *Parser) parseEmbedded(source string, at ast.Position) ast.Expr {
	const prefix = "<?php "
	tokens, lexErrs := tokenize(p.filename, prefix+source)

	shift := func(pos ast.Position) ast.Position {
		out := pos
		out.Filename = p.filename
		out.Offset = at.Offset + pos.Offset - len(prefix)
		if pos.Line <= 1 {
			out.Line = at.Line
			out.Column = at.Column + pos.Column - 1 - len(prefix)
		} else {
			out.Line = at.Line + pos.Line - 1
		}
		return out
	}
	for i := range tokens {
		tokens[i].Position = shift(tokens[i].Position)
	}

	sub := NewParser(p.filename, tokens)
	sub.namespace = p.namespace
	expr := sub.parseExpr()
	if !sub.isAtEnd() {
		sub.errorAtCurrent("unexpected token in string interpolation")
	}

	for _, e := range lexErrs {
		e.Position = shift(e.Position)
		p.errors = append(p.errors, e)
	}
	p.errors = append(p.errors, sub.errors...)
	return expr
}
