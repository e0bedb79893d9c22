package parser

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"

	"corvid/internal/ast"
)

type Parser struct {
	filename  string
	tokens    []Token
	current   int
	errors    []ParseError
	namespace []string // current namespace, for namespace\name references
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

func ParseFile(path string) (*ast.Unit, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	unit, errs := ParseSource(path, string(source))
	return unit, errs, nil
}

// ParseSource parses one compilation unit. Parse errors are collected and
// the recovered tree is always returned.
func ParseSource(path string, source string) (*ast.Unit, []ParseError) {
	source = norm.NFC.String(source)
	tokens, lexErrors := tokenize(path, source)

	p := NewParser(path, tokens)
	unit := p.ParseUnit()

	return unit, append(lexErrors, p.errors...)
}

// ParseUnit parses top-level items, splitting them into namespace blocks.
func (p *Parser) ParseUnit() *ast.Unit {
	unit := &ast.Unit{
		Pos:  ast.Position{Filename: p.filename, Line: 1, Column: 1},
		Path: p.filename,
	}

	global := &ast.NamespaceBlock{Pos: unit.Pos}
	current := global

	for !p.isAtEnd() {
		if p.checkKeyword("namespace") && !p.checkNext(OPERATOR, "(") {
			start := p.advance()
			if p.checkOp("{") {
				// namespace { ... }
				p.advance()
				block := &ast.NamespaceBlock{Pos: p.makePos(start), Braced: true}
				p.namespace = nil
				block.Items = p.parseItemsUntilBrace()
				unit.Blocks = appendBlock(unit.Blocks, current)
				unit.Blocks = append(unit.Blocks, block)
				current = &ast.NamespaceBlock{Pos: p.makePos(p.peek())}
				continue
			}

			nameTok := p.consume(NAME, "expected namespace name")
			name := ast.NewName(p.makePos(nameTok), nameTok.Lexeme)
			name.FullyQualified = false
			p.namespace = name.Parts

			if p.matchOp("{") {
				block := &ast.NamespaceBlock{Pos: p.makePos(start), Name: name, Braced: true}
				block.Items = p.parseItemsUntilBrace()
				unit.Blocks = appendBlock(unit.Blocks, current)
				unit.Blocks = append(unit.Blocks, block)
				current = &ast.NamespaceBlock{Pos: p.makePos(p.peek())}
				p.namespace = nil
				continue
			}

			p.consumeOp(";", "expected ';' or '{' after namespace name")
			unit.Blocks = appendBlock(unit.Blocks, current)
			current = &ast.NamespaceBlock{Pos: p.makePos(start), Name: name}
			continue
		}

		if item := p.parseTopLevelItem(); item != nil {
			current.Items = append(current.Items, item)
		}
	}

	unit.Blocks = appendBlock(unit.Blocks, current)
	if len(unit.Blocks) == 0 {
		unit.Blocks = []*ast.NamespaceBlock{global}
	}
	return unit
}

// appendBlock keeps statement-form and implicit blocks only when they carry
// items or a namespace name.
func appendBlock(blocks []*ast.NamespaceBlock, b *ast.NamespaceBlock) []*ast.NamespaceBlock {
	if b == nil || (b.Name == nil && len(b.Items) == 0) {
		return blocks
	}
	return append(blocks, b)
}

func (p *Parser) parseItemsUntilBrace() []ast.Stmt {
	var items []ast.Stmt
	for !p.checkOp("}") && !p.isAtEnd() {
		if item := p.parseTopLevelItem(); item != nil {
			items = append(items, item)
		}
	}
	p.consumeOp("}", "expected '}' to close namespace block")
	return items
}

// parseTopLevelItem parses declarations allowed only at namespace level,
// falling back to ordinary statements.
func (p *Parser) parseTopLevelItem() ast.Stmt {
	switch {
	case p.checkKeyword("use"):
		return p.parseUse()
	case p.checkKeyword("const"):
		return p.parseConst()
	}
	return p.parseStatement()
}
