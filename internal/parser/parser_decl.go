package parser

import (
	"strings"

	"corvid/internal/ast"
)

// parseUse parses import statements
// e.g., use A\B as C, D; use function a\f; use A\{B, C as D};
func (p *Parser) parseUse() ast.Stmt {
	start := p.consumeKeyword("use", "expected 'use'")
	stmt := &ast.UseStmt{Pos: p.makePos(start), Kind: ast.UseClass}

	if p.checkKeyword("function") && p.checkNext(NAME, "") {
		p.advance()
		stmt.Kind = ast.UseFunction
	} else if p.checkKeyword("const") && p.checkNext(NAME, "") {
		p.advance()
		stmt.Kind = ast.UseConst
	}

	for !p.isAtEnd() {
		tok := p.consume(NAME, "expected name in use statement")
		if tok.Type == ILLEGAL {
			p.synchronize()
			return stmt
		}
		name := ast.NewName(p.makePos(tok), tok.Lexeme)

		if p.checkOp(`\`) && p.checkNext(OPERATOR, "{") {
			p.advance()
			p.advance()
			stmt.Clauses = append(stmt.Clauses, p.parseGroupUse(name)...)
		} else {
			stmt.Clauses = append(stmt.Clauses, p.parseUseClause(name))
		}

		if !p.matchOp(",") {
			break
		}
	}

	p.endStatement("use statement")
	return stmt
}

func (p *Parser) parseUseClause(name *ast.Name) *ast.UseClause {
	// leading backslash is redundant in imports
	name.FullyQualified = false
	clause := &ast.UseClause{Pos: name.Pos, Name: name}
	if p.matchKeyword("as") {
		alias, ok := p.consumeIdent("expected alias after 'as'")
		if ok {
			clause.Alias = &alias
		}
	}
	return clause
}

// parseGroupUse parses the braced tail of a group use after "prefix\{".
// Per-clause function/const kinds are accepted and folded into the
// statement kind.
func (p *Parser) parseGroupUse(prefix *ast.Name) []*ast.UseClause {
	var clauses []*ast.UseClause
	for !p.checkOp("}") && !p.isAtEnd() {
		p.matchKeyword("function", "const")
		tok := p.consume(NAME, "expected name in group use")
		if tok.Type == ILLEGAL {
			break
		}
		tail := ast.NewName(p.makePos(tok), tok.Lexeme)
		name := &ast.Name{
			Pos:   prefix.Pos,
			Parts: append(append([]string{}, prefix.Parts...), tail.Parts...),
		}
		clauses = append(clauses, p.parseUseClause(name))
		if !p.matchOp(",") {
			break
		}
	}
	p.consumeOp("}", "expected '}' to close group use")
	return clauses
}

// parseConst parses namespace-level declarative constants
// e.g., const A = 1, B = A * 2;
func (p *Parser) parseConst() ast.Stmt {
	start := p.consumeKeyword("const", "expected 'const'")
	stmt := &ast.ConstStmt{Pos: p.makePos(start)}
	stmt.Decls = p.parseConstDecls()
	p.endStatement("const declaration")
	return stmt
}

func (p *Parser) parseConstDecls() []*ast.ConstDecl {
	var decls []*ast.ConstDecl
	for !p.isAtEnd() {
		name, ok := p.consumeIdent("expected constant name")
		if !ok {
			break
		}
		p.consumeOp("=", "expected '=' after constant name")
		value := p.parseExpr()
		decls = append(decls, &ast.ConstDecl{Pos: name.Pos, Name: name, Value: value})
		if !p.matchOp(",") {
			break
		}
	}
	return decls
}

// parseFunctionDecl parses a named free function
// e.g., function &bar($hey, $two = 5) { ... }
func (p *Parser) parseFunctionDecl() ast.Stmt {
	start := p.consumeKeyword("function", "expected 'function'")
	fn := &ast.FunctionDecl{Pos: p.makePos(start)}
	fn.ByRef = p.matchOp("&")

	name, ok := p.consumeIdent("expected function name")
	if !ok {
		p.synchronize()
		return nil
	}
	fn.Name = name
	fn.Params = p.parseParams()
	p.parseReturnType()
	fn.Body = p.parseBlock()
	return fn
}

// parseParams parses a parenthesized formal parameter list
func (p *Parser) parseParams() []*ast.Param {
	p.consumeOp("(", "expected '(' before parameter list")
	var params []*ast.Param

	for !p.checkOp(")") && !p.isAtEnd() {
		start := p.peek()
		param := &ast.Param{Pos: p.makePos(start)}

		// constructor promotion modifiers carry no meaning here
		for p.matchKeyword("public", "protected", "private", "readonly") {
		}

		if !p.check(VARIABLE) && !p.checkOp("&") && !p.checkOp("...") {
			param.TypeHint = p.parseTypeHint()
		}
		param.ByRef = p.matchOp("&")
		param.Variadic = p.matchOp("...")

		tok := p.consume(VARIABLE, "expected parameter variable")
		if tok.Type == ILLEGAL {
			// skip to the next parameter or the closing paren
			for !p.checkOp(",") && !p.checkOp(")") && !p.checkOp("{") && !p.isAtEnd() {
				p.advance()
			}
		} else {
			param.Pos = p.makePos(tok)
			param.Name = strings.TrimPrefix(tok.Lexeme, "$")
			if p.matchOp("=") {
				param.Default = p.parseExpr()
			}
			params = append(params, param)
		}

		if !p.matchOp(",") {
			break
		}
	}

	p.consumeOp(")", "expected ')' after parameters")
	return params
}

// parseTypeHint parses a parameter, property or return type; only the first
// named type is kept.
// e.g., ?Foo, int|string, \a\B
func (p *Parser) parseTypeHint() *ast.Name {
	var first *ast.Name
	p.matchOp("?")
	for {
		if p.matchOp("(") {
			// DNF types: (A&B)|null
			p.skipBalanced("(", ")")
		} else if p.check(NAME) {
			tok := p.advance()
			if first == nil {
				first = p.makeName(tok)
			}
		} else {
			break
		}
		if !p.matchOp("|") {
			break
		}
	}
	return first
}

func (p *Parser) parseReturnType() {
	if p.matchOp(":") {
		p.parseTypeHint()
	}
}

// parseClassDecl parses a class declaration after optional modifiers
// e.g., abstract class Foo extends Bar implements Baz, Qux { ... }
func (p *Parser) parseClassDecl() ast.Stmt {
	start := p.peek()
	class := &ast.ClassDecl{Pos: p.makePos(start)}
	for {
		if p.matchKeyword("abstract") {
			class.Abstract = true
		} else if p.matchKeyword("final") {
			class.Final = true
		} else if !p.matchKeyword("readonly") {
			break
		}
	}
	p.consumeKeyword("class", "expected 'class'")

	name, ok := p.consumeIdent("expected class name")
	if !ok {
		p.synchronize()
		return nil
	}
	class.Name = name

	if p.matchKeyword("extends") {
		tok := p.consume(NAME, "expected superclass name after 'extends'")
		if tok.Type != ILLEGAL {
			class.Extends = p.makeName(tok)
		}
	}
	if p.matchKeyword("implements") {
		class.Implements = p.parseNameList("expected interface name after 'implements'")
	}

	class.Members = p.parseClassBody()
	return class
}

// parseInterfaceDecl parses an interface declaration
// e.g., interface Shape extends Named, Sized { public function area(); }
func (p *Parser) parseInterfaceDecl() ast.Stmt {
	start := p.consumeKeyword("interface", "expected 'interface'")
	iface := &ast.InterfaceDecl{Pos: p.makePos(start)}

	name, ok := p.consumeIdent("expected interface name")
	if !ok {
		p.synchronize()
		return nil
	}
	iface.Name = name

	if p.matchKeyword("extends") {
		iface.Extends = p.parseNameList("expected interface name after 'extends'")
	}

	iface.Members = p.parseClassBody()
	for _, m := range iface.Members {
		if md, ok := m.(*ast.MethodDecl); ok {
			md.Modifiers.Abstract = true
		}
	}
	return iface
}

// parseClassBody parses the braced member list of a class or interface
func (p *Parser) parseClassBody() []ast.ClassMember {
	if p.consumeOp("{", "expected '{' to open class body").Type == ILLEGAL {
		p.synchronize()
		return nil
	}

	var members []ast.ClassMember
	for !p.checkOp("}") && !p.isAtEnd() {
		before := p.current
		if member := p.parseClassMember(); member != nil {
			members = append(members, member)
		}
		if p.current == before {
			p.errorAtCurrent("unexpected token in class body")
			p.advance()
		}
	}
	p.consumeOp("}", "expected '}' to close class body")
	return members
}

func (p *Parser) parseClassMember() ast.ClassMember {
	start := p.peek()

	if p.matchOp(";") {
		return nil
	}

	// trait imports are accepted and ignored
	if p.matchKeyword("use") {
		p.parseNameList("expected trait name")
		if p.matchOp("{") {
			p.skipBalanced("{", "}")
		} else {
			p.endStatement("trait use")
		}
		return nil
	}

	var mods ast.Modifiers
modifiers:
	for {
		switch {
		case p.matchKeyword("public"):
			mods.Visibility = ast.Public
		case p.matchKeyword("protected"):
			mods.Visibility = ast.Protected
		case p.matchKeyword("private"):
			mods.Visibility = ast.Private
		case p.matchKeyword("static"):
			mods.Static = true
		case p.matchKeyword("abstract"):
			mods.Abstract = true
		case p.matchKeyword("final"):
			mods.Final = true
		case p.matchKeyword("var"), p.matchKeyword("readonly"):
		default:
			break modifiers
		}
	}

	switch {
	case p.checkKeyword("const"):
		p.advance()
		decl := &ast.ClassConstDecl{Pos: p.makePos(start), Visibility: mods.Visibility}
		// typed class constants: const int X = 1;
		if p.check(NAME) && p.checkNext(NAME, "") {
			p.advance()
		}
		decl.Decls = p.parseConstDecls()
		p.endStatement("class constant")
		return decl

	case p.checkKeyword("function"):
		p.advance()
		method := &ast.MethodDecl{Pos: p.makePos(start), Modifiers: mods}
		method.ByRef = p.matchOp("&")
		tok := p.consume(NAME, "expected method name")
		if tok.Type == ILLEGAL {
			p.synchronize()
			return nil
		}
		method.Name = p.makeIdent(tok)
		method.Params = p.parseParams()
		p.parseReturnType()
		if p.checkOp("{") {
			method.Body = p.parseBlock()
		} else {
			p.endStatement("abstract method")
		}
		return method
	}

	// property, optionally typed
	if !p.check(VARIABLE) {
		p.parseTypeHint()
	}
	if !p.check(VARIABLE) {
		p.errorAtCurrent("expected property, method or constant declaration")
		p.synchronize()
		return nil
	}

	decl := &ast.PropertyDecl{Pos: p.makePos(start), Modifiers: mods}
	for !p.isAtEnd() {
		tok := p.consume(VARIABLE, "expected property name")
		if tok.Type == ILLEGAL {
			break
		}
		v := &ast.PropertyVar{Pos: p.makePos(tok), Name: strings.TrimPrefix(tok.Lexeme, "$")}
		if p.matchOp("=") {
			v.Default = p.parseExpr()
		}
		decl.Vars = append(decl.Vars, v)
		if !p.matchOp(",") {
			break
		}
	}
	p.endStatement("property declaration")
	return decl
}
