package parser

import (
	"strings"

	"corvid/internal/ast"
)

// parseStatement parses one statement. It returns nil for empty statements
// and for statements that failed to parse after recovery.
func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()

	if tok.Type == OPERATOR {
		switch tok.Lexeme {
		case ";":
			p.advance()
			return nil
		case "{":
			return p.parseBlock()
		}
	}

	if tok.Type == NAME {
		switch strings.ToLower(tok.Lexeme) {
		case "function":
			// closures used as statements fall through to expressions
			if p.checkNext(NAME, "") || (p.checkNext(OPERATOR, "&") && p.lookAhead(2).Type == NAME) {
				return p.parseFunctionDecl()
			}
		case "abstract", "final", "readonly", "class":
			if p.isClassStart() {
				return p.parseClassDecl()
			}
		case "interface":
			if p.checkNext(NAME, "") {
				return p.parseInterfaceDecl()
			}
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "for":
			return p.parseFor()
		case "foreach":
			return p.parseForeach()
		case "switch":
			return p.parseSwitch()
		case "break", "continue":
			return p.parseJump()
		case "return":
			return p.parseReturn()
		case "echo":
			return p.parseEcho()
		case "global":
			return p.parseGlobal()
		case "static":
			if p.checkNext(VARIABLE, "") {
				return p.parseStatic()
			}
		case "unset":
			if p.checkNext(OPERATOR, "(") {
				return p.parseUnset()
			}
		case "throw":
			return p.parseThrow()
		case "try":
			return p.parseTry()
		case "declare":
			if p.checkNext(OPERATOR, "(") {
				p.advance()
				p.advance()
				p.skipBalanced("(", ")")
				if !p.matchOp(";") && p.checkOp("{") {
					return p.parseBlock()
				}
				return nil
			}
		case "use":
			// only valid at namespace level, but recover gracefully
			return p.parseUse()
		case "const":
			return p.parseConst()
		}
	}

	return p.parseExprStmt()
}

func (p *Parser) lookAhead(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) isClassStart() bool {
	for i := 0; ; i++ {
		tok := p.lookAhead(i)
		if tok.Type != NAME {
			return false
		}
		switch strings.ToLower(tok.Lexeme) {
		case "abstract", "final", "readonly":
			continue
		case "class":
			return p.lookAhead(i+1).Type == NAME
		}
		return false
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.peek()
	before := p.current
	expr := p.parseExpr()
	if p.current == before {
		// nothing consumed, skip the offending token
		p.synchronize()
		return &ast.BadStmt{Pos: p.makePos(start), Message: "unexpected token"}
	}
	p.endStatement("expression")
	return &ast.ExprStmt{Pos: p.makePos(start), Expr: expr}
}

// parseBlock parses a braced statement list
func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.peek()
	block := &ast.BlockStmt{Pos: p.makePos(start)}
	if p.consumeOp("{", "expected '{'").Type == ILLEGAL {
		return block
	}
	block.Stmts = p.parseStatementsUntil(func() bool { return p.checkOp("}") })
	p.consumeOp("}", "expected '}' to close block")
	return block
}

// parseStatementsUntil parses statements until stop reports true or input
// ends; the terminator itself is left unconsumed.
func (p *Parser) parseStatementsUntil(stop func() bool) []ast.Stmt {
	var stmts []ast.Stmt
	for !stop() && !p.isAtEnd() {
		before := p.current
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.current == before {
			p.errorAtCurrent("unexpected token")
			p.advance()
		}
	}
	return stmts
}

// parseBody parses a control-structure body: a single statement, or for
// the alternative syntax ":" statements up to one of the end keywords.
func (p *Parser) parseBody(endKeywords ...string) (ast.Stmt, bool) {
	if len(endKeywords) > 0 && p.checkOp(":") {
		start := p.advance()
		stmts := p.parseStatementsUntil(func() bool {
			for _, kw := range endKeywords {
				if p.checkKeyword(kw) {
					return true
				}
			}
			return false
		})
		return &ast.BlockStmt{Pos: p.makePos(start), Stmts: stmts}, true
	}
	stmt := p.parseStatement()
	if stmt == nil {
		stmt = &ast.BlockStmt{Pos: p.makePos(p.previous())}
	}
	return stmt, false
}

func (p *Parser) parseParenExpr(what string) ast.Expr {
	p.consumeOp("(", "expected '(' after "+what)
	expr := p.parseExpr()
	p.consumeOp(")", "expected ')' after "+what+" condition")
	return expr
}

// parseIf parses if / elseif / else chains in both syntaxes
func (p *Parser) parseIf() ast.Stmt {
	start := p.advance()
	stmt := &ast.IfStmt{Pos: p.makePos(start)}
	stmt.Cond = p.parseParenExpr("'if'")

	var alt bool
	stmt.Then, alt = p.parseBody("elseif", "else", "endif")

	for {
		if p.checkKeyword("elseif") || (p.checkKeyword("else") && p.checkNext(NAME, "if")) {
			elseTok := p.advance()
			if strings.EqualFold(elseTok.Lexeme, "else") {
				p.advance()
			}
			arm := &ast.ElseIf{Pos: p.makePos(elseTok)}
			arm.Cond = p.parseParenExpr("'elseif'")
			if alt {
				arm.Body, _ = p.parseBody("elseif", "else", "endif")
			} else {
				arm.Body, _ = p.parseBody()
			}
			stmt.ElseIfs = append(stmt.ElseIfs, arm)
			continue
		}
		if p.matchKeyword("else") {
			if alt {
				stmt.Else, _ = p.parseBody("endif")
			} else {
				stmt.Else, _ = p.parseBody()
			}
		}
		break
	}

	if alt {
		p.consumeKeyword("endif", "expected 'endif'")
		p.endStatement("endif")
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance()
	stmt := &ast.WhileStmt{Pos: p.makePos(start)}
	stmt.Cond = p.parseParenExpr("'while'")
	var alt bool
	stmt.Body, alt = p.parseBody("endwhile")
	if alt {
		p.consumeKeyword("endwhile", "expected 'endwhile'")
		p.endStatement("endwhile")
	}
	return stmt
}

func (p *Parser) parseDoWhile() ast.Stmt {
	start := p.advance()
	stmt := &ast.DoWhileStmt{Pos: p.makePos(start)}
	stmt.Body, _ = p.parseBody()
	p.consumeKeyword("while", "expected 'while' after do body")
	stmt.Cond = p.parseParenExpr("'while'")
	p.endStatement("do-while")
	return stmt
}

// parseFor parses for ($i = 0, $j = 1; $i < 10; $i++, $j++) ...
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance()
	stmt := &ast.ForStmt{Pos: p.makePos(start)}
	p.consumeOp("(", "expected '(' after 'for'")
	stmt.Init = p.parseExprListUntil(";")
	p.consumeOp(";", "expected ';' after for initializer")
	stmt.Cond = p.parseExprListUntil(";")
	p.consumeOp(";", "expected ';' after for condition")
	stmt.Step = p.parseExprListUntil(")")
	p.consumeOp(")", "expected ')' after for clauses")

	var alt bool
	stmt.Body, alt = p.parseBody("endfor")
	if alt {
		p.consumeKeyword("endfor", "expected 'endfor'")
		p.endStatement("endfor")
	}
	return stmt
}

func (p *Parser) parseExprListUntil(end string) []ast.Expr {
	var exprs []ast.Expr
	for !p.checkOp(end) && !p.isAtEnd() {
		exprs = append(exprs, p.parseExpr())
		if !p.matchOp(",") {
			break
		}
	}
	return exprs
}

// parseForeach parses foreach ($subject as [$key =>] [&]$value) ...
func (p *Parser) parseForeach() ast.Stmt {
	start := p.advance()
	stmt := &ast.ForeachStmt{Pos: p.makePos(start)}
	p.consumeOp("(", "expected '(' after 'foreach'")
	stmt.Subject = p.parseExpr()
	p.consumeKeyword("as", "expected 'as' in foreach")

	byRef := p.matchOp("&")
	first := p.parseExpr()
	if p.matchOp("=>") {
		stmt.Key = first
		byRef = p.matchOp("&")
		stmt.Value = p.parseExpr()
	} else {
		stmt.Value = first
	}
	stmt.ByRef = byRef
	markList(stmt.Value)
	p.consumeOp(")", "expected ')' after foreach clause")

	var alt bool
	stmt.Body, alt = p.parseBody("endforeach")
	if alt {
		p.consumeKeyword("endforeach", "expected 'endforeach'")
		p.endStatement("endforeach")
	}
	return stmt
}

func (p *Parser) parseSwitch() ast.Stmt {
	start := p.advance()
	stmt := &ast.SwitchStmt{Pos: p.makePos(start)}
	stmt.Subject = p.parseParenExpr("'switch'")

	alt := false
	if p.matchOp(":") {
		alt = true
	} else {
		p.consumeOp("{", "expected '{' after switch subject")
	}

	isEnd := func() bool {
		if alt {
			return p.checkKeyword("endswitch")
		}
		return p.checkOp("}")
	}
	for !isEnd() && !p.isAtEnd() {
		caseTok := p.peek()
		clause := &ast.CaseClause{Pos: p.makePos(caseTok)}
		if p.matchKeyword("case") {
			clause.Value = p.parseExpr()
		} else if !p.matchKeyword("default") {
			p.errorAtCurrent("expected 'case' or 'default'")
			p.synchronize()
			continue
		}
		if !p.matchOp(":") && !p.matchOp(";") {
			p.errorAtCurrent("expected ':' after case")
		}
		clause.Body = p.parseStatementsUntil(func() bool {
			return isEnd() || p.checkKeyword("case") || p.checkKeyword("default")
		})
		stmt.Cases = append(stmt.Cases, clause)
	}

	if alt {
		p.consumeKeyword("endswitch", "expected 'endswitch'")
		p.endStatement("endswitch")
	} else {
		p.consumeOp("}", "expected '}' to close switch")
	}
	return stmt
}

func (p *Parser) parseJump() ast.Stmt {
	start := p.advance()
	stmt := &ast.JumpStmt{Pos: p.makePos(start), Kind: ast.Break}
	if strings.EqualFold(start.Lexeme, "continue") {
		stmt.Kind = ast.Continue
	}
	if !p.checkOp(";") && !p.isAtEnd() {
		stmt.Depth = p.parseExpr()
	}
	p.endStatement(strings.ToLower(start.Lexeme))
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance()
	stmt := &ast.ReturnStmt{Pos: p.makePos(start)}
	if !p.checkOp(";") && !p.isAtEnd() {
		stmt.Value = p.parseExpr()
	}
	p.endStatement("return")
	return stmt
}

func (p *Parser) parseEcho() ast.Stmt {
	start := p.advance()
	stmt := &ast.EchoStmt{Pos: p.makePos(start)}
	stmt.Exprs = p.parseExprListUntil(";")
	p.endStatement("echo")
	return stmt
}

func (p *Parser) parseGlobal() ast.Stmt {
	start := p.advance()
	stmt := &ast.GlobalStmt{Pos: p.makePos(start)}
	for !p.isAtEnd() {
		tok := p.consume(VARIABLE, "expected variable after 'global'")
		if tok.Type == ILLEGAL {
			break
		}
		stmt.Vars = append(stmt.Vars, p.makeVar(tok))
		if !p.matchOp(",") {
			break
		}
	}
	p.endStatement("global")
	return stmt
}

func (p *Parser) parseStatic() ast.Stmt {
	start := p.advance()
	stmt := &ast.StaticStmt{Pos: p.makePos(start)}
	for !p.isAtEnd() {
		tok := p.consume(VARIABLE, "expected variable after 'static'")
		if tok.Type == ILLEGAL {
			break
		}
		sv := &ast.StaticVar{Pos: p.makePos(tok), Var: p.makeVar(tok)}
		if p.matchOp("=") {
			sv.Default = p.parseExpr()
		}
		stmt.Vars = append(stmt.Vars, sv)
		if !p.matchOp(",") {
			break
		}
	}
	p.endStatement("static")
	return stmt
}

func (p *Parser) parseUnset() ast.Stmt {
	start := p.advance()
	stmt := &ast.UnsetStmt{Pos: p.makePos(start)}
	p.consumeOp("(", "expected '(' after 'unset'")
	stmt.Targets = p.parseExprListUntil(")")
	p.consumeOp(")", "expected ')' after unset targets")
	p.endStatement("unset")
	return stmt
}

func (p *Parser) parseThrow() ast.Stmt {
	start := p.advance()
	stmt := &ast.ThrowStmt{Pos: p.makePos(start)}
	stmt.Value = p.parseExpr()
	p.endStatement("throw")
	return stmt
}

// parseTry parses try { } catch (A | B $e) { } finally { }
func (p *Parser) parseTry() ast.Stmt {
	start := p.advance()
	stmt := &ast.TryStmt{Pos: p.makePos(start)}
	stmt.Body = p.parseBlock()

	for p.checkKeyword("catch") {
		catchTok := p.advance()
		clause := &ast.CatchClause{Pos: p.makePos(catchTok)}
		p.consumeOp("(", "expected '(' after 'catch'")
		for !p.isAtEnd() {
			tok := p.consume(NAME, "expected exception type")
			if tok.Type == ILLEGAL {
				break
			}
			clause.Types = append(clause.Types, p.makeName(tok))
			if !p.matchOp("|") {
				break
			}
		}
		if p.check(VARIABLE) {
			clause.Var = p.makeVar(p.advance())
		}
		p.consumeOp(")", "expected ')' after catch clause")
		clause.Body = p.parseBlock()
		stmt.Catches = append(stmt.Catches, clause)
	}

	if p.matchKeyword("finally") {
		stmt.Finally = p.parseBlock()
	}
	if len(stmt.Catches) == 0 && stmt.Finally == nil {
		p.errorAtCurrent("expected 'catch' or 'finally' after try block")
	}
	return stmt
}

func (p *Parser) makeVar(tok Token) *ast.VarExpr {
	return &ast.VarExpr{Pos: p.makePos(tok), Name: strings.TrimPrefix(tok.Lexeme, "$")}
}
