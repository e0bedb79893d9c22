package parser

import (
	"strings"

	"corvid/internal/ast"
)

const (
	precLowest = iota
	precLogicalOr
	precLogicalXor
	precLogicalAnd
	precAssign
	precTernary
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precCompare
	precConcat
	precShift
	precAdditive
	precMultiplicative
	precNot
	precInstanceof
	precUnary
	precPow
)

var binaryPrecedence = map[string]int{
	"??": precCoalesce,
	"||": precOr,
	"&&": precAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality, "<>": precEquality, "<=>": precEquality,
	"<": precCompare, "<=": precCompare, ">": precCompare, ">=": precCompare,
	".": precConcat,
	"<<": precShift, ">>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precPow,
}

var keywordPrecedence = map[string]int{
	"or":         precLogicalOr,
	"xor":        precLogicalXor,
	"and":        precLogicalAnd,
	"instanceof": precInstanceof,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, ".=": true, "%=": true,
	"**=": true, "??=": true, "&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parsePrattExpr(precLowest)
}

// binaryOp returns the operator at the current token and its precedence.
func (p *Parser) binaryOp() (string, int, bool) {
	tok := p.peek()
	switch tok.Type {
	case OPERATOR:
		if tok.Lexeme == "?" {
			return "?", precTernary, true
		}
		prec, ok := binaryPrecedence[tok.Lexeme]
		return tok.Lexeme, prec, ok
	case NAME:
		op := strings.ToLower(tok.Lexeme)
		prec, ok := keywordPrecedence[op]
		return op, prec, ok
	}
	return "", 0, false
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parseUnaryExpr()

	for {
		tok := p.peek()

		// assignment binds to the nearest assignable operand
		if tok.Type == OPERATOR && assignOps[tok.Lexeme] && isAssignable(expr) {
			expr = p.parseAssign(expr)
			continue
		}

		op, prec, ok := p.binaryOp()
		if !ok || prec < minPrec {
			break
		}
		p.advance()

		switch op {
		case "?":
			expr = p.parseTernary(expr)
			continue
		case "instanceof":
			expr = &ast.InstanceofExpr{
				Pos:   expr.NodePos(),
				Value: expr,
				Class: p.parseClassRef(false),
			}
			continue
		}

		// ** and ?? are right-associative
		next := prec + 1
		if op == "**" || op == "??" {
			next = prec
		}
		right := p.parsePrattExpr(next)

		expr = &ast.BinaryExpr{
			Pos:   expr.NodePos(),
			Op:    op,
			Left:  expr,
			Right: right,
		}
	}

	return expr
}

func (p *Parser) parseAssign(target ast.Expr) ast.Expr {
	op := p.advance()
	markList(target)
	assign := &ast.AssignExpr{
		Pos:    target.NodePos(),
		Op:     op.Lexeme,
		Target: target,
	}
	if op.Lexeme == "=" && p.matchOp("&") {
		assign.ByRef = true
	}
	assign.Value = p.parsePrattExpr(precAssign)
	return assign
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	t := &ast.TernaryExpr{Pos: cond.NodePos(), Cond: cond}
	if !p.matchOp(":") {
		t.Then = p.parsePrattExpr(precAssign)
		p.consumeOp(":", "expected ':' in ternary expression")
	}
	t.Else = p.parsePrattExpr(precTernary + 1)
	return t
}

// isAssignable reports whether expr may appear on the left of "=".
func isAssignable(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.VarExpr, *ast.DynamicVarExpr, *ast.IndexExpr, *ast.PropertyFetchExpr, *ast.StaticPropExpr, *ast.ArrayExpr:
		return true
	}
	return false
}

// markList flags array literals used as destructuring targets.
func markList(expr ast.Expr) {
	arr, ok := expr.(*ast.ArrayExpr)
	if !ok {
		return
	}
	arr.List = true
	for _, item := range arr.Items {
		if item != nil {
			markList(item.Value)
		}
	}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.peek()

	switch tok.Type {
	case OPERATOR:
		switch tok.Lexeme {
		case "!":
			p.advance()
			value := p.parsePrattExpr(precInstanceof)
			return &ast.UnaryExpr{Pos: p.makePos(tok), Op: "!", Operand: value}
		case "-", "+", "~", "@":
			p.advance()
			value := p.parsePrattExpr(precUnary)
			return &ast.UnaryExpr{Pos: p.makePos(tok), Op: tok.Lexeme, Operand: value}
		case "++", "--":
			p.advance()
			value := p.parsePostfixExpr(p.parsePrimaryExpr())
			return &ast.UnaryExpr{Pos: p.makePos(tok), Op: tok.Lexeme, Operand: value}
		case "&":
			// stray reference marker, e.g. call-time pass-by-reference
			p.advance()
			return p.parseUnaryExpr()
		}
	case CAST:
		p.advance()
		value := p.parsePrattExpr(precUnary)
		return &ast.CastExpr{Pos: p.makePos(tok), Type: tok.Lexeme, Value: value}
	case NAME:
		switch strings.ToLower(tok.Lexeme) {
		case "new":
			return p.parsePostfixExpr(p.parseNew())
		case "clone":
			p.advance()
			value := p.parsePrattExpr(precUnary)
			return &ast.CloneExpr{Pos: p.makePos(tok), Value: value}
		case "print":
			p.advance()
			value := p.parsePrattExpr(precAssign)
			return &ast.PrintExpr{Pos: p.makePos(tok), Value: value}
		case "include", "include_once", "require", "require_once":
			p.advance()
			path := p.parsePrattExpr(precAssign)
			return &ast.IncludeExpr{Pos: p.makePos(tok), Kind: strings.ToLower(tok.Lexeme), Path: path}
		case "throw":
			p.advance()
			value := p.parsePrattExpr(precAssign)
			return &ast.UnaryExpr{Pos: p.makePos(tok), Op: "throw", Operand: value}
		case "yield":
			return p.parseYield()
		}
	}

	return p.parsePostfixExpr(p.parsePrimaryExpr())
}

func (p *Parser) parseYield() ast.Expr {
	start := p.advance()
	y := &ast.YieldExpr{Pos: p.makePos(start)}
	if p.matchKeyword("from") {
		y.From = true
		y.Value = p.parsePrattExpr(precAssign)
		return y
	}
	if p.checkOp(";") || p.checkOp(")") || p.checkOp(",") || p.checkOp("]") || p.isAtEnd() {
		return y
	}
	value := p.parsePrattExpr(precAssign)
	if p.matchOp("=>") {
		y.Key = value
		value = p.parsePrattExpr(precAssign)
	}
	y.Value = value
	return y
}

func (p *Parser) parsePostfixExpr(expr ast.Expr) ast.Expr {
	for {
		tok := p.peek()
		if tok.Type != OPERATOR {
			return expr
		}

		switch tok.Lexeme {
		case "[":
			p.advance()
			index := &ast.IndexExpr{Pos: expr.NodePos(), Base: expr}
			if !p.checkOp("]") {
				index.Index = p.parseExpr()
			}
			p.consumeOp("]", "expected ']' after index")
			expr = index

		case "->", "?->":
			p.advance()
			expr = p.parseMemberAccess(expr, tok.Lexeme == "?->")

		case "::":
			p.advance()
			expr = p.parseStaticAccess(toClassRef(expr))

		case "(":
			args := p.parseArgs()
			expr = &ast.CallExpr{
				Pos:    expr.NodePos(),
				Callee: expr,
				Args:   args,
			}

		case "++", "--":
			if !isAssignable(expr) {
				return expr
			}
			p.advance()
			expr = &ast.UnaryExpr{Pos: expr.NodePos(), Op: tok.Lexeme, Operand: expr, Postfix: true}

		default:
			return expr
		}
	}
}

// parseMemberAccess parses the tail of $obj->name or $obj->name(...)
func (p *Parser) parseMemberAccess(object ast.Expr, nullSafe bool) ast.Expr {
	var name string
	var dynamic ast.Expr

	switch {
	case p.check(NAME):
		name = p.advance().Lexeme
	case p.check(VARIABLE):
		dynamic = p.makeVar(p.advance())
	case p.matchOp("{"):
		dynamic = p.parseExpr()
		p.consumeOp("}", "expected '}' after dynamic member name")
	default:
		p.errorAtCurrent("expected member name after '->'")
		return object
	}

	if p.checkOp("(") {
		return &ast.MethodCallExpr{
			Pos:         object.NodePos(),
			Object:      object,
			Name:        name,
			DynamicName: dynamic,
			Args:        p.parseArgs(),
			NullSafe:    nullSafe,
		}
	}
	return &ast.PropertyFetchExpr{
		Pos:         object.NodePos(),
		Object:      object,
		Name:        name,
		DynamicName: dynamic,
		NullSafe:    nullSafe,
	}
}

// parseStaticAccess parses the tail of C::m(), C::$p, C::K and C::class
func (p *Parser) parseStaticAccess(class *ast.ClassRef) ast.Expr {
	switch {
	case p.check(VARIABLE):
		v := p.advance()
		if p.checkOp("(") {
			return &ast.StaticCallExpr{
				Pos:         class.Pos,
				Class:       class,
				DynamicName: p.makeVar(v),
				Args:        p.parseArgs(),
			}
		}
		return &ast.StaticPropExpr{Pos: class.Pos, Class: class, Name: strings.TrimPrefix(v.Lexeme, "$")}

	case p.check(NAME):
		name := p.advance().Lexeme
		if p.checkOp("(") {
			return &ast.StaticCallExpr{Pos: class.Pos, Class: class, Name: name, Args: p.parseArgs()}
		}
		return &ast.ClassConstExpr{Pos: class.Pos, Class: class, Name: name}

	case p.matchOp("{"):
		dynamic := p.parseExpr()
		p.consumeOp("}", "expected '}' after dynamic method name")
		return &ast.StaticCallExpr{Pos: class.Pos, Class: class, DynamicName: dynamic, Args: p.parseArgs()}
	}

	p.errorAtCurrent("expected member after '::'")
	return &ast.BadExpr{Pos: class.Pos, Message: "incomplete static access"}
}

func toClassRef(expr ast.Expr) *ast.ClassRef {
	if n, ok := expr.(*ast.NameExpr); ok {
		return &ast.ClassRef{Pos: n.Pos, Name: n.Name}
	}
	return &ast.ClassRef{Pos: expr.NodePos(), Dynamic: expr}
}

// parseArgs parses a call argument list including spreads and named
// arguments; names are dropped and arguments kept in source order.
func (p *Parser) parseArgs() []ast.Expr {
	p.consumeOp("(", "expected '(' before arguments")
	var args []ast.Expr

	for !p.checkOp(")") && !p.isAtEnd() {
		if p.checkOp("...") {
			start := p.advance()
			if p.checkOp(")") {
				// first-class callable syntax: strlen(...)
				args = append(args, &ast.SpreadExpr{Pos: p.makePos(start)})
				break
			}
			args = append(args, &ast.SpreadExpr{Pos: p.makePos(start), Value: p.parseExpr()})
		} else {
			if p.check(NAME) && p.checkNext(OPERATOR, ":") {
				p.advance()
				p.advance()
			}
			args = append(args, p.parseExpr())
		}
		if !p.matchOp(",") {
			break
		}
	}

	p.consumeOp(")", "expected ')' after arguments")
	return args
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()

	switch tok.Type {
	case VARIABLE:
		p.advance()
		return p.makeVar(tok)

	case INT, FLOAT:
		p.advance()
		kind := ast.IntLit
		if tok.Type == FLOAT {
			kind = ast.FloatLit
		}
		return &ast.LiteralExpr{Pos: p.makePos(tok), Kind: kind, Value: tok.Lexeme}

	case STRING:
		p.advance()
		return &ast.LiteralExpr{Pos: p.makePos(tok), Kind: ast.StringLit, Value: unquoteSingle(tok.Lexeme)}

	case TEMPLATE:
		p.advance()
		return p.parseTemplate(tok)

	case OPERATOR:
		switch tok.Lexeme {
		case "(":
			p.advance()
			expr := p.parseExpr()
			p.consumeOp(")", "expected ')'")
			return expr
		case "[":
			p.advance()
			items := p.parseArrayItems("]")
			p.consumeOp("]", "expected ']' to close array")
			return &ast.ArrayExpr{Pos: p.makePos(tok), Items: items}
		case "$":
			return p.parseDynamicVar()
		}

	case NAME:
		return p.parseNamePrimary()
	}

	p.errorAtCurrent("expected expression")
	return &ast.BadExpr{Pos: p.makePos(tok), Message: "expected expression"}
}

// parseDynamicVar parses $$name and ${expr}
func (p *Parser) parseDynamicVar() ast.Expr {
	start := p.advance()
	dv := &ast.DynamicVarExpr{Pos: p.makePos(start)}
	switch {
	case p.check(VARIABLE):
		dv.Name = p.makeVar(p.advance())
	case p.checkOp("$"):
		dv.Name = p.parseDynamicVar()
	case p.matchOp("{"):
		dv.Name = p.parseExpr()
		p.consumeOp("}", "expected '}' after variable variable name")
	default:
		p.errorAtCurrent("expected variable name after '$'")
		dv.Name = &ast.BadExpr{Pos: dv.Pos, Message: "missing variable name"}
	}
	return dv
}

func (p *Parser) parseNamePrimary() ast.Expr {
	tok := p.peek()
	lower := strings.ToLower(tok.Lexeme)
	nextParen := p.checkNext(OPERATOR, "(")

	switch lower {
	case "true", "false":
		if !p.checkNext(OPERATOR, "::") {
			p.advance()
			return &ast.LiteralExpr{Pos: p.makePos(tok), Kind: ast.BoolLit, Value: lower}
		}
	case "null":
		if !p.checkNext(OPERATOR, "::") {
			p.advance()
			return &ast.LiteralExpr{Pos: p.makePos(tok), Kind: ast.NullLit, Value: lower}
		}
	case "array", "list":
		if nextParen {
			p.advance()
			p.advance()
			items := p.parseArrayItems(")")
			p.consumeOp(")", "expected ')' to close "+lower)
			return &ast.ArrayExpr{Pos: p.makePos(tok), Items: items, List: lower == "list"}
		}
	case "isset":
		if nextParen {
			p.advance()
			args := p.parseArgs()
			return &ast.IssetExpr{Pos: p.makePos(tok), Vars: args}
		}
	case "empty":
		if nextParen {
			p.advance()
			args := p.parseArgs()
			e := &ast.EmptyExpr{Pos: p.makePos(tok)}
			if len(args) > 0 {
				e.Value = args[0]
			}
			return e
		}
	case "exit", "die":
		p.advance()
		e := &ast.ExitExpr{Pos: p.makePos(tok)}
		if p.matchOp("(") {
			if !p.checkOp(")") {
				e.Value = p.parseExpr()
			}
			p.consumeOp(")", "expected ')' after exit status")
		}
		return e
	case "function", "fn":
		return p.parseClosure(false)
	case "static":
		if p.checkNext(NAME, "function") || p.checkNext(NAME, "fn") {
			p.advance()
			return p.parseClosure(true)
		}
	}

	p.advance()
	return &ast.NameExpr{Pos: p.makePos(tok), Name: p.makeName(tok)}
}

// parseArrayItems parses array or list() elements up to close. Empty slots
// are kept as nil entries.
func (p *Parser) parseArrayItems(close string) []*ast.ArrayItem {
	var items []*ast.ArrayItem
	for !p.checkOp(close) && !p.isAtEnd() {
		if p.matchOp(",") {
			items = append(items, nil)
			continue
		}

		start := p.peek()
		item := &ast.ArrayItem{Pos: p.makePos(start)}
		if p.matchOp("...") {
			item.Unpack = true
			item.Value = p.parseExpr()
		} else if p.matchOp("&") {
			item.ByRef = true
			item.Value = p.parseExpr()
		} else {
			value := p.parseExpr()
			if p.matchOp("=>") {
				item.Key = value
				item.ByRef = p.matchOp("&")
				value = p.parseExpr()
			}
			item.Value = value
		}
		items = append(items, item)

		if !p.matchOp(",") {
			break
		}
	}
	return items
}

// parseClosure parses function (...) use (...) { } and fn (...) => expr
func (p *Parser) parseClosure(static bool) ast.Expr {
	start := p.advance()
	byRef := p.matchOp("&")

	if strings.EqualFold(start.Lexeme, "fn") {
		arrow := &ast.ArrowFuncExpr{Pos: p.makePos(start), Static: static}
		arrow.Params = p.parseParams()
		p.parseReturnType()
		p.consumeOp("=>", "expected '=>' in arrow function")
		arrow.Body = p.parsePrattExpr(precAssign)
		return arrow
	}

	closure := &ast.ClosureExpr{Pos: p.makePos(start), Static: static, ByRef: byRef}
	closure.Params = p.parseParams()
	if p.matchKeyword("use") {
		p.consumeOp("(", "expected '(' after 'use'")
		for !p.checkOp(")") && !p.isAtEnd() {
			ref := p.matchOp("&")
			tok := p.consume(VARIABLE, "expected variable in closure use list")
			if tok.Type == ILLEGAL {
				break
			}
			closure.Uses = append(closure.Uses, &ast.ClosureUse{
				Pos:   p.makePos(tok),
				Name:  strings.TrimPrefix(tok.Lexeme, "$"),
				ByRef: ref,
			})
			if !p.matchOp(",") {
				break
			}
		}
		p.consumeOp(")", "expected ')' after closure use list")
	}
	p.parseReturnType()
	closure.Body = p.parseBlock()
	return closure
}

// parseNew parses new C(...), new $cls, new (expr) and anonymous classes
func (p *Parser) parseNew() ast.Expr {
	start := p.advance()
	n := &ast.NewExpr{Pos: p.makePos(start)}

	if p.checkKeyword("class") {
		// anonymous class: arguments are kept, the body is not analyzed
		classTok := p.advance()
		if p.checkOp("(") {
			n.Args = p.parseArgs()
		}
		if p.matchKeyword("extends") {
			p.consume(NAME, "expected superclass name")
		}
		if p.matchKeyword("implements") {
			p.parseNameList("expected interface name")
		}
		p.parseClassBody()
		n.Class = &ast.ClassRef{
			Pos:     p.makePos(classTok),
			Dynamic: &ast.BadExpr{Pos: p.makePos(classTok), Message: "anonymous class"},
		}
		return n
	}

	n.Class = p.parseClassRef(true)
	if p.checkOp("(") {
		n.Args = p.parseArgs()
	}
	return n
}

// parseClassRef parses the class operand of new and instanceof. With
// forNew, a dynamic operand stops before call parentheses.
func (p *Parser) parseClassRef(forNew bool) *ast.ClassRef {
	tok := p.peek()
	if tok.Type == NAME {
		p.advance()
		return &ast.ClassRef{Pos: p.makePos(tok), Name: p.makeName(tok)}
	}

	if !forNew {
		return &ast.ClassRef{Pos: p.makePos(tok), Dynamic: p.parseUnaryExpr()}
	}

	var expr ast.Expr
	if p.matchOp("(") {
		expr = p.parseExpr()
		p.consumeOp(")", "expected ')'")
	} else if p.checkOp("$") {
		expr = p.parseDynamicVar()
	} else if p.check(VARIABLE) {
		expr = p.makeVar(p.advance())
	} else {
		p.errorAtCurrent("expected class name after 'new'")
		return &ast.ClassRef{Pos: p.makePos(tok), Dynamic: &ast.BadExpr{Pos: p.makePos(tok), Message: "missing class"}}
	}

	// new $this->cls, new $map['k'], new $obj::$cls
	for {
		switch {
		case p.checkOp("->") || p.checkOp("?->"):
			nullSafe := p.advance().Lexeme == "?->"
			if p.check(NAME) {
				expr = &ast.PropertyFetchExpr{Pos: expr.NodePos(), Object: expr, Name: p.advance().Lexeme, NullSafe: nullSafe}
			} else if p.check(VARIABLE) {
				expr = &ast.PropertyFetchExpr{Pos: expr.NodePos(), Object: expr, DynamicName: p.makeVar(p.advance()), NullSafe: nullSafe}
			} else {
				p.errorAtCurrent("expected property name")
				return &ast.ClassRef{Pos: p.makePos(tok), Dynamic: expr}
			}
		case p.checkOp("::") && p.checkNext(VARIABLE, ""):
			p.advance()
			v := p.advance()
			expr = &ast.StaticPropExpr{Pos: expr.NodePos(), Class: toClassRef(expr), Name: strings.TrimPrefix(v.Lexeme, "$")}
		case p.checkOp("["):
			p.advance()
			index := &ast.IndexExpr{Pos: expr.NodePos(), Base: expr}
			if !p.checkOp("]") {
				index.Index = p.parseExpr()
			}
			p.consumeOp("]", "expected ']' after index")
			expr = index
		default:
			return &ast.ClassRef{Pos: p.makePos(tok), Dynamic: expr}
		}
	}
}
