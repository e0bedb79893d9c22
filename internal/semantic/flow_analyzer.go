package semantic

import (
	"corvid/internal/ast"
)

// FlowAnalyzer decides whether a body can statically reach a return with a
// value. A yield also counts, since calling a generator produces a value.
// Nested functions, closures and classes are separate bodies.
type FlowAnalyzer struct {
	found bool
}

// ReturnsValue reports whether body reaches `return <expr>;` or a yield
func ReturnsValue(body *ast.BlockStmt) bool {
	if body == nil {
		return false
	}
	fa := &FlowAnalyzer{}
	fa.analyzeBlock(body.Stmts)
	return fa.found
}

// analyzeBlock stops at the first statement that unconditionally leaves the
// block; whatever follows is unreachable.
func (fa *FlowAnalyzer) analyzeBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if fa.found {
			return
		}
		fa.analyzeStatement(stmt)
		if terminates(stmt) {
			return
		}
	}
}

func (fa *FlowAnalyzer) analyzeBody(stmt ast.Stmt) {
	if stmt == nil {
		return
	}
	if block, ok := stmt.(*ast.BlockStmt); ok {
		fa.analyzeBlock(block.Stmts)
		return
	}
	fa.analyzeStatement(stmt)
}

func (fa *FlowAnalyzer) analyzeStatement(stmt ast.Stmt) {
	switch node := stmt.(type) {
	case *ast.ReturnStmt:
		if node.Value != nil {
			fa.found = true
		}

	case *ast.BlockStmt:
		fa.analyzeBlock(node.Stmts)

	case *ast.IfStmt:
		fa.scanExpr(node.Cond)
		fa.analyzeBody(node.Then)
		for _, elseIf := range node.ElseIfs {
			fa.scanExpr(elseIf.Cond)
			fa.analyzeBody(elseIf.Body)
		}
		fa.analyzeBody(node.Else)

	case *ast.WhileStmt:
		fa.scanExpr(node.Cond)
		fa.analyzeBody(node.Body)

	case *ast.DoWhileStmt:
		fa.analyzeBody(node.Body)
		fa.scanExpr(node.Cond)

	case *ast.ForStmt:
		for _, group := range [][]ast.Expr{node.Init, node.Cond, node.Step} {
			for _, e := range group {
				fa.scanExpr(e)
			}
		}
		fa.analyzeBody(node.Body)

	case *ast.ForeachStmt:
		fa.scanExpr(node.Subject)
		fa.analyzeBody(node.Body)

	case *ast.SwitchStmt:
		fa.scanExpr(node.Subject)
		for _, c := range node.Cases {
			fa.analyzeBlock(c.Body)
		}

	case *ast.TryStmt:
		if node.Body != nil {
			fa.analyzeBlock(node.Body.Stmts)
		}
		for _, c := range node.Catches {
			if c.Body != nil {
				fa.analyzeBlock(c.Body.Stmts)
			}
		}
		if node.Finally != nil {
			fa.analyzeBlock(node.Finally.Stmts)
		}

	case *ast.FunctionDecl, *ast.ClassDecl, *ast.InterfaceDecl:
		// separate bodies

	default:
		ast.Inspect(stmt, fa.visitExpr)
	}
}

func (fa *FlowAnalyzer) scanExpr(expr ast.Expr) {
	if expr != nil {
		ast.Inspect(expr, fa.visitExpr)
	}
}

func (fa *FlowAnalyzer) visitExpr(n ast.Node) bool {
	switch n.(type) {
	case *ast.YieldExpr:
		fa.found = true
		return false
	case *ast.ClosureExpr, *ast.ArrowFuncExpr:
		return false
	}
	return !fa.found
}

// terminates reports statements after which the rest of a block is dead.
func terminates(stmt ast.Stmt) bool {
	switch node := stmt.(type) {
	case *ast.ReturnStmt, *ast.ThrowStmt, *ast.JumpStmt:
		return true
	case *ast.ExprStmt:
		switch e := node.Expr.(type) {
		case *ast.ExitExpr:
			return true
		case *ast.UnaryExpr:
			return e.Op == "throw"
		}
	}
	return false
}
