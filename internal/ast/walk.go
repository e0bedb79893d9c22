package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(node) for each non-nil node; if f returns false the children of that
// node are skipped. Function, method and closure bodies are visited like
// any other child, so callers that track scopes should stop at those nodes
// and walk the bodies themselves.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}
	addExprs := func(exprs []Expr) {
		for _, e := range exprs {
			add(e)
		}
	}
	addStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			add(s)
		}
	}
	addParams := func(params []*Param) {
		for _, p := range params {
			add(p)
		}
	}

	switch n := n.(type) {
	case *Unit:
		for _, b := range n.Blocks {
			add(b)
		}
	case *NamespaceBlock:
		addStmts(n.Items)
	case *UseStmt:
		for _, c := range n.Clauses {
			add(c)
		}
	case *ConstStmt:
		for _, d := range n.Decls {
			add(d)
		}
	case *ConstDecl:
		add(n.Value)
	case *Param:
		add(n.Default)
	case *FunctionDecl:
		addParams(n.Params)
		add(n.Body)
	case *ClassDecl:
		for _, m := range n.Members {
			add(m)
		}
	case *InterfaceDecl:
		for _, m := range n.Members {
			add(m)
		}
	case *MethodDecl:
		addParams(n.Params)
		add(n.Body)
	case *PropertyDecl:
		for _, v := range n.Vars {
			add(v)
		}
	case *PropertyVar:
		add(n.Default)
	case *ClassConstDecl:
		for _, d := range n.Decls {
			add(d)
		}

	case *BlockStmt:
		addStmts(n.Stmts)
	case *ExprStmt:
		add(n.Expr)
	case *EchoStmt:
		addExprs(n.Exprs)
	case *ReturnStmt:
		add(n.Value)
	case *IfStmt:
		add(n.Cond, n.Then)
		for _, ei := range n.ElseIfs {
			add(ei)
		}
		add(n.Else)
	case *ElseIf:
		add(n.Cond, n.Body)
	case *WhileStmt:
		add(n.Cond, n.Body)
	case *DoWhileStmt:
		add(n.Body, n.Cond)
	case *ForStmt:
		addExprs(n.Init)
		addExprs(n.Cond)
		addExprs(n.Step)
		add(n.Body)
	case *ForeachStmt:
		add(n.Subject, n.Key, n.Value, n.Body)
	case *SwitchStmt:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c)
		}
	case *CaseClause:
		add(n.Value)
		addStmts(n.Body)
	case *JumpStmt:
		add(n.Depth)
	case *GlobalStmt:
		for _, v := range n.Vars {
			add(v)
		}
	case *StaticStmt:
		for _, v := range n.Vars {
			add(v)
		}
	case *StaticVar:
		add(n.Var, n.Default)
	case *UnsetStmt:
		addExprs(n.Targets)
	case *ThrowStmt:
		add(n.Value)
	case *TryStmt:
		add(n.Body)
		for _, c := range n.Catches {
			add(c)
		}
		add(n.Finally)
	case *CatchClause:
		add(n.Var, n.Body)

	case *DynamicVarExpr:
		add(n.Name)
	case *InterpolatedStringExpr:
		addExprs(n.Parts)
	case *ArrayExpr:
		for _, it := range n.Items {
			add(it)
		}
	case *ArrayItem:
		add(n.Key, n.Value)
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.Operand)
	case *AssignExpr:
		add(n.Target, n.Value)
	case *IndexExpr:
		add(n.Base, n.Index)
	case *PropertyFetchExpr:
		add(n.Object, n.DynamicName)
	case *MethodCallExpr:
		add(n.Object, n.DynamicName)
		addExprs(n.Args)
	case *StaticCallExpr:
		add(classRefExpr(n.Class), n.DynamicName)
		addExprs(n.Args)
	case *StaticPropExpr:
		add(classRefExpr(n.Class))
	case *ClassConstExpr:
		add(classRefExpr(n.Class))
	case *CallExpr:
		add(n.Callee)
		addExprs(n.Args)
	case *NewExpr:
		add(classRefExpr(n.Class))
		addExprs(n.Args)
	case *ClosureExpr:
		addParams(n.Params)
		add(n.Body)
	case *ArrowFuncExpr:
		addParams(n.Params)
		add(n.Body)
	case *TernaryExpr:
		add(n.Cond, n.Then, n.Else)
	case *IssetExpr:
		addExprs(n.Vars)
	case *EmptyExpr:
		add(n.Value)
	case *IncludeExpr:
		add(n.Path)
	case *InstanceofExpr:
		add(n.Value, classRefExpr(n.Class))
	case *CastExpr:
		add(n.Value)
	case *ExitExpr:
		add(n.Value)
	case *CloneExpr:
		add(n.Value)
	case *PrintExpr:
		add(n.Value)
	case *SpreadExpr:
		add(n.Value)
	case *YieldExpr:
		add(n.Key, n.Value)
	}
	return out
}

// classRefExpr returns the dynamic class operand, if any.
func classRefExpr(c *ClassRef) Node {
	if c == nil || c.Dynamic == nil {
		return nil
	}
	return c.Dynamic
}

// isNil catches both untyped nil and typed nil pointers stored in a Node.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *BlockStmt:
		return v == nil
	case *VarExpr:
		return v == nil
	case *Param:
		return v == nil
	case *ElseIf:
		return v == nil
	case *CaseClause:
		return v == nil
	case *CatchClause:
		return v == nil
	case *ArrayItem:
		return v == nil
	case *StaticVar:
		return v == nil
	case *NamespaceBlock:
		return v == nil
	case *UseClause:
		return v == nil
	case *ConstDecl:
		return v == nil
	case *PropertyVar:
		return v == nil
	case *Unit:
		return v == nil
	}
	return false
}
