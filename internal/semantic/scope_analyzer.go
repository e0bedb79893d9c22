package semantic

import (
	"slices"
	"strings"

	"corvid/internal/ast"
	"corvid/internal/errors"
	"corvid/internal/stdlib"
)

// VariableBinding follows one local name through Unbound, Bound and Used.
type VariableBinding struct {
	Name      string
	FirstBind ast.Position
	LastBind  ast.Position
	Bound     bool
	Read      bool
	Parameter bool
	Exempt    bool // never reported as unused

	reportedUndefined bool
	runCount          int // consecutive plain rebinds without a read
	runRegion         int
}

// Scope is one function, method or closure body, or the top-level code of
// a unit. Bindings are never shared between scopes; an arrow function looks
// up free variables in its parent instead.
type Scope struct {
	parent   *Scope
	arrow    bool
	topLevel bool
	this     bool
	dynamic  bool // $$name, extract(), include and friends
	region   int  // current branch or loop body; sibling arms never share one
	regions  int
	vars     map[string]*VariableBinding
	order    []*VariableBinding

	undefined []errors.Diagnostic
	redundant []errors.Diagnostic
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*VariableBinding)}
}

func (s *Scope) binding(name string) *VariableBinding {
	if b, ok := s.vars[name]; ok {
		return b
	}
	b := &VariableBinding{Name: name}
	s.vars[name] = b
	s.order = append(s.order, b)
	return b
}

// owner returns the scope that resolves a read of name
func (s *Scope) owner(name string) *Scope {
	for s.arrow && s.parent != nil {
		if b, ok := s.vars[name]; ok && b.Bound {
			return s
		}
		s = s.parent
	}
	return s
}

func (s *Scope) boundNames() []string {
	var names []string
	for _, b := range s.order {
		if b.Bound {
			names = append(names, b.Name)
		}
	}
	return names
}

// ScopeAnalyzer performs a single forward scan per body. Branch bodies are
// treated as possibly executed, so a bind inside an if counts for later
// reads.
type ScopeAnalyzer struct {
	uc      *UnitContext
	aliases *AliasTable
	class   classScope
	scope   *Scope
	diags   []errors.Diagnostic
}

func NewScopeAnalyzer(uc *UnitContext) *ScopeAnalyzer {
	return &ScopeAnalyzer{uc: uc}
}

// Analyze walks the unit's top-level code and every body in it.
func (sa *ScopeAnalyzer) Analyze() []errors.Diagnostic {
	sa.diags = nil
	top := newScope(nil)
	top.topLevel = true
	sa.scope = top

	for _, block := range sa.uc.unit.Blocks {
		sa.aliases = sa.uc.aliasesFor(block)
		sa.statements(block.Items)
	}
	sa.closeScope()
	return sa.diags
}

func (sa *ScopeAnalyzer) enter(s *Scope, cs classScope, walk func()) {
	prevScope, prevClass := sa.scope, sa.class
	sa.scope, sa.class = s, cs
	walk()
	sa.closeScope()
	sa.scope, sa.class = prevScope, prevClass
}

func (sa *ScopeAnalyzer) closeScope() {
	s := sa.scope
	if !s.dynamic {
		sa.diags = append(sa.diags, s.undefined...)
		for _, b := range s.order {
			if !b.Bound || b.Read || b.Exempt {
				continue
			}
			if s.topLevel && sa.uc.resolver.space.ImportedGlobal(b.Name) {
				continue
			}
			sa.diags = append(sa.diags, errors.UnusedVariable(b.Name, b.LastBind, b.Parameter))
		}
	}
	sa.diags = append(sa.diags, s.redundant...)
}

func (sa *ScopeAnalyzer) bindParams(params []*ast.Param, exempt bool) {
	for _, p := range params {
		if p == nil {
			malformed(sa.uc.unit.Pos, "nil parameter")
		}
		sa.expr(p.Default)
		b := sa.scope.binding(p.Name)
		b.Bound, b.Parameter = true, true
		b.FirstBind, b.LastBind = p.Pos, p.Pos
		b.Exempt = exempt || p.ByRef || !sa.uc.options.UnusedParameters
	}
}

func (sa *ScopeAnalyzer) function(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}
	sa.enter(newScope(nil), classScope{}, func() {
		sa.bindParams(fn.Params, false)
		sa.statements(fn.Body.Stmts)
	})
}

func (sa *ScopeAnalyzer) classBody(pos ast.Position, members []ast.ClassMember) {
	site := sa.uc.classAt(pos)
	for _, member := range members {
		switch m := member.(type) {
		case *ast.MethodDecl:
			if m.Body == nil {
				continue
			}
			s := newScope(nil)
			s.this = !m.Modifiers.Static
			sa.enter(s, classScope{site: site, instance: !m.Modifiers.Static}, func() {
				sa.bindParams(m.Params, true)
				sa.statements(m.Body.Stmts)
			})
		case *ast.PropertyDecl:
			for _, v := range m.Vars {
				sa.expr(v.Default)
			}
		case *ast.ClassConstDecl:
			for _, d := range m.Decls {
				sa.expr(d.Value)
			}
		}
	}
}

func (sa *ScopeAnalyzer) statements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		sa.statement(stmt)
	}
}

// nested walks a branch or loop body in a region of its own
func (sa *ScopeAnalyzer) nested(stmt ast.Stmt) {
	if stmt == nil {
		return
	}
	outer := sa.openRegion()
	sa.statement(stmt)
	sa.closeRegion(outer)
}

// openRegion starts a fresh region and returns the one to restore
func (sa *ScopeAnalyzer) openRegion() int {
	s := sa.scope
	outer := s.region
	s.regions++
	s.region = s.regions
	return outer
}

func (sa *ScopeAnalyzer) closeRegion(outer int) {
	sa.scope.region = outer
}

func (sa *ScopeAnalyzer) statement(stmt ast.Stmt) {
	checkContext(sa.uc.ctx)

	switch node := stmt.(type) {
	case nil:
		malformed(sa.uc.unit.Pos, "nil statement")

	case *ast.ExprStmt:
		required(node.Expr, node, "expression")
		sa.expr(node.Expr)

	case *ast.EchoStmt:
		for _, e := range node.Exprs {
			sa.expr(e)
		}

	case *ast.ReturnStmt:
		sa.expr(node.Value)

	case *ast.BlockStmt:
		if node != nil {
			sa.statements(node.Stmts)
		}

	case *ast.IfStmt:
		required(node.Cond, node, "condition")
		sa.expr(node.Cond)
		sa.nested(node.Then)
		for _, elseIf := range node.ElseIfs {
			sa.expr(elseIf.Cond)
			sa.nested(elseIf.Body)
		}
		sa.nested(node.Else)

	case *ast.WhileStmt:
		sa.expr(node.Cond)
		sa.nested(node.Body)

	case *ast.DoWhileStmt:
		sa.nested(node.Body)
		sa.expr(node.Cond)

	case *ast.ForStmt:
		sa.exprs(node.Init)
		sa.exprs(node.Cond)
		outer := sa.openRegion()
		if node.Body != nil {
			sa.statement(node.Body)
		}
		sa.exprs(node.Step)
		sa.closeRegion(outer)

	case *ast.ForeachStmt:
		required(node.Subject, node, "subject")
		sa.expr(node.Subject)
		outer := sa.openRegion()
		if node.Key != nil {
			sa.assign(node.Key, false)
		}
		required(node.Value, node, "value")
		if v, ok := node.Value.(*ast.VarExpr); ok && node.ByRef {
			sa.bind(v.Name, v.Pos, false)
			sa.scope.binding(v.Name).Exempt = true
		} else {
			sa.assign(node.Value, false)
		}
		if node.Body != nil {
			sa.statement(node.Body)
		}
		sa.closeRegion(outer)

	case *ast.SwitchStmt:
		sa.expr(node.Subject)
		for _, c := range node.Cases {
			sa.expr(c.Value)
			outer := sa.openRegion()
			sa.statements(c.Body)
			sa.closeRegion(outer)
		}

	case *ast.JumpStmt:
		sa.expr(node.Depth)

	case *ast.GlobalStmt:
		for _, v := range node.Vars {
			sa.bindExempt(v)
		}

	case *ast.StaticStmt:
		for _, sv := range node.Vars {
			sa.expr(sv.Default)
			sa.bindExempt(sv.Var)
		}

	case *ast.UnsetStmt:
		for _, target := range node.Targets {
			sa.quiet(target)
		}

	case *ast.ThrowStmt:
		sa.expr(node.Value)

	case *ast.TryStmt:
		sa.nested(node.Body)
		for _, c := range node.Catches {
			outer := sa.openRegion()
			if c.Var != nil {
				sa.bindExempt(c.Var)
			}
			sa.statement(c.Body)
			sa.closeRegion(outer)
		}
		sa.nested(node.Finally)

	case *ast.FunctionDecl:
		sa.function(node)

	case *ast.ClassDecl:
		sa.classBody(node.Pos, node.Members)

	case *ast.InterfaceDecl:
		sa.classBody(node.Pos, node.Members)

	case *ast.ConstStmt:
		for _, d := range node.Decls {
			sa.expr(d.Value)
		}

	case *ast.UseStmt, *ast.BadStmt:

	default:
		malformed(stmt.NodePos(), "unknown statement %T", stmt)
	}
}

func (sa *ScopeAnalyzer) exprs(list []ast.Expr) {
	for _, e := range list {
		sa.expr(e)
	}
}

// expr walks an expression evaluated for its value.
func (sa *ScopeAnalyzer) expr(e ast.Expr) {
	switch node := e.(type) {
	case nil:

	case *ast.VarExpr:
		sa.read(node.Name, node.Pos, false)

	case *ast.DynamicVarExpr:
		sa.scope.dynamic = true
		sa.expr(node.Name)

	case *ast.LiteralExpr, *ast.NameExpr, *ast.BadExpr:

	case *ast.InterpolatedStringExpr:
		sa.exprs(node.Parts)

	case *ast.ArrayExpr:
		for _, item := range node.Items {
			if item == nil {
				continue
			}
			sa.expr(item.Key)
			if item.ByRef {
				sa.reference(item.Value)
			} else {
				sa.expr(item.Value)
			}
		}

	case *ast.BinaryExpr:
		required(node.Left, node, "left operand")
		required(node.Right, node, "right operand")
		if node.Op == "??" {
			sa.quiet(node.Left)
		} else {
			sa.expr(node.Left)
		}
		sa.expr(node.Right)

	case *ast.UnaryExpr:
		required(node.Operand, node, "operand")
		if node.Op == "++" || node.Op == "--" {
			sa.update(node.Operand, false)
			return
		}
		sa.expr(node.Operand)

	case *ast.AssignExpr:
		sa.assignment(node)

	case *ast.IndexExpr:
		required(node.Base, node, "base")
		sa.expr(node.Base)
		sa.expr(node.Index)

	case *ast.PropertyFetchExpr:
		required(node.Object, node, "object")
		sa.expr(node.Object)
		sa.expr(node.DynamicName)

	case *ast.MethodCallExpr:
		required(node.Object, node, "object")
		sa.expr(node.Object)
		sa.expr(node.DynamicName)
		sa.args(node, node.Args)

	case *ast.StaticCallExpr:
		sa.classRef(node.Class)
		sa.expr(node.DynamicName)
		sa.args(node, node.Args)

	case *ast.StaticPropExpr:
		sa.classRef(node.Class)

	case *ast.ClassConstExpr:
		sa.classRef(node.Class)

	case *ast.CallExpr:
		required(node.Callee, node, "callee")
		if name := node.LiteralName(); name != nil {
			sa.callByName(node, name)
		} else {
			sa.expr(node.Callee)
		}
		sa.args(node, node.Args)

	case *ast.NewExpr:
		sa.classRef(node.Class)
		sa.args(node, node.Args)

	case *ast.ClosureExpr:
		sa.closure(node)

	case *ast.ArrowFuncExpr:
		sa.arrow(node)

	case *ast.TernaryExpr:
		sa.expr(node.Cond)
		sa.expr(node.Then)
		sa.expr(node.Else)

	case *ast.IssetExpr:
		for _, v := range node.Vars {
			sa.quiet(v)
		}

	case *ast.EmptyExpr:
		sa.quiet(node.Value)

	case *ast.IncludeExpr:
		// an included file shares this scope
		sa.scope.dynamic = true
		sa.expr(node.Path)

	case *ast.InstanceofExpr:
		sa.expr(node.Value)
		sa.classRef(node.Class)

	case *ast.CastExpr:
		sa.expr(node.Value)
	case *ast.ExitExpr:
		sa.expr(node.Value)
	case *ast.CloneExpr:
		sa.expr(node.Value)
	case *ast.PrintExpr:
		sa.expr(node.Value)
	case *ast.SpreadExpr:
		sa.expr(node.Value)

	case *ast.YieldExpr:
		sa.expr(node.Key)
		sa.expr(node.Value)

	default:
		malformed(e.NodePos(), "unknown expression %T", e)
	}
}

func (sa *ScopeAnalyzer) classRef(ref *ast.ClassRef) {
	if ref != nil {
		sa.expr(ref.Dynamic)
	}
}

// quiet reads without reporting undefinedness: isset, empty, unset and the
// left side of ??.
func (sa *ScopeAnalyzer) quiet(e ast.Expr) {
	switch node := e.(type) {
	case *ast.VarExpr:
		sa.read(node.Name, node.Pos, true)
	case *ast.IndexExpr:
		sa.quiet(node.Base)
		sa.expr(node.Index)
	case *ast.PropertyFetchExpr:
		sa.quiet(node.Object)
		sa.expr(node.DynamicName)
	case *ast.StaticPropExpr:
		sa.classRef(node.Class)
	default:
		sa.expr(e)
	}
}

func (sa *ScopeAnalyzer) read(name string, pos ast.Position, quiet bool) {
	s := sa.scope.owner(name)
	if b, ok := s.vars[name]; ok && b.Bound {
		b.Read = true
		b.runCount = 0
		return
	}
	if sa.implicit(s, name) || quiet {
		return
	}
	b := s.binding(name)
	if !b.reportedUndefined {
		b.reportedUndefined = true
		s.undefined = append(s.undefined, errors.UndefinedVariable(name, pos, errors.SimilarNames(name, s.boundNames())))
	}
}

// implicit reports names bound without any assignment in the scope
func (sa *ScopeAnalyzer) implicit(s *Scope, name string) bool {
	switch {
	case stdlib.IsSuperglobal(name):
		return true
	case name == "this":
		return s.this
	case s.topLevel:
		return slices.Contains(stdlib.ScriptGlobals, name)
	}
	return false
}

// bind records an assignment. Plain `$x = v` assignments count toward
// redundant rebind runs; a third plain bind in the same region without an
// intervening read is reported.
func (sa *ScopeAnalyzer) bind(name string, pos ast.Position, plain bool) {
	if stdlib.IsSuperglobal(name) || name == "this" {
		return
	}
	s := sa.scope
	b := s.binding(name)
	if !b.Bound {
		b.Bound = true
		b.FirstBind = pos
	}
	b.LastBind = pos

	if !plain {
		b.runCount = 0
		return
	}
	if b.runCount > 0 && b.runRegion == s.region {
		b.runCount++
	} else {
		b.runCount, b.runRegion = 1, s.region
	}
	if b.runCount == 3 {
		s.redundant = append(s.redundant, errors.RedundantAssignmentAt(name, pos))
	}
}

func (sa *ScopeAnalyzer) bindExempt(v *ast.VarExpr) {
	if v == nil {
		return
	}
	sa.bind(v.Name, v.Pos, false)
	if b, ok := sa.scope.vars[v.Name]; ok {
		b.Exempt = true
	}
}

func (sa *ScopeAnalyzer) assignment(node *ast.AssignExpr) {
	required(node.Target, node, "target")
	required(node.Value, node, "value")

	switch {
	case node.ByRef:
		sa.reference(node.Value)
		sa.assign(node.Target, false)
		if v, ok := node.Target.(*ast.VarExpr); ok {
			if b, ok := sa.scope.vars[v.Name]; ok {
				b.Exempt = true
			}
		}
	case node.Op == "=":
		sa.expr(node.Value)
		sa.assign(node.Target, true)
	case node.Op == "??=":
		sa.quiet(node.Target)
		sa.expr(node.Value)
		sa.update(node.Target, true)
	default:
		// compound assignment reads the target first
		sa.expr(node.Value)
		sa.update(node.Target, false)
	}
}

// assign binds an assignment target
func (sa *ScopeAnalyzer) assign(target ast.Expr, plain bool) {
	switch node := target.(type) {
	case *ast.VarExpr:
		sa.bind(node.Name, node.Pos, plain)
	case *ast.DynamicVarExpr:
		sa.scope.dynamic = true
		sa.expr(node.Name)
	case *ast.ArrayExpr:
		for _, item := range node.Items {
			if item == nil {
				continue
			}
			sa.expr(item.Key)
			sa.assign(item.Value, false)
		}
	case *ast.IndexExpr:
		sa.element(node, false)
	case *ast.PropertyFetchExpr:
		sa.expr(node.Object)
		sa.expr(node.DynamicName)
	case *ast.StaticPropExpr:
		sa.classRef(node.Class)
	default:
		sa.expr(target)
	}
}

// update reads then rebinds: compound assignment, ??=, ++ and --
func (sa *ScopeAnalyzer) update(target ast.Expr, quiet bool) {
	switch node := target.(type) {
	case *ast.VarExpr:
		if !quiet {
			sa.read(node.Name, node.Pos, false)
		}
		sa.bind(node.Name, node.Pos, false)
	case *ast.IndexExpr:
		sa.element(node, quiet)
	default:
		sa.assign(target, false)
	}
}

// element handles base[k] = v. The base must already be bound; an unbound
// base is reported once and is bound from then on. Writing an element
// counts as a use of the base.
func (sa *ScopeAnalyzer) element(target *ast.IndexExpr, quiet bool) {
	var indexes []ast.Expr
	var base ast.Expr = target
	for {
		idx, ok := base.(*ast.IndexExpr)
		if !ok {
			break
		}
		required(idx.Base, idx, "base")
		indexes = append(indexes, idx.Index)
		base = idx.Base
	}

	switch root := base.(type) {
	case *ast.VarExpr:
		sa.container(root, quiet)
	case *ast.PropertyFetchExpr, *ast.StaticPropExpr:
		sa.assign(root, false)
	default:
		sa.expr(root)
	}
	for i := len(indexes) - 1; i >= 0; i-- {
		sa.expr(indexes[i])
	}
}

func (sa *ScopeAnalyzer) container(v *ast.VarExpr, quiet bool) {
	s := sa.scope.owner(v.Name)
	if b, ok := s.vars[v.Name]; ok && b.Bound {
		b.Read = true
		b.runCount = 0
		return
	}
	if sa.implicit(s, v.Name) {
		return
	}
	if !quiet {
		sa.read(v.Name, v.Pos, false)
	}
	sa.bind(v.Name, v.Pos, false)
	sa.scope.binding(v.Name).Read = true
}

// reference handles an operand taken by reference, which creates the
// variable when it does not exist yet.
func (sa *ScopeAnalyzer) reference(e ast.Expr) {
	switch node := e.(type) {
	case *ast.VarExpr:
		sa.read(node.Name, node.Pos, true)
		sa.bind(node.Name, node.Pos, false)
	case *ast.IndexExpr:
		sa.element(node, true)
	case *ast.PropertyFetchExpr:
		sa.quiet(node.Object)
		sa.expr(node.DynamicName)
	default:
		sa.expr(e)
	}
}

func (sa *ScopeAnalyzer) args(call ast.Expr, args []ast.Expr) {
	sig, known := sa.uc.signature(call, sa.aliases, sa.class)
	for i, arg := range args {
		if arg == nil {
			malformed(call.NodePos(), "nil argument")
		}
		if _, spread := arg.(*ast.SpreadExpr); !spread && known && sig.ByRefAt(i) {
			sa.reference(arg)
			continue
		}
		sa.expr(arg)
	}
}

// callByName handles built-ins that inspect the local symbol table.
func (sa *ScopeAnalyzer) callByName(call *ast.CallExpr, name *ast.Name) {
	if len(name.Parts) != 1 {
		return
	}
	fn := strings.ToLower(name.Parts[0])
	switch {
	case fn == "compact":
		for _, arg := range call.Args {
			sa.compactNames(arg)
		}
	case fn == "func_get_args" || fn == "func_get_arg":
		for _, b := range sa.scope.order {
			if b.Parameter {
				b.Read = true
			}
		}
	case stdlib.TouchesLocalScope(fn):
		sa.scope.dynamic = true
	}
}

func (sa *ScopeAnalyzer) compactNames(arg ast.Expr) {
	switch node := arg.(type) {
	case *ast.LiteralExpr:
		if node.Kind == ast.StringLit {
			sa.read(node.Value, node.Pos, true)
		}
	case *ast.ArrayExpr:
		for _, item := range node.Items {
			if item != nil {
				sa.compactNames(item.Value)
			}
		}
	default:
		sa.scope.dynamic = true
	}
}

func (sa *ScopeAnalyzer) closure(node *ast.ClosureExpr) {
	for _, use := range node.Uses {
		if use.ByRef {
			sa.reference(&ast.VarExpr{Pos: use.Pos, Name: use.Name})
			sa.scope.binding(use.Name).Read = true
		} else {
			sa.read(use.Name, use.Pos, false)
		}
	}

	inner := newScope(nil)
	inner.this = !node.Static
	cs := classScope{site: sa.class.site, instance: sa.class.instance && !node.Static}
	sa.enter(inner, cs, func() {
		sa.bindParams(node.Params, false)
		for _, use := range node.Uses {
			b := inner.binding(use.Name)
			b.Bound = true
			b.FirstBind, b.LastBind = use.Pos, use.Pos
			b.Exempt = use.ByRef
		}
		if node.Body != nil {
			sa.statements(node.Body.Stmts)
		}
	})
}

func (sa *ScopeAnalyzer) arrow(node *ast.ArrowFuncExpr) {
	inner := newScope(sa.scope)
	inner.arrow = true
	inner.this = !node.Static && sa.scope.this
	cs := classScope{site: sa.class.site, instance: sa.class.instance && !node.Static}
	sa.enter(inner, cs, func() {
		sa.bindParams(node.Params, false)
		sa.expr(node.Body)
	})
}
