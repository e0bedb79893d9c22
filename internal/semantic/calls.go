package semantic

import (
	"corvid/internal/ast"
	"corvid/internal/errors"
)

// CallValidator checks statically resolvable call sites, class member
// accesses and constant references, and runs the header checks of every
// class and interface declared in the unit.
type CallValidator struct {
	uc        *UnitContext
	aliases   *AliasTable
	class     classScope
	discarded map[ast.Expr]bool // expressions evaluated in statement context
	diags     []errors.Diagnostic
}

func NewCallValidator(uc *UnitContext) *CallValidator {
	return &CallValidator{uc: uc, discarded: make(map[ast.Expr]bool)}
}

func (cv *CallValidator) Validate() []errors.Diagnostic {
	cv.diags = nil
	for _, block := range cv.uc.unit.Blocks {
		cv.aliases = cv.uc.aliasesFor(block)
		cv.walk(block, classScope{})
	}
	return cv.diags
}

func (cv *CallValidator) report(d errors.Diagnostic) {
	cv.diags = append(cv.diags, d)
}

func (cv *CallValidator) walk(node ast.Node, cs classScope) {
	prev := cv.class
	cv.class = cs
	ast.Inspect(node, cv.visit)
	cv.class = prev
}

func (cv *CallValidator) walkChildren(node ast.Node, cs classScope) {
	for _, child := range ast.Children(node) {
		cv.walk(child, cs)
	}
}

func (cv *CallValidator) visit(n ast.Node) bool {
	if _, ok := n.(ast.Stmt); ok {
		checkContext(cv.uc.ctx)
	}

	switch node := n.(type) {
	case *ast.ExprStmt:
		cv.discarded[unwrapSilence(node.Expr)] = true
	case *ast.ForStmt:
		for _, e := range node.Init {
			cv.discarded[unwrapSilence(e)] = true
		}
		for _, e := range node.Step {
			cv.discarded[unwrapSilence(e)] = true
		}

	case *ast.FunctionDecl:
		cv.walkChildren(node, classScope{})
		return false
	case *ast.ClassDecl:
		cv.declaration(node.Pos, node.Members)
		return false
	case *ast.InterfaceDecl:
		cv.declaration(node.Pos, node.Members)
		return false
	case *ast.ClosureExpr:
		cv.walkChildren(node, classScope{site: cv.class.site, instance: cv.class.instance && !node.Static})
		return false
	case *ast.ArrowFuncExpr:
		cv.walkChildren(node, classScope{site: cv.class.site, instance: cv.class.instance && !node.Static})
		return false

	case *ast.CallExpr:
		if name := node.LiteralName(); name != nil {
			cv.call(node, name)
			for _, arg := range node.Args {
				cv.walk(arg, cv.class)
			}
			return false
		}
	case *ast.NewExpr:
		cv.newExpr(node)
	case *ast.StaticCallExpr:
		if cls, selfRef, ok := cv.staticClass(node.Class); ok && node.Name != "" {
			if m, found := cv.member(cls, MemberMethod, node.Name, node.Pos, !selfRef); found {
				callee := cls.Name + "::" + node.Name
				cv.arity(errors.SubjectMethod, callee, m.Method.Signature, node.Args, node.Pos)
				cv.void(node, errors.SubjectMethod, callee, m.Method.ReturnsValue, node.Pos)
			}
		}
	case *ast.StaticPropExpr:
		if cls, selfRef, ok := cv.staticClass(node.Class); ok {
			cv.member(cls, MemberProperty, node.Name, node.Pos, !selfRef)
		}
	case *ast.ClassConstExpr:
		if cls, selfRef, ok := cv.staticClass(node.Class); ok && node.Name != "class" {
			cv.member(cls, MemberConstant, node.Name, node.Pos, !selfRef)
		}
	case *ast.MethodCallExpr:
		cv.thisCall(node)
	case *ast.NameExpr:
		cv.constant(node)
	}
	return true
}

// unwrapSilence strips the @ operator
func unwrapSilence(e ast.Expr) ast.Expr {
	for {
		u, ok := e.(*ast.UnaryExpr)
		if !ok || u.Op != "@" {
			return e
		}
		e = u.Operand
	}
}

func (cv *CallValidator) declaration(pos ast.Position, members []ast.ClassMember) {
	site := cv.uc.classAt(pos)
	if site != nil {
		cv.diags = append(cv.diags, cv.uc.hierarchy.CheckDeclaration(site)...)
	}
	for _, member := range members {
		static := true
		if m, ok := member.(*ast.MethodDecl); ok {
			static = m.Modifiers.Static
		}
		cv.walk(member, classScope{site: site, instance: !static})
	}
}

func (cv *CallValidator) call(call *ast.CallExpr, name *ast.Name) {
	resolver := cv.uc.resolver
	fn := resolver.Function(name, cv.aliases)
	if fn == nil {
		if resolver.FirstMiss(FunctionName, name, cv.aliases) {
			cv.report(errors.Unresolved(errors.SubjectFunction, name.String(), call.Pos, resolver.Similar(FunctionName, name)))
		}
		return
	}
	cv.arity(errors.SubjectFunction, fn.Name, fn.Function.Signature, call.Args, call.Pos)
	cv.void(call, errors.SubjectFunction, fn.Name, fn.Function.ReturnsValue, call.Pos)
}

func (cv *CallValidator) newExpr(n *ast.NewExpr) {
	cls, selfRef, ok := cv.staticClass(n.Class)
	if !ok || cls.IsInterface() || cls.Builtin {
		return
	}
	ctor, res := cv.uc.hierarchy.Constructor(cls)
	if res != Found {
		return
	}
	if !selfRef && !cv.uc.hierarchy.Accessible(ctor, cv.class.site) {
		cv.report(errors.VisibilityViolationAt(ctor.Visibility, ctor.Owner.Name, ctor.Name, n.Pos))
	}
	cv.arity(errors.SubjectConstructor, cls.Name, ctor.Method.Signature, n.Args, n.Pos)
}

// staticClass resolves the class operand of new and ::, reporting an
// unresolved class name once per unit. selfRef is set for self, static
// and parent. ok is false when nothing further can be checked.
func (cv *CallValidator) staticClass(ref *ast.ClassRef) (cls *Symbol, selfRef bool, ok bool) {
	cls, selfRef, ok = cv.uc.classRef(ref, cv.aliases, cv.class)
	if !ok {
		return nil, selfRef, false
	}
	if cls == nil {
		if !selfRef && cv.uc.resolver.FirstMiss(ClassName, ref.Name, cv.aliases) {
			cv.report(errors.Unresolved(errors.SubjectClass, ref.Name.String(), ref.Pos, cv.uc.resolver.Similar(ClassName, ref.Name)))
		}
		return nil, selfRef, false
	}
	return cls, selfRef, true
}

// member looks up a class member. Visibility from the current class is
// applied only when checkAccess is set; self, static, parent and $this
// accesses skip it. found is true only for a Found member.
func (cv *CallValidator) member(cls *Symbol, kind MemberKind, name string, pos ast.Position, checkAccess bool) (Member, bool) {
	h := cv.uc.hierarchy
	m, res := h.Lookup(cls, kind, name)
	switch res {
	case NotFound:
		cv.report(errors.UnresolvedMember(kind.String(), cls.Name, name, pos, errors.SimilarNames(name, cv.memberNames(cls, kind))))
		return Member{}, false
	case Unknown:
		return Member{}, false
	}
	if checkAccess && !h.Accessible(m, cv.class.site) {
		cv.report(errors.VisibilityViolationAt(m.Visibility, m.Owner.Name, m.Name, pos))
	}
	return m, true
}

func (cv *CallValidator) memberNames(cls *Symbol, kind MemberKind) []string {
	var names []string
	add := func(c *Symbol) {
		if c.Class == nil {
			return
		}
		switch kind {
		case MemberMethod:
			for _, m := range c.Class.Methods {
				names = append(names, m.Name)
			}
		case MemberProperty:
			for _, p := range c.Class.Properties {
				names = append(names, p.Name)
			}
		case MemberConstant:
			for _, k := range c.Class.Constants {
				names = append(names, k.Name)
			}
		}
	}
	for _, c := range cv.uc.hierarchy.Chain(cls).Classes {
		add(c)
	}
	if kind != MemberProperty {
		for _, iface := range cv.uc.hierarchy.Interfaces(cls).Interfaces {
			add(iface)
		}
	}
	return names
}

// thisCall checks $this->m() inside an instance method
func (cv *CallValidator) thisCall(call *ast.MethodCallExpr) {
	if call.Name == "" || !isThis(call.Object) || !cv.class.instance || cv.class.site == nil {
		return
	}
	m, found := cv.member(cv.class.site, MemberMethod, call.Name, call.Pos, false)
	if !found {
		return
	}
	callee := m.Owner.Name + "::" + m.Name
	cv.arity(errors.SubjectMethod, callee, m.Method.Signature, call.Args, call.Pos)
	cv.void(call, errors.SubjectMethod, callee, m.Method.ReturnsValue, call.Pos)
}

func (cv *CallValidator) constant(n *ast.NameExpr) {
	if n.Name == nil {
		return
	}
	resolver := cv.uc.resolver
	if _, ok := resolver.Constant(n.Name, cv.aliases); ok {
		return
	}
	if resolver.FirstMiss(ConstName, n.Name, cv.aliases) {
		cv.report(errors.Unresolved(errors.SubjectConstant, n.Name.String(), n.Pos, resolver.Similar(ConstName, n.Name)))
	}
}

// arity checks the argument count; unpacked arguments disable the check
func (cv *CallValidator) arity(subject errors.Subject, callee string, sig Signature, args []ast.Expr, pos ast.Position) {
	for _, arg := range args {
		if _, ok := arg.(*ast.SpreadExpr); ok {
			return
		}
	}
	got := len(args)
	if minimum := sig.MinArity(); got < minimum {
		cv.report(errors.TooFewArguments(subject, callee, minimum, got, pos))
		return
	}
	if maximum := sig.MaxArity(); maximum >= 0 && got > maximum {
		cv.report(errors.TooManyArguments(subject, callee, maximum, got, pos))
	}
}

func (cv *CallValidator) void(call ast.Expr, subject errors.Subject, callee string, returnsValue bool, pos ast.Position) {
	if returnsValue || cv.discarded[call] {
		return
	}
	cv.report(errors.VoidReturn(subject, callee, pos))
}
