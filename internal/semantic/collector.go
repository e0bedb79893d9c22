package semantic

import (
	"context"
	"strings"

	"corvid/internal/ast"
	"corvid/internal/errors"
)

// LocalTable is the Phase 1 result for one unit. It holds no AST pointers,
// so it can be cached and merged without the unit's tree.
type LocalTable struct {
	Unit     string
	Hash     string
	Symbols  []Symbol // declarations in source order, duplicates kept
	Defines  []Symbol // registration-form constants in source order
	Globals  []string // names imported with `global` anywhere in the unit
	Includes bool     // the unit uses include or require
	Findings []errors.Diagnostic
}

type collector struct {
	table   *LocalTable
	aliases *AliasTable
	globals map[string]bool
}

// Collect runs the declaration pass over one unit. Declarations are taken
// from namespace top level, including conditional declarations nested in
// top-level control flow, but never from function or method bodies.
func Collect(ctx context.Context, unit *ast.Unit) (table *LocalTable, err error) {
	defer recoverUnit(unit.Path, &err)

	c := &collector{
		table:   &LocalTable{Unit: unit.Path},
		globals: make(map[string]bool),
	}
	for _, block := range unit.Blocks {
		if block == nil {
			malformed(unit.Pos, "nil namespace block")
		}
		c.aliases = BuildAliasTable(block)
		for _, item := range block.Items {
			checkContext(ctx)
			c.collectItem(item)
		}
	}
	c.scanExecutable(unit)

	return c.table, nil
}

func (c *collector) collectItem(item ast.Stmt) {
	switch node := item.(type) {
	case nil:
		malformed(ast.Position{Filename: c.table.Unit}, "nil statement at namespace level")
	case *ast.FunctionDecl:
		c.addFunction(node)
	case *ast.ClassDecl:
		c.addClass(node)
	case *ast.InterfaceDecl:
		c.addInterface(node)
	case *ast.ConstStmt:
		for _, decl := range node.Decls {
			if decl == nil {
				malformed(node.Pos, "nil constant declaration")
			}
			c.table.Symbols = append(c.table.Symbols, Symbol{
				Name:     qualify(c.aliases.Namespace, decl.Name.Value),
				Kind:     SymbolConstant,
				Unit:     c.table.Unit,
				Position: decl.Pos,
				Constant: &ConstantInfo{Value: FoldConstant(decl.Value)},
			})
		}
	case *ast.BlockStmt:
		for _, stmt := range node.Stmts {
			c.collectItem(stmt)
		}
	case *ast.IfStmt:
		c.collectNested(node.Then)
		for _, elseIf := range node.ElseIfs {
			c.collectNested(elseIf.Body)
		}
		c.collectNested(node.Else)
	case *ast.TryStmt:
		if node.Body != nil {
			c.collectItem(node.Body)
		}
	}
}

func (c *collector) collectNested(stmt ast.Stmt) {
	if stmt != nil {
		c.collectItem(stmt)
	}
}

func (c *collector) addFunction(fn *ast.FunctionDecl) {
	name := qualify(c.aliases.Namespace, fn.Name.Value)
	c.checkParamOrder(name, fn.Params)

	c.table.Symbols = append(c.table.Symbols, Symbol{
		Name:     name,
		Kind:     SymbolFunction,
		Unit:     c.table.Unit,
		Position: fn.Pos,
		Function: &FunctionInfo{
			Signature:    signatureOf(fn.Params),
			ReturnsValue: fn.Body == nil || ReturnsValue(fn.Body),
		},
	})
}

func (c *collector) addClass(cls *ast.ClassDecl) {
	name := qualify(c.aliases.Namespace, cls.Name.Value)
	info := &ClassInfo{Abstract: cls.Abstract}
	if cls.Extends != nil {
		info.Extends = []TypeRef{c.aliases.TypeRef(cls.Extends)}
	}
	for _, iface := range cls.Implements {
		info.Implements = append(info.Implements, c.aliases.TypeRef(iface))
	}
	c.addMembers(name, info, cls.Members)

	c.table.Symbols = append(c.table.Symbols, Symbol{
		Name:     name,
		Kind:     SymbolClass,
		Unit:     c.table.Unit,
		Position: cls.Pos,
		Class:    info,
	})
}

func (c *collector) addInterface(iface *ast.InterfaceDecl) {
	name := qualify(c.aliases.Namespace, iface.Name.Value)
	info := &ClassInfo{Interface: true, Abstract: true}
	for _, parent := range iface.Extends {
		info.Extends = append(info.Extends, c.aliases.TypeRef(parent))
	}
	c.addMembers(name, info, iface.Members)

	c.table.Symbols = append(c.table.Symbols, Symbol{
		Name:     name,
		Kind:     SymbolInterface,
		Unit:     c.table.Unit,
		Position: iface.Pos,
		Class:    info,
	})
}

func (c *collector) addMembers(className string, info *ClassInfo, members []ast.ClassMember) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.MethodDecl:
			c.checkParamOrder(className+"::"+m.Name.Value, m.Params)
			abstract := m.Modifiers.Abstract || info.Interface || m.Body == nil
			info.Methods = append(info.Methods, MethodInfo{
				Name:         m.Name.Value,
				Pos:          m.Pos,
				Visibility:   m.Modifiers.Visibility,
				Static:       m.Modifiers.Static,
				Abstract:     abstract,
				Signature:    signatureOf(m.Params),
				ReturnsValue: abstract || ReturnsValue(m.Body),
			})
		case *ast.PropertyDecl:
			for _, v := range m.Vars {
				info.Properties = append(info.Properties, PropertyInfo{
					Name:       v.Name,
					Pos:        v.Pos,
					Visibility: m.Modifiers.Visibility,
					Static:     m.Modifiers.Static,
				})
			}
		case *ast.ClassConstDecl:
			for _, decl := range m.Decls {
				info.Constants = append(info.Constants, ClassConstInfo{
					Name:       decl.Name.Value,
					Pos:        decl.Pos,
					Visibility: m.Visibility,
				})
			}
		case nil:
			malformed(ast.Position{Filename: c.table.Unit}, "nil member in %s", className)
		default:
			malformed(member.NodePos(), "unknown class member %T", member)
		}
	}
}

// checkParamOrder reports the first required parameter that follows a
// defaulted one. Variadic parameters may follow defaults.
func (c *collector) checkParamOrder(function string, params []*ast.Param) {
	var firstDefault *ast.Param
	for _, p := range params {
		if p == nil {
			malformed(ast.Position{Filename: c.table.Unit}, "nil parameter in %s", function)
		}
		if p.Default != nil {
			if firstDefault == nil {
				firstDefault = p
			}
			continue
		}
		if firstDefault != nil && !p.Variadic {
			c.table.Findings = append(c.table.Findings,
				errors.MisorderedDefaultParam(function, p.Name, firstDefault.Name, p.Pos))
			return
		}
	}
}

func signatureOf(params []*ast.Param) Signature {
	sig := Signature{Params: make([]ParamInfo, 0, len(params))}
	for _, p := range params {
		sig.Params = append(sig.Params, ParamInfo{
			Name:       p.Name,
			Pos:        p.Pos,
			HasDefault: p.Default != nil,
			ByRef:      p.ByRef,
			Variadic:   p.Variadic,
		})
	}
	return sig
}

// scanExecutable finds registrations, includes and global imports anywhere
// in the unit, including function and method bodies.
func (c *collector) scanExecutable(unit *ast.Unit) {
	ast.Inspect(unit, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			if sym, ok := c.registration(node); ok {
				c.table.Defines = append(c.table.Defines, sym)
			}
		case *ast.IncludeExpr:
			c.table.Includes = true
		case *ast.GlobalStmt:
			for _, v := range node.Vars {
				if v != nil && !c.globals[v.Name] {
					c.globals[v.Name] = true
					c.table.Globals = append(c.table.Globals, v.Name)
				}
			}
		}
		return true
	})
}

// registration recognizes define('NAME', value). A computed name is dynamic
// and ignored.
func (c *collector) registration(call *ast.CallExpr) (Symbol, bool) {
	if !isDefineCall(call) || len(call.Args) < 2 {
		return Symbol{}, false
	}
	lit, ok := call.Args[0].(*ast.LiteralExpr)
	if !ok || lit.Kind != ast.StringLit || lit.Value == "" {
		return Symbol{}, false
	}
	return Symbol{
		Name:     strings.TrimPrefix(lit.Value, `\`),
		Kind:     SymbolConstant,
		Unit:     c.table.Unit,
		Position: call.Pos,
		Constant: &ConstantInfo{Value: FoldConstant(call.Args[1]), Define: true},
	}, true
}

func isDefineCall(call *ast.CallExpr) bool {
	return isGlobalCall(call, "define")
}

// isGlobalCall matches an unqualified or root-qualified call by name
func isGlobalCall(call *ast.CallExpr, name string) bool {
	n := call.LiteralName()
	return n != nil && len(n.Parts) == 1 && strings.EqualFold(n.Parts[0], name)
}
