package semantic

import (
	"context"

	"corvid/internal/ast"
)

// UnitContext is what the Phase 2 walkers of one unit share: the frozen
// Space through a per-unit resolver and hierarchy, and the unit's own
// declarations keyed by position.
type UnitContext struct {
	ctx       context.Context
	unit      *ast.Unit
	table     *LocalTable
	resolver  *Resolver
	hierarchy *Hierarchy
	declared  map[ast.Position]*Symbol
	aliases   map[*ast.NamespaceBlock]*AliasTable
	options   Options
}

// NewUnitContext prepares Phase 2 state for a unit
func NewUnitContext(ctx context.Context, unit *ast.Unit, table *LocalTable, space *Space, options Options) *UnitContext {
	resolver := NewResolver(space)
	uc := &UnitContext{
		ctx:       ctx,
		unit:      unit,
		table:     table,
		resolver:  resolver,
		hierarchy: NewHierarchy(resolver),
		declared:  make(map[ast.Position]*Symbol),
		aliases:   make(map[*ast.NamespaceBlock]*AliasTable),
		options:   options,
	}
	for i := range table.Symbols {
		sym := &table.Symbols[i]
		if sym.Kind == SymbolClass || sym.Kind == SymbolInterface {
			uc.declared[sym.Position] = uc.canonical(sym)
		}
	}
	return uc
}

// canonical prefers the merged symbol so pointer identity holds across the
// hierarchy; a redefined declaration keeps its local copy.
func (uc *UnitContext) canonical(sym *Symbol) *Symbol {
	if merged, ok := uc.resolver.space.Type(sym.Name); ok && merged.Unit == sym.Unit && merged.Position == sym.Position {
		return merged
	}
	return sym
}

func (uc *UnitContext) aliasesFor(block *ast.NamespaceBlock) *AliasTable {
	if table, ok := uc.aliases[block]; ok {
		return table
	}
	table := BuildAliasTable(block)
	uc.aliases[block] = table
	return table
}

// classAt returns the symbol collected for a class or interface declaration
func (uc *UnitContext) classAt(pos ast.Position) *Symbol {
	return uc.declared[pos]
}

// classScope describes the class a walker is inside of
type classScope struct {
	site     *Symbol // nil outside any class
	instance bool    // $this is available
}

// classRef resolves the class operand of new, :: and instanceof. self and
// static resolve to the enclosing class, parent to its superclass. A nil
// symbol is Unknown; ok is false when the operand is dynamic or a self
// reference that cannot be resolved, which is never reported.
func (uc *UnitContext) classRef(ref *ast.ClassRef, aliases *AliasTable, cs classScope) (sym *Symbol, selfRef bool, ok bool) {
	if ref == nil || ref.Dynamic != nil || ref.Name == nil {
		return nil, false, false
	}
	if ref.IsSpecial() {
		if cs.site == nil {
			return nil, true, false
		}
		if ref.Name.Parts[0] == "parent" {
			parent := uc.hierarchy.Parent(cs.site)
			return parent, true, parent != nil
		}
		return cs.site, true, true
	}
	return uc.resolver.Type(ref.Name, aliases), false, true
}

// signature returns the declared parameters of a call target when it is
// statically known.
func (uc *UnitContext) signature(call ast.Expr, aliases *AliasTable, cs classScope) (Signature, bool) {
	switch c := call.(type) {
	case *ast.CallExpr:
		if name := c.LiteralName(); name != nil {
			if fn := uc.resolver.Function(name, aliases); fn != nil {
				return fn.Function.Signature, true
			}
		}
	case *ast.StaticCallExpr:
		if c.Name == "" {
			return Signature{}, false
		}
		if cls, _, ok := uc.classRef(c.Class, aliases, cs); ok && cls != nil {
			if m, res := uc.hierarchy.Lookup(cls, MemberMethod, c.Name); res == Found {
				return m.Method.Signature, true
			}
		}
	case *ast.MethodCallExpr:
		if c.Name == "" || !isThis(c.Object) || !cs.instance || cs.site == nil {
			return Signature{}, false
		}
		if m, res := uc.hierarchy.Lookup(cs.site, MemberMethod, c.Name); res == Found {
			return m.Method.Signature, true
		}
	case *ast.NewExpr:
		if cls, _, ok := uc.classRef(c.Class, aliases, cs); ok && cls != nil && !cls.IsInterface() {
			if m, res := uc.hierarchy.Constructor(cls); res == Found {
				return m.Method.Signature, true
			}
		}
	}
	return Signature{}, false
}

func isThis(e ast.Expr) bool {
	v, ok := e.(*ast.VarExpr)
	return ok && v.Name == "this"
}
