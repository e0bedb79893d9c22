package semantic

import (
	"strings"

	"corvid/internal/ast"
)

type missKey struct {
	kind NameKind
	name string
}

// Resolver resolves names of one unit against the frozen Space. A nil
// result is the Unknown sentinel. Misses are remembered per (kind, name) so
// that a repeated unresolved name is reported once per unit.
type Resolver struct {
	space  *Space
	misses map[missKey]bool
}

func NewResolver(space *Space) *Resolver {
	return &Resolver{space: space, misses: make(map[missKey]bool)}
}

func (r *Resolver) Space() *Space {
	return r.space
}

// Function resolves a call target through the alias table
func (r *Resolver) Function(name *ast.Name, aliases *AliasTable) *Symbol {
	for _, fqn := range aliases.Candidates(FunctionName, name) {
		if sym, ok := r.space.Function(fqn); ok {
			return sym
		}
	}
	return nil
}

// Type resolves a class or interface name. self, static and parent are not
// handled here; they depend on the enclosing class.
func (r *Resolver) Type(name *ast.Name, aliases *AliasTable) *Symbol {
	return r.TypeRef(aliases.TypeRef(name))
}

// TypeRef resolves a reference recorded during collection
func (r *Resolver) TypeRef(ref TypeRef) *Symbol {
	for _, fqn := range ref.Candidates {
		if sym, ok := r.space.Type(fqn); ok {
			return sym
		}
	}
	return nil
}

// Constant resolves a constant identifier. The namespace chain is tried
// first, then registration-form constants by raw name, then built-ins.
func (r *Resolver) Constant(name *ast.Name, aliases *AliasTable) (*Symbol, bool) {
	for _, fqn := range aliases.Candidates(ConstName, name) {
		if sym, ok := r.space.Constant(fqn); ok {
			return sym, true
		}
	}
	raw := strings.Join(name.Parts, `\`)
	if sym, ok := r.space.Define(raw); ok {
		return sym, true
	}
	if !name.Qualified() && r.space.IsBuiltinConstant(raw) {
		return nil, true
	}
	return nil, false
}

// FirstMiss records an unresolved name and reports whether it is the first
// miss for that key in this unit.
func (r *Resolver) FirstMiss(kind NameKind, name *ast.Name, aliases *AliasTable) bool {
	return r.firstMissKey(kind, missName(kind, name, aliases))
}

// SeedMiss marks a name as already reported.
func (r *Resolver) SeedMiss(kind NameKind, ref TypeRef) {
	if len(ref.Candidates) > 0 {
		r.misses[missKey{kind: kind, name: ref.Candidates[0]}] = true
	}
}

func (r *Resolver) firstMissKey(kind NameKind, name string) bool {
	key := missKey{kind: kind, name: name}
	if r.misses[key] {
		return false
	}
	r.misses[key] = true
	return true
}

func missName(kind NameKind, name *ast.Name, aliases *AliasTable) string {
	if candidates := aliases.Candidates(kind, name); len(candidates) > 0 {
		return candidates[0]
	}
	return name.String()
}

// Similar returns near-miss names for suggestions
func (r *Resolver) Similar(kind NameKind, name *ast.Name) []string {
	return r.space.similarNames(kind, name.Last())
}
