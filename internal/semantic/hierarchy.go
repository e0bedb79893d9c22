package semantic

import (
	"strings"

	"corvid/internal/ast"
	"corvid/internal/errors"
)

// Chain is a class followed by its resolved ancestors. It is Complete when
// it ends at a user class with no superclass. An unresolved superclass, an
// interface used as superclass, a built-in ancestor or a cycle leave it
// Incomplete.
type Chain struct {
	Classes  []*Symbol
	Complete bool
}

// InterfaceSet is the union of declared interfaces, their extends closure
// and, for Complete chains, the interfaces of every ancestor.
type InterfaceSet struct {
	Interfaces []*Symbol
	Complete   bool
}

type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberProperty
	MemberConstant
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberConstant:
		return "constant"
	default:
		return "method"
	}
}

type LookupResult int

const (
	Found LookupResult = iota
	NotFound
	Unknown
)

// Member is a resolved class member with its declaring class.
type Member struct {
	Kind       MemberKind
	Name       string
	Owner      *Symbol
	Visibility ast.Visibility
	Static     bool
	Method     *MethodInfo
}

// Hierarchy answers inheritance questions for one unit. Results are cached
// per instance; the underlying Space is never modified.
type Hierarchy struct {
	resolver *Resolver
	chains   map[*Symbol]*Chain
	sets     map[*Symbol]*InterfaceSet
}

func NewHierarchy(resolver *Resolver) *Hierarchy {
	return &Hierarchy{
		resolver: resolver,
		chains:   make(map[*Symbol]*Chain),
		sets:     make(map[*Symbol]*InterfaceSet),
	}
}

func (h *Hierarchy) Chain(cls *Symbol) *Chain {
	if chain, ok := h.chains[cls]; ok {
		return chain
	}

	chain := &Chain{Classes: []*Symbol{cls}}
	visited := map[*Symbol]bool{cls: true}
	current := cls
	for {
		if current.Builtin || current.Class == nil {
			break
		}
		if len(current.Class.Extends) == 0 || cls.IsInterface() {
			chain.Complete = true
			break
		}
		parent := h.resolver.TypeRef(current.Class.Extends[0])
		if parent == nil || parent.IsInterface() || visited[parent] {
			break
		}
		visited[parent] = true
		chain.Classes = append(chain.Classes, parent)
		current = parent
	}

	h.chains[cls] = chain
	return chain
}

// Parent returns the direct superclass when it resolves
func (h *Hierarchy) Parent(cls *Symbol) *Symbol {
	chain := h.Chain(cls)
	if len(chain.Classes) > 1 {
		return chain.Classes[1]
	}
	return nil
}

func (h *Hierarchy) Interfaces(cls *Symbol) *InterfaceSet {
	if set, ok := h.sets[cls]; ok {
		return set
	}
	set := &InterfaceSet{Complete: true}
	seen := make(map[*Symbol]bool)

	var add func(ref TypeRef)
	add = func(ref TypeRef) {
		iface := h.resolver.TypeRef(ref)
		if iface == nil || !iface.IsInterface() || iface.Builtin {
			// built-in interfaces have no member list to check against
			set.Complete = false
			return
		}
		if seen[iface] {
			return
		}
		seen[iface] = true
		set.Interfaces = append(set.Interfaces, iface)
		for _, parent := range iface.Class.Extends {
			add(parent)
		}
	}

	if cls.IsInterface() {
		seen[cls] = true
		for _, parent := range cls.Class.Extends {
			add(parent)
		}
		h.sets[cls] = set
		return set
	}

	chain := h.Chain(cls)
	classes := chain.Classes
	if !chain.Complete {
		classes = classes[:1]
		set.Complete = false
	}
	for _, c := range classes {
		if c.Class == nil {
			continue
		}
		for _, ref := range c.Class.Implements {
			add(ref)
		}
	}

	h.sets[cls] = set
	return set
}

// Lookup finds a member in the class, then its ancestors in chain order.
// Constants and methods are also searched in the interface set. A miss
// that completeness cannot rule out is Unknown.
func (h *Hierarchy) Lookup(cls *Symbol, kind MemberKind, name string) (Member, LookupResult) {
	chain := h.Chain(cls)
	for _, c := range chain.Classes {
		if m, ok := memberOf(c, kind, name); ok {
			return m, Found
		}
	}

	complete := chain.Complete
	if kind != MemberProperty {
		set := h.Interfaces(cls)
		for _, iface := range set.Interfaces {
			if m, ok := memberOf(iface, kind, name); ok {
				return m, Found
			}
		}
		complete = complete && set.Complete
	}
	if !complete {
		return Member{}, Unknown
	}
	return Member{}, NotFound
}

// Constructor finds __construct, or a method named after its class, in
// chain order.
func (h *Hierarchy) Constructor(cls *Symbol) (Member, LookupResult) {
	chain := h.Chain(cls)
	for _, c := range chain.Classes {
		if m, ok := memberOf(c, MemberMethod, "__construct"); ok {
			return m, Found
		}
		if m, ok := memberOf(c, MemberMethod, c.ShortName()); ok {
			return m, Found
		}
	}
	if !chain.Complete {
		return Member{}, Unknown
	}
	return Member{}, NotFound
}

func memberOf(c *Symbol, kind MemberKind, name string) (Member, bool) {
	if c.Class == nil {
		return Member{}, false
	}
	switch kind {
	case MemberMethod:
		if m, ok := c.Class.Method(name); ok {
			return Member{Kind: kind, Name: name, Owner: c, Visibility: m.Visibility, Static: m.Static, Method: &m}, true
		}
	case MemberProperty:
		if p, ok := c.Class.Property(name); ok {
			return Member{Kind: kind, Name: name, Owner: c, Visibility: p.Visibility, Static: p.Static}, true
		}
	case MemberConstant:
		if k, ok := c.Class.Constant(name); ok {
			return Member{Kind: kind, Name: name, Owner: c, Visibility: k.Visibility, Static: true}, true
		}
	}
	return Member{}, false
}

// IsSubclass reports whether ancestor is cls or appears in its chain
func (h *Hierarchy) IsSubclass(cls, ancestor *Symbol) bool {
	for _, c := range h.Chain(cls).Classes {
		if c == ancestor {
			return true
		}
	}
	return false
}

// Accessible applies member visibility from an access site. site is nil
// outside any class.
func (h *Hierarchy) Accessible(m Member, site *Symbol) bool {
	switch m.Visibility {
	case ast.Private:
		return site != nil && site == m.Owner
	case ast.Protected:
		return site != nil && h.IsSubclass(site, m.Owner)
	default:
		return true
	}
}

// CheckDeclaration reports unresolved header references and, for concrete
// classes, interface methods with no public instance implementation.
func (h *Hierarchy) CheckDeclaration(cls *Symbol) []errors.Diagnostic {
	if cls.Class == nil || cls.Builtin {
		return nil
	}
	var diags []errors.Diagnostic

	extendsSubject := errors.SubjectClass
	if cls.IsInterface() {
		extendsSubject = errors.SubjectInterface
	}
	for _, ref := range cls.Class.Extends {
		diags = append(diags, h.checkRef(ref, extendsSubject)...)
	}
	for _, ref := range cls.Class.Implements {
		diags = append(diags, h.checkRef(ref, errors.SubjectInterface)...)
	}

	if cls.IsInterface() || cls.Class.Abstract {
		return diags
	}
	chain := h.Chain(cls)
	set := h.Interfaces(cls)
	if !chain.Complete || !set.Complete {
		return diags
	}
	missing := make(map[string]bool)
	for _, iface := range set.Interfaces {
		for _, method := range iface.Class.Methods {
			key := strings.ToLower(method.Name)
			if missing[key] {
				continue
			}
			if !h.implements(chain, method.Name) {
				missing[key] = true
				diags = append(diags, errors.InterfaceContract(cls.Name, iface.Name, method.Name, cls.Position))
			}
		}
	}
	return diags
}

func (h *Hierarchy) checkRef(ref TypeRef, subject errors.Subject) []errors.Diagnostic {
	if h.resolver.TypeRef(ref) != nil {
		return nil
	}
	h.resolver.SeedMiss(ClassName, ref)
	return []errors.Diagnostic{errors.Unresolved(subject, ref.Written, ref.Pos, h.resolver.space.similarNames(ClassName, shortName(ref.Written)))}
}

func (h *Hierarchy) implements(chain *Chain, method string) bool {
	for _, c := range chain.Classes {
		if m, ok := c.Class.Method(method); ok {
			return m.Visibility == ast.Public && !m.Static && !m.Abstract
		}
	}
	return false
}
