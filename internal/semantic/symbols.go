package semantic

import (
	"strings"

	"corvid/internal/ast"
)

type SymbolKind int

const (
	SymbolConstant SymbolKind = iota
	SymbolFunction
	SymbolClass
	SymbolInterface
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolConstant:
		return "constant"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// Symbol is a declared entity keyed by its fully qualified name. Exactly one
// of Function, Class and Constant is set, matching Kind.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Unit     string
	Position ast.Position
	Builtin  bool

	Function *FunctionInfo
	Class    *ClassInfo
	Constant *ConstantInfo
}

// ShortName returns the last segment of the fully qualified name.
func (s *Symbol) ShortName() string {
	return shortName(s.Name)
}

// Namespace returns everything before the last segment.
func (s *Symbol) Namespace() string {
	if i := strings.LastIndex(s.Name, `\`); i >= 0 {
		return s.Name[:i]
	}
	return ""
}

func (s *Symbol) IsInterface() bool {
	return s.Kind == SymbolInterface
}

type ParamInfo struct {
	Name       string
	Pos        ast.Position
	HasDefault bool
	ByRef      bool
	Variadic   bool
}

type Signature struct {
	Params []ParamInfo
}

// MinArity counts the parameters before the first defaulted or variadic one.
func (s Signature) MinArity() int {
	for i, p := range s.Params {
		if p.HasDefault || p.Variadic {
			return i
		}
	}
	return len(s.Params)
}

// MaxArity returns -1 when a variadic parameter removes the upper bound.
func (s Signature) MaxArity() int {
	for _, p := range s.Params {
		if p.Variadic {
			return -1
		}
	}
	return len(s.Params)
}

func (s Signature) ByRefAt(i int) bool {
	if i < len(s.Params) {
		return s.Params[i].ByRef
	}
	if n := len(s.Params); n > 0 && s.Params[n-1].Variadic {
		return s.Params[n-1].ByRef
	}
	return false
}

type FunctionInfo struct {
	Signature    Signature
	ReturnsValue bool
}

type ConstantInfo struct {
	Value  ConstValue
	Define bool // registration form
}

// TypeRef is a weak reference to a class or interface by name. Candidates
// holds the fully qualified names to try, in resolution order, computed with
// the alias table of the declaring namespace block.
type TypeRef struct {
	Written    string
	Candidates []string
	Pos        ast.Position
}

type ClassInfo struct {
	Interface  bool
	Abstract   bool
	Extends    []TypeRef // at most one for classes
	Implements []TypeRef
	Methods    []MethodInfo
	Properties []PropertyInfo
	Constants  []ClassConstInfo
}

type MethodInfo struct {
	Name         string
	Pos          ast.Position
	Visibility   ast.Visibility
	Static       bool
	Abstract     bool
	Signature    Signature
	ReturnsValue bool
}

type PropertyInfo struct {
	Name       string
	Pos        ast.Position
	Visibility ast.Visibility
	Static     bool
}

type ClassConstInfo struct {
	Name       string
	Pos        ast.Position
	Visibility ast.Visibility
}

// Method looks up a method; method names are case-insensitive.
func (c *ClassInfo) Method(name string) (MethodInfo, bool) {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return MethodInfo{}, false
}

func (c *ClassInfo) Property(name string) (PropertyInfo, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyInfo{}, false
}

func (c *ClassInfo) Constant(name string) (ClassConstInfo, bool) {
	for _, k := range c.Constants {
		if k.Name == name {
			return k, true
		}
	}
	return ClassConstInfo{}, false
}

func shortName(fqn string) string {
	if i := strings.LastIndex(fqn, `\`); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}
