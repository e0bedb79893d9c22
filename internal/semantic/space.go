package semantic

import (
	"cmp"
	"slices"

	"corvid/internal/errors"
	"corvid/internal/stdlib"
)

// Space is the program-wide symbol space. It is built once by Merge and is
// read-only afterwards, so Phase 2 workers share it without locking.
type Space struct {
	functions map[string]*Symbol
	types     map[string]*Symbol // classes and interfaces share one name space
	constants map[string]*Symbol // declarative constants by FQN
	defines   map[string]*Symbol // registration-form constants by raw name
	globals   map[string]bool

	builtinFunctions map[string]*Symbol
	builtinTypes     map[string]*Symbol

	redefinitions map[string][]errors.Diagnostic // by unit
	catalog       *stdlib.Catalog
}

// Merge combines local tables at the Phase 1 barrier. Tables are processed
// in path order and declarations in source order, so the first declaration
// wins and every later one is a redefinition attributed to its own unit.
func Merge(tables []*LocalTable, catalog *stdlib.Catalog) *Space {
	if catalog == nil {
		catalog = stdlib.Default()
	}
	s := &Space{
		functions:     make(map[string]*Symbol),
		types:         make(map[string]*Symbol),
		constants:     make(map[string]*Symbol),
		defines:       make(map[string]*Symbol),
		globals:       make(map[string]bool),
		redefinitions: make(map[string][]errors.Diagnostic),
		catalog:       catalog,
	}
	s.addBuiltins()

	sorted := slices.Clone(tables)
	slices.SortStableFunc(sorted, func(a, b *LocalTable) int { return cmp.Compare(a.Unit, b.Unit) })

	for _, table := range sorted {
		if table == nil {
			continue
		}
		for i := range table.Symbols {
			s.declare(&table.Symbols[i])
		}
		for i := range table.Defines {
			s.register(&table.Defines[i])
		}
		for _, name := range table.Globals {
			s.globals[name] = true
		}
	}
	return s
}

func (s *Space) addBuiltins() {
	s.builtinFunctions = make(map[string]*Symbol)
	for _, name := range s.catalog.FunctionNames() {
		def, _ := s.catalog.Function(name)
		params := make([]ParamInfo, 0, len(def.Parameters))
		for _, p := range def.Parameters {
			params = append(params, ParamInfo{Name: p.Name, HasDefault: p.Optional, ByRef: p.ByRef, Variadic: p.Variadic})
		}
		s.builtinFunctions[name] = &Symbol{
			Name:    name,
			Kind:    SymbolFunction,
			Builtin: true,
			Function: &FunctionInfo{
				Signature:    Signature{Params: params},
				ReturnsValue: !def.Void,
			},
		}
	}

	s.builtinTypes = make(map[string]*Symbol)
	for _, name := range s.catalog.ClassNames() {
		def, _ := s.catalog.Class(name)
		kind := SymbolClass
		if def.Interface {
			kind = SymbolInterface
		}
		s.builtinTypes[name] = &Symbol{
			Name:    name,
			Kind:    kind,
			Builtin: true,
			Class:   &ClassInfo{Interface: def.Interface},
		}
	}
}

func (s *Space) declare(sym *Symbol) {
	var table map[string]*Symbol
	subject := errors.SubjectFunction
	switch sym.Kind {
	case SymbolFunction:
		table = s.functions
	case SymbolClass:
		table, subject = s.types, errors.SubjectClass
	case SymbolInterface:
		table, subject = s.types, errors.SubjectInterface
	case SymbolConstant:
		table, subject = s.constants, errors.SubjectConstant
	default:
		return
	}

	if prev, exists := table[sym.Name]; exists {
		s.redefined(sym, subject, prev)
		return
	}
	table[sym.Name] = sym
}

func (s *Space) register(sym *Symbol) {
	if prev, exists := s.defines[sym.Name]; exists {
		s.redefined(sym, errors.SubjectDefine, prev)
		return
	}
	s.defines[sym.Name] = sym
}

func (s *Space) redefined(sym *Symbol, subject errors.Subject, prev *Symbol) {
	d := errors.Redefinition(subject, sym.Name, sym.Position, prev.Position)
	s.redefinitions[sym.Unit] = append(s.redefinitions[sym.Unit], d)
}

// Function looks up a function; built-ins live in the global namespace and
// are shadowed by user declarations of the same name.
func (s *Space) Function(fqn string) (*Symbol, bool) {
	if sym, ok := s.functions[fqn]; ok {
		return sym, true
	}
	sym, ok := s.builtinFunctions[fqn]
	return sym, ok
}

func (s *Space) Type(fqn string) (*Symbol, bool) {
	if sym, ok := s.types[fqn]; ok {
		return sym, true
	}
	sym, ok := s.builtinTypes[fqn]
	return sym, ok
}

// Constant looks up a declarative constant by FQN
func (s *Space) Constant(fqn string) (*Symbol, bool) {
	sym, ok := s.constants[fqn]
	return sym, ok
}

// Define looks up a registration-form constant by its raw name
func (s *Space) Define(name string) (*Symbol, bool) {
	sym, ok := s.defines[name]
	return sym, ok
}

// IsBuiltinConstant reports built-in and magic constants
func (s *Space) IsBuiltinConstant(name string) bool {
	return s.catalog.IsConstant(name)
}

// ImportedGlobal reports whether some function imports the top-level
// variable with a `global` statement.
func (s *Space) ImportedGlobal(name string) bool {
	return s.globals[name]
}

// Redefinitions returns the redefinition findings attributed to a unit
func (s *Space) Redefinitions(unit string) []errors.Diagnostic {
	return s.redefinitions[unit]
}

func (s *Space) Catalog() *stdlib.Catalog {
	return s.catalog
}

// Symbols lists user declarations sorted by kind and name.
func (s *Space) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.functions)+len(s.types)+len(s.constants)+len(s.defines))
	for _, table := range []map[string]*Symbol{s.constants, s.defines, s.functions, s.types} {
		for _, sym := range table {
			out = append(out, sym)
		}
	}
	slices.SortFunc(out, func(a, b *Symbol) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Unit, b.Unit),
		)
	})
	return out
}

// similarNames returns short names of a kind that are near misses for name.
func (s *Space) similarNames(kind NameKind, name string) []string {
	var candidates []string
	switch kind {
	case FunctionName:
		for fqn := range s.functions {
			candidates = append(candidates, shortName(fqn))
		}
		candidates = append(candidates, s.catalog.FunctionNames()...)
	case ConstName:
		for fqn := range s.constants {
			candidates = append(candidates, shortName(fqn))
		}
		for raw := range s.defines {
			candidates = append(candidates, raw)
		}
	default:
		for fqn := range s.types {
			candidates = append(candidates, shortName(fqn))
		}
	}
	slices.Sort(candidates)
	return errors.SimilarNames(name, slices.Compact(candidates))
}
