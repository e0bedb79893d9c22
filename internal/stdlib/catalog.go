package stdlib

import (
	"slices"
	"sync"
)

// Catalog is a flattened, read-only index over the built-in extensions.
type Catalog struct {
	functions map[string]FunctionDefinition
	constants map[string]bool
	classes   map[string]ClassDefinition
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared catalog built from GetStandardModules.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog(GetStandardModules())
	})
	return defaultCatalog
}

// NewCatalog indexes the given modules.
func NewCatalog(modules map[string]*ModuleDefinition) *Catalog {
	c := &Catalog{
		functions: make(map[string]FunctionDefinition),
		constants: make(map[string]bool),
		classes:   make(map[string]ClassDefinition),
	}
	for _, m := range modules {
		for name, fn := range m.Functions {
			c.functions[name] = fn
		}
		for _, name := range m.Constants {
			c.constants[name] = true
		}
		for _, cls := range m.Classes {
			c.classes[cls.Name] = cls
		}
	}
	return c
}

// Function looks up a built-in function by global name.
func (c *Catalog) Function(name string) (FunctionDefinition, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

// IsConstant reports whether name is a built-in or magic constant.
func (c *Catalog) IsConstant(name string) bool {
	return c.constants[name] || IsMagicConstant(name)
}

// Class looks up a built-in class or interface.
func (c *Catalog) Class(name string) (ClassDefinition, bool) {
	cls, ok := c.classes[name]
	return cls, ok
}

// FunctionNames returns the sorted names of all built-in functions.
func (c *Catalog) FunctionNames() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ClassNames returns the sorted names of all built-in classes and interfaces.
func (c *Catalog) ClassNames() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var magicConstants = map[string]bool{
	"__LINE__":                 true,
	"__FILE__":                 true,
	"__DIR__":                  true,
	"__FUNCTION__":             true,
	"__CLASS__":                true,
	"__METHOD__":               true,
	"__NAMESPACE__":            true,
	"__TRAIT__":                true,
	"__COMPILER_HALT_OFFSET__": true,
}

// IsMagicConstant reports whether name is a compile-time magic constant.
func IsMagicConstant(name string) bool {
	return magicConstants[name]
}

var superglobals = map[string]bool{
	"GLOBALS":  true,
	"_SERVER":  true,
	"_GET":     true,
	"_POST":    true,
	"_FILES":   true,
	"_COOKIE":  true,
	"_SESSION": true,
	"_REQUEST": true,
	"_ENV":     true,
}

// IsSuperglobal reports whether a variable name (without "$") is bound in
// every scope.
func IsSuperglobal(name string) bool {
	return superglobals[name]
}

// ScriptGlobals are bound only in top-level code.
var ScriptGlobals = []string{"argc", "argv", "http_response_header"}

// dynamicScopeFunctions read or write the local symbol table by name.
var dynamicScopeFunctions = map[string]bool{
	"extract":          true,
	"get_defined_vars": true,
}

// TouchesLocalScope reports whether calling the named built-in makes the
// caller's variables unknowable.
func TouchesLocalScope(name string) bool {
	return dynamicScopeFunctions[name]
}
