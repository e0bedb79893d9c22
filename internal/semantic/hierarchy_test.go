package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/errors"
)

func buildSpace(t *testing.T, sources map[string]string) *Space {
	t.Helper()
	var tables []*LocalTable
	for _, in := range parseInputs(t, sources) {
		table, err := Collect(context.Background(), in.Unit)
		require.NoError(t, err)
		tables = append(tables, table)
	}
	return Merge(tables, nil)
}

func TestHierarchyLookup(t *testing.T) {
	space := buildSpace(t, map[string]string{"h.php": `<?php
interface Named { const PREFIX = 'n'; public function name(); }
class Base implements Named {
    protected $id;
    public function helper() { return 1; }
    public function name() { return 'base'; }
}
class Child extends Base { }
class Failure extends Exception { }
`})
	h := NewHierarchy(NewResolver(space))

	child, ok := space.Type("Child")
	require.True(t, ok)
	base, ok := space.Type("Base")
	require.True(t, ok)

	chain := h.Chain(child)
	assert.True(t, chain.Complete)
	require.Len(t, chain.Classes, 2)
	assert.Same(t, base, chain.Classes[1])
	assert.Same(t, base, h.Parent(child))

	m, res := h.Lookup(child, MemberMethod, "HELPER")
	assert.Equal(t, Found, res, "Method names are case-insensitive")
	assert.Same(t, base, m.Owner)

	_, res = h.Lookup(child, MemberProperty, "id")
	assert.Equal(t, Found, res)
	_, res = h.Lookup(child, MemberProperty, "ID")
	assert.Equal(t, NotFound, res, "Property names are case-sensitive")

	m, res = h.Lookup(child, MemberConstant, "PREFIX")
	assert.Equal(t, Found, res, "Constants are inherited from interfaces")
	assert.Equal(t, "Named", m.Owner.Name)

	set := h.Interfaces(child)
	assert.True(t, set.Complete)
	require.Len(t, set.Interfaces, 1)

	failure, ok := space.Type("Failure")
	require.True(t, ok)
	assert.False(t, h.Chain(failure).Complete, "Built-in ancestors are opaque")
	_, res = h.Lookup(failure, MemberMethod, "getMessage")
	assert.Equal(t, Unknown, res)
	_, res = h.Lookup(failure, MemberMethod, "anything")
	assert.Equal(t, Unknown, res)

	assert.True(t, h.IsSubclass(child, base))
	assert.False(t, h.IsSubclass(base, child))
}

func TestInheritanceCycleIsIncomplete(t *testing.T) {
	source := `<?php
class A extends B { public function run() { $this->nothing(); } }
class B extends A { }
class C extends A { }
`
	space := buildSpace(t, map[string]string{"cycle.php": source})
	h := NewHierarchy(NewResolver(space))
	a, _ := space.Type("A")
	c, _ := space.Type("C")

	assert.False(t, h.Chain(a).Complete)
	assert.Len(t, h.Chain(a).Classes, 2)
	assert.Len(t, h.Chain(c).Classes, 3)

	assert.Empty(t, analyzeSource(t, source), "Nothing can be proven inside a cycle")
}

func TestBuiltinParentIsOpaque(t *testing.T) {
	source := `<?php
class AppException extends Exception {
    public function describe() { return $this->getMessage() . $this->code; }
}
echo AppException::CODE;
AppException::create();
`
	assert.Empty(t, analyzeSource(t, source))
}

func TestInterfaceContract(t *testing.T) {
	source := `<?php
interface Shape { public function area(); public function name(); }
interface Solid extends Shape { public function volume(); }
class Cube implements Solid {
    public function area() { return 6; }
    public function volume() { return 1; }
}
abstract class Partial implements Shape { }
class Square implements Shape {
    public function area() { return 4; }
    public static function name() { return 'square'; }
}
class Base { public function name() { return 'b'; } public function area() { return 0; } }
class Derived extends Base implements Shape { }
`
	diags := analyzeSource(t, source)

	contract := OfKind(diags, errors.InterfaceContractViolation)
	assert.Equal(t, []int{4, 9}, lines(contract))
	assert.Equal(t, []string{"Cube", "Shape", "name"}, contract[0].Names)
	assert.Equal(t, []string{"Square", "Shape", "name"}, contract[1].Names, "A static method does not satisfy the contract")
	assert.Len(t, diags, 2)
}

func TestInterfaceContractSharedMethod(t *testing.T) {
	source := `<?php
interface Runner { public function run(); }
interface Task { public function RUN(); public function stop(); }
class Job implements Runner, Task { }
`
	contract := OfKind(analyzeSource(t, source), errors.InterfaceContractViolation)

	require.Len(t, contract, 2, "A method required by several interfaces is reported once")
	assert.Equal(t, []string{"Job", "Runner", "run"}, contract[0].Names)
	assert.Equal(t, []string{"Job", "Task", "stop"}, contract[1].Names)
}

func TestUnknownInterfaceSkipsContract(t *testing.T) {
	source := `<?php
interface Shape { public function area(); }
class Widget implements Shape, Renderable { }
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1)
	assert.Equal(t, errors.UnresolvedSymbol, diags[0].Kind)
	assert.Equal(t, errors.SubjectInterface, diags[0].Subject)
	assert.Equal(t, []string{"Renderable"}, diags[0].Names)
}
