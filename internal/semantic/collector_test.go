package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/ast"
	"corvid/internal/parser"
)

func collectSource(t *testing.T, source string) *LocalTable {
	t.Helper()
	unit, parseErrors := parser.ParseSource("collect.php", source)
	require.Empty(t, parseErrors)
	table, err := Collect(context.Background(), unit)
	require.NoError(t, err)
	return table
}

func symbolNames(table *LocalTable) []string {
	var names []string
	for _, sym := range table.Symbols {
		names = append(names, sym.Name)
	}
	return names
}

func TestCollectTopLevelOnly(t *testing.T) {
	table := collectSource(t, `<?php
if (!function_exists('polyfill')) {
    function polyfill() { return 1; }
}
function outer() {
    function inner() { }
}
class Holder {
    public function method() { }
}
try {
    interface Maybe { }
} catch (Exception $e) {
}
`)

	assert.Equal(t, []string{"polyfill", "outer", "Holder", "Maybe"}, symbolNames(table),
		"Conditional declarations are collected, body declarations are not")
	assert.Equal(t, SymbolInterface, table.Symbols[3].Kind)
	assert.Equal(t, "collect.php", table.Symbols[0].Unit)
}

func TestCollectNamespacedDeclarations(t *testing.T) {
	table := collectSource(t, `<?php
namespace App\Models {
    use Core\Model;
    const TABLE = 'users';
    class User extends Model implements \JsonSerializable { }
}
namespace {
    function helper() { }
}
`)

	assert.Equal(t, []string{`App\Models\TABLE`, `App\Models\User`, "helper"}, symbolNames(table))

	user := table.Symbols[1]
	require.Len(t, user.Class.Extends, 1)
	assert.Equal(t, []string{`Core\Model`}, user.Class.Extends[0].Candidates)
	require.Len(t, user.Class.Implements, 1)
	assert.Equal(t, []string{"JsonSerializable"}, user.Class.Implements[0].Candidates)
	assert.Equal(t, "User", user.ShortName())
	assert.Equal(t, `App\Models`, user.Namespace())
}

func TestCollectRegistrations(t *testing.T) {
	table := collectSource(t, `<?php
define('TOP', 1 + 1);
function setup($name) {
    define('IN_FUNCTION', 'x');
    define($name, 1);
    \define('\ROOTED', true);
}
`)

	require.Len(t, table.Defines, 3, "A computed name is not a registration")
	assert.Equal(t, "TOP", table.Defines[0].Name)
	assert.Equal(t, ConstValue{Kind: ValueInt, Int: 2}, table.Defines[0].Constant.Value)
	assert.True(t, table.Defines[0].Constant.Define)
	assert.Equal(t, "IN_FUNCTION", table.Defines[1].Name)
	assert.Equal(t, "ROOTED", table.Defines[2].Name)
}

func TestCollectGlobalsAndIncludes(t *testing.T) {
	table := collectSource(t, `<?php
function a() { global $config, $db; }
function b() { global $config; require_once 'db.php'; }
`)

	assert.Equal(t, []string{"config", "db"}, table.Globals)
	assert.True(t, table.Includes)

	plain := collectSource(t, "<?php\necho 1;\n")
	assert.False(t, plain.Includes)
	assert.Empty(t, plain.Globals)
}

func TestCollectClassMembers(t *testing.T) {
	table := collectSource(t, `<?php
abstract class Shape {
    const SIDES = 0;
    protected static $count = 0, $total;
    abstract public function area();
    private function describe($prefix, $suffix = '') { echo $prefix; }
    public static function make(...$args) { return new static(); }
}
`)

	require.Len(t, table.Symbols, 1)
	info := table.Symbols[0].Class
	assert.True(t, info.Abstract)
	assert.Len(t, info.Constants, 1)
	require.Len(t, info.Properties, 2)
	assert.Equal(t, "total", info.Properties[1].Name)
	assert.True(t, info.Properties[1].Static)
	assert.Equal(t, ast.Protected, info.Properties[1].Visibility)

	area, ok := info.Method("AREA")
	require.True(t, ok)
	assert.True(t, area.Abstract)
	assert.True(t, area.ReturnsValue, "Abstract methods are assumed to return a value")

	describe, ok := info.Method("describe")
	require.True(t, ok)
	assert.Equal(t, ast.Private, describe.Visibility)
	assert.False(t, describe.ReturnsValue)
	assert.Equal(t, 1, describe.Signature.MinArity())
	assert.Equal(t, 2, describe.Signature.MaxArity())

	factory, ok := info.Method("make")
	require.True(t, ok)
	assert.True(t, factory.Static)
	assert.Equal(t, 0, factory.Signature.MinArity())
	assert.Equal(t, -1, factory.Signature.MaxArity())
}

func TestCollectMisorderedDefaults(t *testing.T) {
	table := collectSource(t, `<?php
function ok($a, $b = 1, ...$rest) { }
function bad($a = 1, $b, $c) { }
class K {
    public function m($x = null, $y) { }
}
`)

	require.Len(t, table.Findings, 2, "Only the first offending parameter is reported")
	assert.Equal(t, []string{"bad", "b", "a"}, table.Findings[0].Names)
	assert.Equal(t, []string{"K::m", "y", "x"}, table.Findings[1].Names)
}

func TestSignatureByRef(t *testing.T) {
	sig := Signature{Params: []ParamInfo{{Name: "a"}, {Name: "rest", ByRef: true, Variadic: true}}}
	assert.False(t, sig.ByRefAt(0))
	assert.True(t, sig.ByRefAt(1))
	assert.True(t, sig.ByRefAt(5), "Extra arguments bind to a variadic by-reference parameter")
	assert.False(t, Signature{}.ByRefAt(0))
}
