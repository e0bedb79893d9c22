package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/ast"
)

func parseOK(t *testing.T, source string) *ast.Unit {
	t.Helper()
	unit, errs := ParseSource("test.php", source)
	require.Empty(t, errs, "Should have no parse errors")
	require.NotNil(t, unit)
	return unit
}

func firstItems(t *testing.T, unit *ast.Unit) []ast.Stmt {
	t.Helper()
	require.NotEmpty(t, unit.Blocks)
	return unit.Blocks[0].Items
}

func TestParseEmptyUnit(t *testing.T) {
	unit := parseOK(t, "<?php\n")
	require.Len(t, unit.Blocks, 1)
	assert.Nil(t, unit.Blocks[0].Name)
	assert.Empty(t, unit.Blocks[0].Items)
}

func TestParseInlineHTMLIsDropped(t *testing.T) {
	unit := parseOK(t, "<html><?php echo 1; ?><b>x</b><?= $y ?>")
	items := firstItems(t, unit)
	require.Len(t, items, 2)
	_, ok := items[0].(*ast.EchoStmt)
	assert.True(t, ok, "First item should be echo")
	echo, ok := items[1].(*ast.EchoStmt)
	require.True(t, ok, "Short echo tag should parse as echo")
	require.Len(t, echo.Exprs, 1)
	assert.Equal(t, "y", echo.Exprs[0].(*ast.VarExpr).Name)
}

func TestParseStatementNamespace(t *testing.T) {
	source := `<?php
namespace myns;

function foo() {}

namespace other\sub;

class bar {}
`
	unit := parseOK(t, source)
	require.Len(t, unit.Blocks, 2)
	assert.Equal(t, "myns", unit.Blocks[0].Namespace())
	assert.Equal(t, `other\sub`, unit.Blocks[1].Namespace())
	assert.False(t, unit.Blocks[0].Braced)

	fn, ok := unit.Blocks[0].Items[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "foo", fn.Name.Value)

	class, ok := unit.Blocks[1].Items[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "bar", class.Name.Value)
}

func TestParseBracedNamespaces(t *testing.T) {
	source := `<?php
namespace test_other {
class foo { const DEF1 = 5; }
}

namespace test_main {
use \test_other\foo;
class bar extends foo {}
}

namespace {
$x = 1;
}
?>`
	unit := parseOK(t, source)
	require.Len(t, unit.Blocks, 3)
	assert.Equal(t, "test_other", unit.Blocks[0].Namespace())
	assert.Equal(t, "test_main", unit.Blocks[1].Namespace())
	assert.Equal(t, "", unit.Blocks[2].Namespace())
	assert.True(t, unit.Blocks[2].Braced)

	use, ok := unit.Blocks[1].Items[0].(*ast.UseStmt)
	require.True(t, ok)
	require.Len(t, use.Clauses, 1)
	assert.Equal(t, []string{"test_other", "foo"}, use.Clauses[0].Name.Parts)
	assert.False(t, use.Clauses[0].Name.FullyQualified)
	assert.Equal(t, "foo", use.Clauses[0].AliasName())

	class := unit.Blocks[1].Items[1].(*ast.ClassDecl)
	require.NotNil(t, class.Extends)
	assert.Equal(t, "foo", class.Extends.String())
}

func TestParseUseForms(t *testing.T) {
	source := `<?php
use A\B as C, D\E;
use function a\b\f as g;
use const a\LIMIT;
use P\{Q, R as S};
`
	items := firstItems(t, parseOK(t, source))
	require.Len(t, items, 4)

	u0 := items[0].(*ast.UseStmt)
	assert.Equal(t, ast.UseClass, u0.Kind)
	require.Len(t, u0.Clauses, 2)
	assert.Equal(t, "C", u0.Clauses[0].AliasName())
	assert.Equal(t, "E", u0.Clauses[1].AliasName())

	u1 := items[1].(*ast.UseStmt)
	assert.Equal(t, ast.UseFunction, u1.Kind)
	assert.Equal(t, "g", u1.Clauses[0].AliasName())

	u2 := items[2].(*ast.UseStmt)
	assert.Equal(t, ast.UseConst, u2.Kind)
	assert.Equal(t, "LIMIT", u2.Clauses[0].AliasName())

	u3 := items[3].(*ast.UseStmt)
	require.Len(t, u3.Clauses, 2)
	assert.Equal(t, `P\Q`, u3.Clauses[0].Name.String())
	assert.Equal(t, "S", u3.Clauses[1].AliasName())
}

func TestParseFunctionParams(t *testing.T) {
	source := `<?php
function &bar(?Foo $hey, int $two = 5, &$out, ...$rest) {
    return $hey;
}`
	items := firstItems(t, parseOK(t, source))
	fn := items[0].(*ast.FunctionDecl)

	assert.True(t, fn.ByRef)
	require.Len(t, fn.Params, 4)
	assert.Equal(t, "hey", fn.Params[0].Name)
	require.NotNil(t, fn.Params[0].TypeHint)
	assert.Equal(t, "Foo", fn.Params[0].TypeHint.String())
	assert.NotNil(t, fn.Params[1].Default)
	assert.True(t, fn.Params[2].ByRef)
	assert.True(t, fn.Params[3].Variadic)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseClassMembers(t *testing.T) {
	source := `<?php
abstract class myclass extends base implements I1, \ns\I2 {
  const FOO = 1, BAR = 2;
  private const SECRET = 'x';
  static public $svar1 = 1;
  static private $svar3 = 1, $other;
  public ?int $typed = null;
  var $legacy;

  public function __construct($one) {}
  static protected function bip2($one) {}
  abstract protected function todo();
  function list() {}
}`
	items := firstItems(t, parseOK(t, source))
	class := items[0].(*ast.ClassDecl)

	assert.True(t, class.Abstract)
	assert.Equal(t, "base", class.Extends.String())
	require.Len(t, class.Implements, 2)
	assert.Equal(t, `\ns\I2`, class.Implements[1].String())
	require.Len(t, class.Members, 10)

	consts := class.Members[0].(*ast.ClassConstDecl)
	assert.Len(t, consts.Decls, 2)
	assert.Equal(t, ast.Private, class.Members[1].(*ast.ClassConstDecl).Visibility)

	svar1 := class.Members[2].(*ast.PropertyDecl)
	assert.True(t, svar1.Modifiers.Static)
	assert.Equal(t, ast.Public, svar1.Modifiers.Visibility)

	svar3 := class.Members[3].(*ast.PropertyDecl)
	assert.Equal(t, ast.Private, svar3.Modifiers.Visibility)
	require.Len(t, svar3.Vars, 2)
	assert.Equal(t, "other", svar3.Vars[1].Name)

	assert.Equal(t, "typed", class.Members[4].(*ast.PropertyDecl).Vars[0].Name)
	assert.Equal(t, "legacy", class.Members[5].(*ast.PropertyDecl).Vars[0].Name)

	bip2 := class.Members[7].(*ast.MethodDecl)
	assert.Equal(t, "bip2", bip2.Name.Value)
	assert.True(t, bip2.Modifiers.Static)
	assert.Equal(t, ast.Protected, bip2.Modifiers.Visibility)

	todo := class.Members[8].(*ast.MethodDecl)
	assert.True(t, todo.Modifiers.Abstract)
	assert.Nil(t, todo.Body)

	assert.Equal(t, "list", class.Members[9].(*ast.MethodDecl).Name.Value)
}

func TestParseInterface(t *testing.T) {
	source := `<?php
interface Shape extends Named, Sized {
  const SIDES = 0;
  public function area();
}`
	items := firstItems(t, parseOK(t, source))
	iface := items[0].(*ast.InterfaceDecl)
	assert.Equal(t, "Shape", iface.Name.Value)
	require.Len(t, iface.Extends, 2)
	require.Len(t, iface.Members, 2)
	area := iface.Members[1].(*ast.MethodDecl)
	assert.True(t, area.Modifiers.Abstract, "Interface methods are abstract")
}

func TestParseControlFlow(t *testing.T) {
	source := `<?php
if ($a) { echo 1; } elseif ($b) echo 2; else if ($c) { } else { echo 3; }
while ($i < 10) $i++;
do { $i--; } while ($i > 0);
for ($i = 0, $j = 1; $i < 10; $i++, $j++) {}
foreach ($items as $k => &$v) {}
foreach ($pairs as [$x, $y]) {}
switch ($a) { case 1: echo 1; break; default: echo 2; }
try { f(); } catch (A | B $e) { } finally { }
global $config;
static $count = 0, $other;
unset($a, $b[1]);
throw new Exception("x");
`
	items := firstItems(t, parseOK(t, source))
	require.Len(t, items, 12)

	ifStmt := items[0].(*ast.IfStmt)
	assert.Len(t, ifStmt.ElseIfs, 2)
	assert.NotNil(t, ifStmt.Else)

	forStmt := items[3].(*ast.ForStmt)
	assert.Len(t, forStmt.Init, 2)
	assert.Len(t, forStmt.Step, 2)

	fe := items[4].(*ast.ForeachStmt)
	assert.Equal(t, "k", fe.Key.(*ast.VarExpr).Name)
	assert.True(t, fe.ByRef)

	destructure := items[5].(*ast.ForeachStmt)
	arr, ok := destructure.Value.(*ast.ArrayExpr)
	require.True(t, ok)
	assert.True(t, arr.List)

	sw := items[6].(*ast.SwitchStmt)
	require.Len(t, sw.Cases, 2)
	assert.Nil(t, sw.Cases[1].Value)
	assert.Len(t, sw.Cases[0].Body, 2)

	try := items[7].(*ast.TryStmt)
	require.Len(t, try.Catches, 1)
	assert.Len(t, try.Catches[0].Types, 2)
	assert.Equal(t, "e", try.Catches[0].Var.Name)
	assert.NotNil(t, try.Finally)

	st := items[9].(*ast.StaticStmt)
	assert.Len(t, st.Vars, 2)
}

func TestParseAlternativeSyntax(t *testing.T) {
	source := `<?php if ($a): ?>
<p>yes</p>
<?php elseif ($b): ?>
<p>maybe</p>
<?php else: ?>
<p>no</p>
<?php endif; ?>
<?php foreach ($xs as $x): echo $x; endforeach; ?>
<?php while ($w): $w--; endwhile; ?>`
	items := firstItems(t, parseOK(t, source))
	require.Len(t, items, 3)

	ifStmt := items[0].(*ast.IfStmt)
	assert.Len(t, ifStmt.ElseIfs, 1)
	assert.NotNil(t, ifStmt.Else)

	fe := items[1].(*ast.ForeachStmt)
	assert.Len(t, fe.Body.(*ast.BlockStmt).Stmts, 1)
}

func TestParseErrorRecovery(t *testing.T) {
	source := `<?php
function broken( {
}
function ok() { return 1; }
$x = ;
echo $x;
`
	unit, errs := ParseSource("test.php", source)
	assert.NotEmpty(t, errs, "Should report parse errors")

	var names []string
	for _, item := range unit.Blocks[0].Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name.Value)
		}
	}
	assert.Contains(t, names, "ok", "Parser should recover and keep later declarations")

	last := unit.Blocks[0].Items[len(unit.Blocks[0].Items)-1]
	_, isEcho := last.(*ast.EchoStmt)
	assert.True(t, isEcho, "Trailing statement should survive recovery")
}

func TestParseErrorPositions(t *testing.T) {
	_, errs := ParseSource("bad.php", "<?php\n\nclass {\n")
	require.NotEmpty(t, errs)
	assert.Equal(t, "bad.php", errs[0].Position.Filename)
	assert.Equal(t, 3, errs[0].Position.Line)
}

func TestParseNamespaceRelativeName(t *testing.T) {
	source := `<?php
namespace a\b;
namespace\helper();
`
	unit := parseOK(t, source)
	stmt := unit.Blocks[0].Items[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.CallExpr)
	name := call.LiteralName()
	require.NotNil(t, name)
	assert.True(t, name.FullyQualified)
	assert.Equal(t, `\a\b\helper`, name.String())
}
