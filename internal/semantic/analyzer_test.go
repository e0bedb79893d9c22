package semantic

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/errors"
	"corvid/internal/parser"
)

func parseInputs(t *testing.T, sources map[string]string) []Input {
	t.Helper()
	var inputs []Input
	for path, source := range sources {
		unit, parseErrors := parser.ParseSource(path, source)
		require.Empty(t, parseErrors, "Should have no parse errors in %s", path)
		inputs = append(inputs, Input{Unit: unit})
	}
	return inputs
}

func analyzeSourcesWith(t *testing.T, options Options, sources map[string]string) *Result {
	t.Helper()
	result, err := NewProgram(options, nil).Analyze(context.Background(), parseInputs(t, sources))
	require.NoError(t, err)
	for _, unit := range result.Units {
		require.NoError(t, unit.Err, "unit %s should not abort", unit.Path)
	}
	return result
}

func analyzeSources(t *testing.T, sources map[string]string) *Result {
	t.Helper()
	return analyzeSourcesWith(t, DefaultOptions(), sources)
}

func analyzeSource(t *testing.T, source string) []errors.Diagnostic {
	t.Helper()
	result := analyzeSources(t, map[string]string{"test.php": source})
	require.Len(t, result.Units, 1)
	return result.Units[0].Diagnostics
}

func findAt(diags []errors.Diagnostic, kind errors.Kind, line int) (errors.Diagnostic, bool) {
	for _, d := range diags {
		if d.Kind == kind && d.Position.Line == line {
			return d, true
		}
	}
	return errors.Diagnostic{}, false
}

func lines(diags []errors.Diagnostic) []int {
	out := make([]int, len(diags))
	for i, d := range diags {
		out[i] = d.Position.Line
	}
	return out
}

func TestRegistrationRedefinitionReportedOnce(t *testing.T) {
	source := `<?php
define('LIMIT', 1);
define('LIMIT', 2);
echo LIMIT;
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1, "Should report only the second registration")
	assert.Equal(t, errors.RedefinitionError, diags[0].Kind)
	assert.Equal(t, errors.SubjectDefine, diags[0].Subject)
	assert.Equal(t, errors.Future, diags[0].Tier)
	assert.Equal(t, 3, diags[0].Position.Line)
	assert.Contains(t, diags[0].Message, "constant 'LIMIT' is already defined")
}

func TestDeclarativeRedefinitionIsImmediate(t *testing.T) {
	source := `<?php
const A = 1;
const A = 2;
function f() { return 1; }
function f() { return 2; }
`
	diags := OfKind(analyzeSource(t, source), errors.RedefinitionError)

	require.Len(t, diags, 2)
	assert.Equal(t, []int{3, 5}, lines(diags))
	for _, d := range diags {
		assert.Equal(t, errors.Immediate, d.Tier)
	}
}

func TestArityWithTrailingDefaults(t *testing.T) {
	source := `<?php
function f($a, $b = 5, $c = 10) { return $a + $b + $c; }
f();
f(1);
f(1, 2, 3);
f(1, 2, 3, 4);
f(...$args);
`
	diags := OfKind(analyzeSource(t, source), errors.ArityError)

	require.Len(t, diags, 2, "Only the calls outside [1, 3] should be reported")
	assert.Equal(t, errors.TooFew, diags[0].Arity)
	assert.Equal(t, 3, diags[0].Position.Line)
	assert.Equal(t, errors.TooMany, diags[1].Arity)
	assert.Equal(t, 6, diags[1].Position.Line)
	for _, d := range diags {
		assert.Equal(t, errors.Immediate, d.Tier, "free function arity is immediate")
	}
}

func TestPrivateMemberAccess(t *testing.T) {
	source := `<?php
class Vault {
    private static $key = 2;
    private static function open() { return self::$key; }
    public static function peek() { return self::open(); }
}
class Thief extends Vault {
    public static function steal() { return parent::open(); }
}
echo Vault::peek();
echo Vault::open();
echo Thief::steal();
echo Vault::$key;
`
	diags := analyzeSource(t, source)

	violations := OfKind(diags, errors.VisibilityViolation)
	assert.Equal(t, []int{11, 13}, lines(violations),
		"Private members are reachable only from inside the hierarchy")
	for _, d := range violations {
		assert.Equal(t, errors.Future, d.Tier)
	}
	assert.Len(t, diags, 2)
}

func TestSelfReferencesSkipVisibility(t *testing.T) {
	source := `<?php
class Vault {
    private function inner() { return 1; }
    private static function open() { return 2; }
    private function __construct() {}
    public static function make() { return new self(); }
}
class Thief extends Vault {
    public function steal() {
        self::open();
        parent::open();
        static::open();
        return $this->inner();
    }
    public static function spawn() { return new parent(); }
}
echo Vault::make();
`
	diags := analyzeSource(t, source)

	assert.Empty(t, OfKind(diags, errors.VisibilityViolation),
		"self, parent, static and $this accesses are not visibility checked")
}

func TestProtectedMemberAccess(t *testing.T) {
	source := `<?php
class Base {
    protected static function hook() { return 1; }
}
class Derived extends Base {
    public static function run() { return static::hook() + parent::hook(); }
}
echo Derived::run();
echo Base::hook();
`
	violations := OfKind(analyzeSource(t, source), errors.VisibilityViolation)

	require.Len(t, violations, 1)
	assert.Equal(t, 9, violations[0].Position.Line)
	assert.Contains(t, violations[0].Message, "protected member 'Base::hook'")
}

func TestUnknownSuperclassReportedOnce(t *testing.T) {
	source := `<?php
class Child extends Missing {
    public function run() { return $this->helper(); }
}
$c = new Child(1, 2);
echo $c->run();
echo Child::CONSTANT;
$m = new Missing();
echo $m;
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1, "Nothing may be inferred from an unknown superclass")
	assert.Equal(t, errors.UnresolvedSymbol, diags[0].Kind)
	assert.Equal(t, errors.SubjectClass, diags[0].Subject)
	assert.Equal(t, []string{"Missing"}, diags[0].Names)
	assert.Equal(t, 2, diags[0].Position.Line)
}

func TestUndefinedAndUnusedReportedOnce(t *testing.T) {
	source := `<?php
function work() {
    echo $missing;
    echo $missing;
    $temp = 1;
    $temp = 2;
}
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 2)
	assert.Equal(t, errors.UndefinedVariableUse, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Position.Line)
	assert.Equal(t, errors.UnusedVariableDeclaration, diags[1].Kind)
	assert.Equal(t, 6, diags[1].Position.Line, "Unused is reported at the last binding")
}

func TestElementAssignmentIntoUnboundContainer(t *testing.T) {
	source := `<?php
function fill() {
    $items[] = 1;
    $items[] = 2;
    $items['k'] = 3;
    return $items;
}
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1)
	assert.Equal(t, errors.UndefinedVariableUse, diags[0].Kind)
	assert.Equal(t, []string{"items"}, diags[0].Names)
	assert.Equal(t, 3, diags[0].Position.Line)
}

func TestMisorderedDefaultParameter(t *testing.T) {
	source := `<?php
function bar($hey, $two = 5, $three) {
}
function ok($a, $b = 1, ...$rest) { return [$a, $b, $rest]; }
`
	diags := OfKind(analyzeSource(t, source), errors.MisorderedDefault)

	require.Len(t, diags, 1)
	assert.Equal(t, []string{"bar", "three", "two"}, diags[0].Names)
	assert.Equal(t, errors.Immediate, diags[0].Tier)
}

func TestAnalysisIsIdempotent(t *testing.T) {
	sources := map[string]string{
		"b.php": `<?php
function helper($x) { return $x; }
helper();
echo $undefined;
class K extends Unknown { }
`,
		"a.php": `<?php
function helper() { return 1; }
$unused = helper(1, 2);
`,
	}

	first := analyzeSources(t, sources)
	second := analyzeSources(t, sources)

	if diff := deep.Equal(first.Units, second.Units); diff != nil {
		t.Errorf("Repeated runs should produce identical output: %v", diff)
	}
	assert.Equal(t, "a.php", first.Units[0].Path, "Units are ordered by path")
	for _, unit := range first.Units {
		assert.True(t, slices.IsSortedFunc(unit.Diagnostics, errors.Compare), "%s output is ordered", unit.Path)
	}
}

func TestCrossUnitRedefinitionAttributedToLaterUnit(t *testing.T) {
	result := analyzeSources(t, map[string]string{
		"b.php": "<?php\nfunction helper() { return 2; }\necho helper();\n",
		"a.php": "<?php\nfunction helper() { return 1; }\n",
	})

	require.Len(t, result.Units, 2)
	assert.Empty(t, result.Units[0].Diagnostics, "The first declaration wins")
	redefs := OfKind(result.Units[1].Diagnostics, errors.RedefinitionError)
	require.Len(t, redefs, 1)
	assert.Equal(t, "b.php", redefs[0].Position.Filename)
	assert.Contains(t, redefs[0].Notes[0], "a.php:2")
}

func TestFixtureNamespacedProgram(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("testdata", "test1.php"))
	require.NoError(t, err)
	diags := analyzeSource(t, string(source))

	expected := []struct {
		kind errors.Kind
		line int
		tier errors.Tier
		name string
	}{
		{errors.RedefinitionError, 8, errors.Future, "MYSECOND"},
		{errors.UnusedVariableDeclaration, 21, errors.Future, "hey"},
		{errors.UndefinedVariableUse, 22, errors.Future, "baz"},
		{errors.UnresolvedSymbol, 37, errors.Future, "noclass"},
		{errors.UndefinedVariableUse, 44, errors.Future, "hello"},
		{errors.MisorderedDefault, 48, errors.Immediate, "myns\\bar"},
		{errors.UnresolvedSymbol, 60, errors.Immediate, "nonexist"},
		{errors.ArityError, 63, errors.Immediate, "myns\\bar"},
		{errors.ArityError, 67, errors.Immediate, "myns\\bar"},
		{errors.ArityError, 70, errors.Future, "myns\\myclass"},
		{errors.UnresolvedSymbol, 75, errors.Future, "myns\\myclass"},
		{errors.VisibilityViolation, 80, errors.Future, "myns\\myclass"},
		{errors.VisibilityViolation, 82, errors.Future, "myns\\myclass"},
		{errors.VisibilityViolation, 87, errors.Future, "myns\\myclass"},
		{errors.VisibilityViolation, 89, errors.Future, "myns\\myclass"},
		{errors.UnresolvedSymbol, 94, errors.Future, "MYTHIRD"},
		{errors.ArityError, 97, errors.Future, "myns\\myclass2"},
		{errors.UnresolvedSymbol, 103, errors.Future, "myns\\myclass"},
		{errors.ArityError, 106, errors.Immediate, "myns\\baz"},
		{errors.VoidReturnUsed, 106, errors.Future, "myns\\baz"},
		{errors.UnusedVariableDeclaration, 109, errors.Future, "unused"},
	}
	for _, want := range expected {
		d, ok := findAt(diags, want.kind, want.line)
		if !assert.True(t, ok, "Expected %s on line %d", want.kind, want.line) {
			continue
		}
		assert.Equal(t, want.tier, d.Tier, "%s on line %d", want.kind, want.line)
		assert.Equal(t, want.name, d.Names[0], "%s on line %d", want.kind, want.line)
	}

	headers := OfKind(diags, errors.UnresolvedSymbol)
	var subjects []errors.Subject
	for _, d := range headers {
		if d.Position.Line == 37 {
			subjects = append(subjects, d.Subject)
		}
	}
	assert.ElementsMatch(t, []errors.Subject{errors.SubjectClass, errors.SubjectInterface}, subjects)

	var immediate []int
	for _, d := range diags {
		if d.Tier == errors.Immediate {
			immediate = append(immediate, d.Position.Line)
		}
	}
	assert.Equal(t, []int{48, 60, 63, 67, 106}, immediate)

	_, found := findAt(diags, errors.UnresolvedSymbol, 92)
	assert.False(t, found, "define()'d constants resolve by raw name")
	_, found = findAt(diags, errors.ArityError, 65)
	assert.False(t, found, "bar accepts one to three arguments")
	_, found = findAt(diags, errors.UnresolvedSymbol, 100)
	assert.False(t, found, "class constant FOO exists")
}

func TestFixtureUseImportsAcrossNamespaces(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("testdata", "test2.php"))
	require.NoError(t, err)
	diags := analyzeSource(t, string(source))

	require.Len(t, diags, 1, "Imported class and inherited constants resolve")
	assert.Equal(t, errors.UnusedVariableDeclaration, diags[0].Kind)
	assert.Equal(t, 20, diags[0].Position.Line)
}
