package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/errors"
)

func TestThisMethodCalls(t *testing.T) {
	source := `<?php
class Greeter {
    public function greet($name) { return "hi $name"; }
    public function run() {
        $this->greet();
        $this->greet('a', 'b');
        $this->missing();
        return $this->greet('a');
    }
}
`
	diags := analyzeSource(t, source)

	assert.Equal(t, []int{5, 6, 7}, lines(diags))
	assert.Equal(t, errors.ArityError, diags[0].Kind)
	assert.Equal(t, errors.ArityError, diags[1].Kind)
	assert.Equal(t, errors.UnresolvedSymbol, diags[2].Kind)
	assert.Equal(t, []string{"Greeter", "missing"}, diags[2].Names)
	for _, d := range diags {
		assert.Equal(t, errors.Future, d.Tier, "Method findings are not immediate")
	}
}

func TestVoidReturnUsed(t *testing.T) {
	source := `<?php
function log_it($m) { echo $m; }
function value() { return 1; }
log_it('x');
$a = log_it('y');
$b = value();
@log_it('z');
$c = var_dump($b);
echo $a, $c;
`
	diags := OfKind(analyzeSource(t, source), errors.VoidReturnUsed)

	assert.Equal(t, []int{5, 8}, lines(diags), "Calls in statement context may discard a missing value")
}

func TestUnresolvedFunctionReportedOnce(t *testing.T) {
	source := `<?php
missing();
missing();
strlenn('x');
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 2)
	assert.Equal(t, []int{2, 4}, lines(diags))
	assert.Equal(t, errors.Immediate, diags[0].Tier)
	require.NotEmpty(t, diags[1].Suggestions)
	assert.Contains(t, diags[1].Suggestions[0].Message, "'strlen'")
}

func TestIncludeDowngradesUnresolvedFunction(t *testing.T) {
	source := `<?php
include 'helpers.php';
helper();
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1)
	assert.Equal(t, errors.UnresolvedSymbol, diags[0].Kind)
	assert.Equal(t, errors.Future, diags[0].Tier, "The callee may come from the included file")
}

func TestFunctionImportAcrossUnits(t *testing.T) {
	result := analyzeSources(t, map[string]string{
		"a.php": `<?php
namespace App\Util;
function slugify($s) { return $s; }
`,
		"b.php": `<?php
namespace App;
use function App\Util\slugify;
echo slugify('x');
echo Util\slugify('y');
echo strlen('z');
`,
	})

	require.Len(t, result.Units, 2)
	assert.Equal(t, "a.php", result.Units[0].Path)
	assert.Empty(t, result.Units[0].Diagnostics)
	assert.Empty(t, result.Units[1].Diagnostics)
}

func TestFunctionArgumentCounts(t *testing.T) {
	source := `<?php
function two($a, $b) { return $a . $b; }
function many($first, ...$rest) { return [$first, $rest]; }
$args = [1, 2];
echo two(...$args);
echo many(1, 2, 3, 4);
echo many();
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1, "Unpacked and variadic calls have no upper bound")
	assert.Equal(t, errors.ArityError, diags[0].Kind)
	assert.Equal(t, errors.TooFew, diags[0].Arity)
	assert.Equal(t, 7, diags[0].Position.Line)
	assert.Equal(t, errors.Immediate, diags[0].Tier)
}

func TestConstantReferences(t *testing.T) {
	source := `<?php
namespace App;
const LOCAL = 1;
define('REGISTERED', 2);
echo PHP_EOL, LOCAL, REGISTERED, \App\LOCAL, __LINE__;
echo MISSING;
echo MISSING;
`
	diags := analyzeSource(t, source)

	require.Len(t, diags, 1)
	assert.Equal(t, errors.UnresolvedSymbol, diags[0].Kind)
	assert.Equal(t, errors.SubjectConstant, diags[0].Subject)
	assert.Equal(t, 6, diags[0].Position.Line)
	assert.Equal(t, errors.Future, diags[0].Tier)
}

func TestStaticAccess(t *testing.T) {
	source := `<?php
class Base {
    const VERSION = 1;
    public static $count = 0;
    public static function make($a, $b = null) { return new static(); }
}
class Child extends Base {
    public static function build() {
        return parent::make(1) ?? self::VERSION ?? static::$count;
    }
}
Base::make();
echo Base::VERSION, Base::$count, Base::class, Child::$missing;
echo Unknown::make();
echo Unknown::VALUE;
`
	diags := analyzeSource(t, source)

	assert.Equal(t, []int{12, 13, 14}, lines(diags))
	assert.Equal(t, errors.ArityError, diags[0].Kind)
	assert.Equal(t, errors.SubjectMethod, diags[0].Subject)
	assert.Equal(t, errors.Future, diags[0].Tier, "Static method arity is a future finding")
	assert.Equal(t, []string{"Child", "missing"}, diags[1].Names)
	assert.Equal(t, errors.SubjectClass, diags[2].Subject)
	assert.Equal(t, []string{"Unknown"}, diags[2].Names, "An unresolved class is reported once per unit")
}

func TestConstructorCalls(t *testing.T) {
	source := `<?php
class Point {
    public function __construct($x, $y) { }
}
class Secret {
    private function __construct() { }
    public static function create() { return new Secret(); }
}
new Point(1);
new Secret();
new Point(1, 2);
new Missing();
`
	diags := analyzeSource(t, source)

	assert.Equal(t, []int{9, 10, 12}, lines(diags))
	assert.Equal(t, errors.ArityError, diags[0].Kind)
	assert.Equal(t, errors.SubjectConstructor, diags[0].Subject)
	assert.Equal(t, errors.VisibilityViolation, diags[1].Kind)
	assert.Equal(t, errors.UnresolvedSymbol, diags[2].Kind)
}
