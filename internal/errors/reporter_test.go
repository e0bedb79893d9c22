package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/ast"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestErrorReporter(t *testing.T) {
	noColor(t)
	source := `<?php
function foo($one) {
    echo $hello;
}`

	reporter := NewErrorReporter("test1.php", source)

	d := UndefinedVariable("hello", ast.Position{Line: 3, Column: 10}, []string{"one"})
	d.Tier = Future
	formatted := reporter.FormatDiagnostic(d)

	assert.Contains(t, formatted, "warning["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable '$hello'")
	assert.Contains(t, formatted, "test1.php:3:10")
	assert.Contains(t, formatted, "did you mean '$one'")
	assert.Contains(t, formatted, "echo $hello;")
}

func TestImmediateRendersAsError(t *testing.T) {
	noColor(t)
	reporter := NewErrorReporter("t.php", "<?php nonexist();")

	d := Unresolved(SubjectFunction, "nonexist", ast.Position{Line: 1, Column: 7}, nil)
	d.Tier = Immediate
	formatted := reporter.FormatDiagnostic(d)

	assert.Contains(t, formatted, "error["+ErrorUnresolvedSymbol+"]")
	assert.Contains(t, formatted, "function 'nonexist' is not defined")
	assert.Contains(t, formatted, "help:")
}

func TestUnresolvedWithSuggestions(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	d := Unresolved(SubjectClass, "myclas", pos, SimilarNames("myclas", []string{"myclass", "other"}))
	assert.Equal(t, UnresolvedSymbol, d.Kind)
	assert.Equal(t, SubjectClass, d.Subject)
	assert.Equal(t, []string{"myclas"}, d.Names)
	require.Len(t, d.Suggestions, 1)
	assert.Contains(t, d.Suggestions[0].Message, "did you mean 'myclass'")

	d = Unresolved(SubjectFunction, "f", pos, []string{"g1", "g2"})
	require.Len(t, d.Suggestions, 1)
	assert.Contains(t, d.Suggestions[0].Message, "did you mean one of: 'g1', 'g2'")
}

func TestArityConstructors(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	few := TooFewArguments(SubjectFunction, "bar", 1, 0, pos)
	assert.Equal(t, ArityError, few.Kind)
	assert.Equal(t, TooFew, few.Arity)
	assert.Equal(t, ErrorTooFewArguments, few.Code)
	assert.Contains(t, few.Message, "at least 1 argument, got 0")

	many := TooManyArguments(SubjectMethod, "myclass::bip", 1, 3, pos)
	assert.Equal(t, TooMany, many.Arity)
	assert.Equal(t, ErrorTooManyArguments, many.Code)
	assert.Contains(t, many.Message, "at most 1 argument, got 3")
}

func TestRedefinitionNote(t *testing.T) {
	prev := ast.Position{Filename: "a.php", Line: 3, Column: 1}
	d := Redefinition(SubjectDefine, "MYSECOND", ast.Position{Filename: "a.php", Line: 4, Column: 1}, prev)
	assert.Equal(t, RedefinitionError, d.Kind)
	assert.Equal(t, SubjectDefine, d.Subject)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "previous definition at a.php:3:1", d.Notes[0])
}

func TestUnusedVariableWording(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	v := UnusedVariable("unused", pos, false)
	assert.Equal(t, SubjectVariable, v.Subject)
	assert.Contains(t, v.Message, "variable '$unused'")
	assert.NotEmpty(t, v.HelpText)

	p := UnusedVariable("foo1", pos, true)
	assert.Equal(t, SubjectParameter, p.Subject)
	assert.Contains(t, p.Message, "parameter '$foo1'")
}

func TestErrorMarkerCreation(t *testing.T) {
	noColor(t)
	reporter := NewErrorReporter("t.php", "")

	marker := reporter.createMarker("$variable = value;", 1, 9, Error)
	assert.Equal(t, "^^^^^^^^^", marker)

	marker = reporter.createMarker("echo $x;", 6, 2, Warning)
	assert.Equal(t, "     ^^", marker)

	// tabs are preserved
	marker = reporter.createMarker("\t\t$x;", 3, 2, Error)
	assert.Equal(t, "\t\t^^", marker)

	// wide runes widen the padding and the span
	marker = reporter.createMarker("'日本' . $x;", 6, 2, Error)
	assert.Equal(t, strings.Repeat(" ", 7)+"^^", marker)

	marker = reporter.createMarker("$s = '日本';", 7, 2, Error)
	assert.Equal(t, strings.Repeat(" ", 6)+"^^^^", marker)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "Balance", "xyz"}

	similar := SimilarNames("balace", candidates)
	assert.Equal(t, []string{"balance", "Balance"}, similar)

	similar = SimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)

	// exact matches are not suggestions
	assert.Empty(t, SimilarNames("total", []string{"total"}))
}

func TestSortOrdersAndDeduplicates(t *testing.T) {
	at := func(file string, line, col int) ast.Position {
		return ast.Position{Filename: file, Line: line, Column: col}
	}
	diags := []Diagnostic{
		UndefinedVariable("b", at("b.php", 1, 1), nil),
		UndefinedVariable("a", at("a.php", 2, 5), nil),
		Unresolved(SubjectFunction, "f", at("a.php", 2, 5), nil),
		UndefinedVariable("a", at("a.php", 2, 5), nil),
		UnusedVariable("z", at("a.php", 1, 9), false),
	}

	sorted := Sort(diags)
	require.Len(t, sorted, 4)
	assert.Equal(t, at("a.php", 1, 9), sorted[0].Position)
	assert.Equal(t, UnresolvedSymbol, sorted[1].Kind)
	assert.Equal(t, UndefinedVariableUse, sorted[2].Kind)
	assert.Equal(t, "b.php", sorted[3].Position.Filename)
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, ok := ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("NoSuchKind")
	assert.False(t, ok)

	text, err := Future.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "future", string(text))
}

func TestEnumTextRoundTrip(t *testing.T) {
	for s := SubjectNone; s <= SubjectParameter; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Subject
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "constant", SubjectDefine.Label())
	assert.Equal(t, "define", SubjectDefine.String())

	for _, tier := range []Tier{Unclassified, Immediate, Future} {
		text, _ := tier.MarshalText()
		var back Tier
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, tier, back)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
}
