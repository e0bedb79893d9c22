package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/ast"
	"corvid/internal/parser"
)

func aliasTableFor(t *testing.T, source string) *AliasTable {
	t.Helper()
	unit, parseErrors := parser.ParseSource("imports.php", source)
	require.Empty(t, parseErrors)
	require.NotEmpty(t, unit.Blocks)
	return BuildAliasTable(unit.Blocks[0])
}

func TestCandidates(t *testing.T) {
	table := aliasTableFor(t, `<?php
namespace App;
use Lib\Http\Client;
use Lib\Http as H;
use function Lib\fmt\render;
use function Lib\fmt\render as draw;
use const Lib\LIMIT;
`)
	assert.Equal(t, "App", table.Namespace)

	tests := []struct {
		kind     NameKind
		name     string
		expected []string
	}{
		{ClassName, "Client", []string{`Lib\Http\Client`}},
		{ClassName, `H\Request`, []string{`Lib\Http\Request`}},
		{ClassName, "Local", []string{`App\Local`, "Local"}},
		{ClassName, `Sub\Thing`, []string{`App\Sub\Thing`}},
		{ClassName, `\Root\Thing`, []string{`Root\Thing`}},
		{FunctionName, "render", []string{`Lib\fmt\render`}},
		{FunctionName, "draw", []string{`Lib\fmt\render`}},
		{FunctionName, "strlen", []string{`App\strlen`, "strlen"}},
		{FunctionName, "Client", []string{`App\Client`, "Client"}},
		{ConstName, "LIMIT", []string{`Lib\LIMIT`}},
		{ConstName, "Client", []string{`App\Client`, "Client"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+" "+tt.name, func(t *testing.T) {
			name := ast.NewName(ast.Position{}, tt.name)
			assert.Equal(t, tt.expected, table.Candidates(tt.kind, name))
		})
	}
}

func TestCandidatesGlobalNamespace(t *testing.T) {
	table := aliasTableFor(t, `<?php
use Foo\Bar;
use A\X;
use B\X;
`)
	assert.Equal(t, "", table.Namespace)
	assert.Equal(t, []string{`Foo\Bar`}, table.Candidates(ClassName, ast.NewName(ast.Position{}, "Bar")))
	assert.Equal(t, []string{"Baz"}, table.Candidates(ClassName, ast.NewName(ast.Position{}, "Baz")))
	assert.Equal(t, []string{`B\X`}, table.Candidates(ClassName, ast.NewName(ast.Position{}, "X")), "Later clause should win")

	target, ok := table.ClassAlias("Bar")
	assert.True(t, ok)
	assert.Equal(t, `Foo\Bar`, target)
}

func TestCandidatesEmptyName(t *testing.T) {
	table := NewAliasTable("App")
	assert.Nil(t, table.Candidates(ClassName, nil))
	assert.Nil(t, table.Candidates(ClassName, &ast.Name{}))
}

func TestTypeRefKeepsWrittenName(t *testing.T) {
	table := NewAliasTable("App")
	table.Add(ast.UseClass, "Base", `Core\Base`)

	ref := table.TypeRef(ast.NewName(ast.Position{Line: 3}, "Base"))
	assert.Equal(t, "Base", ref.Written)
	assert.Equal(t, []string{`Core\Base`}, ref.Candidates)
	assert.Equal(t, 3, ref.Pos.Line)
}
