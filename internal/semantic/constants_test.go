package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/parser"
)

func foldSource(t *testing.T, expr string) ConstValue {
	t.Helper()
	unit, parseErrors := parser.ParseSource("const.php", "<?php const X = "+expr+";")
	require.Empty(t, parseErrors)
	table, err := Collect(context.Background(), unit)
	require.NoError(t, err)
	require.Len(t, table.Symbols, 1)
	return table.Symbols[0].Constant.Value
}

func TestFoldConstant(t *testing.T) {
	tests := []struct {
		expr     string
		expected ConstValue
	}{
		{"1 + 2", ConstValue{Kind: ValueInt, Int: 3}},
		{"(1 + 2) * 3", ConstValue{Kind: ValueInt, Int: 9}},
		{"-(-5)", ConstValue{Kind: ValueInt, Int: 5}},
		{"7 % 3", ConstValue{Kind: ValueInt, Int: 1}},
		{"10 / 5", ConstValue{Kind: ValueInt, Int: 2}},
		{"10 / 4", ConstValue{Kind: ValueFloat, Float: 2.5}},
		{"1.5 * 2", ConstValue{Kind: ValueFloat, Float: 3}},
		{"2 ** 10", ConstValue{Kind: ValueInt, Int: 1024}},
		{"2 ** -1", ConstValue{Kind: ValueFloat, Float: 0.5}},
		{"0x1F", ConstValue{Kind: ValueInt, Int: 31}},
		{"0b101", ConstValue{Kind: ValueInt, Int: 5}},
		{"1_000", ConstValue{Kind: ValueInt, Int: 1000}},
		{"'3' + 4", ConstValue{Kind: ValueInt, Int: 7}},
		{"true + true", ConstValue{Kind: ValueInt, Int: 2}},
		{"'a' . 1", ConstValue{Kind: ValueString, Str: "a1"}},
		{"'x' . 1.5", ConstValue{Kind: ValueString, Str: "x1.5"}},
		{"true . ''", ConstValue{Kind: ValueString, Str: "1"}},
		{"null . 'n'", ConstValue{Kind: ValueString, Str: "n"}},
		{"!0", ConstValue{Kind: ValueBool, Bool: true}},
		{"!'0'", ConstValue{Kind: ValueBool, Bool: true}},
		{"!'a'", ConstValue{Kind: ValueBool, Bool: false}},
		{"false", ConstValue{Kind: ValueBool, Bool: false}},
		{"null", ConstValue{Kind: ValueNull}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.expected, foldSource(t, tt.expr))
		})
	}
}

func TestFoldConstantOpaque(t *testing.T) {
	for _, expr := range []string{
		"1 / 0",
		"7 % 0",
		"'abc' + 1",
		"PHP_EOL",
		"OTHER . 'x'",
		"strlen('x')",
		"[1, 2]",
	} {
		t.Run(expr, func(t *testing.T) {
			v := foldSource(t, expr)
			assert.True(t, v.IsOpaque(), "got %s", v)
		})
	}
}

func TestFoldConstantOverflowBecomesFloat(t *testing.T) {
	sum := foldSource(t, "9223372036854775807 + 1")
	assert.Equal(t, ValueFloat, sum.Kind)
	assert.InDelta(t, 9.223372036854775807e18, sum.Float, 1e4)

	literal := foldSource(t, "9223372036854775808")
	assert.Equal(t, ValueFloat, literal.Kind)

	product := foldSource(t, "4611686018427387904 * 4")
	assert.Equal(t, ValueFloat, product.Kind)
}

func TestConstValueString(t *testing.T) {
	assert.Equal(t, "3", ConstValue{Kind: ValueInt, Int: 3}.String())
	assert.Equal(t, "2.5", ConstValue{Kind: ValueFloat, Float: 2.5}.String())
	assert.Equal(t, `"a1"`, ConstValue{Kind: ValueString, Str: "a1"}.String())
	assert.Equal(t, "true", ConstValue{Kind: ValueBool, Bool: true}.String())
	assert.Equal(t, "null", ConstValue{Kind: ValueNull}.String())
	assert.Equal(t, "<opaque>", opaque.String())
}
