package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/ast"
	"corvid/internal/errors"
)

func at(line int) ast.Position {
	return ast.Position{Filename: "c.php", Line: line, Column: 1}
}

func sampleFindings() []errors.Diagnostic {
	return []errors.Diagnostic{
		errors.UnusedVariable("tmp", at(9), false),
		errors.Unresolved(errors.SubjectFunction, "missing", at(2), nil),
		errors.Unresolved(errors.SubjectClass, "Missing", at(3), nil),
		errors.Redefinition(errors.SubjectDefine, "LIMIT", at(4), at(1)),
		errors.Redefinition(errors.SubjectFunction, "f", at(5), at(1)),
		errors.TooFewArguments(errors.SubjectFunction, "f", 1, 0, at(6)),
		errors.TooFewArguments(errors.SubjectMethod, "C::m", 1, 0, at(7)),
		errors.MisorderedDefaultParam("g", "b", "a", at(8)),
	}
}

func tiers(diags []errors.Diagnostic) map[int]errors.Tier {
	out := make(map[int]errors.Tier, len(diags))
	for _, d := range diags {
		out[d.Position.Line] = d.Tier
	}
	return out
}

func TestClassifyTiers(t *testing.T) {
	diags := Classify(sampleFindings(), false, DefaultOptions())

	require.Len(t, diags, 8)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, lines(diags), "Findings are sorted by position")
	assert.Equal(t, map[int]errors.Tier{
		2: errors.Immediate,
		3: errors.Future,
		4: errors.Future,
		5: errors.Immediate,
		6: errors.Immediate,
		7: errors.Future,
		8: errors.Immediate,
		9: errors.Future,
	}, tiers(diags))
}

func TestClassifyIncludesDowngradeFunctions(t *testing.T) {
	diags := Classify(sampleFindings(), true, DefaultOptions())
	assert.Equal(t, errors.Future, tiers(diags)[2])
}

func TestClassifyOptions(t *testing.T) {
	t.Run("promote", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Promote = []errors.Kind{errors.UnusedVariableDeclaration}
		assert.Equal(t, errors.Immediate, tiers(Classify(sampleFindings(), false, opts))[9])
	})

	t.Run("disable", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Disable = []errors.Kind{errors.RedefinitionError, errors.ArityError}
		assert.Equal(t, []int{2, 3, 8, 9}, lines(Classify(sampleFindings(), false, opts)))
	})

	t.Run("immediate only", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ReportFuture = false
		assert.Equal(t, []int{2, 5, 6, 8}, lines(Classify(sampleFindings(), false, opts)))
	})

	t.Run("limit", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxDiagnostics = 3
		assert.Equal(t, []int{2, 3, 4}, lines(Classify(sampleFindings(), false, opts)))
	})
}

func TestClassifyCollapsesDuplicates(t *testing.T) {
	d := errors.Unresolved(errors.SubjectConstant, "X", at(2), nil)
	diags := Classify([]errors.Diagnostic{d, d}, false, DefaultOptions())
	assert.Len(t, diags, 1)
}
