package semantic

import (
	"context"

	"corvid/internal/ast"
	"corvid/internal/errors"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("corvid.semantic")

// Analyzer runs the Phase 2 checks of single units against a frozen Space.
// It holds no per-unit state and may be shared between workers.
type Analyzer struct {
	space   *Space
	options Options
}

func NewAnalyzer(space *Space, options Options) *Analyzer {
	return &Analyzer{space: space, options: options}
}

// Analyze returns the classified findings of one unit. table must be the
// unit's own Phase 1 table, already merged into the Space.
func (a *Analyzer) Analyze(ctx context.Context, unit *ast.Unit, table *LocalTable) ([]errors.Diagnostic, error) {
	findings, err := a.Findings(ctx, unit, table)
	if err != nil {
		return nil, err
	}
	return Classify(findings, table.Includes, a.options), nil
}

// Findings returns the unclassified findings of one unit: collection
// findings, redefinitions attributed to the unit, call and declaration
// checks, then variable checks.
func (a *Analyzer) Findings(ctx context.Context, unit *ast.Unit, table *LocalTable) (findings []errors.Diagnostic, err error) {
	defer recoverUnit(unit.Path, &err)

	uc := NewUnitContext(ctx, unit, table, a.space, a.options)

	findings = append(findings, table.Findings...)
	findings = append(findings, a.space.Redefinitions(table.Unit)...)
	findings = append(findings, NewCallValidator(uc).Validate()...)
	findings = append(findings, NewScopeAnalyzer(uc).Analyze()...)
	return findings, nil
}
