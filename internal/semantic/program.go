package semantic

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"corvid/internal/ast"
	"corvid/internal/errors"
	"corvid/internal/stdlib"

	"golang.org/x/sync/errgroup"
)

// Input is one parsed unit. Hash identifies the source content for the
// Phase 1 cache and may be empty. Syntax carries the parser's findings.
type Input struct {
	Unit   *ast.Unit
	Hash   string
	Syntax []errors.Diagnostic
}

// TableCache stores Phase 1 tables between runs. Load must only return a
// table collected from the same path and content hash.
type TableCache interface {
	Load(path, hash string) (*LocalTable, bool)
	Store(table *LocalTable) error
}

// UnitResult is the outcome of one unit. Err is set when the unit was
// aborted by an InternalError, cancellation or its timeout; Diagnostics
// then holds only the parser's findings.
type UnitResult struct {
	Path        string
	Diagnostics []errors.Diagnostic
	Err         error
}

type Result struct {
	Space *Space
	Units []UnitResult // sorted by path
}

// Diagnostics returns the findings of every unit in output order
func (r *Result) Diagnostics() []errors.Diagnostic {
	var all []errors.Diagnostic
	for _, u := range r.Units {
		all = append(all, u.Diagnostics...)
	}
	return all
}

// HasImmediate reports whether any unit has an immediate finding or was
// aborted.
func (r *Result) HasImmediate() bool {
	for _, u := range r.Units {
		if u.Err != nil {
			return true
		}
		for _, d := range u.Diagnostics {
			if d.Tier == errors.Immediate {
				return true
			}
		}
	}
	return false
}

// Program is the two-phase pipeline over a set of units.
type Program struct {
	options Options
	catalog *stdlib.Catalog
	cache   TableCache
}

func NewProgram(options Options, catalog *stdlib.Catalog) *Program {
	if catalog == nil {
		catalog = stdlib.Default()
	}
	return &Program{options: options, catalog: catalog}
}

func (p *Program) WithCache(cache TableCache) *Program {
	p.cache = cache
	return p
}

func (p *Program) workers(n int) int {
	jobs := p.options.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// Analyze runs Phase 1 on every unit, merges the tables at the barrier and
// runs Phase 2 on every unit. Per-unit failures are reported in the
// result; the returned error is only set when ctx itself ends the run.
func (p *Program) Analyze(ctx context.Context, inputs []Input) (*Result, error) {
	sorted := slices.Clone(inputs)
	slices.SortStableFunc(sorted, func(a, b Input) int { return cmp.Compare(a.Unit.Path, b.Unit.Path) })

	start := time.Now()
	tables := make([]*LocalTable, len(sorted))
	collectErrs := make([]error, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers(len(sorted)))
	for i, in := range sorted {
		g.Go(func() error {
			tables[i], collectErrs[i] = p.collect(gctx, in)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collecting declarations: %w", err)
	}
	log.Debugf("collected %d units in %s", len(sorted), time.Since(start))

	space := Merge(tables, p.catalog)

	start = time.Now()
	units := make([]UnitResult, len(sorted))
	analyzer := NewAnalyzer(space, p.options)

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(p.workers(len(sorted)))
	for i, in := range sorted {
		g.Go(func() error {
			units[i] = p.analyze(gctx, analyzer, in, tables[i], collectErrs[i])
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyzing units: %w", err)
	}
	log.Debugf("analyzed %d units in %s", len(sorted), time.Since(start))

	return &Result{Space: space, Units: units}, nil
}

func (p *Program) collect(ctx context.Context, in Input) (*LocalTable, error) {
	if p.cache != nil && in.Hash != "" {
		if table, ok := p.cache.Load(in.Unit.Path, in.Hash); ok {
			return table, nil
		}
	}

	table, err := Collect(ctx, in.Unit)
	if err != nil {
		return nil, err
	}
	table.Hash = in.Hash

	if p.cache != nil && in.Hash != "" {
		if err := p.cache.Store(table); err != nil {
			log.Warningf("caching declarations of %s: %s", in.Unit.Path, err)
		}
	}
	return table, nil
}

func (p *Program) analyze(ctx context.Context, analyzer *Analyzer, in Input, table *LocalTable, collectErr error) UnitResult {
	result := UnitResult{Path: in.Unit.Path}
	if collectErr != nil {
		log.Warningf("unit %s aborted: %s", in.Unit.Path, collectErr)
		result.Err = collectErr
		result.Diagnostics = Classify(in.Syntax, false, p.options)
		return result
	}

	if p.options.UnitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.options.UnitTimeout)
		defer cancel()
	}

	findings, err := analyzer.Findings(ctx, in.Unit, table)
	if err != nil {
		log.Warningf("unit %s aborted: %s", in.Unit.Path, err)
		result.Err = err
		findings = nil
	}
	all := make([]errors.Diagnostic, 0, len(in.Syntax)+len(findings))
	all = append(all, in.Syntax...)
	all = append(all, findings...)
	result.Diagnostics = Classify(all, table.Includes, p.options)
	return result
}
