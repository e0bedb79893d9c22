package semantic

import (
	"slices"
	"time"

	"corvid/internal/errors"
)

// Options controls the pipeline and the classification of its findings.
type Options struct {
	Jobs             int           // worker count, <= 0 means GOMAXPROCS
	MaxDiagnostics   int           // per unit, 0 means unlimited
	UnitTimeout      time.Duration // per-unit Phase 2 budget, 0 means none
	ReportFuture     bool
	UnusedParameters bool // report unused free-function and closure parameters
	Promote          []errors.Kind
	Disable          []errors.Kind
}

func DefaultOptions() Options {
	return Options{ReportFuture: true, UnusedParameters: true}
}

// Classify assigns tiers to a unit's findings, applies promotion and
// disabling, and returns them sorted with duplicates collapsed.
// includes reports whether the unit pulls in other files dynamically.
func Classify(diags []errors.Diagnostic, includes bool, opts Options) []errors.Diagnostic {
	out := make([]errors.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if slices.Contains(opts.Disable, d.Kind) {
			continue
		}
		d.Tier = tierOf(d, includes)
		if slices.Contains(opts.Promote, d.Kind) {
			d.Tier = errors.Immediate
		}
		if d.Tier == errors.Future && !opts.ReportFuture {
			continue
		}
		out = append(out, d)
	}

	out = errors.Sort(out)
	if opts.MaxDiagnostics > 0 && len(out) > opts.MaxDiagnostics {
		out = out[:opts.MaxDiagnostics]
	}
	return out
}

func tierOf(d errors.Diagnostic, includes bool) errors.Tier {
	switch d.Kind {
	case errors.UnresolvedSymbol:
		if d.Subject == errors.SubjectFunction && !includes {
			return errors.Immediate
		}
	case errors.RedefinitionError:
		if d.Subject != errors.SubjectDefine {
			return errors.Immediate
		}
	case errors.ArityError:
		if d.Subject == errors.SubjectFunction {
			return errors.Immediate
		}
	case errors.MisorderedDefault, errors.SyntaxError:
		return errors.Immediate
	}
	return errors.Future
}
