package semantic

// Helper functions for narrowing finding lists so that a check can be
// looked at without the noise of unrelated kinds.

import (
	"slices"

	"corvid/internal/errors"
)

// FilterKinds removes findings of the given kinds.
func FilterKinds(diags []errors.Diagnostic, kinds ...errors.Kind) []errors.Diagnostic {
	var filtered []errors.Diagnostic
	for _, d := range diags {
		if !slices.Contains(kinds, d.Kind) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// OfKind keeps only findings of one kind.
func OfKind(diags []errors.Diagnostic, kind errors.Kind) []errors.Diagnostic {
	var filtered []errors.Diagnostic
	for _, d := range diags {
		if d.Kind == kind {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FilterVariableFindings removes undefined, unused and redundant variable
// findings.
func FilterVariableFindings(diags []errors.Diagnostic) []errors.Diagnostic {
	return FilterKinds(diags, errors.UndefinedVariableUse, errors.UnusedVariableDeclaration, errors.RedundantAssignment)
}

// Names returns the first name of each finding
func Names(diags []errors.Diagnostic) []string {
	names := make([]string, 0, len(diags))
	for _, d := range diags {
		if len(d.Names) > 0 {
			names = append(names, d.Names[0])
		} else {
			names = append(names, "")
		}
	}
	return names
}
