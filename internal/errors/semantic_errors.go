package errors

import (
	"fmt"
	"strings"

	"corvid/internal/ast"
)

// Common diagnostic constructors with suggestions

// Unresolved creates a finding for a name that resolves to nothing
func Unresolved(subject Subject, name string, pos ast.Position, similarNames []string) Diagnostic {
	builder := NewDiagnostic(UnresolvedSymbol, fmt.Sprintf("%s '%s' is not defined", subject.Label(), name), pos).
		WithSubject(subject).
		WithNames(name).
		WithLength(len(name))

	builder = withSimilar(builder, similarNames)

	switch subject {
	case SubjectFunction:
		builder = builder.WithHelp("functions must be declared in a checked file, imported with 'use function', or be built in")
	case SubjectClass, SubjectInterface:
		builder = builder.WithNote("class names are resolved against the current namespace and its 'use' imports")
	case SubjectConstant, SubjectDefine:
		builder = builder.WithNote("constants come from 'const' declarations or define() calls")
	}
	return builder.Build()
}

// UnresolvedMember creates a finding for a missing class member
func UnresolvedMember(memberKind, className, member string, pos ast.Position, similarNames []string) Diagnostic {
	builder := NewDiagnostic(UnresolvedSymbol, fmt.Sprintf("class '%s' has no %s '%s'", className, memberKind, member), pos).
		WithSubject(SubjectMember).
		WithNames(className, member).
		WithLength(len(member))
	return withSimilar(builder, similarNames).Build()
}

// Redefinition creates a finding for a second declaration of a name
func Redefinition(subject Subject, name string, pos, previous ast.Position) Diagnostic {
	return NewDiagnostic(RedefinitionError, fmt.Sprintf("%s '%s' is already defined", subject.Label(), name), pos).
		WithSubject(subject).
		WithNames(name).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("previous definition at %s:%d:%d", previous.Filename, previous.Line, previous.Column)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' or remove one of the definitions", name)).
		Build()
}

// VisibilityViolationAt creates a finding for access to a non-public member
func VisibilityViolationAt(visibility ast.Visibility, className, member string, pos ast.Position) Diagnostic {
	return NewDiagnostic(VisibilityViolation,
		fmt.Sprintf("cannot access %s member '%s::%s'", visibility, className, member), pos).
		WithSubject(SubjectMember).
		WithNames(className, member).
		WithLength(len(member)).
		WithHelp(visibilityHelp(visibility)).
		Build()
}

func visibilityHelp(visibility ast.Visibility) string {
	if visibility == ast.Private {
		return "private members are only accessible from the declaring class"
	}
	return "protected members are only accessible from the declaring class and its descendants"
}

// TooFewArguments creates an arity finding for a call missing required arguments
func TooFewArguments(subject Subject, callee string, required, got int, pos ast.Position) Diagnostic {
	return NewDiagnostic(ArityError,
		fmt.Sprintf("%s '%s' expects at least %d %s, got %d", subject.Label(), callee, required, plural(required), got), pos).
		WithSubject(subject).
		WithArity(TooFew).
		WithNames(callee).
		WithSuggestion(fmt.Sprintf("provide at least %d argument(s)", required)).
		Build()
}

// TooManyArguments creates an arity finding for a call passing extra arguments
func TooManyArguments(subject Subject, callee string, maximum, got int, pos ast.Position) Diagnostic {
	return NewDiagnostic(ArityError,
		fmt.Sprintf("%s '%s' expects at most %d %s, got %d", subject.Label(), callee, maximum, plural(maximum), got), pos).
		WithSubject(subject).
		WithArity(TooMany).
		WithNames(callee).
		WithHelp("check the signature for the number of declared parameters").
		Build()
}

func plural(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// UndefinedVariable creates a finding for a read before any binding
func UndefinedVariable(name string, pos ast.Position, similarNames []string) Diagnostic {
	builder := NewDiagnostic(UndefinedVariableUse, fmt.Sprintf("undefined variable '$%s'", name), pos).
		WithSubject(SubjectVariable).
		WithNames(name).
		WithLength(len(name) + 1)

	if len(similarNames) > 0 {
		builder = withSimilar(builder, prefixed(similarNames))
	} else {
		builder = builder.WithSuggestion("assign the variable before reading it")
	}
	return builder.Build()
}

func prefixed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "$" + n
	}
	return out
}

// UnusedVariable creates a finding for a binding that is never read
func UnusedVariable(name string, pos ast.Position, parameter bool) Diagnostic {
	subject := SubjectVariable
	if parameter {
		subject = SubjectParameter
	}
	builder := NewDiagnostic(UnusedVariableDeclaration,
		fmt.Sprintf("%s '$%s' is assigned but never used", subject.Label(), name), pos).
		WithSubject(subject).
		WithNames(name).
		WithLength(len(name) + 1)

	if parameter {
		builder = builder.WithSuggestion("remove the parameter if callers do not need it")
	} else {
		builder = builder.WithSuggestion("remove the assignment if it's not needed").
			WithHelp("unused variables can indicate dead code or logic errors")
	}
	return builder.Build()
}

// RedundantAssignmentAt creates a finding for a run of rebinds without reads
func RedundantAssignmentAt(name string, pos ast.Position) Diagnostic {
	return NewDiagnostic(RedundantAssignment,
		fmt.Sprintf("variable '$%s' is reassigned repeatedly without being read", name), pos).
		WithSubject(SubjectVariable).
		WithNames(name).
		WithLength(len(name) + 1).
		WithNote("only the last of these assignments has an effect").
		Build()
}

// InterfaceContract creates a finding for a class missing an interface method
func InterfaceContract(className, iface, method string, pos ast.Position) Diagnostic {
	return NewDiagnostic(InterfaceContractViolation,
		fmt.Sprintf("class '%s' does not implement method '%s::%s'", className, iface, method), pos).
		WithSubject(SubjectClass).
		WithNames(className, iface, method).
		WithLength(len(className)).
		WithSuggestion(fmt.Sprintf("add a public method '%s' or declare '%s' abstract", method, className)).
		Build()
}

// VoidReturn creates a finding for using the value of a call that returns nothing
func VoidReturn(subject Subject, callee string, pos ast.Position) Diagnostic {
	return NewDiagnostic(VoidReturnUsed,
		fmt.Sprintf("%s '%s' does not return a value, but its result is used", subject.Label(), callee), pos).
		WithSubject(subject).
		WithNames(callee).
		WithNote("the result of such a call is always null").
		Build()
}

// MisorderedDefaultParam creates a finding for a required parameter after an optional one
func MisorderedDefaultParam(function, param, firstDefault string, pos ast.Position) Diagnostic {
	return NewDiagnostic(MisorderedDefault,
		fmt.Sprintf("required parameter '$%s' of '%s' follows optional parameter '$%s'", param, function, firstDefault), pos).
		WithSubject(SubjectParameter).
		WithNames(function, param, firstDefault).
		WithLength(len(param) + 1).
		WithSuggestion(fmt.Sprintf("give '$%s' a default value or move it before '$%s'", param, firstDefault)).
		Build()
}

// Syntax creates a finding for a parse error
func Syntax(message string, pos ast.Position) Diagnostic {
	return NewDiagnostic(SyntaxError, message, pos).
		WithTier(Immediate).
		Build()
}

// Helper functions

func withSimilar(builder *DiagnosticBuilder, similarNames []string) *DiagnosticBuilder {
	switch len(similarNames) {
	case 0:
		return builder
	case 1:
		return builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	default:
		suggestions := strings.Join(similarNames, "', '")
		return builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
	}
}

// SimilarNames returns the candidates within a small edit distance of target.
// Comparison is case-insensitive; results keep candidate order.
func SimilarNames(target string, candidates []string) []string {
	var similar []string
	lower := strings.ToLower(target)

	for _, candidate := range candidates {
		if candidate == target || len(candidate) <= 2 {
			continue
		}
		if levenshteinDistance(lower, strings.ToLower(candidate)) <= 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
