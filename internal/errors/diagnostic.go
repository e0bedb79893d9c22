package errors

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"corvid/internal/ast"
)

// ErrorLevel represents how a diagnostic is rendered
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Diagnostic is one classified finding with rendering context
type Diagnostic struct {
	Kind        Kind         `json:"kind"`
	Arity       Arity        `json:"arity,omitempty"`
	Subject     Subject      `json:"subject,omitempty"`
	Tier        Tier         `json:"tier"`
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Position    ast.Position `json:"position"`
	Length      int          `json:"-"`
	Names       []string     `json:"names,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Notes       []string     `json:"notes,omitempty"`
	HelpText    string       `json:"help,omitempty"`
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       `json:"message"`
	Replacement string       `json:"replacement,omitempty"`
	Position    ast.Position `json:"-"`
	Length      int          `json:"-"`
}

// Level maps the tier onto a rendering level.
func (d Diagnostic) Level() ErrorLevel {
	if d.Tier == Future {
		return Warning
	}
	return Error
}

// Key identifies a finding for de-duplication: kind, position and names.
func (d Diagnostic) Key() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	sb.WriteByte('|')
	sb.WriteString(d.Arity.String())
	sb.WriteByte('|')
	sb.WriteString(d.Position.Filename)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(d.Position.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(d.Position.Column))
	for _, name := range d.Names {
		sb.WriteByte('|')
		sb.WriteString(name)
	}
	return sb.String()
}

// Compare orders diagnostics by (unit, line, column, kind, message).
func Compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Position.Filename, b.Position.Filename),
		cmp.Compare(a.Position.Line, b.Position.Line),
		cmp.Compare(a.Position.Column, b.Position.Column),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Message, b.Message),
	)
}

// Sort orders diagnostics in place and drops exact duplicates.
func Sort(diags []Diagnostic) []Diagnostic {
	slices.SortStableFunc(diags, Compare)
	seen := make(map[string]bool, len(diags))
	out := diags[:0]
	for _, d := range diags {
		key := d.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic creates a new diagnostic builder; the code defaults to the kind's code
func NewDiagnostic(kind Kind, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			Kind:     kind,
			Code:     kind.Code(),
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithSubject records what the finding is about
func (b *DiagnosticBuilder) WithSubject(subject Subject) *DiagnosticBuilder {
	b.diag.Subject = subject
	return b
}

// WithArity qualifies an arity finding and picks the matching code
func (b *DiagnosticBuilder) WithArity(arity Arity) *DiagnosticBuilder {
	b.diag.Arity = arity
	switch arity {
	case TooFew:
		b.diag.Code = ErrorTooFewArguments
	case TooMany:
		b.diag.Code = ErrorTooManyArguments
	}
	return b
}

// WithNames records the names involved in the finding
func (b *DiagnosticBuilder) WithNames(names ...string) *DiagnosticBuilder {
	b.diag.Names = append(b.diag.Names, names...)
	return b
}

// WithTier presets the tier; the classifier may still override it
func (b *DiagnosticBuilder) WithTier(tier Tier) *DiagnosticBuilder {
	b.diag.Tier = tier
	return b
}

// WithLength sets the length of the highlighted span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.diag.Length = length
	return b
}

// WithSuggestion adds a suggestion to the diagnostic
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.diag.Suggestions = append(b.diag.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *DiagnosticBuilder {
	b.diag.Suggestions = append(b.diag.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the diagnostic
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.diag.Notes = append(b.diag.Notes, note)
	return b
}

// WithHelp adds help text to the diagnostic
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.diag.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
