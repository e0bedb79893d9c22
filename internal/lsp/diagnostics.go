package lsp

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"corvid/internal/ast"
	"corvid/internal/errors"
)

const diagnosticSource = "corvid"

// ConvertDiagnostics transforms classified findings into LSP diagnostics.
// Immediate findings are errors, future findings are warnings.
func ConvertDiagnostics(diags []errors.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Tier == errors.Future {
			severity = protocol.DiagnosticSeverityWarning
		}

		out = append(out, protocol.Diagnostic{
			Range:    diagnosticRange(d),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(diagnosticSource),
			Message:  diagnosticMessage(d),
		})
	}
	return out
}

// diagnosticRange spans the reported length, or the first name when the
// finding only marks a single column.
func diagnosticRange(d errors.Diagnostic) protocol.Range {
	start := toPosition(d.Position)
	length := d.Length
	if length <= 1 && len(d.Names) > 0 {
		length = utf8.RuneCountInString(d.Names[0])
	}
	length = max(length, 1)

	end := start
	if n, err := safecast.Conv[uint32](length); err == nil {
		end.Character += protocol.UInteger(n)
	}
	return protocol.Range{Start: start, End: end}
}

func diagnosticMessage(d errors.Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.Message)
	for _, s := range d.Suggestions {
		sb.WriteString("\n")
		sb.WriteString(s.Message)
	}
	for _, note := range d.Notes {
		sb.WriteString("\nnote: ")
		sb.WriteString(note)
	}
	if d.HelpText != "" {
		sb.WriteString("\nhelp: ")
		sb.WriteString(d.HelpText)
	}
	return sb.String()
}

// toPosition converts a 1-based source position to a 0-based LSP one.
// Out of range values clamp to zero.
func toPosition(pos ast.Position) protocol.Position {
	line, err := safecast.Conv[uint32](pos.Line - 1)
	if err != nil {
		line = 0
	}
	char, err := safecast.Conv[uint32](pos.Column - 1)
	if err != nil {
		char = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func ptrString(s string) *string {
	return &s
}
