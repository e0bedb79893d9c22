package semantic

import (
	"context"
	"fmt"

	"corvid/internal/ast"
)

// InternalError reports an AST shape no conformant parser produces. It
// aborts the affected unit only and is never turned into a finding.
type InternalError struct {
	Unit     string
	Position ast.Position
	Message  string
}

func (e *InternalError) Error() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: internal error: %s", e.Unit, e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%s: internal error: %s", e.Unit, e.Message)
}

// malformed aborts the current unit walk with an InternalError
func malformed(pos ast.Position, format string, args ...any) {
	panic(&InternalError{Position: pos, Message: fmt.Sprintf(format, args...)})
}

// required aborts the walk when a mandatory child is missing
func required(n ast.Node, parent ast.Node, field string) {
	if n == nil || isNilNode(n) {
		malformed(parent.NodePos(), "%s without %s", parent.NodeType(), field)
	}
}

func isNilNode(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.BlockStmt:
		return v == nil
	case *ast.VarExpr:
		return v == nil
	case *ast.Param:
		return v == nil
	}
	return false
}

// canceled carries a context error out of a walk
type canceled struct{ err error }

func checkContext(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		panic(canceled{err: err})
	}
}

// recoverUnit converts an aborted walk into an error for the unit
func recoverUnit(unit string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *InternalError:
		v.Unit = unit
		*errp = v
	case canceled:
		*errp = fmt.Errorf("analysis of %s aborted: %w", unit, v.err)
	default:
		panic(r)
	}
}
