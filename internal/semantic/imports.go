package semantic

import (
	"strings"

	"corvid/internal/ast"
)

// NameKind selects the alias space and symbol table a name resolves in.
type NameKind int

const (
	ClassName NameKind = iota
	FunctionName
	ConstName
)

func (k NameKind) String() string {
	switch k {
	case FunctionName:
		return "function"
	case ConstName:
		return "constant"
	default:
		return "class"
	}
}

// AliasTable maps local aliases introduced by use statements to fully
// qualified names. There is one table per namespace block.
type AliasTable struct {
	Namespace string
	classes   map[string]string
	functions map[string]string
	constants map[string]string
}

// NewAliasTable creates an empty alias table for a namespace
func NewAliasTable(namespace string) *AliasTable {
	return &AliasTable{
		Namespace: namespace,
		classes:   make(map[string]string),
		functions: make(map[string]string),
		constants: make(map[string]string),
	}
}

// BuildAliasTable collects every use statement of a namespace block.
// Aliases are visible to the whole block regardless of position.
func BuildAliasTable(block *ast.NamespaceBlock) *AliasTable {
	table := NewAliasTable(block.Namespace())
	for _, item := range block.Items {
		use, ok := item.(*ast.UseStmt)
		if !ok {
			continue
		}
		for _, clause := range use.Clauses {
			if clause == nil || clause.Name == nil {
				continue
			}
			table.Add(use.Kind, clause.AliasName(), strings.Join(clause.Name.Parts, `\`))
		}
	}
	return table
}

// Add registers an alias. A later clause for the same alias wins.
func (t *AliasTable) Add(kind ast.UseKind, alias, target string) {
	switch kind {
	case ast.UseFunction:
		t.functions[alias] = target
	case ast.UseConst:
		t.constants[alias] = target
	default:
		t.classes[alias] = target
	}
}

// ClassAlias returns the target of a class or namespace alias
func (t *AliasTable) ClassAlias(alias string) (string, bool) {
	target, ok := t.classes[alias]
	return target, ok
}

// Candidates returns fully qualified names to try for a reference, in
// order. At most one alias substitution is applied, and an alias result is
// never resolved further.
func (t *AliasTable) Candidates(kind NameKind, name *ast.Name) []string {
	if name == nil || len(name.Parts) == 0 {
		return nil
	}
	joined := strings.Join(name.Parts, `\`)

	if name.FullyQualified {
		return []string{joined}
	}

	if !name.Qualified() {
		switch kind {
		case FunctionName:
			if target, ok := t.functions[joined]; ok {
				return []string{target}
			}
		case ConstName:
			if target, ok := t.constants[joined]; ok {
				return []string{target}
			}
		default:
			if target, ok := t.classes[joined]; ok {
				return []string{target}
			}
		}
	} else if target, ok := t.classes[name.Parts[0]]; ok {
		rest := strings.Join(name.Parts[1:], `\`)
		return []string{target + `\` + rest}
	}

	local := qualify(t.Namespace, joined)
	if t.Namespace == "" || name.Qualified() {
		return []string{local}
	}
	return []string{local, joined}
}

// TypeRef builds a weak class or interface reference resolved later.
func (t *AliasTable) TypeRef(name *ast.Name) TypeRef {
	return TypeRef{
		Written:    name.String(),
		Candidates: t.Candidates(ClassName, name),
		Pos:        name.Pos,
	}
}
