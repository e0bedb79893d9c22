package ast

import "strings"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Before reports whether p sorts before q (file, line, column).
func (p Position) Before(q Position) bool {
	if p.Filename != q.Filename {
		return p.Filename < q.Filename
	}
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Ident represents a bare identifier such as a function, class or member name
// Example: "myclass", "bar", "FOO"
type Ident struct {
	Pos   Position
	Value string
}

// Name is a possibly qualified name as written in source.
// Example: "foo", "a\b\foo", "\test_other\foo"
type Name struct {
	Pos            Position
	Parts          []string
	FullyQualified bool // leading backslash
}

// NewName splits a written name on backslashes.
func NewName(pos Position, text string) *Name {
	n := &Name{Pos: pos}
	if strings.HasPrefix(text, `\`) {
		n.FullyQualified = true
		text = text[1:]
	}
	if text != "" {
		n.Parts = strings.Split(text, `\`)
	}
	return n
}

// String joins the name as written, including the leading backslash.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	s := strings.Join(n.Parts, `\`)
	if n.FullyQualified {
		return `\` + s
	}
	return s
}

// Qualified reports whether the name has more than one segment.
func (n *Name) Qualified() bool {
	return len(n.Parts) > 1
}

// Last returns the last segment.
func (n *Name) Last() string {
	if n == nil || len(n.Parts) == 0 {
		return ""
	}
	return n.Parts[len(n.Parts)-1]
}

// Unit represents one compilation unit (a source file)
// Example: "<?php namespace myns; function foo() {} ?>"
type Unit struct {
	Pos    Position
	Path   string
	Blocks []*NamespaceBlock
}

// NamespaceBlock is a run of top-level items under one namespace. A file
// without namespace declarations has a single global block (Name == nil).
// Example: "namespace test_main { class bar extends foo {} }"
type NamespaceBlock struct {
	Pos    Position
	Name   *Name // nil for the global namespace
	Braced bool
	Items  []Stmt
}

// Namespace returns the block's namespace with segments joined by "\".
func (b *NamespaceBlock) Namespace() string {
	if b.Name == nil {
		return ""
	}
	return strings.Join(b.Name.Parts, `\`)
}

// UseKind selects what a use statement imports
type UseKind int

const (
	UseClass UseKind = iota
	UseFunction
	UseConst
)

// UseStmt represents an import statement
// Example: "use \test_other\foo;", "use function a\b\f as g;"
type UseStmt struct {
	Pos     Position
	Kind    UseKind
	Clauses []*UseClause
}

// UseClause is one imported name with its optional alias
type UseClause struct {
	Pos   Position
	Name  *Name
	Alias *Ident // nil when the alias defaults to the last segment
}

// AliasName returns the local alias the clause introduces.
func (c *UseClause) AliasName() string {
	if c.Alias != nil {
		return c.Alias.Value
	}
	return c.Name.Last()
}

// ConstStmt represents a namespace-level declarative constant
// Example: "const A = 1, B = 2;"
type ConstStmt struct {
	Pos   Position
	Decls []*ConstDecl
}

// ConstDecl is one name/value pair of a const statement or class constant
type ConstDecl struct {
	Pos   Position
	Name  Ident
	Value Expr
}

// Param represents a formal parameter
// Example: "$two = 5", "&$out", "...$rest"
type Param struct {
	Pos      Position
	Name     string // without "$"
	Default  Expr
	ByRef    bool
	Variadic bool
	TypeHint *Name
}

// FunctionDecl represents a free function declaration
// Example: "function bar($hey, $two = 5) { ... }"
type FunctionDecl struct {
	Pos    Position
	Name   Ident
	ByRef  bool
	Params []*Param
	Body   *BlockStmt
}

// Visibility is the access-control tag of a class member
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// Modifiers are the member and class modifiers as written
type Modifiers struct {
	Visibility Visibility
	Static     bool
	Abstract   bool
	Final      bool
}

// ClassDecl represents a class declaration
// Example: "abstract class myclass2 extends noclass implements noiface { ... }"
type ClassDecl struct {
	Pos        Position
	Name       Ident
	Abstract   bool
	Final      bool
	Extends    *Name
	Implements []*Name
	Members    []ClassMember
}

// InterfaceDecl represents an interface declaration
// Example: "interface Shape extends Named { public function area(); }"
type InterfaceDecl struct {
	Pos     Position
	Name    Ident
	Extends []*Name
	Members []ClassMember
}

// ClassMember is a method, property or class constant declaration
type ClassMember interface {
	Node
	isClassMember()
}

// MethodDecl represents a method declaration; Body is nil for abstract
// and interface methods.
// Example: "static protected function bip2($one) { }"
type MethodDecl struct {
	Pos       Position
	Name      Ident
	Modifiers Modifiers
	ByRef     bool
	Params    []*Param
	Body      *BlockStmt
}

// PropertyDecl represents a property declaration list
// Example: "static private $svar3 = 1, $other;"
type PropertyDecl struct {
	Pos       Position
	Modifiers Modifiers
	Vars      []*PropertyVar
}

// PropertyVar is one property of a property declaration
type PropertyVar struct {
	Pos     Position
	Name    string // without "$"
	Default Expr
}

// ClassConstDecl represents a class constant declaration list
// Example: "const FOO = 1;", "private const SECRET = 'x';"
type ClassConstDecl struct {
	Pos        Position
	Visibility Visibility
	Decls      []*ConstDecl
}

func (*MethodDecl) isClassMember()     {}
func (*PropertyDecl) isClassMember()   {}
func (*ClassConstDecl) isClassMember() {}
