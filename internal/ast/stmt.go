package ast

type Stmt interface {
	Node
	isStmt()
}

// BadStmt represents a statement the parser could not recover
type BadStmt struct {
	Pos     Position
	Message string
}

// BlockStmt represents a braced statement list
// Example: "{ $a = 1; echo $a; }"
type BlockStmt struct {
	Pos   Position
	Stmts []Stmt
}

// ExprStmt represents an expression evaluated for its side effects
// Example: "nonexist();", "$x = foo(1);"
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

// EchoStmt represents echo
// Example: "echo $a, $b;"
type EchoStmt struct {
	Pos   Position
	Exprs []Expr
}

// ReturnStmt represents return statements
// Example: "return 5;", "return;"
type ReturnStmt struct {
	Pos   Position
	Value Expr // nil if plain `return;`
}

// IfStmt represents if / elseif / else chains
// Example: "if ($a) { ... } elseif ($b) { ... } else { ... }"
type IfStmt struct {
	Pos     Position
	Cond    Expr
	Then    Stmt
	ElseIfs []*ElseIf
	Else    Stmt // nil when absent
}

// ElseIf is one elseif arm of an IfStmt
type ElseIf struct {
	Pos  Position
	Cond Expr
	Body Stmt
}

// WhileStmt represents while loops
type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body Stmt
}

// DoWhileStmt represents do-while loops
type DoWhileStmt struct {
	Pos  Position
	Body Stmt
	Cond Expr
}

// ForStmt represents C-style for loops
// Example: "for ($i = 0; $i < 10; $i++) { ... }"
type ForStmt struct {
	Pos  Position
	Init []Expr
	Cond []Expr
	Step []Expr
	Body Stmt
}

// ForeachStmt represents foreach loops
// Example: "foreach ($items as $k => $v) { ... }"
type ForeachStmt struct {
	Pos     Position
	Subject Expr
	Key     Expr // nil when absent
	Value   Expr
	ByRef   bool
	Body    Stmt
}

// SwitchStmt represents switch statements
type SwitchStmt struct {
	Pos     Position
	Subject Expr
	Cases   []*CaseClause
}

// CaseClause is one case (or default, when Value is nil) of a switch
type CaseClause struct {
	Pos   Position
	Value Expr
	Body  []Stmt
}

// JumpKind distinguishes break and continue
type JumpKind int

const (
	Break JumpKind = iota
	Continue
)

// JumpStmt represents break and continue
type JumpStmt struct {
	Pos   Position
	Kind  JumpKind
	Depth Expr
}

// GlobalStmt imports globals into a function scope
// Example: "global $config, $db;"
type GlobalStmt struct {
	Pos  Position
	Vars []*VarExpr
}

// StaticStmt declares function-static variables
// Example: "static $count = 0;"
type StaticStmt struct {
	Pos  Position
	Vars []*StaticVar
}

// StaticVar is one variable of a static statement
type StaticVar struct {
	Pos     Position
	Var     *VarExpr
	Default Expr
}

// UnsetStmt represents unset($a, $b[1])
type UnsetStmt struct {
	Pos     Position
	Targets []Expr
}

// ThrowStmt represents throw
type ThrowStmt struct {
	Pos   Position
	Value Expr
}

// TryStmt represents try / catch / finally
type TryStmt struct {
	Pos     Position
	Body    *BlockStmt
	Catches []*CatchClause
	Finally *BlockStmt
}

// CatchClause binds an exception variable
// Example: "catch (FooException | BarException $e) { ... }"
type CatchClause struct {
	Pos   Position
	Types []*Name
	Var   *VarExpr // nil for the variable-less form
	Body  *BlockStmt
}

func (*BadStmt) isStmt()       {}
func (*BlockStmt) isStmt()     {}
func (*ExprStmt) isStmt()      {}
func (*EchoStmt) isStmt()      {}
func (*ReturnStmt) isStmt()    {}
func (*IfStmt) isStmt()        {}
func (*WhileStmt) isStmt()     {}
func (*DoWhileStmt) isStmt()   {}
func (*ForStmt) isStmt()       {}
func (*ForeachStmt) isStmt()   {}
func (*SwitchStmt) isStmt()    {}
func (*JumpStmt) isStmt()      {}
func (*GlobalStmt) isStmt()    {}
func (*StaticStmt) isStmt()    {}
func (*UnsetStmt) isStmt()     {}
func (*ThrowStmt) isStmt()     {}
func (*TryStmt) isStmt()       {}
func (*UseStmt) isStmt()       {}
func (*ConstStmt) isStmt()     {}
func (*FunctionDecl) isStmt()  {}
func (*ClassDecl) isStmt()     {}
func (*InterfaceDecl) isStmt() {}
