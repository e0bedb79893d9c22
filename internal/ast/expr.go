package ast

type Expr interface {
	Node
	isExpr()
}

// BadExpr represents an expression the parser could not recover
type BadExpr struct {
	Pos     Position
	Message string
}

// VarExpr represents a variable
// Example: "$foo", "$this"
type VarExpr struct {
	Pos  Position
	Name string // without "$"
}

// DynamicVarExpr represents a variable whose name is computed at runtime
// Example: "$$name", "${'a' . $b}"
type DynamicVarExpr struct {
	Pos  Position
	Name Expr
}

// LiteralKind classifies scalar literals
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
)

// LiteralExpr represents scalar literals; string values are unquoted
// Example: "5", "1.5", "'MYSECOND'", "true", "null"
type LiteralExpr struct {
	Pos   Position
	Kind  LiteralKind
	Value string
}

// InterpolatedStringExpr is a double-quoted string that embeds variables
// Example: "\"$two apples\""
type InterpolatedStringExpr struct {
	Pos   Position
	Parts []Expr // literal fragments and embedded expressions
}

// ArrayExpr represents array literals and list() destructuring targets
// Example: "[1, 'k' => $v]", "array(1, 2)", "list($a, $b)"
type ArrayExpr struct {
	Pos   Position
	Items []*ArrayItem // nil entries are skipped list() slots
	List  bool
}

// ArrayItem is one element of an ArrayExpr
type ArrayItem struct {
	Pos    Position
	Key    Expr
	Value  Expr
	ByRef  bool
	Unpack bool
}

// NameExpr references a constant by name
// Example: "MYSECOND", "PHP_EOL", "\ns\LIMIT"
type NameExpr struct {
	Pos  Position
	Name *Name
}

// BinaryExpr represents binary operators including logical and string concatenation
// Example: "$a + 1", "$a . 'x'", "$a && $b"
type BinaryExpr struct {
	Pos   Position
	Op    string
	Left  Expr
	Right Expr
}

// UnaryExpr represents prefix and postfix operators
// Example: "!$a", "-5", "$i++", "--$i", "@foo()"
type UnaryExpr struct {
	Pos     Position
	Op      string
	Operand Expr
	Postfix bool
}

// AssignExpr represents plain, compound and by-reference assignment
// Example: "$a = 1", "$a .= 'x'", "$a = &$b", "[$a, $b] = $pair"
type AssignExpr struct {
	Pos    Position
	Op     string // "=", "+=", ".=", "??=", ...
	Target Expr
	Value  Expr
	ByRef  bool
}

// IndexExpr represents element access; Index is nil for the append form
// Example: "$arr['key']", "$arr[]"
type IndexExpr struct {
	Pos   Position
	Base  Expr
	Index Expr
}

// PropertyFetchExpr represents instance property access
// Example: "$this->name", "$obj->$prop"
type PropertyFetchExpr struct {
	Pos         Position
	Object      Expr
	Name        string
	DynamicName Expr
	NullSafe    bool
}

// MethodCallExpr represents instance method calls
// Example: "$foo->bar()", "$this->helper(1, 2)"
type MethodCallExpr struct {
	Pos         Position
	Object      Expr
	Name        string
	DynamicName Expr
	Args        []Expr
	NullSafe    bool
}

// ClassRef is the class operand of static access, new and instanceof.
// Exactly one of Name and Dynamic is set.
type ClassRef struct {
	Pos     Position
	Name    *Name
	Dynamic Expr
}

// IsSpecial reports whether the reference is self, static or parent.
func (c *ClassRef) IsSpecial() bool {
	if c == nil || c.Name == nil || c.Name.FullyQualified || len(c.Name.Parts) != 1 {
		return false
	}
	switch c.Name.Parts[0] {
	case "self", "static", "parent":
		return true
	}
	return false
}

// StaticCallExpr represents static method calls
// Example: "myclass::bip()", "parent::__construct($x)"
type StaticCallExpr struct {
	Pos         Position
	Class       *ClassRef
	Name        string
	DynamicName Expr
	Args        []Expr
}

// StaticPropExpr represents static property access
// Example: "myclass::$svar1"
type StaticPropExpr struct {
	Pos   Position
	Class *ClassRef
	Name  string
}

// ClassConstExpr represents class constant access
// Example: "myclass::FOO", "self::DEF1", "Foo::class"
type ClassConstExpr struct {
	Pos   Position
	Class *ClassRef
	Name  string
}

// CallExpr represents function calls. Callee is a *NameExpr for calls by
// literal name and any other expression for dynamic calls.
// Example: "foo(1, 2)", "\a\b\f()", "$handler($x)"
type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

// LiteralName returns the called name, or nil for dynamic calls.
func (c *CallExpr) LiteralName() *Name {
	if n, ok := c.Callee.(*NameExpr); ok {
		return n.Name
	}
	return nil
}

// NewExpr represents object instantiation
// Example: "new myclass(1)", "new $cls"
type NewExpr struct {
	Pos   Position
	Class *ClassRef
	Args  []Expr
}

// ClosureExpr represents anonymous functions
// Example: "function ($x) use ($y, &$z) { return $x + $y; }"
type ClosureExpr struct {
	Pos    Position
	Static bool
	ByRef  bool
	Params []*Param
	Uses   []*ClosureUse
	Body   *BlockStmt
}

// ClosureUse is one captured variable of a closure
type ClosureUse struct {
	Pos   Position
	Name  string
	ByRef bool
}

// ArrowFuncExpr represents short closures that capture by value implicitly
// Example: "fn($x) => $x * $factor"
type ArrowFuncExpr struct {
	Pos    Position
	Static bool
	Params []*Param
	Body   Expr
}

// TernaryExpr represents "?:" and the short "?:" form (Then == nil)
type TernaryExpr struct {
	Pos  Position
	Cond Expr
	Then Expr
	Else Expr
}

// IssetExpr represents isset(...)
type IssetExpr struct {
	Pos  Position
	Vars []Expr
}

// EmptyExpr represents empty(...)
type EmptyExpr struct {
	Pos   Position
	Value Expr
}

// IncludeExpr represents include, include_once, require and require_once
type IncludeExpr struct {
	Pos  Position
	Kind string
	Path Expr
}

// InstanceofExpr represents "$a instanceof Foo"
type InstanceofExpr struct {
	Pos   Position
	Value Expr
	Class *ClassRef
}

// CastExpr represents "(int) $a"
type CastExpr struct {
	Pos   Position
	Type  string
	Value Expr
}

// ExitExpr represents exit / die
type ExitExpr struct {
	Pos   Position
	Value Expr
}

// CloneExpr represents "clone $a"
type CloneExpr struct {
	Pos   Position
	Value Expr
}

// PrintExpr represents "print $a"
type PrintExpr struct {
	Pos   Position
	Value Expr
}

// SpreadExpr represents argument unpacking; Value is nil for the
// first-class callable form "strlen(...)"
// Example: "foo(...$args)"
type SpreadExpr struct {
	Pos   Position
	Value Expr
}

// YieldExpr represents yield inside generators
type YieldExpr struct {
	Pos   Position
	Key   Expr
	Value Expr
	From  bool
}

func (*BadExpr) isExpr() {}

func (*VarExpr) isExpr() {}

func (*DynamicVarExpr) isExpr() {}

func (*LiteralExpr) isExpr() {}

func (*InterpolatedStringExpr) isExpr() {}

func (*ArrayExpr) isExpr() {}

func (*NameExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*AssignExpr) isExpr() {}

func (*IndexExpr) isExpr() {}

func (*PropertyFetchExpr) isExpr() {}

func (*MethodCallExpr) isExpr() {}

func (*StaticCallExpr) isExpr() {}

func (*StaticPropExpr) isExpr() {}

func (*ClassConstExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*NewExpr) isExpr() {}

func (*ClosureExpr) isExpr() {}

func (*ArrowFuncExpr) isExpr() {}

func (*TernaryExpr) isExpr() {}

func (*IssetExpr) isExpr() {}

func (*EmptyExpr) isExpr() {}

func (*IncludeExpr) isExpr() {}

func (*InstanceofExpr) isExpr() {}

func (*CastExpr) isExpr() {}

func (*ExitExpr) isExpr() {}

func (*CloneExpr) isExpr() {}

func (*PrintExpr) isExpr() {}

func (*SpreadExpr) isExpr() {}

func (*YieldExpr) isExpr() {}
