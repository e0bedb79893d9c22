package semantic

import (
	"math"
	"strconv"
	"strings"

	"corvid/internal/ast"
)

type ValueKind int

const (
	ValueOpaque ValueKind = iota
	ValueInt
	ValueFloat
	ValueString
	ValueBool
	ValueNull
)

// ConstValue is the folded value of a constant expression. ValueOpaque means
// the constant exists but its value is not known statically.
type ConstValue struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

var opaque = ConstValue{Kind: ValueOpaque}

func (v ConstValue) IsOpaque() bool {
	return v.Kind == ValueOpaque
}

func (v ConstValue) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueNull:
		return "null"
	default:
		return "<opaque>"
	}
}

// FoldConstant evaluates literal, arithmetic, concatenation and unary
// combinations of literals. Anything else folds to an opaque value.
func FoldConstant(expr ast.Expr) ConstValue {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return foldLiteral(e)
	case *ast.UnaryExpr:
		if e.Postfix {
			return opaque
		}
		return foldUnary(e.Op, FoldConstant(e.Operand))
	case *ast.BinaryExpr:
		return foldBinary(e.Op, FoldConstant(e.Left), FoldConstant(e.Right))
	default:
		return opaque
	}
}

func foldLiteral(e *ast.LiteralExpr) ConstValue {
	switch e.Kind {
	case ast.IntLit:
		text := strings.ReplaceAll(e.Value, "_", "")
		if n, err := strconv.ParseInt(text, 0, 64); err == nil {
			return ConstValue{Kind: ValueInt, Int: n}
		}
		// out of range integer literals become floats
		if f, ok := parseIntAsFloat(text); ok {
			return ConstValue{Kind: ValueFloat, Float: f}
		}
		return opaque
	case ast.FloatLit:
		f, err := strconv.ParseFloat(strings.ReplaceAll(e.Value, "_", ""), 64)
		if err != nil {
			return opaque
		}
		return ConstValue{Kind: ValueFloat, Float: f}
	case ast.StringLit:
		return ConstValue{Kind: ValueString, Str: e.Value}
	case ast.BoolLit:
		return ConstValue{Kind: ValueBool, Bool: strings.EqualFold(e.Value, "true")}
	case ast.NullLit:
		return ConstValue{Kind: ValueNull}
	}
	return opaque
}

func parseIntAsFloat(text string) (float64, bool) {
	u, err := strconv.ParseUint(text, 0, 64)
	if err == nil {
		return float64(u), true
	}
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil
}

func foldUnary(op string, v ConstValue) ConstValue {
	if v.IsOpaque() {
		return opaque
	}
	switch op {
	case "!":
		return ConstValue{Kind: ValueBool, Bool: !truthy(v)}
	case "+":
		n, ok := toNumber(v)
		if !ok {
			return opaque
		}
		return n
	case "-":
		n, ok := toNumber(v)
		if !ok {
			return opaque
		}
		if n.Kind == ValueInt {
			if n.Int == math.MinInt64 {
				return ConstValue{Kind: ValueFloat, Float: -float64(n.Int)}
			}
			return ConstValue{Kind: ValueInt, Int: -n.Int}
		}
		return ConstValue{Kind: ValueFloat, Float: -n.Float}
	}
	return opaque
}

func foldBinary(op string, l, r ConstValue) ConstValue {
	if l.IsOpaque() || r.IsOpaque() {
		return opaque
	}
	if op == "." {
		ls, lok := toText(l)
		rs, rok := toText(r)
		if !lok || !rok {
			return opaque
		}
		return ConstValue{Kind: ValueString, Str: ls + rs}
	}

	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	if !lok || !rok {
		return opaque
	}

	if op == "%" {
		a, b := toInt(ln), toInt(rn)
		if b == 0 {
			return opaque
		}
		if b == -1 {
			return ConstValue{Kind: ValueInt}
		}
		return ConstValue{Kind: ValueInt, Int: a % b}
	}

	if ln.Kind == ValueInt && rn.Kind == ValueInt {
		if v, ok := foldIntArith(op, ln.Int, rn.Int); ok {
			return v
		}
	}

	a, b := toFloat(ln), toFloat(rn)
	switch op {
	case "+":
		return ConstValue{Kind: ValueFloat, Float: a + b}
	case "-":
		return ConstValue{Kind: ValueFloat, Float: a - b}
	case "*":
		return ConstValue{Kind: ValueFloat, Float: a * b}
	case "/":
		if b == 0 {
			return opaque
		}
		return ConstValue{Kind: ValueFloat, Float: a / b}
	case "**":
		return ConstValue{Kind: ValueFloat, Float: math.Pow(a, b)}
	}
	return opaque
}

// foldIntArith returns false when the integer result overflows or is not
// integral, in which case the caller falls back to float arithmetic.
func foldIntArith(op string, a, b int64) (ConstValue, bool) {
	intValue := func(n int64) (ConstValue, bool) { return ConstValue{Kind: ValueInt, Int: n}, true }

	switch op {
	case "+":
		sum := a + b
		if (a^sum)&(b^sum) < 0 {
			return opaque, false
		}
		return intValue(sum)
	case "-":
		diff := a - b
		if (a^b)&(a^diff) < 0 {
			return opaque, false
		}
		return intValue(diff)
	case "*":
		if a == 0 || b == 0 {
			return intValue(0)
		}
		prod := a * b
		if prod/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return opaque, false
		}
		return intValue(prod)
	case "/":
		if b == 0 || (a == math.MinInt64 && b == -1) || a%b != 0 {
			return opaque, false
		}
		return intValue(a / b)
	case "**":
		switch {
		case b < 0:
			return opaque, false
		case b == 0 || a == 1:
			return intValue(1)
		case a == 0:
			return intValue(0)
		case a == -1:
			if b%2 == 0 {
				return intValue(1)
			}
			return intValue(-1)
		}
		result := int64(1)
		for range b {
			next := result * a
			if next/a != result {
				return opaque, false
			}
			result = next
		}
		return intValue(result)
	}
	return opaque, false
}

func truthy(v ConstValue) bool {
	switch v.Kind {
	case ValueInt:
		return v.Int != 0
	case ValueFloat:
		return v.Float != 0
	case ValueString:
		return v.Str != "" && v.Str != "0"
	case ValueBool:
		return v.Bool
	}
	return false
}

// toNumber converts scalars for arithmetic. Non-numeric strings do not fold.
func toNumber(v ConstValue) (ConstValue, bool) {
	switch v.Kind {
	case ValueInt, ValueFloat:
		return v, true
	case ValueBool:
		if v.Bool {
			return ConstValue{Kind: ValueInt, Int: 1}, true
		}
		return ConstValue{Kind: ValueInt}, true
	case ValueNull:
		return ConstValue{Kind: ValueInt}, true
	case ValueString:
		s := strings.TrimSpace(v.Str)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ConstValue{Kind: ValueInt, Int: n}, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return ConstValue{Kind: ValueFloat, Float: f}, true
		}
	}
	return opaque, false
}

func toInt(v ConstValue) int64 {
	if v.Kind == ValueFloat {
		return int64(v.Float)
	}
	return v.Int
}

func toFloat(v ConstValue) float64 {
	if v.Kind == ValueInt {
		return float64(v.Int)
	}
	return v.Float
}

func toText(v ConstValue) (string, bool) {
	switch v.Kind {
	case ValueString:
		return v.Str, true
	case ValueInt:
		return strconv.FormatInt(v.Int, 10), true
	case ValueFloat:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return "", false
		}
		return strconv.FormatFloat(v.Float, 'G', 14, 64), true
	case ValueBool:
		if v.Bool {
			return "1", true
		}
		return "", true
	case ValueNull:
		return "", true
	}
	return "", false
}
