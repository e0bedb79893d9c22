package errors

import "fmt"

// Diagnostic codes for the corvid analyzer
// These codes are used in rendered diagnostics, JSON output and editor
// integrations to identify a finding independently of its message.
//
// Error code ranges:
// E0001-E0099: Symbol, declaration and call findings
// E0100-E0199: Parser errors
// E0200-E0299: Scope (variable) findings
// E0900-E0999: Reserved for tooling errors

const (
	// E0001: Name resolves to no known function, class, interface, constant or member
	ErrorUnresolvedSymbol = "E0001"

	// E0002: Constant, function, class or interface declared twice
	ErrorRedefinition = "E0002"

	// E0003: Protected or private member accessed from outside its hierarchy
	ErrorVisibilityViolation = "E0003"

	// E0004: Call passes fewer arguments than required parameters
	ErrorTooFewArguments = "E0004"

	// E0005: Call passes more arguments than declared parameters
	ErrorTooManyArguments = "E0005"

	// E0006: Concrete class misses a method of an implemented interface
	ErrorInterfaceContract = "E0006"

	// E0007: Value of a call that never returns a value is used
	ErrorVoidReturnUsed = "E0007"

	// E0008: Required parameter follows an optional one
	ErrorMisorderedDefault = "E0008"
)

const (
	// E0100: Source could not be parsed
	ErrorSyntax = "E0100"
)

const (
	// E0201: Variable read before any binding in its scope
	ErrorUndefinedVariable = "E0201"

	// E0202: Variable bound but never read
	ErrorUnusedVariable = "E0202"

	// E0203: Variable rebound repeatedly without an intervening read
	ErrorRedundantAssignment = "E0203"
)

const (
	// E0900: Analyzer failed on a structurally malformed unit
	ErrorInternal = "E0900"
)

// Kind identifies the class of a finding.
type Kind int

const (
	UnresolvedSymbol Kind = iota
	RedefinitionError
	VisibilityViolation
	ArityError
	UndefinedVariableUse
	UnusedVariableDeclaration
	RedundantAssignment
	InterfaceContractViolation
	VoidReturnUsed
	MisorderedDefault
	SyntaxError
)

var kindNames = map[Kind]string{
	UnresolvedSymbol:           "UnresolvedSymbol",
	RedefinitionError:          "RedefinitionError",
	VisibilityViolation:        "VisibilityViolation",
	ArityError:                 "ArityError",
	UndefinedVariableUse:       "UndefinedVariableUse",
	UnusedVariableDeclaration:  "UnusedVariableDeclaration",
	RedundantAssignment:        "RedundantAssignment",
	InterfaceContractViolation: "InterfaceContractViolation",
	VoidReturnUsed:             "VoidReturnUsed",
	MisorderedDefault:          "MisorderedDefault",
	SyntaxError:                "SyntaxError",
}

var kindCodes = map[Kind]string{
	UnresolvedSymbol:           ErrorUnresolvedSymbol,
	RedefinitionError:          ErrorRedefinition,
	VisibilityViolation:        ErrorVisibilityViolation,
	ArityError:                 ErrorTooFewArguments,
	UndefinedVariableUse:       ErrorUndefinedVariable,
	UnusedVariableDeclaration:  ErrorUnusedVariable,
	RedundantAssignment:        ErrorRedundantAssignment,
	InterfaceContractViolation: ErrorInterfaceContract,
	VoidReturnUsed:             ErrorVoidReturnUsed,
	MisorderedDefault:          ErrorMisorderedDefault,
	SyntaxError:                ErrorSyntax,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the default diagnostic code for the kind.
func (k Kind) Code() string {
	return kindCodes[k]
}

// ParseKind looks a kind up by its name, as used in configuration files.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := UnresolvedSymbol; k <= SyntaxError; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown diagnostic kind %q", text)
	}
	*k = parsed
	return nil
}

// Arity qualifies an ArityError.
type Arity int

const (
	ArityNone Arity = iota
	TooFew
	TooMany
)

func (a Arity) String() string {
	switch a {
	case TooFew:
		return "TooFew"
	case TooMany:
		return "TooMany"
	default:
		return ""
	}
}

func (a Arity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Arity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "TooFew":
		*a = TooFew
	case "TooMany":
		*a = TooMany
	case "":
		*a = ArityNone
	default:
		return fmt.Errorf("unknown arity %q", text)
	}
	return nil
}

// Subject is the kind of entity a finding is about. The classifier uses it
// to pick a tier; renderers use it for wording.
type Subject int

const (
	SubjectNone Subject = iota
	SubjectFunction
	SubjectClass
	SubjectInterface
	SubjectConstant // declarative `const`
	SubjectDefine   // registration-form define()
	SubjectMember
	SubjectConstructor
	SubjectMethod
	SubjectVariable
	SubjectParameter
)

var subjectNames = map[Subject]string{
	SubjectNone:        "",
	SubjectFunction:    "function",
	SubjectClass:       "class",
	SubjectInterface:   "interface",
	SubjectConstant:    "constant",
	SubjectDefine:      "define",
	SubjectMember:      "member",
	SubjectConstructor: "constructor",
	SubjectMethod:      "method",
	SubjectVariable:    "variable",
	SubjectParameter:   "parameter",
}

func (s Subject) String() string {
	return subjectNames[s]
}

// Label is the wording used in messages.
func (s Subject) Label() string {
	if s == SubjectDefine {
		return "constant"
	}
	return s.String()
}

func (s Subject) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Subject) UnmarshalText(text []byte) error {
	for k, n := range subjectNames {
		if n == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown subject %q", text)
}

// Tier is the severity class assigned by the classifier.
type Tier int

const (
	Unclassified Tier = iota
	Immediate
	Future
)

func (t Tier) String() string {
	switch t {
	case Immediate:
		return "immediate"
	case Future:
		return "future"
	default:
		return "unclassified"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "immediate":
		*t = Immediate
	case "future":
		*t = Future
	case "unclassified":
		*t = Unclassified
	default:
		return fmt.Errorf("unknown tier %q", text)
	}
	return nil
}
