package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_STMT
	BAD_EXPR

	// High-level constructs
	UNIT
	NAMESPACE_BLOCK

	// Declarations
	USE_STMT
	CONST_STMT
	FUNCTION_DECL
	CLASS_DECL
	INTERFACE_DECL
	METHOD_DECL
	PROPERTY_DECL
	CLASS_CONST_DECL

	// Statements
	BLOCK_STMT
	EXPR_STMT
	ECHO_STMT
	RETURN_STMT
	IF_STMT
	WHILE_STMT
	DO_WHILE_STMT
	FOR_STMT
	FOREACH_STMT
	SWITCH_STMT
	JUMP_STMT
	GLOBAL_STMT
	STATIC_STMT
	UNSET_STMT
	THROW_STMT
	TRY_STMT

	// Expressions
	VAR_EXPR
	DYNAMIC_VAR_EXPR
	LITERAL_EXPR
	INTERPOLATED_STRING_EXPR
	ARRAY_EXPR
	NAME_EXPR
	BINARY_EXPR
	UNARY_EXPR
	ASSIGN_EXPR
	INDEX_EXPR
	PROPERTY_FETCH_EXPR
	METHOD_CALL_EXPR
	STATIC_CALL_EXPR
	STATIC_PROP_EXPR
	CLASS_CONST_EXPR
	CALL_EXPR
	NEW_EXPR
	CLOSURE_EXPR
	ARROW_FUNC_EXPR
	TERNARY_EXPR
	ISSET_EXPR
	EMPTY_EXPR
	INCLUDE_EXPR
	INSTANCEOF_EXPR
	CAST_EXPR
	EXIT_EXPR
	CLONE_EXPR
	PRINT_EXPR
	SPREAD_EXPR
	YIELD_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:                  "ILLEGAL",
	BAD_STMT:                 "BAD_STMT",
	BAD_EXPR:                 "BAD_EXPR",
	UNIT:                     "UNIT",
	NAMESPACE_BLOCK:          "NAMESPACE_BLOCK",
	USE_STMT:                 "USE_STMT",
	CONST_STMT:               "CONST_STMT",
	FUNCTION_DECL:            "FUNCTION_DECL",
	CLASS_DECL:               "CLASS_DECL",
	INTERFACE_DECL:           "INTERFACE_DECL",
	METHOD_DECL:              "METHOD_DECL",
	PROPERTY_DECL:            "PROPERTY_DECL",
	CLASS_CONST_DECL:         "CLASS_CONST_DECL",
	BLOCK_STMT:               "BLOCK_STMT",
	EXPR_STMT:                "EXPR_STMT",
	ECHO_STMT:                "ECHO_STMT",
	RETURN_STMT:              "RETURN_STMT",
	IF_STMT:                  "IF_STMT",
	WHILE_STMT:               "WHILE_STMT",
	DO_WHILE_STMT:            "DO_WHILE_STMT",
	FOR_STMT:                 "FOR_STMT",
	FOREACH_STMT:             "FOREACH_STMT",
	SWITCH_STMT:              "SWITCH_STMT",
	JUMP_STMT:                "JUMP_STMT",
	GLOBAL_STMT:              "GLOBAL_STMT",
	STATIC_STMT:              "STATIC_STMT",
	UNSET_STMT:               "UNSET_STMT",
	THROW_STMT:               "THROW_STMT",
	TRY_STMT:                 "TRY_STMT",
	VAR_EXPR:                 "VAR_EXPR",
	DYNAMIC_VAR_EXPR:         "DYNAMIC_VAR_EXPR",
	LITERAL_EXPR:             "LITERAL_EXPR",
	INTERPOLATED_STRING_EXPR: "INTERPOLATED_STRING_EXPR",
	ARRAY_EXPR:               "ARRAY_EXPR",
	NAME_EXPR:                "NAME_EXPR",
	BINARY_EXPR:              "BINARY_EXPR",
	UNARY_EXPR:               "UNARY_EXPR",
	ASSIGN_EXPR:              "ASSIGN_EXPR",
	INDEX_EXPR:               "INDEX_EXPR",
	PROPERTY_FETCH_EXPR:      "PROPERTY_FETCH_EXPR",
	METHOD_CALL_EXPR:         "METHOD_CALL_EXPR",
	STATIC_CALL_EXPR:         "STATIC_CALL_EXPR",
	STATIC_PROP_EXPR:         "STATIC_PROP_EXPR",
	CLASS_CONST_EXPR:         "CLASS_CONST_EXPR",
	CALL_EXPR:                "CALL_EXPR",
	NEW_EXPR:                 "NEW_EXPR",
	CLOSURE_EXPR:             "CLOSURE_EXPR",
	ARROW_FUNC_EXPR:          "ARROW_FUNC_EXPR",
	TERNARY_EXPR:             "TERNARY_EXPR",
	ISSET_EXPR:               "ISSET_EXPR",
	EMPTY_EXPR:               "EMPTY_EXPR",
	INCLUDE_EXPR:             "INCLUDE_EXPR",
	INSTANCEOF_EXPR:          "INSTANCEOF_EXPR",
	CAST_EXPR:                "CAST_EXPR",
	EXIT_EXPR:                "EXIT_EXPR",
	CLONE_EXPR:               "CLONE_EXPR",
	PRINT_EXPR:               "PRINT_EXPR",
	SPREAD_EXPR:              "SPREAD_EXPR",
	YIELD_EXPR:               "YIELD_EXPR",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) && nodeTypeNames[t] != "" {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}
