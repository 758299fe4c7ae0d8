package parser

// Operator enumerates the binary operators of the expression grammar.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "unknown"
	}
}

// TypeName enumerates the value types usable as return and parameter types.
type TypeName string

const (
	TypeFloat TypeName = "float"
	TypeVec2  TypeName = "vec2"
	TypeVec3  TypeName = "vec3"
	TypeVec4  TypeName = "vec4"
)

// typeKeywords is ordered so that no keyword is a prefix of a later one.
var typeKeywords = []TypeName{TypeFloat, TypeVec2, TypeVec3, TypeVec4}

func (tn TypeName) String() string {
	return string(tn)
}

// Associativity selects the tree shape built for chains of operators of the
// same precedence level.
type Associativity int

const (
	// RightNested parses a op b op c as a op (b op c).
	RightNested Associativity = iota
	// LeftFolded parses a op b op c as (a op b) op c.
	LeftFolded
)

func (a Associativity) String() string {
	switch a {
	case RightNested:
		return "right"
	case LeftFolded:
		return "left"
	default:
		return "unknown"
	}
}
