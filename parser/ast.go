package parser

// Position tracks a source location within a vecl source text.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

// Location is the half-open source range [Start, End) covered by a node.
// It is zero for nodes that were not produced by the parser.
type Location struct {
	Start Position
	End   Position
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool {
	return l == Location{}
}

// Node represents any AST node with a source location.
type Node interface {
	Location() Location
}

// Stmt is the value held by a Line: an expression or a function declaration.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents a numeric or vector expression.
type Expr interface {
	Stmt
	exprNode()
}

// Program is the root of a parsed source text.
type Program struct {
	Lines []*Line
	Loc   Location
}

func (p *Program) Location() Location { return p.Loc }

// Line holds exactly one top-level statement.
type Line struct {
	Value Stmt
	Loc   Location
}

func (l *Line) Location() Location { return l.Loc }

// AddExpr is an additive operation (+ or -).
type AddExpr struct {
	Left, Right Expr
	Op          Operator
	Loc         Location
}

func (e *AddExpr) Location() Location { return e.Loc }
func (*AddExpr) stmtNode()            {}
func (*AddExpr) exprNode()            {}

// MultExpr is a multiplicative operation (* or /).
type MultExpr struct {
	Left, Right Expr
	Op          Operator
	Loc         Location
}

func (e *MultExpr) Location() Location { return e.Loc }
func (*MultExpr) stmtNode()            {}
func (*MultExpr) exprNode()            {}

// NumExpr is a decimal number literal.
type NumExpr struct {
	Value float64
	Loc   Location
}

func (e *NumExpr) Location() Location { return e.Loc }
func (*NumExpr) stmtNode()            {}
func (*NumExpr) exprNode()            {}

// VecExpr is a vector literal [a, b, ...].
type VecExpr struct {
	Elems []Expr
	Loc   Location
}

func (e *VecExpr) Location() Location { return e.Loc }
func (*VecExpr) stmtNode()            {}
func (*VecExpr) exprNode()            {}

// CallExpr invokes a named function with arguments.
type CallExpr struct {
	Name string
	Args []Expr
	Loc  Location
}

func (e *CallExpr) Location() Location { return e.Loc }
func (*CallExpr) stmtNode()            {}
func (*CallExpr) exprNode()            {}

// Param is a typed function parameter.
type Param struct {
	Type TypeName
	Name string
	Loc  Location
}

func (p *Param) Location() Location { return p.Loc }

// FuncDecl declares a typed function whose body is a sequence of lines.
// Bodies use the same line rule as the top level, so declarations may nest.
type FuncDecl struct {
	Name       string
	ReturnType TypeName
	Params     []*Param
	Body       []*Line
	Loc        Location
}

func (d *FuncDecl) Location() Location { return d.Loc }
func (*FuncDecl) stmtNode()            {}
