package parser

import (
	"errors"
	"strconv"
)

// Parse translates source text into a Program AST. The input is treated as if
// it ended with a linebreak, so the last line needs no terminator.
func Parse(src string, opts ...Option) (*Program, error) {
	p := newParser(src, opts...)
	prog, ok := p.parseProgram()
	if !ok {
		return nil, p.sc.syntaxError()
	}
	return prog, nil
}

type parser struct {
	sc    *scanner
	assoc Associativity
}

func newParser(src string, opts ...Option) *parser {
	cfg := options{assoc: RightNested}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &parser{
		sc:    newScanner(src),
		assoc: cfg.assoc,
	}
}

// locatable is implemented by nodes whose location is assigned by stamp.
type locatable interface {
	setLoc(Location)
}

func (l *Line) setLoc(loc Location)     { l.Loc = loc }
func (e *NumExpr) setLoc(loc Location)  { e.Loc = loc }
func (e *VecExpr) setLoc(loc Location)  { e.Loc = loc }
func (e *CallExpr) setLoc(loc Location) { e.Loc = loc }
func (p *Param) setLoc(loc Location)    { p.Loc = loc }
func (d *FuncDecl) setLoc(loc Location) { d.Loc = loc }

// stamp runs rule and, when it matches, records the consumed text as the
// node's location. On failure the input position is rolled back.
func stamp[N locatable](p *parser, rule func() (N, bool)) (N, bool) {
	start := p.sc.mark()
	node, ok := rule()
	if !ok {
		p.sc.restore(start)
		var zero N
		return zero, false
	}
	node.setLoc(p.sc.span(start, p.sc.mark()))
	return node, true
}

// sepBy parses zero or more items separated by sep. It never fails; a
// dangling separator is left unconsumed for the caller to reject.
func sepBy[T any](p *parser, sep func() bool, item func() (T, bool)) []T {
	items := []T{}
	first, ok := item()
	if !ok {
		return items
	}
	items = append(items, first)
	for {
		rest := p.sc.mark()
		if !sep() {
			return items
		}
		next, ok := item()
		if !ok {
			p.sc.restore(rest)
			return items
		}
		items = append(items, next)
	}
}

// separator matches a comma with horizontal whitespace around it.
func (p *parser) separator() bool {
	return p.comma(p.sc.skipWS)
}

// headerSeparator also lets a parameter list continue on the next line.
func (p *parser) headerSeparator() bool {
	return p.comma(p.sc.skipBlank)
}

func (p *parser) comma(skip func()) bool {
	start := p.sc.mark()
	skip()
	if !p.sc.char(',') {
		p.sc.restore(start)
		return false
	}
	skip()
	return true
}

func (p *parser) parseProgram() (*Program, bool) {
	for p.sc.linebreakChunk() {
	}
	lines := []*Line{}
	for !p.sc.eof() {
		line, ok := p.parseLine(false)
		if !ok {
			p.sc.expect("end of input")
			return nil, false
		}
		lines = append(lines, line)
	}
	return &Program{
		Lines: lines,
		Loc: Location{
			Start: p.sc.position(0),
			End:   p.sc.position(p.sc.limit),
		},
	}, true
}

// parseLine parses one statement and its terminator. Inside a function body
// the statement may also end right before the closing brace.
func (p *parser) parseLine(inBody bool) (*Line, bool) {
	start := p.sc.mark()
	line, ok := stamp(p, func() (*Line, bool) {
		p.sc.skipWS()
		value, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		return &Line{Value: value}, true
	})
	if !ok {
		return nil, false
	}
	if !p.lineEnd(inBody) {
		p.sc.restore(start)
		return nil, false
	}
	return line, true
}

func (p *parser) lineEnd(inBody bool) bool {
	if p.sc.linebreakChunk() {
		for p.sc.linebreakChunk() {
		}
		return true
	}
	if !inBody {
		return false
	}
	start := p.sc.mark()
	p.sc.skipWS()
	closed := p.sc.char('}')
	p.sc.restore(start)
	return closed
}

func (p *parser) parseStmt() (Stmt, bool) {
	if expr, ok := p.parseExpr(); ok {
		return expr, true
	}
	if decl, ok := stamp(p, p.funcDecl); ok {
		return decl, true
	}
	return nil, false
}

func (p *parser) parseExpr() (Expr, bool) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (Expr, bool) {
	return p.parseChain(p.parseMultiplicative, p.parseAdditive, p.addOp, newAdd)
}

func (p *parser) parseMultiplicative() (Expr, bool) {
	return p.parseChain(p.parsePrimary, p.parseMultiplicative, p.multOp, newMult)
}

func newAdd(left, right Expr, op Operator, loc Location) Expr {
	return &AddExpr{Left: left, Right: right, Op: op, Loc: loc}
}

func newMult(left, right Expr, op Operator, loc Location) Expr {
	return &MultExpr{Left: left, Right: right, Op: op, Loc: loc}
}

// parseChain parses one precedence level: operand (op operand)*. With
// RightNested the right side re-enters the same level through self.
func (p *parser) parseChain(
	operand, self func() (Expr, bool),
	operator func() (Operator, bool),
	build func(left, right Expr, op Operator, loc Location) Expr,
) (Expr, bool) {
	start := p.sc.mark()
	left, ok := operand()
	if !ok {
		return nil, false
	}
	next := operand
	if p.assoc == RightNested {
		next = self
	}
	for {
		rest := p.sc.mark()
		op, ok := operator()
		if !ok {
			return left, true
		}
		right, ok := next()
		if !ok {
			p.sc.restore(rest)
			return left, true
		}
		left = build(left, right, op, p.sc.span(start, p.sc.mark()))
		if p.assoc == RightNested {
			return left, true
		}
	}
}

func (p *parser) addOp() (Operator, bool) {
	return p.operator("+-")
}

func (p *parser) multOp() (Operator, bool) {
	return p.operator("*/")
}

func (p *parser) operator(set string) (Operator, bool) {
	start := p.sc.mark()
	p.sc.skipWS()
	c, ok := p.sc.oneOf(set)
	if !ok {
		p.sc.restore(start)
		return 0, false
	}
	p.sc.skipWS()
	return Operator(c), true
}

func (p *parser) parsePrimary() (Expr, bool) {
	if num, ok := stamp(p, p.number); ok {
		return num, true
	}
	if vec, ok := stamp(p, p.vector); ok {
		return vec, true
	}
	if call, ok := stamp(p, p.call); ok {
		return call, true
	}
	return p.parenthesized()
}

// parenthesized returns the inner expression itself, not a wrapper node.
func (p *parser) parenthesized() (Expr, bool) {
	start := p.sc.mark()
	p.sc.skipWS()
	if !p.sc.char('(') {
		p.sc.restore(start)
		return nil, false
	}
	p.sc.skipWS()
	inner, ok := p.parseExpr()
	if !ok {
		p.sc.restore(start)
		return nil, false
	}
	p.sc.skipWS()
	if !p.sc.char(')') {
		p.sc.restore(start)
		return nil, false
	}
	p.sc.skipWS()
	return inner, true
}

// number matches [+-]? ( [0-9]* "." [0-9]+ / [0-9]+ "." / [0-9]+ ).
func (p *parser) number() (*NumExpr, bool) {
	start := p.sc.mark()
	if c := p.sc.peek(); c == '+' || c == '-' {
		p.sc.pos++
	}
	intDigits := p.sc.digits()
	fracDigits := 0
	if p.sc.peek() == '.' && !p.sc.eof() {
		dot := p.sc.mark()
		p.sc.pos++
		fracDigits = p.sc.digits()
		if intDigits == 0 && fracDigits == 0 {
			p.sc.restore(dot)
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		p.sc.restore(start)
		p.sc.expect("number")
		return nil, false
	}
	val, err := strconv.ParseFloat(p.sc.text(start), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.sc.restore(start)
		p.sc.expect("number")
		return nil, false
	}
	return &NumExpr{Value: val}, true
}

func (p *parser) vector() (*VecExpr, bool) {
	p.sc.skipWS()
	if !p.sc.char('[') {
		return nil, false
	}
	p.sc.skipWS()
	elems := sepBy(p, p.separator, p.parseExpr)
	p.sc.skipWS()
	if !p.sc.char(']') {
		return nil, false
	}
	p.sc.skipWS()
	return &VecExpr{Elems: elems}, true
}

func (p *parser) call() (*CallExpr, bool) {
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}
	p.sc.skipWS()
	if !p.sc.char('(') {
		return nil, false
	}
	p.sc.skipWS()
	args := sepBy(p, p.separator, p.parseExpr)
	p.sc.skipWS()
	if !p.sc.char(')') {
		return nil, false
	}
	p.sc.skipWS()
	return &CallExpr{Name: name, Args: args}, true
}

// identifier matches [a-zA-Z0-9]+. Type keywords are not reserved.
func (p *parser) identifier() (string, bool) {
	start := p.sc.mark()
	for !p.sc.eof() && isAlnum(p.sc.peek()) {
		p.sc.pos++
	}
	if p.sc.pos == start {
		p.sc.expect("identifier")
		return "", false
	}
	return p.sc.text(start), true
}

func (p *parser) typeName() (TypeName, bool) {
	for _, kw := range typeKeywords {
		if p.sc.literal(string(kw)) {
			return kw, true
		}
	}
	p.sc.expect("type")
	return "", false
}

// funcDecl matches: type ws+ name "(" params ")" "{" lbc* line* "}". The
// header may break lines around its punctuation.
func (p *parser) funcDecl() (*FuncDecl, bool) {
	ret, ok := p.typeName()
	if !ok {
		return nil, false
	}
	if !p.sc.ws1() {
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}
	p.sc.skipBlank()
	if !p.sc.char('(') {
		return nil, false
	}
	p.sc.skipBlank()
	params := sepBy(p, p.headerSeparator, func() (*Param, bool) {
		return stamp(p, p.param)
	})
	p.sc.skipBlank()
	if !p.sc.char(')') {
		return nil, false
	}
	p.sc.skipBlank()
	if !p.sc.char('{') {
		return nil, false
	}
	for p.sc.linebreakChunk() {
	}
	body := []*Line{}
	for {
		line, ok := p.parseLine(true)
		if !ok {
			break
		}
		body = append(body, line)
	}
	p.sc.skipWS()
	if !p.sc.char('}') {
		return nil, false
	}
	return &FuncDecl{
		Name:       name,
		ReturnType: ret,
		Params:     params,
		Body:       body,
	}, true
}

func (p *parser) param() (*Param, bool) {
	typ, ok := p.typeName()
	if !ok {
		return nil, false
	}
	if !p.sc.ws1() {
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}
	return &Param{Type: typ, Name: name}, true
}
