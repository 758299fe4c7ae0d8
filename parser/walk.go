package parser

// Inspect traverses the tree rooted at n in depth-first pre-order, children
// in source order. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, line := range n.Lines {
			Inspect(line, f)
		}
	case *Line:
		Inspect(n.Value, f)
	case *AddExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *MultExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *VecExpr:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
	case *CallExpr:
		for _, e := range n.Args {
			Inspect(e, f)
		}
	case *FuncDecl:
		for _, param := range n.Params {
			Inspect(param, f)
		}
		for _, line := range n.Body {
			Inspect(line, f)
		}
	}
}

// Equal reports whether a and b are structurally identical trees. Locations
// are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Program:
		b, ok := b.(*Program)
		return ok && equalLines(a.Lines, b.Lines)
	case *Line:
		b, ok := b.(*Line)
		return ok && Equal(a.Value, b.Value)
	case *AddExpr:
		b, ok := b.(*AddExpr)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *MultExpr:
		b, ok := b.(*MultExpr)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *NumExpr:
		b, ok := b.(*NumExpr)
		return ok && a.Value == b.Value
	case *VecExpr:
		b, ok := b.(*VecExpr)
		return ok && equalExprs(a.Elems, b.Elems)
	case *CallExpr:
		b, ok := b.(*CallExpr)
		return ok && a.Name == b.Name && equalExprs(a.Args, b.Args)
	case *Param:
		b, ok := b.(*Param)
		return ok && a.Type == b.Type && a.Name == b.Name
	case *FuncDecl:
		b, ok := b.(*FuncDecl)
		if !ok || a.Name != b.Name || a.ReturnType != b.ReturnType || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return equalLines(a.Body, b.Body)
	default:
		return false
	}
}

func equalLines(a, b []*Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
