// Package sexpr renders vecl syntax trees as S-expressions, one form per line.
package sexpr

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sergev/vecl/parser"
)

// Format returns the S-expression form of a single node. A Program renders as
// its lines separated by newlines.
func Format(n parser.Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// Write renders every line of prog to w, each followed by a newline.
func Write(w io.Writer, prog *parser.Program) error {
	bw := bufio.NewWriter(w)
	for _, line := range prog.Lines {
		if _, err := bw.WriteString(Format(line)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatNumber renders a float in the shortest plain decimal form that the
// number grammar reads back to the same value. Infinities have no such form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeNode(sb *strings.Builder, n parser.Node) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("()")
	case *parser.Program:
		for i, line := range n.Lines {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writeNode(sb, line)
		}
	case *parser.Line:
		writeNode(sb, n.Value)
	case *parser.NumExpr:
		sb.WriteString(FormatNumber(n.Value))
	case *parser.AddExpr:
		writeList(sb, n.Op.String(), n.Left, n.Right)
	case *parser.MultExpr:
		writeList(sb, n.Op.String(), n.Left, n.Right)
	case *parser.VecExpr:
		writeList(sb, "vec", exprNodes(n.Elems)...)
	case *parser.CallExpr:
		sb.WriteString("(call ")
		sb.WriteString(n.Name)
		for _, arg := range n.Args {
			sb.WriteByte(' ')
			writeNode(sb, arg)
		}
		sb.WriteByte(')')
	case *parser.Param:
		sb.WriteByte('(')
		sb.WriteString(n.Type.String())
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
		sb.WriteByte(')')
	case *parser.FuncDecl:
		sb.WriteString("(func ")
		sb.WriteString(n.ReturnType.String())
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
		sb.WriteString(" (")
		for i, param := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeNode(sb, param)
		}
		sb.WriteByte(')')
		for _, line := range n.Body {
			sb.WriteByte(' ')
			writeNode(sb, line)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("#<unknown>")
	}
}

func writeList(sb *strings.Builder, head string, items ...parser.Node) {
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, item := range items {
		sb.WriteByte(' ')
		writeNode(sb, item)
	}
	sb.WriteByte(')')
}

func exprNodes(exprs []parser.Expr) []parser.Node {
	nodes := make([]parser.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
