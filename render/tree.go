// Package render encodes vecl syntax trees for display and tooling: YAML and
// JSON documents that mirror the node structure, the S-expression form, and
// plain-text diagnostics for syntax errors.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/sexpr"
)

// Format names an output encoding.
type Format string

const (
	FormatSExpr Format = "sexpr"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSExpr, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatSExpr, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want sexpr, yaml or json)", s)
	}
}

// Options controls structured output.
type Options struct {
	Locations bool // include node locations
}

// Write renders prog to w in the given format.
func Write(w io.Writer, format Format, prog *parser.Program, opts Options) error {
	switch format {
	case FormatSExpr, "":
		return sexpr.Write(w, prog)
	case FormatYAML:
		return YAML(w, prog, opts)
	case FormatJSON:
		return JSON(w, prog, opts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type field struct {
	key   string
	value any
}

// object is a mapping that keeps its keys in insertion order.
type object []field

func (o object) with(key string, value any) object {
	return append(o, field{key: key, value: value})
}

func tree(n parser.Node, opts Options) object {
	var obj object
	switch n := n.(type) {
	case *parser.Program:
		obj = object{{"type", "program"}}.with("lines", lines(n.Lines, opts))
	case *parser.Line:
		obj = object{{"type", "line"}}.with("val", tree(n.Value, opts))
	case *parser.AddExpr:
		obj = object{{"type", "add"}}.
			with("left", tree(n.Left, opts)).
			with("right", tree(n.Right, opts)).
			with("op", n.Op.String())
	case *parser.MultExpr:
		obj = object{{"type", "mult"}}.
			with("left", tree(n.Left, opts)).
			with("right", tree(n.Right, opts)).
			with("op", n.Op.String())
	case *parser.NumExpr:
		obj = object{{"type", "num"}}.with("val", number(n.Value))
	case *parser.VecExpr:
		obj = object{{"type", "vec"}}.with("vals", exprs(n.Elems, opts))
	case *parser.CallExpr:
		obj = object{{"type", "call"}}.
			with("name", n.Name).
			with("args", exprs(n.Args, opts))
	case *parser.Param:
		obj = object{{"type", "param"}}.
			with("typing", n.Type.String()).
			with("name", n.Name)
	case *parser.FuncDecl:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = tree(p, opts)
		}
		obj = object{{"type", "function"}}.
			with("name", n.Name).
			with("returnType", n.ReturnType.String()).
			with("params", params).
			with("body", lines(n.Body, opts))
	case nil:
		return object{{"type", "empty"}}
	default:
		return object{{"type", fmt.Sprintf("%T", n)}}
	}
	if loc := n.Location(); opts.Locations && !loc.IsZero() {
		obj = obj.with("loc", location(loc))
	}
	return obj
}

// number keeps finite values numeric. Literals too large for a float64 parse
// as infinities, which JSON cannot represent, so they become "+Inf"/"-Inf".
func number(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return v
	}
}

func lines(ls []*parser.Line, opts Options) []any {
	out := make([]any, len(ls))
	for i, l := range ls {
		out[i] = tree(l, opts)
	}
	return out
}

func exprs(es []parser.Expr, opts Options) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = tree(e, opts)
	}
	return out
}

func location(loc parser.Location) object {
	return object{
		{"start", position(loc.Start)},
		{"end", position(loc.End)},
	}
}

func position(pos parser.Position) object {
	return object{
		{"offset", pos.Offset},
		{"line", pos.Line},
		{"column", pos.Column},
	}
}
