package parser

import (
	"fmt"
	"reflect"
	"testing"
)

func TestInspectVisitsInSourceOrder(t *testing.T) {
	p := mustParse(t, "vec2 f(float a) { [1, g(2)] }\n3 * 4")
	var kinds []string
	Inspect(p, func(n Node) bool {
		kinds = append(kinds, fmt.Sprintf("%T", n))
		return true
	})
	want := []string{
		"*parser.Program",
		"*parser.Line",
		"*parser.FuncDecl",
		"*parser.Param",
		"*parser.Line",
		"*parser.VecExpr",
		"*parser.NumExpr",
		"*parser.CallExpr",
		"*parser.NumExpr",
		"*parser.Line",
		"*parser.MultExpr",
		"*parser.NumExpr",
		"*parser.NumExpr",
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("visit order\n got: %v\nwant: %v", kinds, want)
	}
}

func TestInspectCanPrune(t *testing.T) {
	p := mustParse(t, "f(1, 2, 3)")
	count := 0
	Inspect(p, func(n Node) bool {
		count++
		_, isCall := n.(*CallExpr)
		return !isCall
	})
	if count != 3 {
		t.Fatalf("expected program, line and call only, visited %d nodes", count)
	}
}

func TestEqualIgnoresLocations(t *testing.T) {
	a := mustParse(t, "1+2")
	b := mustParse(t, "\n\n   1   +   2")
	if a.Lines[0].Loc == b.Lines[0].Loc {
		t.Fatalf("expected different locations")
	}
	if !Equal(a, b) {
		t.Fatalf("expected trees to be equal")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	cases := []struct {
		a, b Node
	}{
		{num(1), num(2)},
		{add(num(1), num(2), OpAdd), add(num(1), num(2), OpSub)},
		{add(num(1), num(2), OpAdd), mult(num(1), num(2), OpMul)},
		{vec(num(1)), vec(num(1), num(2))},
		{call("f"), call("g")},
		{call("f", num(1)), call("f", num(2))},
		{&Param{Type: TypeVec2, Name: "a"}, &Param{Type: TypeVec3, Name: "a"}},
		{
			&FuncDecl{Name: "f", ReturnType: TypeFloat},
			&FuncDecl{Name: "f", ReturnType: TypeVec2},
		},
		{prog(line(num(1))), prog()},
		{num(1), nil},
	}
	for i, tc := range cases {
		if Equal(tc.a, tc.b) {
			t.Errorf("case %d: expected %s and %s to differ", i, dump(tc.a), dump(tc.b))
		}
	}
	if !Equal(nil, nil) {
		t.Errorf("nil trees should be equal")
	}
}
