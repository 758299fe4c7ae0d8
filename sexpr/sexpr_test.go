package sexpr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sergev/vecl/parser"
)

func TestFormatSuccessCases(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Number",
			input: "42",
			want:  "42",
		},
		{
			name:  "Fractions",
			input: "[.5, 1., -2.25]",
			want:  "(vec 0.5 1 -2.25)",
		},
		{
			name:  "Precedence",
			input: "1 + 2 * 3",
			want:  "(+ 1 (* 2 3))",
		},
		{
			name:  "RightNested",
			input: "1 - 2 - 3",
			want:  "(- 1 (- 2 3))",
		},
		{
			name:  "EmptyCollections",
			input: "f([], g())",
			want:  "(call f (vec) (call g))",
		},
		{
			name:  "Declaration",
			input: "vec3 doSomething(vec2 firstArg, float k) { 1 + 2 }",
			want:  "(func vec3 doSomething ((vec2 firstArg) (float k)) (+ 1 2))",
		},
		{
			name:  "DeclarationWithoutParams",
			input: "float f() {\n  1\n  2\n}",
			want:  "(func float f () 1 2)",
		},
		{
			name:  "MultipleLines",
			input: "1\n\n[1, 2] / 3\n",
			want:  "1\n(/ (vec 1 2) 3)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := parser.Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
			}
			if got := Format(prog); got != tc.want {
				t.Fatalf("Format(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatNilValue(t *testing.T) {
	if got := Format(&parser.Line{}); got != "()" {
		t.Fatalf("expected () for empty line, got %q", got)
	}
}

func TestWriteEmitsOneFormPerLine(t *testing.T) {
	prog, err := parser.Parse("1 + 2\nf(3)")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, prog); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if got, want := buf.String(), "(+ 1 2)\n(call f 3)\n"; got != want {
		t.Fatalf("Write produced %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePropagatesErrors(t *testing.T) {
	prog, err := parser.Parse("1")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if err := Write(failingWriter{}, prog); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestFormatNumberRoundTrips(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.1, 55.555, 1e21, 1.5e-7} {
		src := FormatNumber(v)
		prog, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("FormatNumber(%v) = %q: %v", v, src, err)
		}
		num, ok := prog.Lines[0].Value.(*parser.NumExpr)
		if !ok || num.Value != v {
			t.Errorf("FormatNumber(%v) = %q does not parse back", v, src)
		}
	}
}
