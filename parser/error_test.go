package parser

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func mustSyntaxError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q): expected error", src)
	}
	serr, ok := AsSyntaxError(err)
	if !ok {
		t.Fatalf("Parse(%q): expected *SyntaxError, got %T", src, err)
	}
	return serr
}

func TestSyntaxErrorReportsFurthestFailure(t *testing.T) {
	serr := mustSyntaxError(t, "1 )")
	if serr.Pos != (Position{Offset: 2, Line: 1, Column: 3}) {
		t.Fatalf("unexpected position %+v", serr.Pos)
	}
	if serr.Found != ")" {
		t.Fatalf("expected found %q, got %q", ")", serr.Found)
	}
	want := []string{`"*"`, `"+"`, `"-"`, `"/"`, "linebreak"}
	if !reflect.DeepEqual(serr.Expected, want) {
		t.Fatalf("expected %v, got %v", want, serr.Expected)
	}
	if got, wantMsg := serr.Error(), `1:3: expected "*", "+", "-", "/" or linebreak, found ")"`; got != wantMsg {
		t.Fatalf("Error() = %q, want %q", got, wantMsg)
	}
	if serr.Incomplete {
		t.Fatalf("error in the middle of input must not be incomplete")
	}
}

func TestSyntaxErrorAtEndOfInput(t *testing.T) {
	serr := mustSyntaxError(t, "(1 + 2")
	if serr.Pos != (Position{Offset: 6, Line: 1, Column: 7}) {
		t.Fatalf("unexpected position %+v", serr.Pos)
	}
	if serr.Found != "" {
		t.Fatalf("expected end of input, found %q", serr.Found)
	}
	if got, want := serr.Error(), `1:7: expected ")", "*", "+", "-" or "/", found end of input`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !serr.Incomplete {
		t.Fatalf("expected incomplete error")
	}
}

func TestSyntaxErrorOnLaterLine(t *testing.T) {
	serr := mustSyntaxError(t, "1 + 2\n[1, 2\n3")
	if serr.Pos.Line != 2 || serr.Pos.Column != 6 {
		t.Fatalf("expected failure at 2:6, got %d:%d", serr.Pos.Line, serr.Pos.Column)
	}
	if serr.Found != "\n" {
		t.Fatalf("expected found newline, got %q", serr.Found)
	}
	if serr.Incomplete {
		t.Fatalf("unterminated vector followed by more lines is not incomplete")
	}
}

func TestIsIncomplete(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"(1 + 2", true},
		{"f(1,", true},
		{"[1, 2\n", true},
		{"1 +   \n  ", true},
		{"vec3 f() {\n  1 + 2\n", true},
		{"vec3 f(\n  vec2 a,\n", true},
		{"float f()\n", true},
		{"1 )", false},
		{"1 2", false},
		{"vec3 f() {} 1", false},
	}
	for _, tc := range cases {
		_, err := Parse(tc.src)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", tc.src)
		}
		if got := IsIncomplete(err); got != tc.want {
			t.Errorf("IsIncomplete(Parse(%q)) = %v, want %v (%v)", tc.src, got, tc.want, err)
		}
	}
}

func TestIsIncompleteUnwraps(t *testing.T) {
	_, err := Parse("[1,")
	wrapped := fmt.Errorf("stdin: %w", err)
	if !IsIncomplete(wrapped) {
		t.Fatalf("expected wrapped error to stay incomplete")
	}
	if IsIncomplete(errors.New("plain")) {
		t.Fatalf("plain errors are never incomplete")
	}
	if _, ok := AsSyntaxError(wrapped); !ok {
		t.Fatalf("expected AsSyntaxError to unwrap")
	}
}

func TestDescribeExpected(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a or b"},
		{[]string{"a", "b", "c"}, "a, b or c"},
	}
	for _, tc := range cases {
		if got := describeExpected(tc.in); got != tc.want {
			t.Errorf("describeExpected(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
