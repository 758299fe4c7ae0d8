package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SyntaxError reports that the input does not match the grammar. Pos is the
// furthest position any rule reached before failing.
type SyntaxError struct {
	Pos        Position
	Expected   []string
	Found      string // empty at end of input
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return ""
	}
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%d:%d: unexpected %s", e.Pos.Line, e.Pos.Column, found)
	}
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Pos.Line, e.Pos.Column, describeExpected(e.Expected), found)
}

func describeExpected(expected []string) string {
	switch len(expected) {
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	default:
		return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
	}
}

// failure accumulates the farthest failure seen while parsing.
type failure struct {
	offset   int
	expected map[string]struct{}
}

func (f *failure) record(offset int, what string) {
	if offset < f.offset {
		return
	}
	if offset > f.offset || f.expected == nil {
		f.offset = offset
		f.expected = make(map[string]struct{})
	}
	f.expected[what] = struct{}{}
}

func (f *failure) list() []string {
	out := make([]string, 0, len(f.expected))
	for what := range f.expected {
		out = append(out, what)
	}
	sort.Strings(out)
	return out
}

// IsIncomplete reports whether the supplied error represents input that ended
// before a construct was closed.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr.Incomplete
	}
	return false
}

// AsSyntaxError extracts a *SyntaxError from err.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
