package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergev/vecl/parser"
)

// Diagnostic formats a syntax error with the offending source line and a caret
// under the failure column:
//
//	input:2:6: expected "," or "]", found "\n"
//	  |
//	2 | [1, 2
//	  |      ^
func Diagnostic(name, src string, serr *parser.SyntaxError) string {
	if serr == nil {
		return ""
	}
	if name == "" {
		name = "input"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%s\n", name, serr.Error())

	lines := strings.Split(src, "\n")
	lineNo := serr.Pos.Line
	if lineNo < 1 || lineNo > len(lines) {
		return strings.TrimSuffix(sb.String(), "\n")
	}
	text := strings.TrimRight(lines[lineNo-1], "\r")
	gutter := strings.Repeat(" ", len(strconv.Itoa(lineNo)))

	fmt.Fprintf(&sb, "%s |\n", gutter)
	fmt.Fprintf(&sb, "%d | %s\n", lineNo, text)
	fmt.Fprintf(&sb, "%s | %s^", gutter, caretPadding(text, serr.Pos.Column))
	return sb.String()
}

// caretPadding reproduces tabs from the source line so the caret lines up.
func caretPadding(text string, column int) string {
	var pad strings.Builder
	col := 1
	for _, r := range text {
		if col >= column {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col++
	}
	for ; col < column; col++ {
		pad.WriteByte(' ')
	}
	return pad.String()
}
