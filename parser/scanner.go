package parser

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// scanner is a byte cursor over the source with backtracking support. The
// grammar has no separate token stream; rules match characters directly.
type scanner struct {
	src        string // caller's source plus the implicit trailing linebreak
	limit      int    // length of the caller's source
	pos        int
	lineStarts []int
	asciiLines []bool // lines where byte and rune columns agree
	last       Position
	fail       failure
}

func newScanner(src string) *scanner {
	text := src + "\n"
	starts := []int{0}
	ascii := []bool{true}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '\n':
			starts = append(starts, i+1)
			ascii = append(ascii, true)
		case c >= utf8.RuneSelf:
			ascii[len(ascii)-1] = false
		}
	}
	return &scanner{
		src:        text,
		limit:      len(src),
		lineStarts: starts,
		asciiLines: ascii,
	}
}

func (s *scanner) mark() int {
	return s.pos
}

func (s *scanner) restore(pos int) {
	s.pos = pos
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// expect records that what was required at the current position.
func (s *scanner) expect(what string) {
	s.fail.record(s.pos, what)
}

// char consumes c or records it as expected.
func (s *scanner) char(c byte) bool {
	if s.peek() == c && !s.eof() {
		s.pos++
		return true
	}
	s.expect(strconv.Quote(string(c)))
	return false
}

// oneOf consumes any byte from set and returns it.
func (s *scanner) oneOf(set string) (byte, bool) {
	if !s.eof() && strings.IndexByte(set, s.src[s.pos]) >= 0 {
		c := s.src[s.pos]
		s.pos++
		return c, true
	}
	for i := 0; i < len(set); i++ {
		s.expect(strconv.Quote(set[i : i+1]))
	}
	return 0, false
}

// literal consumes word when the input continues with it.
func (s *scanner) literal(word string) bool {
	if strings.HasPrefix(s.src[s.pos:], word) {
		s.pos += len(word)
		return true
	}
	return false
}

// skipWS consumes horizontal whitespace.
func (s *scanner) skipWS() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// ws1 consumes at least one horizontal whitespace character.
func (s *scanner) ws1() bool {
	if s.eof() || !isSpace(s.src[s.pos]) {
		s.expect("whitespace")
		return false
	}
	s.skipWS()
	return true
}

// skipBlank consumes horizontal whitespace and line terminators.
func (s *scanner) skipBlank() {
	for !s.eof() && (isSpace(s.src[s.pos]) || isLinebreak(s.src[s.pos])) {
		s.pos++
	}
}

// linebreakChunk consumes optional whitespace followed by one line terminator.
func (s *scanner) linebreakChunk() bool {
	start := s.mark()
	s.skipWS()
	if !s.eof() && isLinebreak(s.src[s.pos]) {
		s.pos++
		return true
	}
	s.expect("linebreak")
	s.restore(start)
	return false
}

// digits consumes a run of decimal digits and returns its length.
func (s *scanner) digits() int {
	start := s.pos
	for !s.eof() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	return s.pos - start
}

func (s *scanner) text(start int) string {
	return s.src[start:s.pos]
}

func (s *scanner) position(offset int) Position {
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	lineStart := s.lineStarts[line-1]
	pos := Position{Offset: offset, Line: line, Column: offset - lineStart + 1}
	if s.asciiLines[line-1] {
		return pos
	}
	// Count runes forward from the previous lookup when it is on the same
	// line, so long lines are not rescanned for every node.
	from, col := lineStart, 1
	if s.last.Line == line && s.last.Offset <= offset {
		from, col = s.last.Offset, s.last.Column
	}
	pos.Column = col + utf8.RuneCountInString(s.src[from:offset])
	s.last = pos
	return pos
}

// span converts the consumed range [start, end) into a Location, excluding
// surrounding horizontal whitespace.
func (s *scanner) span(start, end int) Location {
	for start < end && isSpace(s.src[start]) {
		start++
	}
	for end > start && isSpace(s.src[end-1]) {
		end--
	}
	return Location{
		Start: s.position(start),
		End:   s.position(end),
	}
}

func (s *scanner) syntaxError() *SyntaxError {
	offset := s.fail.offset
	if s.fail.expected == nil {
		offset = s.pos
	}
	if offset > s.limit {
		offset = s.limit
	}
	var found string
	if offset < s.limit {
		r, _ := utf8.DecodeRuneInString(s.src[offset:])
		found = string(r)
	}
	return &SyntaxError{
		Pos:        s.position(offset),
		Expected:   s.fail.list(),
		Found:      found,
		Incomplete: strings.TrimLeft(s.src[offset:s.limit], " \t\r\n") == "",
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLinebreak(c byte) bool {
	return c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
