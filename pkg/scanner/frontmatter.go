package scanner

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// frontmatterScanner tokenizes the body between the frontmatter delimiters.
// Its line grammar is `key: value`, `key:` and `- item`, with blank lines
// kept as bare line breaks.
type frontmatterScanner struct {
	*cursor
}

func newFrontmatterScanner(src string, line, column int) *frontmatterScanner {
	return &frontmatterScanner{cursor: newCursor(src, line, column)}
}

// ScanFrontmatter tokenizes a frontmatter body on its own. Positions start at
// line 1, column 1 and no EOF token is appended.
func ScanFrontmatter(source string) []mdast.Token {
	s := newFrontmatterScanner(source, 1, 1)
	s.scan()
	return s.tokens
}

func (s *frontmatterScanner) scan() {
	for !s.atEnd() {
		s.scanLine()
	}
}

func (s *frontmatterScanner) scanLine() {
	if s.peek() == ' ' {
		s.advanceWhile(' ')
		s.emit(mdast.TokSpace, nil)
	}

	switch {
	case s.atLineEnd():
	case s.peek() == '-' && (s.peekAt(1) == ' ' || s.peekAt(1) == 0 || s.breakLen(s.pos+1) > 0):
		s.advance(1)
		s.emit(mdast.TokBullet, nil)
		s.scanSpace()
		s.scanValue()
	default:
		s.scanKeyLine()
	}

	if s.atBreak() {
		s.emitBreak()
	}
}

// scanKeyLine scans `key: value`. A line with no key separator becomes a
// single value token, which the parser rejects.
func (s *frontmatterScanner) scanKeyLine() {
	end := s.lineEnd(s.pos)
	colon := -1
	for i := s.pos; i < end; i++ {
		if s.src[i] != ':' {
			continue
		}
		if i+1 == end || s.src[i+1] == ' ' || s.src[i+1] == '\t' {
			colon = i
			break
		}
	}

	key := ""
	if colon > s.pos {
		key = strings.TrimRight(s.src[s.pos:colon], " \t")
	}
	if key == "" {
		s.scanValue()
		return
	}

	s.advance(len(key))
	s.emit(mdast.TokFrontmatterKey, key)
	if s.pos < colon {
		s.advance(colon - s.pos)
		s.emit(mdast.TokSpace, nil)
	}

	s.advance(1)
	s.emit(mdast.TokColon, nil)
	s.scanSpace()
	s.scanValue()
}

func (s *frontmatterScanner) scanSpace() {
	start := s.pos
	for c := s.peek(); c == ' ' || c == '\t'; c = s.peek() {
		s.advance(1)
	}
	if s.pos > start {
		s.emit(mdast.TokSpace, nil)
	}
}

// scanValue emits the rest of the line as a value.
func (s *frontmatterScanner) scanValue() {
	end := s.lineEnd(s.pos)
	if end == s.pos {
		return
	}
	s.advance(end - s.pos)
	s.emit(mdast.TokFrontmatterValue, DecodeValue(s.src[s.queued:s.pos]))
}

// DecodeValue converts a raw frontmatter value into its literal: bool, int,
// float64 or an unquoted string.
func DecodeValue(raw string) any {
	v := strings.TrimSpace(raw)

	if len(v) >= 2 {
		if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
			if q == '"' {
				if unq, err := strconv.Unquote(v); err == nil {
					return unq
				}
			}
			return v[1 : len(v)-1]
		}
	}

	switch v {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if looksNumeric(v) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	return v
}

// looksNumeric keeps words such as "inf" and "nan" as strings.
func looksNumeric(v string) bool {
	if v == "" {
		return false
	}
	c := v[0]
	return isDigit(c) || c == '-' || c == '+' || c == '.'
}
