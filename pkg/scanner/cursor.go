package scanner

import (
	"unicode/utf8"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// cursor is the primitive machinery shared by the main scanner and the
// sub-scanners. Characters between queued and pos have been consumed but not
// yet emitted; emit turns them into a token.
type cursor struct {
	src    string
	pos    int
	queued int
	line   int
	column int
	tokens []mdast.Token
}

func newCursor(src string, line, column int) *cursor {
	const initialCapacityDivisor = 3 // reasonable initial capacity estimate
	return &cursor{
		src:    src,
		line:   line,
		column: column,
		tokens: make([]mdast.Token, 0, len(src)/initialCapacityDivisor+1),
	}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.src)
}

// peek returns the byte at the cursor, or 0 at end of input.
func (c *cursor) peek() byte {
	return c.peekAt(0)
}

// peekAt returns the byte n positions past the cursor, or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	if c.pos+n >= len(c.src) || c.pos+n < 0 {
		return 0
	}
	return c.src[c.pos+n]
}

// hasPrefix reports whether the unconsumed input starts with s.
func (c *cursor) hasPrefix(s string) bool {
	return len(c.src)-c.pos >= len(s) && c.src[c.pos:c.pos+len(s)] == s
}

// breakLen returns the length of the line break at offset i, or 0.
func (c *cursor) breakLen(i int) int {
	if i >= len(c.src) {
		return 0
	}
	switch c.src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(c.src) && c.src[i+1] == '\n' {
			return 2
		}
	}
	return 0
}

// atBreak reports whether the cursor sits on a line break.
func (c *cursor) atBreak() bool {
	return c.breakLen(c.pos) > 0
}

// atLineEnd reports whether the cursor sits on a line break or end of input.
func (c *cursor) atLineEnd() bool {
	return c.atEnd() || c.atBreak()
}

// lineEnd returns the offset of the line break (or end of input) at or after i.
func (c *cursor) lineEnd(i int) int {
	for i < len(c.src) && c.breakLen(i) == 0 {
		i++
	}
	return i
}

// advance consumes n bytes.
func (c *cursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.src) {
		c.pos = len(c.src)
	}
}

// advanceRune consumes one UTF-8 encoded character.
func (c *cursor) advanceRune() {
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	if size == 0 {
		size = 1
	}
	c.advance(size)
}

// advanceWhile consumes bytes equal to b and returns how many were consumed.
func (c *cursor) advanceWhile(b byte) int {
	start := c.pos
	for c.pos < len(c.src) && c.src[c.pos] == b {
		c.pos++
	}
	return c.pos - start
}

// pending reports whether consumed characters are waiting to be emitted.
func (c *cursor) pending() bool {
	return c.pos > c.queued
}

// emit turns the queued characters into a token.
func (c *cursor) emit(kind mdast.TokenKind, literal any) {
	lexeme := c.src[c.queued:c.pos]
	c.tokens = append(c.tokens, mdast.Token{
		Kind:    kind,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    c.line,
		Column:  c.column,
	})
	c.queued = c.pos
	c.track(lexeme)
}

// emitBreak consumes and emits the line break at the cursor.
func (c *cursor) emitBreak() {
	c.advance(c.breakLen(c.pos))
	c.emit(mdast.TokBR, nil)
}

// absorb appends tokens produced by a sub-scanner for src[c.queued:end] and
// moves the cursor to end.
func (c *cursor) absorb(tokens []mdast.Token, end int) {
	c.tokens = append(c.tokens, tokens...)
	c.track(c.src[c.queued:end])
	c.pos = end
	c.queued = end
}

// track updates the running line and column after emitting text.
func (c *cursor) track(text string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			c.line++
			c.column = 1
			continue
		}
		c.column++
	}
}
