// Package scanner converts document source into a gap-free token stream.
//
// The scanner never fails: any run of characters it cannot classify becomes a
// Symbol or Rune token. Frontmatter and fenced code regions are handed to
// dedicated sub-scanners that share the same cursor machinery.
package scanner

import (
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// Scanner is the main document scanner.
type Scanner struct {
	*cursor
}

// Scan tokenizes source. The concatenated lexemes of the result equal source
// and the final token is a zero-length EOF.
func Scan(source string) []mdast.Token {
	s := &Scanner{cursor: newCursor(source, 1, 1)}
	s.scan()
	return s.tokens
}

// ScanInline tokenizes source as mid-line content: line-start markers,
// frontmatter and fences are not recognized. The final token is EOF.
func ScanInline(source string) []mdast.Token {
	s := &Scanner{cursor: newCursor(source, 1, 1)}
	for !s.atEnd() {
		s.scanRestOfLine()
	}
	s.emit(mdast.TokEOF, nil)
	return s.tokens
}

func (s *Scanner) scan() {
	if s.isFrontmatterOpen() {
		s.scanFrontmatter()
	}

	for !s.atEnd() {
		s.scanLine()
	}

	s.emit(mdast.TokEOF, nil)
}

// scanLine scans one line including its trailing line break.
func (s *Scanner) scanLine() {
	s.scanLineStart(true)
	s.scanRestOfLine()
}

// scanRestOfLine scans inline content up to and including the line break.
func (s *Scanner) scanRestOfLine() {
	for !s.atLineEnd() {
		s.scanLinePart()
	}
	if s.atBreak() {
		s.emitBreak()
	}
}

// scanLineStart selects a routine from the first character of a line.
// Routines that do not match leave the cursor untouched so that generic line
// scanning takes over.
func (s *Scanner) scanLineStart(column1 bool) {
	switch c := s.peek(); {
	case c == '#':
		s.scanHeadingHash()
	case c == '-' || c == '+' || c == '*':
		s.scanBulletOrRule(c)
	case c == '>':
		s.scanQuote()
	case c == '_':
		if s.isRuleLine('_') {
			s.scanRule()
		}
	case isDigit(c):
		s.scanListNumber()
	case c == ' ' || c == '\t':
		if column1 {
			s.scanIndent()
		}
	case c == '`':
		if column1 {
			s.scanFence()
		}
	}
}

// scanHeadingHash emits a heading marker for 1-6 hashes followed by a space
// or the end of the line.
func (s *Scanner) scanHeadingHash() {
	const maxLevel = 6

	n := 0
	for s.peekAt(n) == '#' {
		n++
	}
	if n > maxLevel {
		return
	}

	next := s.peekAt(n)
	if next != ' ' && next != '\t' && next != 0 && s.breakLen(s.pos+n) == 0 {
		return
	}

	s.advance(n)
	s.emit(mdast.TokHeadingHash, n)
}

// scanBulletOrRule handles '-', '+' and '*' which may open a list item,
// a checkbox or a thematic break.
func (s *Scanner) scanBulletOrRule(marker byte) {
	if marker != '+' && s.isRuleLine(marker) {
		s.scanRule()
		return
	}

	if s.peekAt(1) != ' ' {
		return
	}

	// "- [ ]" and "- [x]" are a single checkbox marker.
	if s.peekAt(2) == '[' && s.peekAt(4) == ']' {
		box := s.peekAt(3)
		after := s.peekAt(5)
		if (box == ' ' || box == 'x' || box == 'X') &&
			(after == ' ' || after == 0 || s.breakLen(s.pos+5) > 0) {
			const checkboxLen = 5
			s.advance(checkboxLen)
			s.emit(mdast.TokCheckbox, box != ' ')
			return
		}
	}

	s.advance(1)
	s.emit(mdast.TokBullet, nil)
}

// isRuleLine reports whether the line at the cursor is three or more marker
// characters and nothing else.
func (s *Scanner) isRuleLine(marker byte) bool {
	const minRuleLen = 3

	end := s.lineEnd(s.pos)
	if end-s.pos < minRuleLen {
		return false
	}
	for i := s.pos; i < end; i++ {
		if s.src[i] != marker {
			return false
		}
	}
	return true
}

func (s *Scanner) scanRule() {
	s.advance(s.lineEnd(s.pos) - s.pos)
	s.emit(mdast.TokHR, nil)
}

// scanQuote emits a blockquote marker and re-dispatches the rest of the line,
// so nested markers and list bullets inside quotes are recognized.
func (s *Scanner) scanQuote() {
	s.advance(1)
	s.emit(mdast.TokQuote, nil)
	if s.peek() == ' ' {
		s.advance(1)
		s.emit(mdast.TokSpace, nil)
	}
	s.scanLineStart(false)
}

// scanListNumber emits a numbered list marker for an integer followed by '.'
// and a space or the end of the line.
func (s *Scanner) scanListNumber() {
	n := 0
	for isDigit(s.peekAt(n)) {
		n++
	}
	if s.peekAt(n) != '.' {
		return
	}

	after := s.peekAt(n + 1)
	if after != ' ' && after != 0 && s.breakLen(s.pos+n+1) == 0 {
		return
	}

	value := 0
	for i := 0; i < n; i++ {
		value = value*10 + int(s.peekAt(i)-'0')
	}

	s.advance(n + 1)
	s.emit(mdast.TokNumbered, value)
}

// scanIndent emits leading tabs and spaces, then re-dispatches for list
// markers.
func (s *Scanner) scanIndent() {
	for {
		switch s.peek() {
		case '\t':
			n := s.advanceWhile('\t')
			s.emit(mdast.TokTab, n)
			continue
		case ' ':
			s.advanceWhile(' ')
			s.emit(mdast.TokSpace, nil)
			continue
		}
		break
	}

	switch c := s.peek(); {
	case c == '-' || c == '+' || c == '*':
		if s.peekAt(1) == ' ' {
			s.scanBulletOrRule(c)
		}
	case isDigit(c):
		s.scanListNumber()
	}
}

func (s *Scanner) isFrontmatterOpen() bool {
	return s.hasPrefix("---") && s.breakLen(3) > 0
}

// scanFrontmatter emits the frontmatter delimiters and delegates the body to
// the frontmatter sub-scanner. Without a closing delimiter the body runs to
// the end of input and no FRONTMATTER_END is emitted.
func (s *Scanner) scanFrontmatter() {
	s.advance(len("---"))
	s.emit(mdast.TokFrontmatterStart, nil)
	s.emitBreak()

	bodyEnd, found := s.findLine(s.pos, func(line string) bool { return line == "---" })
	if !found {
		bodyEnd = len(s.src)
	}

	sub := newFrontmatterScanner(s.src[s.pos:bodyEnd], s.line, s.column)
	sub.scan()
	s.absorb(sub.tokens, bodyEnd)

	if found {
		s.advance(len("---"))
		s.emit(mdast.TokFrontmatterEnd, nil)
	}
}

// scanFence scans a fenced code block: the opening fence, optional language,
// the body (delegated to the code block sub-scanner) and the closing fence.
func (s *Scanner) scanFence() {
	const minFence = 3

	n := 0
	for s.peekAt(n) == '`' {
		n++
	}
	if n < minFence {
		return
	}

	s.advance(n)
	s.emit(mdast.TokCodeFenceStart, n)

	if end := s.lineEnd(s.pos); end > s.pos {
		lang := s.src[s.pos:end]
		s.advance(end - s.pos)
		s.emit(mdast.TokCodeLang, trimSpace(lang))
	}
	if !s.atBreak() {
		return
	}
	s.emitBreak()

	bodyEnd, found := s.findLine(s.pos, func(line string) bool {
		if len(line) < n {
			return false
		}
		for i := 0; i < len(line); i++ {
			if line[i] != '`' {
				return false
			}
		}
		return true
	})
	if !found {
		bodyEnd = len(s.src)
	}

	sub := newCodeBlockScanner(s.src[s.pos:bodyEnd], s.line, s.column)
	sub.scan()
	s.absorb(sub.tokens, bodyEnd)

	if found {
		s.advance(s.lineEnd(s.pos) - s.pos)
		s.emit(mdast.TokCodeFenceEnd, n)
	}
}

// findLine returns the start offset of the first line at or after from whose
// text satisfies match.
func (s *Scanner) findLine(from int, match func(line string) bool) (int, bool) {
	for i := from; i < len(s.src); {
		end := s.lineEnd(i)
		if match(s.src[i:end]) {
			return i, true
		}
		if end >= len(s.src) {
			break
		}
		i = end + s.breakLen(end)
	}
	return 0, false
}
