package scanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// keywords maps symbols to dedicated token kinds. It is empty; symbols are
// resolved against it before classification so the dialect can reserve words
// without touching the scanner loop.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]mdast.TokenKind{}

// urlSchemes promote a rune to a URL token.
//
//nolint:gochecknoglobals // Read-only lookup table.
var urlSchemes = []string{"http://", "https://", "ftp://", "ftps://"}

// scanLinePart scans one token of inline content.
func (s *Scanner) scanLinePart() {
	c := s.peek()
	next := s.peekAt(1)

	switch {
	case c == ' ':
		s.advanceWhile(' ')
		s.emit(mdast.TokSpace, nil)
	case c == '\t':
		n := s.advanceWhile('\t')
		s.emit(mdast.TokTab, n)
	case c == '\\' && next != 0 && s.breakLen(s.pos+1) == 0:
		s.advance(1)
		s.advanceRune()
		s.emit(mdast.TokEscape, s.src[s.queued+1:s.pos])
	case c == '[':
		s.emitPair('[', mdast.TokDoubleLeftBracket, mdast.TokLeftBracket)
	case c == ']':
		s.emitPair(']', mdast.TokDoubleRightBracket, mdast.TokRightBracket)
	case c == '|':
		s.advance(1)
		s.emit(mdast.TokPipe, nil)
	case c == '*':
		s.emitPair('*', mdast.TokDoubleStar, mdast.TokStar)
	case c == '~' && next == '~':
		s.advance(2)
		s.emit(mdast.TokDoubleTilde, nil)
	case c == '=' && next == '=':
		s.advance(2)
		s.emit(mdast.TokDoubleEqual, nil)
	case c == ':' && s.isDoubleColon(s.pos):
		s.advance(2)
		s.emit(mdast.TokDoubleColon, nil)
	case c == '(':
		s.advance(1)
		s.emit(mdast.TokLeftParen, nil)
	case c == ')':
		s.advance(1)
		s.emit(mdast.TokRightParen, nil)
	case c == '$':
		s.emitPair('$', mdast.TokDoubleDollar, mdast.TokDollar)
	case c == '`':
		n := s.advanceWhile('`')
		s.emit(mdast.TokBacktick, n)
	case c == '{' && next == '{':
		s.advance(2)
		s.emit(mdast.TokDoubleLeftBrace, nil)
	case c == '}' && next == '}':
		s.advance(2)
		s.emit(mdast.TokDoubleRightBrace, nil)
	case c == '%' && next == '%':
		s.advance(2)
		s.emit(mdast.TokComment, nil)
	case c == '<' && s.scanHTMLTag():
	case c == '!' && s.hasPrefix("![["):
		s.advance(len("![["))
		s.emit(mdast.TokImageLinkStart, nil)
	case c == '#' && isTagStart(s.src[s.pos+1:]):
		s.advance(1)
		s.emit(mdast.TokHash, nil)
	case isDigit(c):
		s.scanNumber()
	default:
		s.scanWord()
	}
}

// emitPair emits the doubled kind when c repeats and the single kind otherwise.
func (s *Scanner) emitPair(c byte, double, single mdast.TokenKind) {
	if s.peekAt(1) == c {
		s.advance(2)
		s.emit(double, nil)
		return
	}
	s.advance(1)
	s.emit(single, nil)
}

// isDoubleColon reports whether "::" followed by a space starts at offset i.
func (s *Scanner) isDoubleColon(i int) bool {
	return i+2 < len(s.src) && s.src[i] == ':' && s.src[i+1] == ':' && s.src[i+2] == ' '
}

// scanHTMLTag consumes an angle-bracket tag verbatim up to the closing '>' on
// the same line. Returns false, consuming nothing, when the tag is not
// terminated so the '<' degrades to a rune.
func (s *Scanner) scanHTMLTag() bool {
	next := s.peekAt(1)
	if !isASCIILetter(next) && next != '/' && next != '!' {
		return false
	}

	end := s.lineEnd(s.pos)
	closeIdx := strings.IndexByte(s.src[s.pos:end], '>')
	if closeIdx < 0 {
		return false
	}

	s.advance(closeIdx + 1)
	s.emit(mdast.TokHTMLTag, nil)
	return true
}

// scanNumber consumes digits, an optional fraction and exponent, and an
// ordinal suffix matching the last digit.
func (s *Scanner) scanNumber() {
	start := s.pos
	for isDigit(s.peek()) {
		s.advance(1)
	}
	integer := true

	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		integer = false
		s.advance(1)
		for isDigit(s.peek()) {
			s.advance(1)
		}
	}

	if e := s.peek(); e == 'e' || e == 'E' {
		switch {
		case isDigit(s.peekAt(1)):
			integer = false
			s.advance(1)
		case (s.peekAt(1) == '+' || s.peekAt(1) == '-') && isDigit(s.peekAt(2)):
			integer = false
			s.advance(2)
		}
		for isDigit(s.peek()) {
			s.advance(1)
		}
	}

	text := s.src[start:s.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.emit(mdast.TokRune, nil)
		return
	}

	if integer {
		suffix := ordinalSuffix(text[len(text)-1])
		if s.hasPrefix(suffix) && s.isBoundary(s.pos+len(suffix)) {
			s.advance(len(suffix))
			s.emit(mdast.TokOrdinal, int(value))
			return
		}
		if n, err := strconv.Atoi(text); err == nil {
			s.emit(mdast.TokNumber, n)
			return
		}
	}

	s.emit(mdast.TokNumber, value)
}

// ordinalSuffix returns the English ordinal suffix selected by the last digit.
func ordinalSuffix(lastDigit byte) string {
	switch lastDigit {
	case '1':
		return "st"
	case '2':
		return "nd"
	case '3':
		return "rd"
	default:
		return "th"
	}
}

// isBoundary reports whether a word ends at offset i.
func (s *Scanner) isBoundary(i int) bool {
	if i >= len(s.src) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s.src[i:])
	return !isWordRune(r)
}

// scanWord accumulates characters up to the next delimiter and classifies the
// run as a Symbol, URL or Rune.
func (s *Scanner) scanWord() {
	s.advanceRune()
	for !s.atEnd() && !s.isDelimiter(s.pos) {
		s.advanceRune()
	}

	text := s.src[s.queued:s.pos]
	s.emit(classifyWord(text), nil)
}

// isDelimiter reports whether a word must end before offset i.
func (s *Scanner) isDelimiter(i int) bool {
	c := s.src[i]
	var next byte
	if i+1 < len(s.src) {
		next = s.src[i+1]
	}

	switch c {
	case ' ', '\t', '\n', '[', ']', '|', '*', '(', ')', '$', '`', '<':
		return true
	case '\r':
		return next == '\n'
	case '~', '=', '{', '}', '%':
		return next == c
	case ':':
		return s.isDoubleColon(i)
	case '\\':
		return next != 0 && s.breakLen(i+1) == 0
	case '!':
		return strings.HasPrefix(s.src[i:], "![[")
	default:
		return false
	}
}

// classifyWord applies the keyword table, the symbol rule and the URL scheme
// check.
func classifyWord(text string) mdast.TokenKind {
	if isSymbol(text) {
		if kind, ok := keywords[text]; ok {
			return kind
		}
		return mdast.TokSymbol
	}

	for _, scheme := range urlSchemes {
		if strings.HasPrefix(text, scheme) {
			return mdast.TokURL
		}
	}

	return mdast.TokRune
}

// isSymbol reports whether every character is alphanumeric, '-' or '_' and
// the final character is a letter.
func isSymbol(text string) bool {
	if text == "" {
		return false
	}
	var last rune
	for _, r := range text {
		if !isWordRune(r) {
			return false
		}
		last = r
	}
	return unicode.IsLetter(last)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// isTagStart reports whether rest begins with a character that can start a
// tag name.
func isTagStart(rest string) bool {
	if rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return isWordRune(r) && r != '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func trimSpace(s string) string {
	return strings.Trim(s, " \t")
}
