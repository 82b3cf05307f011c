package scanner

import (
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// codeBlockScanner tokenizes a fenced code body: leading `key: value`
// metadata lines, then one opaque source token per line.
type codeBlockScanner struct {
	*cursor
	inMetadata bool
}

func newCodeBlockScanner(src string, line, column int) *codeBlockScanner {
	return &codeBlockScanner{cursor: newCursor(src, line, column), inMetadata: true}
}

// ScanCodeBlock tokenizes a code block body on its own. Positions start at
// line 1, column 1 and no EOF token is appended.
func ScanCodeBlock(source string) []mdast.Token {
	s := newCodeBlockScanner(source, 1, 1)
	s.scan()
	return s.tokens
}

func (s *codeBlockScanner) scan() {
	for !s.atEnd() {
		if s.inMetadata && s.scanMetadataLine() {
			continue
		}
		s.inMetadata = false
		s.scanSourceLine()
	}
}

// scanMetadataLine scans `key: value` and reports whether the line matched.
func (s *codeBlockScanner) scanMetadataLine() bool {
	end := s.lineEnd(s.pos)
	line := s.src[s.pos:end]

	keyLen := metadataKeyLen(line)
	if keyLen == 0 || keyLen+1 >= len(line) || line[keyLen] != ':' || line[keyLen+1] != ' ' {
		return false
	}
	spaces := keyLen + 1
	for spaces < len(line) && line[spaces] == ' ' {
		spaces++
	}
	if spaces == len(line) {
		return false
	}

	s.advance(keyLen)
	s.emit(mdast.TokCodeKey, line[:keyLen])
	s.advance(1)
	s.emit(mdast.TokColon, nil)
	s.advance(spaces - keyLen - 1)
	s.emit(mdast.TokSpace, nil)
	s.advance(end - s.pos)
	s.emit(mdast.TokCodeValue, strings.TrimRight(line[spaces:], " \t"))

	if s.atBreak() {
		s.emitBreak()
	}
	return true
}

// metadataKeyLen returns the length of the identifier at the start of line.
func metadataKeyLen(line string) int {
	n := 0
	for n < len(line) {
		c := line[n]
		if isASCIILetter(c) || (n > 0 && (isDigit(c) || c == '-' || c == '_')) {
			n++
			continue
		}
		break
	}
	return n
}

func (s *codeBlockScanner) scanSourceLine() {
	if end := s.lineEnd(s.pos); end > s.pos {
		s.advance(end - s.pos)
		s.emit(mdast.TokCodeSource, nil)
	}
	if s.atBreak() {
		s.emitBreak()
	}
}
