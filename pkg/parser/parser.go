// Package parser builds a concrete syntax tree from the scanner's token
// stream.
//
// The parser is a recursive descent over lines: every production keeps every
// token it consumes, so the String() of any statement it returns is exactly
// the source it was built from. Malformed input is reported as a *ParseError;
// there is no recovery.
package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

// ParseError is a structural error: the parser required one of Expected but
// found a token of kind Found.
type ParseError struct {
	Line     int
	Column   int
	Expected []mdast.TokenKind
	Found    mdast.TokenKind
	Lexeme   string
	Message  string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString(": ")
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&b, "expected %s, ", strings.Join(names, " or "))
	}
	fmt.Fprintf(&b, "found %s", e.Found)
	if e.Lexeme != "" {
		fmt.Fprintf(&b, " %q", e.Lexeme)
	}
	return b.String()
}

// Position returns the position of the offending token.
func (e *ParseError) Position() mdast.Position {
	return mdast.Position{Line: e.Line, Column: e.Column}
}

// Parser is a cursor over a token stream.
type Parser struct {
	tokens []mdast.Token
	pos    int
}

// New creates a parser over tokens. A missing trailing EOF is tolerated.
func New(tokens []mdast.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse scans and parses a complete document.
func Parse(source string) (*mdast.Document, error) {
	return ParseTokens(scanner.Scan(source))
}

// ParseTokens parses a complete document from a token stream.
func ParseTokens(tokens []mdast.Token) (*mdast.Document, error) {
	p := New(tokens)
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// peek returns the current token. Past the end it returns a synthetic EOF.
func (p *Parser) peek() mdast.Token {
	return p.peekAt(0)
}

// peekAt returns the token n positions ahead.
func (p *Parser) peekAt(n int) mdast.Token {
	i := p.pos + n
	if i < 0 || i >= len(p.tokens) {
		eof := mdast.Token{Kind: mdast.TokEOF}
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+last.Len()
		}
		return eof
	}
	return p.tokens[i]
}

// kindAt returns the kind of the token at absolute index i.
func (p *Parser) kindAt(i int) mdast.TokenKind {
	if i < 0 || i >= len(p.tokens) {
		return mdast.TokEOF
	}
	return p.tokens[i].Kind
}

func (p *Parser) atEnd() bool {
	return p.check(mdast.TokEOF)
}

// check reports whether the current token has one of kinds.
func (p *Parser) check(kinds ...mdast.TokenKind) bool {
	return p.peek().Is(kinds...)
}

// checkAt reports whether the token n ahead has one of kinds.
func (p *Parser) checkAt(n int, kinds ...mdast.TokenKind) bool {
	return p.peekAt(n).Is(kinds...)
}

func (p *Parser) advance() mdast.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// chomp consumes the current token if it has one of kinds and fails
// otherwise.
func (p *Parser) chomp(kinds ...mdast.TokenKind) (mdast.Token, error) {
	if p.check(kinds...) {
		return p.advance(), nil
	}
	return mdast.Token{}, p.errorf(kinds, "")
}

// maybeChomp consumes the current token if it has one of kinds. It returns a
// nil Node otherwise, ready to be stored as an absent part.
func (p *Parser) maybeChomp(kinds ...mdast.TokenKind) mdast.Node {
	if p.check(kinds...) {
		return p.advance()
	}
	return nil
}

// chompWhile consumes tokens while they have one of kinds.
func (p *Parser) chompWhile(kinds ...mdast.TokenKind) []mdast.Node {
	var out []mdast.Node
	for !p.atEnd() && p.check(kinds...) {
		out = append(out, p.advance())
	}
	return out
}

// chompWhileNot consumes tokens up to the first one of kinds or EOF.
func (p *Parser) chompWhileNot(kinds ...mdast.TokenKind) []mdast.Node {
	var out []mdast.Node
	for !p.atEnd() && !p.check(kinds...) {
		out = append(out, p.advance())
	}
	return out
}

// lastWasBreak reports whether the previously consumed token was a line break.
func (p *Parser) lastWasBreak() bool {
	return p.kindAt(p.pos-1) == mdast.TokBR
}

func (p *Parser) errorf(expected []mdast.TokenKind, format string, args ...any) *ParseError {
	tok := p.peek()
	return &ParseError{
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
		Found:    tok.Kind,
		Lexeme:   tok.Lexeme,
		Message:  fmt.Sprintf(format, args...),
	}
}

// expectEnd fails unless every token has been consumed.
func (p *Parser) expectEnd() error {
	if _, err := p.chomp(mdast.TokEOF); err != nil {
		return err
	}
	return nil
}
