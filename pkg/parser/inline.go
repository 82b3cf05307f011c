package parser

import (
	"slices"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// richText parses inline statements up to the end of the line or the first
// token in stops. Runs of tokens without inline structure are grouped into
// PlainText.
func (p *Parser) richText(stops ...mdast.TokenKind) (*mdast.RichText, error) {
	var parts, plain []mdast.Node
	flush := func() {
		if len(plain) > 0 {
			parts = append(parts, build[*mdast.PlainText](mdast.KindPlainText, plain...))
			plain = nil
		}
	}

	for !p.check(mdast.TokBR, mdast.TokEOF) && !p.check(stops...) {
		inline, err := p.inline(stops)
		if err != nil {
			return nil, err
		}
		if inline == nil {
			plain = append(plain, p.advance())
			continue
		}
		flush()
		parts = append(parts, inline)
	}
	flush()

	return build[*mdast.RichText](mdast.KindRichText, parts...), nil
}

// inline parses the construct opened by the current token. It returns nil
// without consuming anything when the token is plain text.
func (p *Parser) inline(stops []mdast.TokenKind) (mdast.Statement, error) {
	tok := p.peek()

	switch tok.Kind {
	case mdast.TokDoubleLeftBracket, mdast.TokImageLinkStart:
		return p.wikiLink()
	case mdast.TokLeftBracket:
		if slices.Contains(stops, mdast.TokRightBracket) {
			return nil, nil
		}
		return p.externalLink(stops)
	case mdast.TokStar, mdast.TokDoubleStar, mdast.TokDoubleTilde, mdast.TokDoubleEqual:
		if !p.closerAhead(tok.Kind, stops) {
			return nil, nil
		}
		return p.emphasis(stops)
	case mdast.TokBacktick:
		end, ok := p.backtickCloser(tok.Int(), stops)
		if !ok {
			return nil, nil
		}
		return p.delimitedUntil(mdast.KindInlineCode, end), nil
	case mdast.TokDollar, mdast.TokDoubleDollar, mdast.TokComment:
		end, ok := p.closerIndex(tok.Kind, stops)
		if !ok {
			return nil, nil
		}
		kind := mdast.KindMath
		if tok.Kind == mdast.TokComment {
			kind = mdast.KindComment
		}
		return p.delimitedUntil(kind, end), nil
	case mdast.TokDoubleLeftBrace:
		end, ok := p.closerIndex(mdast.TokDoubleRightBrace, nil)
		if !ok {
			return nil, p.unclosed(mdast.TokDoubleRightBrace, "unclosed bookmark")
		}
		return p.delimitedUntil(mdast.KindBookmark, end), nil
	case mdast.TokHash:
		if !isTagName(p.peekAt(1).Kind) {
			return nil, nil
		}
		return build[*mdast.Tag](mdast.KindTag, p.advance(), p.advance()), nil
	case mdast.TokHTMLTag:
		return build[*mdast.HTML](mdast.KindHTML, p.advance()), nil
	default:
		return nil, nil
	}
}

// closerIndex finds the next token of kind on the current line, giving up at
// the first token in stops.
func (p *Parser) closerIndex(kind mdast.TokenKind, stops []mdast.TokenKind) (int, bool) {
	for i := p.pos + 1; ; i++ {
		k := p.kindAt(i)
		switch {
		case k == kind:
			return i, true
		case k == mdast.TokBR || k == mdast.TokEOF || slices.Contains(stops, k):
			return 0, false
		}
	}
}

func (p *Parser) closerAhead(kind mdast.TokenKind, stops []mdast.TokenKind) bool {
	_, ok := p.closerIndex(kind, stops)
	return ok
}

// backtickCloser finds a backtick run of the same length as the opener.
func (p *Parser) backtickCloser(n int, stops []mdast.TokenKind) (int, bool) {
	for i := p.pos + 1; ; i++ {
		k := p.kindAt(i)
		switch {
		case k == mdast.TokBacktick && p.tokens[i].Int() == n:
			return i, true
		case k == mdast.TokBR || k == mdast.TokEOF || slices.Contains(stops, k):
			return 0, false
		}
	}
}

// delimitedUntil builds [open, PlainText, close] where close is the token at
// index end.
func (p *Parser) delimitedUntil(kind mdast.Kind, end int) mdast.Statement {
	open := p.advance()
	var body []mdast.Node
	for p.pos < end {
		body = append(body, p.advance())
	}
	text := build[*mdast.PlainText](mdast.KindPlainText, body...)
	return mdast.New(kind, open, text, p.advance())
}

// unclosed reports a missing closer at the end of the current line.
func (p *Parser) unclosed(closer mdast.TokenKind, msg string) *ParseError {
	i := p.pos
	for k := p.kindAt(i); k != mdast.TokBR && k != mdast.TokEOF; k = p.kindAt(i) {
		i++
	}
	mark := p.pos
	p.pos = i
	err := p.errorf([]mdast.TokenKind{closer}, "%s", msg)
	p.pos = mark
	return err
}

// with returns stops extended by kind without aliasing the caller's slice.
func with(stops []mdast.TokenKind, kind mdast.TokenKind) []mdast.TokenKind {
	out := make([]mdast.TokenKind, 0, len(stops)+1)
	out = append(out, stops...)
	return append(out, kind)
}

// emphasis parses [open, RichText, close]. When the inner content swallows
// the closer the opener is left as plain text.
func (p *Parser) emphasis(stops []mdast.TokenKind) (mdast.Statement, error) {
	mark := p.pos
	open := p.advance()

	inner, err := p.richText(with(stops, open.Kind)...)
	if err != nil {
		return nil, err
	}
	if !p.check(open.Kind) {
		p.pos = mark
		return nil, nil
	}

	return build[*mdast.Emphasis](mdast.KindEmphasis, open, inner, p.advance()), nil
}

// wikiLink parses [OPEN, PlainText(target), PIPE?, RichText(alias)?, ]]].
func (p *Parser) wikiLink() (mdast.Statement, error) {
	if !p.closerAhead(mdast.TokDoubleRightBracket, nil) {
		return nil, p.unclosed(mdast.TokDoubleRightBracket, "unclosed link")
	}

	open := p.advance()
	target := build[*mdast.PlainText](mdast.KindPlainText,
		p.chompWhileNot(mdast.TokPipe, mdast.TokDoubleRightBracket)...)

	var pipe, alias mdast.Node
	if p.check(mdast.TokPipe) {
		pipe = p.advance()
		text, err := p.richText(mdast.TokDoubleRightBracket)
		if err != nil {
			return nil, err
		}
		alias = text
	}

	closer, err := p.chomp(mdast.TokDoubleRightBracket)
	if err != nil {
		return nil, err
	}

	return build[*mdast.Link](mdast.KindLink, open, target, pipe, alias, closer), nil
}

// externalLink parses [[, RichText(label), ], (, PlainText(url), )]. Anything
// short of the full shape leaves the bracket as plain text.
func (p *Parser) externalLink(stops []mdast.TokenKind) (mdast.Statement, error) {
	mark := p.pos
	open := p.advance()

	label, err := p.richText(with(stops, mdast.TokRightBracket)...)
	if err != nil {
		return nil, err
	}
	if !p.check(mdast.TokRightBracket) || !p.checkAt(1, mdast.TokLeftParen) {
		p.pos = mark
		return nil, nil
	}
	rbracket, lparen := p.advance(), p.advance()

	var url []mdast.Node
	for !p.check(mdast.TokRightParen, mdast.TokBR, mdast.TokEOF) && !p.check(stops...) {
		url = append(url, p.advance())
	}
	if !p.check(mdast.TokRightParen) {
		p.pos = mark
		return nil, nil
	}

	return build[*mdast.Link](mdast.KindLink,
		open, label, rbracket, lparen,
		build[*mdast.PlainText](mdast.KindPlainText, url...),
		p.advance()), nil
}
