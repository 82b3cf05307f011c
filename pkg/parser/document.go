package parser

import (
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// build creates a statement of kind and asserts its concrete type.
func build[T mdast.Statement](kind mdast.Kind, parts ...mdast.Node) T {
	s, ok := mdast.New(kind, parts...).(T)
	if !ok {
		panic("parser: statement kind does not match its type")
	}
	return s
}

// Document parses [Frontmatter?, Content, Section...] up to EOF.
func (p *Parser) Document() (*mdast.Document, error) {
	var frontmatter mdast.Node
	if p.check(mdast.TokFrontmatterStart) {
		fm, err := p.frontmatter()
		if err != nil {
			return nil, err
		}
		frontmatter = fm
	}

	lede, err := p.content()
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{frontmatter, lede}
	for p.check(mdast.TokHeadingHash) {
		section, err := p.section()
		if err != nil {
			return nil, err
		}
		parts = append(parts, section)
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return build[*mdast.Document](mdast.KindDocument, parts...), nil
}

// frontmatter parses [START, BR, (Item|BR|SPACE)..., END, BR?].
func (p *Parser) frontmatter() (*mdast.Frontmatter, error) {
	start, err := p.chomp(mdast.TokFrontmatterStart)
	if err != nil {
		return nil, err
	}
	br, err := p.chomp(mdast.TokBR)
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{start, br}
	for !p.check(mdast.TokFrontmatterEnd) {
		switch {
		case p.atEnd():
			return nil, p.errorf([]mdast.TokenKind{mdast.TokFrontmatterEnd}, "unclosed frontmatter")
		case p.check(mdast.TokBR):
			parts = append(parts, p.advance())
		case p.check(mdast.TokSpace) && p.checkAt(1, mdast.TokBR):
			parts = append(parts, p.advance(), p.advance())
		default:
			item, err := p.frontmatterItem()
			if err != nil {
				return nil, err
			}
			parts = append(parts, item)
		}
	}

	parts = append(parts, p.advance(), p.maybeChomp(mdast.TokBR))
	return build[*mdast.Frontmatter](mdast.KindFrontmatter, parts...), nil
}

// frontmatterItem parses a key line. The value slot holds a scalar token and
// the list slot a nested bullet list; at most one of them is present.
func (p *Parser) frontmatterItem() (*mdast.FrontmatterItem, error) {
	indent := p.maybeChomp(mdast.TokSpace)

	if !p.check(mdast.TokFrontmatterKey) {
		return nil, p.errorf([]mdast.TokenKind{mdast.TokFrontmatterKey}, "malformed frontmatter line")
	}
	key := p.advance()

	before := p.maybeChomp(mdast.TokSpace)
	colon, err := p.chomp(mdast.TokColon)
	if err != nil {
		return nil, err
	}
	after := p.maybeChomp(mdast.TokSpace)
	value := p.maybeChomp(mdast.TokFrontmatterValue)
	br := p.maybeChomp(mdast.TokBR)

	var list mdast.Node
	if value == nil && br != nil && p.isFrontmatterBullet(p.skipBlankLines(p.pos)) {
		list = p.frontmatterList()
	}

	return build[*mdast.FrontmatterItem](mdast.KindFrontmatterItem,
		indent, key, before, colon, after, value, br, list), nil
}

func (p *Parser) isFrontmatterBullet(i int) bool {
	if p.kindAt(i) == mdast.TokSpace {
		i++
	}
	return p.kindAt(i) == mdast.TokBullet
}

// skipBlankLines returns the index of the first token at or after i that does
// not belong to an empty or space-only frontmatter line.
func (p *Parser) skipBlankLines(i int) int {
	for {
		switch {
		case p.kindAt(i) == mdast.TokBR:
			i++
		case p.kindAt(i) == mdast.TokSpace && p.kindAt(i+1) == mdast.TokBR:
			i += 2
		default:
			return i
		}
	}
}

// frontmatterList parses `- value` lines. Indentation is kept but does not
// nest. Blank lines between bullets stay in the list as bare tokens; blank
// lines after the last bullet do not.
func (p *Parser) frontmatterList() *mdast.List {
	var items []mdast.Node
	for {
		next := p.skipBlankLines(p.pos)
		if !p.isFrontmatterBullet(next) {
			break
		}
		for p.pos < next {
			items = append(items, p.advance())
		}

		indent := p.maybeChomp(mdast.TokSpace)
		marker := p.advance()
		space := p.maybeChomp(mdast.TokSpace)
		value := build[*mdast.PlainText](mdast.KindPlainText, p.chompWhile(mdast.TokFrontmatterValue)...)
		br := p.maybeChomp(mdast.TokBR)
		items = append(items, build[*mdast.ListItem](mdast.KindListItem,
			indent, marker, space, value, br, nil))
	}
	return build[*mdast.List](mdast.KindList, items...)
}

// content parses blocks, line breaks and whitespace-only lines up to the next
// heading or EOF.
func (p *Parser) content() (*mdast.Content, error) {
	var parts []mdast.Node
	for !p.check(mdast.TokHeadingHash, mdast.TokEOF) {
		switch {
		case p.check(mdast.TokBR):
			parts = append(parts, p.advance())
		case p.isBlankLine(p.pos):
			parts = append(parts, p.chompWhile(mdast.TokSpace, mdast.TokTab)...)
		default:
			block, err := p.block()
			if err != nil {
				return nil, err
			}
			parts = append(parts, block)
		}
	}
	return build[*mdast.Content](mdast.KindContent, parts...), nil
}

// section parses [Heading, Content].
func (p *Parser) section() (*mdast.Section, error) {
	heading, err := p.heading()
	if err != nil {
		return nil, err
	}
	body, err := p.content()
	if err != nil {
		return nil, err
	}
	return build[*mdast.Section](mdast.KindSection, heading, body), nil
}

// heading parses [HEADING_HASH, space?, RichText].
func (p *Parser) heading() (*mdast.Heading, error) {
	hash, err := p.chomp(mdast.TokHeadingHash)
	if err != nil {
		return nil, err
	}
	space := p.maybeChomp(mdast.TokSpace, mdast.TokTab)
	text, err := p.richText()
	if err != nil {
		return nil, err
	}
	return build[*mdast.Heading](mdast.KindHeading, hash, space, text), nil
}

// isBlankLine reports whether the line at i holds only spaces and tabs.
func (p *Parser) isBlankLine(i int) bool {
	if !isWhitespace(p.kindAt(i)) {
		return false
	}
	for isWhitespace(p.kindAt(i)) {
		i++
	}
	k := p.kindAt(i)
	return k == mdast.TokBR || k == mdast.TokEOF
}

func isWhitespace(k mdast.TokenKind) bool {
	return k == mdast.TokSpace || k == mdast.TokTab
}
